// cmd/journal/main.go is an asynchronous worker that pops match lifecycle
// events from the Redis journal queue and persists them to Postgres.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"bedwars/internal/cache"
	"bedwars/internal/database"
	"bedwars/internal/match"
)

// JournalService drains the match event queue in small batches. Events arrive
// in emission order because the producer uses RPush and this worker uses
// BLPop on the same list.
type JournalService struct {
	redisClient *redis.Client
	batchSize   int
	flushDelay  time.Duration

	batchMu sync.Mutex
	batch   []match.Event

	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewJournalService constructs a JournalService from environment variables or defaults.
func NewJournalService() *JournalService {
	batchSize := getEnvInt("JOURNAL_BATCH_SIZE", 20)
	flushMs := getEnvInt("JOURNAL_FLUSH_MS", 500)

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &JournalService{
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		batch:       make([]match.Event, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run connects to the database and drains the queue until the context is
// canceled, flushing whatever remains before returning.
func (js *JournalService) Run() {
	database.ConnectDB()

	go js.readRedisLoop()

	log.Println("bedwars-journal service started.")
	<-js.ctx.Done()
	js.flushBatchToDB()
	log.Println("bedwars-journal shutting down.")
}

// Stop cancels the service context.
func (js *JournalService) Stop() {
	js.cancelFn()
}

// readRedisLoop continuously uses BLPop to retrieve events from the journal queue.
func (js *JournalService) readRedisLoop() {
	ticker := time.NewTicker(js.flushDelay)
	defer ticker.Stop()

	queueName := cache.QueueName()

	for {
		select {
		case <-js.ctx.Done():
			return

		case <-ticker.C:
			js.flushBatchToDB()

		default:
			// BLPop with a 3-second timeout so context cancellation is handled.
			res, err := js.redisClient.BLPop(js.ctx, 3*time.Second, queueName).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				if js.ctx.Err() != nil {
					return
				}
				log.Printf("[ERROR] BLPop: %v\n", err)
				continue
			}
			if len(res) < 2 {
				// No message popped.
				continue
			}

			// res[0] is the queue name and res[1] the payload.
			var ev match.Event
			if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
				log.Printf("invalid journal event: %v\n", err)
				continue
			}

			js.appendToBatch(ev)
		}
	}
}

// appendToBatch adds an event to the in-memory batch and flushes if the
// threshold is reached.
func (js *JournalService) appendToBatch(ev match.Event) {
	js.batchMu.Lock()
	defer js.batchMu.Unlock()

	js.batch = append(js.batch, ev)
	if len(js.batch) >= js.batchSize {
		js.flushBatchToDBLocked()
	}
}

func (js *JournalService) flushBatchToDB() {
	js.batchMu.Lock()
	defer js.batchMu.Unlock()
	js.flushBatchToDBLocked()
}

// flushBatchToDBLocked writes the current batch out. Caller holds batchMu.
// Rows are inserted in batch order so the persisted sequence matches the
// queue sequence.
func (js *JournalService) flushBatchToDBLocked() {
	if len(js.batch) == 0 {
		return
	}
	batchCopy := make([]match.Event, len(js.batch))
	copy(batchCopy, js.batch)
	js.batch = js.batch[:0]

	ctx := context.Background()
	written := 0
	for _, ev := range batchCopy {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			log.Printf("[ERROR] marshal payload: %v\n", err)
			continue
		}
		ts := time.UnixMilli(ev.Timestamp)
		if err := database.InsertMatchEvent(ctx, ev.MatchID, ev.World, string(ev.Type), payload, ts); err != nil {
			log.Printf("[ERROR] insert event: %v\n", err)
			continue
		}
		written++
	}
	log.Printf("Flushed %d events to DB.\n", written)
}

func main() {
	js := NewJournalService()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		js.Stop()
	}()

	js.Run()
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
