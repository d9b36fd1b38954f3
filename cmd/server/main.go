// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"bedwars/internal/auth"
	"bedwars/internal/cache"
	"bedwars/internal/database"
	"bedwars/internal/handlers"
	"bedwars/internal/match"
	"bedwars/internal/middleware"
	"bedwars/internal/models"
	"bedwars/internal/world"
)

func main() {
	auth.Init()
	database.ConnectDB()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	journal := false
	if err := cache.ConnectRedis(); err != nil {
		logger.Warnf("redis unavailable, event journal disabled: %v", err)
	} else {
		journal = true
	}

	sessions := handlers.NewSessionManager(logger)

	host := world.NewFSHost(getEnv("WORLDS_DIR", "worlds"))
	resetter := world.NewResetter(host, getEnv("SNAPSHOT_DIR", "snapshots"))
	resetter.Log = logger
	resetter.PlayersIn = sessions.PlayersIn
	resetter.Teleport = sessions.Teleport
	resetter.Fallback = models.Location{World: getEnv("FALLBACK_WORLD", "hub")}

	store := database.NewStore()
	reg := match.NewRegistry()

	worlds, err := store.ListConfiguredWorlds()
	if err != nil {
		log.Fatalf("failed to list configured worlds: %v", err)
	}
	for _, name := range worlds {
		cfg, err := store.LoadMatchConfig(name)
		if err != nil {
			logger.Errorf("skipping world %s, config load failed: %v", name, err)
			continue
		}
		m := match.NewMatch(name, *cfg)
		m.Players = sessions
		m.Worlds = resetter
		m.Configs = store
		m.ScoreboardFn = sessions.RefreshScoreboard
		m.Log = logger
		if journal {
			m.JournalFn = asyncJournal(cache.PublishMatchEvent, logger)
		}
		matchID := m.ID
		worldName := m.World()
		m.RecordResultFn = func(winner match.Team, winnerPlayer uuid.UUID, duration time.Duration, participants []uuid.UUID) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := store.RecordMatchResult(ctx, matchID, worldName, winner.String(), winnerPlayer, duration, participants); err != nil {
				logger.Errorf("failed to record match result for %s: %v", worldName, err)
			}
		}
		reg.Add(m)
		logger.Infof("registered match %s on world %s", m.Name, worldName)
	}

	srv := handlers.NewMatchServer(reg, sessions, resetter, store, logger)

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	// session endpoints
	mux.Handle("/session/create", logged(srv.CreateSessionHandler()))

	// player websocket; not wrapped so the upgrade can hijack the connection
	mux.Handle("/ws", srv.SessionWSHandler())

	// match endpoints
	mux.Handle("/match/list", logged(srv.ListMatchesHandler()))
	mux.Handle("/match/info", logged(srv.MatchInfoHandler()))
	mux.Handle("/match/join", logged(srv.JoinMatchHandler()))
	mux.Handle("/match/leave", logged(srv.LeaveMatchHandler()))
	mux.Handle("/match/event", logged(srv.HostEventHandler()))

	// admin endpoints
	mux.Handle("/admin/login", logged(srv.AdminLoginHandler()))
	mux.Handle("/admin/match/start", logged(srv.StartMatchHandler()))
	mux.Handle("/admin/match/stop", logged(srv.StopMatchHandler()))
	mux.Handle("/admin/match/reload", logged(srv.ReloadConfigHandler()))
	mux.Handle("/admin/world/snapshot", logged(srv.SaveSnapshotHandler()))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// asyncJournal publishes match events on their own goroutine. Journal hooks
// fire from inside match state transitions with the match lock held, so the
// publish must never block the caller.
func asyncJournal(publish func(context.Context, match.Event) error, logger *logrus.Logger) func(match.Event) {
	return func(ev match.Event) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := publish(ctx, ev); err != nil {
				logger.Warnf("journal publish failed: %v", err)
			}
		}()
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
