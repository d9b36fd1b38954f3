package world

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bedwars/internal/models"
)

// Resetter restores arena worlds from their stored snapshots. One reset runs
// per world at a time; further requests for the same world queue behind it,
// because a directory copy in flight must never be interrupted.
type Resetter struct {
	Host        Host
	SnapshotDir string
	// Fallback is the global point players are evacuated to before the
	// world unloads.
	Fallback models.Location
	// PlayersIn lists players currently inside a world. Wired to the
	// session layer; nil means nobody to evacuate.
	PlayersIn func(world string) []uuid.UUID
	// Teleport moves a player, best-effort. Used only for evacuation.
	Teleport func(id uuid.UUID, loc models.Location)
	// SettleDelay is the pause between evacuation and unload, giving the
	// host time to flush player moves. Defaults to 100ms.
	SettleDelay time.Duration

	Log *logrus.Logger

	mu      sync.Mutex
	busy    map[string]bool
	pending map[string][]func(error)
}

// NewResetter builds a resetter over host with snapshots stored under dir.
func NewResetter(host Host, dir string) *Resetter {
	return &Resetter{
		Host:        host,
		SnapshotDir: dir,
		SettleDelay: 100 * time.Millisecond,
		Log:         logrus.StandardLogger(),
		busy:        make(map[string]bool),
		pending:     make(map[string][]func(error)),
	}
}

// Regenerate restores a world from its snapshot. It returns immediately; the
// pipeline runs on its own goroutine and calls done exactly once. If a reset
// for the same world is already in flight, this one queues after it.
func (r *Resetter) Regenerate(name string, done func(error)) {
	r.mu.Lock()
	if r.busy[name] {
		r.pending[name] = append(r.pending[name], done)
		r.mu.Unlock()
		r.Log.WithField("world", name).Info("reset queued behind in-flight reset")
		return
	}
	r.busy[name] = true
	r.mu.Unlock()
	go r.run(name, done)
}

func (r *Resetter) run(name string, done func(error)) {
	err := r.regenerate(name)
	if done != nil {
		done(err)
	}
	r.release(name)
}

// release hands the world to the next queued reset, or marks it idle.
func (r *Resetter) release(name string) {
	r.mu.Lock()
	if q := r.pending[name]; len(q) > 0 {
		next := q[0]
		r.pending[name] = q[1:]
		r.mu.Unlock()
		go r.run(name, next)
		return
	}
	delete(r.busy, name)
	r.mu.Unlock()
}

// regenerate is the three-phase pipeline: evacuate, unload and record
// creation parameters, then swap the data directory and recreate.
func (r *Resetter) regenerate(name string) error {
	snapshot := filepath.Join(r.SnapshotDir, name)
	if _, err := os.Stat(snapshot); err != nil {
		return fmt.Errorf("snapshot directory for world %q missing: %w", name, err)
	}

	r.evacuate(name)
	time.Sleep(r.settleDelay())

	w, ok := r.Host.World(name)
	if !ok {
		return fmt.Errorf("world %q is not loaded", name)
	}
	params := w.Params
	folder := r.Host.Dir(name)
	if err := r.Host.Unload(name); err != nil {
		return fmt.Errorf("unload world %q: %w", name, err)
	}

	if err := replaceDir(snapshot, folder); err != nil {
		return fmt.Errorf("restore world %q: %w", name, err)
	}

	if _, err := r.Host.Create(params); err != nil {
		return fmt.Errorf("recreate world %q: %w", name, err)
	}
	r.Log.WithField("world", name).Info("world finished regenerating")
	return nil
}

// SaveSnapshot captures the world's current on-disk state as the new
// last-known-good snapshot. The world is evacuated and unloaded so the copy
// sees flushed data, then recreated. It claims the same per-world slot as
// Regenerate: a reset in flight means the data directory is mid-copy, and
// snapshotting it would capture round damage as the new baseline.
func (r *Resetter) SaveSnapshot(name string) error {
	r.mu.Lock()
	if r.busy[name] {
		r.mu.Unlock()
		return fmt.Errorf("world %q has a reset in flight", name)
	}
	r.busy[name] = true
	r.mu.Unlock()
	defer r.release(name)

	r.evacuate(name)
	time.Sleep(r.settleDelay())

	w, ok := r.Host.World(name)
	if !ok {
		return fmt.Errorf("world %q is not loaded", name)
	}
	params := w.Params
	folder := r.Host.Dir(name)
	if err := r.Host.Unload(name); err != nil {
		return fmt.Errorf("unload world %q: %w", name, err)
	}

	snapshot := filepath.Join(r.SnapshotDir, name)
	if err := os.MkdirAll(r.SnapshotDir, 0o755); err != nil {
		return fmt.Errorf("create snapshot root: %w", err)
	}
	if err := replaceDir(folder, snapshot); err != nil {
		return fmt.Errorf("snapshot world %q: %w", name, err)
	}

	if _, err := r.Host.Create(params); err != nil {
		return fmt.Errorf("recreate world %q: %w", name, err)
	}
	r.Log.WithField("world", name).Info("world snapshot saved")
	return nil
}

// evacuate moves everyone out of the world to the global fallback point.
// Must complete before unload since unloading drops their sessions' ground.
func (r *Resetter) evacuate(name string) {
	if r.PlayersIn == nil || r.Teleport == nil {
		return
	}
	for _, id := range r.PlayersIn(name) {
		r.Teleport(id, r.Fallback)
	}
}

func (r *Resetter) settleDelay() time.Duration {
	if r.SettleDelay > 0 {
		return r.SettleDelay
	}
	return 100 * time.Millisecond
}
