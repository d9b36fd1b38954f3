// internal/world/reset_test.go
package world

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedwars/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// setupArena creates a host with one loaded world and a snapshot of its
// pristine state.
func setupArena(t *testing.T, name string) (*FSHost, *Resetter) {
	t.Helper()
	worldsDir := t.TempDir()
	snapshotDir := t.TempDir()

	writeFile(t, filepath.Join(snapshotDir, name, "region", "r.0.0.dat"), "pristine")
	writeFile(t, filepath.Join(worldsDir, name, "region", "r.0.0.dat"), "pristine")

	host := NewFSHost(worldsDir)
	_, err := host.Create(CreationParams{Name: name, Seed: 42, Environment: "normal"})
	require.NoError(t, err)

	r := NewResetter(host, snapshotDir)
	r.SettleDelay = time.Millisecond
	return host, r
}

func regenerateSync(t *testing.T, r *Resetter, name string) error {
	t.Helper()
	errCh := make(chan error, 1)
	r.Regenerate(name, func(err error) { errCh <- err })
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("regeneration never completed")
		return nil
	}
}

func TestRegenerateRestoresSnapshot(t *testing.T) {
	host, r := setupArena(t, "arena1")

	// Simulate round damage: modified and added files.
	damaged := filepath.Join(host.Dir("arena1"), "region", "r.0.0.dat")
	writeFile(t, damaged, "scorched")
	writeFile(t, filepath.Join(host.Dir("arena1"), "region", "r.0.1.dat"), "new chunk")

	require.NoError(t, regenerateSync(t, r, "arena1"))

	assert.Equal(t, "pristine", readFile(t, damaged))
	_, err := os.Stat(filepath.Join(host.Dir("arena1"), "region", "r.0.1.dat"))
	assert.True(t, os.IsNotExist(err), "files added during the round are gone")

	w, ok := host.World("arena1")
	require.True(t, ok, "world is loaded again after the reset")
	assert.Equal(t, int64(42), w.Params.Seed, "creation params survive the swap")
}

func TestRegenerateMissingSnapshotFails(t *testing.T) {
	host := NewFSHost(t.TempDir())
	_, err := host.Create(CreationParams{Name: "arena1"})
	require.NoError(t, err)

	r := NewResetter(host, t.TempDir())
	r.SettleDelay = time.Millisecond

	err = regenerateSync(t, r, "arena1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot directory")

	_, ok := host.World("arena1")
	assert.True(t, ok, "world stays loaded when the snapshot is missing")
}

func TestRegenerateEvacuatesPlayers(t *testing.T) {
	_, r := setupArena(t, "arena1")
	fallback := models.Location{World: "hub", X: 1, Y: 2, Z: 3}
	r.Fallback = fallback

	inside := []uuid.UUID{uuid.New(), uuid.New()}
	var mu sync.Mutex
	moved := make(map[uuid.UUID]models.Location)

	r.PlayersIn = func(world string) []uuid.UUID {
		if world == "arena1" {
			return inside
		}
		return nil
	}
	r.Teleport = func(id uuid.UUID, loc models.Location) {
		mu.Lock()
		defer mu.Unlock()
		moved[id] = loc
	}

	require.NoError(t, regenerateSync(t, r, "arena1"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, moved, 2)
	for _, id := range inside {
		assert.Equal(t, fallback, moved[id])
	}
}

func TestSecondRegenerateQueuesBehindFirst(t *testing.T) {
	_, r := setupArena(t, "arena1")
	// Stretch the first reset so the second request arrives mid-flight.
	r.SettleDelay = 100 * time.Millisecond

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	r.Regenerate("arena1", func(err error) {
		assert.NoError(t, err)
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()
	})
	r.Regenerate("arena1", func(err error) {
		assert.NoError(t, err)
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("queued reset never ran")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, order, "resets complete in request order")
}

func TestSaveSnapshotRejectedDuringReset(t *testing.T) {
	_, r := setupArena(t, "arena1")
	// Stretch the reset so the snapshot request lands mid-flight.
	r.SettleDelay = 100 * time.Millisecond

	done := make(chan error, 1)
	r.Regenerate("arena1", func(err error) { done <- err })

	err := r.SaveSnapshot("arena1")
	require.Error(t, err, "snapshotting a world mid-reset would capture round damage")
	assert.Contains(t, err.Error(), "reset in flight")

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("regeneration never completed")
	}

	// The baseline was not clobbered by the rejected snapshot.
	assert.Equal(t, "pristine",
		readFile(t, filepath.Join(r.SnapshotDir, "arena1", "region", "r.0.0.dat")))

	// Once the world is idle again the snapshot goes through.
	require.NoError(t, r.SaveSnapshot("arena1"))
}

func TestSaveSnapshotCapturesCurrentState(t *testing.T) {
	host, r := setupArena(t, "arena1")

	// Arena was edited in place; capture the new layout as the baseline.
	edited := filepath.Join(host.Dir("arena1"), "region", "r.0.0.dat")
	writeFile(t, edited, "rebuilt")
	require.NoError(t, r.SaveSnapshot("arena1"))

	assert.Equal(t, "rebuilt",
		readFile(t, filepath.Join(r.SnapshotDir, "arena1", "region", "r.0.0.dat")))

	_, ok := host.World("arena1")
	assert.True(t, ok, "world reloads after snapshotting")

	// The next regeneration restores the new baseline.
	writeFile(t, edited, "scorched")
	require.NoError(t, regenerateSync(t, r, "arena1"))
	assert.Equal(t, "rebuilt", readFile(t, edited))
}
