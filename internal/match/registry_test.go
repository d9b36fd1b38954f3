// internal/match/registry_test.go
package match

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryMatch(name, world string) *Match {
	cfg := testConfig()
	cfg.World = world
	m := NewMatch(name, cfg)
	m.Players = newFakePlayers()
	m.TickInterval = time.Hour
	return m
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	m := registryMatch("Aquarium", "bw_aquarium")
	r.Add(m)

	got, ok := r.Get(m.ID)
	require.True(t, ok)
	assert.Same(t, m, got)

	got, ok = r.GetByName("aquarium")
	require.True(t, ok, "name lookup is case-insensitive")
	assert.Same(t, m, got)

	got, ok = r.MatchForWorld("bw_aquarium")
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = r.GetByName("nope")
	assert.False(t, ok)

	r.Remove(m.ID)
	_, ok = r.Get(m.ID)
	assert.False(t, ok)
	_, ok = r.GetByName("Aquarium")
	assert.False(t, ok)
}

func TestRegistryWorldExclusivity(t *testing.T) {
	r := NewRegistry()
	a := registryMatch("ArenaA", "shared_world")
	b := registryMatch("ArenaB", "shared_world")
	r.Add(a)
	r.Add(b)

	addPlayers(t, a, 2)
	require.Equal(t, PhaseStarting, a.Phase())
	assert.Len(t, r.Running(), 1)

	addPlayers(t, b, 2)
	assert.Equal(t, PhaseLobby, b.Phase(), "second match must not start in an occupied world")
	assert.Equal(t, ResultGameInWorld, b.TryStart(true))
	assert.Equal(t, "The game is in the same world!", ResultGameInWorld.Message())

	a.ForceStop(nil)
	assert.Equal(t, ResultSuccess, b.TryStart(true))
}

func TestRegistryMatchOf(t *testing.T) {
	r := NewRegistry()
	a := registryMatch("ArenaA", "world_a")
	b := registryMatch("ArenaB", "world_b")
	r.Add(a)
	r.Add(b)

	id := uuid.New()
	require.Equal(t, ResultSuccess, a.AddPlayer(id))

	got, ok := r.MatchOf(id)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.MatchOf(uuid.New())
	assert.False(t, ok)

	assert.ElementsMatch(t, []uuid.UUID{id}, r.AllPlayers())
}

func TestRegistryMatchesSnapshot(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 3; i++ {
		r.Add(registryMatch("arena"+string(rune('A'+i)), "world"+string(rune('A'+i))))
	}
	assert.Len(t, r.Matches(), 3)
	assert.Empty(t, r.Running())
}
