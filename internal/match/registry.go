package match

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry owns every match controller in the process and indexes them by
// identifier, by arena name, and by backing world. External callers receive
// non-owning handles and go through the Match's public contract only.
type Registry struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*Match
	byName  map[string]uuid.UUID // lower-cased arena name, boundary lookup only
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		matches: make(map[uuid.UUID]*Match),
		byName:  make(map[string]uuid.UUID),
	}
}

// Add indexes a match and wires its world-exclusivity check.
func (r *Registry) Add(m *Match) {
	r.mu.Lock()
	r.matches[m.ID] = m
	r.byName[strings.ToLower(m.Name)] = m.ID
	r.mu.Unlock()
	m.WorldBusyFn = func() bool {
		return r.WorldBusy(m.World(), m)
	}
}

// Remove drops a match from the registry. Called only when a match is
// permanently deleted; round end returns to Lobby and keeps the entry.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.matches[id]; ok {
		delete(r.byName, strings.ToLower(m.Name))
		delete(r.matches, id)
	}
}

// Get returns a match by identifier.
func (r *Registry) Get(id uuid.UUID) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

// GetByName resolves a match from human input, case-insensitively.
func (r *Registry) GetByName(name string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	m, ok := r.matches[id]
	return m, ok
}

// Matches returns every registered match.
func (r *Registry) Matches() []*Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out
}

// Running returns the matches currently in Starting or Started.
func (r *Registry) Running() []*Match {
	var out []*Match
	for _, m := range r.Matches() {
		if m.IsRunning() {
			out = append(out, m)
		}
	}
	return out
}

// MatchForWorld returns the match backed by the given world, if any.
func (r *Registry) MatchForWorld(world string) (*Match, bool) {
	for _, m := range r.Matches() {
		if m.World() == world {
			return m, true
		}
	}
	return nil, false
}

// WorldBusy reports whether a running match other than except occupies the
// world. Consulted by canStart to enforce arena exclusivity.
func (r *Registry) WorldBusy(world string, except *Match) bool {
	for _, m := range r.Matches() {
		if m == except {
			continue
		}
		if m.IsRunning() && m.World() == world {
			return true
		}
	}
	return false
}

// MatchOf returns the match a player is currently in, if any.
func (r *Registry) MatchOf(player uuid.UUID) (*Match, bool) {
	for _, m := range r.Matches() {
		if m.HasPlayer(player) {
			return m, true
		}
	}
	return nil, false
}

// AllPlayers returns every player across all matches.
func (r *Registry) AllPlayers() []uuid.UUID {
	var out []uuid.UUID
	for _, m := range r.Matches() {
		out = append(out, m.PlayersInGame()...)
	}
	return out
}
