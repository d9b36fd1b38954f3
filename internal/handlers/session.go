package handlers

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bedwars/internal/match"
	"bedwars/internal/models"
)

// wsMessage is one JSON event pushed to a client.
type wsMessage map[string]interface{}

// Session is one player's live connection plus the server-authoritative view
// of their state (location, inventory, game mode). Directives like teleports
// mutate the state here and are mirrored to the client as events.
type Session struct {
	PlayerID uuid.UUID
	Username string
	Out      chan wsMessage

	mu    sync.Mutex
	state models.PlayerState
}

func (s *Session) send(msg wsMessage) {
	select {
	case s.Out <- msg:
	default:
		// Slow consumer; drop rather than block match processing.
	}
}

// State returns a copy of the session's player state.
func (s *Session) State() models.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SessionManager is the player directory and presentation layer: it resolves
// identifiers to live sessions and applies the controller's directives.
// All methods are best-effort; a missing session is silently ignored.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	Log *logrus.Logger
}

// NewSessionManager returns an empty manager.
func NewSessionManager(log *logrus.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
		Log:      log,
	}
}

// Register attaches a connected player. An existing session for the same
// player is replaced.
func (sm *SessionManager) Register(id uuid.UUID, username string, spawn models.Location) *Session {
	s := &Session{
		PlayerID: id,
		Username: username,
		Out:      make(chan wsMessage, 32),
		state: models.PlayerState{
			ID:       id,
			Location: spawn,
			GameMode: models.ModeSurvival,
		},
	}
	sm.mu.Lock()
	sm.sessions[id] = s
	sm.mu.Unlock()
	return s
}

// Unregister drops a player's session.
func (sm *SessionManager) Unregister(id uuid.UUID) {
	sm.mu.Lock()
	delete(sm.sessions, id)
	sm.mu.Unlock()
}

func (sm *SessionManager) get(id uuid.UUID) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// PlayersIn lists players currently located in a world. Consulted by the
// world resetter during evacuation.
func (sm *SessionManager) PlayersIn(world string) []uuid.UUID {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	var out []uuid.UUID
	for id, s := range sm.sessions {
		s.mu.Lock()
		in := s.state.Location.World == world
		s.mu.Unlock()
		if in {
			out = append(out, id)
		}
	}
	return out
}

// --- match.PlayerService ---

func (sm *SessionManager) IsOnline(id uuid.UUID) bool {
	_, ok := sm.get(id)
	return ok
}

func (sm *SessionManager) Name(id uuid.UUID) string {
	if s, ok := sm.get(id); ok && s.Username != "" {
		return s.Username
	}
	return id.String()
}

func (sm *SessionManager) State(id uuid.UUID) (models.PlayerState, bool) {
	s, ok := sm.get(id)
	if !ok {
		return models.PlayerState{}, false
	}
	return s.State(), true
}

func (sm *SessionManager) Restore(id uuid.UUID, st models.PlayerState) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.state = st.Clone()
	s.mu.Unlock()
	s.send(wsMessage{"type": "restore", "state": st})
}

// ReportLocation records a client-reported position without echoing a
// teleport directive back.
func (sm *SessionManager) ReportLocation(id uuid.UUID, loc models.Location) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.state.Location = loc
	s.mu.Unlock()
}

func (sm *SessionManager) Teleport(id uuid.UUID, loc models.Location) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.state.Location = loc
	s.mu.Unlock()
	s.send(wsMessage{"type": "teleport", "location": loc})
}

func (sm *SessionManager) SetGameMode(id uuid.UUID, mode models.GameMode) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.state.GameMode = mode
	s.mu.Unlock()
	s.send(wsMessage{"type": "game_mode", "mode": mode})
}

func (sm *SessionManager) ClearInventory(id uuid.UUID) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.state.Inventory = nil
	s.mu.Unlock()
	s.send(wsMessage{"type": "clear_inventory"})
}

func (sm *SessionManager) Give(id uuid.UUID, items []models.Item) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.state.Inventory = append(s.state.Inventory, items...)
	s.mu.Unlock()
	s.send(wsMessage{"type": "give", "items": items})
}

func (sm *SessionManager) Message(id uuid.UUID, text string) {
	if s, ok := sm.get(id); ok {
		s.send(wsMessage{"type": "chat", "text": text})
	}
}

func (sm *SessionManager) ShowTitle(id uuid.UUID, t match.Title) {
	s, ok := sm.get(id)
	if !ok {
		return
	}
	s.send(wsMessage{
		"type":     "title",
		"title":    t.Title,
		"subtitle": t.Subtitle,
		"fade_in":  t.FadeIn.Milliseconds(),
		"stay":     t.Stay.Milliseconds(),
		"fade_out": t.FadeOut.Milliseconds(),
	})
}

// RefreshScoreboard pushes a scoreboard update to everyone in the match's
// world. Fired from inside match state transitions, so it reads only the
// match's lock-free accessors.
func (sm *SessionManager) RefreshScoreboard(m *match.Match) {
	ev := wsMessage{
		"type":  "scoreboard",
		"match": m.Name,
		"phase": m.Phase().String(),
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, s := range sm.sessions {
		s.mu.Lock()
		in := s.state.Location.World == m.World()
		s.mu.Unlock()
		if in {
			s.send(ev)
		}
	}
}
