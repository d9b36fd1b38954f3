package match

import (
	"time"

	"github.com/google/uuid"
)

// EventType tags a match lifecycle event for the journal queue.
type EventType string

const (
	EventPlayerJoin   EventType = "player_join"
	EventPlayerLeave  EventType = "player_leave"
	EventMatchStart   EventType = "match_start"
	EventBedDestroyed EventType = "bed_destroyed"
	EventMatchWin     EventType = "match_win"
	EventMatchStop    EventType = "match_stop"
	EventWorldReset   EventType = "world_reset"
)

// Event is a single journal record emitted by the controller. The wiring in
// cmd/server publishes these to Redis; cmd/journal drains them into Postgres.
type Event struct {
	Type      EventType              `json:"type"`
	MatchID   uuid.UUID              `json:"match_id"`
	World     string                 `json:"world"`
	Player    *uuid.UUID             `json:"player,omitempty"`
	Team      string                 `json:"team,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// journal emits an event through the injected journal func, if any.
// Called with the match lock held; the journal func must not call back into
// the match.
func (m *Match) journal(ev Event) {
	if m.JournalFn == nil {
		return
	}
	ev.MatchID = m.ID
	ev.World = m.cfg.World
	ev.Timestamp = time.Now().UnixMilli()
	m.JournalFn(ev)
}
