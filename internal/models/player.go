package models

import "github.com/google/uuid"

// GameMode mirrors the host server's player modes. The coordinator only ever
// switches players between survival and spectator.
type GameMode string

const (
	ModeSurvival  GameMode = "survival"
	ModeSpectator GameMode = "spectator"
)

// Location is a position inside a named world.
type Location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// BlockPos is an integer block coordinate, used for placed-block bookkeeping
// during a round.
type BlockPos struct {
	World string `json:"world"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
}

// Item is a single inventory stack. Type is the host's material name,
// e.g. "IRON_CHESTPLATE" or "WOOD_PICKAXE".
type Item struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PlayerState is the per-player state the coordinator manages while a player
// is connected: where they are, what they hold, and their game mode.
type PlayerState struct {
	ID        uuid.UUID `json:"id"`
	Location  Location  `json:"location"`
	GameMode  GameMode  `json:"game_mode"`
	Inventory []Item    `json:"inventory"`
}

// Clone returns a deep copy suitable for capturing a pre-join snapshot and
// restoring the player on exit.
func (p *PlayerState) Clone() PlayerState {
	cp := *p
	cp.Inventory = make([]Item, len(p.Inventory))
	copy(cp.Inventory, p.Inventory)
	return cp
}
