package match

import (
	"time"

	"github.com/google/uuid"

	"bedwars/internal/models"
)

// Title is a titled overlay shown to a single player with configurable
// fade timings.
type Title struct {
	Title    string
	Subtitle string
	FadeIn   time.Duration
	Stay     time.Duration
	FadeOut  time.Duration
}

// PlayerService is the controller's view of the player directory and
// presentation layer. Every method is best-effort: a disconnected target is
// silently ignored, never surfaced as an error.
type PlayerService interface {
	// IsOnline reports whether the player currently has a live session.
	IsOnline(id uuid.UUID) bool
	// Name resolves a display name for broadcasts.
	Name(id uuid.UUID) string
	// State returns the player's current state for pre-join snapshotting.
	State(id uuid.UUID) (models.PlayerState, bool)
	// Restore applies a previously captured state back onto the player.
	Restore(id uuid.UUID, st models.PlayerState)

	Teleport(id uuid.UUID, loc models.Location)
	SetGameMode(id uuid.UUID, mode models.GameMode)
	ClearInventory(id uuid.UUID)
	Give(id uuid.UUID, items []models.Item)
	Message(id uuid.UUID, text string)
	ShowTitle(id uuid.UUID, t Title)
}

// Resetter restores an arena world from its stored snapshot. Regenerate
// returns immediately; the pipeline runs on its own goroutine and invokes
// done exactly once from that goroutine, with a nil error on success.
type Resetter interface {
	Regenerate(world string, done func(error))
}

// ConfigStore loads and saves the persisted configuration record for an
// arena, and player pre-join snapshots. Implemented by internal/database.
type ConfigStore interface {
	LoadMatchConfig(world string) (*models.MatchConfig, error)
	SaveMatchConfig(cfg *models.MatchConfig) error
	SavePlayerSnapshot(matchID uuid.UUID, st models.PlayerState) error
	DeletePlayerSnapshot(matchID, player uuid.UUID) error
}

// SpawnerService is the resource/objective generation subsystem, started when
// a round begins and reset when it ends. Its ticking is out of scope here.
type SpawnerService interface {
	Start()
	Reset()
}
