package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bedwars/internal/models"
)

// ErrConfigNotFound is returned when no configuration record exists for a
// world.
var ErrConfigNotFound = errors.New("match config not found")

const opTimeout = 5 * time.Second

// Store is the pgx-backed persistence layer for match configurations, player
// pre-join snapshots, round results, and the drained event journal. It
// satisfies match.ConfigStore.
type Store struct{}

// NewStore returns a store over the global pool.
func NewStore() *Store {
	return &Store{}
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// LoadMatchConfig reads the configuration record for a world.
func (s *Store) LoadMatchConfig(world string) (*models.MatchConfig, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var raw []byte
	err := DB.QueryRow(ctx,
		`SELECT config FROM match_configs WHERE world = $1`, world,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match config %q: %w", world, err)
	}

	var cfg models.MatchConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode match config %q: %w", world, err)
	}
	cfg.World = world
	return &cfg, nil
}

// SaveMatchConfig upserts the configuration record for a world.
func (s *Store) SaveMatchConfig(cfg *models.MatchConfig) error {
	ctx, cancel := opCtx()
	defer cancel()

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode match config %q: %w", cfg.World, err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO match_configs (world, config, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (world) DO UPDATE SET config = $2, updated_at = now()
	`, cfg.World, raw)
	if err != nil {
		return fmt.Errorf("save match config %q: %w", cfg.World, err)
	}
	return nil
}

// ListConfiguredWorlds returns every world with a stored configuration.
func (s *Store) ListConfiguredWorlds() ([]string, error) {
	ctx, cancel := opCtx()
	defer cancel()

	rows, err := DB.Query(ctx, `SELECT world FROM match_configs ORDER BY world`)
	if err != nil {
		return nil, fmt.Errorf("list configured worlds: %w", err)
	}
	defer rows.Close()

	var worlds []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}
	return worlds, rows.Err()
}

// SavePlayerSnapshot persists a player's captured pre-join state so it
// survives a coordinator restart.
func (s *Store) SavePlayerSnapshot(matchID uuid.UUID, st models.PlayerState) error {
	ctx, cancel := opCtx()
	defer cancel()

	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode player snapshot: %w", err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO player_snapshots (match_id, player_id, state, captured_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (match_id, player_id) DO UPDATE SET state = $3, captured_at = now()
	`, matchID, st.ID, raw)
	if err != nil {
		return fmt.Errorf("save player snapshot: %w", err)
	}
	return nil
}

// DeletePlayerSnapshot removes a persisted snapshot once it has been applied.
func (s *Store) DeletePlayerSnapshot(matchID, player uuid.UUID) error {
	ctx, cancel := opCtx()
	defer cancel()

	_, err := DB.Exec(ctx,
		`DELETE FROM player_snapshots WHERE match_id = $1 AND player_id = $2`,
		matchID, player)
	if err != nil {
		return fmt.Errorf("delete player snapshot: %w", err)
	}
	return nil
}

// RecordMatchResult persists the outcome of a finished round.
func (s *Store) RecordMatchResult(ctx context.Context, matchID uuid.UUID, world string, winnerTeam string, winner uuid.UUID, duration time.Duration, participants []uuid.UUID) error {
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var resultID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO match_results (match_id, world, winner_team, winner_player, duration_ms)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, matchID, world, winnerTeam, winner, duration.Milliseconds()).Scan(&resultID)
		if err != nil {
			return err
		}
		for _, p := range participants {
			if _, err := tx.Exec(ctx, `
				INSERT INTO match_participants (result_id, player_id)
				VALUES ($1, $2)
			`, resultID, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record match result: %w", err)
	}
	return nil
}

// InsertMatchEvent writes one drained journal event. Used by cmd/journal.
func InsertMatchEvent(ctx context.Context, matchID uuid.UUID, world, eventType string, payload []byte, ts time.Time) error {
	_, err := DB.Exec(ctx, `
		INSERT INTO match_events (match_id, world, event_type, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`, matchID, world, eventType, payload, ts)
	if err != nil {
		return fmt.Errorf("insert match event: %w", err)
	}
	return nil
}
