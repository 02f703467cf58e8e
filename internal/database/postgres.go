// internal/database/postgres.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS war_results (
    id BIGSERIAL PRIMARY KEY,
    game_id UUID NOT NULL,
    player_one TEXT NOT NULL,
    player_two TEXT NOT NULL,
    winner SMALLINT NOT NULL,
    duration_ms BIGINT NOT NULL,
    duels INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    timed_out SMALLINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_war_results_created_at ON war_results (created_at);
`

// PostgresStore persists game results through a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ ResultStore = (*PostgresStore)(nil)

// OpenPostgres connects to dsn, verifies the connection, and ensures the
// war_results table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases every pooled connection.
func (s *PostgresStore) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// SaveResult inserts a finished game and returns its row id.
func (s *PostgresStore) SaveResult(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	var id int64
	err := s.pool.QueryRow(ctx, `
INSERT INTO war_results (game_id, player_one, player_two, winner, duration_ms, duels, rounds, timed_out, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`,
		rec.GameID,
		rec.PlayerOne,
		rec.PlayerTwo,
		rec.Winner,
		rec.DurationMs,
		rec.Duels,
		rec.Rounds,
		boolToInt(rec.TimedOut),
		rec.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	return id, nil
}

// ListResults returns the most recent results, newest first.
func (s *PostgresStore) ListResults(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, game_id, player_one, player_two, winner, duration_ms, duels, rounds, timed_out, created_at
FROM war_results
ORDER BY id DESC
LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec      Record
			gameID   uuid.UUID
			winner   int16
			timedOut int16
		)
		if err := rows.Scan(
			&rec.ID,
			&gameID,
			&rec.PlayerOne,
			&rec.PlayerTwo,
			&winner,
			&rec.DurationMs,
			&rec.Duels,
			&rec.Rounds,
			&timedOut,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.GameID = gameID
		rec.Winner = int(winner)
		rec.TimedOut = timedOut != 0
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}
