// internal/database/sqlite.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Fyrlex/war/internal/database/migrations"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const migrationTable = "schema_migrations"

// SQLiteStore provides SQLite-backed persistence for game results.
type SQLiteStore struct {
	sqlDB *sql.DB
}

var _ ResultStore = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) a SQLite store at path and applies
// pending migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveResult inserts a finished game and returns its row id.
func (s *SQLiteStore) SaveResult(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO war_results (game_id, player_one, player_two, winner, duration_ms, duels, rounds, timed_out, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID.String(),
		rec.PlayerOne,
		rec.PlayerTwo,
		rec.Winner,
		rec.DurationMs,
		rec.Duels,
		rec.Rounds,
		boolToInt(rec.TimedOut),
		toMillis(rec.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("result id: %w", err)
	}
	return id, nil
}

// ListResults returns the most recent results, newest first.
func (s *SQLiteStore) ListResults(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, game_id, player_one, player_two, winner, duration_ms, duels, rounds, timed_out, created_at
FROM war_results
ORDER BY id DESC
LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec       Record
			gameID    string
			timedOut  int
			createdAt int64
		)
		if err := rows.Scan(
			&rec.ID,
			&gameID,
			&rec.PlayerOne,
			&rec.PlayerTwo,
			&rec.Winner,
			&rec.DurationMs,
			&rec.Duels,
			&rec.Rounds,
			&timedOut,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.GameID, err = uuid.Parse(gameID)
		if err != nil {
			return nil, fmt.Errorf("parse game id %q: %w", gameID, err)
		}
		rec.TimedOut = timedOut != 0
		rec.CreatedAt = fromMillis(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

// runMigrations executes embedded migrations at most once per file.
func (s *SQLiteStore) runMigrations() error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := s.sqlDB.Exec(`
CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var count int
		if err := s.sqlDB.QueryRow(`SELECT COUNT(*) FROM `+migrationTable+` WHERE name = ?`, file).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		upSQL := extractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := s.sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`, file, toMillis(time.Now())); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// extractUpMigration returns the SQL in the -- +migrate Up section.
func extractUpMigration(content string) string {
	upIdx := strings.Index(content, "-- +migrate Up")
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, "-- +migrate Down")
	if downIdx == -1 {
		return content[upIdx+len("-- +migrate Up"):]
	}
	return content[upIdx+len("-- +migrate Up") : downIdx]
}
