// internal/database/database.go
package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoWinner is stored in the winner column for games that ended without one.
const NoWinner = -1

// ErrNotConfigured is returned by Open when no storage backend is configured.
var ErrNotConfigured = errors.New("no result store configured")

// Record is one finished game as stored in war_results.
type Record struct {
	ID         int64     // assigned by the store
	GameID     uuid.UUID // session identifier
	PlayerOne  string
	PlayerTwo  string
	Winner     int // 0, 1, or NoWinner
	DurationMs int64
	Duels      int
	Rounds     int
	TimedOut   bool
	CreatedAt  time.Time
}

// ResultStore persists finished games.
type ResultStore interface {
	SaveResult(ctx context.Context, rec Record) (int64, error)
	ListResults(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// Options selects the storage backend. DatabaseURL wins over SQLitePath.
type Options struct {
	DatabaseURL string
	SQLitePath  string
}

// Open returns the configured store: Postgres when DatabaseURL is set,
// otherwise SQLite at SQLitePath. With neither, it returns ErrNotConfigured.
func Open(ctx context.Context, opts Options) (ResultStore, error) {
	switch {
	case strings.TrimSpace(opts.DatabaseURL) != "":
		return OpenPostgres(ctx, opts.DatabaseURL)
	case strings.TrimSpace(opts.SQLitePath) != "":
		return OpenSQLite(opts.SQLitePath)
	default:
		return nil, ErrNotConfigured
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

const defaultListLimit = 100

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
