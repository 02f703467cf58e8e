// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ResultsKey is the list every finished game summary is pushed onto.
	ResultsKey = "war:results"
	// actionTTL bounds how long a game's action journal is kept.
	actionTTL = 24 * time.Hour
)

// GameActionRecord is one journaled step of a game.
type GameActionRecord struct {
	GameID        uuid.UUID      `json:"game_id"`
	ActionIndex   int            `json:"action_index"`
	ActionType    string         `json:"action_type"`
	ActionPayload map[string]any `json:"action_payload"`
	Timestamp     int64          `json:"timestamp"` // unix milliseconds
}

// ActionsKey returns the list key holding the journal of one game.
func ActionsKey(gameID uuid.UUID) string {
	return "war:actions:" + gameID.String()
}

// Publisher writes game actions and results to Redis lists.
// A nil Publisher, or one without a client, drops everything.
type Publisher struct {
	rdb *redis.Client
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials Redis and verifies it answers PING.
func Connect(ctx context.Context, opts Options) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &Publisher{rdb: rdb}, nil
}

// NewPublisher wraps an existing client.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) enabled() bool { return p != nil && p.rdb != nil }

// PublishGameAction appends rec to the game's action list and refreshes its TTL.
func (p *Publisher) PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if !p.enabled() {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action: %w", err)
	}
	key := ActionsKey(rec.GameID)
	pipe := p.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, actionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push action %d: %w", rec.ActionIndex, err)
	}
	return nil
}

// PublishResult appends a finished game summary to ResultsKey.
func (p *Publisher) PublishResult(ctx context.Context, result any) error {
	if !p.enabled() {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := p.rdb.RPush(ctx, ResultsKey, data).Err(); err != nil {
		return fmt.Errorf("push result: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (p *Publisher) Close() error {
	if !p.enabled() {
		return nil
	}
	return p.rdb.Close()
}
