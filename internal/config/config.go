// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the simulator reads from the environment.
type Config struct {
	// ShuffleOnDeal shuffles the deck before dealing.
	ShuffleOnDeal bool `env:"WAR_SHUFFLE_ON_DEAL" envDefault:"true"`

	// DuelAmount is how many face-down cards each player antes on a tie (1–3).
	DuelAmount uint8 `env:"WAR_DUEL_AMOUNT" envDefault:"3"`

	// TimeoutMs caps how long one game may run before it is called a draw.
	TimeoutMs int `env:"WAR_TIMEOUT_MS" envDefault:"2000"`

	// StoreTimedOutGames persists games that ended by timeout.
	StoreTimedOutGames bool `env:"WAR_STORE_TIMED_OUT_GAMES" envDefault:"false"`

	// PersistResults enables writing finished games to the result store.
	PersistResults bool `env:"WAR_PERSIST_RESULTS" envDefault:"true"`

	// VerboseLogging logs every play at debug level.
	VerboseLogging bool `env:"WAR_VERBOSE" envDefault:"false"`

	// Seed drives the shuffle. 0 picks a time-based seed.
	Seed uint64 `env:"WAR_SEED" envDefault:"0"`

	PlayerOne string `env:"WAR_PLAYER_ONE" envDefault:"player1"`
	PlayerTwo string `env:"WAR_PLAYER_TWO" envDefault:"player2"`

	// DatabaseURL selects the Postgres store when set.
	DatabaseURL string `env:"DATABASE_URL"`
	// SQLitePath is used when DatabaseURL is empty. Empty disables storage.
	SQLitePath string `env:"WAR_SQLITE_PATH" envDefault:"war.db"`

	// RedisAddr enables the action journal when set.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LogFile   string `env:"WAR_LOG_FILE"`
	LogFormat string `env:"WAR_LOG_FORMAT" envDefault:"text"`
}

// Timeout returns TimeoutMs as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Load reads optional .env files, then parses the environment into a Config.
// Missing .env files are ignored; variables already set in the environment
// take precedence over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that env tags cannot express.
func (c Config) Validate() error {
	if c.DuelAmount < 1 || c.DuelAmount > 3 {
		return fmt.Errorf("WAR_DUEL_AMOUNT must be 1, 2 or 3, got %d", c.DuelAmount)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("WAR_TIMEOUT_MS must be positive, got %d", c.TimeoutMs)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("WAR_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.PlayerOne == "" || c.PlayerTwo == "" {
		return errors.New("player names must not be empty")
	}
	return nil
}
