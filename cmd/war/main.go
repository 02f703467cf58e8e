package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/Fyrlex/war/internal/cache"
	"github.com/Fyrlex/war/internal/config"
	"github.com/Fyrlex/war/internal/database"
	"github.com/Fyrlex/war/internal/game"
	"github.com/Fyrlex/war/internal/logging"
)

const connectTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "war: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Verbose: cfg.VerboseLogging,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
	}, os.Stdout)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := context.Background()
	opts := []game.Option{game.WithLogger(logger)}

	if store := openStore(ctx, cfg, logger); store != nil {
		defer store.Close()
		opts = append(opts, game.WithStore(store))
	}
	if pub := connectJournal(ctx, cfg, logger); pub != nil {
		defer pub.Close()
		opts = append(opts, game.WithPublisher(pub))
	}

	g := game.NewWarGame(houseRulesFromConfig(cfg), opts...)
	if err := g.SetPlayers(cfg.PlayerOne, cfg.PlayerTwo); err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if err := g.Deal(seed); err != nil {
		return fmt.Errorf("deal: %w", err)
	}

	result, err := g.Run(ctx)
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return renderResult(result)
}

func houseRulesFromConfig(cfg config.Config) game.HouseRules {
	return game.HouseRules{
		ShuffleOnDeal:      cfg.ShuffleOnDeal,
		DuelAmount:         int(cfg.DuelAmount),
		Timeout:            cfg.Timeout(),
		StoreTimedOutGames: cfg.StoreTimedOutGames,
		PersistResults:     cfg.PersistResults,
		VerboseLogging:     cfg.VerboseLogging,
	}
}

// openStore returns nil when persistence is off or no backend is reachable;
// the game still runs without one.
func openStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) database.ResultStore {
	if !cfg.PersistResults {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	store, err := database.Open(ctx, database.Options{
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		logger.Warn("no result store configured; results will not be persisted")
		return nil
	case err != nil:
		logger.WithError(err).Warn("result store unavailable; results will not be persisted")
		return nil
	}
	return store
}

func connectJournal(ctx context.Context, cfg config.Config, logger *logrus.Logger) *cache.Publisher {
	if cfg.RedisAddr == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pub, err := cache.Connect(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.WithError(err).Warn("action journal disabled")
		return nil
	}
	return pub
}

func renderResult(r game.Result) error {
	winner := "none"
	if r.WinnerName != "" {
		winner = r.WinnerName
	}
	data := pterm.TableData{
		{"Game", r.GameID.String()},
		{"Players", r.Players[0] + " vs " + r.Players[1]},
		{"Winner", winner},
		{"Reason", r.Reason},
		{"Rounds", strconv.Itoa(r.Rounds)},
		{"Duels", strconv.Itoa(r.Duels)},
		{"Duration", r.Duration.String()},
		{"Timed out", strconv.FormatBool(r.TimedOut)},
	}
	pterm.DefaultSection.Println("War")
	return pterm.DefaultTable.WithBoxed().WithData(data).Render()
}
