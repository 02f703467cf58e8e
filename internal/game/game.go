// internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Fyrlex/war/engine"
	"github.com/Fyrlex/war/internal/cache"
	"github.com/Fyrlex/war/internal/database"
	"github.com/Fyrlex/war/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrPlayersNotSet is returned when dealing before both players joined.
var ErrPlayersNotSet = errors.New("both players must be set before dealing")

const (
	// DefaultTimeout is how long a game runs before it is called a draw.
	DefaultTimeout = 2 * time.Second

	persistTimeout = 5 * time.Second
	publishTimeout = 2 * time.Second
)

// OnGameEndFunc defines the signature for a callback function executed when a game ends.
type OnGameEndFunc func(gameID uuid.UUID, result Result)

// GameEventType represents the type of a game event passed to BroadcastFn.
type GameEventType string

// Constants defining the GameEvent types emitted while a game runs.
const (
	EventGameDealt GameEventType = "game_dealt" // Cards were dealt; payload has hand sizes.
	EventGameReset GameEventType = "game_reset" // Hands cleared and redealt for a fresh run.
	EventRoundPlay GameEventType = "round_play" // One face-up comparison.
	EventRoundDuel GameEventType = "round_duel" // A tie escalated; payload has ante counts.
	EventRoundWon  GameEventType = "round_won"  // A player took the pot.
	EventGameEnd   GameEventType = "game_end"   // Game has ended, includes results.
)

// EventUser identifies a player within a GameEvent payload.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// EventCard describes a card within a GameEvent payload.
type EventCard struct {
	ID    string     `json:"id"`
	Rank  string     `json:"rank"`
	Suit  string     `json:"suit"`
	Value int        `json:"value"`
	User  *EventUser `json:"user,omitempty"` // Player that played the card.
}

// GameEvent is the structure passed to BroadcastFn for every state change.
type GameEvent struct {
	Type    GameEventType  `json:"type"`
	User    *EventUser     `json:"user,omitempty"`
	Card1   *EventCard     `json:"card1,omitempty"` // Player A's card in a play.
	Card2   *EventCard     `json:"card2,omitempty"` // Player B's card in a play.
	Payload map[string]any `json:"payload,omitempty"`
}

// Player is a participant in a game.
type Player struct {
	ID   uuid.UUID
	Name string
}

// HouseRules holds the session-level settings of a game.
type HouseRules struct {
	ShuffleOnDeal      bool          `json:"shuffleOnDeal"`
	DuelAmount         int           `json:"duelAmount"`         // face-down cards anted on a tie (1–3)
	Timeout            time.Duration `json:"timeout"`            // forced draw after this much play time
	StoreTimedOutGames bool          `json:"storeTimedOutGames"` // persist games that hit Timeout
	PersistResults     bool          `json:"persistResults"`
	VerboseLogging     bool          `json:"verboseLogging"` // log every play at debug level
}

// DefaultHouseRules returns the standard session settings.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		ShuffleOnDeal:  true,
		DuelAmount:     engine.DefaultDuelAmount,
		Timeout:        DefaultTimeout,
		PersistResults: true,
	}
}

// ResultSaver stores finished games. database.ResultStore satisfies it.
type ResultSaver interface {
	SaveResult(ctx context.Context, rec database.Record) (int64, error)
}

// ActionPublisher journals game actions and results. *cache.Publisher satisfies it.
type ActionPublisher interface {
	PublishGameAction(ctx context.Context, rec cache.GameActionRecord) error
	PublishResult(ctx context.Context, result any) error
}

// WarGame drives a single game of War: it deals, resolves rounds through the
// engine until someone wins or the timeout elapses, and reports the result.
type WarGame struct {
	ID uuid.UUID // Unique identifier for this game instance.

	HouseRules HouseRules
	Players    [engine.NumPlayers]*Player

	Engine engine.GameState // The authoritative game state.

	// Game Lifecycle State
	StartedAt time.Time
	Duration  time.Duration
	GameOver  bool
	TimedOut  bool
	Winner    int8  // engine.NoWinner until someone wins
	RecordID  int64 // row id assigned by the result store, 0 if not stored

	// Communication Callbacks
	BroadcastFn func(ev GameEvent) // Receives every game event.
	OnGameEnd   OnGameEndFunc      // Callback executed when the game finishes.

	store       ResultSaver
	publisher   ActionPublisher
	logger      *logrus.Logger
	log         *logrus.Entry
	now         func() time.Time
	actionIndex int // Sequential index for journaled actions.

	Mu sync.Mutex // Protects game state.
}

// Option configures optional collaborators of a WarGame.
type Option func(*WarGame)

// WithStore persists finished games through s.
func WithStore(s ResultSaver) Option {
	return func(g *WarGame) { g.store = s }
}

// WithPublisher journals actions and results through p.
func WithPublisher(p ActionPublisher) Option {
	return func(g *WarGame) { g.publisher = p }
}

// WithLogger sets the logger. Without it the game logs nothing.
func WithLogger(l *logrus.Logger) Option {
	return func(g *WarGame) { g.logger = l }
}

// WithClock replaces time.Now for timing and timeout checks.
func WithClock(now func() time.Time) Option {
	return func(g *WarGame) { g.now = now }
}

// NewWarGame creates a new game with the given rules. Players still need to
// be set and the cards dealt before it can run.
func NewWarGame(rules HouseRules, opts ...Option) *WarGame {
	g := &WarGame{
		ID:         uuid.New(),
		HouseRules: rules,
		Winner:     engine.NoWinner,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	g.log = g.logger.WithField("game_id", g.ID)
	return g
}

// SetPlayers names the two participants. Player A plays first in every comparison.
func (g *WarGame) SetPlayers(nameA, nameB string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Engine.IsDealt() {
		return fmt.Errorf("cannot change players after dealing")
	}
	if nameA == "" || nameB == "" {
		return fmt.Errorf("player names must not be empty")
	}
	g.Players[0] = &Player{ID: uuid.New(), Name: nameA}
	g.Players[1] = &Player{ID: uuid.New(), Name: nameB}
	return nil
}

// Deal builds the engine state from seed and deals the deck between the players.
func (g *WarGame) Deal(seed uint64) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Players[0] == nil || g.Players[1] == nil {
		return ErrPlayersNotSet
	}
	rules := g.mapHouseRulesToEngine()
	if err := rules.Validate(); err != nil {
		return err
	}
	if g.HouseRules.Timeout <= 0 {
		g.HouseRules.Timeout = DefaultTimeout
	}

	g.Engine = engine.NewGame(seed, rules)
	g.Engine.Deal()
	g.StartedAt = g.now()

	g.log.WithFields(logrus.Fields{
		"seed":        g.Engine.Seed,
		"shuffle":     rules.Shuffle,
		"duel_amount": rules.DuelAmount,
	}).Debug("cards dealt")
	g.fireEvent(GameEvent{Type: EventGameDealt, Payload: g.handSizesPayload()})
	g.logAction(EventGameDealt, map[string]any{"seed": g.Engine.Seed})
	return nil
}

// Reset clears hands and counters and redeals from seed under a fresh game ID.
// Resetting with the same seed reproduces the same initial deal.
func (g *WarGame) Reset(seed uint64) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if !g.Engine.IsDealt() {
		return engine.ErrNotDealt
	}
	g.ID = uuid.New()
	g.log = g.logger.WithField("game_id", g.ID)
	g.actionIndex = 0
	g.Duration = 0
	g.GameOver = false
	g.TimedOut = false
	g.Winner = engine.NoWinner
	g.RecordID = 0

	g.Engine.Reset(seed)
	g.StartedAt = g.now()

	g.log.WithField("seed", g.Engine.Seed).Debug("game reset")
	g.fireEvent(GameEvent{Type: EventGameReset, Payload: g.handSizesPayload()})
	g.logAction(EventGameReset, map[string]any{"seed": g.Engine.Seed})
	return nil
}

// Step resolves one round. Resolving before the deal returns engine.ErrNotDealt
// and resolving after the game ended returns engine.ErrGameOver.
func (g *WarGame) Step() (engine.RoundResult, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.stepLocked()
}

func (g *WarGame) stepLocked() (engine.RoundResult, error) {
	if g.GameOver {
		return engine.RoundResult{}, engine.ErrGameOver
	}
	res, err := g.Engine.ResolveRound()
	if err != nil {
		return res, err
	}

	g.reportRound(res)
	if res.Outcome == engine.OutcomeGameOver {
		g.endGame(false)
	}
	return res, nil
}

// Run resolves rounds until the game ends or the timeout elapses. The timeout
// is checked between rounds, so a long duel chain always completes. A timeout
// ends the game as a draw and is not an error; cancelling ctx stops the run
// and returns ctx.Err() without ending the game.
func (g *WarGame) Run(ctx context.Context) (Result, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if !g.Engine.IsDealt() {
		return g.resultLocked(), engine.ErrNotDealt
	}

	for !g.GameOver {
		if err := ctx.Err(); err != nil {
			g.log.WithError(err).Warn("game run cancelled")
			return g.resultLocked(), err
		}
		if g.now().Sub(g.StartedAt) > g.HouseRules.Timeout {
			g.endGame(true)
			break
		}
		if _, err := g.stepLocked(); err != nil {
			return g.resultLocked(), err
		}
	}
	return g.resultLocked(), nil
}

// reportRound logs and broadcasts every play of a resolved round.
// Assumes lock is held by caller.
func (g *WarGame) reportRound(res engine.RoundResult) {
	a, b := g.Players[0], g.Players[1]
	for _, play := range res.Plays {
		card1 := engineCardToEvent(play.CardA, a)
		card2 := engineCardToEvent(play.CardB, b)
		g.fireEvent(GameEvent{
			Type:    EventRoundPlay,
			Card1:   card1,
			Card2:   card2,
			Payload: map[string]any{"result": playResultString(play.Result)},
		})
		if g.HouseRules.VerboseLogging {
			g.log.Debugf("%s vs %s", play.CardA.RankName(), play.CardB.RankName())
		}

		if play.Result != engine.PlayTie {
			continue
		}
		payload := map[string]any{
			"anteA": int(play.AnteA),
			"anteB": int(play.AnteB),
			"duels": int(g.Engine.Duels),
		}
		g.fireEvent(GameEvent{Type: EventRoundDuel, Card1: card1, Card2: card2, Payload: payload})
		g.logAction(EventRoundDuel, payload)
		if g.HouseRules.VerboseLogging {
			g.log.WithFields(logrus.Fields{"ante_a": play.AnteA, "ante_b": play.AnteB}).Debug("duel")
		}
	}

	if res.Winner == engine.NoWinner || len(res.Plays) == 0 {
		return
	}
	winner := g.Players[res.Winner]
	loser := g.Players[1-res.Winner]
	payload := g.handSizesPayload()
	payload["pot"] = int(res.PotSize)
	g.fireEvent(GameEvent{Type: EventRoundWon, User: &EventUser{ID: winner.ID, Name: winner.Name}, Payload: payload})
	g.logAction(EventRoundWon, map[string]any{"winner": int(res.Winner), "pot": int(res.PotSize)})

	if g.HouseRules.VerboseLogging && len(res.Plays) > 0 {
		last := res.Plays[len(res.Plays)-1]
		own, other := last.CardA, last.CardB
		if res.Winner == 1 {
			own, other = other, own
		}
		g.log.Debugf("%s wins with %s against %s with %s", winner.Name, own.ID(), loser.Name, other.ID())
		g.log.Debugf("%s has %d cards", a.Name, g.Engine.HandLen(0))
		g.log.Debugf("%s has %d cards", b.Name, g.Engine.HandLen(1))
	}
}

// endGame finalizes the game, persists and publishes the result, and fires
// the end callbacks. Assumes lock is held by caller.
func (g *WarGame) endGame(timedOut bool) {
	g.GameOver = true
	g.TimedOut = timedOut
	g.Duration = g.now().Sub(g.StartedAt)
	if timedOut {
		g.Winner = engine.NoWinner
	} else {
		g.Winner = g.Engine.Winner
	}

	result := g.resultLocked()
	entry := g.log.WithFields(logrus.Fields{
		"rounds":    result.Rounds,
		"duels":     result.Duels,
		"duration":  result.Duration,
		"timed_out": result.TimedOut,
		"reason":    result.Reason,
	})
	if result.Winner >= 0 {
		entry.WithField("winner", result.WinnerName).Info("game won")
	} else {
		entry.Info("game ended without a winner")
	}

	g.fireEvent(GameEvent{
		Type: EventGameEnd,
		Payload: map[string]any{
			"winner":   int(result.Winner),
			"rounds":   result.Rounds,
			"duels":    result.Duels,
			"duration": result.Duration.Milliseconds(),
			"timedOut": result.TimedOut,
			"reason":   result.Reason,
		},
	})
	g.logAction(EventGameEnd, map[string]any{"winner": int(result.Winner), "timedOut": result.TimedOut})

	g.persistResult()
	g.publishResult(result)

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, result)
	}
}

// persistResult stores the finished game. Storage problems are logged and
// never fail the game. Assumes lock is held by caller.
func (g *WarGame) persistResult() {
	if !g.HouseRules.PersistResults {
		return
	}
	if g.TimedOut && !g.HouseRules.StoreTimedOutGames {
		g.log.Debug("timed out game not stored")
		return
	}
	if g.store == nil {
		g.log.Warn("no result store configured; result not persisted")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	id, err := g.store.SaveResult(ctx, g.recordLocked())
	if err != nil {
		g.log.WithError(err).Error("failed to persist game result")
		return
	}
	g.RecordID = id
	g.log.WithField("record_id", id).Debug("game result persisted")
}

func (g *WarGame) publishResult(result Result) {
	if g.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := g.publisher.PublishResult(ctx, result); err != nil {
		g.log.WithError(err).Warn("failed to publish game result")
	}
}

// logAction journals a game action through the publisher.
// Increments the internal action index for ordering.
// Assumes lock is held by caller.
func (g *WarGame) logAction(actionType GameEventType, payload map[string]any) {
	g.actionIndex++
	if g.publisher == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]any)
	}
	rec := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActionType:    string(actionType),
		ActionPayload: payload,
		Timestamp:     g.now().UnixMilli(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := g.publisher.PublishGameAction(ctx, rec); err != nil {
		g.log.WithError(err).Warnf("failed publishing action %d (%s)", rec.ActionIndex, rec.ActionType)
	}
}

// fireEvent passes ev to BroadcastFn when one is set.
func (g *WarGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

func (g *WarGame) handSizesPayload() map[string]any {
	return map[string]any{
		"handA": g.Engine.HandLen(0),
		"handB": g.Engine.HandLen(1),
	}
}
