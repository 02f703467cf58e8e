// Package engine implements the rules of two-player War.
//
// The game state is a flat value type: hands are fixed ring buffers and the
// in-flight pot lives on the stack of ResolveRound, so a full game runs
// without heap allocation beyond the per-round play log.
package engine

import "errors"

const (
	NumPlayers = 2
	DeckSize   = 52
)

// NoWinner marks a game that ended (or is still running) without a winner.
const NoWinner int8 = -1

var (
	// ErrNotDealt is returned when a round is requested before the deal.
	ErrNotDealt = errors.New("cards have not been dealt")
	// ErrGameOver is returned when a round is requested after the game ended.
	ErrGameOver = errors.New("game is already over")
)

// PlayerState holds one player's hand.
type PlayerState struct {
	Hand Hand
}

// GameState holds the complete, self-contained state of a War game.
type GameState struct {
	Players [NumPlayers]PlayerState
	Rules   HouseRules
	Seed    uint64 // seed used for the current deal
	RNG     uint64
	Flags   uint16
	Winner  int8
	Reason  GameOverReason
	Rounds  uint32 // every face-up play, including plays inside duels
	Duels   uint32 // every tie that escalated
}

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	FlagDealt    uint16 = 1 << 0
	FlagGameOver uint16 = 1 << 1
)

func (g *GameState) IsDealt() bool    { return g.Flags&FlagDealt != 0 }
func (g *GameState) IsGameOver() bool { return g.Flags&FlagGameOver != 0 }

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

func nextRand(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// ---------------------------------------------------------------------------
// NewGame, Deal and Reset
// ---------------------------------------------------------------------------

// NewGame initializes a new GameState with the given seed and rules.
// Nothing is dealt yet.
func NewGame(seed uint64, rules HouseRules) GameState {
	var g GameState
	g.Rules = rules
	g.Winner = NoWinner
	g.seed(seed)
	return g
}

func (g *GameState) seed(seed uint64) {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	g.Seed = seed
	g.RNG = seed
}

// Deal builds the deck, shuffles it when the rules ask for it, and hands the
// cards out one at a time, alternating between player 0 and player 1.
func (g *GameState) Deal() {
	deck := NewDeck()
	if g.Rules.Shuffle {
		deck = ShuffleDeck(deck, g.RNG)
		g.RNG = nextRand(g.RNG)
	}
	for i, c := range deck {
		g.Players[i%NumPlayers].Hand.Append(c)
	}
	g.Flags |= FlagDealt
}

// Reset clears hands, counters and the winner, reseeds, and deals again.
// Reset with the same seed reproduces the same initial deal.
func (g *GameState) Reset(seed uint64) {
	rules := g.Rules
	*g = NewGame(seed, rules)
	g.Deal()
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// HandLen returns the number of cards in the given player's hand.
func (g *GameState) HandLen(player uint8) int {
	return g.Players[player].Hand.Len()
}

// TotalCards returns the number of cards held across both hands.
// Between rounds it is always DeckSize.
func (g *GameState) TotalCards() int {
	return g.Players[0].Hand.Len() + g.Players[1].Hand.Len()
}

// OpponentOf returns the player index of the opponent.
func (g *GameState) OpponentOf(player uint8) uint8 {
	return 1 - player
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
