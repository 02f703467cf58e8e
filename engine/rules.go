package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidRules is returned when HouseRules hold an unsupported value.
var ErrInvalidRules = errors.New("invalid house rules")

const (
	MinDuelAmount     = 1
	MaxDuelAmount     = 3
	DefaultDuelAmount = 3
)

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	DuelAmount uint8 // face-down cards each player antes on a tie (1–3)
	Shuffle    bool  // shuffle the deck before dealing
}

// DefaultHouseRules returns the standard War rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		DuelAmount: DefaultDuelAmount,
		Shuffle:    true,
	}
}

// Validate checks that the rules are playable.
func (r HouseRules) Validate() error {
	if r.DuelAmount < MinDuelAmount || r.DuelAmount > MaxDuelAmount {
		return fmt.Errorf("%w: duel amount %d not in %d..%d", ErrInvalidRules, r.DuelAmount, MinDuelAmount, MaxDuelAmount)
	}
	return nil
}

// anteFor returns how many face-down cards a player holding handLen cards
// commits on a tie, and false when that player cannot continue the duel.
// A player always keeps one card to turn face up after anteing.
func (r HouseRules) anteFor(handLen int) (uint8, bool) {
	if handLen <= 1 {
		return 0, false
	}
	n := int(r.DuelAmount)
	if handLen < n+1 {
		n = max(handLen-1, 1)
	}
	return uint8(n), true
}
