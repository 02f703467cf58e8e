// internal/game/engine_adapter.go
package game

import (
	"github.com/Fyrlex/war/engine"
)

// mapHouseRulesToEngine converts session house rules to the engine's compact form.
// Out-of-range duel amounts are passed through so engine validation rejects them.
func (g *WarGame) mapHouseRulesToEngine() engine.HouseRules {
	amount := g.HouseRules.DuelAmount
	if amount < 0 || amount > 255 {
		amount = 0
	}
	return engine.HouseRules{
		DuelAmount: uint8(amount),
		Shuffle:    g.HouseRules.ShuffleOnDeal,
	}
}

// engineCardToEvent converts an engine card into its event representation,
// attributing it to p when p is non-nil.
func engineCardToEvent(c engine.Card, p *Player) *EventCard {
	if !c.Valid() {
		return nil
	}
	ev := &EventCard{
		ID:    c.ID(),
		Rank:  c.RankName(),
		Suit:  c.SuitName(),
		Value: c.RankValue(),
	}
	if p != nil {
		ev.User = &EventUser{ID: p.ID, Name: p.Name}
	}
	return ev
}

// playResultString names the outcome of one face-up comparison.
func playResultString(r engine.PlayResult) string {
	switch r {
	case engine.PlayWinA:
		return "win_a"
	case engine.PlayWinB:
		return "win_b"
	case engine.PlayTie:
		return "tie"
	default:
		return "unknown"
	}
}
