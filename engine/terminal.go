package engine

// award gives the deciding play and the whole pot to winner. The winner's
// own card goes in first, then the loser's, then the pot in commit order.
func (g *GameState) award(res *RoundResult, p *pot, winner uint8, own, taken Card) {
	h := &g.Players[winner].Hand
	h.Append(own, taken)
	h.Append(p.slice()...)

	res.PotSize = 2 + p.n
	res.Winner = int8(winner)
	if winner == 0 {
		res.Outcome = OutcomeWinA
	} else {
		res.Outcome = OutcomeWinB
	}

	if h.Len() == DeckSize {
		g.finish(res, int8(winner), ReasonCollectedAll)
	}
}

// eliminate ends the game because one or both players cannot continue.
// A single eliminated player forfeits: the opponent wins and takes the pot,
// even when that leaves the loser holding cards. When both are out at the
// same check nobody wins and each pot card goes back to its owner.
func (g *GameState) eliminate(res *RoundResult, p *pot, outA, outB bool) {
	res.PotSize = p.n
	if outA && outB {
		for i := uint8(0); i < p.n; i++ {
			g.Players[p.owners[i]].Hand.Append(p.cards[i])
		}
		g.finish(res, NoWinner, ReasonStalemate)
		return
	}

	winner := uint8(0)
	if outA {
		winner = 1
	}
	g.Players[winner].Hand.Append(p.slice()...)
	g.finish(res, int8(winner), ReasonExhausted)
}

func (g *GameState) finish(res *RoundResult, winner int8, reason GameOverReason) {
	g.Flags |= FlagGameOver
	g.Winner = winner
	g.Reason = reason

	res.Outcome = OutcomeGameOver
	res.Reason = reason
	res.Winner = winner
}

// CheckInvariants reports whether every card is held exactly once across
// both hands. It is meaningful between rounds, when no pot is in flight.
func (g *GameState) CheckInvariants() bool {
	if g.TotalCards() != DeckSize {
		return false
	}
	var seen uint64
	for p := range g.Players {
		for _, c := range g.Players[p].Hand.Cards() {
			bit := uint64(1) << c.index()
			if !c.Valid() || seen&bit != 0 {
				return false
			}
			seen |= bit
		}
	}
	return true
}
