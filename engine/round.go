package engine

// pot holds the cards at stake in an unresolved tie chain, in the order they
// were committed, along with the player that committed each one.
type pot struct {
	cards  [DeckSize]Card
	owners [DeckSize]uint8
	n      uint8
}

func (p *pot) add(owner uint8, cards ...Card) {
	for _, c := range cards {
		p.cards[p.n] = c
		p.owners[p.n] = owner
		p.n++
	}
}

func (p *pot) slice() []Card { return p.cards[:p.n] }

// ResolveRound plays one round: the front cards of both hands are compared
// and the higher rank takes both. A tie escalates into a duel: each player
// antes up to Rules.DuelAmount face-down cards and a new face-up play decides
// the whole pot. Duels chain until a play has a strict winner or a player
// can no longer continue.
//
// The chain is an explicit loop. Every iteration removes at least one card
// from each hand, so it ends after at most DeckSize/2 plays.
func (g *GameState) ResolveRound() (RoundResult, error) {
	if !g.IsDealt() {
		return RoundResult{}, ErrNotDealt
	}
	if g.IsGameOver() {
		return RoundResult{}, ErrGameOver
	}

	res := RoundResult{Winner: NoWinner}
	var p pot
	a, b := &g.Players[0].Hand, &g.Players[1].Hand

	for {
		if a.IsEmpty() || b.IsEmpty() {
			g.eliminate(&res, &p, a.IsEmpty(), b.IsEmpty())
			return res, nil
		}

		ca, _ := a.PopFront()
		cb, _ := b.PopFront()
		g.Rounds++
		play := Play{CardA: ca, CardB: cb}

		switch {
		case ca.RankValue() > cb.RankValue():
			play.Result = PlayWinA
			res.Plays = append(res.Plays, play)
			g.award(&res, &p, 0, ca, cb)
			return res, nil
		case ca.RankValue() < cb.RankValue():
			play.Result = PlayWinB
			res.Plays = append(res.Plays, play)
			g.award(&res, &p, 1, cb, ca)
			return res, nil
		}

		play.Result = PlayTie
		g.Duels++
		res.Duels++
		p.add(0, ca)
		p.add(1, cb)

		anteA, okA := g.Rules.anteFor(a.Len())
		anteB, okB := g.Rules.anteFor(b.Len())
		if !okA || !okB {
			res.Plays = append(res.Plays, play)
			g.eliminate(&res, &p, !okA, !okB)
			return res, nil
		}

		p.add(0, a.TakeFront(int(anteA))...)
		p.add(1, b.TakeFront(int(anteB))...)
		play.AnteA, play.AnteB = anteA, anteB
		res.Plays = append(res.Plays, play)
	}
}
