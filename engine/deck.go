package engine

// NewDeck returns the 52 cards in canonical order: rank-major, suit-minor
// (2-Clubs, 2-Diamonds, 2-Hearts, 2-Spades, 3-Clubs, ...).
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for rank := uint8(0); rank < NumRanks; rank++ {
		for suit := uint8(0); suit < NumSuits; suit++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of deck. The order depends only on seed.
func ShuffleDeck(deck []Card, seed uint64) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	if seed == 0 {
		seed = 1
	}
	x := seed
	for i := len(out) - 1; i > 0; i-- {
		x = nextRand(x)
		j := int(x % uint64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
