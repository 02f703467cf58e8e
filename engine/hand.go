package engine

// Hand is an ordered FIFO of cards backed by a fixed ring buffer.
// The front card is the next one played; won cards are appended at the back.
// A card can appear in a hand at most once.
type Hand struct {
	cards [DeckSize]Card
	head  uint8
	n     uint8
	seen  uint64 // bit i set when the card with index i is held
}

// Len returns the number of cards in the hand.
func (h *Hand) Len() int { return int(h.n) }

// IsEmpty reports whether the hand holds no cards.
func (h *Hand) IsEmpty() bool { return h.n == 0 }

// Front returns the next card to be played without removing it.
func (h *Hand) Front() (Card, bool) {
	if h.n == 0 {
		return EmptyCard, false
	}
	return h.cards[h.head], true
}

// PopFront removes and returns the front card.
func (h *Hand) PopFront() (Card, bool) {
	if h.n == 0 {
		return EmptyCard, false
	}
	c := h.cards[h.head]
	h.cards[h.head] = EmptyCard
	h.head = (h.head + 1) % DeckSize
	h.n--
	h.seen &^= 1 << c.index()
	return c, true
}

// TakeFront removes up to n cards from the front, in play order.
func (h *Hand) TakeFront(n int) []Card {
	if n > int(h.n) {
		n = int(h.n)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, _ := h.PopFront()
		out = append(out, c)
	}
	return out
}

// Append adds cards at the back in the given order. It stops and returns
// false at the first card that is invalid, already held, or would overflow.
func (h *Hand) Append(cards ...Card) bool {
	for _, c := range cards {
		if !c.Valid() || h.Contains(c) || h.n >= DeckSize {
			return false
		}
		h.cards[(int(h.head)+int(h.n))%DeckSize] = c
		h.n++
		h.seen |= 1 << c.index()
	}
	return true
}

// Contains reports whether the card is held.
func (h *Hand) Contains(c Card) bool {
	if !c.Valid() {
		return false
	}
	return h.seen&(1<<c.index()) != 0
}

// Remove deletes the card wherever it sits, keeping the order of the rest.
func (h *Hand) Remove(c Card) bool {
	if !h.Contains(c) {
		return false
	}
	kept := h.Cards()
	h.Clear()
	for _, k := range kept {
		if k != c {
			h.Append(k)
		}
	}
	return true
}

// Cards returns a copy of the hand in play order.
func (h *Hand) Cards() []Card {
	out := make([]Card, h.n)
	for i := range out {
		out[i] = h.cards[(int(h.head)+i)%DeckSize]
	}
	return out
}

// Clear empties the hand.
func (h *Hand) Clear() {
	*h = Hand{}
}
