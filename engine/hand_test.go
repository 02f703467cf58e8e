package engine

import "testing"

func mustCard(t *testing.T, id string) Card {
	t.Helper()
	c, err := ParseCardID(id)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func cardsOf(t *testing.T, ids ...string) []Card {
	t.Helper()
	out := make([]Card, len(ids))
	for i, id := range ids {
		out[i] = mustCard(t, id)
	}
	return out
}

func assertHand(t *testing.T, name string, h *Hand, want []Card) {
	t.Helper()
	got := h.Cards()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d (%v), want %d (%v)", name, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: got %v, want %v", name, got, want)
		}
	}
}

func TestHandFIFO(t *testing.T) {
	var h Hand
	if _, ok := h.Front(); ok {
		t.Fatal("Front on empty hand returned ok")
	}
	if _, ok := h.PopFront(); ok {
		t.Fatal("PopFront on empty hand returned ok")
	}

	cards := cardsOf(t, "2-Clubs", "K-Hearts", "10-Spades")
	if !h.Append(cards...) {
		t.Fatal("Append failed")
	}
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	front, ok := h.Front()
	if !ok || front != cards[0] {
		t.Fatalf("Front = %v, want %v", front, cards[0])
	}
	for i, want := range cards {
		got, ok := h.PopFront()
		if !ok || got != want {
			t.Fatalf("PopFront #%d = %v, want %v", i, got, want)
		}
	}
	if !h.IsEmpty() {
		t.Error("hand not empty after popping every card")
	}
}

func TestHandTakeFront(t *testing.T) {
	var h Hand
	h.Append(cardsOf(t, "2-Clubs", "3-Clubs", "4-Clubs", "5-Clubs")...)

	got := h.TakeFront(3)
	want := cardsOf(t, "2-Clubs", "3-Clubs", "4-Clubs")
	if len(got) != 3 {
		t.Fatalf("TakeFront(3) returned %d cards", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TakeFront(3) = %v, want %v", got, want)
		}
	}
	assertHand(t, "rest", &h, cardsOf(t, "5-Clubs"))

	if got := h.TakeFront(5); len(got) != 1 {
		t.Errorf("TakeFront past end returned %d cards, want 1", len(got))
	}
	if got := h.TakeFront(1); got != nil {
		t.Errorf("TakeFront on empty hand = %v, want nil", got)
	}
}

func TestHandRejectsDuplicates(t *testing.T) {
	var h Hand
	c := mustCard(t, "A-Spades")
	if !h.Append(c) {
		t.Fatal("first Append failed")
	}
	if h.Append(c) {
		t.Error("Append of a held card succeeded")
	}
	if h.Append(EmptyCard) {
		t.Error("Append of EmptyCard succeeded")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestHandRemoveKeepsOrder(t *testing.T) {
	var h Hand
	h.Append(cardsOf(t, "2-Clubs", "3-Clubs", "4-Clubs", "5-Clubs")...)

	if !h.Remove(mustCard(t, "3-Clubs")) {
		t.Fatal("Remove of held card returned false")
	}
	if h.Remove(mustCard(t, "3-Clubs")) {
		t.Error("second Remove returned true")
	}
	if h.Contains(mustCard(t, "3-Clubs")) {
		t.Error("removed card still reported as held")
	}
	assertHand(t, "after remove", &h, cardsOf(t, "2-Clubs", "4-Clubs", "5-Clubs"))
}

// TestHandWrapAround cycles every card through the ring buffer more than once.
func TestHandWrapAround(t *testing.T) {
	var h Hand
	deck := NewDeck()
	h.Append(deck...)
	if h.Len() != DeckSize {
		t.Fatalf("Len = %d, want %d", h.Len(), DeckSize)
	}

	for i := 0; i < DeckSize*3; i++ {
		c, ok := h.PopFront()
		if !ok {
			t.Fatalf("PopFront #%d failed", i)
		}
		if !h.Append(c) {
			t.Fatalf("Append #%d failed", i)
		}
	}
	assertHand(t, "after cycling", &h, deck)
}

func TestHandClear(t *testing.T) {
	var h Hand
	h.Append(cardsOf(t, "2-Clubs", "3-Clubs")...)
	h.Clear()
	if !h.IsEmpty() || h.Contains(mustCard(t, "2-Clubs")) {
		t.Error("Clear left cards behind")
	}
}
