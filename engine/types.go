package engine

import "fmt"

// Suit constants, packed into upper 4 bits of Card.
const (
	SuitClubs    uint8 = 0
	SuitDiamonds uint8 = 1
	SuitHearts   uint8 = 2
	SuitSpades   uint8 = 3
)

// Rank constants, packed into lower 4 bits of Card.
// The numeric value is the rank's strength: Two is weakest, Ace strongest.
const (
	RankTwo   uint8 = 0
	RankThree uint8 = 1
	RankFour  uint8 = 2
	RankFive  uint8 = 3
	RankSix   uint8 = 4
	RankSeven uint8 = 5
	RankEight uint8 = 6
	RankNine  uint8 = 7
	RankTen   uint8 = 8
	RankJack  uint8 = 9
	RankQueen uint8 = 10
	RankKing  uint8 = 11
	RankAce   uint8 = 12
)

const (
	NumRanks = 13
	NumSuits = 4
)

var (
	rankNames = [NumRanks]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	rankChars = [NumRanks]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}
	suitNames = [NumSuits]string{"Clubs", "Diamonds", "Hearts", "Spades"}
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// RankValue is the ordinal of the rank in 2..A. Plays are compared on it.
func (c Card) RankValue() int { return int(c.Rank()) }

// SuitValue is the ordinal of the suit in Clubs, Diamonds, Hearts, Spades.
func (c Card) SuitValue() int { return int(c.Suit()) }

// Valid reports whether c is one of the 52 standard cards.
func (c Card) Valid() bool {
	return c != EmptyCard && c.Suit() < NumSuits && c.Rank() < NumRanks
}

// index maps a valid card to 0..51, used for membership bitsets.
func (c Card) index() int { return int(c.Suit())*NumRanks + int(c.Rank()) }

// RankName returns the rank label ("2".."10", "J", "Q", "K", "A").
func (c Card) RankName() string {
	if !c.Valid() {
		return "?"
	}
	return rankNames[c.Rank()]
}

// SuitName returns the suit label ("Clubs", "Diamonds", "Hearts", "Spades").
func (c Card) SuitName() string {
	if !c.Valid() {
		return "?"
	}
	return suitNames[c.Suit()]
}

// ID returns the card identity in the "<rank>-<suit>" form, e.g. "10-Hearts".
func (c Card) ID() string {
	if !c.Valid() {
		return "?"
	}
	return rankNames[c.Rank()] + "-" + suitNames[c.Suit()]
}

// String returns a two-character form such as "TH" or "2C".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitNames[c.Suit()][0]})
}

// ParseCardID parses the "<rank>-<suit>" form produced by ID.
func ParseCardID(id string) (Card, error) {
	for r, rn := range rankNames {
		if len(id) <= len(rn)+1 || id[:len(rn)] != rn || id[len(rn)] != '-' {
			continue
		}
		suit := id[len(rn)+1:]
		for s, sn := range suitNames {
			if sn == suit {
				return NewCard(uint8(s), uint8(r)), nil
			}
		}
		return EmptyCard, fmt.Errorf("parse card %q: unknown suit %q", id, suit)
	}
	return EmptyCard, fmt.Errorf("parse card %q: unknown rank", id)
}

// Outcome is the result of a full round resolution.
type Outcome uint8

const (
	OutcomeNone     Outcome = iota // 0: no round resolved
	OutcomeWinA                    // 1: player A took the pot
	OutcomeWinB                    // 2: player B took the pot
	OutcomeGameOver                // 3: the game ended during this round
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWinA:
		return "win_a"
	case OutcomeWinB:
		return "win_b"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "none"
	}
}

// GameOverReason explains why a game ended.
type GameOverReason uint8

const (
	ReasonNone          GameOverReason = iota // 0
	ReasonCollectedAll                        // 1: winner holds every card
	ReasonExhausted                           // 2: loser could not play or ante
	ReasonStalemate                           // 3: both players out at the same check
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonCollectedAll:
		return "collected_all"
	case ReasonExhausted:
		return "exhausted"
	case ReasonStalemate:
		return "stalemate"
	default:
		return "none"
	}
}

// PlayResult is the result of a single face-up comparison.
type PlayResult uint8

const (
	PlayWinA PlayResult = iota // 0
	PlayWinB                   // 1
	PlayTie                    // 2: escalates into a duel
)

// Play records one comparison inside a round. For ties, AnteA/AnteB hold the
// number of face-down cards each side committed to the pot afterwards.
type Play struct {
	CardA  Card
	CardB  Card
	Result PlayResult
	AnteA  uint8
	AnteB  uint8
}

// RoundResult describes everything that happened in one ResolveRound call.
type RoundResult struct {
	Outcome Outcome
	Reason  GameOverReason
	Winner  int8 // 0, 1, or NoWinner
	Plays   []Play
	PotSize uint8 // cards awarded (or returned) at the end of the round
	Duels   uint8 // ties encountered in this round
}
