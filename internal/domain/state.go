package domain

import "strconv"

// Suit is one of the four French suits, serialized as a single letter.
type Suit string

const (
	// SuitNone marks the absence of a suit, e.g. a no-trump hand.
	SuitNone     Suit = ""
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
)

// Suits lists the suits in deck-construction order.
var Suits = [4]Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Color is the red/black color of a suit.
type Color int

const (
	ColorNone Color = iota
	ColorBlack
	ColorRed
)

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorRed:
		return "red"
	default:
		return "none"
	}
}

// Valid reports whether s is one of the four real suits.
func (s Suit) Valid() bool {
	return suitIndex(s) >= 0
}

// Color returns the suit color, ColorNone for SuitNone.
func (s Suit) Color() Color {
	switch s {
	case SuitSpades, SuitClubs:
		return ColorBlack
	case SuitHearts, SuitDiamonds:
		return ColorRed
	default:
		return ColorNone
	}
}

// Symbol returns the printable glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case SuitSpades:
		return "♠"
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	default:
		return "-"
	}
}

// SameColorSuit returns the other suit of the same color (spades <-> clubs,
// hearts <-> diamonds).
func (s Suit) SameColorSuit() Suit {
	switch s {
	case SuitSpades:
		return SuitClubs
	case SuitClubs:
		return SuitSpades
	case SuitHearts:
		return SuitDiamonds
	case SuitDiamonds:
		return SuitHearts
	default:
		return SuitNone
	}
}

func suitIndex(s Suit) int {
	for i, v := range Suits {
		if v == s {
			return i
		}
	}
	return -1
}

// Rank is a card rank valued 2..14 (ace high in natural order).
type Rank int

const (
	Rank2  Rank = 2
	Rank3  Rank = 3
	Rank4  Rank = 4
	Rank5  Rank = 5
	Rank6  Rank = 6
	Rank7  Rank = 7
	Rank8  Rank = 8
	Rank9  Rank = 9
	Rank10 Rank = 10
	RankJ  Rank = 11
	RankQ  Rank = 12
	RankK  Rank = 13
	RankA  Rank = 14
)

// RanksPerSuit is the number of ranks in each suit.
const RanksPerSuit = 13

// Valid reports whether r lies in 2..A.
func (r Rank) Valid() bool {
	return r >= Rank2 && r <= RankA
}

func (r Rank) String() string {
	switch r {
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	default:
		if r.Valid() {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Color returns the color of the card's suit.
func (c Card) Color() Color {
	return c.Suit.Color()
}

// String renders the card as rank followed by suit letter, e.g. "10H" or "AS".
func (c Card) String() string {
	return c.Rank.String() + string(c.Suit)
}

// Index returns the card's position 0..51 in NewDeck order.
func (c Card) Index() int {
	return suitIndex(c.Suit)*RanksPerSuit + int(c.Rank-Rank2)
}
