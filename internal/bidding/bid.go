package bidding

import (
	"fmt"

	"whist/internal/domain"
)

// Kind discriminates the shape of a bid.
type Kind int

const (
	KindNone Kind = iota
	// KindCard is a face-down card whose color carries the bid (Minnesota Whist).
	KindCard
	// KindLevel is a trick target with optional direction and no-trump flags.
	KindLevel
	// KindExact is an exact trick prediction (Oh Hell).
	KindExact
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindLevel:
		return "level"
	case KindExact:
		return "exact"
	default:
		return "none"
	}
}

// ParseKind reads the String form of a kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "card":
		return KindCard, nil
	case "level":
		return KindLevel, nil
	case "exact":
		return KindExact, nil
	default:
		return KindNone, domain.Malformed(domain.CodeInvalidFormat, "unknown bid kind %q", s)
	}
}

// Bid is one decision submitted during an auction. Only the fields belonging
// to Kind are meaningful.
type Bid struct {
	Kind      Kind             `json:"kind"`
	Pass      bool             `json:"pass,omitempty"`
	Card      domain.Card      `json:"card"`
	Level     int              `json:"level,omitempty"`
	Direction domain.Direction `json:"direction,omitempty"`
	NoTrump   bool             `json:"no_trump,omitempty"`
}

// CardBid commits card face down.
func CardBid(c domain.Card) Bid {
	return Bid{Kind: KindCard, Card: c}
}

// LevelBid bids level tricks over book in a trump suit to be named later.
func LevelBid(level int, dir domain.Direction) Bid {
	return Bid{Kind: KindLevel, Level: level, Direction: dir}
}

// NoTrumpBid bids level tricks with no trump suit.
func NoTrumpBid(level int, dir domain.Direction) Bid {
	return Bid{Kind: KindLevel, Level: level, Direction: dir, NoTrump: true}
}

// ExactBid predicts exactly n tricks.
func ExactBid(n int) Bid {
	return Bid{Kind: KindExact, Level: n}
}

// Pass declines to bid in a level auction.
func Pass() Bid {
	return Bid{Kind: KindLevel, Pass: true}
}

func (b Bid) String() string {
	switch {
	case b.Pass:
		return "pass"
	case b.Kind == KindCard:
		return "card " + b.Card.String()
	case b.Kind == KindExact:
		return fmt.Sprintf("exactly %d", b.Level)
	case b.Kind == KindLevel && b.NoTrump:
		return fmt.Sprintf("%d no-trump %s", b.Level, b.Direction)
	case b.Kind == KindLevel:
		return fmt.Sprintf("%d %s", b.Level, b.Direction)
	default:
		return "none"
	}
}

// Entry records a bid with its seat. Round counts re-bid rounds in auctions
// that have them and is zero otherwise.
type Entry struct {
	Seat  domain.Seat `json:"seat"`
	Bid   Bid         `json:"bid"`
	Round int         `json:"round,omitempty"`
}

// History is the auction so far in submission order.
type History []Entry

// With returns a copy of h extended by e.
func (h History) With(e Entry) History {
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, e)
}

// Latest returns the most recent entry of seat.
func (h History) Latest(seat domain.Seat) (Entry, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Seat == seat {
			return h[i], true
		}
	}
	return Entry{}, false
}

func (h History) hasBid(seat domain.Seat, round int) bool {
	for _, e := range h {
		if e.Seat == seat && e.Round == round {
			return true
		}
	}
	return false
}

func checkShape(b Bid, want Kind, allowPass bool) error {
	if b.Kind != want {
		return domain.InvalidBid(domain.CodeWrongShape, "a %s bid is expected here, not a %s bid", want, b.Kind)
	}
	if b.Pass && !allowPass {
		return domain.InvalidBid(domain.CodeWrongShape, "passing is not allowed here")
	}
	return nil
}
