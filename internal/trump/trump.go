// Package trump derives the trump suit of a hand. Every policy is a pure read
// of a Snapshot; none of them touches hands or the deck.
package trump

import (
	"fmt"

	"whist/internal/domain"
)

// Method names how a variant arrives at its trump suit.
type Method string

const (
	MethodNone              Method = "none"
	MethodLastCardDealt     Method = "last_card_dealt"
	MethodBidWinnerDeclares Method = "bid_winner_declares"
	MethodTurnedCard        Method = "turned_card"
)

// Declaration is the auction winner's choice of trump.
type Declaration struct {
	Suit    domain.Suit `json:"suit,omitempty"`
	NoTrump bool        `json:"no_trump,omitempty"`
}

// Validate rejects declarations naming neither a suit nor no-trump, or both.
func (d Declaration) Validate() error {
	switch {
	case d.NoTrump && d.Suit != domain.SuitNone:
		return domain.InvalidBid(domain.CodeWrongShape, "declare a suit or no-trump, not both")
	case !d.NoTrump && !d.Suit.Valid():
		return domain.InvalidBid(domain.CodeWrongShape, "declare a trump suit or no-trump")
	}
	return nil
}

// Snapshot is the part of hand state trump policies read.
type Snapshot struct {
	DealerLastCard *domain.Card
	TurnedCard     *domain.Card
	Declaration    *Declaration
}

// Policy resolves the trump suit; domain.SuitNone means no trump.
type Policy func(Snapshot) domain.Suit

// For returns the policy implementing m.
func For(m Method) (Policy, error) {
	switch m {
	case MethodNone:
		return None, nil
	case MethodLastCardDealt:
		return LastCardDealt, nil
	case MethodBidWinnerDeclares:
		return BidWinnerDeclares, nil
	case MethodTurnedCard:
		return TurnedCard, nil
	default:
		return nil, domain.Malformed(domain.CodeInvalidFormat, "unknown trump method %q", m)
	}
}

// None is played without trump.
func None(Snapshot) domain.Suit {
	return domain.SuitNone
}

// LastCardDealt is the suit of the final card dealt, which goes to the dealer.
func LastCardDealt(s Snapshot) domain.Suit {
	if s.DealerLastCard == nil {
		panic("trump: last card dealt missing from snapshot")
	}
	return s.DealerLastCard.Suit
}

// BidWinnerDeclares returns what the auction winner chose.
func BidWinnerDeclares(s Snapshot) domain.Suit {
	if s.Declaration == nil {
		panic("trump: declaration missing from snapshot")
	}
	if err := s.Declaration.Validate(); err != nil {
		panic(fmt.Sprintf("trump: %v", err))
	}
	if s.Declaration.NoTrump {
		return domain.SuitNone
	}
	return s.Declaration.Suit
}

// TurnedCard is the suit of the card turned after the deal. When the deal
// used up the stock there is no card to turn and the hand has no trump.
func TurnedCard(s Snapshot) domain.Suit {
	if s.TurnedCard == nil {
		return domain.SuitNone
	}
	return s.TurnedCard.Suit
}
