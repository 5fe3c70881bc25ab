package bidding

import (
	"fmt"

	"whist/internal/domain"
)

// OhHell is the exact-prediction auction. Each seat bids once, clockwise from
// the dealer's left, and the dealer may not make the bids add up to Tricks.
type OhHell struct {
	Tricks int
}

var _ Engine = OhHell{}

// NewOhHell builds the auction for a hand of tricks cards each.
func NewOhHell(tricks int) OhHell {
	if tricks < 1 || tricks > domain.DeckSize/domain.NumSeats {
		panic(fmt.Sprintf("bidding: oh hell hand size %d out of range", tricks))
	}
	return OhHell{Tricks: tricks}
}

func (OhHell) Shape() Kind { return KindExact }

func (OhHell) IsComplete(h History, _ domain.Seat) bool {
	return len(h) >= domain.NumSeats
}

func (o OhHell) NextBidder(h History, dealer domain.Seat) (domain.Seat, bool) {
	if o.IsComplete(h, dealer) {
		return 0, false
	}
	return domain.SeatsFrom(dealer.Next())[len(h)], true
}

func (o OhHell) ValidateBid(h History, dealer domain.Seat, seat domain.Seat, bid Bid) error {
	if err := checkSeat(seat); err != nil {
		return err
	}
	next, ok := o.NextBidder(h, dealer)
	if !ok {
		return domain.InvalidBid(domain.CodeAuctionClosed, "every seat has bid")
	}
	if seat != next {
		return domain.InvalidBid(domain.CodeOutOfTurn, "it is %s's turn to bid, not %s's", next, seat)
	}
	if err := checkShape(bid, KindExact, false); err != nil {
		return err
	}
	if bid.Level < 0 || bid.Level > o.Tricks {
		return domain.InvalidBid(domain.CodeOutOfBounds, "bid must be between 0 and %d", o.Tricks)
	}
	if len(h) == domain.NumSeats-1 {
		sum := 0
		for _, e := range h {
			sum += e.Bid.Level
		}
		if sum+bid.Level == o.Tricks {
			return domain.InvalidBid(domain.CodeDealerRestriction,
				"the dealer may not bid %d: the bids would total the %d tricks available", bid.Level, o.Tricks)
		}
	}
	return nil
}

// Resolve carries every seat's bid into the contract. There is no declarer.
func (o OhHell) Resolve(h History, dealer domain.Seat) AuctionResult {
	if !o.IsComplete(h, dealer) {
		next, _ := o.NextBidder(h, dealer)
		return incomplete(fmt.Sprintf("waiting for %s to bid", next))
	}
	c := Contract{Kind: ContractExact}
	total := 0
	for _, e := range h {
		c.Bids[e.Seat] = e.Bid.Level
		total += e.Bid.Level
	}
	return AuctionResult{
		Outcome:  Won,
		Reason:   fmt.Sprintf("bids total %d for %d tricks", total, o.Tricks),
		Contract: c,
	}
}

func (o OhHell) Candidates([]domain.Card) []Bid {
	out := make([]Bid, 0, o.Tricks+1)
	for n := 0; n <= o.Tricks; n++ {
		out = append(out, ExactBid(n))
	}
	return out
}
