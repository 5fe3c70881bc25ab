package bidding

import (
	"fmt"

	"whist/internal/domain"
)

// Minnesota is the simultaneous card auction: every seat commits one card
// face down, black asking to grand and red asking to play low.
type Minnesota struct{}

var _ Engine = Minnesota{}

func (Minnesota) Shape() Kind { return KindCard }

func (Minnesota) IsComplete(h History, _ domain.Seat) bool {
	return len(h) >= domain.NumSeats
}

func (m Minnesota) NextBidder(h History, dealer domain.Seat) (domain.Seat, bool) {
	return firstOwing(dealer, func(s domain.Seat) bool { return !h.hasBid(s, 0) })
}

func (m Minnesota) ValidateBid(h History, dealer domain.Seat, seat domain.Seat, bid Bid) error {
	if err := checkSeat(seat); err != nil {
		return err
	}
	if m.IsComplete(h, dealer) {
		return domain.InvalidBid(domain.CodeAuctionClosed, "all four cards are already down")
	}
	if err := checkShape(bid, KindCard, false); err != nil {
		return err
	}
	if !bid.Card.Suit.Valid() || !bid.Card.Rank.Valid() {
		return domain.InvalidBid(domain.CodeWrongShape, "bid card %v is not a card of the deck", bid.Card)
	}
	if h.hasBid(seat, 0) {
		return domain.InvalidBid(domain.CodeAlreadyBid, "%s has already put down a bid card", seat)
	}
	return nil
}

// Resolve reveals the cards clockwise from the dealer's left. The first black
// card grands for its seat; four red cards make the hand low.
func (m Minnesota) Resolve(h History, dealer domain.Seat) AuctionResult {
	if !m.IsComplete(h, dealer) {
		return incomplete(fmt.Sprintf("waiting for %d more bid cards", domain.NumSeats-len(h)))
	}
	for _, s := range domain.SeatsFrom(dealer.Next()) {
		e, ok := h.Latest(s)
		if !ok {
			continue
		}
		if e.Bid.Card.Color() == domain.ColorBlack {
			return AuctionResult{
				Outcome:  Won,
				Reason:   fmt.Sprintf("%s revealed %s and grands", s, e.Bid.Card),
				Winning:  &e,
				Contract: Contract{Kind: ContractHigh, Declarer: s, HasDeclarer: true},
			}
		}
	}
	return AuctionResult{
		Outcome:  Won,
		Reason:   "all four bid cards are red: the hand is played low",
		Contract: Contract{Kind: ContractLow},
	}
}

func (Minnesota) Candidates(hand []domain.Card) []Bid {
	out := make([]Bid, 0, len(hand))
	for _, c := range hand {
		out = append(out, CardBid(c))
	}
	return out
}
