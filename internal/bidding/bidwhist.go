package bidding

import (
	"fmt"

	"whist/internal/domain"
)

// Bid Whist levels count tricks over a book of six.
const (
	BidWhistMinLevel = 1
	BidWhistMaxLevel = 6
)

// BidWhist is the sequential auction: clockwise from the dealer's left, each
// live bid must outrank the last, and a seat that passes is out for good.
type BidWhist struct{}

var _ Engine = BidWhist{}

func (BidWhist) Shape() Kind { return KindLevel }

// rank orders level bids: by level, then no-trump above a suit at the same
// level. Direction does not rank.
func rank(b Bid) int {
	r := b.Level * 2
	if b.NoTrump {
		r++
	}
	return r
}

type bidWhistState struct {
	passed [domain.NumSeats]bool
	high   *Entry
}

func (s bidWhistState) passCount() int {
	n := 0
	for _, p := range s.passed {
		if p {
			n++
		}
	}
	return n
}

func (BidWhist) replay(h History) bidWhistState {
	var st bidWhistState
	for i := range h {
		e := h[i]
		if e.Bid.Pass {
			st.passed[e.Seat] = true
			continue
		}
		st.high = &e
	}
	return st
}

func (b BidWhist) IsComplete(h History, _ domain.Seat) bool {
	st := b.replay(h)
	if st.passCount() == domain.NumSeats {
		return true
	}
	return st.high != nil && st.passCount() == domain.NumSeats-1
}

func (b BidWhist) NextBidder(h History, dealer domain.Seat) (domain.Seat, bool) {
	if b.IsComplete(h, dealer) {
		return 0, false
	}
	if len(h) == 0 {
		return dealer.Next(), true
	}
	st := b.replay(h)
	s := h[len(h)-1].Seat.Next()
	for st.passed[s] {
		s = s.Next()
	}
	return s, true
}

func (b BidWhist) ValidateBid(h History, dealer domain.Seat, seat domain.Seat, bid Bid) error {
	if err := checkSeat(seat); err != nil {
		return err
	}
	next, ok := b.NextBidder(h, dealer)
	if !ok {
		return domain.InvalidBid(domain.CodeAuctionClosed, "the auction is over")
	}
	if seat != next {
		st := b.replay(h)
		if st.passed[seat] {
			return domain.InvalidBid(domain.CodeAlreadyPassed, "%s has passed and may not re-enter", seat)
		}
		return domain.InvalidBid(domain.CodeOutOfTurn, "it is %s's turn to bid, not %s's", next, seat)
	}
	if err := checkShape(bid, KindLevel, true); err != nil {
		return err
	}
	if bid.Pass {
		return nil
	}
	if bid.Level < BidWhistMinLevel || bid.Level > BidWhistMaxLevel {
		return domain.InvalidBid(domain.CodeOutOfBounds, "bid level must be between %d and %d", BidWhistMinLevel, BidWhistMaxLevel)
	}
	if high := b.replay(h).high; high != nil && rank(bid) <= rank(high.Bid) {
		return domain.InvalidBid(domain.CodeMustExceed, "%s does not outrank the standing bid of %s", bid, high.Bid)
	}
	return nil
}

// Resolve awards the contract to the last live bid once every other seat has
// passed. Four passes leave no contract and the hand must be redealt.
func (b BidWhist) Resolve(h History, dealer domain.Seat) AuctionResult {
	if !b.IsComplete(h, dealer) {
		next, _ := b.NextBidder(h, dealer)
		return incomplete(fmt.Sprintf("waiting for %s to bid", next))
	}
	st := b.replay(h)
	if st.high == nil {
		return AuctionResult{Outcome: NoContract, Reason: "all four seats passed"}
	}
	win := *st.high
	return AuctionResult{
		Outcome: Won,
		Reason:  fmt.Sprintf("%s wins the auction with %s", win.Seat, win.Bid),
		Winning: &win,
		Contract: Contract{
			Kind:        ContractLevel,
			Declarer:    win.Seat,
			HasDeclarer: true,
			Level:       win.Bid.Level,
			Direction:   win.Bid.Direction,
			NoTrump:     win.Bid.NoTrump,
		},
	}
}

func (BidWhist) Candidates([]domain.Card) []Bid {
	out := []Bid{Pass()}
	for level := BidWhistMinLevel; level <= BidWhistMaxLevel; level++ {
		out = append(out,
			LevelBid(level, domain.DirectionHigh),
			LevelBid(level, domain.DirectionLow),
			NoTrumpBid(level, domain.DirectionHigh),
			NoTrumpBid(level, domain.DirectionLow),
		)
	}
	return out
}
