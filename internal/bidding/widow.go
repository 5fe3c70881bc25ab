package bidding

import (
	"fmt"

	"whist/internal/domain"
)

// Widow Whist bids are total tricks the solo declarer undertakes to take.
const (
	WidowMinLevel = 7
	WidowMaxLevel = 12
)

// Widow is the simultaneous solo auction. Every seat bids blind; the highest
// bid takes the widow. Seats tied for highest bid again among themselves, and
// a re-bid must at least match the tied level. If every tied seat passes a
// re-bid round, the tied seat nearest the dealer's left wins at the tied level.
type Widow struct{}

var _ Engine = Widow{}

func (Widow) Shape() Kind { return KindLevel }

type widowState struct {
	round    int
	eligible [domain.NumSeats]bool
	floor    int
	done     bool
	winner   *Entry
}

// replay walks the rounds recorded in h.
func (Widow) replay(h History, dealer domain.Seat) widowState {
	st := widowState{floor: WidowMinLevel}
	for i := range st.eligible {
		st.eligible[i] = true
	}
	for {
		var bids []Entry
		for _, e := range h {
			if e.Round == st.round {
				bids = append(bids, e)
			}
		}
		if len(bids) < st.eligibleCount() {
			return st
		}

		best := 0
		for _, e := range bids {
			if !e.Bid.Pass && e.Bid.Level > best {
				best = e.Bid.Level
			}
		}
		if best == 0 {
			st.done = true
			if st.round > 0 {
				st.winner = st.eldest(h, dealer, st.round-1)
			}
			return st
		}

		var tied [domain.NumSeats]bool
		n := 0
		var last Entry
		for _, e := range bids {
			if !e.Bid.Pass && e.Bid.Level == best {
				tied[e.Seat] = true
				last = e
				n++
			}
		}
		if n == 1 {
			st.done = true
			st.winner = &last
			return st
		}
		st.round++
		st.eligible = tied
		st.floor = best
	}
}

func (st widowState) eligibleCount() int {
	n := 0
	for _, ok := range st.eligible {
		if ok {
			n++
		}
	}
	return n
}

// eldest returns the first eligible seat clockwise from the dealer's left,
// with its bid from round.
func (st widowState) eldest(h History, dealer domain.Seat, round int) *Entry {
	for _, s := range domain.SeatsFrom(dealer.Next()) {
		if !st.eligible[s] {
			continue
		}
		for _, e := range h {
			if e.Seat == s && e.Round == round {
				return &e
			}
		}
	}
	return nil
}

func (w Widow) round(h History, dealer domain.Seat) int {
	return w.replay(h, dealer).round
}

func (w Widow) IsComplete(h History, dealer domain.Seat) bool {
	return w.replay(h, dealer).done
}

func (w Widow) NextBidder(h History, dealer domain.Seat) (domain.Seat, bool) {
	st := w.replay(h, dealer)
	if st.done {
		return 0, false
	}
	return firstOwing(dealer, func(s domain.Seat) bool {
		return st.eligible[s] && !h.hasBid(s, st.round)
	})
}

func (w Widow) ValidateBid(h History, dealer domain.Seat, seat domain.Seat, bid Bid) error {
	if err := checkSeat(seat); err != nil {
		return err
	}
	st := w.replay(h, dealer)
	if st.done {
		return domain.InvalidBid(domain.CodeAuctionClosed, "the auction is over")
	}
	if !st.eligible[seat] {
		return domain.InvalidBid(domain.CodeNotEligible, "only the tied seats bid in round %d", st.round+1)
	}
	if h.hasBid(seat, st.round) {
		return domain.InvalidBid(domain.CodeAlreadyBid, "%s has already bid this round", seat)
	}
	if err := checkShape(bid, KindLevel, true); err != nil {
		return err
	}
	if bid.Pass {
		return nil
	}
	if bid.NoTrump || bid.Direction != domain.DirectionHigh {
		return domain.InvalidBid(domain.CodeWrongShape, "solo bids name a number of tricks only")
	}
	if bid.Level > WidowMaxLevel || bid.Level < WidowMinLevel {
		return domain.InvalidBid(domain.CodeOutOfBounds, "bid must be between %d and %d tricks", WidowMinLevel, WidowMaxLevel)
	}
	if bid.Level < st.floor {
		return domain.InvalidBid(domain.CodeMustExceed, "a re-bid must be at least the tied %d", st.floor)
	}
	return nil
}

// Resolve names the solo declarer, or reports no contract when all four seats
// pass the opening round.
func (w Widow) Resolve(h History, dealer domain.Seat) AuctionResult {
	st := w.replay(h, dealer)
	if !st.done {
		owing := 0
		for s, ok := range st.eligible {
			if ok && !h.hasBid(domain.Seat(s), st.round) {
				owing++
			}
		}
		return incomplete(fmt.Sprintf("waiting for %d more bids in round %d", owing, st.round+1))
	}
	if st.winner == nil {
		return AuctionResult{Outcome: NoContract, Reason: "all four seats passed"}
	}
	win := *st.winner
	level := win.Bid.Level
	return AuctionResult{
		Outcome: Won,
		Reason:  fmt.Sprintf("%s takes the widow bidding %d tricks", win.Seat, level),
		Winning: &win,
		Contract: Contract{
			Kind:        ContractSolo,
			Declarer:    win.Seat,
			HasDeclarer: true,
			Level:       level,
		},
	}
}

func (Widow) Candidates([]domain.Card) []Bid {
	out := []Bid{Pass()}
	for level := WidowMinLevel; level <= WidowMaxLevel; level++ {
		out = append(out, LevelBid(level, domain.DirectionHigh))
	}
	return out
}
