// Package bidding implements the auctions of the whist variants. Every engine
// is stateless: the history and dealer are passed in on each call and nothing
// is retained between calls.
package bidding

import "whist/internal/domain"

// Outcome tags an AuctionResult.
type Outcome int

const (
	Incomplete Outcome = iota
	Won
	NoContract
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case NoContract:
		return "no_contract"
	default:
		return "incomplete"
	}
}

// ContractKind says what a contract binds the declaring side to.
type ContractKind int

const (
	// ContractPlain is a hand played without an auction (Classic Whist).
	ContractPlain ContractKind = iota
	// ContractHigh is a Minnesota grand: a black card was revealed.
	ContractHigh
	// ContractLow is a Minnesota low: all four bids were red.
	ContractLow
	// ContractLevel is a Bid Whist contract.
	ContractLevel
	// ContractExact carries each seat's own Oh Hell prediction.
	ContractExact
	// ContractSolo is a Widow Whist solo bid.
	ContractSolo
)

func (k ContractKind) String() string {
	switch k {
	case ContractHigh:
		return "high"
	case ContractLow:
		return "low"
	case ContractLevel:
		return "level"
	case ContractExact:
		return "exact"
	case ContractSolo:
		return "solo"
	default:
		return "plain"
	}
}

// Contract is the outcome of an auction. HasDeclarer is false for plain,
// low and exact contracts.
type Contract struct {
	Kind        ContractKind         `json:"kind"`
	Declarer    domain.Seat          `json:"declarer"`
	HasDeclarer bool                 `json:"has_declarer"`
	Level       int                  `json:"level,omitempty"`
	Direction   domain.Direction     `json:"direction,omitempty"`
	NoTrump     bool                 `json:"no_trump,omitempty"`
	Bids        [domain.NumSeats]int `json:"bids"`
}

// DeclaringTeam returns the partnership of the declarer.
func (c Contract) DeclaringTeam() (domain.Team, bool) {
	if !c.HasDeclarer {
		return 0, false
	}
	return c.Declarer.Team(), true
}

// AuctionResult is what Resolve reports. Only Won and NoContract are terminal.
type AuctionResult struct {
	Outcome  Outcome  `json:"outcome"`
	Reason   string   `json:"reason"`
	Winning  *Entry   `json:"winning,omitempty"`
	Contract Contract `json:"contract"`
}

// Terminal reports whether the caller may act on the result.
func (r AuctionResult) Terminal() bool {
	return r.Outcome != Incomplete
}

// Engine is the contract shared by every auction.
type Engine interface {
	// Shape is the bid kind the engine accepts.
	Shape() Kind
	IsComplete(h History, dealer domain.Seat) bool
	// NextBidder returns the seat expected to bid, false once complete.
	// Simultaneous auctions report the first seat still owing a bid.
	NextBidder(h History, dealer domain.Seat) (domain.Seat, bool)
	ValidateBid(h History, dealer domain.Seat, seat domain.Seat, bid Bid) error
	Resolve(h History, dealer domain.Seat) AuctionResult
	// Candidates lists every bid shape the seat could make, legal or not,
	// in ascending strength. hand is consulted only by card auctions.
	Candidates(hand []domain.Card) []Bid
}

type roundKeeper interface {
	round(h History, dealer domain.Seat) int
}

// Submit validates bid and returns the history extended by it. A rejected bid
// leaves h untouched.
func Submit(e Engine, h History, dealer domain.Seat, seat domain.Seat, bid Bid) (History, error) {
	if err := e.ValidateBid(h, dealer, seat, bid); err != nil {
		return h, err
	}
	entry := Entry{Seat: seat, Bid: bid}
	if rk, ok := e.(roundKeeper); ok {
		entry.Round = rk.round(h, dealer)
	}
	return h.With(entry), nil
}

// LegalBids lists the candidates ValidateBid would accept from seat.
func LegalBids(e Engine, h History, dealer domain.Seat, seat domain.Seat, hand []domain.Card) []Bid {
	var out []Bid
	for _, b := range e.Candidates(hand) {
		if e.ValidateBid(h, dealer, seat, b) == nil {
			out = append(out, b)
		}
	}
	return out
}

func checkSeat(seat domain.Seat) error {
	if !seat.Valid() {
		return domain.InvalidBid(domain.CodeOutOfTurn, "seat %d is not at the table", int(seat))
	}
	return nil
}

func incomplete(reason string) AuctionResult {
	return AuctionResult{Outcome: Incomplete, Reason: reason}
}

func firstOwing(dealer domain.Seat, owes func(domain.Seat) bool) (domain.Seat, bool) {
	for _, s := range domain.SeatsFrom(dealer.Next()) {
		if owes(s) {
			return s, true
		}
	}
	return 0, false
}
