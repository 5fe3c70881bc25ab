package app

import (
	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/scoring"
	"whist/internal/trump"
	"whist/internal/variant"
)

// Hand is the full state of one deal. The Service is its only writer; the
// rules packages read copies of its parts and never keep them.
type Hand struct {
	ID       string           `json:"id"`
	Variant  variant.ID       `json:"variant"`
	House    variant.House    `json:"house"`
	HandSize int              `json:"hand_size"`
	Number   int              `json:"number"`
	Redeals  int              `json:"redeals,omitempty"`
	Players  domain.Roster    `json:"players"`
	Dealer   domain.Seat      `json:"dealer"`
	Phase    domain.Phase     `json:"phase"`
	Hands    [4][]domain.Card `json:"hands"`

	Kitty     []domain.Card `json:"kitty,omitempty"`
	Discards  []domain.Card `json:"discards,omitempty"`
	Stock     []domain.Card `json:"stock,omitempty"`
	Turned    *domain.Card  `json:"turned,omitempty"`
	LastDealt *domain.Card  `json:"last_dealt,omitempty"`

	Bids        bidding.History        `json:"bids,omitempty"`
	Auction     *bidding.AuctionResult `json:"auction,omitempty"`
	Contract    bidding.Contract       `json:"contract"`
	Declaration *trump.Declaration     `json:"declaration,omitempty"`
	Trump       domain.Suit            `json:"trump,omitempty"`
	Direction   domain.Direction       `json:"direction,omitempty"`

	Current      domain.Trick       `json:"current"`
	Completed    []domain.Trick     `json:"completed,omitempty"`
	Tally        domain.Tally       `json:"tally"`
	PendingClaim *domain.Claim      `json:"pending_claim,omitempty"`
	Claimed      []domain.Card      `json:"claimed,omitempty"`
	Score        *scoring.HandScore `json:"score,omitempty"`
}

// Piles returns every place a card of this hand can be. Together they always
// hold the full deck exactly once.
func (h *Hand) Piles() [][]domain.Card {
	piles := make([][]domain.Card, 0, 12+len(h.Completed))
	for _, cards := range h.Hands {
		piles = append(piles, cards)
	}
	piles = append(piles, h.Kitty, h.Discards, h.Stock, h.Claimed, h.Current.Cards())
	if h.Turned != nil {
		piles = append(piles, []domain.Card{*h.Turned})
	}
	for _, t := range h.Completed {
		piles = append(piles, t.Cards())
	}
	return piles
}

// CheckConservation verifies no card has been lost or duplicated.
func (h *Hand) CheckConservation() error {
	return domain.CheckConservation(h.Piles()...)
}

// TricksPlayed counts completed tricks.
func (h *Hand) TricksPlayed() int {
	return len(h.Completed)
}

// Turn returns the seat the hand is waiting on, false when it waits on nobody
// in particular (simultaneous bidding, a pending claim, or a finished hand).
func (h *Hand) Turn(b variant.Bundle) (domain.Seat, bool) {
	switch h.Phase {
	case domain.PhaseBidding:
		if b.Bidding == nil {
			return 0, false
		}
		return b.Bidding.NextBidder(h.Bids, h.Dealer)
	case domain.PhaseExchange, domain.PhaseDeclare:
		return h.Contract.Declarer, h.Contract.HasDeclarer
	case domain.PhasePlaying:
		if h.PendingClaim != nil {
			return 0, false
		}
		return h.Current.Turn()
	default:
		return 0, false
	}
}

func (h *Hand) recipient(s domain.Seat) []string {
	if id := h.Players[s]; id != "" {
		return []string{id}
	}
	return nil
}
