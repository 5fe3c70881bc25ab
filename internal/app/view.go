package app

import (
	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/scoring"
	"whist/internal/variant"
)

// HandView is what one seat may see of a hand.
type HandView struct {
	ID         string                 `json:"id"`
	Variant    string                 `json:"variant"`
	Seat       domain.Seat            `json:"seat"`
	Dealer     domain.Seat            `json:"dealer"`
	Phase      domain.Phase           `json:"phase"`
	Hand       []string               `json:"hand"`
	HandCounts [domain.NumSeats]int   `json:"hand_counts"`
	Turn       *domain.Seat           `json:"turn,omitempty"`
	Turned     string                 `json:"turned,omitempty"`
	Bids       []BidView              `json:"bids,omitempty"`
	Auction    *bidding.AuctionResult `json:"auction,omitempty"`
	Trump      domain.Suit            `json:"trump,omitempty"`
	Direction  string                 `json:"direction"`
	Trick      []PlayView             `json:"trick,omitempty"`
	Tricks     int                    `json:"tricks"`
	Tally      domain.Tally           `json:"tally"`
	Claim      *domain.Claim          `json:"claim,omitempty"`
	Score      *scoring.HandScore     `json:"score,omitempty"`
	Legal      []string               `json:"legal,omitempty"`
}

type BidView struct {
	Seat domain.Seat `json:"seat"`
	Bid  string      `json:"bid,omitempty"`
}

type PlayView struct {
	Seat domain.Seat `json:"seat"`
	Card string      `json:"card"`
}

// faceDown reports whether bid stays hidden until the auction closes.
func faceDown(id variant.ID, bid bidding.Bid) bool {
	return bid.Kind == bidding.KindCard || id == variant.WidowWhist
}

// View renders h for viewer. Face-down bids stay hidden until the auction
// closes, and only the viewer's own cards are listed.
func (s *Service) View(h *Hand, viewer domain.Seat) HandView {
	v := HandView{
		ID:        h.ID,
		Variant:   string(h.Variant),
		Seat:      viewer,
		Dealer:    h.Dealer,
		Phase:     h.Phase,
		Auction:   h.Auction,
		Trump:     h.Trump,
		Direction: h.Direction.String(),
		Tricks:    h.TricksPlayed(),
		Tally:     h.Tally,
		Claim:     h.PendingClaim,
		Score:     h.Score,
	}
	for i, cards := range h.Hands {
		v.HandCounts[i] = len(cards)
	}
	if viewer.Valid() {
		v.Hand = cardStrings(h.Hands[viewer])
	}
	if h.Turned != nil {
		v.Turned = h.Turned.String()
	}
	hidden := h.Auction == nil
	for _, e := range h.Bids {
		bv := BidView{Seat: e.Seat}
		if !hidden || !faceDown(h.Variant, e.Bid) || e.Seat == viewer {
			bv.Bid = e.Bid.String()
		}
		v.Bids = append(v.Bids, bv)
	}
	for _, p := range h.Current.Plays {
		v.Trick = append(v.Trick, PlayView{Seat: p.Seat, Card: p.Card.String()})
	}

	b, err := s.Bundle(h)
	if err != nil {
		return v
	}
	if seat, ok := h.Turn(b); ok {
		v.Turn = &seat
		if seat == viewer && h.Phase == domain.PhasePlaying {
			v.Legal = cardStrings(domain.LegalPlays(h.Current, h.Hands[viewer], b.Rules.TrickRules(h.Direction)))
		}
	}
	return v
}

func cardStrings(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
