package app

import (
	"whist/internal/bidding"
	"whist/internal/bot"
	"whist/internal/domain"
)

// Auto makes the next decision of h on behalf of whoever the hand is waiting
// on. During a simultaneous auction that is the first seat still owing a bid.
func (s *Service) Auto(h *Hand, agent *bot.Agent) ([]Event, error) {
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	if h.Phase.Terminal() {
		return nil, ErrWrongPhase
	}
	if h.PendingClaim != nil {
		return nil, ErrClaimPending
	}
	seat, ok := h.Turn(b)
	if !ok {
		return nil, ErrWrongPhase
	}
	log := s.logger.WithFields(map[string]interface{}{"hand": h.ID, "agent": agent.ID})

	switch h.Phase {
	case domain.PhaseBidding:
		view := bot.BidView{
			Seat:    seat,
			Hand:    h.Hands[seat],
			History: h.Bids,
			Legal:   bidding.LegalBids(b.Bidding, h.Bids, h.Dealer, seat, h.Hands[seat]),
		}
		bid, err := agent.Bid(view)
		if err != nil {
			return nil, err
		}
		log.Debug("auto bid %s for %s", bid, seat)
		return s.Bid(h, seat, bid)
	case domain.PhaseExchange:
		o := domain.Ordering{Direction: h.Direction, Bowers: b.Rules.Bowers}
		discards, err := agent.Discard(h.Hands[seat], b.Rules.KittySize, o)
		if err != nil {
			return nil, err
		}
		return s.Exchange(h, seat, discards)
	case domain.PhaseDeclare:
		noTrump := h.Contract.Kind == bidding.ContractLevel && h.Contract.NoTrump
		return s.DeclareTrump(h, seat, agent.Declare(h.Hands[seat], noTrump))
	case domain.PhasePlaying:
		rules := b.Rules.TrickRules(h.Direction)
		card, err := agent.Play(domain.LegalPlays(h.Current, h.Hands[seat], rules))
		if err != nil {
			return nil, err
		}
		log.Debug("auto play %s for %s", card, seat)
		return s.Play(h, seat, card)
	default:
		return nil, ErrWrongPhase
	}
}
