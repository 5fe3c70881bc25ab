package bot

import (
	"errors"

	"github.com/google/uuid"

	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/trump"
)

var ErrNoLegalMove = errors.New("no legal move available")

// Agent decides for a seat whose player is absent or out of time.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent with a fresh id.
func NewAgent(name string, strategy Brain) *Agent {
	if strategy == nil {
		strategy = FirstLegal{}
	}
	return &Agent{ID: uuid.NewString(), Name: name, Strategy: strategy}
}

// Bid picks a bid for the seat in v. v.Legal must be filled.
func (a *Agent) Bid(v BidView) (bidding.Bid, error) {
	if len(v.Legal) == 0 {
		return bidding.Bid{}, ErrNoLegalMove
	}
	return a.Strategy.ChooseBid(v), nil
}

// Discard picks n cards of hand to bury.
func (a *Agent) Discard(hand []domain.Card, n int, o domain.Ordering) ([]domain.Card, error) {
	if n > len(hand) {
		return nil, ErrNoLegalMove
	}
	return a.Strategy.ChooseDiscards(hand, n, o), nil
}

// Declare names trump for a declarer holding hand.
func (a *Agent) Declare(hand []domain.Card, noTrump bool) trump.Declaration {
	return a.Strategy.ChooseTrump(hand, noTrump)
}

// Play picks a card from legal.
func (a *Agent) Play(legal []domain.Card) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalMove
	}
	return a.Strategy.ChoosePlay(legal), nil
}
