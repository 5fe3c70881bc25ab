package bot

import (
	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/trump"
)

// BidView is what a seat sees when it must bid.
type BidView struct {
	Seat    domain.Seat
	Hand    []domain.Card
	History bidding.History
	Legal   []bidding.Bid
}

// Brain is the interface that all bot strategies must implement. Every
// method is handed only legal options and must return one of them.
type Brain interface {
	ChooseBid(v BidView) bidding.Bid
	ChooseDiscards(hand []domain.Card, n int, o domain.Ordering) []domain.Card
	ChooseTrump(hand []domain.Card, noTrump bool) trump.Declaration
	ChoosePlay(legal []domain.Card) domain.Card
}
