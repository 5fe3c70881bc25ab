package bot

import (
	"math/rand"
	"sort"

	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/trump"
)

// FirstLegal always takes the first option it is offered. It opens an
// auction with the cheapest bid and passes once anyone else has bid, so
// every auction it sits in terminates.
type FirstLegal struct{}

var _ Brain = FirstLegal{}

func (FirstLegal) ChooseBid(v BidView) bidding.Bid {
	return cheapestBid(v)
}

func (FirstLegal) ChooseDiscards(hand []domain.Card, n int, o domain.Ordering) []domain.Card {
	return weakest(hand, n, o)
}

func (FirstLegal) ChooseTrump(hand []domain.Card, noTrump bool) trump.Declaration {
	return longestSuit(hand, noTrump)
}

func (FirstLegal) ChoosePlay(legal []domain.Card) domain.Card {
	return legal[0]
}

// RandomLegal bids like FirstLegal but plays a random legal card.
type RandomLegal struct {
	Rng *rand.Rand
}

var _ Brain = RandomLegal{}

func (RandomLegal) ChooseBid(v BidView) bidding.Bid {
	return cheapestBid(v)
}

func (RandomLegal) ChooseDiscards(hand []domain.Card, n int, o domain.Ordering) []domain.Card {
	return weakest(hand, n, o)
}

func (RandomLegal) ChooseTrump(hand []domain.Card, noTrump bool) trump.Declaration {
	return longestSuit(hand, noTrump)
}

func (r RandomLegal) ChoosePlay(legal []domain.Card) domain.Card {
	if r.Rng == nil {
		return legal[0]
	}
	return legal[r.Rng.Intn(len(legal))]
}

func cheapestBid(v BidView) bidding.Bid {
	var pass *bidding.Bid
	var cheapest *bidding.Bid
	for i := range v.Legal {
		b := v.Legal[i]
		if b.Pass {
			if pass == nil {
				pass = &b
			}
			continue
		}
		if cheapest == nil {
			cheapest = &b
		}
	}
	if pass != nil && (cheapest == nil || othersBid(v)) {
		return *pass
	}
	if cheapest != nil {
		return *cheapest
	}
	return v.Legal[0]
}

func othersBid(v BidView) bool {
	for _, e := range v.History {
		if e.Seat != v.Seat && !e.Bid.Pass {
			return true
		}
	}
	return false
}

// weakest returns the n lowest cards of hand, keeping trumps longest.
func weakest(hand []domain.Card, n int, o domain.Ordering) []domain.Card {
	sorted := append([]domain.Card(nil), hand...)
	domain.SortHand(sorted, o)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := o.IsTrump(sorted[i]), o.IsTrump(sorted[j])
		if ti != tj {
			return tj
		}
		return o.Strength(sorted[i]) < o.Strength(sorted[j])
	})
	return sorted[:n]
}

func longestSuit(hand []domain.Card, noTrump bool) trump.Declaration {
	if noTrump {
		return trump.Declaration{NoTrump: true}
	}
	best := domain.Suits[0]
	count := -1
	for _, s := range domain.Suits {
		n := 0
		for _, c := range hand {
			if c.Suit == s {
				n++
			}
		}
		if n > count {
			best, count = s, n
		}
	}
	return trump.Declaration{Suit: best}
}
