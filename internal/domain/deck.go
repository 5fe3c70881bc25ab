package domain

import (
	"math/rand"
	"sort"
	"time"
)

// DeckSize is the fixed cardinality of a whist deck.
const DeckSize = 52

// NewDeck returns a sorted 52-card deck: suits in Suits order, deuce to ace.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Rank2; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// BuildDeck returns a freshly shuffled deck. A nil seed shuffles from the clock.
func BuildDeck(seed *int64) []Card {
	var src int64
	if seed != nil {
		src = *seed
	} else {
		src = time.Now().UnixNano()
	}
	return ShuffleDeck(NewDeck(), rand.New(rand.NewSource(src)))
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders a hand for display: suits grouped, trump last, weakest first
// within a suit under the given ordering.
func SortHand(cards []Card, o Ordering) {
	sort.SliceStable(cards, func(i, j int) bool {
		return o.Compare(cards[i], cards[j]) < 0
	})
}
