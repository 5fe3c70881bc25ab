// Package variant is the registry of whist variants. Looking up an ID yields
// the variant's metadata together with the bidding engine, trump policy and
// scoring engine that implement it.
package variant

import (
	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/scoring"
	"whist/internal/trump"
)

// ID is the stable token a variant is stored and transmitted as.
type ID string

const (
	MinnesotaWhist ID = "minnesota_whist"
	ClassicWhist   ID = "classic_whist"
	BidWhist       ID = "bid_whist"
	OhHell         ID = "oh_hell"
	WidowWhist     ID = "widow_whist"
)

// All lists every registered variant in display order.
var All = []ID{MinnesotaWhist, ClassicWhist, BidWhist, OhHell, WidowWhist}

// Parse maps a token to its ID. Unknown tokens are an error rather than a
// fallback, since falling back would change the rules being played.
func Parse(token string) (ID, error) {
	id := ID(token)
	if _, ok := registry[id]; !ok {
		return "", domain.UnsupportedVariant(token)
	}
	return id, nil
}

func (id ID) String() string { return string(id) }

// Rules is the constant metadata of a variant. With NegativeScoring a side
// also loses by falling to minus the winning score.
type Rules struct {
	ID                   ID           `json:"id"`
	Name                 string       `json:"name"`
	TricksPerHand        int          `json:"tricks_per_hand"`
	KittySize            int          `json:"kitty_size"`
	WinningScore         int          `json:"winning_score"`
	UsesBidding          bool         `json:"uses_bidding"`
	HasSpecialCards      bool         `json:"has_special_cards"`
	SpecialCardCount     int          `json:"special_card_count"`
	TrumpMethod          trump.Method `json:"trump_method"`
	AllowsClaimingTricks bool         `json:"allows_claiming_tricks"`
	Bowers               bool         `json:"bowers"`
	NegativeScoring      bool         `json:"negative_scoring"`
	PerSeatScoring       bool         `json:"per_seat_scoring"`
	DeclarerLeads        bool         `json:"declarer_leads"`
}

// TrickRules is the part of the rules the trick engine consults. Direction
// comes from the contract.
func (r Rules) TrickRules(dir domain.Direction) domain.TrickRules {
	return domain.TrickRules{Direction: dir, Bowers: r.Bowers}
}

// Bundle is everything a driver needs to run one hand of a variant. Bidding is
// nil for variants without an auction.
type Bundle struct {
	Rules   Rules
	Bidding bidding.Engine
	Trump   trump.Policy
	Scoring scoring.Engine
}

type entry struct {
	rules   Rules
	bidding func(o options) bidding.Engine
	scoring func(o options) scoring.Engine
}

var registry = map[ID]entry{
	MinnesotaWhist: {
		rules: Rules{
			ID: MinnesotaWhist, Name: "Minnesota Whist",
			TricksPerHand: 13, WinningScore: 13,
			UsesBidding: true, TrumpMethod: trump.MethodNone, AllowsClaimingTricks: true,
		},
		bidding: func(options) bidding.Engine { return bidding.Minnesota{} },
		scoring: func(o options) scoring.Engine { return scoring.Minnesota{Low: o.low} },
	},
	ClassicWhist: {
		rules: Rules{
			ID: ClassicWhist, Name: "Classic Whist",
			TricksPerHand: 13, WinningScore: 7,
			TrumpMethod: trump.MethodLastCardDealt, AllowsClaimingTricks: true,
		},
		scoring: func(options) scoring.Engine { return scoring.Classic{} },
	},
	BidWhist: {
		rules: Rules{
			ID: BidWhist, Name: "Bid Whist",
			TricksPerHand: 12, KittySize: 4, WinningScore: 7,
			UsesBidding: true, TrumpMethod: trump.MethodBidWinnerDeclares, AllowsClaimingTricks: true,
			NegativeScoring: true, DeclarerLeads: true,
		},
		bidding: func(options) bidding.Engine { return bidding.BidWhist{} },
		scoring: func(options) scoring.Engine { return scoring.BidWhist{} },
	},
	OhHell: {
		rules: Rules{
			ID: OhHell, Name: "Oh Hell",
			TricksPerHand: 13, WinningScore: 100,
			UsesBidding: true, TrumpMethod: trump.MethodTurnedCard,
			PerSeatScoring: true,
		},
		bidding: func(o options) bidding.Engine { return bidding.NewOhHell(o.handSize) },
		scoring: func(options) scoring.Engine { return scoring.OhHell{} },
	},
	WidowWhist: {
		rules: Rules{
			ID: WidowWhist, Name: "Widow Whist",
			TricksPerHand: 12, KittySize: 4, WinningScore: 50,
			UsesBidding: true, TrumpMethod: trump.MethodBidWinnerDeclares, AllowsClaimingTricks: true,
			NegativeScoring: true, DeclarerLeads: true,
		},
		bidding: func(options) bidding.Engine { return bidding.Widow{} },
		scoring: func(options) scoring.Engine { return scoring.Widow{} },
	},
}

// bowerCount is the number of special cards a bower ruleset adds.
const bowerCount = 2

// Lookup resolves id into a Bundle, applying house-rule options.
func Lookup(id ID, opts ...Option) (Bundle, error) {
	e, ok := registry[id]
	if !ok {
		return Bundle{}, domain.UnsupportedVariant(string(id))
	}
	o := options{low: scoring.LowPenalizeMajority, handSize: e.rules.TricksPerHand}
	for _, opt := range opts {
		opt(&o)
	}

	rules := e.rules
	if o.target > 0 {
		rules.WinningScore = o.target
	}
	if o.bowers {
		rules.Bowers = true
		rules.HasSpecialCards = true
		rules.SpecialCardCount = bowerCount
	}
	if o.claims != nil {
		rules.AllowsClaimingTricks = *o.claims
	}
	if id == OhHell {
		if o.handSize < 1 || o.handSize > domain.DeckSize/domain.NumSeats {
			return Bundle{}, domain.Malformed(domain.CodeOutOfRange, "oh hell hand size %d outside 1..13", o.handSize)
		}
		rules.TricksPerHand = o.handSize
	}

	policy, err := trump.For(rules.TrumpMethod)
	if err != nil {
		return Bundle{}, err
	}
	b := Bundle{Rules: rules, Trump: policy, Scoring: e.scoring(o)}
	if e.bidding != nil {
		b.Bidding = e.bidding(o)
	}
	return b, nil
}

// Describe returns the metadata of every registered variant with default
// options.
func Describe() []Rules {
	out := make([]Rules, 0, len(All))
	for _, id := range All {
		out = append(out, registry[id].rules)
	}
	return out
}

// OhHellHandSize is the number of cards dealt in hand n (1-based) of an Oh
// Hell game: thirteen down to one, then starting over.
func OhHellHandSize(n int) int {
	const full = domain.DeckSize / domain.NumSeats
	if n < 1 {
		n = 1
	}
	return full - (n-1)%full
}
