package domain

// Play is one card laid to a trick.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// TrickRules carries the parts of a variant's ruleset the trick engine needs.
// The trump suit travels with the trick itself.
type TrickRules struct {
	Direction Direction
	Bowers    bool
}

// Trick is the plays of one round, tagged with its leader and the trump in
// effect. A trick holding four plays is complete and must not change.
type Trick struct {
	Leader Seat   `json:"leader"`
	Trump  Suit   `json:"trump,omitempty"`
	Plays  []Play `json:"plays"`
}

// NewTrick starts an empty trick.
func NewTrick(leader Seat, trump Suit) Trick {
	return Trick{Leader: leader, Trump: trump, Plays: make([]Play, 0, NumSeats)}
}

// Complete reports whether every seat has played.
func (t Trick) Complete() bool {
	return len(t.Plays) == NumSeats
}

// Turn returns the seat due to play, or false once the trick is complete.
func (t Trick) Turn() (Seat, bool) {
	if t.Complete() {
		return 0, false
	}
	return (t.Leader + Seat(len(t.Plays))) % NumSeats, true
}

// Ordering combines the trick's trump with the variant rules.
func (t Trick) Ordering(r TrickRules) Ordering {
	return Ordering{Trump: t.Trump, Direction: r.Direction, Bowers: r.Bowers}
}

// LedSuit returns the effective suit of the leader's card, SuitNone before
// the lead.
func (t Trick) LedSuit(r TrickRules) Suit {
	lead, ok := t.lead()
	if !ok {
		return SuitNone
	}
	return t.Ordering(r).EffectiveSuit(lead.Card)
}

// Cards returns the cards of the trick in play order.
func (t Trick) Cards() []Card {
	out := make([]Card, len(t.Plays))
	for i, p := range t.Plays {
		out[i] = p.Card
	}
	return out
}

func (t Trick) lead() (Play, bool) {
	for _, p := range t.Plays {
		if p.Seat == t.Leader {
			return p, true
		}
	}
	return Play{}, false
}

// PlayCard records seat playing card from hand. It returns the extended trick
// and the hand without the card; the arguments are left untouched, so a
// rejected play changes nothing.
func PlayCard(t Trick, hand []Card, seat Seat, card Card, r TrickRules) (Trick, []Card, error) {
	turn, ok := t.Turn()
	if !ok {
		return t, hand, InvalidPlay(CodeTrickComplete, "the trick already has four cards")
	}
	if seat != turn {
		return t, hand, InvalidPlay(CodeOutOfTurn, "it is %s's turn to play, not %s's", turn, seat)
	}
	if !ContainsCard(hand, card) {
		return t, hand, InvalidPlay(CodeNotInHand, "%s does not hold %s", seat, card)
	}
	if len(t.Plays) > 0 {
		o := t.Ordering(r)
		led := t.LedSuit(r)
		if o.EffectiveSuit(card) != led && HoldsSuit(hand, led, o) {
			return t, hand, InvalidPlay(CodeMustFollowSuit, "%s must follow %s", seat, led.Symbol())
		}
	}

	next := Trick{Leader: t.Leader, Trump: t.Trump, Plays: make([]Play, len(t.Plays), NumSeats)}
	copy(next.Plays, t.Plays)
	next.Plays = append(next.Plays, Play{Seat: seat, Card: card})
	return next, RemoveCards(hand, []Card{card}), nil
}

// LegalPlays lists the cards of hand that PlayCard would accept from the
// seat whose turn it is.
func LegalPlays(t Trick, hand []Card, r TrickRules) []Card {
	if t.Complete() {
		return nil
	}
	if len(t.Plays) == 0 {
		return append([]Card(nil), hand...)
	}
	o := t.Ordering(r)
	led := t.LedSuit(r)
	if !HoldsSuit(hand, led, o) {
		return append([]Card(nil), hand...)
	}
	var out []Card
	for _, c := range hand {
		if o.EffectiveSuit(c) == led {
			out = append(out, c)
		}
	}
	return out
}

// DetermineWinner returns the seat taking a complete trick: the best trump if
// any was played, otherwise the best card of the led suit. The result does
// not depend on the order the plays were recorded in.
func DetermineWinner(t Trick, r TrickRules) (Seat, error) {
	if !t.Complete() {
		return 0, InvalidPlay(CodeTrickIncomplete, "the trick has %d of %d cards", len(t.Plays), NumSeats)
	}
	best, ok := t.lead()
	if !ok {
		return 0, InvalidPlay(CodeTrickIncomplete, "the leader %s has not played", t.Leader)
	}
	o := t.Ordering(r)
	led := o.EffectiveSuit(best.Card)
	for _, p := range t.Plays {
		if o.Beats(p.Card, best.Card, led) {
			best = p
		}
	}
	return best.Seat, nil
}

// Claim describes a seat asking to take every remaining trick without playing
// them out. Whether the remainder is really unbeatable is for an arbiter to
// decide before the claim is applied.
type Claim struct {
	Claimant        Seat `json:"claimant"`
	TricksRemaining int  `json:"tricks_remaining"`
}

// ClaimInfo reports the tricks a claim by claimant would cover.
func ClaimInfo(tricksPlayed, tricksPerHand int, claimant Seat) (Claim, error) {
	remaining := tricksPerHand - tricksPlayed
	if remaining <= 0 {
		return Claim{}, InvalidPlay(CodeNothingToClaim, "no tricks remain to be claimed")
	}
	return Claim{Claimant: claimant, TricksRemaining: remaining}, nil
}

// WithClaim returns the tally after awarding a claim.
func (t Tally) WithClaim(c Claim) Tally {
	t.Award(c.Claimant, c.TricksRemaining)
	return t
}
