package domain

// Direction selects natural (ace high) or reversed (deuce high) rank order for
// a whole hand.
type Direction int

const (
	// DirectionHigh is the natural order, "uptown".
	DirectionHigh Direction = iota
	// DirectionLow reverses ranks: deuce is highest and ace lowest, "downtown".
	DirectionLow
)

func (d Direction) String() string {
	if d == DirectionLow {
		return "downtown"
	}
	return "uptown"
}

// ParseDirection reads the String form; anything unknown is an error.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "uptown", "high", "":
		return DirectionHigh, nil
	case "downtown", "low":
		return DirectionLow, nil
	default:
		return DirectionHigh, Malformed(CodeInvalidFormat, "unknown rank direction %q", s)
	}
}

// Ordering ranks cards for one hand. It serves both display sorting and
// trick-winner determination so the two never disagree about bowers.
type Ordering struct {
	Trump     Suit
	Direction Direction
	Bowers    bool
}

const (
	rightBowerStrength = 100
	leftBowerStrength  = 99
)

// IsRightBower reports whether c is the jack of trump under a bower ruleset.
func (o Ordering) IsRightBower(c Card) bool {
	return o.Bowers && o.Trump.Valid() && c.Rank == RankJ && c.Suit == o.Trump
}

// IsLeftBower reports whether c is the jack of the suit sharing trump's color.
func (o Ordering) IsLeftBower(c Card) bool {
	return o.Bowers && o.Trump.Valid() && c.Rank == RankJ && c.Suit == o.Trump.SameColorSuit()
}

// EffectiveSuit is the suit c counts as for following and trumping. The left
// bower belongs to trump.
func (o Ordering) EffectiveSuit(c Card) Suit {
	if o.IsLeftBower(c) {
		return o.Trump
	}
	return c.Suit
}

// IsTrump reports whether c is a member of the trump suit.
func (o Ordering) IsTrump(c Card) bool {
	return o.Trump.Valid() && o.EffectiveSuit(c) == o.Trump
}

// Strength orders cards within their effective suit; larger is stronger.
func (o Ordering) Strength(c Card) int {
	switch {
	case o.IsRightBower(c):
		return rightBowerStrength
	case o.IsLeftBower(c):
		return leftBowerStrength
	case o.Direction == DirectionLow:
		return int(RankA+Rank2) - int(c.Rank)
	default:
		return int(c.Rank)
	}
}

// Beats reports whether challenger takes the trick from best when led was
// the suit led.
func (o Ordering) Beats(challenger, best Card, led Suit) bool {
	cs, bs := o.EffectiveSuit(challenger), o.EffectiveSuit(best)
	if o.Trump.Valid() {
		ct, bt := cs == o.Trump, bs == o.Trump
		if ct != bt {
			return ct
		}
		if ct {
			return o.Strength(challenger) > o.Strength(best)
		}
	}
	if cs == bs {
		return o.Strength(challenger) > o.Strength(best)
	}
	return cs == led && bs != led
}

// Compare returns -1, 0 or +1 ordering a before, equal to or after b for
// display: non-trump suits in Suits order, trump last, then by strength.
func (o Ordering) Compare(a, b Card) int {
	ga, gb := o.group(a), o.group(b)
	switch {
	case ga < gb:
		return -1
	case ga > gb:
		return 1
	}
	sa, sb := o.Strength(a), o.Strength(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func (o Ordering) group(c Card) int {
	if o.IsTrump(c) {
		return len(Suits)
	}
	return suitIndex(c.Suit)
}
