package app

import "whist/internal/domain"

// sureOfEveryTrick reports whether a seat on lead with hand takes every
// remaining trick whatever the other seats hold in outstanding. Each card must
// top its effective suit, and no outstanding trump may be left to ruff a side
// suit. Claims that need a squeeze or an entry to partner are not recognised.
func sureOfEveryTrick(hand, outstanding []domain.Card, o domain.Ordering) bool {
	if len(hand) == 0 {
		return false
	}
	trumpOut := false
	for _, x := range outstanding {
		if o.IsTrump(x) {
			trumpOut = true
			break
		}
	}
	for _, c := range hand {
		if trumpOut && !o.IsTrump(c) {
			return false
		}
		s := o.EffectiveSuit(c)
		for _, x := range outstanding {
			if o.EffectiveSuit(x) == s && o.Strength(x) > o.Strength(c) {
				return false
			}
		}
	}
	return true
}
