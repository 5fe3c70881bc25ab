package domain

// RemoveCards removes the specified cards from a hand and returns the updated
// hand. The input slice is not modified.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return append([]Card(nil), hand...)
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// ContainsCard reports whether card is in cards.
func ContainsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// HoldsSuit reports whether the hand has a card whose effective suit under o
// is s.
func HoldsSuit(hand []Card, s Suit, o Ordering) bool {
	for _, c := range hand {
		if o.EffectiveSuit(c) == s {
			return true
		}
	}
	return false
}

// CheckConservation verifies that the given piles together hold each of the
// 52 cards exactly once.
func CheckConservation(piles ...[]Card) error {
	seen := make(map[Card]bool, DeckSize)
	n := 0
	for _, pile := range piles {
		for _, c := range pile {
			if !c.Suit.Valid() || !c.Rank.Valid() {
				return Malformed(CodeOutOfRange, "card %v is not part of the deck", c)
			}
			if seen[c] {
				return Malformed(CodeDuplicateCard, "card %s is held twice", c)
			}
			seen[c] = true
			n++
		}
	}
	if n != DeckSize {
		return Malformed(CodeCardCount, "found %d cards, want %d", n, DeckSize)
	}
	return nil
}
