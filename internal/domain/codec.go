package domain

import (
	"strconv"
	"strings"
)

// ParseCard decodes the String form of a card ("AS", "10H", "2c").
// Structural problems yield ErrInvalidFormat; a well-formed token naming a
// rank or suit outside the deck yields ErrOutOfRange.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return Card{}, Malformed(CodeInvalidFormat, "card %q must be a rank followed by a suit letter", s)
	}
	rankPart, suitPart := s[:len(s)-1], Suit(s[len(s)-1:])

	var rank Rank
	switch rankPart {
	case "J":
		rank = RankJ
	case "Q":
		rank = RankQ
	case "K":
		rank = RankK
	case "A":
		rank = RankA
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil {
			return Card{}, Malformed(CodeInvalidFormat, "card %q has unreadable rank %q", s, rankPart)
		}
		if n < int(Rank2) || n > int(Rank10) {
			return Card{}, Malformed(CodeOutOfRange, "card %q has rank outside 2..A", s)
		}
		rank = Rank(n)
	}
	if !rank.Valid() {
		return Card{}, Malformed(CodeOutOfRange, "card %q has rank outside 2..A", s)
	}

	if suitPart[0] < 'A' || suitPart[0] > 'Z' {
		return Card{}, Malformed(CodeInvalidFormat, "card %q has unreadable suit %q", s, suitPart)
	}
	if !suitPart.Valid() {
		return Card{}, Malformed(CodeOutOfRange, "card %q has unknown suit %q", s, suitPart)
	}
	return Card{Suit: suitPart, Rank: rank}, nil
}

// ParseCards decodes a comma separated list of cards. An empty string is an
// empty hand. Duplicates are rejected.
func ParseCards(s string) ([]Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Card, 0, len(parts))
	seen := make(map[Card]bool, len(parts))
	for _, p := range parts {
		c, err := ParseCard(p)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, Malformed(CodeDuplicateCard, "card %s appears twice", c)
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// FormatCards is the inverse of ParseCards.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// DecodeCard builds a card from a rank index (0 = deuce .. 12 = ace) and a
// suit index into Suits.
func DecodeCard(rankIndex, suitIndex int) (Card, error) {
	if rankIndex < 0 || rankIndex >= RanksPerSuit {
		return Card{}, Malformed(CodeOutOfRange, "rank index %d outside 0..%d", rankIndex, RanksPerSuit-1)
	}
	if suitIndex < 0 || suitIndex >= len(Suits) {
		return Card{}, Malformed(CodeOutOfRange, "suit index %d outside 0..%d", suitIndex, len(Suits)-1)
	}
	return Card{Suit: Suits[suitIndex], Rank: Rank2 + Rank(rankIndex)}, nil
}

// CardFromIndex is the inverse of Card.Index.
func CardFromIndex(i int) (Card, error) {
	if i < 0 || i >= DeckSize {
		return Card{}, Malformed(CodeOutOfRange, "card index %d outside 0..%d", i, DeckSize-1)
	}
	return DecodeCard(i%RanksPerSuit, i/RanksPerSuit)
}
