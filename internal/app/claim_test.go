package app

import (
	"testing"

	"whist/internal/domain"
)

func mustCards(t *testing.T, ss ...string) []domain.Card {
	t.Helper()
	out := make([]domain.Card, len(ss))
	for i, s := range ss {
		c, err := domain.ParseCard(s)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", s, err)
		}
		out[i] = c
	}
	return out
}

func TestSureOfEveryTrick(t *testing.T) {
	clubs := domain.Ordering{Trump: domain.SuitClubs}
	tests := []struct {
		name        string
		hand        []string
		outstanding []string
		o           domain.Ordering
		want        bool
	}{
		{"top cards no trump", []string{"AS", "KS", "AH"}, []string{"QS", "2S", "KH", "5D"}, domain.Ordering{}, true},
		{"outranked in suit", []string{"AS", "QS"}, []string{"KS", "2H"}, domain.Ordering{}, false},
		{"side suit open to ruff", []string{"AS", "AH"}, []string{"2S", "3C"}, clubs, false},
		{"trumps drawn", []string{"AC", "AH"}, []string{"2S", "KH"}, clubs, true},
		{"all trump", []string{"AC", "KC"}, []string{"QC", "AH"}, clubs, true},
		{"left bower outstanding", []string{"AC", "KC"}, []string{"JS", "2H"}, domain.Ordering{Trump: domain.SuitClubs, Bowers: true}, false},
		{"downtown deuce on top", []string{"2S"}, []string{"AS", "3S"}, domain.Ordering{Direction: domain.DirectionLow}, true},
		{"downtown ace low", []string{"AS"}, []string{"3S"}, domain.Ordering{Direction: domain.DirectionLow}, false},
		{"empty hand", nil, []string{"3S"}, domain.Ordering{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sureOfEveryTrick(mustCards(t, tt.hand...), mustCards(t, tt.outstanding...), tt.o)
			if got != tt.want {
				t.Fatalf("sureOfEveryTrick = %v, want %v", got, tt.want)
			}
		})
	}
}
