package domain

import (
	"errors"
	"testing"
)

func card(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func cards(ss ...string) []Card {
	out := make([]Card, len(ss))
	for i, s := range ss {
		out[i] = card(s)
	}
	return out
}

func playAll(t *testing.T, tr Trick, r TrickRules, seq ...string) Trick {
	t.Helper()
	seat := tr.Leader
	for _, s := range seq {
		c := card(s)
		var err error
		tr, _, err = PlayCard(tr, []Card{c}, seat, c, r)
		if err != nil {
			t.Fatalf("play %s by %s: %v", s, seat, err)
		}
		seat = seat.Next()
	}
	return tr
}

func TestBowerOrdering(t *testing.T) {
	o := Ordering{Trump: SuitHearts, Bowers: true}
	right, left := card("JH"), card("JD")
	if !o.IsRightBower(right) || !o.IsLeftBower(left) {
		t.Fatal("bowers not recognised")
	}
	if o.EffectiveSuit(left) != SuitHearts {
		t.Fatalf("left bower suit = %s, want hearts", o.EffectiveSuit(left))
	}
	if !o.Beats(right, left, SuitHearts) || !o.Beats(left, card("AH"), SuitHearts) {
		t.Fatal("right > left > ace of trump expected")
	}
	plain := Ordering{Trump: SuitHearts}
	if plain.EffectiveSuit(left) != SuitDiamonds || plain.Beats(left, card("AH"), SuitHearts) {
		t.Fatal("bowers must be inert when the ruleset does not opt in")
	}

	hand := cards("AH", "JD", "2S", "JH", "KD")
	SortHand(hand, o)
	want := cards("2S", "KD", "AH", "JD", "JH")
	for i := range want {
		if hand[i] != want[i] {
			t.Fatalf("sorted hand = %v, want %v", hand, want)
		}
	}
}

func TestReversedDirection(t *testing.T) {
	o := Ordering{Direction: DirectionLow}
	if !o.Beats(card("2S"), card("AS"), SuitSpades) {
		t.Fatal("downtown: deuce should beat ace")
	}
	if o.Beats(card("KS"), card("3S"), SuitSpades) {
		t.Fatal("downtown: king should lose to three")
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("ParseDirection err = %v", err)
	}
}

func TestPlayCardFollowSuit(t *testing.T) {
	r := TrickRules{}
	tr := NewTrick(North, SuitClubs)
	tr, _, err := PlayCard(tr, cards("KH"), North, card("KH"), r)
	if err != nil {
		t.Fatalf("lead: %v", err)
	}

	hand := cards("2H", "AC", "9S")
	if _, _, err := PlayCard(tr, hand, East, card("AC"), r); !errors.Is(err, ErrMustFollowSuit) {
		t.Fatalf("trumping while holding hearts: err = %v", err)
	}
	if _, _, err := PlayCard(tr, hand, East, card("9S"), r); !errors.Is(err, ErrMustFollowSuit) {
		t.Fatalf("discarding while holding hearts: err = %v", err)
	}
	var re *RuleError
	_, _, err = PlayCard(tr, hand, East, card("9S"), r)
	if !errors.As(err, &re) || re.Reason == "" || re.Kind != KindInvalidPlay {
		t.Fatalf("rejection should carry a reason: %#v", err)
	}
	if len(tr.Plays) != 1 {
		t.Fatal("rejected play must leave the trick unchanged")
	}

	if _, _, err := PlayCard(tr, hand, South, card("2H"), r); err == nil {
		t.Fatal("out of turn play accepted")
	}
	if _, _, err := PlayCard(tr, hand, East, card("3H"), r); err == nil {
		t.Fatal("card not in hand accepted")
	}

	next, rest, err := PlayCard(tr, hand, East, card("2H"), r)
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if len(next.Plays) != 2 || len(rest) != 2 || len(hand) != 3 {
		t.Fatalf("unexpected state after play: %v %v", next.Plays, rest)
	}

	void := cards("AC", "9S")
	if _, _, err := PlayCard(next, void, South, card("AC"), r); err != nil {
		t.Fatalf("void in hearts may trump: %v", err)
	}
	if got := LegalPlays(tr, hand, r); len(got) != 1 || got[0] != card("2H") {
		t.Fatalf("LegalPlays = %v", got)
	}
}

func TestPlayCardLeftBowerFollowsTrump(t *testing.T) {
	r := TrickRules{Bowers: true}
	tr := NewTrick(North, SuitSpades)
	tr, _, _ = PlayCard(tr, cards("AS"), North, card("AS"), r)
	hand := cards("JC", "KH")
	if _, _, err := PlayCard(tr, hand, East, card("KH"), r); !errors.Is(err, ErrMustFollowSuit) {
		t.Fatalf("left bower holder must follow trump: err = %v", err)
	}
	if _, _, err := PlayCard(tr, hand, East, card("JC"), r); err != nil {
		t.Fatalf("left bower follows trump: %v", err)
	}
}

func TestDetermineWinner(t *testing.T) {
	tests := []struct {
		name  string
		trump Suit
		rules TrickRules
		plays []string
		want  Seat
	}{
		{name: "highest of led suit", plays: []string{"9H", "KH", "2H", "AS"}, want: East},
		{name: "trump wins", trump: SuitSpades, plays: []string{"9H", "KH", "2S", "AH"}, want: South},
		{name: "highest trump", trump: SuitSpades, plays: []string{"9S", "3S", "2H", "10S"}, want: West},
		{name: "downtown", rules: TrickRules{Direction: DirectionLow}, plays: []string{"9H", "KH", "2H", "AH"}, want: South},
		{name: "right bower", trump: SuitDiamonds, rules: TrickRules{Bowers: true}, plays: []string{"AD", "JH", "JD", "KD"}, want: South},
		{name: "left bower", trump: SuitDiamonds, rules: TrickRules{Bowers: true}, plays: []string{"AD", "JH", "QD", "KD"}, want: East},
		{name: "off-suit never wins", plays: []string{"2C", "AH", "AS", "AD"}, want: North},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := playAll(t, NewTrick(North, tt.trump), tt.rules, tt.plays...)
			got, err := DetermineWinner(tr, tt.rules)
			if err != nil {
				t.Fatalf("DetermineWinner: %v", err)
			}
			if got != tt.want {
				t.Fatalf("winner = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := DetermineWinner(NewTrick(North, SuitNone), TrickRules{}); !errors.Is(err, ErrInvalidPlay) {
		t.Fatalf("incomplete trick err = %v", err)
	}
}

func TestDetermineWinnerIgnoresRecordingOrder(t *testing.T) {
	base := []Play{
		{Seat: East, Card: card("7H")},
		{Seat: South, Card: card("QH")},
		{Seat: West, Card: card("3D")},
		{Seat: North, Card: card("8D")},
	}
	perms := [][]int{
		{0, 1, 2, 3}, {0, 2, 1, 3}, {0, 3, 2, 1}, {3, 2, 1, 0}, {1, 0, 3, 2}, {2, 3, 0, 1},
	}
	for _, trump := range []Suit{SuitNone, SuitDiamonds, SuitClubs, SuitHearts} {
		var want Seat
		for i, perm := range perms {
			tr := Trick{Leader: East, Trump: trump}
			for _, idx := range perm {
				tr.Plays = append(tr.Plays, base[idx])
			}
			got, err := DetermineWinner(tr, TrickRules{})
			if err != nil {
				t.Fatalf("DetermineWinner: %v", err)
			}
			if i == 0 {
				want = got
				continue
			}
			if got != want {
				t.Fatalf("trump %q perm %v: winner %s, want %s", trump, perm, got, want)
			}
		}
	}
}

func TestClaimInfo(t *testing.T) {
	c, err := ClaimInfo(9, 13, West)
	if err != nil || c.TricksRemaining != 4 || c.Claimant != West {
		t.Fatalf("ClaimInfo = %+v, %v", c, err)
	}
	tally := Tally{3, 2, 2, 2}.WithClaim(c)
	if tally[West] != 6 || tally.Total() != 13 {
		t.Fatalf("tally after claim = %v", tally)
	}
	if _, err := ClaimInfo(13, 13, West); !errors.Is(err, ErrInvalidPlay) {
		t.Fatalf("nothing to claim err = %v", err)
	}
}
