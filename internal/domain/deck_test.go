package domain

import (
	"errors"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}
	if err := CheckConservation(deck); err != nil {
		t.Fatalf("new deck not a full deck: %v", err)
	}
	for i, c := range deck {
		if c.Index() != i {
			t.Fatalf("deck[%d] = %s has index %d", i, c, c.Index())
		}
	}
}

func TestBuildDeckSeeded(t *testing.T) {
	seed := int64(42)
	a := BuildDeck(&seed)
	b := BuildDeck(&seed)
	if err := CheckConservation(a); err != nil {
		t.Fatalf("shuffled deck lost cards: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different decks at %d: %s vs %s", i, a[i], b[i])
		}
	}
	other := int64(43)
	c := BuildDeck(&other)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical decks")
	}
}

func TestCheckConservation(t *testing.T) {
	deck := NewDeck()
	if err := CheckConservation(deck[:10], deck[10:40], deck[40:]); err != nil {
		t.Fatalf("split deck should conserve: %v", err)
	}
	dup := append(append([]Card{}, deck[:51]...), deck[0])
	if err := CheckConservation(dup); !errors.Is(err, ErrMalformedData) {
		t.Fatalf("duplicate card: err = %v, want malformed data", err)
	}
	if err := CheckConservation(deck[:51]); err == nil {
		t.Fatal("missing card should be reported")
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in      string
		want    Card
		wantErr error
	}{
		{in: "AS", want: Card{Suit: SuitSpades, Rank: RankA}},
		{in: "10h", want: Card{Suit: SuitHearts, Rank: Rank10}},
		{in: " 2C ", want: Card{Suit: SuitClubs, Rank: Rank2}},
		{in: "JD", want: Card{Suit: SuitDiamonds, Rank: RankJ}},
		{in: "", wantErr: ErrInvalidFormat},
		{in: "1000S", wantErr: ErrInvalidFormat},
		{in: "XS", wantErr: ErrInvalidFormat},
		{in: "A1", wantErr: ErrInvalidFormat},
		{in: "1S", wantErr: ErrOutOfRange},
		{in: "11S", wantErr: ErrOutOfRange},
		{in: "AX", wantErr: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCard(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCard(%q) err = %v, want %v", tt.in, err, tt.wantErr)
				}
				if !errors.Is(err, ErrMalformedData) {
					t.Fatalf("ParseCard(%q) err = %v should be malformed data", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCardStringRoundTrip(t *testing.T) {
	for _, c := range NewDeck() {
		got, err := ParseCard(c.String())
		if err != nil || got != c {
			t.Fatalf("round trip of %s gave %v, %v", c, got, err)
		}
	}
}

func TestParseCardsRejectsDuplicates(t *testing.T) {
	cards, err := ParseCards("AS,10H,2C")
	if err != nil || len(cards) != 3 {
		t.Fatalf("ParseCards = %v, %v", cards, err)
	}
	if FormatCards(cards) != "AS,10H,2C" {
		t.Fatalf("FormatCards = %q", FormatCards(cards))
	}
	if _, err := ParseCards("AS,as"); !errors.Is(err, ErrMalformedData) {
		t.Fatalf("duplicate err = %v", err)
	}
	if cards, err := ParseCards(""); err != nil || cards != nil {
		t.Fatalf("empty = %v, %v", cards, err)
	}
}

func TestDecodeCard(t *testing.T) {
	c, err := DecodeCard(12, 0)
	if err != nil || c != (Card{Suit: SuitSpades, Rank: RankA}) {
		t.Fatalf("DecodeCard(12,0) = %v, %v", c, err)
	}
	if _, err := DecodeCard(13, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("rank 13 err = %v", err)
	}
	if _, err := DecodeCard(0, 4); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("suit 4 err = %v", err)
	}
	if _, err := CardFromIndex(52); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("index 52 err = %v", err)
	}
	if c, _ := CardFromIndex(13); c != (Card{Suit: SuitHearts, Rank: Rank2}) {
		t.Fatalf("CardFromIndex(13) = %v", c)
	}
}

func TestCardColor(t *testing.T) {
	if (Card{Suit: SuitSpades, Rank: Rank2}).Color() != ColorBlack {
		t.Fatal("spades should be black")
	}
	if (Card{Suit: SuitDiamonds, Rank: Rank2}).Color() != ColorRed {
		t.Fatal("diamonds should be red")
	}
}

func TestRemoveCards(t *testing.T) {
	hand := []Card{{SuitSpades, RankA}, {SuitHearts, Rank2}, {SuitClubs, Rank9}}
	out := RemoveCards(hand, []Card{{SuitHearts, Rank2}})
	if len(out) != 2 || ContainsCard(out, Card{SuitHearts, Rank2}) {
		t.Fatalf("RemoveCards = %v", out)
	}
	if len(hand) != 3 {
		t.Fatal("RemoveCards must not modify its input")
	}
}

func TestSeatsAndTeams(t *testing.T) {
	if West.Next() != North {
		t.Fatalf("West.Next() = %s", West.Next())
	}
	if North.Team() != TeamNorthSouth || East.Team() != TeamEastWest || South.Partner() != North {
		t.Fatal("partnership model broken")
	}
	order := SeatsFrom(South)
	if order != [4]Seat{South, West, North, East} {
		t.Fatalf("SeatsFrom(South) = %v", order)
	}
	var tally Tally
	tally.Award(North, 3)
	tally.Award(South, 4)
	tally.Award(East, 6)
	if tally.Team(TeamNorthSouth) != 7 || tally.Team(TeamEastWest) != 6 || tally.Total() != 13 {
		t.Fatalf("tally = %v", tally)
	}
}

func TestRoster(t *testing.T) {
	var r Roster
	if s, ok := LowestAvailableSeat(&r); !ok || s != North {
		t.Fatalf("empty roster: %s, %v", s, ok)
	}
	r[North], r[East] = "u1", "u2"
	if s, ok := LowestAvailableSeat(&r); !ok || s != South {
		t.Fatalf("LowestAvailableSeat = %s, %v", s, ok)
	}
	if s, ok := r.SeatOf("u2"); !ok || s != East {
		t.Fatalf("SeatOf(u2) = %s, %v", s, ok)
	}
	if _, ok := r.SeatOf(""); ok {
		t.Fatal("empty id must not match an open seat")
	}
	r[South], r[West] = "u3", "u4"
	if !r.Full() {
		t.Fatal("roster should be full")
	}
	if !PhaseScored.Terminal() || PhasePlaying.Terminal() {
		t.Fatal("phase terminal flags wrong")
	}
}
