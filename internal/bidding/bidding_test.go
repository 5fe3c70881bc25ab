package bidding

import (
	"errors"
	"reflect"
	"testing"

	"whist/internal/domain"
)

func mustCard(t *testing.T, s string) domain.Card {
	t.Helper()
	c, err := domain.ParseCard(s)
	if err != nil {
		t.Fatalf("ParseCard(%q): %v", s, err)
	}
	return c
}

func submit(t *testing.T, e Engine, h History, dealer, seat domain.Seat, b Bid) History {
	t.Helper()
	next, err := Submit(e, h, dealer, seat, b)
	if err != nil {
		t.Fatalf("%s bidding %s: %v", seat, b, err)
	}
	return next
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	var re *domain.RuleError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want rule error %s", err, code)
	}
	if re.Kind != domain.KindInvalidBid || re.Code != code {
		t.Fatalf("err = %s/%s, want invalid_bid/%s", re.Kind, re.Code, code)
	}
	if re.Reason == "" {
		t.Fatal("rejection carries no reason")
	}
}

func TestOhHellDealerRestriction(t *testing.T) {
	e := NewOhHell(13)
	dealer := domain.West
	var h History
	h = submit(t, e, h, dealer, domain.North, ExactBid(4))
	h = submit(t, e, h, dealer, domain.East, ExactBid(3))
	h = submit(t, e, h, dealer, domain.South, ExactBid(3))

	_, err := Submit(e, h, dealer, domain.West, ExactBid(3))
	wantCode(t, err, domain.CodeDealerRestriction)
	if !errors.Is(err, domain.ErrInvalidBid) {
		t.Fatalf("err = %v, want ErrInvalidBid", err)
	}
	if len(h) != 3 {
		t.Fatal("rejected bid changed the history")
	}

	for _, n := range []int{2, 4} {
		if err := e.ValidateBid(h, dealer, domain.West, ExactBid(n)); err != nil {
			t.Fatalf("dealer bid %d rejected: %v", n, err)
		}
	}

	legal := LegalBids(e, h, dealer, domain.West, nil)
	if len(legal) != 13 {
		t.Fatalf("dealer has %d legal bids, want 13", len(legal))
	}
	for _, b := range legal {
		if b.Level == 3 {
			t.Fatal("restricted bid listed as legal")
		}
	}
}

func TestOhHellSequence(t *testing.T) {
	e := NewOhHell(5)
	dealer := domain.North
	if s, _ := e.NextBidder(nil, dealer); s != domain.East {
		t.Fatalf("first bidder = %s, want east", s)
	}
	_, err := Submit(e, nil, dealer, domain.South, ExactBid(1))
	wantCode(t, err, domain.CodeOutOfTurn)
	_, err = Submit(e, nil, dealer, domain.East, ExactBid(6))
	wantCode(t, err, domain.CodeOutOfBounds)
	_, err = Submit(e, nil, dealer, domain.East, Pass())
	wantCode(t, err, domain.CodeWrongShape)

	var h History
	for _, s := range domain.SeatsFrom(domain.East) {
		h = submit(t, e, h, dealer, s, ExactBid(2))
	}
	if !e.IsComplete(h, dealer) {
		t.Fatal("auction should be complete")
	}
	res := e.Resolve(h, dealer)
	if res.Outcome != Won || res.Contract.Kind != ContractExact || res.Contract.HasDeclarer {
		t.Fatalf("resolve = %+v", res)
	}
	if res.Contract.Bids != [4]int{2, 2, 2, 2} {
		t.Fatalf("bids = %v", res.Contract.Bids)
	}
}

func TestMinnesotaReveal(t *testing.T) {
	e := Minnesota{}
	dealer := domain.North

	tests := []struct {
		name     string
		cards    map[domain.Seat]string
		wantKind ContractKind
		wantDecl domain.Seat
	}{
		{
			name:     "first black in reveal order grands",
			cards:    map[domain.Seat]string{domain.North: "AS", domain.East: "2H", domain.South: "3C", domain.West: "9D"},
			wantKind: ContractHigh,
			wantDecl: domain.South,
		},
		{
			name:     "reveal starts left of dealer",
			cards:    map[domain.Seat]string{domain.North: "AS", domain.East: "KC", domain.South: "3C", domain.West: "9D"},
			wantKind: ContractHigh,
			wantDecl: domain.East,
		},
		{
			name:     "all red is low",
			cards:    map[domain.Seat]string{domain.North: "AH", domain.East: "2H", domain.South: "3D", domain.West: "9D"},
			wantKind: ContractLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h History
			for _, s := range []domain.Seat{domain.West, domain.North, domain.South, domain.East} {
				if e.IsComplete(h, dealer) {
					t.Fatal("complete too early")
				}
				h = submit(t, e, h, dealer, s, CardBid(mustCard(t, tt.cards[s])))
			}
			res := e.Resolve(h, dealer)
			if res.Outcome != Won || res.Contract.Kind != tt.wantKind {
				t.Fatalf("resolve = %+v", res)
			}
			if tt.wantKind == ContractHigh {
				if !res.Contract.HasDeclarer || res.Contract.Declarer != tt.wantDecl || res.Winning == nil {
					t.Fatalf("declarer = %+v, want %s", res.Contract, tt.wantDecl)
				}
			} else if res.Contract.HasDeclarer || res.Winning != nil {
				t.Fatalf("low contract has a declarer: %+v", res)
			}
		})
	}
}

func TestMinnesotaRejectsSecondBid(t *testing.T) {
	e := Minnesota{}
	h := submit(t, e, nil, domain.North, domain.South, CardBid(mustCard(t, "2S")))
	_, err := Submit(e, h, domain.North, domain.South, CardBid(mustCard(t, "3S")))
	wantCode(t, err, domain.CodeAlreadyBid)
	_, err = Submit(e, h, domain.North, domain.East, ExactBid(3))
	wantCode(t, err, domain.CodeWrongShape)
	if res := e.Resolve(h, domain.North); res.Terminal() {
		t.Fatalf("resolve before four bids = %+v", res)
	}
	if s, ok := e.NextBidder(h, domain.North); !ok || s != domain.East {
		t.Fatalf("NextBidder = %s, %v", s, ok)
	}
}

func TestBidWhistAuction(t *testing.T) {
	e := BidWhist{}
	dealer := domain.West
	var h History

	_, err := Submit(e, h, dealer, domain.East, LevelBid(1, domain.DirectionHigh))
	wantCode(t, err, domain.CodeOutOfTurn)

	h = submit(t, e, h, dealer, domain.North, LevelBid(2, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.East, NoTrumpBid(2, domain.DirectionHigh))

	_, err = Submit(e, h, dealer, domain.South, LevelBid(2, domain.DirectionLow))
	wantCode(t, err, domain.CodeMustExceed)
	_, err = Submit(e, h, dealer, domain.South, LevelBid(7, domain.DirectionLow))
	wantCode(t, err, domain.CodeOutOfBounds)

	h = submit(t, e, h, dealer, domain.South, Pass())
	h = submit(t, e, h, dealer, domain.West, LevelBid(3, domain.DirectionLow))

	_, err = Submit(e, h, dealer, domain.South, LevelBid(4, domain.DirectionHigh))
	wantCode(t, err, domain.CodeAlreadyPassed)

	if s, ok := e.NextBidder(h, dealer); !ok || s != domain.North {
		t.Fatalf("NextBidder = %s, %v, want north", s, ok)
	}
	h = submit(t, e, h, dealer, domain.North, Pass())
	if s, _ := e.NextBidder(h, dealer); s != domain.East {
		t.Fatalf("NextBidder = %s, want east", s)
	}
	if res := e.Resolve(h, dealer); res.Terminal() {
		t.Fatalf("resolved early: %+v", res)
	}
	h = submit(t, e, h, dealer, domain.East, Pass())

	if !e.IsComplete(h, dealer) {
		t.Fatal("auction should be complete")
	}
	res := e.Resolve(h, dealer)
	if res.Outcome != Won || res.Winning == nil || res.Winning.Seat != domain.West {
		t.Fatalf("resolve = %+v", res)
	}
	c := res.Contract
	if c.Kind != ContractLevel || c.Declarer != domain.West || c.Level != 3 || c.Direction != domain.DirectionLow || c.NoTrump {
		t.Fatalf("contract = %+v", c)
	}
	_, err = Submit(e, h, dealer, domain.West, LevelBid(4, domain.DirectionHigh))
	wantCode(t, err, domain.CodeAuctionClosed)
}

func TestBidWhistAllPass(t *testing.T) {
	e := BidWhist{}
	var h History
	for _, s := range domain.SeatsFrom(domain.East) {
		h = submit(t, e, h, domain.North, s, Pass())
	}
	res := e.Resolve(h, domain.North)
	if res.Outcome != NoContract || res.Winning != nil {
		t.Fatalf("resolve = %+v", res)
	}
}

func TestWidowTieRebid(t *testing.T) {
	e := Widow{}
	dealer := domain.North
	var h History
	h = submit(t, e, h, dealer, domain.North, LevelBid(9, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.East, LevelBid(10, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.South, LevelBid(10, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.West, Pass())

	if e.IsComplete(h, dealer) {
		t.Fatal("tie should open a re-bid round")
	}
	_, err := Submit(e, h, dealer, domain.North, LevelBid(11, domain.DirectionHigh))
	wantCode(t, err, domain.CodeNotEligible)
	_, err = Submit(e, h, dealer, domain.East, LevelBid(9, domain.DirectionHigh))
	wantCode(t, err, domain.CodeMustExceed)

	h = submit(t, e, h, dealer, domain.East, LevelBid(11, domain.DirectionHigh))
	if h[len(h)-1].Round != 1 {
		t.Fatalf("re-bid recorded in round %d, want 1", h[len(h)-1].Round)
	}
	_, err = Submit(e, h, dealer, domain.East, LevelBid(12, domain.DirectionHigh))
	wantCode(t, err, domain.CodeAlreadyBid)
	h = submit(t, e, h, dealer, domain.South, LevelBid(10, domain.DirectionHigh))

	res := e.Resolve(h, dealer)
	if res.Outcome != Won || res.Contract.Kind != ContractSolo || res.Contract.Declarer != domain.East || res.Contract.Level != 11 {
		t.Fatalf("resolve = %+v", res)
	}
}

func TestWidowRebidAllPassFavoursEldest(t *testing.T) {
	e := Widow{}
	dealer := domain.East
	var h History
	h = submit(t, e, h, dealer, domain.North, LevelBid(8, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.East, LevelBid(8, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.South, LevelBid(7, domain.DirectionHigh))
	h = submit(t, e, h, dealer, domain.West, Pass())
	h = submit(t, e, h, dealer, domain.East, Pass())
	h = submit(t, e, h, dealer, domain.North, Pass())

	res := e.Resolve(h, dealer)
	if res.Outcome != Won || res.Contract.Declarer != domain.North || res.Contract.Level != 8 {
		t.Fatalf("resolve = %+v", res)
	}
}

func TestWidowAllPass(t *testing.T) {
	e := Widow{}
	var h History
	for _, s := range domain.SeatsFrom(domain.North) {
		h = submit(t, e, h, domain.West, s, Pass())
	}
	if res := e.Resolve(h, domain.West); res.Outcome != NoContract {
		t.Fatalf("resolve = %+v", res)
	}
}

func TestResolveIdempotent(t *testing.T) {
	type auction struct {
		name   string
		engine Engine
		bids   []Entry
	}
	auctions := []auction{
		{name: "minnesota", engine: Minnesota{}, bids: []Entry{
			{Seat: domain.East, Bid: CardBid(domain.Card{Suit: domain.SuitHearts, Rank: domain.Rank4})},
			{Seat: domain.South, Bid: CardBid(domain.Card{Suit: domain.SuitSpades, Rank: domain.Rank4})},
			{Seat: domain.West, Bid: CardBid(domain.Card{Suit: domain.SuitClubs, Rank: domain.Rank4})},
			{Seat: domain.North, Bid: CardBid(domain.Card{Suit: domain.SuitDiamonds, Rank: domain.Rank4})},
		}},
		{name: "bid whist", engine: BidWhist{}, bids: []Entry{
			{Seat: domain.East, Bid: LevelBid(4, domain.DirectionHigh)},
			{Seat: domain.South, Bid: Pass()},
			{Seat: domain.West, Bid: Pass()},
			{Seat: domain.North, Bid: Pass()},
		}},
		{name: "oh hell", engine: NewOhHell(7), bids: []Entry{
			{Seat: domain.East, Bid: ExactBid(1)},
			{Seat: domain.South, Bid: ExactBid(2)},
			{Seat: domain.West, Bid: ExactBid(0)},
			{Seat: domain.North, Bid: ExactBid(3)},
		}},
		{name: "widow", engine: Widow{}, bids: []Entry{
			{Seat: domain.East, Bid: LevelBid(7, domain.DirectionHigh)},
			{Seat: domain.South, Bid: Pass()},
			{Seat: domain.West, Bid: LevelBid(9, domain.DirectionHigh)},
			{Seat: domain.North, Bid: Pass()},
		}},
	}
	for _, a := range auctions {
		t.Run(a.name, func(t *testing.T) {
			var h History
			for _, e := range a.bids {
				h = submit(t, a.engine, h, domain.North, e.Seat, e.Bid)
			}
			first := a.engine.Resolve(h, domain.North)
			second := a.engine.Resolve(h, domain.North)
			if !first.Terminal() {
				t.Fatalf("auction not terminal: %+v", first)
			}
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("resolve not idempotent: %+v vs %+v", first, second)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindCard, KindLevel, KindExact} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("bogus"); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("ParseKind(bogus) err = %v", err)
	}
}
