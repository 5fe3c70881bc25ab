package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/oklog/ulid/v2"

	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/scoring"
	"whist/internal/trump"
	"whist/internal/variant"
)

// Service drives hands of any registered variant through deal, auction,
// exchange, declaration, play and scoring. It keeps no state of its own
// between calls; everything lives in the Hand and Game values passed in.
type Service struct {
	rng    *rand.Rand
	logger runtime.Logger
}

// NewService constructs a Service with provided rng or a time-seeded default.
// A nil logger discards output.
func NewService(rng *rand.Rand, logger runtime.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Service{rng: rng, logger: logger}
}

var (
	ErrWrongPhase     = errors.New("action not allowed in this phase")
	ErrNotDeclarer    = errors.New("actor is not the declarer")
	ErrClaimsDisabled = errors.New("this variant does not allow claims")
	ErrClaimPending   = errors.New("a claim is waiting for a ruling")
	ErrNoClaim        = errors.New("no claim is pending")
	ErrMidTrick       = errors.New("claims are only made between tricks")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrSeatsOpen      = errors.New("every seat needs a player")
	ErrHandNotScored  = errors.New("hand has not been scored")
	ErrGameOver       = errors.New("game is already over")
)

// Bundle resolves the variant pieces for h.
func (s *Service) Bundle(h *Hand) (variant.Bundle, error) {
	opts := append(h.House.Options(), variant.WithHandSize(h.HandSize))
	return variant.Lookup(h.Variant, opts...)
}

// DealRequest describes a fresh deal.
type DealRequest struct {
	Variant  variant.ID
	House    variant.House
	Players  domain.Roster
	Dealer   domain.Seat
	Number   int
	HandSize int
}

// Deal shuffles and deals a new hand. HandSize is only read by Oh Hell; zero
// there follows the 13-down-to-1 schedule keyed by Number.
func (s *Service) Deal(req DealRequest) (*Hand, []Event, error) {
	if !req.Dealer.Valid() {
		return nil, nil, fmt.Errorf("dealer seat %d: %w", int(req.Dealer), ErrUnknownPlayer)
	}
	if err := req.House.Validate(); err != nil {
		return nil, nil, err
	}
	if req.Number < 1 {
		req.Number = 1
	}
	size := req.HandSize
	if req.Variant == variant.OhHell && size == 0 {
		size = variant.OhHellHandSize(req.Number)
	}
	h := &Hand{
		ID:       ulid.MustNew(ulid.Timestamp(time.Now()), s.rng).String(),
		Variant:  req.Variant,
		House:    req.House,
		HandSize: size,
		Number:   req.Number,
		Players:  req.Players,
		Dealer:   req.Dealer,
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, nil, err
	}
	h.HandSize = b.Rules.TricksPerHand

	deck := domain.ShuffleDeck(domain.NewDeck(), s.rng)
	s.dealCards(h, b.Rules, deck)

	events := make([]Event, 0, domain.NumSeats+1)
	for _, seat := range domain.SeatsFrom(h.Dealer.Next()) {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: h.Hands[seat], Dealer: h.Dealer, Turned: h.Turned},
			Recipients: h.recipient(seat),
		})
	}

	log := s.logger.WithFields(map[string]interface{}{"hand": h.ID, "variant": string(h.Variant)})
	log.Debug("dealt hand %d with %d cards each, dealer %s", h.Number, h.HandSize, h.Dealer)

	if b.Rules.UsesBidding {
		h.Phase = domain.PhaseBidding
		return h, events, nil
	}
	h.Contract = bidding.Contract{Kind: bidding.ContractPlain}
	return h, append(events, s.startPlay(h, b)...), nil
}

// dealCards deals one card at a time clockwise from the dealer's left, so the
// last card of a full deal lands with the dealer.
func (s *Service) dealCards(h *Hand, rules variant.Rules, deck []domain.Card) {
	n := rules.TricksPerHand
	order := domain.SeatsFrom(h.Dealer.Next())
	for i := range h.Hands {
		h.Hands[i] = make([]domain.Card, 0, n+rules.KittySize)
	}
	pos := 0
	for round := 0; round < n; round++ {
		for _, seat := range order {
			h.Hands[seat] = append(h.Hands[seat], deck[pos])
			pos++
		}
	}
	last := deck[pos-1]
	h.LastDealt = &last

	rest := deck[pos:]
	switch {
	case rules.KittySize > 0:
		h.Kitty = append([]domain.Card(nil), rest[:rules.KittySize]...)
		rest = rest[rules.KittySize:]
	case rules.TrumpMethod == trump.MethodTurnedCard && len(rest) > 0:
		turned := rest[0]
		h.Turned = &turned
		rest = rest[1:]
	}
	if len(rest) > 0 {
		h.Stock = append([]domain.Card(nil), rest...)
	}
}

// Bid records a bid from seat and, once the auction is complete, moves the
// hand on. A rejected bid leaves h unchanged.
func (s *Service) Bid(h *Hand, seat domain.Seat, bid bidding.Bid) ([]Event, error) {
	if h.Phase != domain.PhaseBidding {
		return nil, ErrWrongPhase
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	if b.Bidding == nil {
		return nil, ErrWrongPhase
	}
	if bid.Kind == bidding.KindCard && seat.Valid() && !domain.ContainsCard(h.Hands[seat], bid.Card) {
		return nil, domain.InvalidBid(domain.CodeNotInHand, "%s does not hold %s", seat, bid.Card)
	}
	next, err := bidding.Submit(b.Bidding, h.Bids, h.Dealer, seat, bid)
	if err != nil {
		s.logger.WithField("hand", h.ID).Debug("rejected bid %s from %s: %v", bid, seat, err)
		return nil, err
	}
	h.Bids = next

	placed := BidPlacedPayload{Seat: seat}
	if faceDown(h.Variant, bid) {
		placed.Hidden = true
	} else {
		shown := bid
		placed.Bid = &shown
	}
	events := []Event{{Kind: EventBidPlaced, Payload: placed}}

	res := b.Bidding.Resolve(h.Bids, h.Dealer)
	if !res.Terminal() {
		return events, nil
	}
	h.Auction = &res
	events = append(events, Event{Kind: EventAuctionClosed, Payload: AuctionClosedPayload{Result: res, Bids: h.Bids}})

	if res.Outcome == bidding.NoContract {
		h.Phase = domain.PhaseRedeal
		s.logger.WithField("hand", h.ID).Info("no contract after %d bids, redeal", len(h.Bids))
		return events, nil
	}
	h.Contract = res.Contract
	h.Direction = res.Contract.Direction
	return append(events, s.afterAuction(h, b)...), nil
}

func (s *Service) afterAuction(h *Hand, b variant.Bundle) []Event {
	if b.Rules.KittySize > 0 && h.Contract.HasDeclarer {
		d := h.Contract.Declarer
		kitty := h.Kitty
		h.Hands[d] = append(append([]domain.Card(nil), h.Hands[d]...), kitty...)
		h.Kitty = nil
		h.Phase = domain.PhaseExchange
		return []Event{{
			Kind:       EventKittyTaken,
			Payload:    KittyTakenPayload{Declarer: d, Kitty: kitty},
			Recipients: h.recipient(d),
		}}
	}
	if b.Rules.TrumpMethod == trump.MethodBidWinnerDeclares {
		h.Phase = domain.PhaseDeclare
		return nil
	}
	return s.startPlay(h, b)
}

// Exchange buries discards from the declarer's hand after the kitty was taken.
// Only cardinality and ownership are checked.
func (s *Service) Exchange(h *Hand, seat domain.Seat, discards []domain.Card) ([]Event, error) {
	if h.Phase != domain.PhaseExchange {
		return nil, ErrWrongPhase
	}
	if !h.Contract.HasDeclarer || seat != h.Contract.Declarer {
		return nil, ErrNotDeclarer
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	if len(discards) != b.Rules.KittySize {
		return nil, domain.InvalidPlay(domain.CodeCardCount, "discard exactly %d cards, not %d", b.Rules.KittySize, len(discards))
	}
	seen := make(map[domain.Card]bool, len(discards))
	for _, c := range discards {
		if seen[c] {
			return nil, domain.InvalidPlay(domain.CodeDuplicateCard, "%s is listed twice", c)
		}
		seen[c] = true
		if !domain.ContainsCard(h.Hands[seat], c) {
			return nil, domain.InvalidPlay(domain.CodeNotInHand, "%s does not hold %s", seat, c)
		}
	}
	h.Hands[seat] = domain.RemoveCards(h.Hands[seat], discards)
	h.Discards = append([]domain.Card(nil), discards...)

	events := []Event{{Kind: EventExchanged, Payload: ExchangedPayload{Declarer: seat, Count: len(discards)}}}
	if b.Rules.TrumpMethod == trump.MethodBidWinnerDeclares {
		h.Phase = domain.PhaseDeclare
		return events, nil
	}
	return append(events, s.startPlay(h, b)...), nil
}

// DeclareTrump captures the declarer's choice of trump. A no-trump contract
// must be declared no-trump and a suit contract must name a suit.
func (s *Service) DeclareTrump(h *Hand, seat domain.Seat, d trump.Declaration) ([]Event, error) {
	if h.Phase != domain.PhaseDeclare {
		return nil, ErrWrongPhase
	}
	if !h.Contract.HasDeclarer || seat != h.Contract.Declarer {
		return nil, ErrNotDeclarer
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if h.Contract.Kind == bidding.ContractLevel && d.NoTrump != h.Contract.NoTrump {
		if h.Contract.NoTrump {
			return nil, domain.InvalidBid(domain.CodeWrongShape, "the contract is no-trump")
		}
		return nil, domain.InvalidBid(domain.CodeWrongShape, "the contract was bid in a suit; name it")
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	h.Declaration = &d
	return s.startPlay(h, b), nil
}

func (s *Service) startPlay(h *Hand, b variant.Bundle) []Event {
	h.Trump = b.Trump(trump.Snapshot{
		DealerLastCard: h.LastDealt,
		TurnedCard:     h.Turned,
		Declaration:    h.Declaration,
	})
	leader := h.Dealer.Next()
	if b.Rules.DeclarerLeads && h.Contract.HasDeclarer {
		leader = h.Contract.Declarer
	}
	h.Current = domain.NewTrick(leader, h.Trump)
	h.Phase = domain.PhasePlaying
	return []Event{{
		Kind:    EventPlayStarted,
		Payload: PlayStartedPayload{Trump: h.Trump, Direction: h.Direction, Leader: leader},
	}}
}

// Play lays card from seat's hand on the current trick.
func (s *Service) Play(h *Hand, seat domain.Seat, card domain.Card) ([]Event, error) {
	if h.Phase != domain.PhasePlaying {
		return nil, ErrWrongPhase
	}
	if h.PendingClaim != nil {
		return nil, ErrClaimPending
	}
	if !seat.Valid() {
		return nil, domain.InvalidPlay(domain.CodeOutOfTurn, "seat %d is not at the table", int(seat))
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	rules := b.Rules.TrickRules(h.Direction)
	trick, hand, err := domain.PlayCard(h.Current, h.Hands[seat], seat, card, rules)
	if err != nil {
		return nil, err
	}
	h.Current = trick
	h.Hands[seat] = hand

	played := CardPlayedPayload{Seat: seat, Card: card}
	if next, ok := trick.Turn(); ok {
		played.Next = &next
	}
	events := []Event{{Kind: EventCardPlayed, Payload: played}}
	if !trick.Complete() {
		return events, nil
	}

	winner, err := domain.DetermineWinner(trick, rules)
	if err != nil {
		return events, err
	}
	h.Tally.Award(winner, 1)
	h.Completed = append(h.Completed, trick)
	h.Current = domain.NewTrick(winner, h.Trump)
	events = append(events, Event{
		Kind:    EventTrickWon,
		Payload: TrickWonPayload{Winner: winner, Trick: trick, Tally: h.Tally},
	})
	if h.TricksPlayed() == b.Rules.TricksPerHand {
		events = append(events, s.score(h, b)...)
	}
	return events, nil
}

// ProposeClaim asks to award seat every remaining trick. Play stops until
// ResolveClaim rules on it.
func (s *Service) ProposeClaim(h *Hand, seat domain.Seat) ([]Event, error) {
	if h.Phase != domain.PhasePlaying {
		return nil, ErrWrongPhase
	}
	if h.PendingClaim != nil {
		return nil, ErrClaimPending
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	if !b.Rules.AllowsClaimingTricks {
		return nil, ErrClaimsDisabled
	}
	if len(h.Current.Plays) > 0 {
		return nil, ErrMidTrick
	}
	if !seat.Valid() {
		return nil, ErrUnknownPlayer
	}
	claim, err := domain.ClaimInfo(h.TricksPlayed(), b.Rules.TricksPerHand, seat)
	if err != nil {
		return nil, err
	}
	h.PendingClaim = &claim
	return []Event{{Kind: EventClaimProposed, Payload: ClaimProposedPayload{Claim: claim}}}, nil
}

// ResolveClaim applies the arbiter's ruling on the pending claim. An accepted
// claim takes the unplayed cards out of every hand and scores the hand.
func (s *Service) ResolveClaim(h *Hand, accept bool) ([]Event, error) {
	if h.Phase != domain.PhasePlaying {
		return nil, ErrWrongPhase
	}
	if h.PendingClaim == nil {
		return nil, ErrNoClaim
	}
	claim := *h.PendingClaim
	h.PendingClaim = nil
	events := []Event{{Kind: EventClaimResolved, Payload: ClaimResolvedPayload{Claim: claim, Accepted: accept}}}
	if !accept {
		return events, nil
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	for i := range h.Hands {
		h.Claimed = append(h.Claimed, h.Hands[i]...)
		h.Hands[i] = nil
	}
	h.Tally = h.Tally.WithClaim(claim)
	return append(events, s.score(h, b)...), nil
}

// ArbitrateClaim rules on the pending claim itself: it is accepted only when
// the claimant is on lead and sure of every remaining trick against the
// cards the other three seats still hold.
func (s *Service) ArbitrateClaim(h *Hand) ([]Event, bool, error) {
	if h.PendingClaim == nil {
		return nil, false, ErrNoClaim
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, false, err
	}
	claimant := h.PendingClaim.Claimant
	var outstanding []domain.Card
	for i, cards := range h.Hands {
		if domain.Seat(i) != claimant {
			outstanding = append(outstanding, cards...)
		}
	}
	o := h.Current.Ordering(b.Rules.TrickRules(h.Direction))
	accept := h.Current.Leader == claimant && sureOfEveryTrick(h.Hands[claimant], outstanding, o)
	events, err := s.ResolveClaim(h, accept)
	return events, accept, err
}

func (s *Service) score(h *Hand, b variant.Bundle) []Event {
	hs := b.Scoring.ScoreHand(h.Contract, h.Tally, scoring.Params{TricksPerHand: b.Rules.TricksPerHand})
	h.Score = &hs
	h.Phase = domain.PhaseScored
	s.logger.WithField("hand", h.ID).Info("hand %d scored: %s", h.Number, hs.Explanation)
	return []Event{{Kind: EventHandScored, Payload: HandScoredPayload{Score: hs, Tally: h.Tally}}}
}

// Redeal replaces a hand whose auction produced no contract. The same dealer
// deals again and the hand keeps its number.
func (s *Service) Redeal(h *Hand) (*Hand, []Event, error) {
	if h.Phase != domain.PhaseRedeal {
		return nil, nil, ErrWrongPhase
	}
	next, events, err := s.Deal(DealRequest{
		Variant:  h.Variant,
		House:    h.House,
		Players:  h.Players,
		Dealer:   h.Dealer,
		Number:   h.Number,
		HandSize: h.HandSize,
	})
	if err != nil {
		return nil, nil, err
	}
	next.Redeals = h.Redeals + 1
	if next.Redeals > MaxRedealsLogged {
		s.logger.WithField("hand", next.ID).Warn("hand %d redealt %d times", next.Number, next.Redeals)
	}
	redeal := Event{Kind: EventRedeal, Payload: RedealPayload{Dealer: next.Dealer, Redeals: next.Redeals}}
	return next, append([]Event{redeal}, events...), nil
}
