package app

import (
	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/scoring"
)

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventHandDealt     EventKind = "hand_dealt"
	EventBidPlaced     EventKind = "bid_placed"
	EventAuctionClosed EventKind = "auction_closed"
	EventKittyTaken    EventKind = "kitty_taken"
	EventExchanged     EventKind = "exchanged"
	EventPlayStarted   EventKind = "play_started"
	EventCardPlayed    EventKind = "card_played"
	EventTrickWon      EventKind = "trick_won"
	EventClaimProposed EventKind = "claim_proposed"
	EventClaimResolved EventKind = "claim_resolved"
	EventHandScored    EventKind = "hand_scored"
	EventRedeal        EventKind = "redeal"
	EventGameOver      EventKind = "game_over"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type HandDealtPayload struct {
	Seat   domain.Seat
	Hand   []domain.Card
	Dealer domain.Seat
	Turned *domain.Card
}

// BidPlacedPayload hides the card of a face-down card bid until the auction
// closes.
type BidPlacedPayload struct {
	Seat   domain.Seat
	Bid    *bidding.Bid
	Hidden bool
}

type AuctionClosedPayload struct {
	Result bidding.AuctionResult
	Bids   bidding.History
}

type KittyTakenPayload struct {
	Declarer domain.Seat
	Kitty    []domain.Card
}

type ExchangedPayload struct {
	Declarer domain.Seat
	Count    int
}

type PlayStartedPayload struct {
	Trump     domain.Suit
	Direction domain.Direction
	Leader    domain.Seat
}

type CardPlayedPayload struct {
	Seat domain.Seat
	Card domain.Card
	Next *domain.Seat
}

type TrickWonPayload struct {
	Winner domain.Seat
	Trick  domain.Trick
	Tally  domain.Tally
}

type ClaimProposedPayload struct {
	Claim domain.Claim
}

type ClaimResolvedPayload struct {
	Claim    domain.Claim
	Accepted bool
}

type HandScoredPayload struct {
	Score scoring.HandScore
	Tally domain.Tally
}

type RedealPayload struct {
	Dealer  domain.Seat
	Redeals int
}

type GameOverPayload struct {
	Outcome scoring.Outcome
	Scores  [2]int
	Message string
}
