package app

import (
	"whist/internal/domain"
	"whist/internal/scoring"
	"whist/internal/variant"
)

// Game carries the running score across hands. Dealer is the dealer of the
// next hand to start.
type Game struct {
	Variant     variant.ID           `json:"variant"`
	House       variant.House        `json:"house"`
	Players     domain.Roster        `json:"players"`
	Scores      [2]int               `json:"scores"`
	SeatScores  [domain.NumSeats]int `json:"seat_scores"`
	HandsPlayed int                  `json:"hands_played"`
	Dealer      domain.Seat          `json:"dealer"`
	Outcome     *scoring.Outcome     `json:"outcome,omitempty"`
	Message     string               `json:"message,omitempty"`
}

// NewGame validates the variant and house rules and seats the players.
func (s *Service) NewGame(id variant.ID, house variant.House, players domain.Roster, dealer domain.Seat) (*Game, error) {
	if !dealer.Valid() {
		return nil, ErrUnknownPlayer
	}
	if !players.Full() {
		return nil, ErrSeatsOpen
	}
	if err := house.Validate(); err != nil {
		return nil, err
	}
	if _, err := variant.Lookup(id, house.Options()...); err != nil {
		return nil, err
	}
	return &Game{Variant: id, House: house, Players: players, Dealer: dealer}, nil
}

// StartHand deals the next hand of g.
func (s *Service) StartHand(g *Game) (*Hand, []Event, error) {
	if g.Outcome != nil {
		return nil, nil, ErrGameOver
	}
	return s.Deal(DealRequest{
		Variant: g.Variant,
		House:   g.House,
		Players: g.Players,
		Dealer:  g.Dealer,
		Number:  g.HandsPlayed + 1,
	})
}

// RecordHand adds a scored hand to the game totals, passes the deal to the
// left and checks whether the game is over.
func (s *Service) RecordHand(g *Game, h *Hand) ([]Event, error) {
	if g.Outcome != nil {
		return nil, ErrGameOver
	}
	if h.Phase != domain.PhaseScored || h.Score == nil {
		return nil, ErrHandNotScored
	}
	b, err := s.Bundle(h)
	if err != nil {
		return nil, err
	}
	for i, d := range h.Score.Teams {
		g.Scores[i] += d
	}
	for i, d := range h.Score.Seats {
		g.SeatScores[i] += d
	}
	g.HandsPlayed++
	g.Dealer = g.Dealer.Next()

	o := b.Scoring.CheckGameOver(g.Scores[0], g.Scores[1], b.Rules.WinningScore)
	if o == nil {
		return nil, nil
	}
	g.Outcome = o
	g.Message = b.Scoring.GameOverMessage(*o, g.Scores[0], g.Scores[1])
	s.logger.WithField("variant", string(g.Variant)).Info("game over after %d hands: %s", g.HandsPlayed, g.Message)
	return []Event{{
		Kind:    EventGameOver,
		Payload: GameOverPayload{Outcome: *o, Scores: g.Scores, Message: g.Message},
	}}, nil
}
