package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/oklog/ulid/v2"
)

const (
	// DefaultTicketTTL bounds how long an issued ticket stays valid.
	DefaultTicketTTL = 24 * time.Hour

	handClaim = "hid"
	stepClaim = "step"
)

var (
	ErrTicketInvalid = errors.New("ticket is invalid or expired")
	ErrTicketStale   = errors.New("ticket does not match the current table")
)

// Table is a player's game and the hand in progress. Step counts the actions
// applied so far; every accepted action moves it forward.
type Table struct {
	Game *Game `json:"game,omitempty"`
	Hand *Hand `json:"hand,omitempty"`
	Step int   `json:"step"`
}

// Ticket names one step of one hand for one player. It carries no hand
// state.
type Ticket struct {
	UserID string
	HandID string
	Step   int
}

// Admits checks that the ticket was issued for the table exactly as it
// stands now.
func (tk Ticket) Admits(t Table) error {
	if t.Hand == nil || tk.HandID != t.Hand.ID || tk.Step != t.Step {
		return ErrTicketStale
	}
	return nil
}

// TicketSealer signs tickets handed to a client after each action.
type TicketSealer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	rng    *rand.Rand
	now    func() time.Time
}

// NewTicketSealer builds a sealer. A non-positive ttl uses DefaultTicketTTL.
func NewTicketSealer(secret, issuer string, ttl time.Duration) *TicketSealer {
	if ttl <= 0 {
		ttl = DefaultTicketTTL
	}
	return &TicketSealer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Seal signs a ticket for userID at the table's current step.
func (s *TicketSealer) Seal(userID string, t Table) (string, error) {
	if s == nil {
		return "", fmt.Errorf("ticket sealer is nil")
	}
	if len(s.secret) == 0 || s.issuer == "" {
		return "", fmt.Errorf("ticket config is incomplete")
	}
	if t.Hand == nil {
		return "", fmt.Errorf("table has no hand")
	}
	now := s.now()
	claims := jwt.MapClaims{
		"iss":     s.issuer,
		"sub":     userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
		"jti":     ulid.MustNew(ulid.Timestamp(now), s.rng).String(),
		handClaim: t.Hand.ID,
		stepClaim: t.Step,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Open verifies a token produced by Seal.
func (s *TicketSealer) Open(tokenString string) (Ticket, error) {
	if s == nil {
		return Ticket{}, fmt.Errorf("ticket sealer is nil")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Ticket{}, fmt.Errorf("%w: %v", ErrTicketInvalid, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Ticket{}, ErrTicketInvalid
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return Ticket{}, fmt.Errorf("%w: wrong issuer", ErrTicketInvalid)
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return Ticket{}, fmt.Errorf("%w: expired", ErrTicketInvalid)
	}
	sub, _ := claims["sub"].(string)
	hid, _ := claims[handClaim].(string)
	step, ok := claims[stepClaim].(float64)
	if sub == "" || hid == "" || !ok {
		return Ticket{}, fmt.Errorf("%w: missing claims", ErrTicketInvalid)
	}
	return Ticket{UserID: sub, HandID: hid, Step: int(step)}, nil
}
