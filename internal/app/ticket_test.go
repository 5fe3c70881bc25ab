package app

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/variant"
)

func TestTicketRoundTrip(t *testing.T) {
	svc := newTestService(11)
	h := deal(t, svc, variant.BidWhist)
	table := Table{Hand: h, Step: 4}

	sealer := NewTicketSealer("test-secret", "whist", time.Hour)
	token, err := sealer.Seal("u-north", table)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	claims := parseTicketClaims(t, token, "test-secret")
	if got := claims["sub"]; got != "u-north" {
		t.Fatalf("sub = %v, want u-north", got)
	}
	if got := claims["iss"]; got != "whist" {
		t.Fatalf("iss = %v, want whist", got)
	}

	tk, err := sealer.Open(token)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if tk != (Ticket{UserID: "u-north", HandID: h.ID, Step: 4}) {
		t.Fatalf("ticket = %+v", tk)
	}
	if err := tk.Admits(table); err != nil {
		t.Fatalf("admits: %v", err)
	}
}

func TestTicketCarriesNoHandState(t *testing.T) {
	svc := newTestService(12)
	h := deal(t, svc, variant.MinnesotaWhist)
	bid := h.Hands[domain.East][0]
	if _, err := svc.Bid(h, domain.North, bidding.CardBid(h.Hands[domain.North][0])); err != nil {
		t.Fatalf("north bid: %v", err)
	}
	if _, err := svc.Bid(h, domain.East, bidding.CardBid(bid)); err != nil {
		t.Fatalf("east bid: %v", err)
	}

	token, err := NewTicketSealer("test-secret", "whist", time.Hour).Seal("u-north", Table{Hand: h, Step: 2})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	body, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(body, &claims); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	allowed := map[string]bool{"iss": true, "sub": true, "iat": true, "exp": true, "jti": true, "hid": true, "step": true}
	for k := range claims {
		if !allowed[k] {
			t.Fatalf("token body carries %q: %s", k, body)
		}
	}
}

func TestTicketAdmitsOnlyCurrentStep(t *testing.T) {
	h := &Hand{ID: "hand-1"}
	tk := Ticket{UserID: "u", HandID: "hand-1", Step: 3}
	tests := []struct {
		name  string
		table Table
		want  error
	}{
		{"current", Table{Hand: h, Step: 3}, nil},
		{"replayed", Table{Hand: h, Step: 4}, ErrTicketStale},
		{"other hand", Table{Hand: &Hand{ID: "hand-2"}, Step: 3}, ErrTicketStale},
		{"no hand", Table{Step: 3}, ErrTicketStale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tk.Admits(tt.table); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTicketOpenRejects(t *testing.T) {
	table := Table{Hand: &Hand{ID: "hand-1"}}
	sealer := NewTicketSealer("test-secret", "whist", time.Hour)
	token, err := sealer.Seal("u", table)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	expired := NewTicketSealer("test-secret", "whist", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Seal("u", table)
	if err != nil {
		t.Fatalf("seal expired: %v", err)
	}
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"whist","sub":"u","hid":"hand-1","step":9}`)) + "." + parts[2]

	tests := []struct {
		name   string
		sealer *TicketSealer
		token  string
	}{
		{"wrong secret", NewTicketSealer("other", "whist", time.Hour), token},
		{"wrong issuer", NewTicketSealer("test-secret", "elsewhere", time.Hour), token},
		{"expired", sealer, old},
		{"tampered", sealer, tampered},
		{"garbage", sealer, "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sealer.Open(tt.token); !errors.Is(err, ErrTicketInvalid) {
				t.Fatalf("err = %v, want ErrTicketInvalid", err)
			}
		})
	}
}

func TestTicketRequiresConfig(t *testing.T) {
	table := Table{Hand: &Hand{ID: "hand-1"}}
	if _, err := NewTicketSealer("", "whist", 0).Seal("u", table); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := NewTicketSealer("s", "whist", 0).Seal("u", Table{}); err == nil {
		t.Fatal("expected error for missing hand")
	}
	var nilSealer *TicketSealer
	if _, err := nilSealer.Seal("u", table); err == nil {
		t.Fatal("expected error for nil sealer")
	}
}

func parseTicketClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}
