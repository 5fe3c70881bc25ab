package nakama

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"whist/internal/bidding"
	"whist/internal/domain"
	"whist/internal/trump"
)

var responseOptions = protojson.MarshalOptions{EmitUnpopulated: true}

// marshalResponse renders v through a protobuf Struct so every RPC answers in
// the same canonical JSON.
func marshalResponse(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	st, err := structpb.NewStruct(generic)
	if err != nil {
		return "", err
	}
	out, err := responseOptions.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// unmarshalRequest decodes an RPC payload. An empty payload leaves v zero.
func unmarshalRequest(payload string, v any) error {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal([]byte(payload), st); err != nil {
		return err
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// bidRequest is the wire form of a bid. Card is a card code like "10H";
// Direction is "high" or "low".
type bidRequest struct {
	Kind      string `json:"kind"`
	Pass      bool   `json:"pass"`
	Card      string `json:"card"`
	Level     int    `json:"level"`
	Direction string `json:"direction"`
	NoTrump   bool   `json:"no_trump"`
}

func (r bidRequest) toBid() (bidding.Bid, error) {
	kind, err := bidding.ParseKind(r.Kind)
	if err != nil {
		return bidding.Bid{}, err
	}
	switch kind {
	case bidding.KindCard:
		c, err := domain.ParseCard(r.Card)
		if err != nil {
			return bidding.Bid{}, err
		}
		return bidding.CardBid(c), nil
	case bidding.KindExact:
		return bidding.ExactBid(r.Level), nil
	case bidding.KindLevel:
		if r.Pass {
			return bidding.Pass(), nil
		}
		dir, err := domain.ParseDirection(r.Direction)
		if err != nil {
			return bidding.Bid{}, err
		}
		if r.NoTrump {
			return bidding.NoTrumpBid(r.Level, dir), nil
		}
		return bidding.LevelBid(r.Level, dir), nil
	default:
		return bidding.Bid{}, domain.Malformed(domain.CodeInvalidFormat, "bid kind %q cannot be submitted", r.Kind)
	}
}

type declarationRequest struct {
	Suit    string `json:"suit"`
	NoTrump bool   `json:"no_trump"`
}

func (r declarationRequest) toDeclaration() (trump.Declaration, error) {
	d := trump.Declaration{NoTrump: r.NoTrump}
	if r.Suit != "" {
		s := domain.Suit(strings.ToUpper(r.Suit))
		if !s.Valid() {
			return d, domain.Malformed(domain.CodeInvalidFormat, "unknown suit %q", r.Suit)
		}
		d.Suit = s
	}
	return d, nil
}

func parseCardList(codes []string) ([]domain.Card, error) {
	out := make([]domain.Card, 0, len(codes))
	for _, code := range codes {
		c, err := domain.ParseCard(code)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", code, err)
		}
		out = append(out, c)
	}
	return out, nil
}
