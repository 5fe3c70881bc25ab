package variant

import (
	"whist/internal/domain"
	"whist/internal/scoring"
)

type options struct {
	target   int
	bowers   bool
	claims   *bool
	low      scoring.LowScoring
	handSize int
}

// Option adjusts a variant with a house rule.
type Option func(*options)

// WithTargetScore overrides the winning score. Non-positive values keep the
// variant default.
func WithTargetScore(n int) Option {
	return func(o *options) { o.target = n }
}

// WithBowers makes the jack of trump and its same-color jack the two highest
// trumps.
func WithBowers() Option {
	return func(o *options) { o.bowers = true }
}

// WithClaims turns trick claiming on or off.
func WithClaims(allow bool) Option {
	return func(o *options) { o.claims = &allow }
}

// WithLowScoring picks how Minnesota low hands are scored.
func WithLowScoring(l scoring.LowScoring) Option {
	return func(o *options) {
		if l != "" {
			o.low = l
		}
	}
}

// WithHandSize sets the cards dealt to each seat in an Oh Hell hand.
func WithHandSize(n int) Option {
	return func(o *options) { o.handSize = n }
}

// House is the serializable form of a variant's house rules. It is what game
// config files and stored hand state carry.
type House struct {
	TargetScore int                `json:"target_score,omitempty" yaml:"target_score"`
	Bowers      bool               `json:"bowers,omitempty" yaml:"bowers"`
	AllowClaims *bool              `json:"allow_claims,omitempty" yaml:"allow_claims"`
	LowScoring  scoring.LowScoring `json:"low_scoring,omitempty" yaml:"low_scoring"`
}

// Options converts the house rules into lookup options.
func (h House) Options() []Option {
	var opts []Option
	if h.TargetScore > 0 {
		opts = append(opts, WithTargetScore(h.TargetScore))
	}
	if h.Bowers {
		opts = append(opts, WithBowers())
	}
	if h.AllowClaims != nil {
		opts = append(opts, WithClaims(*h.AllowClaims))
	}
	if h.LowScoring != "" {
		opts = append(opts, WithLowScoring(h.LowScoring))
	}
	return opts
}

// Validate rejects house rules that cannot apply to any variant.
func (h House) Validate() error {
	if h.TargetScore < 0 {
		return domain.Malformed(domain.CodeOutOfRange, "target score %d is negative", h.TargetScore)
	}
	if _, err := scoring.ParseLowScoring(string(h.LowScoring)); err != nil {
		return err
	}
	return nil
}
