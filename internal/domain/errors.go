package domain

import "fmt"

// ErrorKind is the taxonomy tag of a rule error.
type ErrorKind string

const (
	KindInvalidBid         ErrorKind = "invalid_bid"
	KindInvalidPlay        ErrorKind = "invalid_play"
	KindMalformedData      ErrorKind = "malformed_data"
	KindUnsupportedVariant ErrorKind = "unsupported_variant"
)

// Codes refine a kind. They are stable and safe to switch on.
const (
	CodeOutOfTurn         = "out_of_turn"
	CodeNotInHand         = "not_in_hand"
	CodeMustFollowSuit    = "must_follow_suit"
	CodeTrickComplete     = "trick_complete"
	CodeTrickIncomplete   = "trick_incomplete"
	CodeNothingToClaim    = "nothing_to_claim"
	CodeClaimRejected     = "claim_rejected"
	CodeWrongShape        = "wrong_shape"
	CodeAlreadyBid        = "already_bid"
	CodeAlreadyPassed     = "already_passed"
	CodeMustExceed        = "must_exceed"
	CodeOutOfBounds       = "out_of_bounds"
	CodeDealerRestriction = "dealer_restriction"
	CodeAuctionClosed     = "auction_closed"
	CodeNotEligible       = "not_eligible"
	CodeDuplicateCard     = "duplicate_card"
	CodeInvalidFormat     = "invalid_format"
	CodeOutOfRange        = "out_of_range"
	CodeCardCount         = "card_count"
)

// RuleError is a recoverable rejection of an external actor's input.
// Reason is meant to be shown to that actor verbatim.
type RuleError struct {
	Kind   ErrorKind
	Code   string
	Reason string
}

func (e *RuleError) Error() string {
	if e.Reason == "" {
		if e.Code == "" {
			return string(e.Kind)
		}
		return string(e.Kind) + ": " + e.Code
	}
	return string(e.Kind) + ": " + e.Reason
}

// Is matches sentinels by kind, and by code when the sentinel carries one.
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

var (
	ErrInvalidBid         = &RuleError{Kind: KindInvalidBid}
	ErrInvalidPlay        = &RuleError{Kind: KindInvalidPlay}
	ErrMustFollowSuit     = &RuleError{Kind: KindInvalidPlay, Code: CodeMustFollowSuit}
	ErrMalformedData      = &RuleError{Kind: KindMalformedData}
	ErrInvalidFormat      = &RuleError{Kind: KindMalformedData, Code: CodeInvalidFormat}
	ErrOutOfRange         = &RuleError{Kind: KindMalformedData, Code: CodeOutOfRange}
	ErrUnsupportedVariant = &RuleError{Kind: KindUnsupportedVariant}
)

// InvalidBid builds an InvalidBid rejection.
func InvalidBid(code, format string, args ...any) *RuleError {
	return &RuleError{Kind: KindInvalidBid, Code: code, Reason: fmt.Sprintf(format, args...)}
}

// InvalidPlay builds an InvalidPlay rejection.
func InvalidPlay(code, format string, args ...any) *RuleError {
	return &RuleError{Kind: KindInvalidPlay, Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Malformed builds a MalformedData error.
func Malformed(code, format string, args ...any) *RuleError {
	return &RuleError{Kind: KindMalformedData, Code: code, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedVariant reports a variant token with no registered rules.
func UnsupportedVariant(token string) *RuleError {
	return &RuleError{
		Kind:   KindUnsupportedVariant,
		Reason: fmt.Sprintf("no rules registered for variant %q", token),
	}
}
