package model

import "errors"

// Sentinel kinds for contract validation errors. These allow errors.Is
// from callers.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidSpan       = errors.New("invalid phase span")
	ErrContactOutOfRange = errors.New("contact outside swing")
	ErrInvalidTipKind    = errors.New("invalid coaching tip kind")
	ErrInvalidHand       = errors.New("invalid hand preference")
)
