package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for the session package.
// Use errors.Is to check: errors.Is(err, session.ErrEmptyInput)
var (
	ErrNoActiveSession = errors.New("session: no active session")
	ErrEmptyInput      = errors.New("session: please enter an answer")
	ErrAlreadyResolved = errors.New("session: question already answered")
	ErrStaleToken      = errors.New("session: advance token no longer current")
	ErrValidation      = errors.New("session: invalid quiz settings")
)

// Reason identifies why session settings were rejected.
type Reason string

const (
	ReasonNonNumeric        Reason = "non-numeric"
	ReasonStartBelowMinimum Reason = "start-below-minimum"
	ReasonEndNotAfterStart  Reason = "end-not-after-start"
	ReasonUnknownFunction   Reason = "unknown-function"
	ReasonRangeTooLarge     Reason = "range-too-large"
)

// RangeHint is the combined range rule shown under the range inputs.
const RangeHint = "Please ensure Starting Value ≥ 1 and Ending Value > Starting Value!"

// ValidationError reports a rejected function or range. No session is
// created when it is returned.
type ValidationError struct {
	Reason Reason
	Field  string
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Message())
}

// Message returns a user-facing description of the problem.
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ReasonNonNumeric:
		return fmt.Sprintf("%s value %q is not a whole number", e.Field, e.Value)
	case ReasonStartBelowMinimum:
		return fmt.Sprintf("starting value must be at least %d (got %s)", MinStart, e.Value)
	case ReasonEndNotAfterStart:
		return fmt.Sprintf("ending value must be greater than the starting value (got %s)", e.Value)
	case ReasonRangeTooLarge:
		return fmt.Sprintf("a quiz can hold at most %d values (ending value %s is too far from the start)", MaxRangeLen, e.Value)
	case ReasonUnknownFunction:
		return fmt.Sprintf("unknown function %q", e.Value)
	default:
		return RangeHint
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
