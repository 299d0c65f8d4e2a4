package types

import (
	"errors"
	"fmt"
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindValidation ErrKind = iota + 1 // malformed input (bad tokens, wrong byte count, non-contiguous selection)
	ErrKindRange                         // offset/length arithmetic outside buffer bounds
	ErrKindIO                            // load/save failure surfaced from the host
)

// String returns a short name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindValidation:
		return "validation"
	case ErrKindRange:
		return "range"
	case ErrKindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. This lets the
// sentinels below match any error of their category via errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil {
		return false
	}
	return t.Kind == e.Kind && t.Msg == kindSentinelMsg(t.Kind)
}

// Sentinels for errors.Is checks.
var (
	// ErrValidation matches any validation error.
	ErrValidation = &Error{Kind: ErrKindValidation, Msg: kindSentinelMsg(ErrKindValidation)}
	// ErrRange matches any range error.
	ErrRange = &Error{Kind: ErrKindRange, Msg: kindSentinelMsg(ErrKindRange)}
	// ErrIO matches any IO error.
	ErrIO = &Error{Kind: ErrKindIO, Msg: kindSentinelMsg(ErrKindIO)}
)

func kindSentinelMsg(k ErrKind) string {
	return k.String() + " error"
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrKindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Rangef builds a range error.
func Rangef(format string, args ...any) error {
	return &Error{Kind: ErrKindRange, Msg: fmt.Sprintf(format, args...)}
}

// WrapIO wraps a host load/save failure. A nil err yields nil.
func WrapIO(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrKindIO, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == ErrKindValidation }

// IsRange reports whether err is a range error.
func IsRange(err error) bool { return KindOf(err) == ErrKindRange }

// IsIO reports whether err is an IO error.
func IsIO(err error) bool { return KindOf(err) == ErrKindIO }
