// Package errs defines the error taxonomy shared by the tool packages.
//
// Every failure a tool can report falls into one of a few kinds:
//   - InvalidInput: malformed color strings, non-numeric values, unknown
//     units or categories, out-of-range options
//   - RatesUnavailable: a currency conversion was requested without a
//     usable exchange-rate table
//   - EncodeFailure: the raster encoder rejected the operation
//   - Unavailable: an optional backend (OCR engine, history store) is not
//     present in this build or environment
//
// Kinds are matched with errors.Is against the exported sentinels:
//
//	if errors.Is(err, errs.ErrRatesUnavailable) {
//	    // ask the user to retry once rates are loaded
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to react differently
// (for example, mapping to distinct JSON-RPC error codes).
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindRatesUnavailable Kind = "rates_unavailable"
	KindEncodeFailure    Kind = "encode_failure"
	KindUnavailable      Kind = "unavailable"
)

// Sentinels for errors.Is matching. An *Error matches the sentinel of its Kind.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrRatesUnavailable = errors.New("exchange rates unavailable")
	ErrEncodeFailure    = errors.New("encode failed")
	ErrUnavailable      = errors.New("unavailable")
)

// Error carries a Kind, the operation that failed, and an optional cause.
type Error struct {
	Kind Kind
	Op   string // e.g. "units.Convert"
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrRatesUnavailable:
		return e.Kind == KindRatesUnavailable
	case ErrEncodeFailure:
		return e.Kind == KindEncodeFailure
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

// Invalid builds an InvalidInput error with a formatted message.
func Invalid(op, format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidInput, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// RatesUnavailable builds a RatesUnavailable error.
func RatesUnavailable(op, msg string) error {
	return &Error{Kind: KindRatesUnavailable, Op: op, Msg: msg}
}

// EncodeFailure wraps an encoder error.
func EncodeFailure(op string, err error) error {
	return &Error{Kind: KindEncodeFailure, Op: op, Msg: "encode failed", Err: err}
}

// Unavailable reports a missing optional backend.
func Unavailable(op, msg string) error {
	return &Error{Kind: KindUnavailable, Op: op, Msg: msg}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
