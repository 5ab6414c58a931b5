// Package wire holds the runtime shared by generated frame codecs
package wire

import (
	"errors"
	"fmt"
)

// Decode and encode failures reported by generated code
var (
	ErrTruncatedInput         = errors.New("truncated input")
	ErrUndeclaredDiscriminant = errors.New("undeclared discriminant")
	ErrUnresolvedVariant      = errors.New("unresolved variant")
	ErrValueOutOfRange        = errors.New("value out of range")
	ErrSelectorMismatch       = errors.New("selector mismatch")
	ErrNilValue               = errors.New("nil value")
)

// Error locates a codec failure at a field. Unwrap yields one of the
// sentinels above, so callers branch with errors.Is.
type Error struct {
	Field string
	Err   error

	Need, Have int    // ErrTruncatedInput: bytes required and available
	Value      uint64 // offending raw value
	Width      int    // ErrValueOutOfRange: slot width in bits
	Want, Got  int    // ErrSelectorMismatch: variant positions
}

func (e *Error) Error() string {
	switch e.Err {
	case ErrTruncatedInput:
		return fmt.Sprintf("%s: %v: need %d bytes, have %d", e.Field, e.Err, e.Need, e.Have)
	case ErrUndeclaredDiscriminant, ErrUnresolvedVariant:
		return fmt.Sprintf("%s: %v %d", e.Field, e.Err, e.Value)
	case ErrValueOutOfRange:
		return fmt.Sprintf("%s: %v: %d does not fit in %d bits", e.Field, e.Err, e.Value, e.Width)
	case ErrSelectorMismatch:
		return fmt.Sprintf("%s: %v: selector picks variant %d, value holds variant %d", e.Field, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Truncated reports that field needed need bytes but only have remained
func Truncated(field string, need, have int) error {
	if have < 0 {
		have = 0
	}
	return &Error{Field: field, Err: ErrTruncatedInput, Need: need, Have: have}
}

// Undeclared reports a raw slot value outside its enumerated domain
func Undeclared(field string, value uint64) error {
	return &Error{Field: field, Err: ErrUndeclaredDiscriminant, Value: value}
}

// Unresolved reports a discriminant that selects no variant
func Unresolved(field string, value uint64) error {
	return &Error{Field: field, Err: ErrUnresolvedVariant, Value: value}
}

// OutOfRange reports a numeric slot value wider than its slot
func OutOfRange(field string, value uint64, width int) error {
	return &Error{Field: field, Err: ErrValueOutOfRange, Value: value, Width: width}
}

// Mismatch reports a held variant that disagrees with its selector
func Mismatch(field string, want, got int) error {
	return &Error{Field: field, Err: ErrSelectorMismatch, Want: want, Got: got}
}

// Nil reports an encode through a nil structure pointer
func Nil(field string) error {
	return &Error{Field: field, Err: ErrNilValue}
}
