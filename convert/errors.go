package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors for conversion operations.
var (
	// ErrSyntax is wrapped by every failed conversion.
	ErrSyntax = errors.New("invalid syntax for type")

	// ErrUnknownType is returned when a type name or reflect type has no converter.
	ErrUnknownType = errors.New("unknown conversion type")

	// ErrInvalid is returned when registering a zero Converter.
	ErrInvalid = errors.New("invalid converter")
)

// Error describes a failed conversion of one text slice.
type Error struct {
	// Converter is the name of the converter that rejected the text.
	Converter string

	// Text is the offending slice.
	Text string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("convert %s %q: %v", e.Converter, e.Text, ErrSyntax)
	}
	return fmt.Sprintf("convert %s %q: %v", e.Converter, e.Text, e.Err)
}

// Unwrap exposes both ErrSyntax and the underlying parse error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSyntax}
	}
	return []error{ErrSyntax, e.Err}
}
