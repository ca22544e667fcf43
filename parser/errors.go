package parser

import (
	"errors"
	"fmt"
)

// Binding errors. Bind collects all of them before returning.
var (
	// ErrMissingPattern is returned when an output names no placeholder.
	ErrMissingPattern = errors.New("output has no matching placeholder")

	// ErrMissingOut is returned when a placeholder has no output.
	ErrMissingOut = errors.New("placeholder has no matching output")

	// ErrDuplicateOut is returned when two outputs share a name.
	ErrDuplicateOut = errors.New("output declared twice")

	// ErrKindMismatch is returned when a list output meets a scalar
	// placeholder or the reverse.
	ErrKindMismatch = errors.New("output and placeholder disagree on list")

	// ErrNoConverter is returned when an output carries a zero converter.
	ErrNoConverter = errors.New("output has no converter")
)

// Extraction errors, returned wrapped in *ExtractError by strict extraction.
var (
	// ErrLiteralNotFound is returned when a template literal is absent from
	// the remaining input.
	ErrLiteralNotFound = errors.New("template literal not found in input")

	// ErrInputExhausted is returned when a read has no input or anchor left.
	ErrInputExhausted = errors.New("input exhausted")

	// ErrConversion is returned when a slice cannot be converted.
	ErrConversion = errors.New("conversion failed")
)

// BindError describes one mismatch between outputs and placeholders.
type BindError struct {
	// Kind is one of the binding sentinels.
	Kind error

	// Name is the output or placeholder name.
	Name string

	// Slot is the output's declaration index, or -1 for ErrMissingOut.
	Slot int
}

func (e *BindError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("%v: %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("%v: %q (output %d)", e.Kind, e.Name, e.Slot)
}

func (e *BindError) Unwrap() error {
	return e.Kind
}

// ExtractError describes a strict extraction failure.
type ExtractError struct {
	// Kind is ErrLiteralNotFound, ErrInputExhausted or ErrConversion.
	Kind error

	// Placeholder is the name being read, empty for the leading literal.
	Placeholder string

	// Literal is the anchor that was searched for.
	Literal string

	// Offset is the byte offset in the input where the failure was found.
	Offset int

	// Near is a short preview of the input at Offset.
	Near string

	// Before is a short preview of the input ending at Offset.
	Before string

	// Err is the converter's error for ErrConversion.
	Err error
}

func (e *ExtractError) Error() string {
	switch e.Kind {
	case ErrLiteralNotFound:
		where := fmt.Sprintf("near %q", e.Near)
		if e.Before != "" {
			where = fmt.Sprintf("after %q, %s", e.Before, where)
		}
		return fmt.Sprintf("%v: %q at or after offset %d (%s); check that the template matches and no earlier value contains it",
			e.Kind, e.Literal, e.Offset, where)
	case ErrConversion:
		return fmt.Sprintf("%v for %q at offset %d: %v", e.Kind, e.Placeholder, e.Offset, e.Err)
	default:
		return fmt.Sprintf("%v reading %q at offset %d", e.Kind, e.Placeholder, e.Offset)
	}
}

// Unwrap exposes the kind sentinel and, for conversions, the converter error.
func (e *ExtractError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
