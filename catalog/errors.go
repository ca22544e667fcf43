package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrFormat is returned for unsupported file types and undecodable content.
	ErrFormat = errors.New("invalid catalog format")

	// ErrInvalid is returned when an entry is incomplete or names repeat.
	ErrInvalid = errors.New("invalid catalog entry")

	// ErrUnknownType is returned when a field names a type with no converter.
	ErrUnknownType = errors.New("unknown field type")

	// ErrUnknownTemplate is returned when a template name is not in the set.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrNoMatch is returned by Match when no template matches the input.
	ErrNoMatch = errors.New("no template matches input")
)
