package template

import "errors"

// Sentinel errors for template diagnostics and rendering.
var (
	// ErrDuplicatePattern marks a placeholder name that repeats in a template.
	ErrDuplicatePattern = errors.New("placeholder name repeats")

	// ErrUnterminated marks an opening brace with no closing brace.
	ErrUnterminated = errors.New("unterminated placeholder")

	// ErrMissingValue is returned by Render when a placeholder has no value.
	ErrMissingValue = errors.New("no value for placeholder")
)
