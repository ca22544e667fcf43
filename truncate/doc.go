// Package truncate shortens text for previews in error messages and logs.
//
// Limits are measured in runes, so multi-byte characters are never split.
//
// # Strategies
//
//   - FromEnd: keep the start, drop the end (default)
//   - FromMiddle: keep both ends, drop the middle
//   - FromStart: keep the end, drop the start
//
// # Usage
//
//	tr := truncate.NewFromEnd()
//	preview, cut := tr.Truncate(remainingInput, 40)
//
//	short := truncate.ToLength(line, 80)
package truncate
