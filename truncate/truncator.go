package truncate

import "unicode/utf8"

// Strategy defines how text is truncated.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle

	// FromStart removes content from the start.
	FromStart
)

// DefaultSuffix marks the cut for every strategy.
const DefaultSuffix = "..."

// Truncator shortens text to a rune limit.
type Truncator struct {
	strategy Strategy
	suffix   string
}

// New creates a truncator with the given strategy.
func New(strategy Strategy) *Truncator {
	return &Truncator{
		strategy: strategy,
		suffix:   DefaultSuffix,
	}
}

// NewFromEnd creates a truncator that removes content from the end.
func NewFromEnd() *Truncator {
	return New(FromEnd)
}

// NewFromMiddle creates a truncator that removes content from the middle.
func NewFromMiddle() *Truncator {
	return New(FromMiddle)
}

// NewFromStart creates a truncator that removes content from the start.
func NewFromStart() *Truncator {
	return New(FromStart)
}

// Truncate reduces text to at most maxRunes runes, marker included.
// Returns the result and whether anything was cut.
func (t *Truncator) Truncate(text string, maxRunes int) (string, bool) {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text, false
	}

	// Too short for the marker: cut hard.
	keep := maxRunes - utf8.RuneCountInString(t.suffix)
	if keep < 0 {
		return t.cut(text, maxRunes), true
	}

	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, keep), true
	case FromStart:
		return t.truncateStart(text, keep), true
	default:
		return t.truncateEnd(text, keep), true
	}
}
