package truncate

import "strings"

// truncateEnd keeps the first keep runes.
func (t *Truncator) truncateEnd(text string, keep int) string {
	runes := []rune(text)
	return string(runes[:keep]) + t.suffix
}

// truncateMiddle keeps the first and last runes around the marker.
// An odd rune goes to the start.
func (t *Truncator) truncateMiddle(text string, keep int) string {
	runes := []rune(text)
	head := (keep + 1) / 2
	tail := keep - head

	var sb strings.Builder
	sb.WriteString(string(runes[:head]))
	sb.WriteString(t.suffix)
	sb.WriteString(string(runes[len(runes)-tail:]))
	return sb.String()
}

// truncateStart keeps the last keep runes.
func (t *Truncator) truncateStart(text string, keep int) string {
	runes := []rune(text)
	return t.suffix + string(runes[len(runes)-keep:])
}

// cut keeps maxRunes runes without a marker.
func (t *Truncator) cut(text string, maxRunes int) string {
	runes := []rune(text)
	if t.strategy == FromStart {
		return string(runes[len(runes)-maxRunes:])
	}
	return string(runes[:maxRunes])
}
