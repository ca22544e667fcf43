package template

import "strings"

// ListMarker separates a placeholder name from its list separator.
const ListMarker = ":"

// Discard is the placeholder name whose slices are read and dropped.
const Discard = "_"

// findClose returns the index of the next unescaped '}' at or after from,
// or -1. A doubled "}}" is skipped as a pair.
func findClose(src string, from int) int {
	for i := from; i < len(src); i++ {
		if src[i] != '}' {
			continue
		}
		if i+1 < len(src) && src[i+1] == '}' {
			i++
			continue
		}
		return i
	}
	return -1
}

var unescaper = strings.NewReplacer("{{", "{", "}}", "}")

// unescape collapses doubled braces.
func unescape(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	return unescaper.Replace(s)
}

// splitSpec splits placeholder text into name and separator at the first
// colon. list is true when a colon is present, even if the separator is empty.
func splitSpec(spec string) (name, separator string, list bool) {
	name, separator, list = strings.Cut(spec, ListMarker)
	return unescape(name), unescape(separator), list
}
