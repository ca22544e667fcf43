package truncate

// ToLength truncates text from the end to at most maxLen runes.
func ToLength(text string, maxLen int) string {
	result, _ := NewFromEnd().Truncate(text, maxLen)
	return result
}

// ToMiddle truncates text from the middle to at most maxLen runes.
func ToMiddle(text string, maxLen int) string {
	result, _ := NewFromMiddle().Truncate(text, maxLen)
	return result
}
