// Package convert turns text slices into typed values.
//
// A Converter is a small strategy object bound to one Go type. It comes in
// two forms:
//
//   - Direct: parses the substring in place with a func(string) (T, error).
//     Go substrings share the input's backing array, so no copy is made.
//   - Text: adapts encoding.TextUnmarshaler, which needs the slice copied
//     into a fresh []byte before parsing.
//
// Every Converter exposes both a strict entry point (Parse, which returns an
// error) and a tolerant one (TryParse, which only reports success).
//
// # Registry
//
// A Registry maps names ("int", "duration") and reflect types to converters.
// ForType resolves a type once, in this order:
//
//  1. a converter registered for the exact type (Direct preferred over Text)
//  2. encoding.TextUnmarshaler on the pointer type, so a named type's own
//     validation runs even when its kind is basic
//  3. a Direct built-in chosen by reflect kind, so named types such as
//     `type Level int` work without registration
//
// The package-level Default registry carries the built-ins:
//
//	string, bool, int, int8, int16, int32 (rune), int64,
//	uint, uint8 (byte), uint16, uint32, uint64, float32, float64 (float),
//	duration (time.Duration), time (time.Time, RFC 3339), addr (netip.Addr)
//
// # Example
//
//	c, _ := convert.For[int]()
//	v, err := c.Parse("512") // v.(int) == 512
//
//	elem, list, _ := convert.Default.Resolve("[]duration")
//	// list == true, elem.Name() == "duration"
package convert
