// Package outparse extracts typed values from text using templates with
// named placeholders, the inverse of string formatting.
//
// A template such as "x={x}, y={y}" is literal text with placeholders. Given
// "x=512, y=123" it yields x=512 and y=123, each converted to the Go type of
// its output. A placeholder written {name:sep} captures a list split on sep.
//
// The module is split into packages usable on their own:
//
//   - template: compiles template text into literals and placeholders
//   - convert: converters from text to Go values, and their registry
//   - parser: binds outputs to a template and runs extraction
//   - catalog: named templates loaded from YAML, TOML or JSON files
//   - truncate: rune-aware truncation used for error previews
//
// # Quick Start
//
// Variables:
//
//	var x, y int
//	err := outparse.Parse("x=512, y=123", "x={x}, y={y}",
//		outparse.Var("x", &x), outparse.Var("y", &y))
//
// Lists:
//
//	var numbers []int
//	ok := outparse.TryParse("1,2,3", "{numbers:,}", outparse.Slice("numbers", &numbers))
//
// Structs:
//
//	type Point struct {
//		X int `outparse:"x"`
//		Y int `outparse:"y"`
//	}
//	s, _ := outparse.Compile[Point]("x={x}, y={y}")
//	p, err := s.Scan("x=512, y=123")
//
// # Matching
//
// Extraction is a single left-to-right pass. Each placeholder's value ends
// at the first occurrence of the literal that follows it; there is no
// backtracking. The input must begin with the template's leading literal.
// Text after a non-empty trailing literal is ignored, and a placeholder at
// the very end takes the rest of the input.
//
// Parse reports the first failure as an error. TryParse reports only
// success and is meant for probing inputs that often do not match. Neither
// writes any output unless every value was read and converted.
package outparse
