// Package template compiles extraction templates into literal anchors and
// placeholders.
//
// # Syntax
//
// A placeholder names a hole in the template:
//
//	x={x}, y={y}
//
// A colon turns it into an ordered list; everything after the first colon,
// up to the closing brace, is the separator:
//
//	{numbers:, }
//
// Doubled braces are literal braces:
//
//	{{literal}} {value}
//
// A placeholder named _ is a discard. Each occurrence is its own anonymous
// slot and needs no output.
//
//	I eat {_} and drink {drink}!
//
// # Compilation
//
// Compile never fails. It splits the template into Components (the literal
// text around placeholders) and Placeholders, with
// len(Components) == len(Placeholders)+1. Irregularities are recorded as
// Diagnostics:
//
//   - a repeated name keeps its first slot. A repeat followed by another
//     placeholder becomes a discard slot (RepeatOf names the original);
//     trailing repeats are dropped with the text after them, so the last
//     anchor is the literal before the first trailing repeat
//   - an opening brace without a closing one is literal text
//
// # Example
//
//	t := template.Compile("x={x}, y={y}")
//	// t.Components: ["x=", ", y=", ""]
//	// t.Names():    ["x", "y"]
package template
