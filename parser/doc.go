// Package parser binds outputs to template placeholders and extracts values
// from input strings.
//
// Core types:
//   - Binding: one declared output (name, scalar or list, element converter)
//   - Plan: a template bound to outputs, immutable and safe to share
//   - Cursor: the per-call scanning state over one input
//   - Cache: memoizes plans by template text and binding signature
//
// Bind matches outputs to placeholders by name. Outputs may be declared in
// any order; each plan step remembers the output slot it writes, so values
// come back in declaration order even though they are read in template
// order. Every mismatch is reported at once:
//
//	plan, err := parser.Bind(template.Compile("{three} {two} {four} {one}"),
//	    parser.Scalar("one", byteConv),
//	    parser.Scalar("two", intConv),
//	    parser.Scalar("three", stringConv),
//	    parser.Scalar("four", boolConv),
//	)
//
// Extraction walks the input left to right. The input must start with the
// template's leading literal; every further literal is located by its first
// occurrence after the cursor, and the text in between is converted. A
// trailing empty literal takes the rest of the input; text after a
// non-empty trailing literal is ignored. There is no backtracking.
//
//	values, err := plan.Extract("clear 123 true 56")  // strict
//	values, ok := plan.TryExtract("clear 123 true 56") // tolerant
//
// List placeholders split their slice on the separator, converting tokens
// left to right. An empty separator splits into single characters.
package parser
