package parser

import (
	"errors"
	"iter"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/template"
	"github.com/randalmurphal/outparse/truncate"
)

// previewLen bounds the input preview carried by an ExtractError.
const previewLen = 40

var (
	preview = truncate.NewFromEnd()
	lead    = truncate.NewFromStart()
)

// errTolerant signals a tolerant failure without building an error value.
var errTolerant = errors.New("tolerant extraction failed")

// Cursor is the scanning state of one extraction. The position only moves
// forward.
type Cursor struct {
	input      string
	components []string
	pos        int
	next       int
}

// NewCursor starts reading input with t. The input must begin with the
// template's leading literal.
func NewCursor(t *template.Template, input string) (*Cursor, error) {
	c, err := newCursor(t, input)
	if err != nil {
		return nil, c.fail(err, "", t.Components[0], 0)
	}
	return &c, nil
}

func newCursor(t *template.Template, input string) (Cursor, error) {
	c := Cursor{input: input, components: t.Components, next: 1}
	if !strings.HasPrefix(input, t.Components[0]) {
		return c, ErrLiteralNotFound
	}
	c.pos = len(t.Components[0])
	return c, nil
}

// Next returns the slice for the next placeholder and advances past the
// literal that follows it.
func (c *Cursor) Next() (string, error) {
	start := c.pos
	literal := c.literal()
	s, err := c.read()
	if err != nil {
		return "", c.fail(err, "", literal, start)
	}
	return s, nil
}

// Offset returns the current byte offset in the input.
func (c *Cursor) Offset() int {
	return c.pos
}

// Done reports whether every anchor has been consumed.
func (c *Cursor) Done() bool {
	return c.next >= len(c.components)
}

func (c *Cursor) literal() string {
	if c.next < len(c.components) {
		return c.components[c.next]
	}
	return ""
}

// read performs one step, returning bare sentinels.
func (c *Cursor) read() (string, error) {
	if c.next >= len(c.components) || c.pos > len(c.input) {
		return "", ErrInputExhausted
	}

	literal := c.components[c.next]
	if literal == "" && c.next == len(c.components)-1 {
		s := c.input[c.pos:]
		c.pos = len(c.input)
		c.next++
		return s, nil
	}

	i := strings.Index(c.input[c.pos:], literal)
	if i < 0 {
		return "", ErrLiteralNotFound
	}
	start := c.pos
	end := start + i
	c.pos = end + len(literal)
	c.next++
	return c.input[start:end], nil
}

// fail wraps a sentinel with position context.
func (c *Cursor) fail(kind error, placeholder, literal string, offset int) *ExtractError {
	near, before := "", ""
	if offset <= len(c.input) {
		near, _ = preview.Truncate(c.input[offset:], previewLen)
		before, _ = lead.Truncate(c.input[:offset], previewLen)
	}
	return &ExtractError{
		Kind:        kind,
		Placeholder: placeholder,
		Literal:     literal,
		Offset:      offset,
		Near:        near,
		Before:      before,
	}
}

// Extract reads every placeholder from input and returns the converted
// values in output declaration order. The first failure is returned as an
// *ExtractError.
func (p *Plan) Extract(input string) ([]any, error) {
	return p.run(input, false)
}

// TryExtract is the tolerant form of Extract. On failure it returns
// (nil, false) and no partial values.
func (p *Plan) TryExtract(input string) ([]any, bool) {
	values, err := p.run(input, true)
	if err != nil {
		return nil, false
	}
	return values, true
}

func (p *Plan) run(input string, tolerant bool) ([]any, error) {
	c, err := newCursor(p.tmpl, input)
	if err != nil {
		if tolerant {
			return nil, errTolerant
		}
		return nil, c.fail(err, "", p.tmpl.Components[0], 0)
	}

	values := make([]any, p.outs)
	for _, step := range p.steps {
		start := c.pos
		literal := c.literal()
		text, err := c.read()
		if err != nil {
			if tolerant {
				return nil, errTolerant
			}
			return nil, c.fail(err, step.Name, literal, start)
		}
		if step.Discard() {
			continue
		}

		v, offset, err := step.convert(text, tolerant)
		if err != nil {
			if tolerant {
				return nil, errTolerant
			}
			e := c.fail(ErrConversion, step.Name, literal, start+offset)
			e.Err = err
			return nil, e
		}
		values[step.Slot] = v
	}
	return values, nil
}

// convert parses a scalar slice or every token of a list slice. On failure
// offset is the failing token's position within text.
func (s Step) convert(text string, tolerant bool) (v any, offset int, err error) {
	if !s.List {
		v, err = parse(s.Elem, text, tolerant)
		return v, 0, err
	}

	list := reflect.MakeSlice(reflect.SliceOf(s.Elem.Type()), 0, 4)
	for at, token := range Tokens(text, s.Separator) {
		item, err := parse(s.Elem, token, tolerant)
		if err != nil {
			return nil, at, err
		}
		list = reflect.Append(list, reflect.ValueOf(item))
	}
	return list.Interface(), 0, nil
}

func parse(c convert.Converter, text string, tolerant bool) (any, error) {
	if tolerant {
		v, ok := c.TryParse(text)
		if !ok {
			return nil, errTolerant
		}
		return v, nil
	}
	return c.Parse(text)
}

// Tokens yields each token of text split on sep with its byte offset.
// Tokens are found left to right by non-overlapping first-occurrence search;
// text without sep is a single token. An empty sep yields one token per
// UTF-8 character, and nothing for empty text.
func Tokens(text, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if sep == "" {
			for at := 0; at < len(text); {
				_, size := utf8.DecodeRuneInString(text[at:])
				if !yield(at, text[at:at+size]) {
					return
				}
				at += size
			}
			return
		}

		at := 0
		for {
			j := strings.Index(text[at:], sep)
			if j < 0 {
				yield(at, text[at:])
				return
			}
			if !yield(at, text[at:at+j]) {
				return
			}
			at += j + len(sep)
		}
	}
}
