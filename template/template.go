package template

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder is a named hole in a template.
type Placeholder struct {
	// Name is the text before the first colon, unescaped.
	Name string

	// Separator splits list values. Only meaningful when List is true.
	Separator string

	// List is true when the placeholder declared a separator, even an empty one.
	List bool

	// Index is the read index: the placeholder's position among all placeholders.
	Index int

	// Repeats counts later occurrences of the same name.
	Repeats int

	// RepeatOf names the placeholder this slot repeats. A repeat between
	// two other placeholders is kept as a discard slot so the literals
	// around it stay separate anchors.
	RepeatOf string

	// Offset is the byte offset of the opening brace in the source.
	Offset int
}

// IsDiscard reports whether the placeholder's slice is read and dropped.
func (p Placeholder) IsDiscard() bool {
	return p.Name == Discard
}

// DiagnosticKind classifies an advisory compile diagnostic.
type DiagnosticKind int

const (
	// DuplicatePattern reports a placeholder name used more than once.
	DuplicatePattern DiagnosticKind = iota

	// Unterminated reports an opening brace that never closes.
	Unterminated
)

// String returns the kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DuplicatePattern:
		return "duplicate_pattern"
	case Unterminated:
		return "unterminated"
	default:
		return "unknown"
	}
}

// Diagnostic is an advisory finding. Compilation succeeds regardless.
type Diagnostic struct {
	Kind DiagnosticKind

	// Name is the placeholder name, empty for Unterminated.
	Name string

	// Offset is the byte offset in the source where the issue was found.
	Offset int
}

// Err returns the diagnostic as an error wrapping its sentinel.
func (d Diagnostic) Err() error {
	switch d.Kind {
	case DuplicatePattern:
		return fmt.Errorf("%w: %q", ErrDuplicatePattern, d.Name)
	case Unterminated:
		return fmt.Errorf("%w at offset %d", ErrUnterminated, d.Offset)
	default:
		return fmt.Errorf("unknown diagnostic at offset %d", d.Offset)
	}
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return d.Err().Error()
}

// Template is a compiled template. It is immutable after Compile and safe
// to share between goroutines.
type Template struct {
	// Source is the template text as given.
	Source string

	// Components holds the literal anchors. Components[0] precedes the first
	// placeholder; Components[i] follows placeholder i-1.
	Components []string

	// Placeholders in read order.
	Placeholders []Placeholder

	// Diagnostics found while compiling, in source order.
	Diagnostics []Diagnostic
}

// Compile parses src into literal components and placeholders.
func Compile(src string) *Template {
	t := &Template{Source: src}
	slots := make(map[string]int)

	var lit strings.Builder
	unterminated := false

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case (c == '{' || c == '}') && i+1 < len(src) && src[i+1] == c:
			lit.WriteByte(c)
			i += 2
			continue
		case c != '{' || unterminated:
			lit.WriteByte(c)
			i++
			continue
		}

		end := findClose(src, i+1)
		if end < 0 {
			t.Diagnostics = append(t.Diagnostics, Diagnostic{Kind: Unterminated, Offset: i})
			unterminated = true
			lit.WriteByte(c)
			i++
			continue
		}

		name, separator, list := splitSpec(src[i+1 : end])
		repeatOf := ""
		if name != Discard {
			if slot, ok := slots[name]; ok {
				p := &t.Placeholders[slot]
				p.Repeats++
				if p.Repeats == 1 {
					t.Diagnostics = append(t.Diagnostics, Diagnostic{Kind: DuplicatePattern, Name: name, Offset: i})
				}
				repeatOf, name = name, Discard
			} else {
				slots[name] = len(t.Placeholders)
			}
		}

		t.Components = append(t.Components, lit.String())
		lit.Reset()
		t.Placeholders = append(t.Placeholders, Placeholder{
			Name:      name,
			Separator: separator,
			List:      list,
			Index:     len(t.Placeholders),
			Offset:    i,
			RepeatOf:  repeatOf,
		})
		i = end + 1
	}
	t.Components = append(t.Components, lit.String())

	// Trailing repeats read nothing new; drop them with the text after them.
	for n := len(t.Placeholders); n > 0 && t.Placeholders[n-1].RepeatOf != ""; n-- {
		t.Placeholders = t.Placeholders[:n-1]
		t.Components = t.Components[:n]
	}

	return t
}

// Names returns the named placeholders in read order. Discards are skipped.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.Placeholders))
	for _, p := range t.Placeholders {
		if !p.IsDiscard() {
			names = append(names, p.Name)
		}
	}
	return names
}

// Lookup returns the placeholder with the given name.
func (t *Template) Lookup(name string) (Placeholder, bool) {
	if name == Discard {
		return Placeholder{}, false
	}
	for _, p := range t.Placeholders {
		if p.Name == name {
			return p, true
		}
	}
	return Placeholder{}, false
}

// Err joins every diagnostic into one error, or returns nil.
func (t *Template) Err() error {
	if len(t.Diagnostics) == 0 {
		return nil
	}
	errs := make([]error, len(t.Diagnostics))
	for i, d := range t.Diagnostics {
		errs[i] = d.Err()
	}
	return errors.Join(errs...)
}

// Render rebuilds a string from the components, substituting values by
// name. Discard placeholders render as the value stored under "_", if any,
// and repeats as the value of the name they repeat.
// List values are inserted as given; join them with the separator first.
func (t *Template) Render(values map[string]string) (string, error) {
	var sb strings.Builder
	sb.WriteString(t.Components[0])
	for i, p := range t.Placeholders {
		key := p.Name
		if p.RepeatOf != "" {
			key = p.RepeatOf
		}
		v, ok := values[key]
		if !ok && !p.IsDiscard() {
			return "", fmt.Errorf("%w: %q", ErrMissingValue, p.Name)
		}
		sb.WriteString(v)
		sb.WriteString(t.Components[i+1])
	}
	return sb.String(), nil
}

// String returns the template source.
func (t *Template) String() string {
	return t.Source
}
