package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/parser"
	"github.com/randalmurphal/outparse/template"
)

// Record is the result of extracting one input.
type Record struct {
	// Template is the name of the entry that produced the record.
	Template string

	// Fields are the output names in declaration order.
	Fields []string

	// Values holds the converted value of each field.
	Values []any
}

// Map returns the record as a field name to value map.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.Fields))
	for i, name := range r.Fields {
		m[name] = r.Values[i]
	}
	return m
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for i, f := range r.Fields {
		if f == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

type compiled struct {
	entry  Entry
	plan   *parser.Plan
	fields []string
}

// Set is a compiled catalog. It is immutable and safe for concurrent use.
type Set struct {
	entries []compiled
	byName  map[string]int
}

// Compile binds every entry with converters from reg. Errors from all
// entries are joined; no Set is returned when any exist. Template
// diagnostics are logged at Warn and do not fail compilation.
func (c *Catalog) Compile(reg *convert.Registry) (*Set, error) {
	if reg == nil {
		reg = convert.Default
	}

	s := &Set{byName: make(map[string]int, len(c.Templates))}
	var errs []error
	for _, e := range c.Templates {
		ce, err := compileEntry(reg, e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.byName[e.Name] = len(s.entries)
		s.entries = append(s.entries, ce)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func compileEntry(reg *convert.Registry, e Entry) (compiled, error) {
	t := template.Compile(e.Template)
	for _, d := range t.Diagnostics {
		slog.Warn("template diagnostic",
			slog.String("template", e.Name),
			slog.String("kind", d.Kind.String()),
			slog.String("placeholder", d.Name),
			slog.Int("offset", d.Offset))
	}

	fields := completeFields(t, e.Fields)

	var errs []error
	bindings := make([]parser.Binding, 0, len(fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		elem, list, err := reg.Resolve(f.TypeName())
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: template %q field %q: %w", ErrUnknownType, e.Name, f.Name, err))
			continue
		}
		bindings = append(bindings, parser.Binding{Name: f.Name, List: list, Elem: elem})
		names = append(names, f.Name)
	}
	if len(errs) > 0 {
		return compiled{}, errors.Join(errs...)
	}

	plan, err := parser.Bind(t, bindings...)
	if err != nil {
		return compiled{}, fmt.Errorf("template %q: %w", e.Name, err)
	}
	return compiled{entry: e, plan: plan, fields: names}, nil
}

// completeFields appends a string, or list of strings, field for every
// placeholder that declared does not name.
func completeFields(t *template.Template, declared []Field) []Field {
	fields := make([]Field, len(declared), len(declared)+len(t.Placeholders))
	copy(fields, declared)

	named := make(map[string]bool, len(declared))
	for _, f := range declared {
		named[f.Name] = true
	}
	for _, ph := range t.Placeholders {
		if ph.IsDiscard() || named[ph.Name] {
			continue
		}
		typ := DefaultType
		if ph.List {
			typ = convert.ListPrefix + DefaultType
		}
		fields = append(fields, Field{Name: ph.Name, Type: typ})
	}
	return fields
}

// LoadSet reads, validates and compiles the catalog at path.
func LoadSet(path string, reg *convert.Registry) (*Set, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	s, err := c.Compile(reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Len returns the number of templates in the set.
func (s *Set) Len() int {
	return len(s.entries)
}

// Names returns the template names in catalog order.
func (s *Set) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.entry.Name
	}
	return names
}

// Entry returns the catalog entry named name.
func (s *Set) Entry(name string) (Entry, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i].entry, true
}

// Plan returns the bound plan of the named template.
func (s *Set) Plan(name string) (*parser.Plan, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.entries[i].plan, true
}

// Extract runs the named template strictly against input.
func (s *Set) Extract(name, input string) (Record, error) {
	i, ok := s.byName[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	ce := s.entries[i]
	values, err := ce.plan.Extract(input)
	if err != nil {
		return Record{}, fmt.Errorf("template %q: %w", name, err)
	}
	return ce.record(values), nil
}

// TryExtract runs the named template tolerantly against input. An unknown
// name reports false.
func (s *Set) TryExtract(name, input string) (Record, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Record{}, false
	}
	ce := s.entries[i]
	values, ok := ce.plan.TryExtract(input)
	if !ok {
		return Record{}, false
	}
	return ce.record(values), true
}

// Match tries each template in catalog order and returns the first that
// extracts input.
func (s *Set) Match(input string) (Record, error) {
	for _, ce := range s.entries {
		if values, ok := ce.plan.TryExtract(input); ok {
			return ce.record(values), nil
		}
	}
	return Record{}, ErrNoMatch
}

func (ce compiled) record(values []any) Record {
	return Record{Template: ce.entry.Name, Fields: ce.fields, Values: values}
}
