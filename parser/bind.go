package parser

import (
	"errors"
	"strings"

	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/template"
)

// Binding declares one output. The separator of a list output always comes
// from the template, never from the binding.
type Binding struct {
	// Name must match a placeholder name.
	Name string

	// List requests an ordered list of Elem values.
	List bool

	// Elem converts each scalar value or list token.
	Elem convert.Converter
}

// Scalar declares a single-value output.
func Scalar(name string, elem convert.Converter) Binding {
	return Binding{Name: name, Elem: elem}
}

// List declares an ordered-list output.
func List(name string, elem convert.Converter) Binding {
	return Binding{Name: name, List: true, Elem: elem}
}

// Signature identifies the binding for cache keys.
func (b Binding) Signature() string {
	if b.List {
		return b.Name + "=" + convert.ListPrefix + b.Elem.Signature()
	}
	return b.Name + "=" + b.Elem.Signature()
}

// Step is one placeholder read, in template order.
type Step struct {
	// Slot is the output index the value is written to; -1 for discards.
	Slot int

	// Name is the placeholder name.
	Name string

	// List and Separator come from the placeholder.
	List      bool
	Separator string

	// Elem converts the slice or each list token. Zero for discards.
	Elem convert.Converter
}

// Discard reports whether the step's slice is dropped.
func (s Step) Discard() bool {
	return s.Slot < 0
}

// Plan is a template bound to outputs. It is immutable and safe for
// concurrent use.
type Plan struct {
	tmpl  *template.Template
	steps []Step
	outs  int
}

// Bind matches bindings, in declaration order, to the template's
// placeholders. All mismatches are joined into the returned error, each a
// *BindError; no Plan is returned when any exist.
func Bind(t *template.Template, bindings ...Binding) (*Plan, error) {
	steps := make([]Step, len(t.Placeholders))
	byName := make(map[string]int, len(t.Placeholders))
	for i, ph := range t.Placeholders {
		steps[i] = Step{Slot: -1, Name: ph.Name, List: ph.List, Separator: ph.Separator}
		if !ph.IsDiscard() {
			byName[ph.Name] = i
		}
	}

	var errs []error
	declared := make(map[string]bool, len(bindings))
	for slot, b := range bindings {
		if declared[b.Name] {
			errs = append(errs, &BindError{Kind: ErrDuplicateOut, Name: b.Name, Slot: slot})
			continue
		}
		declared[b.Name] = true

		i, ok := byName[b.Name]
		if !ok {
			errs = append(errs, &BindError{Kind: ErrMissingPattern, Name: b.Name, Slot: slot})
			continue
		}
		if b.Elem.IsZero() {
			errs = append(errs, &BindError{Kind: ErrNoConverter, Name: b.Name, Slot: slot})
		}
		if b.List != steps[i].List {
			errs = append(errs, &BindError{Kind: ErrKindMismatch, Name: b.Name, Slot: slot})
		}
		steps[i].Slot = slot
		steps[i].Elem = b.Elem
	}

	for i, ph := range t.Placeholders {
		if !ph.IsDiscard() && steps[i].Slot < 0 {
			errs = append(errs, &BindError{Kind: ErrMissingOut, Name: ph.Name, Slot: -1})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Plan{tmpl: t, steps: steps, outs: len(bindings)}, nil
}

// Template returns the compiled template the plan reads.
func (p *Plan) Template() *template.Template {
	return p.tmpl
}

// Steps returns a copy of the plan's reads in template order.
func (p *Plan) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Outputs returns the number of declared outputs.
func (p *Plan) Outputs() int {
	return p.outs
}

// String lists the plan's reads in template order.
func (p *Plan) String() string {
	var sb strings.Builder
	sb.WriteString(p.tmpl.Source)
	sb.WriteString(" ->")
	for _, s := range p.steps {
		sb.WriteByte(' ')
		if s.Discard() {
			sb.WriteString(template.Discard)
			continue
		}
		sb.WriteString(s.Name)
		if s.List {
			sb.WriteString("[" + s.Separator + "]")
		}
	}
	return sb.String()
}
