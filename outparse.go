package outparse

import (
	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/parser"
)

// Out is an output destination for Parse and TryParse.
// Build one with Var or Slice.
type Out interface {
	binding() parser.Binding
	set(v any)
}

type varOut[T any] struct {
	name string
	dst  *T
}

func (o varOut[T]) binding() parser.Binding {
	c, _ := convert.For[T]()
	return parser.Scalar(o.name, c)
}

func (o varOut[T]) set(v any) {
	*o.dst = v.(T)
}

// Var declares a scalar output written to dst. The converter is chosen by
// convert.For[T]; a type with no converter fails with
// parser.ErrNoConverter.
func Var[T any](name string, dst *T) Out {
	return varOut[T]{name: name, dst: dst}
}

type sliceOut[T any] struct {
	name string
	dst  *[]T
}

func (o sliceOut[T]) binding() parser.Binding {
	c, _ := convert.For[T]()
	return parser.List(o.name, c)
}

func (o sliceOut[T]) set(v any) {
	*o.dst = v.([]T)
}

// Slice declares a list output written to dst. The placeholder must carry
// a separator, as in {name:,}.
func Slice[T any](name string, dst *[]T) Out {
	return sliceOut[T]{name: name, dst: dst}
}

func bindings(outs []Out) []parser.Binding {
	b := make([]parser.Binding, len(outs))
	for i, o := range outs {
		b[i] = o.binding()
	}
	return b
}

// Parse extracts input with tmpl into outs. Plans are cached in
// parser.DefaultCache, so repeated calls with the same template and output
// types compile once. On error no output is written.
func Parse(input, tmpl string, outs ...Out) error {
	plan, err := parser.DefaultCache.Plan(tmpl, bindings(outs)...)
	if err != nil {
		return err
	}
	values, err := plan.Extract(input)
	if err != nil {
		return err
	}
	for i, o := range outs {
		o.set(values[i])
	}
	return nil
}

// TryParse is the tolerant form of Parse. It reports false, writing
// nothing, when the template does not bind or input does not match.
func TryParse(input, tmpl string, outs ...Out) bool {
	plan, err := parser.DefaultCache.Plan(tmpl, bindings(outs)...)
	if err != nil {
		return false
	}
	values, ok := plan.TryExtract(input)
	if !ok {
		return false
	}
	for i, o := range outs {
		o.set(values[i])
	}
	return true
}
