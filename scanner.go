package outparse

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/parser"
	"github.com/randalmurphal/outparse/template"
)

// TagName is the struct tag naming the placeholder a field reads.
const TagName = "outparse"

// ErrNotStruct is returned by Compile when T is not a struct type.
var ErrNotStruct = errors.New("scan target is not a struct")

// Scanner extracts inputs into values of struct type T. It is immutable and
// safe for concurrent use.
//
// Fields bind to placeholders by name. If any field carries an outparse tag,
// only tagged fields bind and the tag is the placeholder name; otherwise
// every exported field binds under its Go name. The tag "-" skips a field.
// A slice field binds as a list when its placeholder carries a separator.
type Scanner[T any] struct {
	plan   *parser.Plan
	fields []int
}

type scanField struct {
	index int
	name  string
	typ   reflect.Type
}

// Compile compiles tmpl and binds it to the fields of T.
func Compile[T any](tmpl string) (*Scanner[T], error) {
	return CompileWith[T](convert.Default, tmpl)
}

// CompileWith is Compile with converters resolved from reg.
func CompileWith[T any](reg *convert.Registry, tmpl string) (*Scanner[T], error) {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, st)
	}

	t := template.Compile(tmpl)
	fields := structFields(st)

	bindings := make([]parser.Binding, len(fields))
	index := make([]int, len(fields))
	for i, f := range fields {
		index[i] = f.index

		ph, found := t.Lookup(f.name)
		if found && ph.List && f.typ.Kind() == reflect.Slice {
			elem, _ := reg.ForType(f.typ.Elem())
			bindings[i] = parser.List(f.name, elem)
			continue
		}
		c, _ := reg.ForType(f.typ)
		bindings[i] = parser.Scalar(f.name, c)
	}

	plan, err := parser.Bind(t, bindings...)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", st, err)
	}
	return &Scanner[T]{plan: plan, fields: index}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile[T any](tmpl string) *Scanner[T] {
	s, err := Compile[T](tmpl)
	if err != nil {
		panic(err)
	}
	return s
}

func structFields(st reflect.Type) []scanField {
	var tagged, untagged []scanField
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup(TagName)
		name, _, _ := strings.Cut(tag, ",")
		switch {
		case name == "-":
			continue
		case ok && name != "":
			tagged = append(tagged, scanField{index: i, name: name, typ: sf.Type})
		default:
			untagged = append(untagged, scanField{index: i, name: sf.Name, typ: sf.Type})
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	return untagged
}

// Scan extracts input into a new T.
func (s *Scanner[T]) Scan(input string) (T, error) {
	var out T
	values, err := s.plan.Extract(input)
	if err != nil {
		return out, err
	}
	s.fill(&out, values)
	return out, nil
}

// TryScan is the tolerant form of Scan.
func (s *Scanner[T]) TryScan(input string) (T, bool) {
	var out T
	values, ok := s.plan.TryExtract(input)
	if !ok {
		return out, false
	}
	s.fill(&out, values)
	return out, true
}

// Plan returns the bound plan the scanner runs.
func (s *Scanner[T]) Plan() *parser.Plan {
	return s.plan
}

func (s *Scanner[T]) fill(out *T, values []any) {
	v := reflect.ValueOf(out).Elem()
	for i, field := range s.fields {
		v.Field(field).Set(reflect.ValueOf(values[i]))
	}
}
