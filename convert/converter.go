package convert

import (
	"encoding"
	"reflect"
)

// Form identifies how a Converter reaches the text it parses.
type Form int

const (
	// Direct converters parse the input substring without copying it.
	Direct Form = iota

	// Text converters copy the slice into a []byte for encoding.TextUnmarshaler.
	Text
)

// String returns the form name.
func (f Form) String() string {
	switch f {
	case Direct:
		return "direct"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Converter parses text into values of a single Go type.
// The zero Converter is invalid; build one with Func or TextOf, or obtain
// one from a Registry.
type Converter struct {
	name  string
	typ   reflect.Type
	form  Form
	parse func(string) (any, error)
}

// Func builds a Direct converter from a parse function.
func Func[T any](name string, fn func(string) (T, error)) Converter {
	return Converter{
		name: name,
		typ:  reflect.TypeFor[T](),
		form: Direct,
		parse: func(s string) (any, error) {
			v, err := fn(s)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// textPointer is satisfied by *T when *T implements encoding.TextUnmarshaler.
type textPointer[T any] interface {
	*T
	encoding.TextUnmarshaler
}

// TextOf builds a Text converter for a type whose pointer implements
// encoding.TextUnmarshaler.
//
//	c := convert.TextOf[time.Time]("time")
func TextOf[T any, PT textPointer[T]](name string) Converter {
	return Converter{
		name: name,
		typ:  reflect.TypeFor[T](),
		form: Text,
		parse: func(s string) (any, error) {
			var v T
			if err := PT(&v).UnmarshalText([]byte(s)); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// textFor builds a Text converter for t through reflection.
func textFor(t reflect.Type) (Converter, bool) {
	if t == nil || !reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return Converter{}, false
	}
	return Converter{
		name: t.String(),
		typ:  t,
		form: Text,
		parse: func(s string) (any, error) {
			p := reflect.New(t)
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return nil, err
			}
			return p.Elem().Interface(), nil
		},
	}, true
}

// Name returns the converter's registered name.
func (c Converter) Name() string { return c.name }

// Type returns the Go type produced by Parse.
func (c Converter) Type() reflect.Type { return c.typ }

// Form reports whether the converter parses in place or through a copy.
func (c Converter) Form() Form { return c.form }

// IsZero reports whether c was never initialized.
func (c Converter) IsZero() bool { return c.parse == nil }

// Parse converts s, returning an *Error that wraps ErrSyntax on failure.
func (c Converter) Parse(s string) (any, error) {
	if c.parse == nil {
		return nil, ErrInvalid
	}
	v, err := c.parse(s)
	if err != nil {
		return nil, &Error{Converter: c.name, Text: s, Err: err}
	}
	return v, nil
}

// TryParse converts s and reports whether it succeeded. It never returns
// an error; the value is nil when ok is false.
func (c Converter) TryParse(s string) (value any, ok bool) {
	if c.parse == nil {
		return nil, false
	}
	v, err := c.parse(s)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Signature identifies the converter for cache keys: name, type and form.
// Named types are qualified by their full package path.
func (c Converter) Signature() string {
	if c.typ == nil {
		return c.name + ":<nil>"
	}
	typ := c.typ.String()
	if pkg := c.typ.PkgPath(); pkg != "" && c.typ.Name() != "" {
		typ = pkg + "." + c.typ.Name()
	}
	return c.name + ":" + typ + ":" + c.form.String()
}
