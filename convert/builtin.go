package convert

import (
	"net/netip"
	"reflect"
	"strconv"
	"time"
)

// builtins returns the converters every new Registry starts with.
func builtins() []Converter {
	return []Converter{
		Func("string", parseString),
		Func("bool", strconv.ParseBool),
		Func("int", signed[int](strconv.IntSize)),
		Func("int8", signed[int8](8)),
		Func("int16", signed[int16](16)),
		Func("int32", signed[int32](32)),
		Func("int64", signed[int64](64)),
		Func("uint", unsigned[uint](strconv.IntSize)),
		Func("uint8", unsigned[uint8](8)),
		Func("uint16", unsigned[uint16](16)),
		Func("uint32", unsigned[uint32](32)),
		Func("uint64", unsigned[uint64](64)),
		Func("float32", parseFloat32),
		Func("float64", parseFloat64),
		Func("duration", time.ParseDuration),
		TextOf[time.Time]("time"),
		TextOf[netip.Addr]("addr"),
	}
}

// builtinAliases maps alternate type names to built-in names.
var builtinAliases = map[string]string{
	"byte":  "uint8",
	"rune":  "int32",
	"float": "float64",
}

func parseString(s string) (string, error) {
	return s, nil
}

func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		return T(n), err
	}
}

func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		return T(n), err
	}
}

func parseFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// kindFor builds a Direct converter for named types with a basic kind,
// e.g. `type Port uint16`.
func kindFor(t reflect.Type) (Converter, bool) {
	if t == nil {
		return Converter{}, false
	}

	var set func(v reflect.Value, s string) error
	switch t.Kind() {
	case reflect.String:
		set = func(v reflect.Value, s string) error {
			v.SetString(s)
			return nil
		}
	case reflect.Bool:
		set = func(v reflect.Value, s string) error {
			b, err := strconv.ParseBool(s)
			v.SetBool(b)
			return err
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		set = func(v reflect.Value, s string) error {
			n, err := strconv.ParseInt(s, 10, t.Bits())
			v.SetInt(n)
			return err
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		set = func(v reflect.Value, s string) error {
			n, err := strconv.ParseUint(s, 10, t.Bits())
			v.SetUint(n)
			return err
		}
	case reflect.Float32, reflect.Float64:
		set = func(v reflect.Value, s string) error {
			f, err := strconv.ParseFloat(s, t.Bits())
			v.SetFloat(f)
			return err
		}
	default:
		return Converter{}, false
	}

	return Converter{
		name: t.String(),
		typ:  t,
		form: Direct,
		parse: func(s string) (any, error) {
			v := reflect.New(t).Elem()
			if err := set(v, s); err != nil {
				return nil, err
			}
			return v.Interface(), nil
		},
	}, true
}
