package convert

import (
	"errors"
	"net/netip"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

type upper string

func (u *upper) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty")
	}
	*u = upper(strings.ToUpper(string(b)))
	return nil
}

func TestBuiltins_Parse(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		text string
		want any
	}{
		{name: "string", text: "clear", want: "clear"},
		{name: "bool", text: "true", want: true},
		{name: "int", text: "-512", want: -512},
		{name: "int8", text: "-8", want: int8(-8)},
		{name: "int64", text: "9000000000", want: int64(9000000000)},
		{name: "uint8", text: "56", want: uint8(56)},
		{name: "byte", text: "56", want: uint8(56)},
		{name: "uint64", text: "18446744073709551615", want: uint64(18446744073709551615)},
		{name: "float64", text: "1.5", want: 1.5},
		{name: "float32", text: "0.25", want: float32(0.25)},
		{name: "duration", text: "1m30s", want: 90 * time.Second},
		{name: "addr", text: "10.0.0.1", want: netip.MustParseAddr("10.0.0.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := r.Lookup(tt.name)
			require.True(t, ok)

			got, err := c.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConverter_ParseFailure(t *testing.T) {
	c, ok := For[int]()
	require.True(t, ok)

	_, err := c.Parse("greger")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	var convErr *Error
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "int", convErr.Converter)
	assert.Equal(t, "greger", convErr.Text)

	v, ok := c.TryParse("greger")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestConverter_OverflowFails(t *testing.T) {
	c, _ := Default.Lookup("byte")

	_, ok := c.TryParse("256")
	assert.False(t, ok)
}

func TestConverter_Zero(t *testing.T) {
	var c Converter
	assert.True(t, c.IsZero())

	_, err := c.Parse("1")
	assert.ErrorIs(t, err, ErrInvalid)

	_, ok := c.TryParse("1")
	assert.False(t, ok)
}

func TestForType_Resolution(t *testing.T) {
	r := NewRegistry()

	t.Run("registered type", func(t *testing.T) {
		c, ok := r.ForType(reflect.TypeFor[time.Duration]())
		require.True(t, ok)
		assert.Equal(t, "duration", c.Name())
		assert.Equal(t, Direct, c.Form())
	})

	t.Run("named kind", func(t *testing.T) {
		c, ok := r.ForType(reflect.TypeFor[level]())
		require.True(t, ok)
		assert.Equal(t, Direct, c.Form())

		v, err := c.Parse("3")
		require.NoError(t, err)
		assert.Equal(t, level(3), v)
	})

	t.Run("text unmarshaler beats kind", func(t *testing.T) {
		c, ok := r.ForType(reflect.TypeFor[upper]())
		require.True(t, ok)
		assert.Equal(t, Text, c.Form())

		v, err := c.Parse("abc")
		require.NoError(t, err)
		assert.Equal(t, upper("ABC"), v)

		_, err = c.Parse("")
		assert.Error(t, err, "UnmarshalText rejects empty input")
	})

	t.Run("text unmarshaler fallback", func(t *testing.T) {
		type wrapper struct{ netip.Prefix }
		c, ok := r.ForType(reflect.TypeFor[netip.Prefix]())
		require.True(t, ok)
		assert.Equal(t, Text, c.Form())

		v, err := c.Parse("10.0.0.0/8")
		require.NoError(t, err)
		assert.Equal(t, netip.MustParsePrefix("10.0.0.0/8"), v)

		_, ok = r.ForType(reflect.TypeFor[wrapper]())
		assert.True(t, ok, "embedded Prefix promotes UnmarshalText")
	})

	t.Run("unsupported", func(t *testing.T) {
		_, ok := r.ForType(reflect.TypeFor[map[string]int]())
		assert.False(t, ok)
	})
}

func TestRegistry_DirectPreferredOverText(t *testing.T) {
	r := NewRegistry()

	direct := Func("stamp", func(s string) (time.Time, error) {
		return time.Parse(time.DateOnly, s)
	})
	require.NoError(t, r.Register(direct))

	c, ok := r.ForType(reflect.TypeFor[time.Time]())
	require.True(t, ok)
	assert.Equal(t, Direct, c.Form())
	assert.Equal(t, "stamp", c.Name())

	// Registering a Text converter afterwards keeps the Direct one for type lookups.
	require.NoError(t, r.Register(TextOf[time.Time]("rfc3339")))
	c, _ = r.ForType(reflect.TypeFor[time.Time]())
	assert.Equal(t, "stamp", c.Name())

	byName, ok := r.Lookup("rfc3339")
	require.True(t, ok)
	assert.Equal(t, Text, byName.Form())
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Register(Converter{}), ErrInvalid)
	assert.ErrorIs(t, r.Register(Func("[]int", strconv.Atoi)), ErrInvalid)
	assert.ErrorIs(t, r.Alias("x", "nope"), ErrUnknownType)
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Alias("integer", "int"))

	tests := []struct {
		typeName string
		wantName string
		wantList bool
		wantErr  bool
	}{
		{typeName: "int", wantName: "int"},
		{typeName: "[]int", wantName: "int", wantList: true},
		{typeName: " [] string ", wantName: "string", wantList: true},
		{typeName: "integer", wantName: "int"},
		{typeName: "[]byte", wantName: "uint8", wantList: true},
		{typeName: "complex", wantErr: true},
		{typeName: "[][]int", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			c, list, err := r.Resolve(tt.typeName)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
			assert.Equal(t, tt.wantList, list)
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	names := NewRegistry().Names()
	assert.Contains(t, names, "byte")
	assert.Contains(t, names, "duration")
	assert.True(t, sortedStrings(names))
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

func TestSignature(t *testing.T) {
	c, _ := For[int]()
	assert.Equal(t, "int:int:direct", c.Signature())

	tc, _ := Default.Lookup("time")
	assert.Equal(t, "time:time.Time:text", tc.Signature())
}
