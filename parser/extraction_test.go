package parser

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/netip"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/template"
)

func mustPlan(t *testing.T, src string, bindings ...Binding) *Plan {
	t.Helper()
	plan, err := Bind(template.Compile(src), bindings...)
	require.NoError(t, err)
	return plan
}

func TestExtract_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    string
		bindings func(t *testing.T) []Binding
		want     []any
	}{
		{
			name:     "two scalars",
			template: "x={x}, y={y}",
			input:    "x=512, y=123",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("x", conv(t, "int")), Scalar("y", conv(t, "int"))}
			},
			want: []any{512, 123},
		},
		{
			name:     "comma list",
			template: "{numbers:,}",
			input:    "1,2,3",
			bindings: func(t *testing.T) []Binding {
				return []Binding{List("numbers", conv(t, "int"))}
			},
			want: []any{[]int{1, 2, 3}},
		},
		{
			name:     "declaration order differs from template order",
			template: "{three} {two} {four} {one}",
			input:    "clear 123 true 56",
			bindings: func(t *testing.T) []Binding {
				return []Binding{
					Scalar("one", conv(t, "byte")),
					Scalar("two", conv(t, "int")),
					Scalar("three", conv(t, "string")),
					Scalar("four", conv(t, "bool")),
				}
			},
			want: []any{uint8(56), 123, "clear", true},
		},
		{
			name:     "string list split on space",
			template: "{array: }",
			input:    "i am cool",
			bindings: func(t *testing.T) []Binding {
				return []Binding{List("array", conv(t, "string"))}
			},
			want: []any{[]string{"i", "am", "cool"}},
		},
		{
			name:     "multiline",
			template: "Today: {value0},\nTomorrow: {value1},\nTuesday: {value2}",
			input:    "Today: 10,\nTomorrow: -4,\nTuesday: 7",
			bindings: func(t *testing.T) []Binding {
				return []Binding{
					Scalar("value0", conv(t, "int")),
					Scalar("value1", conv(t, "int")),
					Scalar("value2", conv(t, "int")),
				}
			},
			want: []any{10, -4, 7},
		},
		{
			name:     "first and last out of order",
			template: "My name is {first} {last}",
			input:    "My name is Jeff Bezos",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("last", conv(t, "string")), Scalar("first", conv(t, "string"))}
			},
			want: []any{"Bezos", "Jeff"},
		},
		{
			name:     "discards are read and dropped",
			template: "I eat {_} and drink {drink}!",
			input:    "I eat bread and drink water!",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("drink", conv(t, "string"))}
			},
			want: []any{"water"},
		},
		{
			name:     "text after trailing literal ignored",
			template: "x={x}!",
			input:    "x=5!extra",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("x", conv(t, "int"))}
			},
			want: []any{5},
		},
		{
			name:     "final read takes the rest",
			template: "{a}-{b}",
			input:    "1-2-3",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("a", conv(t, "string")), Scalar("b", conv(t, "string"))}
			},
			want: []any{"1", "2-3"},
		},
		{
			name:     "empty separator splits characters",
			template: "{digits:}",
			input:    "123",
			bindings: func(t *testing.T) []Binding {
				return []Binding{List("digits", conv(t, "int"))}
			},
			want: []any{[]int{1, 2, 3}},
		},
		{
			name:     "empty separator on empty slice",
			template: "digits={digits:}",
			input:    "digits=",
			bindings: func(t *testing.T) []Binding {
				return []Binding{List("digits", conv(t, "int"))}
			},
			want: []any{[]int{}},
		},
		{
			name:     "text converter",
			template: "from {addr} in {d}",
			input:    "from 10.0.0.1 in 1m30s",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("addr", conv(t, "addr")), Scalar("d", conv(t, "duration"))}
			},
			want: []any{netip.MustParseAddr("10.0.0.1"), 90 * time.Second},
		},
		{
			name:     "repeated name reads once",
			template: "{a} {b} {a}",
			input:    "1 2 1",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("a", conv(t, "int")), Scalar("b", conv(t, "int"))}
			},
			want: []any{1, 2},
		},
		{
			name:     "repeated name before trailing literal",
			template: "{a} is {b} and {a} again",
			input:    "x is y and x again",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("a", conv(t, "string")), Scalar("b", conv(t, "string"))}
			},
			want: []any{"x", "y"},
		},
		{
			name:     "repeated name repeated again",
			template: "{a} {b} {a}-{a}",
			input:    "1 2 1-1",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("a", conv(t, "int")), Scalar("b", conv(t, "int"))}
			},
			want: []any{1, 2},
		},
		{
			name:     "repeated name between placeholders",
			template: "{a} {b} {a} {c}",
			input:    "1 2 1 3",
			bindings: func(t *testing.T) []Binding {
				return []Binding{Scalar("a", conv(t, "int")), Scalar("b", conv(t, "int")), Scalar("c", conv(t, "int"))}
			},
			want: []any{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustPlan(t, tt.template, tt.bindings(t)...)

			got, err := plan.Extract(tt.input)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.EqualValues(t, tt.want[i], got[i], "output %d", i)
			}

			tolerant, ok := plan.TryExtract(tt.input)
			require.True(t, ok)
			assert.Equal(t, got, tolerant)
		})
	}
}

func TestExtract_TwelveValues(t *testing.T) {
	names := strings.Split("a b c d e f g h i j k l", " ")

	var tmpl, input []string
	bindings := make([]Binding, len(names))
	for i, name := range names {
		tmpl = append(tmpl, "{"+name+"}")
		input = append(input, strconv.Itoa(i+1))
		bindings[i] = Scalar(name, conv(t, "int"))
	}

	plan := mustPlan(t, strings.Join(tmpl, " "), bindings...)
	got, err := plan.Extract(strings.Join(input, " "))
	require.NoError(t, err)

	for i := range names {
		assert.Equal(t, i+1, got[i])
	}
}

func TestExtract_LiteralNotFound(t *testing.T) {
	tests := []struct {
		name        string
		template    string
		input       string
		placeholder string
		literal     string
		offset      int
		near        string
		before      string
	}{
		{
			name:     "leading literal mismatch",
			template: "something {x}",
			input:    "too different 12",
			literal:  "something ",
			offset:   0,
			near:     "too different 12",
		},
		{
			name:     "leading literal longer than input",
			template: "too much {x}",
			input:    "12",
			literal:  "too much ",
			offset:   0,
			near:     "12",
		},
		{
			name:        "middle literal missing",
			template:    "x={x}, y={y}",
			input:       "x=1 y=2",
			placeholder: "x",
			literal:     ", y=",
			offset:      2,
			near:        "1 y=2",
			before:      "x=",
		},
		{
			name:        "trailing literal missing",
			template:    "my name is {name}!",
			input:       "my name is jeff",
			placeholder: "name",
			literal:     "!",
			offset:      11,
			near:        "jeff",
			before:      "my name is ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := template.Compile(tt.template).Names()
			bindings := make([]Binding, len(names))
			for i, name := range names {
				bindings[i] = Scalar(name, conv(t, "string"))
			}
			plan := mustPlan(t, tt.template, bindings...)

			_, err := plan.Extract(tt.input)
			require.ErrorIs(t, err, ErrLiteralNotFound)

			var ee *ExtractError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.placeholder, ee.Placeholder)
			assert.Equal(t, tt.literal, ee.Literal)
			assert.Equal(t, tt.offset, ee.Offset)
			assert.Equal(t, tt.near, ee.Near)
			assert.Equal(t, tt.before, ee.Before)
			assert.Contains(t, err.Error(), strconv.Quote(tt.literal))
			if tt.before != "" {
				assert.Contains(t, err.Error(), "after "+strconv.Quote(tt.before))
			}

			_, ok := plan.TryExtract(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestExtract_ConversionFailure(t *testing.T) {
	plan := mustPlan(t, "{x}", Scalar("x", conv(t, "int")))

	_, err := plan.Extract("missing 12")
	require.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, convert.ErrSyntax)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "x", ee.Placeholder)
	assert.Equal(t, 0, ee.Offset)

	var ce *convert.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "missing 12", ce.Text)
	assert.Equal(t, "int", ce.Converter)

	assert.Equal(t,
		`conversion failed for "x" at offset 0: convert int "missing 12": strconv.ParseInt: parsing "missing 12": invalid syntax`,
		err.Error())
}

func TestExtract_ListTokenOffset(t *testing.T) {
	plan := mustPlan(t, "n={n:,}", List("n", conv(t, "int")))

	_, err := plan.Extract("n=1,x,3")

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, ErrConversion)
	assert.Equal(t, 4, ee.Offset)
	assert.Equal(t, "x,3", ee.Near)
}

func TestExtract_LongInputPreview(t *testing.T) {
	plan := mustPlan(t, "start {x}", Scalar("x", conv(t, "int")))

	_, err := plan.Extract(strings.Repeat("z", 200))

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Len(t, []rune(ee.Near), previewLen)
	assert.True(t, strings.HasSuffix(ee.Near, "..."))
	assert.Empty(t, ee.Before)
}

func TestExtract_LongPrefixPreview(t *testing.T) {
	plan := mustPlan(t, "{s};{n}", Scalar("s", conv(t, "string")), Scalar("n", conv(t, "int")))

	_, err := plan.Extract(strings.Repeat("z", 100) + ";bad")

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, ErrConversion)
	assert.Equal(t, 101, ee.Offset)
	assert.Equal(t, "..."+strings.Repeat("z", 36)+";", ee.Before)
}

func TestTryExtract(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    string
	}{
		{name: "not a number", template: "x = {x}", input: "x = greger"},
		{name: "missing trailing literal", template: "my name is {jeff}!", input: "jeff!"},
		{name: "overflow", template: "{x}", input: "99999999999999999999999"},
		{name: "bad list token", template: "{x:,}", input: "1,,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph := template.Compile(tt.template).Placeholders[0]
			b := Binding{Name: ph.Name, List: ph.List, Elem: conv(t, "int")}
			plan := mustPlan(t, tt.template, b)

			got, ok := plan.TryExtract(tt.input)
			assert.False(t, ok)
			assert.Nil(t, got)

			_, err := plan.Extract(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestExtract_OrderIndependent(t *testing.T) {
	src := "{a}|{b}|{c}|{d:;}"
	input := "1|two|3.5|4;5"

	bindings := []Binding{
		Scalar("a", conv(t, "int")),
		Scalar("b", conv(t, "string")),
		Scalar("c", conv(t, "float64")),
		List("d", conv(t, "uint")),
	}
	want := map[string]any{"a": 1, "b": "two", "c": 3.5, "d": []uint{4, 5}}

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10; i++ {
		r.Shuffle(len(bindings), func(a, b int) { bindings[a], bindings[b] = bindings[b], bindings[a] })

		got, err := mustPlan(t, src, bindings...).Extract(input)
		require.NoError(t, err)

		byName := make(map[string]any, len(got))
		for slot, b := range bindings {
			byName[b.Name] = got[slot]
		}
		assert.Equal(t, want, byName)
	}
}

func TestExtract_RenderRoundTrip(t *testing.T) {
	literals := []string{" | ", "; ", " and ", ":: ", "\n"}
	r := rand.New(rand.NewPCG(7, 11))

	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("%d placeholders", n), func(t *testing.T) {
			var sb strings.Builder
			sb.WriteString("<")
			bindings := make([]Binding, n)
			values := make(map[string]string, n)
			want := make([]int64, n)
			for i := 0; i < n; i++ {
				if i > 0 {
					sb.WriteString(literals[r.IntN(len(literals))])
				}
				name := fmt.Sprintf("v%d", i)
				sb.WriteString("{" + name + "}")

				want[i] = r.Int64N(2_000_000) - 1_000_000
				values[name] = strconv.FormatInt(want[i], 10)
				bindings[i] = Scalar(name, conv(t, "int64"))
			}
			if r.IntN(2) == 0 {
				sb.WriteString(">")
			}

			tmpl := template.Compile(sb.String())
			input, err := tmpl.Render(values)
			require.NoError(t, err)

			plan, err := Bind(tmpl, bindings...)
			require.NoError(t, err)

			got, err := plan.Extract(input)
			require.NoError(t, err)
			for i := range want {
				assert.Equal(t, want[i], got[i])
			}
		})
	}
}

func TestCursor(t *testing.T) {
	c, err := NewCursor(template.Compile("a{x}b{y}"), "a1b2")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Offset())

	s, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", s)
	assert.Equal(t, 3, c.Offset())
	assert.False(t, c.Done())

	s, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, "2", s)
	assert.True(t, c.Done())

	_, err = c.Next()
	assert.ErrorIs(t, err, ErrInputExhausted)
	assert.Equal(t, `input exhausted reading "" at offset 4`, err.Error())
}

func TestNewCursor_LeadingLiteral(t *testing.T) {
	_, err := NewCursor(template.Compile("hello {x}"), "goodbye")
	require.ErrorIs(t, err, ErrLiteralNotFound)

	var ee *ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "hello ", ee.Literal)
}

func TestTokens(t *testing.T) {
	type token struct {
		At   int
		Text string
	}

	tests := []struct {
		name string
		text string
		sep  string
		want []token
	}{
		{name: "comma", text: "1,2,3", sep: ",", want: []token{{0, "1"}, {2, "2"}, {4, "3"}}},
		{name: "multi-byte separator", text: "a, b, c", sep: ", ", want: []token{{0, "a"}, {3, "b"}, {6, "c"}}},
		{name: "no separator", text: "abc", sep: ",", want: []token{{0, "abc"}}},
		{name: "empty text", text: "", sep: ",", want: []token{{0, ""}}},
		{name: "empty tokens", text: ",,", sep: ",", want: []token{{0, ""}, {1, ""}, {2, ""}}},
		{name: "non-overlapping", text: "aaa", sep: "aa", want: []token{{0, ""}, {2, "a"}}},
		{name: "characters", text: "héj", sep: "", want: []token{{0, "h"}, {1, "é"}, {3, "j"}}},
		{name: "characters of empty text", text: "", sep: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []token
			for at, s := range Tokens(tt.text, tt.sep) {
				got = append(got, token{at, s})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokens_StopEarly(t *testing.T) {
	var got []string
	for _, s := range Tokens("1,2,3,4", ",") {
		if s == "3" {
			break
		}
		got = append(got, s)
	}
	assert.Equal(t, []string{"1", "2"}, got)
}
