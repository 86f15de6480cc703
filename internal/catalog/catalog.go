// Package catalog holds the fixed table of sample values that every run
// serializes. The table is built once at package initialization and is
// shared read-only by all callers.
package catalog

import (
	"fmt"
	"math"

	"github.com/agentx-labs/serialcheck/internal/codec"
)

// Case is a named sample value.
type Case struct {
	Name  string
	Value any
}

var (
	cases  = build()
	byName = index(cases)
)

// Cases returns every test case in catalog order. The returned slice is a
// fresh copy; the values it refers to must not be mutated.
func Cases() []Case {
	out := make([]Case, len(cases))
	copy(out, cases)
	return out
}

// Names returns the test case names in catalog order.
func Names() []string {
	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the case with the given name.
func Lookup(name string) (Case, bool) {
	i, ok := byName[name]
	if !ok {
		return Case{}, false
	}
	return cases[i], true
}

// Select returns the named cases in catalog order. An empty names list
// selects every case. Unknown names are an error.
func Select(names []string) ([]Case, error) {
	if len(names) == 0 {
		return Cases(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := byName[n]; !ok {
			return nil, fmt.Errorf("unknown test case %q", n)
		}
		want[n] = true
	}
	var out []Case
	for _, c := range cases {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}

func index(cs []Case) map[string]int {
	m := make(map[string]int, len(cs))
	for i, c := range cs {
		m[c.Name] = i
	}
	return m
}

type customClass struct {
	value int
}

func build() []Case {
	recursive := make([]any, 1)
	recursive[0] = recursive

	return []Case{
		{"simple_int", 42},
		{"simple_str", "Hi, This is a test string"},
		{"simple_float", 3.14},
		{"list_of_primitives", []any{1, "a", 3.14, nil}},
		{"dict_mixed", map[string]any{"a": 1, "b": []any{1, 2, 3}, "c": map[string]any{"d": 4}}},
		{"nested", []any{[]any{1, 2}, []any{3, []any{4, 5}}}},
		{"recursive_list", recursive},
		{"float_precision", []any{add(0.1, 0.2), 0.3}},
		{"tuple_of_objects", codec.Tuple{1, 2, codec.Tuple{"a", "b"}, []any{3.0, 4.0}}},
		{"Tuple", codec.Tuple{1, 2, 3}},
		{"True_False", true},
		{"NoneType", nil},
		{"complex_number", complex(1, 2)},
		{"if_statment", choose(true, 1, 0)},
		{"for_loop", rangeList(5, nil)},
		{"while_loop", rangeList(5, func(i int) bool { return i%2 == 0 })},
		{"class_instance", customClass{value: 42}.value},
		{"set_of_primitives", codec.NewSet(1, 2, 3, 4)},
		{"large_list", rangeList(1000, nil)},
		{"empty_string", ""},
		{"empty_list", []any{}},
		{"empty_dict", map[string]any{}},
		{"empty_set", codec.NewSet()},
		{"empty_tuple", codec.Tuple{}},
		{"infinite_float", math.Inf(1)},
		{"negative_infinite_float", math.Inf(-1)},
		{"negative_zero", math.Copysign(0, -1)},
		{"negative_int", -42},
		{"float_nan", math.NaN()},
		{"float_inf", math.Inf(1)},
		{"float_-inf", math.Inf(-1)},
	}
}

// add keeps the sum out of constant folding, so 0.1+0.2 carries the
// rounding error of float64 addition.
func add(a, b float64) float64 {
	return a + b
}

func choose(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}

func rangeList(n int, keep func(int) bool) []any {
	out := make([]any, 0, n)
	for i := range n {
		if keep == nil || keep(i) {
			out = append(out, i)
		}
	}
	return out
}
