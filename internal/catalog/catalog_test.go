package catalog

import (
	"bytes"
	"math"
	"reflect"
	"testing"

	"github.com/agentx-labs/serialcheck/internal/codec"
)

func TestCasesUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Cases() {
		if seen[c.Name] {
			t.Errorf("duplicate test case %q", c.Name)
		}
		seen[c.Name] = true
	}
	if len(seen) != 31 {
		t.Errorf("catalog has %d cases, want 31", len(seen))
	}
}

func TestCasesReturnsCopy(t *testing.T) {
	a := Cases()
	a[0].Name = "changed"
	if Cases()[0].Name == "changed" {
		t.Error("Cases() exposes the internal table")
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("simple_int")
	if !ok {
		t.Fatal("simple_int not found")
	}
	if c.Value != 42 {
		t.Errorf("simple_int = %v, want 42", c.Value)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) found a case")
	}
}

func TestRecursiveListContainsItself(t *testing.T) {
	c, _ := Lookup("recursive_list")
	l := c.Value.([]any)
	inner := l[0].([]any)
	if reflect.ValueOf(inner).Pointer() != reflect.ValueOf(l).Pointer() {
		t.Error("recursive_list does not contain itself")
	}
}

func TestComputedValues(t *testing.T) {
	fp, _ := Lookup("float_precision")
	pair := fp.Value.([]any)
	if pair[0].(float64) == 0.3 {
		t.Error("float_precision[0] was constant folded to 0.3")
	}

	wl, _ := Lookup("while_loop")
	if want := []any{0, 2, 4}; !reflect.DeepEqual(wl.Value, want) {
		t.Errorf("while_loop = %v, want %v", wl.Value, want)
	}

	ll, _ := Lookup("large_list")
	if n := len(ll.Value.([]any)); n != 1000 {
		t.Errorf("large_list has %d items, want 1000", n)
	}

	nz, _ := Lookup("negative_zero")
	if !math.Signbit(nz.Value.(float64)) {
		t.Error("negative_zero has no sign bit")
	}
}

func TestSelect(t *testing.T) {
	got, err := Select([]string{"negative_int", "simple_int"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	// Catalog order, not argument order.
	if len(got) != 2 || got[0].Name != "simple_int" || got[1].Name != "negative_int" {
		t.Errorf("Select = %v", got)
	}

	all, err := Select(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(Names()) {
		t.Errorf("Select(nil) returned %d cases, want %d", len(all), len(Names()))
	}

	if _, err := Select([]string{"missing"}); err == nil {
		t.Error("expected error for unknown case")
	}
}

func TestEveryCaseEncodesDeterministically(t *testing.T) {
	for _, c := range Cases() {
		t.Run(c.Name, func(t *testing.T) {
			first, err := codec.Marshal(c.Value, codec.HighestProtocol)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			second, err := codec.Marshal(c.Value, codec.HighestProtocol)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Error("encodings differ between runs")
			}
		})
	}
}
