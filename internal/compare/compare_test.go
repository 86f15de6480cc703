package compare

import (
	"strings"
	"testing"

	"github.com/agentx-labs/serialcheck/internal/results"
)

func rec(name, hash string) results.Record {
	return results.Record{
		TestCase:       name,
		Hash:           hash,
		Protocol:       2,
		RuntimeVersion: "go1.25.7 (gc linux/amd64)",
	}
}

func set(recs ...results.Record) results.Set {
	s := make(results.Set)
	for _, r := range recs {
		s[r.TestCase] = r
	}
	return s
}

func TestCompareIdentical(t *testing.T) {
	s := set(rec("a", "01"), rec("b", "02"))
	diffs := Compare(Side{"Linux", s}, Side{"Windows", s})
	if len(diffs) != 0 {
		t.Errorf("Compare identical = %v, want none", diffs)
	}
}

func TestCompareExtraKey(t *testing.T) {
	left := set(rec("a", "01"), rec("b", "02"))
	right := set(rec("a", "01"))

	diffs := Compare(Side{"Linux", left}, Side{"Windows", right})
	if len(diffs) != 1 {
		t.Fatalf("got %d differences, want 1: %v", len(diffs), diffs)
	}
	d := diffs[0]
	if d.TestCase != "b" || d.Status != Missing {
		t.Errorf("difference = %+v, want MISSING for b", d)
	}
	if d.Details != "Missing in Windows" {
		t.Errorf("details = %q", d.Details)
	}

	// Mirror image names the other side.
	diffs = Compare(Side{"Linux", right}, Side{"Windows", left})
	if len(diffs) != 1 || diffs[0].Details != "Missing in Linux" {
		t.Errorf("mirrored differences = %v", diffs)
	}
}

func TestCompareChangedHash(t *testing.T) {
	left := set(rec("a", "01"), rec("b", "02"))
	right := set(rec("a", "01"), rec("b", "ff"))

	diffs := Compare(Side{"Linux", left}, Side{"Windows", right})
	if len(diffs) != 1 {
		t.Fatalf("got %d differences, want 1: %v", len(diffs), diffs)
	}
	if diffs[0].TestCase != "b" || diffs[0].Status != Different || diffs[0].Details != "Hash mismatch" {
		t.Errorf("difference = %+v", diffs[0])
	}
}

func TestCompareExplainsMismatch(t *testing.T) {
	l := rec("a", "01")
	r := rec("a", "02")
	r.HashAlgorithm = "blake3"
	diffs := Compare(Side{"Linux", set(l)}, Side{"Windows", set(r)})
	if len(diffs) != 1 || diffs[0].Details != "Hash mismatch (sha256 vs blake3 digests)" {
		t.Errorf("differences = %v", diffs)
	}

	r = rec("a", "02")
	r.Protocol = 1
	diffs = Compare(Side{"Linux", set(l)}, Side{"Windows", set(r)})
	if len(diffs) != 1 || diffs[0].Details != "Hash mismatch (protocol 2 vs 1)" {
		t.Errorf("differences = %v", diffs)
	}
}

func TestCompareSorted(t *testing.T) {
	left := set(rec("zeta", "01"), rec("alpha", "01"), rec("mid", "01"))
	right := set(rec("beta", "01"))

	diffs := Compare(Side{"Linux", left}, Side{"Windows", right})
	var names []string
	for _, d := range diffs {
		names = append(names, d.TestCase)
	}
	if got := strings.Join(names, ","); got != "alpha,beta,mid,zeta" {
		t.Errorf("order = %s", got)
	}
}

func TestCompareBothEmpty(t *testing.T) {
	diffs := Compare(Side{Name: "Linux"}, Side{Name: "Windows"})
	if diffs == nil || len(diffs) != 0 {
		t.Errorf("Compare(empty, empty) = %#v, want empty non-nil slice", diffs)
	}
}

func TestRuntimeSkew(t *testing.T) {
	l := rec("a", "01")
	r := rec("a", "01")
	r.RuntimeVersion = "go1.25.1 (gc windows/amd64)"
	if _, ok := RuntimeSkew(Side{"Linux", set(l)}, Side{"Windows", set(r)}); ok {
		t.Error("patch-level difference reported as skew")
	}

	r.RuntimeVersion = "go1.24.3 (gc windows/amd64)"
	msg, ok := RuntimeSkew(Side{"Linux", set(l)}, Side{"Windows", set(r)})
	if !ok {
		t.Fatal("minor version difference not reported")
	}
	if !strings.Contains(msg, "go1.25.7 (Linux)") || !strings.Contains(msg, "go1.24.3 (Windows)") {
		t.Errorf("message = %q", msg)
	}

	r.RuntimeVersion = "not a version"
	if _, ok := RuntimeSkew(Side{"Linux", set(l)}, Side{"Windows", set(r)}); ok {
		t.Error("unparseable version reported as skew")
	}
}

func TestParseRuntimeVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"go1.25.7 (gc linux/amd64)", "1.25.7"},
		{"3.12.3 (main, Apr 10 2024, 05:33:47) [GCC 13.2.0]", "3.12.3"},
		{"go1.26rc1", "1.26.0-rc1"},
	}
	for _, tt := range tests {
		v, err := parseRuntimeVersion(tt.raw)
		if err != nil {
			t.Fatalf("parseRuntimeVersion(%q): %v", tt.raw, err)
		}
		if v.String() != tt.want {
			t.Errorf("parseRuntimeVersion(%q) = %s, want %s", tt.raw, v, tt.want)
		}
	}
}
