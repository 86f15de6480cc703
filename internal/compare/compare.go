package compare

import (
	"fmt"
	"slices"

	"github.com/agentx-labs/serialcheck/internal/results"
)

// Status classifies a difference.
type Status string

const (
	Missing   Status = "MISSING"
	Different Status = "DIFFERENT"
)

// Difference is one test case that did not match.
type Difference struct {
	TestCase string `json:"test_case" yaml:"test_case"`
	Status   Status `json:"status" yaml:"status"`
	Details  string `json:"details" yaml:"details"`
}

// Side is one platform's result set.
type Side struct {
	Name    string
	Results results.Set
}

// Compare walks the union of test case names on both sides in sorted
// order. A name absent from one side is Missing; a name present on both
// with different hashes is Different; matching names produce nothing.
func Compare(left, right Side) []Difference {
	diffs := []Difference{}
	for _, name := range unionNames(left.Results, right.Results) {
		l, inLeft := left.Results[name]
		r, inRight := right.Results[name]

		if !inLeft || !inRight {
			missingFrom := right.Name
			if !inLeft {
				missingFrom = left.Name
			}
			diffs = append(diffs, Difference{
				TestCase: name,
				Status:   Missing,
				Details:  "Missing in " + missingFrom,
			})
			continue
		}

		if l.Hash != r.Hash {
			diffs = append(diffs, Difference{
				TestCase: name,
				Status:   Different,
				Details:  mismatchDetails(l, r),
			})
		}
	}
	return diffs
}

// mismatchDetails names a setting difference that explains the mismatch
// when there is one.
func mismatchDetails(l, r results.Record) string {
	switch {
	case l.Algorithm() != r.Algorithm():
		return fmt.Sprintf("Hash mismatch (%s vs %s digests)", l.Algorithm(), r.Algorithm())
	case l.Protocol != r.Protocol:
		return fmt.Sprintf("Hash mismatch (protocol %d vs %d)", l.Protocol, r.Protocol)
	default:
		return "Hash mismatch"
	}
}

func unionNames(a, b results.Set) []string {
	names := make([]string, 0, len(a)+len(b))
	for name := range a {
		names = append(names, name)
	}
	for name := range b {
		if _, ok := a[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
