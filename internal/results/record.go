package results

import (
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/agentx-labs/serialcheck/internal/digest"
)

// Record is the persisted result of serializing one test case. The JSON
// key names are the on-disk layout shared with result directories written
// by earlier tooling, so python_version carries the runtime version and
// pickle_data_base64 the serialized bytes whatever produced them.
type Record struct {
	TestCase       string `json:"test_case"`
	Hash           string `json:"hash"`
	Data           string `json:"pickle_data_base64"`
	Protocol       int    `json:"protocol"`
	RuntimeVersion string `json:"python_version"`
	Platform       string `json:"platform"`
	HashAlgorithm  string `json:"hash_algorithm,omitempty"`
}

// Set is the records of one platform directory keyed by test case name.
type Set map[string]Record

// NewRecord builds the record for serialized bytes.
func NewRecord(name string, data []byte, protocol int, alg digest.Algorithm, runtimeVersion, descriptor string) (Record, error) {
	sum, err := digest.Sum(alg, data)
	if err != nil {
		return Record{}, err
	}
	return Record{
		TestCase:       name,
		Hash:           sum,
		Data:           base64.StdEncoding.EncodeToString(data),
		Protocol:       protocol,
		RuntimeVersion: runtimeVersion,
		Platform:       descriptor,
		HashAlgorithm:  string(alg),
	}, nil
}

// Bytes decodes the serialized bytes.
func (r Record) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding data of %s: %w", r.TestCase, err)
	}
	return data, nil
}

// Algorithm returns the hash algorithm the record was written with.
func (r Record) Algorithm() digest.Algorithm {
	if r.HashAlgorithm == "" {
		return digest.Default
	}
	return digest.Algorithm(r.HashAlgorithm)
}

// Verify recomputes the hash of the stored bytes and reports whether it
// matches the stored hash.
func (r Record) Verify() (bool, error) {
	data, err := r.Bytes()
	if err != nil {
		return false, err
	}
	sum, err := digest.Sum(r.Algorithm(), data)
	if err != nil {
		return false, err
	}
	return sum == r.Hash, nil
}

// Names returns the test case names in s, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
