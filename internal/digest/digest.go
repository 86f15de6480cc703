// Package digest computes the content hash stored with each result record.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Algorithm names a supported hash function.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"

	// Default is used when no algorithm is configured. Records without a
	// hash_algorithm field were hashed with it.
	Default = SHA256
)

// ErrUnknownAlgorithm is returned by Parse for unsupported names.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Algorithms returns the supported algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, BLAKE3}
}

// Parse resolves a case-insensitive algorithm name. The empty string selects
// Default.
func Parse(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return Default, nil
	case SHA256:
		return SHA256, nil
	case BLAKE3:
		return BLAKE3, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Sum returns the lowercase hex digest of data.
func Sum(alg Algorithm, data []byte) (string, error) {
	switch alg {
	case SHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case BLAKE3:
		sum := blake3.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}
