package codec

import (
	"errors"
	"fmt"
)

// Protocol versions.
const (
	ProtocolPlain  = 1
	ProtocolShared = 2

	// HighestProtocol is the newest protocol and the default for generation.
	HighestProtocol = ProtocolShared
)

// CBOR tag numbers used by the encoding.
const (
	tagObject        = 27    // serialised object: [typename, args...]
	tagShareable     = 28    // value may be referenced by tagSharedRef
	tagSharedRef     = 29    // index of a previously written tagShareable value
	tagSet           = 258   // mathematical finite set
	tagSelfDescribed = 55799 // self-described CBOR magic
)

const (
	typeTuple   = "tuple"
	typeComplex = "complex"
)

var (
	// ErrCycle is returned when protocol 1 meets a container that contains itself.
	ErrCycle = errors.New("reference cycle requires protocol 2")

	// ErrUnsupportedType is returned for values the codec has no encoding for.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownProtocol is returned for protocol numbers outside 1..HighestProtocol.
	ErrUnknownProtocol = errors.New("unknown protocol")
)

// Tuple is an immutable ordered sequence. It encodes differently from a list
// and is never memoized.
type Tuple []any

// Set is an unordered collection of hashable values. Elements are written in
// the byte order of their encodings, so insertion order never reaches the
// output.
type Set []any

// NewSet returns a Set holding items.
func NewSet(items ...any) Set {
	s := make(Set, len(items))
	copy(s, items)
	return s
}

// ValidProtocol reports whether p names a known protocol.
func ValidProtocol(p int) bool {
	return p >= ProtocolPlain && p <= HighestProtocol
}

// KindOf returns a short, language-neutral name for the kind of v
// ("int", "float", "list", "dict", ...). Unknown kinds return the Go type.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "none"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case complex64, complex128:
		return "complex"
	case string:
		return "str"
	case []byte:
		return "bytes"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	case Tuple:
		return "tuple"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("%T", v)
	}
}
