package codec

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// refKey identifies a mutable container. Lists are keyed by backing array
// and length, dicts by map header.
type refKey struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

func identity(v any) (refKey, bool) {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return refKey{}, false
		}
		return refKey{kind: reflect.Slice, ptr: reflect.ValueOf(x).Pointer(), len: len(x)}, true
	case map[string]any:
		if x == nil {
			return refKey{}, false
		}
		return refKey{kind: reflect.Map, ptr: reflect.ValueOf(x).Pointer()}, true
	}
	return refKey{}, false
}

type encoder struct {
	// protocol 2: containers reachable more than once, and the index each
	// one was given when first written.
	shared map[refKey]bool
	index  map[refKey]uint64

	// protocol 1: containers on the path from the root.
	active map[refKey]bool
}

// Marshal encodes v under the given protocol.
func Marshal(v any, protocol int) ([]byte, error) {
	if !ValidProtocol(protocol) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProtocol, protocol)
	}

	e := &encoder{}
	if protocol >= ProtocolShared {
		e.shared = findShared(v)
		e.index = make(map[refKey]uint64)
	} else {
		e.active = make(map[refKey]bool)
	}

	item, err := e.build(v)
	if err != nil {
		return nil, err
	}
	if protocol >= ProtocolShared {
		item = cbor.Tag{Number: tagSelfDescribed, Content: item}
	}

	data, err := encMode.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encoding CBOR: %w", err)
	}
	return data, nil
}

// findShared walks the graph once and returns the containers reached more
// than once. A container is not descended into a second time, so cycles
// terminate.
func findShared(root any) map[refKey]bool {
	seen := make(map[refKey]int)

	var visit func(v any)
	visit = func(v any) {
		if k, ok := identity(v); ok {
			seen[k]++
			if seen[k] > 1 {
				return
			}
		}
		switch x := v.(type) {
		case []any:
			for _, c := range x {
				visit(c)
			}
		case Tuple:
			for _, c := range x {
				visit(c)
			}
		case map[string]any:
			for _, key := range sortedKeys(x) {
				visit(x[key])
			}
		}
	}
	visit(root)

	shared := make(map[refKey]bool)
	for k, n := range seen {
		if n > 1 {
			shared[k] = true
		}
	}
	return shared
}

// build converts v into the item tree handed to the CBOR encoder.
func (e *encoder) build(v any) (any, error) {
	k, ok := identity(v)
	if !ok {
		return e.buildValue(v)
	}

	if e.shared[k] {
		if idx, written := e.index[k]; written {
			return cbor.Tag{Number: tagSharedRef, Content: idx}, nil
		}
		e.index[k] = uint64(len(e.index))
		content, err := e.buildValue(v)
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: tagShareable, Content: content}, nil
	}

	if e.active != nil {
		if e.active[k] {
			return nil, fmt.Errorf("%w: %s contains itself", ErrCycle, KindOf(v))
		}
		e.active[k] = true
		defer delete(e.active, k)
	}
	return e.buildValue(v)
}

func (e *encoder) buildValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool, string, []byte, float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return uint64(x), nil
	case uint8:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint32:
		return uint64(x), nil
	case uint64:
		return x, nil
	case complex64:
		return e.buildValue(complex128(x))
	case complex128:
		return cbor.Tag{Number: tagObject, Content: []any{typeComplex, real(x), imag(x)}}, nil
	case []any:
		return e.buildSeq(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for _, key := range sortedKeys(x) {
			item, err := e.build(x[key])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			out[key] = item
		}
		return out, nil
	case Tuple:
		items, err := e.buildSeq(x)
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: tagObject, Content: []any{typeTuple, items}}, nil
	case Set:
		return e.buildSet(x)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// buildSeq never returns nil: a nil slice would be written as CBOR null.
func (e *encoder) buildSeq(items []any) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		built, err := e.build(item)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

func (e *encoder) buildSet(s Set) (any, error) {
	encoded := make([][]byte, 0, len(s))
	for _, item := range s {
		if !hashable(item) {
			return nil, fmt.Errorf("%w: unhashable set element of kind %s", ErrUnsupportedType, KindOf(item))
		}
		built, err := e.buildValue(item)
		if err != nil {
			return nil, err
		}
		b, err := encMode.Marshal(built)
		if err != nil {
			return nil, fmt.Errorf("encoding set element: %w", err)
		}
		encoded = append(encoded, b)
	}
	slices.SortFunc(encoded, bytes.Compare)
	encoded = slices.CompactFunc(encoded, bytes.Equal)

	out := make([]cbor.RawMessage, len(encoded))
	for i, b := range encoded {
		out[i] = cbor.RawMessage(b)
	}
	return cbor.Tag{Number: tagSet, Content: out}, nil
}

// hashable mirrors what may be a set element: scalars and tuples of scalars.
func hashable(v any) bool {
	switch x := v.(type) {
	case nil, bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, complex64, complex128:
		return true
	case Tuple:
		for _, item := range x {
			if !hashable(item) {
				return false
			}
		}
		return true
	}
	return false
}

// sortedKeys orders keys the way deterministic encoding orders encoded text
// keys: shorter first, then bytewise. Shareable indexes are assigned in this
// order, so it must match the byte stream.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return cmp.Compare(len(a), len(b))
		}
		return strings.Compare(a, b)
	})
	return keys
}
