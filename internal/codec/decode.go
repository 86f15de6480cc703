package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

type decoder struct {
	// shared holds every tag-28 value in the order it appeared.
	shared []any
}

// Unmarshal decodes data written by Marshal under either protocol. Shared
// and cyclic references are rebuilt: a list written as containing itself
// decodes to a list that contains itself.
func Unmarshal(data []byte) (any, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding CBOR: %w", err)
	}
	if t, ok := raw.(cbor.Tag); ok && t.Number == tagSelfDescribed {
		raw = t.Content
	}

	d := &decoder{}
	return d.resolve(raw)
}

func (d *decoder) resolve(v any) (any, error) {
	switch x := v.(type) {
	case cbor.Tag:
		return d.resolveTag(x)
	case []any:
		out := make([]any, len(x))
		if err := d.fillList(out, x); err != nil {
			return nil, err
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		if err := d.fillDict(out, x); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return v, nil
	}
}

func (d *decoder) fillList(out, items []any) error {
	for i, item := range items {
		v, err := d.resolve(item)
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

// fillDict visits keys in encoded order, which is the order shareable
// indexes were assigned in.
func (d *decoder) fillDict(out, items map[string]any) error {
	for _, k := range sortedKeys(items) {
		v, err := d.resolve(items[k])
		if err != nil {
			return fmt.Errorf("dict key %q: %w", k, err)
		}
		out[k] = v
	}
	return nil
}

func (d *decoder) resolveTag(t cbor.Tag) (any, error) {
	switch t.Number {
	case tagShareable:
		return d.resolveShareable(t.Content)

	case tagSharedRef:
		idx, ok := t.Content.(int64)
		if !ok || idx < 0 || idx >= int64(len(d.shared)) {
			return nil, fmt.Errorf("shared reference %v out of range (%d shareable values)", t.Content, len(d.shared))
		}
		v := d.shared[idx]
		if v == nil {
			return nil, fmt.Errorf("shared reference %d to a value that is still being decoded", idx)
		}
		return v, nil

	case tagObject:
		return d.resolveObject(t.Content)

	case tagSet:
		items, ok := t.Content.([]any)
		if !ok {
			return nil, fmt.Errorf("set content is %T, want array", t.Content)
		}
		out := make(Set, len(items))
		if err := d.fillList(out, items); err != nil {
			return nil, err
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unexpected CBOR tag %d", t.Number)
	}
}

// resolveShareable registers the container before its elements so that
// references from inside it resolve to the container itself.
func (d *decoder) resolveShareable(content any) (any, error) {
	idx := len(d.shared)
	d.shared = append(d.shared, nil)

	switch c := content.(type) {
	case []any:
		out := make([]any, len(c))
		d.shared[idx] = out
		if err := d.fillList(out, c); err != nil {
			return nil, err
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(c))
		d.shared[idx] = out
		if err := d.fillDict(out, c); err != nil {
			return nil, err
		}
		return out, nil
	default:
		v, err := d.resolve(c)
		if err != nil {
			return nil, err
		}
		d.shared[idx] = v
		return v, nil
	}
}

func (d *decoder) resolveObject(content any) (any, error) {
	args, ok := content.([]any)
	if !ok || len(args) == 0 {
		return nil, fmt.Errorf("object content is %T, want [typename, args...]", content)
	}
	name, _ := args[0].(string)

	switch name {
	case typeTuple:
		if len(args) != 2 {
			return nil, fmt.Errorf("tuple object has %d fields, want 2", len(args))
		}
		items, ok := args[1].([]any)
		if !ok {
			return nil, fmt.Errorf("tuple items are %T, want array", args[1])
		}
		out := make(Tuple, len(items))
		if err := d.fillList(out, items); err != nil {
			return nil, err
		}
		return out, nil

	case typeComplex:
		if len(args) != 3 {
			return nil, fmt.Errorf("complex object has %d fields, want 3", len(args))
		}
		re, okRe := args[1].(float64)
		im, okIm := args[2].(float64)
		if !okRe || !okIm {
			return nil, fmt.Errorf("complex parts are %T and %T, want floats", args[1], args[2])
		}
		return complex(re, im), nil

	default:
		return nil, fmt.Errorf("unknown object type %q", name)
	}
}
