// Package speccodec serializes ordered key/value specification lists to a
// canonical string form. Two specifications that differ only in insertion
// order encode to byte-identical strings, so duplicate detection is plain
// string equality on the encoded value.
package speccodec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Errors returned by Encode and Decode.
var (
	ErrRecursionLimit  = errors.New("speccodec: recursion limit exceeded")
	ErrNotSerializable = errors.New("speccodec: value is not serializable")
	ErrInvalidValue    = errors.New("speccodec: invalid value")
	ErrParse           = errors.New("speccodec: malformed input")
)

// DefaultMaxDepth bounds the nesting depth of specification values.
const DefaultMaxDepth = 100

// maxSafeInt is the largest integer magnitude that survives a round trip
// through a double-precision JSON number (2^53 - 1).
const maxSafeInt = int64(1<<53 - 1)

// Pair is one key/value entry of a specification list.
// Values may be strings, bools, numbers, nil, []any, map[string]any or
// nested []Pair lists.
type Pair struct {
	Key   string
	Value any
}

// Codec encodes and decodes specification lists with a configurable
// recursion limit. The zero value is not usable; call New.
type Codec struct {
	maxDepth int
}

// New creates a Codec. A maxDepth <= 0 falls back to DefaultMaxDepth.
func New(maxDepth int) *Codec {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Codec{maxDepth: maxDepth}
}

// Encode serializes pairs into the canonical textual form: a JSON object
// with keys sorted alphabetically at every nesting level and array elements
// serialized individually, then sorted as strings. Duplicate keys keep the
// last value.
func (c *Codec) Encode(pairs []Pair) (string, error) {
	if pairs == nil {
		return "", fmt.Errorf("%w: missing specification", ErrInvalidValue)
	}
	m := make(map[string]any, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return c.canonicalize(m, 0)
}

// Decode parses text produced by Encode (or any JSON object) back into a
// specification list sorted by key. Nested objects and arrays are
// re-canonicalized on the way out, so Decode(Encode(x)) equals x up to
// ordering.
func (c *Codec) Decode(text string) ([]Pair, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	// trailing garbage after the first value is malformed input
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrParse)
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: null specification", ErrInvalidValue)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrParse)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		v, err := c.normalize(obj[k], 1)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	return pairs, nil
}

// canonicalize renders v as a canonical JSON fragment.
func (c *Codec) canonicalize(v any, depth int) (string, error) {
	if depth > c.maxDepth {
		return "", fmt.Errorf("%w: depth %d", ErrRecursionLimit, depth)
	}

	switch val := v.(type) {
	case nil:
		return "null", nil

	case string:
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
		}
		return string(b), nil

	case bool:
		if val {
			return "true", nil
		}
		return "false", nil

	case json.Number:
		return canonicalNumber(val)

	case float64:
		return canonicalFloat(val)
	case float32:
		return canonicalFloat(float64(val))

	case int:
		return canonicalInt(int64(val))
	case int8:
		return canonicalInt(int64(val))
	case int16:
		return canonicalInt(int64(val))
	case int32:
		return canonicalInt(int64(val))
	case int64:
		return canonicalInt(val)
	case uint:
		return canonicalUint(uint64(val))
	case uint8:
		return canonicalUint(uint64(val))
	case uint16:
		return canonicalUint(uint64(val))
	case uint32:
		return canonicalUint(uint64(val))
	case uint64:
		return canonicalUint(val)

	case []Pair:
		m := make(map[string]any, len(val))
		for _, p := range val {
			m[p.Key] = p.Value
		}
		return c.canonicalize(m, depth)

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
			}
			sb.Write(kb)
			sb.WriteByte(':')
			enc, err := c.canonicalize(val[k], depth+1)
			if err != nil {
				return "", err
			}
			sb.WriteString(enc)
		}
		sb.WriteByte('}')
		return sb.String(), nil

	case []any:
		elems := make([]string, len(val))
		for i, e := range val {
			enc, err := c.canonicalize(e, depth+1)
			if err != nil {
				return "", err
			}
			elems[i] = enc
		}
		// permutation invariance: elements are compared by their encoded form
		sort.Strings(elems)
		return "[" + strings.Join(elems, ",") + "]", nil

	default:
		return "", fmt.Errorf("%w: unsupported type %s", ErrNotSerializable, reflect.TypeOf(v))
	}
}

// normalize rewrites a decoded JSON value so that nested maps and arrays
// carry the same ordering guarantees as the encoded form.
func (c *Codec) normalize(v any, depth int) (any, error) {
	if depth > c.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", ErrRecursionLimit, depth)
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			n, err := c.normalize(e, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil

	case []any:
		type sortable struct {
			enc string
			val any
		}
		elems := make([]sortable, len(val))
		for i, e := range val {
			n, err := c.normalize(e, depth+1)
			if err != nil {
				return nil, err
			}
			enc, err := c.canonicalize(n, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = sortable{enc: enc, val: n}
		}
		sort.Slice(elems, func(i, j int) bool { return elems[i].enc < elems[j].enc })
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = e.val
		}
		return out, nil

	default:
		return v, nil
	}
}

func canonicalInt(v int64) (string, error) {
	if v > maxSafeInt || v < -maxSafeInt {
		return "", fmt.Errorf("%w: integer %d exceeds safe range", ErrNotSerializable, v)
	}
	return fmt.Sprintf("%d", v), nil
}

func canonicalUint(v uint64) (string, error) {
	if v > uint64(maxSafeInt) {
		return "", fmt.Errorf("%w: integer %d exceeds safe range", ErrNotSerializable, v)
	}
	return fmt.Sprintf("%d", v), nil
}

func canonicalFloat(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: non-finite number", ErrNotSerializable)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	return string(b), nil
}

func canonicalNumber(n json.Number) (string, error) {
	if i, err := n.Int64(); err == nil {
		return canonicalInt(i)
	}
	f, err := n.Float64()
	if err != nil {
		return "", fmt.Errorf("%w: number %q", ErrNotSerializable, n.String())
	}
	return canonicalFloat(f)
}
