// Package codec converts compiled regular expressions, and sequences, maps
// and optional values of them, to and from their source text through an
// abstract Sink and Source.
//
// Only the source string of a pattern is ever written. Reading compiles each
// string with the supplied engine and stops at the first one that fails,
// returning a *CompileError wrapped with its location in the document:
//
//	c := codec.Mapping[string](codec.Sequence(codec.Scalar[*regexp.Regexp](engine.Std{})))
//	rules, err := codec.Deserialize(c, src)
//	var cerr *codec.CompileError
//	if errors.As(err, &cerr) {
//		// cerr.Source is the offending pattern
//	}
//
// Patterns are compiled with the engine's default settings. Nothing here
// guards against patterns that are expensive to match; do not decode
// untrusted documents without vetting their patterns first.
package codec

import (
	"github.com/pkg/errors"

	"github.com/cnabio/regexcodec/engine"
)

// Codec converts values of type T. Build one from Scalar and wrap it with
// Optional, Sequence and Mapping to match the declared type of a field.
type Codec[T any] struct {
	encode func(v T, s Sink) error
	decode func(src Source) (T, error)
	schema func() map[string]interface{}
}

// Encode writes v to s.
func (c Codec[T]) Encode(v T, s Sink) error {
	return c.encode(v, s)
}

// Decode reads a T from src. On error the zero T is returned.
func (c Codec[T]) Decode(src Source) (T, error) {
	return c.decode(src)
}

// Schema returns a JSON Schema fragment describing the document shape this
// codec reads and writes.
func (c Codec[T]) Schema() map[string]interface{} {
	return c.schema()
}

// Serialize writes v to s using c.
func Serialize[T any](c Codec[T], v T, s Sink) error {
	return c.Encode(v, s)
}

// Deserialize reads a value from src using c.
func Deserialize[T any](c Codec[T], src Source) (T, error) {
	return c.Decode(src)
}

// Scalar handles a single pattern compiled by e.
func Scalar[P comparable](e engine.Engine[P]) Codec[P] {
	return Codec[P]{
		encode: func(p P, s Sink) error {
			var zero P
			if p == zero {
				return ErrNilPattern
			}
			return s.WriteString(e.Source(p))
		},
		decode: func(src Source) (P, error) {
			var zero P
			expr, err := src.ReadString()
			if err != nil {
				return zero, err
			}
			p, err := e.Compile(expr)
			if err != nil {
				return zero, &CompileError{Source: expr, Err: err}
			}
			return p, nil
		},
		schema: func() map[string]interface{} {
			return map[string]interface{}{"type": "string"}
		},
	}
}

// Optional treats the zero T (a nil pattern) as absent. Absent values are
// written with WriteNone, and a none marker reads back as the zero T without
// consulting c.
func Optional[T comparable](c Codec[T]) Codec[T] {
	return Codec[T]{
		encode: func(v T, s Sink) error {
			var zero T
			if v == zero {
				return s.WriteNone()
			}
			return c.encode(v, s)
		},
		decode: func(src Source) (T, error) {
			if src.IsNone() {
				var zero T
				return zero, nil
			}
			return c.decode(src)
		},
		schema: func() map[string]interface{} {
			return map[string]interface{}{
				"anyOf": []interface{}{
					map[string]interface{}{"type": "null"},
					c.schema(),
				},
			}
		},
	}
}

// Sequence handles an ordered list. A nil slice is written as an empty
// sequence and an empty sequence reads back as an empty, non-nil slice.
func Sequence[T any](c Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		encode: func(v []T, s Sink) error {
			seq, err := s.BeginSequence(len(v))
			if err != nil {
				return err
			}
			for i, el := range v {
				if err := c.encode(el, seq.Element()); err != nil {
					return errors.Wrapf(err, "sequence element %d", i)
				}
			}
			return seq.End()
		},
		decode: func(src Source) ([]T, error) {
			seq, err := src.ReadSequence()
			if err != nil {
				return nil, err
			}
			n := seq.Len()
			if n < 0 {
				n = 0
			}
			out := make([]T, 0, n)
			for i := 0; ; i++ {
				elem, ok := seq.Next()
				if !ok {
					break
				}
				v, err := c.decode(elem)
				if err != nil {
					return nil, errors.Wrapf(err, "sequence element %d", i)
				}
				out = append(out, v)
			}
			return out, nil
		},
		schema: func() map[string]interface{} {
			return map[string]interface{}{
				"type":  "array",
				"items": c.schema(),
			}
		},
	}
}

// Mapping handles a string-keyed map. Entries are written in Go map
// iteration order; formats that need a stable order sort on output. When a
// document repeats a key, the later entry replaces the earlier one.
func Mapping[K ~string, V any](c Codec[V]) Codec[map[K]V] {
	return Codec[map[K]V]{
		encode: func(v map[K]V, s Sink) error {
			m, err := s.BeginMap(len(v))
			if err != nil {
				return err
			}
			for k, val := range v {
				if err := c.encode(val, m.Entry(string(k))); err != nil {
					return errors.Wrapf(err, "map key %q", string(k))
				}
			}
			return m.End()
		},
		decode: func(src Source) (map[K]V, error) {
			m, err := src.ReadMap()
			if err != nil {
				return nil, err
			}
			n := m.Len()
			if n < 0 {
				n = 0
			}
			out := make(map[K]V, n)
			for {
				key, value, ok := m.Next()
				if !ok {
					break
				}
				v, err := c.decode(value)
				if err != nil {
					return nil, errors.Wrapf(err, "map key %q", key)
				}
				out[K(key)] = v
			}
			return out, nil
		},
		schema: func() map[string]interface{} {
			return map[string]interface{}{
				"type":                 "object",
				"additionalProperties": c.schema(),
			}
		},
	}
}
