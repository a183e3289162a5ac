// Package serde holds patterns, and containers of patterns, as values that
// marshal themselves to and from JSON, YAML and gob.
//
//	type Filter struct {
//		Include serde.PatternList     `json:"include" yaml:"include"`
//		Exclude serde.OptionalPattern `json:"exclude" yaml:"exclude"`
//	}
//
// Patterns are compiled with the engine's default settings; do not unmarshal
// untrusted documents without vetting the patterns they contain.
package serde

import (
	"regexp"

	"github.com/cnabio/regexcodec/codec"
	"github.com/cnabio/regexcodec/document"
	"github.com/cnabio/regexcodec/engine"
)

// Shape selects the codec for a Serde value. Implementations are empty
// structs so that the shape is fixed by the type alone.
type Shape[T any] interface {
	Codec() codec.Codec[T]
}

// Serde wraps a value of type T and marshals it with the codec chosen by S.
type Serde[T any, S Shape[T]] struct {
	Value T
}

// Get returns the wrapped value.
func (s Serde[T, S]) Get() T {
	return s.Value
}

func (s Serde[T, S]) shapeCodec() codec.Codec[T] {
	var shape S
	return shape.Codec()
}

func (s Serde[T, S]) MarshalJSON() ([]byte, error) {
	return document.MarshalJSON(s.shapeCodec(), s.Value)
}

func (s *Serde[T, S]) UnmarshalJSON(data []byte) error {
	v, err := document.UnmarshalJSON(s.shapeCodec(), data)
	if err != nil {
		return err
	}
	s.Value = v
	return nil
}

func (s Serde[T, S]) MarshalYAML() (interface{}, error) {
	return document.Encode(s.shapeCodec(), s.Value)
}

func (s *Serde[T, S]) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := document.DecodeYAML(s.shapeCodec(), unmarshal)
	if err != nil {
		return err
	}
	s.Value = v
	return nil
}

// MarshalBinary encodes the value as canonical JSON, which lets gob carry
// any shape.
func (s Serde[T, S]) MarshalBinary() ([]byte, error) {
	return document.MarshalCanonicalJSON(s.shapeCodec(), s.Value)
}

// UnmarshalBinary modifies the receiver so it must take a pointer receiver.
func (s *Serde[T, S]) UnmarshalBinary(data []byte) error {
	return s.UnmarshalJSON(data)
}

// Scalar is the shape of a single standard library pattern.
type Scalar struct{}

func (Scalar) Codec() codec.Codec[*regexp.Regexp] {
	return codec.Scalar[*regexp.Regexp](engine.Std{})
}

// Optional is the shape of a pattern that may be nil.
type Optional struct{}

func (Optional) Codec() codec.Codec[*regexp.Regexp] {
	return codec.Optional(Scalar{}.Codec())
}

// List is the shape of an ordered list of patterns.
type List struct{}

func (List) Codec() codec.Codec[[]*regexp.Regexp] {
	return codec.Sequence(Scalar{}.Codec())
}

// Map is the shape of a string-keyed map of patterns.
type Map struct{}

func (Map) Codec() codec.Codec[map[string]*regexp.Regexp] {
	return codec.Mapping[string](Scalar{}.Codec())
}

type (
	Pattern         = Serde[*regexp.Regexp, Scalar]
	OptionalPattern = Serde[*regexp.Regexp, Optional]
	PatternList     = Serde[[]*regexp.Regexp, List]
	PatternMap      = Serde[map[string]*regexp.Regexp, Map]
)
