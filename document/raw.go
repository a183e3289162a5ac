// Package document connects the codec to concrete document formats.
//
// The raw adapter works on the generic values produced by encoding/json and
// YAML decoders when they unmarshal into interface{}: strings, nil,
// []interface{} and map[string]interface{} (or map[interface{}]interface{}
// from gopkg.in/yaml.v2). JSON and YAML byte helpers go through it. The node
// adapter works directly on gopkg.in/yaml.v3 nodes.
package document

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/cnabio/regexcodec/codec"
)

// Encode renders v as a raw value suitable for json.Marshal or yaml.Marshal.
func Encode[T any](c codec.Codec[T], v T) (interface{}, error) {
	var raw interface{}
	err := c.Encode(v, rawSink{set: func(v interface{}) { raw = v }})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Decode reads a T from a raw value, as produced by json.Unmarshal or
// yaml.Unmarshal into an interface{}.
func Decode[T any](c codec.Codec[T], raw interface{}) (T, error) {
	return c.Decode(rawSource{v: raw})
}

type rawSink struct {
	set func(v interface{})
}

func (s rawSink) WriteString(str string) error {
	s.set(str)
	return nil
}

func (s rawSink) WriteNone() error {
	s.set(nil)
	return nil
}

func (s rawSink) BeginSequence(n int) (codec.SequenceSink, error) {
	if n < 0 {
		n = 0
	}
	return &rawSequenceSink{parent: s, items: make([]interface{}, 0, n)}, nil
}

func (s rawSink) BeginMap(n int) (codec.MapSink, error) {
	if n < 0 {
		n = 0
	}
	return &rawMapSink{parent: s, entries: make(map[string]interface{}, n)}, nil
}

type rawSequenceSink struct {
	parent rawSink
	items  []interface{}
}

func (s *rawSequenceSink) Element() codec.Sink {
	i := len(s.items)
	s.items = append(s.items, nil)
	return rawSink{set: func(v interface{}) { s.items[i] = v }}
}

func (s *rawSequenceSink) End() error {
	s.parent.set(s.items)
	return nil
}

type rawMapSink struct {
	parent  rawSink
	entries map[string]interface{}
}

func (s *rawMapSink) Entry(key string) codec.Sink {
	return rawSink{set: func(v interface{}) { s.entries[key] = v }}
}

func (s *rawMapSink) End() error {
	s.parent.set(s.entries)
	return nil
}

type rawSource struct {
	v interface{}
}

func (s rawSource) IsNone() bool {
	return s.v == nil
}

func (s rawSource) ReadString() (string, error) {
	str, ok := s.v.(string)
	if !ok {
		return "", mismatch("a string", s.v)
	}
	return str, nil
}

func (s rawSource) ReadSequence() (codec.SequenceSource, error) {
	switch items := s.v.(type) {
	case []interface{}:
		return &rawSequenceSource{items: items}, nil
	case []string:
		converted := make([]interface{}, len(items))
		for i, item := range items {
			converted[i] = item
		}
		return &rawSequenceSource{items: converted}, nil
	default:
		return nil, mismatch("a sequence", s.v)
	}
}

func (s rawSource) ReadMap() (codec.MapSource, error) {
	entries := map[string]interface{}{}
	switch m := s.v.(type) {
	case map[string]interface{}:
		entries = m
	case map[string]string:
		for k, v := range m {
			entries[k] = v
		}
	case map[interface{}]interface{}:
		for k, v := range m {
			key := keyString(k)
			if _, dup := entries[key]; dup {
				return nil, errors.Errorf("duplicate map key %q", key)
			}
			entries[key] = v
		}
	default:
		return nil, mismatch("a map", s.v)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &rawMapSource{keys: keys, entries: entries}, nil
}

type rawSequenceSource struct {
	items []interface{}
	pos   int
}

func (s *rawSequenceSource) Len() int {
	return len(s.items)
}

func (s *rawSequenceSource) Next() (codec.Source, bool) {
	if s.pos >= len(s.items) {
		return nil, false
	}
	v := s.items[s.pos]
	s.pos++
	return rawSource{v: v}, true
}

// rawMapSource walks entries in sorted key order so that the first failing
// entry is the same on every run.
type rawMapSource struct {
	keys    []string
	entries map[string]interface{}
	pos     int
}

func (s *rawMapSource) Len() int {
	return len(s.keys)
}

func (s *rawMapSource) Next() (string, codec.Source, bool) {
	if s.pos >= len(s.keys) {
		return "", nil, false
	}
	k := s.keys[s.pos]
	s.pos++
	return k, rawSource{v: s.entries[k]}, true
}

// keyString renders a yaml.v2 map key. Non-string scalar keys such as
// integers are accepted and printed; two keys that print the same, like 1
// and "1", are rejected by ReadMap.
func keyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func mismatch(want string, got interface{}) error {
	if got == nil {
		return errors.Errorf("expected %s, got null", want)
	}
	return errors.Errorf("expected %s, got %T", want, got)
}
