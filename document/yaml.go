package document

import (
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/cnabio/regexcodec/codec"
)

// MarshalYAML encodes v as YAML.
func MarshalYAML[T any](c codec.Codec[T], v T) ([]byte, error) {
	raw, err := Encode(c, v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(raw)
}

// UnmarshalYAML decodes a T from YAML. A document that is empty or holds
// only "null" reads as the none marker. Plain scalars such as 200 or yes are
// read as the text written in the document.
func UnmarshalYAML[T any](c codec.Codec[T], data []byte) (T, error) {
	var y yamlValue
	if err := yaml.Unmarshal(data, &y); err != nil {
		var zero T
		return zero, err
	}
	return Decode(c, y.v)
}

// DecodeYAML decodes a T through the unmarshal callback that yaml.v2 and
// yaml.v3 hand to an UnmarshalYAML method. Scalars are read as in
// UnmarshalYAML.
func DecodeYAML[T any](c codec.Codec[T], unmarshal func(interface{}) error) (T, error) {
	var y yamlValue
	if err := y.UnmarshalYAML(unmarshal); err != nil {
		var zero T
		return zero, err
	}
	return Decode(c, y.v)
}

// yamlValue builds the raw tree from YAML, keeping every non-null scalar
// (and every map key) as the string written in the document.
type yamlValue struct {
	v interface{}
}

func (y *yamlValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch m := raw.(type) {
	case nil:
		y.v = nil
	case []interface{}:
		var items []yamlValue
		if err := unmarshal(&items); err != nil {
			return err
		}
		out := make([]interface{}, len(items))
		for i := range items {
			out[i] = items[i].v
		}
		y.v = out
	case map[interface{}]interface{}:
		return y.unmarshalMap(unmarshal, len(m))
	case map[string]interface{}:
		return y.unmarshalMap(unmarshal, len(m))
	default:
		var s string
		if err := unmarshal(&s); err != nil {
			return err
		}
		y.v = s
	}
	return nil
}

// unmarshalMap reads a mapping with string keys. want is the number of keys
// in the typed mapping; fewer string keys means two keys, like 1 and "1",
// have the same text.
func (y *yamlValue) unmarshalMap(unmarshal func(interface{}) error, want int) error {
	var entries map[string]yamlValue
	if err := unmarshal(&entries); err != nil {
		return err
	}
	if len(entries) != want {
		return errors.Errorf("duplicate map key: %d keys have the same text as another key", want-len(entries))
	}
	out := make(map[string]interface{}, len(entries))
	for k, v := range entries {
		out[k] = v.v
	}
	y.v = out
	return nil
}
