package serde

import (
	"regexp"

	"github.com/cnabio/regexcodec/codec"
	"github.com/cnabio/regexcodec/document"
	"github.com/cnabio/regexcodec/engine"
)

// Regexp is a standard library pattern that marshals as its source text.
// The embedded *regexp.Regexp gives direct access to the matching methods.
type Regexp struct {
	*regexp.Regexp
}

// MustCompile is like regexp.MustCompile but returns a Regexp.
func MustCompile(expr string) Regexp {
	return Regexp{Regexp: regexp.MustCompile(expr)}
}

func scalar() codec.Codec[*regexp.Regexp] {
	return codec.Scalar[*regexp.Regexp](engine.Std{})
}

func (r Regexp) MarshalText() ([]byte, error) {
	raw, err := document.Encode(scalar(), r.Regexp)
	if err != nil {
		return nil, err
	}
	return []byte(raw.(string)), nil
}

func (r *Regexp) UnmarshalText(data []byte) error {
	p, err := document.Decode(scalar(), string(data))
	if err != nil {
		return err
	}
	r.Regexp = p
	return nil
}

func (r Regexp) MarshalBinary() ([]byte, error) {
	return r.MarshalText()
}

// UnmarshalBinary modifies the receiver so it must take a pointer receiver.
func (r *Regexp) UnmarshalBinary(data []byte) error {
	return r.UnmarshalText(data)
}

func (r Regexp) MarshalYAML() (interface{}, error) {
	return document.Encode(scalar(), r.Regexp)
}

func (r *Regexp) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p, err := document.DecodeYAML(scalar(), unmarshal)
	if err != nil {
		return err
	}
	r.Regexp = p
	return nil
}
