package document

import (
	"encoding/json"

	cjson "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/cnabio/regexcodec/codec"
)

// MarshalJSON encodes v as JSON.
func MarshalJSON[T any](c codec.Codec[T], v T) ([]byte, error) {
	raw, err := Encode(c, v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// MarshalCanonicalJSON encodes v as canonical JSON (RFC 8785), giving the
// same bytes for equal values regardless of map iteration order.
func MarshalCanonicalJSON[T any](c codec.Codec[T], v T) ([]byte, error) {
	// First marshal to json, then convert that to canonical json
	d, err := MarshalJSON(c, v)
	if err != nil {
		return nil, err
	}
	return cjson.Transform(d)
}

// UnmarshalJSON decodes a T from JSON.
func UnmarshalJSON[T any](c codec.Codec[T], data []byte) (T, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		var zero T
		return zero, err
	}
	return Decode(c, raw)
}
