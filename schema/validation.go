// Package schema describes pattern documents with JSON Schema and validates
// documents against that description.
package schema

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"github.com/cnabio/regexcodec/codec"
)

// Draft is the JSON Schema dialect of generated schemas.
const Draft = "http://json-schema.org/draft-07/schema#"

// Generate returns the JSON Schema for documents read and written by c.
func Generate[T any](c codec.Codec[T]) map[string]interface{} {
	s := c.Schema()
	s["$schema"] = Draft
	return s
}

// Validate checks that the JSON document has the shape c expects, and
// reports every violation rather than stopping at the first one. It checks
// structure only: strings are not compiled. Decode the document, or use
// codec.ValidateAll, to find patterns with bad syntax.
func Validate[T any](c codec.Codec[T], document []byte) error {
	sl := gojsonschema.NewGoLoader(Generate(c))
	dl := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(sl, dl)
	if err != nil {
		return errors.Wrap(err, "unable to perform validation")
	}
	if result.Valid() {
		return nil
	}

	var merr *multierror.Error
	for _, re := range result.Errors() {
		merr = multierror.Append(merr, errors.Errorf("unable to validate %s, error: %s", re.Field(), re.Description()))
	}
	return merr.ErrorOrNil()
}
