package codec

import (
	"github.com/hashicorp/go-multierror"

	"github.com/cnabio/regexcodec/engine"
)

// ValidateAll compiles every expression and reports all of the failures
// together, one *CompileError per bad expression, in input order. It returns
// nil when every expression compiles.
//
// Decoding stops at the first bad pattern; ValidateAll is for reporting a
// whole list to a person fixing a document.
func ValidateAll[P any](e engine.Engine[P], exprs ...string) error {
	var result *multierror.Error
	for _, expr := range exprs {
		if _, err := e.Compile(expr); err != nil {
			result = multierror.Append(result, &CompileError{Source: expr, Err: err})
		}
	}
	return result.ErrorOrNil()
}
