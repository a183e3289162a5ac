package codec

import (
	"errors"
	"fmt"
)

// ErrNilPattern is returned when a scalar pattern to be written is nil.
// Use Optional for patterns that may be absent.
var ErrNilPattern = errors.New("cannot serialize a nil regular expression")

// CompileError reports a source string read from a document that the engine
// refused to compile.
type CompileError struct {
	// Source is the pattern text exactly as it appeared in the document.
	Source string
	// Err is the engine's diagnostic.
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
