// Package engine defines the boundary between the codec and the regular
// expression engines that compile pattern source text.
//
// Every engine here compiles with its default settings. None of them bound
// the cost of matching: regexp2 in particular is a backtracking engine, so a
// pattern read from an untrusted document can take exponential time to match.
// Callers that accept patterns from untrusted input must vet them before
// handing them to Compile.
package engine

import (
	"regexp"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
)

// Engine compiles source text into a pattern of type P and recovers the
// exact source text from a compiled pattern.
type Engine[P any] interface {
	// Compile parses expr, returning the engine's own error on bad syntax.
	Compile(expr string) (P, error)
	// Source returns the text p was compiled from.
	Source(p P) string
}

// Std is the Go standard library engine (RE2 syntax).
type Std struct{}

func (Std) Compile(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(expr)
}

func (Std) Source(p *regexp.Regexp) string {
	return p.String()
}

// POSIX is the standard library engine restricted to POSIX ERE syntax with
// leftmost-longest matching.
type POSIX struct{}

func (POSIX) Compile(expr string) (*regexp.Regexp, error) {
	return regexp.CompilePOSIX(expr)
}

func (POSIX) Source(p *regexp.Regexp) string {
	return p.String()
}

// Coregex compiles with github.com/coregx/coregex, which accepts the same
// syntax as the standard library.
type Coregex struct{}

func (Coregex) Compile(expr string) (*coregex.Regex, error) {
	return coregex.Compile(expr)
}

func (Coregex) Source(p *coregex.Regex) string {
	return p.String()
}

// Regexp2 compiles with github.com/dlclark/regexp2 (.NET/Perl syntax with
// lookaround and backreferences). No MatchTimeout is set on the compiled
// pattern.
type Regexp2 struct {
	// Options are passed to regexp2.Compile unchanged.
	Options regexp2.RegexOptions
}

func (e Regexp2) Compile(expr string) (*regexp2.Regexp, error) {
	return regexp2.Compile(expr, e.Options)
}

func (Regexp2) Source(p *regexp2.Regexp) string {
	return p.String()
}

var (
	_ Engine[*regexp.Regexp]  = Std{}
	_ Engine[*regexp.Regexp]  = POSIX{}
	_ Engine[*coregex.Regex]  = Coregex{}
	_ Engine[*regexp2.Regexp] = Regexp2{}
)
