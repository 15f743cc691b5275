package termc

import (
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into an input line.
type Span struct {
	Start int
	End   int
}

// ErrorKind classifies a Diagnostic. ErrorKind values are errors themselves,
// so errors.Is(err, KindArity) reports whether err is an arity diagnostic.
type ErrorKind int8

const (
	kindNone ErrorKind = iota
	// KindSyntax is a malformed input: an unknown character, a missing or
	// unexpected token, or a malformed definition header.
	KindSyntax
	// KindUndefined is an unknown constant or function name.
	KindUndefined
	// KindArity is a call with the wrong number of arguments.
	KindArity
	// KindDomain is a mathematical singularity, e.g. division by zero or
	// the logarithm of zero.
	KindDomain
	// KindRecursion is a user function call nested past the depth limit.
	KindRecursion
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindUndefined:
		return "undefined symbol"
	case KindArity:
		return "arity mismatch"
	case KindDomain:
		return "domain error"
	case KindRecursion:
		return "recursion limit exceeded"
	default:
		return "error"
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Diagnostic is an error anchored to a span of the input line. Every error
// the lexer, parser, and evaluator produce for bad input is a *Diagnostic.
type Diagnostic struct {
	// Kind classifies the error.
	Kind ErrorKind
	// Msg is the user-facing message, e.g. `Expected symbol ")".`.
	Msg string
	// Span is the part of the input the error points at.
	Span Span
	// Err is the underlying cause, if any, e.g. a *DomainError.
	Err error

	// infunc is set once Msg names the user function the error arose in.
	infunc bool
}

func (d *Diagnostic) Error() string {
	return d.Msg
}

// Unwrap returns the underlying cause.
func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Is reports whether target is the diagnostic's kind.
func (d *Diagnostic) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == d.Kind
}

// Render produces the two-line display of a diagnostic: the input line, then
// a caret under the start of the span followed by tildes for the rest of it.
// Columns count runes so that the caret lines up under non-ASCII input.
func Render(d *Diagnostic, line string) string {
	start := clamp(d.Span.Start, 0, len(line))
	end := clamp(d.Span.End, start, len(line))
	pad := utf8.RuneCountInString(line[:start])
	width := utf8.RuneCountInString(line[start:end])
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	b.Grow(len(line) + pad + width + 1)
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", width-1))
	return b.String()
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
