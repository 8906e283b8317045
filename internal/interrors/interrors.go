// Package interrors defines the closed set of runtime error kinds the
// interpreter can raise, and the panic/recover boundary used to propagate
// them out of deeply nested evaluation without threading an error return
// through every call in the hot path.
package interrors

import "fmt"

// Kind is one of the closed set of runtime error kinds a line can fail with.
type Kind uint8

const (
	SyntaxError Kind = iota
	TooManyVariables
	UnterminatedString
	MemoryFull
	Expected
	DivisionByZero
	NestedRun
	LineNotFound
	StackOverflow
	NextWithoutFor
	AssertFailed
	NotAnLvalue
)

var messages = [...]string{
	SyntaxError:         "syntax error",
	TooManyVariables:    "too many variables",
	UnterminatedString:  "unterminated string",
	MemoryFull:          "memory full",
	Expected:            "expected",
	DivisionByZero:      "division by zero",
	NestedRun:           "nested run",
	LineNotFound:        "line not found",
	StackOverflow:       "stack overflow",
	NextWithoutFor:      "next without for",
	AssertFailed:        "assert failed",
	NotAnLvalue:         "not an lvalue",
}

func (k Kind) String() string {
	if int(k) >= len(messages) {
		return "unknown error"
	}
	return messages[k]
}

// Error is the error type returned to embedders. It carries the closed Kind
// plus an optional piece of context (the token name expected, the trailing
// input that failed to lex, etc).
type Error struct {
	Kind    Kind
	Context string
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Context)
}

// New constructs an *Error for the given kind with no context.
func New(k Kind) *Error { return &Error{Kind: k} }

// Newf constructs an *Error for the given kind with formatted context.
func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Context: fmt.Sprintf(format, args...)}
}

// signal is the panic payload used to unwind from anywhere in tokenizing,
// evaluating, or dispatching back to the single recover point owned by the
// embedding package. It is unexported: callers outside this package can
// only ever observe the resulting error, never the panic itself.
type signal struct{ err *Error }

// Raise performs the non-local jump: it panics with k (plus optional
// formatted context), to be recovered by Recover at the call boundary.
func Raise(k Kind) {
	panic(signal{New(k)})
}

// Raisef is Raise with formatted context.
func Raisef(k Kind, format string, args ...any) {
	panic(signal{Newf(k, format, args...)})
}

// RaiseIf calls Raise(k) if cond is true. It mirrors the original source's
// error_if(exp, e, msg) macro.
func RaiseIf(cond bool, k Kind) {
	if cond {
		Raise(k)
	}
}

// Recover must itself be the deferred call (defer interrors.Recover(&err))
// at the single boundary an embedder drives execution from (e.g.
// Interpreter.HandleLine); wrapped in another deferred function, its
// recover() would see nothing.
// It assigns to *errp when the recovered value is one of this package's
// signals, and re-panics anything else (a genuine programming bug should
// not be swallowed as a user-facing diagnostic).
func Recover(errp *error) {
	v := recover()
	if v == nil {
		return
	}
	sig, ok := v.(signal)
	if !ok {
		panic(v)
	}
	*errp = sig.err
}
