package nanobasic

import "github.com/nanobasic/nanobasic/internal/interrors"

// ErrorKind is the closed set of runtime error kinds a line can fail with
// (spec.md §7). It is re-exported here so embedders can switch on it
// without importing internal/interrors directly.
type ErrorKind = interrors.Kind

// The closed set of error kinds, per spec.md §7. DivisionByZero and
// StackOverflow are reserved in the original source but wired here (see
// DESIGN.md's Open Question decisions); NextWithoutFor is also raised when
// `for` is attempted with a full loop stack, matching main.c's reuse of
// the same error kind for both cases.
const (
	ErrSyntaxError        = interrors.SyntaxError
	ErrTooManyVariables   = interrors.TooManyVariables
	ErrUnterminatedString = interrors.UnterminatedString
	ErrMemoryFull         = interrors.MemoryFull
	ErrExpected           = interrors.Expected
	ErrDivisionByZero     = interrors.DivisionByZero
	ErrNestedRun          = interrors.NestedRun
	ErrLineNotFound       = interrors.LineNotFound
	ErrStackOverflow      = interrors.StackOverflow
	ErrNextWithoutFor     = interrors.NextWithoutFor
	ErrAssertFailed       = interrors.AssertFailed
	ErrNotAnLvalue        = interrors.NotAnLvalue
)

// RuntimeError is the concrete error type HandleLine/Run return on
// failure; use errors.As to recover the Kind and Context.
type RuntimeError = interrors.Error
