// Package hostfunc defines the contract a native function registered by
// the embedder must satisfy to be callable from expressions, per spec.md
// §4.5/§9: the function consumes its own arguments directly from the
// current token stream via the Context it is given, rather than receiving
// a pre-evaluated argument vector. This keeps the expression parser itself
// free of any notion of argument lists, mirroring how wazero's
// wasm.CallGoFunc hands a Go function the already-positioned operand
// stack instead of marshaling arguments on its behalf.
package hostfunc

// Context is the slice of evaluator behavior a host function needs to pull
// its own arguments out of the stream it was invoked from.
type Context interface {
	// Expr evaluates one expression at precedence 0 from the current
	// position and returns its value.
	Expr() float64

	// ExpectComma consumes a ',' token, raising Expected if absent. Used
	// by multi-argument functions like plot(x, y, color).
	ExpectComma()
}

// Func is a registered host function's implementation. The number and
// shape of arguments it consumes from ctx is entirely the function's own
// contract; the evaluator only guarantees the surrounding '(' and ')'.
type Func func(ctx Context) float64
