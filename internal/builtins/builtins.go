// Package builtins is a reference implementation of the host-function
// contract defined by package hostfunc: the five native functions spec.md
// §4.5 names for tests (rnd, putc, plot, cls, exit), ported from main.c's
// cfunc_list (fn_rnd, fn_putc, fn_plot, fn_cls, fn_exit). These are
// external collaborators per spec.md §1 — an embedder is free to register
// none, some, or entirely different functions — so they live outside the
// core packages and are only wired in by cmd/nanobasic.
package builtins

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/nanobasic/nanobasic/internal/hostfunc"
)

// plotColorCodes mirrors main.c's fn_plot colorcode table, an ANSI
// 8-color foreground palette.
var plotColorCodes = [8]int{30, 34, 32, 36, 31, 35, 33, 37}

// Set bundles the five reference builtins against a given output writer
// and PRNG, ready to register into a variable table.
type Set struct {
	Out io.Writer
	Rnd *rand.Rand
}

// NewSet constructs a Set writing to out, seeded the way main.c's main()
// seeds its PRNG once at process start (from the current time), which is
// why the seed is supplied by the caller rather than computed here: the
// core takes no time-of-day dependency at all (spec.md §4).
func NewSet(out io.Writer, seed int64) *Set {
	return &Set{Out: out, Rnd: rand.New(rand.NewSource(seed))}
}

// Funcs returns the name -> implementation table ready for registration.
func (s *Set) Funcs() map[string]hostfunc.Func {
	return map[string]hostfunc.Func{
		"rnd":  s.rnd,
		"putc": s.putc,
		"plot": s.plot,
		"cls":  s.cls,
		"exit": s.exit,
	}
}

// rnd returns a pseudo-random value in [0, 1), taking no arguments.
func (s *Set) rnd(_ hostfunc.Context) float64 {
	return s.Rnd.Float64()
}

// putc writes one character (its argument's integer code) and returns it.
func (s *Set) putc(ctx hostfunc.Context) float64 {
	c := byte(int(ctx.Expr()))
	s.Out.Write([]byte{c})
	return float64(c)
}

// plot draws a single colored cell at (x, y) using ANSI cursor and SGR
// escapes, matching main.c's fn_plot.
func (s *Set) plot(ctx hostfunc.Context) float64 {
	x := int(ctx.Expr())
	ctx.ExpectComma()
	y := int(ctx.Expr())
	ctx.ExpectComma()
	color := int(ctx.Expr())

	bright := 0
	if color >= 8 {
		bright = 1
	}
	fmt.Fprintf(s.Out, "\033[s\033[%d;%dH", y, x*2)
	fmt.Fprintf(s.Out, "\033[%d;%d;7m  \033[0m\033[u", bright, plotColorCodes[color%8])
	return 0
}

// cls is a no-op placeholder, matching main.c's fn_cls (actual screen
// clearing is the host driver's concern, per spec.md §1).
func (s *Set) cls(_ hostfunc.Context) float64 {
	return 0
}

// exit terminates the process with the given code, matching main.c's
// fn_exit. This is the one builtin that never returns to the caller.
func (s *Set) exit(ctx hostfunc.Context) float64 {
	code := int(ctx.Expr())
	os.Exit(code)
	return 0
}
