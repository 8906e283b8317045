package nanobasic

import (
	"io"

	"github.com/nanobasic/nanobasic/internal/exec"
	"github.com/nanobasic/nanobasic/internal/vartable"
)

// config holds the construction-time settings an embedder can adjust via
// Option, following the teacher's functional-options shape (see
// wazero.RuntimeConfig/config.go).
type config struct {
	arenaSize  int
	varCap     int
	loopDepth  int
	gosubDepth int
	out        io.Writer
	trace      io.Writer
}

func defaultConfig() config {
	return config{
		arenaSize:  2048,
		varCap:     vartable.DefaultCapacity,
		loopDepth:  exec.DefaultLoopDepth,
		gosubDepth: exec.DefaultGosubDepth,
		out:        io.Discard,
	}
}

// Option configures an Interpreter at construction time.
type Option func(*config)

// WithArenaSize overrides the default 2048-byte token/string arena.
func WithArenaSize(bytes int) Option {
	return func(c *config) { c.arenaSize = bytes }
}

// WithVarCapacity overrides the default 32-slot variable table.
func WithVarCapacity(n int) Option {
	return func(c *config) { c.varCap = n }
}

// WithLoopDepth overrides the default for/next stack depth of 8.
func WithLoopDepth(n int) Option {
	return func(c *config) { c.loopDepth = n }
}

// WithGosubDepth overrides the default gosub/return address stack depth.
func WithGosubDepth(n int) Option {
	return func(c *config) { c.gosubDepth = n }
}

// WithOutput directs print output to w instead of discarding it. Host
// functions (such as the builtin putc/plot) write to their own writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithTrace enables debug tracing (token offsets and executed statements)
// to w. Not part of the observable language contract (spec.md §6); purely
// a diagnostic aid for embedders.
func WithTrace(w io.Writer) Option {
	return func(c *config) { c.trace = w }
}
