// Package exec implements the statement dispatcher and control-flow engine
// from spec.md §4.4: sequential execution, if/else skip, for/next with a
// bounded loop stack, goto, gosub/return, and end. It is grounded on
// main.c's run_chunk/fn_for/fn_next/fn_gosub/fn_if, with gosub/return
// reframed (per spec.md §9's own preferred alternative) from the original's
// recursive re-entry into an explicit return-address stack, shaped after
// the teacher's callEngine.frames/pushFrame/popFrame in
// internal/engine/interpreter/interpreter.go.
package exec

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/chunkstore"
	"github.com/nanobasic/nanobasic/internal/eval"
	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/nanobasic/nanobasic/internal/token"
	"github.com/nanobasic/nanobasic/internal/vartable"
)

// DefaultLoopDepth is the design-default for/next stack depth, spec.md §3.
const DefaultLoopDepth = 8

// DefaultGosubDepth bounds the explicit gosub return-address stack. The
// original C recursed through the host call stack and never checked this;
// the explicit-stack reframing spec.md §9 prefers makes the bound (and the
// StackOverflow error it raises) natural to add.
const DefaultGosubDepth = 32

// loopFrame is one entry of the for/next stack: the iterator's slot, the
// terminal and step values, and the arena offset to jump back to at next.
type loopFrame struct {
	varSlot  int
	terminal float64
	step     float64
	ptrStart int
}

// Engine drives sequential execution of the tokens stored in an arena,
// dispatching one statement at a time.
type Engine struct {
	Arena *arena.Arena
	Vars  *vartable.Table
	Eval  *eval.Evaluator
	Out   io.Writer
	Trace io.Writer // optional; nil means no tracing

	LoopDepth  int
	GosubDepth int

	running    bool
	loopStack  []loopFrame
	gosubStack []int
}

// NewEngine constructs an Engine over the given shared arena/vartable/eval
// context, writing print output to out, with the default for/next and
// gosub stack depths.
func NewEngine(a *arena.Arena, vars *vartable.Table, ev *eval.Evaluator, out io.Writer) *Engine {
	return &Engine{
		Arena:      a,
		Vars:       vars,
		Eval:       ev,
		Out:        out,
		LoopDepth:  DefaultLoopDepth,
		GosubDepth: DefaultGosubDepth,
	}
}

// Running reports whether a `run` is currently in progress.
func (e *Engine) Running() bool { return e.running }

// Run begins sequential execution from arena offset 0 (spec.md §4.4's
// `run` statement), returning once `end` is dispatched, the program falls
// off the end of the stored chunks, or an error is raised (propagated to
// the caller via interrors' panic/recover boundary, not as a return value
// here — Engine methods are only ever driven from inside that boundary).
func (e *Engine) Run() {
	interrors.RaiseIf(e.running, interrors.NestedRun)
	e.running = true
	e.loopStack = e.loopStack[:0]
	e.gosubStack = e.gosubStack[:0]
	defer func() { e.running = false }()

	e.Arena.SetCur(0)
	for e.running {
		if e.Arena.Cur() >= e.Arena.ProgramEnd() {
			return
		}
		e.dispatch()
	}
}

// RunOne dispatches exactly one statement at the current cursor, used by
// `if <true> then <statement>` to run a single inline statement.
func (e *Engine) RunOne() {
	e.dispatch()
}

// RunImmediate dispatches statements at the current cursor until an EOF
// token is consumed, for an unnumbered line executed directly rather than
// stored as a chunk (spec.md §4.1's "otherwise tokenization targets a
// scratch region which is executed immediately").
func (e *Engine) RunImmediate() {
	for {
		if e.Arena.NextIs(token.EOF) {
			return
		}
		e.dispatch()
	}
}

// dispatch recognizes the statement head token at the cursor and executes
// it, advancing the cursor past whatever it consumed.
func (e *Engine) dispatch() {
	a := e.Arena
	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "[%04d] %s\n", a.Cur(), a.CurTag())
	}
	switch {
	case a.CurIs(token.Chunk):
		a.GetChunkHeader()

	case a.NextIs(token.Print):
		e.fnPrint()

	case a.NextIs(token.Run):
		// Run leaves the cursor wherever the program stopped; put it back
		// so the immediate line resumes after its own `run` token.
		save := a.Cur()
		e.Run()
		a.SetCur(save)

	case a.NextIs(token.Goto):
		e.fnGoto()

	case a.NextIs(token.Gosub):
		e.fnGosub()

	case a.NextIs(token.Return):
		e.fnReturn()

	case a.NextIs(token.For):
		e.fnFor()

	case a.NextIs(token.Next):
		e.fnNext()

	case a.NextIs(token.If):
		e.fnIf()

	case a.NextIs(token.Else):
		e.fnElse()

	case a.NextIs(token.Colon):
		// statement separator; nothing to do.

	case a.NextIs(token.End):
		e.running = false

	case a.NextIs(token.EOF):
		// end of this line's tokens; the outer Run loop continues into
		// whatever chunk follows.

	default:
		e.Eval.Expr()
	}
}

func (e *Engine) fnPrint() {
	a := e.Arena
	for {
		if a.CurIs(token.Str) {
			io.WriteString(e.Out, a.GetStr())
		} else {
			v := e.Eval.Expr()
			io.WriteString(e.Out, strconv.FormatFloat(v, 'g', 14, 64))
			io.WriteString(e.Out, " ")
		}
		if !a.NextIs(token.Semi) {
			break
		}
	}
	io.WriteString(e.Out, "\n")
}

func (e *Engine) fnGoto() {
	line := int(e.Arena.GetLit())
	ptr := chunkstore.FindLine(e.Arena, line)
	e.Arena.SetCur(ptr)
}

func (e *Engine) fnGosub() {
	line := int(e.Arena.GetLit())
	ptr := chunkstore.FindLine(e.Arena, line)
	interrors.RaiseIf(len(e.gosubStack) >= e.GosubDepth, interrors.StackOverflow)
	e.gosubStack = append(e.gosubStack, e.Arena.Cur())
	e.Arena.SetCur(ptr)
}

func (e *Engine) fnReturn() {
	if len(e.gosubStack) == 0 {
		// No enclosing gosub: mirrors the original's recursive model,
		// where a `return` at the outermost run() unwinds the whole
		// execution engine rather than any particular call.
		e.running = false
		return
	}
	n := len(e.gosubStack) - 1
	addr := e.gosubStack[n]
	e.gosubStack = e.gosubStack[:n]
	e.Arena.SetCur(addr)
}

func (e *Engine) fnFor() {
	interrors.RaiseIf(len(e.loopStack) >= e.LoopDepth, interrors.NextWithoutFor)

	varSlot := e.Arena.GetVarSlot()
	e.Arena.Expect(token.Assign)
	initial := e.Eval.Expr()
	e.Vars.SetValue(varSlot, initial)
	e.Arena.Expect(token.To)
	terminal := e.Eval.Expr()
	step := 1.0
	if e.Arena.NextIs(token.Step) {
		step = e.Eval.Expr()
	}

	e.loopStack = append(e.loopStack, loopFrame{
		varSlot:  varSlot,
		terminal: terminal,
		step:     step,
		ptrStart: e.Arena.Cur(),
	})
}

func (e *Engine) fnNext() {
	interrors.RaiseIf(len(e.loopStack) == 0, interrors.NextWithoutFor)
	n := len(e.loopStack) - 1
	frame := &e.loopStack[n]
	slot := e.Vars.Slot(frame.varSlot)
	slot.Num += frame.step

	continues := (frame.step > 0 && slot.Num <= frame.terminal) ||
		(frame.step < 0 && slot.Num >= frame.terminal)
	if continues {
		e.Arena.SetCur(frame.ptrStart)
	} else {
		e.loopStack = e.loopStack[:n]
	}
}

func (e *Engine) fnIf() {
	a := e.Arena
	v := e.Eval.Expr()
	a.Expect(token.Then)
	if v != 0 {
		e.RunOne()
	} else {
		e.skipToElseOrEnd()
		if a.NextIs(token.Else) {
			// continue: the next dispatch picks up the else-branch body.
		}
	}
}

func (e *Engine) fnElse() {
	e.skipToEnd()
}

// skipToElseOrEnd discards tokens until EOF, `else`, or `:`, without
// interpreting them, per spec.md §4.4's `if` case.
func (e *Engine) skipToElseOrEnd() {
	a := e.Arena
	for !a.CurIs(token.EOF) && !a.CurIs(token.Else) && !a.CurIs(token.Colon) {
		a.Skip()
	}
}

// skipToEnd discards tokens until EOF or `:`, without interpreting them,
// matching main.c's fn_else (an `else` reached without a preceding `if`
// taking its false branch just discards its own body).
func (e *Engine) skipToEnd() {
	a := e.Arena
	for !a.CurIs(token.EOF) && !a.CurIs(token.Colon) {
		a.Skip()
	}
}
