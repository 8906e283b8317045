// Package nanobasic is an embeddable interpreter for a minimal BASIC-like
// language targeting memory-constrained environments, per spec.md. It
// accepts one input line at a time: numbered lines are tokenized into a
// compact chunk and stored, unnumbered lines tokenize into a scratch
// region and execute immediately. The public surface here is the only
// thing an embedder should import; everything under internal/ is the
// engine, following the same split the teacher (tetratelabs/wazero) draws
// between its root package and internal/wasm.
package nanobasic

import (
	"strconv"
	"strings"

	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/chunkstore"
	"github.com/nanobasic/nanobasic/internal/eval"
	"github.com/nanobasic/nanobasic/internal/exec"
	"github.com/nanobasic/nanobasic/internal/hostfunc"
	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/nanobasic/nanobasic/internal/lexer"
	"github.com/nanobasic/nanobasic/internal/token"
	"github.com/nanobasic/nanobasic/internal/vartable"
)

// Interpreter is a single, self-contained interpreter context: one arena,
// one variable table, one execution engine. Nothing here is process-wide
// state (spec.md §9's DESIGN NOTES reframing) — embedders construct as
// many Interpreters as they like, each fully independent.
type Interpreter struct {
	arena *arena.Arena
	vars  *vartable.Table
	eval  *eval.Evaluator
	exec  *exec.Engine
}

// NewInterpreter constructs a ready-to-use Interpreter.
func NewInterpreter(opts ...Option) *Interpreter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	a := arena.New(cfg.arenaSize)
	vars := vartable.New(cfg.varCap)
	ev := &eval.Evaluator{Arena: a, Vars: vars}
	en := exec.NewEngine(a, vars, ev, cfg.out)
	en.LoopDepth = cfg.loopDepth
	en.GosubDepth = cfg.gosubDepth
	en.Trace = cfg.trace

	return &Interpreter{arena: a, vars: vars, eval: ev, exec: en}
}

// HostFunc is a registered host function's implementation, per spec.md
// §4.5: it consumes its own arguments from ctx rather than receiving a
// pre-evaluated argument vector.
type HostFunc = hostfunc.Func

// HostFuncContext is the slice of evaluator behavior a HostFunc needs to
// pull its own arguments out of the expression stream it was invoked from.
type HostFuncContext = hostfunc.Context

// RegisterHostFunc registers a native function under name, claiming a
// variable slot for it (spec.md §4.5). It must be called before any line
// referencing name is tokenized.
func (it *Interpreter) RegisterHostFunc(name string, fn HostFunc) {
	it.vars.RegisterHostFunc(name, fn)
}

// HandleLine tokenizes and, for unnumbered lines, immediately executes one
// line of source text (without a trailing newline). Numbered lines are
// stored as a chunk and return nil without executing anything. Any error
// aborts exactly this line: partial tokens already appended are left in
// the arena but never executed, since the write cursor is rolled back
// before returning (spec.md §5).
func (it *Interpreter) HandleLine(line string) (err error) {
	save := it.arena.End()
	defer func() {
		if err != nil {
			it.arena.Truncate(save)
		}
	}()
	defer interrors.Recover(&err)

	lineNum, rest := leadingLineNumber(line)

	if lineNum > 0 {
		header := it.arena.PutChunkHeader(lineNum)
		lexer.Lex(rest, it.arena, it.vars)
		it.arena.PatchChunkLen(header, it.arena.End()-header)
		return nil
	}

	lexer.Lex(line, it.arena, it.vars)
	it.arena.SetCur(save)
	it.exec.RunImmediate()
	it.arena.Truncate(save)
	return nil
}

// leadingLineNumber reports the positive integer line number at the start
// of line, if any, along with the remainder of the line after it and the
// whitespace that follows (spec.md §4.1: "if the input's leading lexeme
// parses as a positive integer line number"). A leading 0 or non-digit is
// not a line number.
func leadingLineNumber(line string) (int, string) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, line
	}
	n, err := strconv.Atoi(line[:i])
	if err != nil || n <= 0 {
		return 0, line
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return n, line[i:]
}

// Run executes the stored program from its first chunk (the `run`
// statement's effect, exposed directly for embedders that want to drive
// execution without going through HandleLine's "run" keyword).
func (it *Interpreter) Run() (err error) {
	defer interrors.Recover(&err)
	it.exec.Run()
	return nil
}

// VarInfo is one occupied variable-table slot, as returned by DumpVars.
type VarInfo struct {
	Index int
	Name  string
	IsFunc bool
	Value  float64
}

// DumpVars returns every occupied variable slot, for debug introspection
// (spec.md §9 supplement, grounded on main.c's dump_vars).
func (it *Interpreter) DumpVars() []VarInfo {
	entries := it.vars.Dump()
	out := make([]VarInfo, len(entries))
	for i, e := range entries {
		out[i] = VarInfo{
			Index:  e.Index,
			Name:   e.Name,
			IsFunc: e.Kind == vartable.HostFunc,
			Value:  e.Num,
		}
	}
	return out
}

// ListChunk renders the token stream of the chunk starting at arena offset
// ptr as a single human-readable line, without executing it (spec.md §9
// supplement, grounded on main.c's list_chunk). ptr is typically obtained
// from FindLine.
func (it *Interpreter) ListChunk(ptr int) (string, error) {
	save := it.arena.Cur()
	defer it.arena.SetCur(save)
	it.arena.SetCur(ptr)

	var sb strings.Builder
	for {
		t := it.arena.CurTag()
		switch t {
		case token.EOF:
			it.arena.NextIs(token.EOF)
			return sb.String(), nil
		case token.Chunk:
			_, line := it.arena.GetChunkHeader()
			sb.WriteString(strconv.Itoa(line))
			sb.WriteString(" ")
		case token.Lit:
			sb.WriteString(strconv.FormatFloat(it.arena.GetLit(), 'g', 14, 64))
			sb.WriteString(" ")
		case token.Str:
			sb.WriteString(strconv.Quote(it.arena.GetStr()))
			sb.WriteString(" ")
		case token.Var:
			slot := it.arena.GetVarSlot()
			sb.WriteString(it.vars.Slot(slot).Name)
			sb.WriteString(" ")
		default:
			it.arena.Skip()
			sb.WriteString(t.String())
			sb.WriteString(" ")
		}
	}
}

// FindLine locates the arena offset of the chunk for the given numbered
// line, for embedders that want to inspect or re-enter a specific line
// (e.g. via ListChunk).
func (it *Interpreter) FindLine(line int) (ptr int, err error) {
	defer interrors.Recover(&err)
	return chunkstore.FindLine(it.arena, line), nil
}
