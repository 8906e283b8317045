package builtins

import (
	"strings"
	"testing"

	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/eval"
	"github.com/nanobasic/nanobasic/internal/lexer"
	"github.com/nanobasic/nanobasic/internal/vartable"
	"github.com/stretchr/testify/require"
)

func evalExpr(t *testing.T, set *Set, src string) float64 {
	t.Helper()
	a := arena.New(arena.DefaultCapacity)
	v := vartable.New(vartable.DefaultCapacity)
	for name, fn := range set.Funcs() {
		v.RegisterHostFunc(name, fn)
	}
	lexer.Lex(src, a, v)
	a.SetCur(0)
	e := &eval.Evaluator{Arena: a, Vars: v}
	return e.Expr()
}

func TestRnd_InUnitRange(t *testing.T) {
	var out strings.Builder
	set := NewSet(&out, 1)
	for i := 0; i < 100; i++ {
		v := evalExpr(t, set, "rnd()")
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestPutc_WritesByte(t *testing.T) {
	var out strings.Builder
	set := NewSet(&out, 1)
	v := evalExpr(t, set, "putc(65)")
	require.Equal(t, float64('A'), v)
	require.Equal(t, "A", out.String())
}

func TestCls_NoOutput(t *testing.T) {
	var out strings.Builder
	set := NewSet(&out, 1)
	evalExpr(t, set, "cls()")
	require.Equal(t, "", out.String())
}

func TestPlot_WritesEscapeSequence(t *testing.T) {
	var out strings.Builder
	set := NewSet(&out, 1)
	evalExpr(t, set, "plot(1, 2, 3)")
	require.Contains(t, out.String(), "\033[")
}
