package lexer

import (
	"testing"

	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/nanobasic/nanobasic/internal/token"
	"github.com/nanobasic/nanobasic/internal/vartable"
	"github.com/stretchr/testify/require"
)

func newFixture() (*arena.Arena, *vartable.Table) {
	return arena.New(arena.DefaultCapacity), vartable.New(vartable.DefaultCapacity)
}

func TestLex_Whitespace_NoOp(t *testing.T) {
	a, v := newFixture()
	start := a.End()
	Lex("   \t  ", a, v)
	a.SetCur(start)
	require.True(t, a.CurIs(token.EOF))
}

func TestLex_ArithmeticTokens(t *testing.T) {
	a, v := newFixture()
	Lex("1 + 2 * 3", a, v)
	a.SetCur(0)
	require.Equal(t, float64(1), a.GetLit())
	require.True(t, a.NextIs(token.Plus))
	require.Equal(t, float64(2), a.GetLit())
	require.True(t, a.NextIs(token.Mul))
	require.Equal(t, float64(3), a.GetLit())
	require.True(t, a.NextIs(token.EOF))
}

func TestLex_Identifier_AllocatesSlot(t *testing.T) {
	a, v := newFixture()
	Lex("a = 5", a, v)
	a.SetCur(0)
	slot := a.GetVarSlot()
	require.Equal(t, "a", v.Slot(slot).Name)
	require.True(t, a.NextIs(token.Assign))
	require.Equal(t, float64(5), a.GetLit())
}

func TestLex_SameIdentifier_SameSlot(t *testing.T) {
	a, v := newFixture()
	Lex("foo = 1", a, v)
	Lex("foo = 2", a, v)
	a.SetCur(0)
	slot1 := a.GetVarSlot()
	a.NextIs(token.Assign)
	a.GetLit()
	a.NextIs(token.EOF)
	slot2 := a.GetVarSlot()
	require.Equal(t, slot1, slot2)
}

func TestLex_String(t *testing.T) {
	a, v := newFixture()
	Lex(`"hello world"`, a, v)
	a.SetCur(0)
	require.Equal(t, "hello world", a.GetStr())
}

func TestLex_UnterminatedString(t *testing.T) {
	a, v := newFixture()
	err := runAndRecover(func() { Lex(`"hello`, a, v) })
	require.Error(t, err)
	require.Equal(t, interrors.UnterminatedString, err.(*interrors.Error).Kind)
}

func TestLex_CharLiteral(t *testing.T) {
	a, v := newFixture()
	Lex(`'A'`, a, v)
	a.SetCur(0)
	require.Equal(t, float64('A'), a.GetLit())
}

func TestLex_SyntaxError(t *testing.T) {
	a, v := newFixture()
	require.Panics(t, func() { Lex("@", a, v) })
}

func TestLex_Keywords(t *testing.T) {
	a, v := newFixture()
	Lex("if 1 then print 2 else print 3", a, v)
	a.SetCur(0)
	require.True(t, a.NextIs(token.If))
	require.Equal(t, float64(1), a.GetLit())
	require.True(t, a.NextIs(token.Then))
	require.True(t, a.NextIs(token.Print))
	require.Equal(t, float64(2), a.GetLit())
	require.True(t, a.NextIs(token.Else))
	require.True(t, a.NextIs(token.Print))
	require.Equal(t, float64(3), a.GetLit())
	require.True(t, a.NextIs(token.EOF))
}

// runAndRecover runs fn, recovering an interrors panic at the boundary
// exactly as an embedding package's HandleLine would, and returns the
// resulting error (nil if fn didn't panic).
func runAndRecover(fn func()) (err error) {
	defer interrors.Recover(&err)
	fn()
	return nil
}
