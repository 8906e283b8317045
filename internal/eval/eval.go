// Package eval implements the precedence-climbing expression evaluator
// described in spec.md §4.3. It is a direct port of main.c's E()/P(),
// kept recursive (unlike the teacher's flat bytecode dispatch loop in
// internal/engine/interpreter, which suits a linear opcode tape better
// than BASIC's naturally nested grammar does).
//
// http://www.engr.mun.ca/~theo/Misc/exp_parsing.htm#climbing
package eval

import (
	"math"

	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/hostfunc"
	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/nanobasic/nanobasic/internal/token"
	"github.com/nanobasic/nanobasic/internal/vartable"
)

// noLvalue is the sentinel meaning "the last primary parsed was not a
// variable", mirroring main.c's use of ZB_VAR_COUNT as an out-of-range
// marker.
const noLvalue = -1

// Evaluator evaluates expressions from the arena's current cursor,
// resolving VAR tokens against vars and invoking host functions found
// there. It implements hostfunc.Context so registered functions can pull
// their own arguments from the same stream.
type Evaluator struct {
	Arena *arena.Arena
	Vars  *vartable.Table
}

var _ hostfunc.Context = (*Evaluator)(nil)

// Expr evaluates a full expression at precedence 0 (assignment binds
// loosest), satisfying hostfunc.Context.
func (e *Evaluator) Expr() float64 {
	v, _ := e.E(0)
	return v
}

// ExpectComma satisfies hostfunc.Context for multi-argument host functions.
func (e *Evaluator) ExpectComma() {
	e.Arena.Expect(token.Comma)
}

// E evaluates the precedence-climbing loop starting at minimum precedence
// prec, returning the result. The returned lvalue slot is only meaningful
// to callers that themselves sit inside a larger E() (it is not part of
// the public surface).
func (e *Evaluator) E(prec int) (float64, int) {
	v, lvalue := e.primary()

	for e.Arena.CurTag().IsBinOp() && e.Arena.CurTag().Precedence() >= prec {
		tag := e.Arena.CurTag()
		e.Arena.Skip()

		nextPrec := tag.Precedence()
		if !tag.RightAssoc() {
			nextPrec++
		}

		v1 := v
		v2, _ := e.E(nextPrec)
		i1, i2 := int32(v1), int32(v2)

		switch tag {
		case token.Plus:
			v = v1 + v2
		case token.Minus:
			v = v1 - v2
		case token.Mul:
			v = v1 * v2
		case token.Div:
			interrors.RaiseIf(v2 == 0, interrors.DivisionByZero)
			v = v1 / v2
		case token.Lt:
			v = boolf(v1 < v2)
		case token.Le:
			v = boolf(v1 <= v2)
		case token.Eq:
			v = boolf(v1 == v2)
		case token.Ne:
			v = boolf(v1 != v2)
		case token.Ge:
			v = boolf(v1 >= v2)
		case token.Gt:
			v = boolf(v1 > v2)
		case token.And:
			v = boolf(v1 != 0 && v2 != 0)
		case token.Or:
			v = boolf(v1 != 0 || v2 != 0)
		case token.BAnd:
			v = float64(i1 & i2)
		case token.BOr:
			v = float64(i1 | i2)
		case token.BXor:
			v = float64(i1 ^ i2)
		case token.Rsh:
			v = float64(i1 >> uint32(i2))
		case token.Lsh:
			v = float64(i1 << uint32(i2))
		case token.Pow:
			v = math.Pow(v1, v2)
		case token.Mod:
			interrors.RaiseIf(i2 == 0, interrors.DivisionByZero)
			v = float64(i1 % i2)
		case token.Assign:
			interrors.RaiseIf(lvalue == noLvalue, interrors.NotAnLvalue)
			e.Vars.SetValue(lvalue, v2)
			v = v2
		default:
			interrors.Raise(interrors.AssertFailed)
		}
	}

	return v, lvalue
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// primary parses one primary expression (literal, variable/function call,
// prefix unary operator, or parenthesized expression), returning its value
// and, if it was a bare VAR naming a value-typed slot, that slot's index as
// a candidate lvalue. Any other primary form (including a parenthesized
// expression, even one that is itself just "(a)") does not propagate an
// lvalue, matching spec.md §9's "(a) = 1 is not an lvalue" contract.
func (e *Evaluator) primary() (float64, int) {
	switch {
	case e.Arena.CurIs(token.Lit):
		return e.Arena.GetLit(), noLvalue

	case e.Arena.CurIs(token.Var):
		slot := e.Arena.GetVarSlot()
		s := e.Vars.Slot(slot)
		switch s.Kind {
		case vartable.HostFunc:
			e.Arena.Expect(token.Open)
			fn := s.Fn.(hostfunc.Func)
			v := fn(e)
			e.Arena.Expect(token.Close)
			return v, noLvalue
		default:
			return s.Num, slot
		}

	case e.Arena.NextIs(token.Minus):
		v, _ := e.E(token.UnaryPrecedence)
		return -v, noLvalue

	case e.Arena.NextIs(token.Not):
		v, _ := e.E(token.UnaryPrecedence)
		return boolf(v == 0), noLvalue

	case e.Arena.NextIs(token.BNot):
		v, _ := e.E(token.UnaryPrecedence)
		return float64(^int32(v)), noLvalue

	case e.Arena.NextIs(token.Open):
		v, _ := e.E(0)
		e.Arena.Expect(token.Close)
		return v, noLvalue

	default:
		interrors.Raisef(interrors.Expected, "expression")
		return 0, noLvalue // unreachable
	}
}
