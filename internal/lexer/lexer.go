// Package lexer tokenizes one input line at a time, appending tokens to an
// arena.Arena and allocating variable slots in a vartable.Table on first
// sighting of an identifier. It is a direct port of main.c's lex(), kept
// recursion-free and left-to-right exactly as the original is.
package lexer

import (
	"strconv"

	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/nanobasic/nanobasic/internal/token"
	"github.com/nanobasic/nanobasic/internal/vartable"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// Lex tokenizes line, appending tokens to a, terminated by an EOF token.
// New variable slots are allocated in vars as identifiers are first seen.
func Lex(line string, a *arena.Arena, vars *vartable.Table) {
	p := 0
	n := len(line)

	for {
		for p < n && (line[p] == ' ' || line[p] == '\t' || line[p] == '\r') {
			p++
		}

		if p >= n {
			a.PutTag(token.EOF)
			return
		}

		c := line[p]
		switch {
		case isDigit(c) || c == '.':
			start := p
			p++
			for p < n && isDigit(line[p]) {
				p++
			}
			if p < n && line[p] == '.' {
				p++
				for p < n && isDigit(line[p]) {
					p++
				}
			}
			if p < n && (line[p] == 'e' || line[p] == 'E') {
				q := p + 1
				if q < n && (line[q] == '+' || line[q] == '-') {
					q++
				}
				if q < n && isDigit(line[q]) {
					p = q
					for p < n && isDigit(line[p]) {
						p++
					}
				}
			}
			v, err := strconv.ParseFloat(line[start:p], 64)
			if err != nil {
				interrors.Raisef(interrors.SyntaxError, "%s", line[start:])
			}
			a.PutLit(v)

		case c == '"':
			p++
			start := p
			for p < n && line[p] != '"' {
				p++
			}
			interrors.RaiseIf(p >= n, interrors.UnterminatedString)
			a.PutStr(line[start:p])
			p++

		case c == '\'':
			p++
			interrors.RaiseIf(p >= n, interrors.UnterminatedString)
			a.PutLit(float64(line[p]))
			p++
			interrors.RaiseIf(p >= n || line[p] != '\'', interrors.UnterminatedString)
			p++

		default:
			if tag, consumed := token.MatchLongest(line[p:]); consumed > 0 {
				a.PutTag(tag)
				p += consumed
			} else if isAlpha(c) {
				start := p
				for p < n && isAlnum(line[p]) {
					p++
				}
				slot := vars.Find(line[start:p])
				a.PutVar(slot)
			} else {
				interrors.Raisef(interrors.SyntaxError, "%s", line[p:])
			}
		}
	}
}
