// Package token defines the tag space the tokenizer emits into the arena
// and the precedence table the expression evaluator climbs.
package token

// Tag is the one-byte value every token in the arena begins with.
type Tag uint8

const (
	// Binary operators, in precedence-table order. Must stay contiguous
	// and start at zero: Tag < numBinOps is the "is this a binary
	// operator" test the evaluator uses.
	Assign Tag = iota
	Minus
	Plus
	Mul
	Div
	Mod
	Lt
	Le
	Eq
	Ne
	Ge
	Gt
	Pow
	And
	Or
	BAnd
	BOr
	BXor
	Lsh
	Rsh

	// Unary operators.
	Not
	BNot

	// Keywords.
	Else
	For
	Gosub
	Goto
	If
	Next
	Return
	Run
	Then
	To
	Print
	End
	Step
	Colon
	Open
	Close
	Semi
	Comma

	// Payload-bearing and sentinel tags.
	Chunk
	Lit
	Var
	Str
	None
	EOF

	numTags
)

// numBinOps marks the end of the binary-operator range: any tag below this
// value is a binary operator with an entry in the precedence table.
const numBinOps = Rsh + 1

// IsBinOp reports whether t is a binary operator token.
func (t Tag) IsBinOp() bool { return t < numBinOps }

// lexeme is one entry of the fixed, order-independent lexeme table matched
// longest-first by the tokenizer. Order here only matters for String().
var lexemes = [numTags]string{
	Assign: "=", Minus: "-", Plus: "+", Mul: "*", Div: "/", Mod: "%",
	Lt: "<", Le: "<=", Eq: "==", Ne: "!=", Ge: ">=", Gt: ">", Pow: "**",
	And: "and", Or: "or", BAnd: "&", BOr: "|", BXor: "^", Lsh: "<<", Rsh: ">>",

	Not: "!", BNot: "~",

	Else: "else", For: "for", Gosub: "gosub", Goto: "goto", If: "if",
	Next: "next", Return: "return", Run: "run", Then: "then", To: "to",
	Print: "print", End: "end", Step: "step", Colon: ":", Open: "(",
	Close: ")", Semi: ";", Comma: ",",

	Chunk: "CHUNK", Lit: "LIT", Var: "VAR", Str: "STR", None: "NONE", EOF: "EOF",
}

// keywordTable lists every lexeme tag except the payload/sentinel ones, in
// tag order; MatchLongest gets its longest-first order by trying candidate
// lengths from longest down, not from this list.
var keywordTable = buildKeywordTable()

func buildKeywordTable() []Tag {
	tags := make([]Tag, 0, Chunk)
	for t := Tag(0); t < Chunk; t++ {
		tags = append(tags, t)
	}
	return tags
}

// String implements fmt.Stringer for diagnostics and debug tracing.
func (t Tag) String() string {
	if int(t) >= len(lexemes) {
		return "?"
	}
	return lexemes[t]
}

// MatchLongest scans s (the remainder of the current input line) for the
// longest lexeme in the table that is a prefix of s, trying lengths 6 down
// to 1 as spec.md §4.1 requires. It returns the matched tag and the number
// of bytes consumed, or (None, 0) if nothing matched.
func MatchLongest(s string) (Tag, int) {
	maxLen := 6
	if len(s) < maxLen {
		maxLen = len(s)
	}
	for n := maxLen; n >= 1; n-- {
		candidate := s[:n]
		for _, t := range keywordTable {
			if lexemes[t] == candidate {
				return t, n
			}
		}
	}
	return None, 0
}

// Precedence is the binding power table from spec.md §4.3, higher binds
// tighter. Unary operators bind at 11 (handled directly by the evaluator's
// primary parser, not through this table).
var precedence = [numBinOps]int{
	Assign: 0,
	Or:     1,
	And:    2,
	BOr:    3,
	BXor:   4,
	BAnd:   5,
	Eq:     6,
	Ne:     6,
	Lt:     7,
	Le:     7,
	Ge:     7,
	Gt:     7,
	Lsh:    8,
	Rsh:    8,
	Plus:   9,
	Minus:  9,
	Mul:    10,
	Div:    10,
	Mod:    10,
	Pow:    12,
}

// UnaryPrecedence is the precedence unary prefix operators (-, !, ~) parse
// their operand at.
const UnaryPrecedence = 11

// Precedence returns t's binding power. Only meaningful when t.IsBinOp().
func (t Tag) Precedence() int {
	if !t.IsBinOp() {
		return -1
	}
	return precedence[t]
}

// RightAssoc reports whether t is right-associative (Pow and Assign); every
// other binary operator is left-associative.
func (t Tag) RightAssoc() bool {
	return t == Pow || t == Assign
}
