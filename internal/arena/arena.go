// Package arena implements the fixed-capacity byte buffer that backs the
// interpreter's tokenized program storage, and the variable-width payload
// encoding used for LIT/VAR/STR/CHUNK tokens. It is the direct descendant
// of the teacher's internal/leb128 package: both exist to pick the
// shortest byte encoding for a numeric payload and decode it back
// bit-exactly, but arena's scheme is the spec's closed three-case form
// rather than LEB128's unbounded continuation-bit varint.
package arena

import (
	"encoding/binary"
	"math"

	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/nanobasic/nanobasic/internal/token"
)

// DefaultCapacity is the design-default arena size from spec.md §3.
const DefaultCapacity = 2048

// Arena is a contiguous mutable byte buffer holding, in order: zero or more
// numbered-line chunks, and transiently, the tokens for whatever immediate
// line is currently executing. cur and end are the two cursors spec.md §3
// requires; the invariant 0 <= cur <= end <= capacity is maintained by
// every method here.
type Arena struct {
	buf     []byte
	end     int
	cur     int
	progEnd int
}

// New allocates an Arena with the given fixed capacity.
func New(capacity int) *Arena {
	return &Arena{buf: make([]byte, capacity)}
}

// Cap returns the arena's fixed capacity.
func (a *Arena) Cap() int { return len(a.buf) }

// End returns the write cursor.
func (a *Arena) End() int { return a.end }

// ProgramEnd returns the offset just past the last persisted chunk: the
// boundary between the stored chunk store and whatever scratch tokens are
// transiently appended past it for an immediate line (spec.md §3/§4.1).
// Chunk-store walks (FindLine) and the `run` execution engine stop here
// rather than at End, so they never wander into an unfinished scratch
// line's tokens.
func (a *Arena) ProgramEnd() int { return a.progEnd }

// Cur returns the read/execute cursor.
func (a *Arena) Cur() int { return a.cur }

// SetCur moves the read/execute cursor, e.g. for goto/gosub/next.
func (a *Arena) SetCur(pos int) { a.cur = pos }

// Truncate resets the write (and, if beyond pos, read) cursor back to pos,
// discarding everything appended after it. Used to discard an immediate
// line's scratch tokens after execution, and (optionally) to reset the
// whole program.
func (a *Arena) Truncate(pos int) {
	a.end = pos
	if a.cur > pos {
		a.cur = pos
	}
}

// Byte reads a single byte at the given offset without moving any cursor.
func (a *Arena) Byte(off int) byte { return a.buf[off] }

// put appends n raw bytes, failing with MemoryFull if they would not fit.
func (a *Arena) put(b []byte) int {
	interrors.RaiseIf(a.end+len(b) > len(a.buf), interrors.MemoryFull)
	start := a.end
	copy(a.buf[start:], b)
	a.end += len(b)
	return start
}

// PutTag appends a single tag byte and returns its offset.
func (a *Arena) PutTag(t token.Tag) int {
	return a.put([]byte{byte(t)})
}

// PutLit appends a LIT token encoding v in the shortest of the three forms
// spec.md §3/§8 describes:
//   - 7-bit unsigned integers in [0,127]:  tag, 1 byte
//   - 15-bit unsigned integers in [128,32511]: tag, 2 bytes (high bit set)
//   - anything else: tag, 0xFF, then the raw float64 bits (10 bytes total)
//
// The encoder only uses the short forms when v is exactly an integer in
// range; any fractional value, or an integer out of range, uses the long
// form so that decoding round-trips bit-exactly.
func (a *Arena) PutLit(v float64) int {
	start := a.PutTag(token.Lit)
	vi := int64(v)
	switch {
	case float64(vi) == v && vi >= 0 && vi < 128:
		a.put([]byte{byte(vi)})
	case float64(vi) == v && vi >= 0 && vi < 32512:
		a.put([]byte{byte(vi>>8) | 0x80, byte(vi & 0xff)})
	default:
		var b [9]byte
		b[0] = 0xFF
		binary.BigEndian.PutUint64(b[1:], math.Float64bits(v))
		a.put(b[:])
	}
	return start
}

// GetLit expects and decodes a LIT token at the cursor, advancing it past
// the payload.
func (a *Arena) GetLit() float64 {
	a.Expect(token.Lit)
	b0 := a.buf[a.cur]
	a.cur++
	if b0 == 0xFF {
		bits := binary.BigEndian.Uint64(a.buf[a.cur : a.cur+8])
		a.cur += 8
		return math.Float64frombits(bits)
	}
	if b0&0x80 != 0 {
		b1 := a.buf[a.cur]
		a.cur++
		return float64((int(b0&0x7F) << 8) | int(b1))
	}
	return float64(b0)
}

// PutVar appends a VAR token referencing the given variable-table slot.
func (a *Arena) PutVar(slot int) int {
	start := a.PutTag(token.Var)
	a.put([]byte{byte(slot)})
	return start
}

// GetVarSlot expects and decodes a VAR token, advancing the cursor past it.
func (a *Arena) GetVarSlot() int {
	a.Expect(token.Var)
	slot := int(a.buf[a.cur])
	a.cur++
	return slot
}

// PutStr appends a STR token: tag, length byte, raw bytes, zero terminator.
func (a *Arena) PutStr(s string) int {
	start := a.PutTag(token.Str)
	a.put([]byte{byte(len(s))})
	a.put([]byte(s))
	a.put([]byte{0})
	return start
}

// GetStrOffset expects a STR token and returns the offset of its first
// content byte, advancing the cursor past the whole token (length byte,
// content, and terminator).
func (a *Arena) GetStrOffset() int {
	a.Expect(token.Str)
	n := int(a.buf[a.cur])
	off := a.cur + 1
	a.cur += n + 2
	return off
}

// GetStr is GetStrOffset plus materializing the string itself.
func (a *Arena) GetStr() string {
	off := a.GetStrOffset()
	n := int(a.buf[off-1])
	return string(a.buf[off : off+n])
}

// PutChunkHeader appends a 4-byte chunk header (tag, length-placeholder,
// big-endian 16-bit line number) and returns its start offset. The length
// byte is patched in later via PatchChunkLen once the chunk's tokens have
// all been appended.
func (a *Arena) PutChunkHeader(line int) int {
	start := a.PutTag(token.Chunk)
	a.put([]byte{0, byte(line >> 8), byte(line & 0xff)})
	return start
}

// PatchChunkLen fills in the total chunk length (including the 4-byte
// header) at the given header offset. This is also the point at which the
// chunk becomes part of the persisted program, so it advances ProgramEnd
// to just past it.
func (a *Arena) PatchChunkLen(headerOff, length int) {
	a.buf[headerOff+1] = byte(length)
	a.progEnd = headerOff + length
}

// GetChunkHeader expects a CHUNK token at the cursor and decodes its
// length and line number, advancing the cursor past the header.
func (a *Arena) GetChunkHeader() (length, line int) {
	a.Expect(token.Chunk)
	length = int(a.buf[a.cur])
	line = int(a.buf[a.cur+1])<<8 | int(a.buf[a.cur+2])
	a.cur += 3
	return length, line
}

// CurTag returns the tag byte at the cursor without consuming it.
func (a *Arena) CurTag() token.Tag {
	return token.Tag(a.buf[a.cur])
}

// CurIs reports whether the tag at the cursor equals t.
func (a *Arena) CurIs(t token.Tag) bool { return a.CurTag() == t }

// NextIs reports whether the tag at the cursor equals t, and if so consumes
// it (advances the cursor by one byte).
func (a *Arena) NextIs(t token.Tag) bool {
	if a.CurTag() == t {
		a.cur++
		return true
	}
	return false
}

// Expect raises Expected unless the tag at the cursor is t; on success it
// consumes the tag byte.
func (a *Arena) Expect(t token.Tag) {
	if !a.NextIs(t) {
		interrors.Raisef(interrors.Expected, "%s", t)
	}
}

// Skip advances the cursor past whatever token is at the front, following
// each payload-bearing tag's own encoding, without interpreting its value.
// Used by if/else to skip a statement's tokens without evaluating them.
func (a *Arena) Skip() token.Tag {
	t := a.CurTag()
	switch t {
	case token.Lit:
		a.GetLit()
	case token.Var:
		a.GetVarSlot()
	case token.Str:
		a.GetStrOffset()
	case token.Chunk:
		a.GetChunkHeader()
	default:
		a.cur++
	}
	return t
}
