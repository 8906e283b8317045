package arena

import (
	"testing"

	"github.com/nanobasic/nanobasic/internal/token"
	"github.com/stretchr/testify/require"
)

func TestPutLit_ShortForm(t *testing.T) {
	for _, v := range []float64{0, 1, 127} {
		a := New(DefaultCapacity)
		start := a.PutLit(v)
		require.Equal(t, 2, a.End()-start, "value %v should encode as tag+1 byte", v)

		a.SetCur(start)
		got := a.GetLit()
		require.Equal(t, v, got)
	}
}

func TestPutLit_MediumForm(t *testing.T) {
	for _, v := range []float64{128, 1000, 32511} {
		a := New(DefaultCapacity)
		start := a.PutLit(v)
		require.Equal(t, 3, a.End()-start, "value %v should encode as tag+2 bytes", v)

		a.SetCur(start)
		got := a.GetLit()
		require.Equal(t, v, got)
	}
}

func TestPutLit_LongForm(t *testing.T) {
	for _, v := range []float64{32512, -1, 0.5, 1e10, -123456.789} {
		a := New(DefaultCapacity)
		start := a.PutLit(v)
		require.Equal(t, 10, a.End()-start, "value %v should encode as tag+1+8 bytes", v)

		a.SetCur(start)
		got := a.GetLit()
		require.Equal(t, v, got, "long form must round-trip bit-exactly")
	}
}

func TestPutLit_BoundaryFlip(t *testing.T) {
	a := New(DefaultCapacity)
	lo := a.PutLit(127)
	hi := a.PutLit(128)
	require.Equal(t, 2, hi-lo, "127 must be the last 2-byte value")

	a2 := New(DefaultCapacity)
	lo2 := a2.PutLit(32511)
	hi2 := a2.PutLit(32512)
	require.Equal(t, 3, hi2-lo2, "32511 must be the last 3-byte value")
}

func TestStrRoundTrip(t *testing.T) {
	a := New(DefaultCapacity)
	start := a.PutStr("hello")
	a.SetCur(start)
	require.Equal(t, "hello", a.GetStr())
}

func TestChunkHeaderRoundTrip(t *testing.T) {
	a := New(DefaultCapacity)
	header := a.PutChunkHeader(1234)
	a.PutTag(token.End)
	a.PatchChunkLen(header, a.End()-header)

	a.SetCur(header)
	length, line := a.GetChunkHeader()
	require.Equal(t, 1234, line)
	require.Equal(t, a.End()-header, length)
}

func TestMemoryFull(t *testing.T) {
	a := New(2)
	require.Panics(t, func() { a.PutStr("too long for a 2-byte arena") })
}

func TestProgramEnd_AdvancesOnPatchChunkLen(t *testing.T) {
	a := New(DefaultCapacity)
	require.Equal(t, 0, a.ProgramEnd())

	header := a.PutChunkHeader(10)
	a.PutTag(token.End)
	a.PatchChunkLen(header, a.End()-header)
	require.Equal(t, a.End(), a.ProgramEnd())

	// Scratch tokens appended past the stored chunk (an immediate line's
	// tokenization) must not move ProgramEnd.
	progEnd := a.ProgramEnd()
	a.PutTag(token.Run)
	a.PutTag(token.EOF)
	require.Equal(t, progEnd, a.ProgramEnd())
	require.Less(t, progEnd, a.End())
}

func TestCursorInvariant(t *testing.T) {
	a := New(DefaultCapacity)
	a.PutTag(token.EOF)
	require.LessOrEqual(t, a.Cur(), a.End())
	require.LessOrEqual(t, a.End(), a.Cap())
}
