// Package chunkstore implements lookup over the chunks persisted in the
// front of the arena: each numbered program line is a self-describing
// chunk (a 4-byte header followed by its tokens), and FindLine is the only
// way to address one by line number. Chunks are ordered by insertion, not
// by line number, matching main.c's find_line.
package chunkstore

import (
	"github.com/nanobasic/nanobasic/internal/arena"
	"github.com/nanobasic/nanobasic/internal/interrors"
)

// FindLine walks chunks from arena offset 0, returning the start offset of
// the first chunk whose line number equals line. A chunk with length 0 is
// a corruption assertion (it should have been patched in before the next
// chunk was appended). Running past the stored program without a match
// raises LineNotFound.
func FindLine(a *arena.Arena, line int) int {
	save := a.Cur()
	defer a.SetCur(save)

	a.SetCur(0)
	end := a.ProgramEnd()
	for a.Cur() < end {
		ptr := a.Cur()
		length, lineNum := a.GetChunkHeader()
		interrors.RaiseIf(length == 0, interrors.AssertFailed)
		if lineNum == line {
			return ptr
		}
		a.SetCur(ptr + length)
	}

	interrors.Raise(interrors.LineNotFound)
	return 0 // unreachable
}
