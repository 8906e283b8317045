package vartable

import (
	"testing"

	"github.com/nanobasic/nanobasic/internal/interrors"
	"github.com/stretchr/testify/require"
)

func TestFind_AllocatesThenReuses(t *testing.T) {
	vt := New(DefaultCapacity)
	a := vt.Find("a")
	b := vt.Find("b")
	a2 := vt.Find("a")
	require.Equal(t, a, a2)
	require.NotEqual(t, a, b)
}

func TestFind_TruncatesLongNames(t *testing.T) {
	vt := New(DefaultCapacity)
	long := vt.Find("abcdefgh")
	short := vt.Find("abcdefg")
	require.Equal(t, long, short, "names beyond 7 chars collide by design")
}

func TestFind_TableFull(t *testing.T) {
	vt := New(2)
	vt.Find("a")
	vt.Find("b")
	require.Panics(t, func() { vt.Find("c") })

	err := runAndRecover(func() { vt.Find("c") })
	require.Equal(t, interrors.TooManyVariables, err.(*interrors.Error).Kind)
}

func TestSetValue(t *testing.T) {
	vt := New(DefaultCapacity)
	slot := vt.Find("x")
	vt.SetValue(slot, 42)
	require.Equal(t, Value, vt.Slot(slot).Kind)
	require.Equal(t, float64(42), vt.Slot(slot).Num)
}

func TestRegisterHostFunc(t *testing.T) {
	vt := New(DefaultCapacity)
	called := false
	slot := vt.RegisterHostFunc("rnd", func() { called = true })
	require.Equal(t, HostFunc, vt.Slot(slot).Kind)
	vt.Slot(slot).Fn.(func())()
	require.True(t, called)
}

func TestDump_SkipsEmptySlots(t *testing.T) {
	vt := New(4)
	vt.Find("x")
	vt.SetValue(0, 7)
	entries := vt.Dump()
	require.Len(t, entries, 1)
	require.Equal(t, "x", entries[0].Name)
	require.Equal(t, float64(7), entries[0].Num)
}

func runAndRecover(fn func()) (err error) {
	defer interrors.Recover(&err)
	fn()
	return nil
}
