// Package vartable implements the fixed-capacity variable table: a bounded
// array of named slots, each holding either a numeric value or a
// host-function handle. Lookup is linear, matching main.c's find_var, with
// the teacher's fixed-slice-of-slots shape (c.f. wasm.ModuleInstance's
// Globals) standing in for "bounded array" in Go.
package vartable

import "github.com/nanobasic/nanobasic/internal/interrors"

// MaxNameLen is the longest variable name stored; longer identifiers are
// silently truncated on first sighting, per spec.md §3.
const MaxNameLen = 7

// DefaultCapacity is the design-default variable table size from spec.md §3.
const DefaultCapacity = 32

// Kind discriminates a slot's payload.
type Kind uint8

const (
	// Empty marks a free slot (name == "").
	Empty Kind = iota
	Value
	HostFunc
)

// Func is the callable stored in a function-typed slot. It receives the
// evaluation context it needs to pull its own arguments from the token
// stream; the concrete type is supplied by package hostfunc to avoid an
// import cycle (vartable only needs to store and return the handle).
type Func any

// Slot is one entry of the table.
type Slot struct {
	Name string
	Kind Kind
	Num  float64
	Fn   Func
}

// Table is the fixed-capacity variable table.
type Table struct {
	slots []Slot
}

// New allocates a Table with the given fixed capacity.
func New(capacity int) *Table {
	return &Table{slots: make([]Slot, capacity)}
}

// Len returns the table's fixed capacity.
func (t *Table) Len() int { return len(t.slots) }

// Slot returns a pointer to the slot at index i for direct inspection or
// mutation (e.g. by the for-loop stack, which holds a pointer to the
// iterator's slot).
func (t *Table) Slot(i int) *Slot { return &t.slots[i] }

// Find resolves name to its slot index: the first name match wins; if none
// match, the first free slot is claimed and the name (truncated to
// MaxNameLen) copied in. Raises TooManyVariables if the table is full.
func (t *Table) Find(name string) int {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	free := -1
	for i := range t.slots {
		if t.slots[i].Kind != Empty && t.slots[i].Name == name {
			return i
		}
		if free == -1 && t.slots[i].Kind == Empty {
			free = i
		}
	}
	interrors.RaiseIf(free == -1, interrors.TooManyVariables)
	t.slots[free].Name = name
	t.slots[free].Kind = Value
	t.slots[free].Num = 0
	return free
}

// SetValue sets the slot at i to value-type with the given number, as
// assignment does.
func (t *Table) SetValue(i int, v float64) {
	t.slots[i].Kind = Value
	t.slots[i].Num = v
}

// RegisterHostFunc claims (or reuses) the slot named name and tags it as a
// host function holding fn.
func (t *Table) RegisterHostFunc(name string, fn Func) int {
	i := t.Find(name)
	t.slots[i].Kind = HostFunc
	t.slots[i].Fn = fn
	return i
}

// Dump returns a snapshot of every occupied slot, in table order, for
// debug introspection (spec.md §9 supplement, grounded on main.c's
// dump_vars).
type Entry struct {
	Index int
	Name  string
	Kind  Kind
	Num   float64
}

func (t *Table) Dump() []Entry {
	var out []Entry
	for i := range t.slots {
		if t.slots[i].Kind == Empty {
			continue
		}
		out = append(out, Entry{Index: i, Name: t.slots[i].Name, Kind: t.slots[i].Kind, Num: t.slots[i].Num})
	}
	return out
}
