// Package trampoline adapts parameterized callbacks to the zero-argument
// calling convention of interrupt registration interfaces.
//
// A Table holds a fixed number of slots, each pairing a callback with an
// opaque token. Registering returns a pre-generated zero-argument entry
// point bound to that slot; invoking the entry point calls the stored
// callback with the stored token. Slots are issued in order starting at 0
// and are never reclaimed: capacity must bound the number of registrations
// for the lifetime of the table.
package trampoline

import (
	"inputbridge-go/errcode"
)

// DefaultCapacity matches the interrupt line count of the smallest
// supported boards.
const DefaultCapacity = 8

type slot struct {
	fn    func(token any)
	token any
}

// Table is a fixed-capacity slot table. It is owned by whichever component
// manages interrupt wiring and must only be mutated from the cooperative
// context; the generated entry points may run in interrupt context.
type Table struct {
	slots   []slot
	entries []func()
	next    int
}

// New makes a table with the given capacity (DefaultCapacity if cap <= 0).
// All entry points are generated eagerly so their addresses are fixed
// before any registration happens.
func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	t := &Table{
		slots:   make([]slot, capacity),
		entries: make([]func(), capacity),
	}
	for i := range t.entries {
		id := i
		t.entries[id] = func() {
			s := &t.slots[id]
			s.fn(s.token)
		}
	}
	return t
}

// Register consumes the next slot and returns its zero-argument entry
// point. The entry point needs no bounds check at call time: it is only
// ever handed out for a slot that was just populated.
func (t *Table) Register(fn func(token any), token any) (func(), error) {
	if fn == nil {
		return nil, errcode.InvalidParams
	}
	if t.next >= len(t.slots) {
		return nil, errcode.SlotTableFull
	}
	t.slots[t.next] = slot{fn: fn, token: token}
	entry := t.entries[t.next]
	t.next++
	return entry, nil
}

// Capacity reports the fixed slot count.
func (t *Table) Capacity() int { return len(t.slots) }

// Used reports how many slots have been consumed.
func (t *Table) Used() int { return t.next }
