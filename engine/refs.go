package engine

import (
	"errors"
	"fmt"

	"github.com/javelin-vm/javelin/symbolic"
)

// ---------------------------------------------------------------------------
// RefTable: foreign-side handle bookkeeping
// ---------------------------------------------------------------------------

var (
	// ErrSymbolicHandle is returned when a reference lookup is given a
	// handle with no concrete value.
	ErrSymbolicHandle = errors.New("reference handle is not concrete")

	// ErrUnknownHandle is returned when a handle maps to no reference.
	ErrUnknownHandle = errors.New("unknown reference handle")
)

type refEntry struct {
	ref   symbolic.Value
	local bool
}

// RefTable maps foreign-side opaque handles to managed references.
// Entries tagged local are scoped to one native call and purged when
// that call returns. Each table is exclusively owned by one state.
type RefTable struct {
	next    uint64
	entries map[uint64]refEntry
}

// NewRefTable returns an empty reference table.
func NewRefTable() *RefTable {
	return &RefTable{next: 1, entries: make(map[uint64]refEntry)}
}

// NewLocal registers a call-scoped reference and returns its handle.
func (t *RefTable) NewLocal(ref symbolic.Value) symbolic.Value {
	return t.add(ref, true)
}

// NewGlobal registers a reference that survives native call boundaries.
func (t *RefTable) NewGlobal(ref symbolic.Value) symbolic.Value {
	return t.add(ref, false)
}

func (t *RefTable) add(ref symbolic.Value, local bool) symbolic.Value {
	id := t.next
	t.next++
	t.entries[id] = refEntry{ref: ref, local: local}
	return symbolic.BV(int64(id), 64)
}

// Lookup resolves a handle back to its managed reference.
func (t *RefTable) Lookup(handle symbolic.Value) (symbolic.Value, error) {
	raw, ok := handle.Concrete()
	if !ok {
		return symbolic.Value{}, ErrSymbolicHandle
	}
	entry, ok := t.entries[uint64(raw)]
	if !ok {
		return symbolic.Value{}, fmt.Errorf("%w: %d", ErrUnknownHandle, raw)
	}
	return entry.ref, nil
}

// ClearLocal purges all call-scoped entries.
func (t *RefTable) ClearLocal() {
	for id, e := range t.entries {
		if e.local {
			delete(t.entries, id)
		}
	}
}

// Len returns the number of live entries.
func (t *RefTable) Len() int { return len(t.entries) }

// Fork returns an independent copy.
func (t *RefTable) Fork() *RefTable {
	entries := make(map[uint64]refEntry, len(t.entries))
	for k, v := range t.entries {
		entries[k] = v
	}
	return &RefTable{next: t.next, entries: entries}
}
