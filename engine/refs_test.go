package engine

import (
	"errors"
	"testing"

	"github.com/javelin-vm/javelin/symbolic"
)

func TestRefTableRoundTrip(t *testing.T) {
	tbl := NewRefTable()
	ref := symbolic.Ref("java.lang.String")
	handle := tbl.NewLocal(ref)

	if _, ok := handle.Concrete(); !ok {
		t.Fatal("handle must be a concrete value")
	}
	got, err := tbl.Lookup(handle)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got.Name() != ref.Name() {
		t.Errorf("looked up %s, want %s", got, ref)
	}
}

func TestRefTableClearLocalKeepsGlobals(t *testing.T) {
	tbl := NewRefTable()
	local := tbl.NewLocal(symbolic.Ref("A"))
	global := tbl.NewGlobal(symbolic.Ref("B"))

	tbl.ClearLocal()

	if tbl.Len() != 1 {
		t.Fatalf("entries = %d after purge, want 1", tbl.Len())
	}
	if _, err := tbl.Lookup(local); !errors.Is(err, ErrUnknownHandle) {
		t.Error("call-scoped handle survived the purge")
	}
	if _, err := tbl.Lookup(global); err != nil {
		t.Errorf("global handle lost: %v", err)
	}
}

func TestRefTableSymbolicHandle(t *testing.T) {
	tbl := NewRefTable()
	_, err := tbl.Lookup(symbolic.Symbol("h", 64))
	if !errors.Is(err, ErrSymbolicHandle) {
		t.Fatalf("error = %v, want ErrSymbolicHandle", err)
	}
}

func TestRefTableForkKeepsHandleAllocation(t *testing.T) {
	tbl := NewRefTable()
	tbl.NewGlobal(symbolic.Ref("A"))

	fork := tbl.Fork()
	h1 := tbl.NewGlobal(symbolic.Ref("B"))
	h2 := fork.NewGlobal(symbolic.Ref("C"))

	// Handles allocate along each branch independently but never
	// collide with entries existing at fork time.
	c1, _ := h1.Concrete()
	c2, _ := h2.Concrete()
	if c1 != c2 {
		t.Errorf("post-fork handles diverged: %d vs %d", c1, c2)
	}
	if tbl.Len() != 2 || fork.Len() != 2 {
		t.Error("fork shares entries with the original")
	}
}
