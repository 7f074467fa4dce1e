package bytecode

import "testing"

func TestAddressForms(t *testing.T) {
	key := MethodKey{Class: "C", Sig: "main()"}

	a := NewAddress(key, 1, 2)
	if a.IsTerminator() || a.IsNative() {
		t.Error("bytecode address misclassified")
	}
	if EntryAddress(key) != NewAddress(key, 0, 0) {
		t.Error("entry address is not (0, 0)")
	}
	if !Terminator().IsTerminator() {
		t.Error("terminator not recognized")
	}
	n := NativeAddress(0x70000010)
	if !n.IsNative() || n.Native() != 0x70000010 {
		t.Error("native address not recognized")
	}
}

func TestAddressDerivation(t *testing.T) {
	key := MethodKey{Class: "C", Sig: "main()"}
	a := NewAddress(key, 1, 2)

	if got := a.WithStmt(5); got != NewAddress(key, 1, 5) {
		t.Errorf("WithStmt(5) = %s", got)
	}
	if got := a.WithBlock(3); got != NewAddress(key, 3, 0) {
		t.Errorf("WithBlock(3) = %s, statement index must reset", got)
	}
	// Deriving never mutates.
	if a != NewAddress(key, 1, 2) {
		t.Error("derivation mutated the original address")
	}
}

func TestAddressAsMapKey(t *testing.T) {
	key := MethodKey{Class: "C", Sig: "main()"}
	seen := map[Address]int{
		NewAddress(key, 0, 0): 1,
		Terminator():          2,
		NativeAddress(0x70):   3,
	}
	if seen[EntryAddress(key)] != 1 {
		t.Error("equal bytecode addresses must hash equal")
	}
	if seen[Terminator()] != 2 {
		t.Error("terminator sentinel is not a stable key")
	}
	if seen[NativeAddress(0x70)] != 3 {
		t.Error("native addresses with equal raw values must hash equal")
	}
	if NativeAddress(0x70) == NativeAddress(0x80) {
		t.Error("distinct native addresses compare equal")
	}
}
