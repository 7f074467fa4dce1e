// Package symbolic provides the value and guard-condition backend the
// engine threads through execution states: fixed-width bitvector values
// that are either concrete or free symbols, and boolean guard
// expressions attached to successor edges. It models values; it does
// not solve constraints.
package symbolic

import (
	"fmt"
	"sync/atomic"
)

// ValueKind discriminates the value forms.
type ValueKind uint8

const (
	// KindConcrete is a concrete bitvector.
	KindConcrete ValueKind = iota
	// KindSymbol is a free symbol of a fixed width.
	KindSymbol
	// KindRef is an opaque managed reference (object or class).
	KindRef
)

// Value is an immutable symbolic value.
type Value struct {
	kind     ValueKind
	bits     uint
	concrete uint64
	name     string
}

var symbolCounter atomic.Uint64

// BV returns a concrete bitvector of the given width. The value is
// truncated to the width.
func BV(v int64, bits uint) Value {
	return Value{kind: KindConcrete, bits: bits, concrete: truncate(uint64(v), bits)}
}

// Symbol returns a fresh free symbol. The given name is a prefix; a
// unique suffix is appended so two calls never alias.
func Symbol(name string, bits uint) Value {
	n := symbolCounter.Add(1)
	return Value{kind: KindSymbol, bits: bits, name: fmt.Sprintf("%s_%d", name, n)}
}

// Ref returns a fresh opaque managed reference labeled with a class name.
func Ref(class string) Value {
	n := symbolCounter.Add(1)
	return Value{kind: KindRef, bits: 64, name: fmt.Sprintf("%s@%d", class, n)}
}

// Zero is the concrete 32-bit zero, used as the default exit code.
var Zero = BV(0, 32)

// Kind returns the value's kind.
func (v Value) Kind() ValueKind { return v.kind }

// Bits returns the value's width in bits.
func (v Value) Bits() uint { return v.bits }

// Name returns the symbol or reference label, or "" for concrete values.
func (v Value) Name() string { return v.name }

// Concrete returns the concrete bits and true, or 0 and false for
// symbols and references.
func (v Value) Concrete() (int64, bool) {
	if v.kind != KindConcrete {
		return 0, false
	}
	return signExtendToInt64(v.concrete, v.bits), true
}

// IsZero reports whether v is concretely zero.
func (v Value) IsZero() bool {
	c, ok := v.Concrete()
	return ok && c == 0
}

func (v Value) String() string {
	switch v.kind {
	case KindConcrete:
		return fmt.Sprintf("0x%x[%d]", v.concrete, v.bits)
	case KindSymbol:
		return fmt.Sprintf("<%s[%d]>", v.name, v.bits)
	default:
		return fmt.Sprintf("<ref %s>", v.name)
	}
}

func truncate(v uint64, bits uint) uint64 {
	if bits == 0 || bits >= 64 {
		return v
	}
	return v & ((1 << bits) - 1)
}

func signExtendToInt64(v uint64, bits uint) int64 {
	if bits == 0 || bits >= 64 {
		return int64(v)
	}
	sign := uint64(1) << (bits - 1)
	if v&sign != 0 {
		return int64(v | ^((1 << bits) - 1))
	}
	return int64(v)
}
