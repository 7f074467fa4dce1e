package bytecode

import "fmt"

// addrKind discriminates the three address forms.
type addrKind uint8

const (
	addrBytecode addrKind = iota
	addrTerminator
	addrNative
)

// Address identifies one program location: a (method, block, statement)
// triple inside loaded bytecode, a foreign (native) code address, or the
// terminator sentinel meaning the program has exited.
//
// Addresses are immutable values; advancing execution derives a new
// Address rather than mutating one in place. Equality is plain field
// equality, so Address is usable as a map key.
type Address struct {
	Method MethodKey
	Block  int
	Stmt   int

	kind   addrKind
	native uint64
}

// NewAddress returns the bytecode address (method, block, stmt).
func NewAddress(method MethodKey, block, stmt int) Address {
	return Address{Method: method, Block: block, Stmt: stmt}
}

// EntryAddress returns the address of a method's entry point.
func EntryAddress(method MethodKey) Address {
	return NewAddress(method, 0, 0)
}

// Terminator returns the sentinel address meaning "program has exited".
func Terminator() Address {
	return Address{kind: addrTerminator}
}

// NativeAddress returns an address inside foreign code.
func NativeAddress(addr uint64) Address {
	return Address{kind: addrNative, native: addr}
}

// IsTerminator reports whether a is the exit sentinel.
func (a Address) IsTerminator() bool { return a.kind == addrTerminator }

// IsNative reports whether a points into foreign code.
func (a Address) IsNative() bool { return a.kind == addrNative }

// Native returns the foreign code address. Valid only when IsNative.
func (a Address) Native() uint64 { return a.native }

// WithStmt derives the address of another statement in the same block.
func (a Address) WithStmt(stmt int) Address {
	return NewAddress(a.Method, a.Block, stmt)
}

// WithBlock derives the address of the first statement of another block
// in the same method.
func (a Address) WithBlock(block int) Address {
	return NewAddress(a.Method, block, 0)
}

func (a Address) String() string {
	switch a.kind {
	case addrTerminator:
		return "<terminated>"
	case addrNative:
		return fmt.Sprintf("<native 0x%x>", a.native)
	default:
		return fmt.Sprintf("%s [block %d, stmt %d]", a.Method, a.Block, a.Stmt)
	}
}
