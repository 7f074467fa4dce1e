// Package bytecode defines the lifted stack-bytecode intermediate
// representation the Javelin engine executes: typed method descriptors,
// basic blocks of structured statements, and the addressing scheme used
// to identify a single statement within a loaded program.
package bytecode

// Type names a Java-style value type. Primitive types use their source
// keyword ("int", "long", ...); every other string is a class name.
type Type string

const (
	TypeVoid    Type = "void"
	TypeBoolean Type = "boolean"
	TypeByte    Type = "byte"
	TypeChar    Type = "char"
	TypeShort   Type = "short"
	TypeInt     Type = "int"
	TypeFloat   Type = "float"
	TypeLong    Type = "long"
	TypeDouble  Type = "double"
)

// primitiveWidths maps each primitive type to its width in bits.
var primitiveWidths = map[Type]uint{
	TypeBoolean: 8,
	TypeByte:    8,
	TypeChar:    16,
	TypeShort:   16,
	TypeInt:     32,
	TypeFloat:   32,
	TypeLong:    64,
	TypeDouble:  64,
}

// IsPrimitive reports whether t is a primitive (non-reference) type.
func (t Type) IsPrimitive() bool {
	_, ok := primitiveWidths[t]
	return ok
}

// IsReference reports whether t names a reference (class) type.
func (t Type) IsReference() bool {
	return t != TypeVoid && !t.IsPrimitive()
}

// Width returns the width in bits of a primitive type, or 0 for void
// and reference types.
func (t Type) Width() uint {
	return primitiveWidths[t]
}
