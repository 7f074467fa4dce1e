package symbolic

import "github.com/javelin-vm/javelin/bytecode"

// CastPrimitive casts v to the width declared by a primitive bytecode
// type. Foreign calling conventions do not guarantee return widths, so
// the engine applies this cast explicitly on every native return.
// Non-primitive types leave v unchanged.
func CastPrimitive(v Value, t bytecode.Type) Value {
	if !t.IsPrimitive() {
		return v
	}
	// char is Java's only unsigned primitive.
	return Cast(v, t.Width(), t != bytecode.TypeChar)
}
