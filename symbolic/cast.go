package symbolic

// Cast converts v to the given width. Concrete values narrow by
// truncation and widen by sign or zero extension, matching Java's
// primitive conversions. Symbols and references keep their identity and
// only change their declared width.
func Cast(v Value, bits uint, signed bool) Value {
	if v.bits == bits {
		return v
	}
	if v.kind != KindConcrete {
		out := v
		out.bits = bits
		return out
	}
	if bits < v.bits {
		return Value{kind: KindConcrete, bits: bits, concrete: truncate(v.concrete, bits)}
	}
	raw := v.concrete
	if signed {
		raw = uint64(signExtendToInt64(v.concrete, v.bits))
	}
	return Value{kind: KindConcrete, bits: bits, concrete: truncate(raw, bits)}
}
