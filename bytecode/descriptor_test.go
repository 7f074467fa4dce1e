package bytecode

import "testing"

func TestDescriptorSignature(t *testing.T) {
	d := MethodDescriptor{
		Class:  "com.example.Main",
		Name:   "process",
		Params: []Type{TypeInt, "java.lang.String"},
		Ret:    TypeVoid,
	}
	if got, want := d.Signature(), "process(int,java.lang.String)"; got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}
	if got, want := d.String(), "com.example.Main.process(int,java.lang.String)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDescriptorSignatureNoParams(t *testing.T) {
	d := MethodDescriptor{Class: "C", Name: "main", Ret: TypeInt}
	if got, want := d.Signature(), "main()"; got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}
}

func TestDescriptorKeyIgnoresAttributes(t *testing.T) {
	a := MethodDescriptor{Class: "C", Name: "f", Params: []Type{TypeInt}, Ret: TypeVoid}
	b := a
	b.Attrs = []string{AttrNative, AttrStatic}

	if a.Key() != b.Key() {
		t.Error("keys of the same method must be equal regardless of attributes")
	}
	if !b.IsNative() || !b.IsStatic() {
		t.Error("attribute flags not reported")
	}
	if a.IsNative() {
		t.Error("flag reported without the attribute")
	}
}

func TestTypeWidths(t *testing.T) {
	cases := []struct {
		t     Type
		width uint
	}{
		{TypeBoolean, 8},
		{TypeByte, 8},
		{TypeChar, 16},
		{TypeShort, 16},
		{TypeInt, 32},
		{TypeLong, 64},
	}
	for _, c := range cases {
		if got := c.t.Width(); got != c.width {
			t.Errorf("%s width = %d, want %d", c.t, got, c.width)
		}
		if !c.t.IsPrimitive() {
			t.Errorf("%s not reported primitive", c.t)
		}
		if c.t.IsReference() {
			t.Errorf("%s reported as reference", c.t)
		}
	}

	if TypeVoid.IsPrimitive() || TypeVoid.IsReference() {
		t.Error("void is neither primitive nor reference")
	}
	if !Type("java.lang.String").IsReference() {
		t.Error("class names are reference types")
	}
}
