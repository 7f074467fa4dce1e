package bytecode

import (
	"fmt"
	"strings"
)

// Method attribute flags carried by the lifter.
const (
	AttrNative = "NATIVE"
	AttrStatic = "STATIC"
)

// MethodDescriptor identifies a method by declaring class, name, ordered
// parameter types and return type, plus attribute flags from the lifter.
type MethodDescriptor struct {
	Class  string   `cbor:"class"`
	Name   string   `cbor:"name"`
	Params []Type   `cbor:"params"`
	Ret    Type     `cbor:"ret"`
	Attrs  []string `cbor:"attrs,omitempty"`
}

// HasAttr reports whether the method carries the given attribute flag.
func (d MethodDescriptor) HasAttr(attr string) bool {
	for _, a := range d.Attrs {
		if a == attr {
			return true
		}
	}
	return false
}

// IsNative reports whether the method is implemented in foreign code.
func (d MethodDescriptor) IsNative() bool { return d.HasAttr(AttrNative) }

// IsStatic reports whether the method has no receiver.
func (d MethodDescriptor) IsStatic() bool { return d.HasAttr(AttrStatic) }

// Signature returns the "name(param,param)" form used as the lookup key
// inside hook registries.
func (d MethodDescriptor) Signature() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = string(p)
	}
	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(params, ","))
}

// Key returns the comparable lookup key for this descriptor.
func (d MethodDescriptor) Key() MethodKey {
	return MethodKey{Class: d.Class, Sig: d.Signature()}
}

func (d MethodDescriptor) String() string {
	return d.Class + "." + d.Signature()
}

// MethodKey is the hashable identity of a method: declaring class plus
// name-and-parameter signature. Two descriptors naming the same method
// always produce equal keys, regardless of attribute flags.
type MethodKey struct {
	Class string
	Sig   string
}

func (k MethodKey) String() string {
	if k.Class == "" {
		return k.Sig
	}
	return k.Class + "." + k.Sig
}
