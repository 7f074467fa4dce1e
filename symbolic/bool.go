package symbolic

import "fmt"

// CmpOp names a comparison operator in guard expressions.
type CmpOp string

const (
	CmpEq CmpOp = "=="
	CmpNe CmpOp = "!="
	CmpLt CmpOp = "<"
	CmpLe CmpOp = "<="
	CmpGt CmpOp = ">"
	CmpGe CmpOp = ">="
)

type boolKind uint8

const (
	boolTrue boolKind = iota
	boolFalse
	boolCmp
	boolNot
)

// Bool is a symbolic boolean guard condition. Guards are attached to
// successor edges; they constrain when the edge is taken but are not
// solved here.
type Bool struct {
	kind  boolKind
	op    CmpOp
	lhs   Value
	rhs   Value
	inner *Bool
}

// True returns the unconditionally-true guard.
func True() Bool { return Bool{kind: boolTrue} }

// False returns the unconditionally-false guard.
func False() Bool { return Bool{kind: boolFalse} }

// Cmp returns the guard "lhs op rhs".
func Cmp(op CmpOp, lhs, rhs Value) Bool {
	return Bool{kind: boolCmp, op: op, lhs: lhs, rhs: rhs}
}

// Not returns the negation of b. Negating the constants folds.
func Not(b Bool) Bool {
	switch b.kind {
	case boolTrue:
		return False()
	case boolFalse:
		return True()
	case boolNot:
		return *b.inner
	default:
		inner := b
		return Bool{kind: boolNot, inner: &inner}
	}
}

// IsTrue reports whether b is the unconditionally-true constant.
func (b Bool) IsTrue() bool { return b.kind == boolTrue }

func (b Bool) String() string {
	switch b.kind {
	case boolTrue:
		return "true"
	case boolFalse:
		return "false"
	case boolNot:
		return fmt.Sprintf("!(%s)", b.inner)
	default:
		return fmt.Sprintf("%s %s %s", b.lhs, b.op, b.rhs)
	}
}
