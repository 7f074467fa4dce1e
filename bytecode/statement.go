package bytecode

import "fmt"

// ---------------------------------------------------------------------------
// Statements: the lifted IR consumed by the engine
// ---------------------------------------------------------------------------

// StmtKind discriminates the closed set of lifted statement forms.
type StmtKind uint8

const (
	StmtNop StmtKind = iota
	StmtAssign
	StmtIf
	StmtGoto
	StmtSwitch
	StmtInvoke
	StmtReturn
	StmtReturnVoid
)

func (k StmtKind) String() string {
	switch k {
	case StmtNop:
		return "nop"
	case StmtAssign:
		return "assign"
	case StmtIf:
		return "if"
	case StmtGoto:
		return "goto"
	case StmtSwitch:
		return "switch"
	case StmtInvoke:
		return "invoke"
	case StmtReturn:
		return "return"
	case StmtReturnVoid:
		return "returnvoid"
	default:
		return fmt.Sprintf("stmt(%d)", uint8(k))
	}
}

// OperandKind discriminates value references inside statements.
type OperandKind uint8

const (
	OperandConst OperandKind = iota
	OperandLocal
	OperandParam
	OperandThis
	OperandNull
)

// Operand is a reference to a value: a constant, a named local, a
// positional parameter, the receiver, or the null reference.
type Operand struct {
	Kind  OperandKind `cbor:"kind"`
	Type  Type        `cbor:"type"`
	Const int64       `cbor:"const,omitempty"`
	Local string      `cbor:"local,omitempty"`
	Param int         `cbor:"param,omitempty"`
}

// ConstOp returns a constant operand of the given type.
func ConstOp(v int64, t Type) Operand {
	return Operand{Kind: OperandConst, Type: t, Const: v}
}

// LocalOp returns an operand referencing a named local variable.
func LocalOp(name string, t Type) Operand {
	return Operand{Kind: OperandLocal, Type: t, Local: name}
}

// ParamOp returns an operand referencing a positional parameter.
func ParamOp(idx int, t Type) Operand {
	return Operand{Kind: OperandParam, Type: t, Param: idx}
}

// ThisOp returns an operand referencing the receiver.
func ThisOp(t Type) Operand {
	return Operand{Kind: OperandThis, Type: t}
}

// CmpOp names a comparison operator in If conditions.
type CmpOp string

const (
	CmpEq CmpOp = "=="
	CmpNe CmpOp = "!="
	CmpLt CmpOp = "<"
	CmpLe CmpOp = "<="
	CmpGt CmpOp = ">"
	CmpGe CmpOp = ">="
)

// CondExpr is the comparison guarding a conditional branch.
type CondExpr struct {
	Op    CmpOp   `cbor:"op"`
	Left  Operand `cbor:"left"`
	Right Operand `cbor:"right"`
}

// InvokeExpr is a call site: the callee descriptor, an optional receiver
// (nil for static calls) and the explicit arguments.
type InvokeExpr struct {
	Method   MethodDescriptor `cbor:"method"`
	Receiver *Operand         `cbor:"receiver,omitempty"`
	Args     []Operand        `cbor:"args,omitempty"`
}

// SwitchCase is one (match value, target block) arm of a switch.
type SwitchCase struct {
	Value  int64 `cbor:"value"`
	Target int   `cbor:"target"`
}

// Statement is one lifted IR statement. Kind selects which payload
// fields are meaningful:
//
//	Assign      Dest, Value
//	If          Cond, Target (block index; the false edge falls through)
//	Goto        Target
//	Switch      Key, Cases, Default
//	Invoke      Invoke, Dest (nil when the result is discarded)
//	Return      Value
//	ReturnVoid  -
//	Nop         -
type Statement struct {
	Kind    StmtKind     `cbor:"kind"`
	Dest    *Operand     `cbor:"dest,omitempty"`
	Value   *Operand     `cbor:"value,omitempty"`
	Cond    *CondExpr    `cbor:"cond,omitempty"`
	Target  int          `cbor:"target,omitempty"`
	Key     *Operand     `cbor:"key,omitempty"`
	Cases   []SwitchCase `cbor:"cases,omitempty"`
	Default int          `cbor:"default,omitempty"`
	Invoke  *InvokeExpr  `cbor:"invoke,omitempty"`
}

func (s Statement) String() string {
	switch s.Kind {
	case StmtInvoke:
		if s.Invoke != nil {
			return "invoke " + s.Invoke.Method.String()
		}
		return "invoke <nil>"
	case StmtIf:
		return fmt.Sprintf("if … goto block %d", s.Target)
	case StmtGoto:
		return fmt.Sprintf("goto block %d", s.Target)
	default:
		return s.Kind.String()
	}
}
