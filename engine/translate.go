package engine

import (
	"fmt"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

// ---------------------------------------------------------------------------
// Statement translation: raw IR statement -> structured operation
// ---------------------------------------------------------------------------

// operandWidth returns the bit width values of the given type occupy.
// References and void use the machine word.
func (e *Engine) operandWidth(t bytecode.Type) uint {
	if t.IsPrimitive() {
		return t.Width()
	}
	return e.wordBits
}

// evalOperand resolves an operand to a symbolic value against the
// state's current memory scope. Unbound locals and parameters are
// lazily initialized with fresh symbols, which is how unconstrained
// inputs enter a path.
func (e *Engine) evalOperand(o bytecode.Operand, state *State) symbolic.Value {
	width := e.operandWidth(o.Type)
	switch o.Kind {
	case bytecode.OperandConst:
		return symbolic.BV(o.Const, width)
	case bytecode.OperandNull:
		return symbolic.BV(0, e.wordBits)
	case bytecode.OperandThis:
		return e.loadOrFresh(state, ThisSlot(), "this", o.Type, width)
	case bytecode.OperandParam:
		slot := ParamSlot(o.Param)
		return e.loadOrFresh(state, slot, slot.String(), o.Type, width)
	default:
		return e.loadOrFresh(state, LocalSlot(o.Local), o.Local, o.Type, width)
	}
}

func (e *Engine) loadOrFresh(state *State, slot VarSlot, name string, t bytecode.Type, width uint) symbolic.Value {
	if v, ok := state.Memory.Load(slot); ok {
		return v
	}
	var v symbolic.Value
	if t.IsReference() {
		v = symbolic.Ref(string(t))
	} else {
		v = symbolic.Symbol(name, width)
	}
	state.Memory.Store(slot, v)
	return v
}

// destSlot maps an assignment destination operand to its memory slot.
func destSlot(o bytecode.Operand) (VarSlot, bool) {
	switch o.Kind {
	case bytecode.OperandLocal:
		return LocalSlot(o.Local), true
	case bytecode.OperandParam:
		return ParamSlot(o.Param), true
	default:
		return VarSlot{}, false
	}
}

// translateStatement applies a statement's data effects to the state
// and classifies its control effect. Failures wrap ErrUntranslatable;
// the dispatcher decides whether they are soft or fatal.
func (e *Engine) translateStatement(stmt bytecode.Statement, state *State) (op, error) {
	switch stmt.Kind {
	case bytecode.StmtNop:
		return fallthroughOp{}, nil

	case bytecode.StmtAssign:
		if stmt.Dest == nil || stmt.Value == nil {
			return nil, fmt.Errorf("%w: assign without destination or value", ErrUntranslatable)
		}
		slot, ok := destSlot(*stmt.Dest)
		if !ok {
			return nil, fmt.Errorf("%w: assign to non-variable destination", ErrUntranslatable)
		}
		state.Memory.Store(slot, e.evalOperand(*stmt.Value, state))
		return fallthroughOp{}, nil

	case bytecode.StmtIf:
		if stmt.Cond == nil {
			return nil, fmt.Errorf("%w: if without condition", ErrUntranslatable)
		}
		guard := symbolic.Cmp(
			symbolic.CmpOp(stmt.Cond.Op),
			e.evalOperand(stmt.Cond.Left, state),
			e.evalOperand(stmt.Cond.Right, state))
		taken := stmt.Target
		return branchOp{targets: []branchTarget{
			{block: &taken, guard: guard},
			{block: nil, guard: symbolic.Not(guard)},
		}}, nil

	case bytecode.StmtGoto:
		target := stmt.Target
		return branchOp{targets: []branchTarget{
			{block: &target, guard: symbolic.True()},
		}}, nil

	case bytecode.StmtSwitch:
		if stmt.Key == nil {
			return nil, fmt.Errorf("%w: switch without key", ErrUntranslatable)
		}
		key := e.evalOperand(*stmt.Key, state)
		targets := make([]branchTarget, 0, len(stmt.Cases)+1)
		for _, c := range stmt.Cases {
			target := c.Target
			match := symbolic.BV(c.Value, key.Bits())
			targets = append(targets, branchTarget{
				block: &target,
				guard: symbolic.Cmp(symbolic.CmpEq, key, match),
			})
		}
		// Default edge; guards across a multi-way branch need not be
		// mutually exclusive, that contract belongs to the solver.
		if stmt.Default >= 0 {
			def := stmt.Default
			targets = append(targets, branchTarget{block: &def, guard: symbolic.True()})
		} else {
			targets = append(targets, branchTarget{block: nil, guard: symbolic.True()})
		}
		return branchOp{targets: targets}, nil

	case bytecode.StmtInvoke:
		if stmt.Invoke == nil {
			return nil, fmt.Errorf("%w: invoke without call expression", ErrUntranslatable)
		}
		args := &CallArgs{}
		if stmt.Invoke.Receiver != nil {
			recv := Arg{
				Value: e.evalOperand(*stmt.Invoke.Receiver, state),
				Type:  stmt.Invoke.Receiver.Type,
			}
			args.This = &recv
		}
		for _, a := range stmt.Invoke.Args {
			args.Params = append(args.Params, Arg{Value: e.evalOperand(a, state), Type: a.Type})
		}
		var retVar *VarSlot
		if stmt.Dest != nil {
			slot, ok := destSlot(*stmt.Dest)
			if !ok {
				return nil, fmt.Errorf("%w: invoke result into non-variable destination", ErrUntranslatable)
			}
			retVar = &slot
		}
		return invokeOp{method: stmt.Invoke.Method, args: args, retVar: retVar}, nil

	case bytecode.StmtReturn:
		if stmt.Value == nil {
			return nil, fmt.Errorf("%w: return without value", ErrUntranslatable)
		}
		v := e.evalOperand(*stmt.Value, state)
		return returnOp{value: &v}, nil

	case bytecode.StmtReturnVoid:
		return returnOp{}, nil

	default:
		return nil, fmt.Errorf("%w: unknown statement kind %s", ErrUntranslatable, stmt.Kind)
	}
}
