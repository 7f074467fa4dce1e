package engine

import (
	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
	"github.com/javelin-vm/javelin/trace"
)

// ---------------------------------------------------------------------------
// Call stack management
// ---------------------------------------------------------------------------

// SetupCallsite pushes a new call frame and a paired memory scope onto
// the state. With non-nil args, the receiver (if any) is stored under
// the reserved "this" slot and the remaining entries under positional
// parameter slots. A nil args means argument storage is handled
// elsewhere (the native bridge lets the foreign convention read
// arguments directly).
func (e *Engine) SetupCallsite(state *State, args *CallArgs, retAddr bytecode.Address, retVar *VarSlot) {
	state.CallStack.Push(Frame{RetAddr: retAddr, RetVar: retVar})
	state.Memory.Push()
	if args == nil {
		return
	}
	if args.This != nil {
		state.Memory.Store(ThisSlot(), args.This.Value)
	}
	for i, a := range args.Params {
		state.Memory.Store(ParamSlot(i), a.Value)
	}
}

// PrepareReturnState tears down the current call frame: it reads the
// frame's return destination and procedure payload, pops frame and
// memory scope in lockstep, re-attaches the payload to the now-current
// frame (a built-in procedure spanning the call boundary recovers its
// bookkeeping there), and stores the return value. A value with no
// declared destination, or a return from outside any frame, lands in
// the external-return register instead.
func (e *Engine) PrepareReturnState(state *State, value *symbolic.Value) {
	frame, ok := state.CallStack.Pop()
	if ok {
		state.Memory.Pop()
		if frame.ProcedureData != nil {
			if top := state.CallStack.Top(); top != nil {
				top.ProcedureData = frame.ProcedureData
			}
		}
	}
	if value == nil {
		return
	}
	if ok && frame.RetVar != nil {
		state.Memory.Store(*frame.RetVar, *value)
		return
	}
	v := *value
	state.Regs.InvokeReturn = &v
}

// terminateExecution handles a return with an empty call stack: the
// program is ending. Provenance-tracking options are discarded, the
// exit code is the return value widened to machine width (zero when the
// return carries none), an exit event is recorded, and a single exit
// successor is emitted. The caller must stop processing the current
// block immediately.
func (e *Engine) terminateExecution(value *symbolic.Value, state *State, succ *Successors) {
	log.Debugf("returning with an empty stack: ending execution (state %d)", state.ID)
	state.Options.Discard(OptTrackDependencies)
	state.Options.Discard(OptAutoReferences)

	exitCode := symbolic.Zero
	if value != nil {
		exitCode = symbolic.Cast(*value, e.wordBits, true)
	}
	state.History.Add(HistoryEvent{Kind: EventExit, Addr: state.Addr, ExitCode: &exitCode})

	succ.Add(state, bytecode.Terminator(), symbolic.True(), KindExit)
	succ.Processed = true
	e.record(state, trace.KindExit, map[string]any{"exit_code": exitCode.String()})
}
