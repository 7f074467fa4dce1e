package engine

import (
	"errors"
	"fmt"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
	"github.com/javelin-vm/javelin/trace"
)

// stepResult tells the block loop what to do after one statement.
type stepResult uint8

const (
	// stepFallthrough continues with the next statement in the block.
	stepFallthrough stepResult = iota
	// stepStop ends block processing; successors have been emitted.
	stepStop
	// stepTerminated ends block processing because the program exited;
	// no further statement in the block may be touched.
	stepTerminated
)

// Process fully interprets one execution state up to its next control
// transfer and returns the accumulated successor set. Soft failures
// (untranslatable statements, unloaded invoke targets) are absorbed
// here; structural failures (IncorrectLocation, unresolved direct
// lookups) propagate and the caller must abort the state.
func (e *Engine) Process(state *State) (*Successors, error) {
	succ := NewSuccessors(state.Addr)

	// Program has exited; nothing follows the terminator.
	if state.Addr.IsTerminator() {
		succ.Processed = true
		return succ, nil
	}

	// A native address means a pending foreign call has completed.
	if state.Addr.IsNative() {
		rs, err := e.PrepareNativeReturnState(state)
		if err != nil {
			return succ, err
		}
		succ.Add(rs, rs.Addr, symbolic.True(), KindReturn)
		succ.Processed = true
		return succ, nil
	}

	// Hooked methods bypass bytecode interpretation entirely.
	if proc := e.hooks.substitute(state.Addr); proc != nil {
		log.Debugf("substituting procedure for %s", state.Addr.Method)
		return succ, proc.Run(e, state, succ)
	}

	method, err := e.prog.Method(state.Addr.Method)
	if err != nil {
		if !errors.Is(err, bytecode.ErrMethodUnresolved) {
			return succ, err
		}
		// We ended up in code that was never loaded, typically library
		// stubs. Degrade to a synthetic void return instead of failing
		// the whole run, and flag it distinctly in telemetry.
		log.Warningf("executing non-loaded code %s, simulating a void return", state.Addr)
		e.record(state, trace.KindUnresolvedReturn, map[string]any{"method": state.Addr.Method.String()})
		rs := state.Fork()
		retAddr := rs.CallStack.RetAddr()
		e.PrepareReturnState(rs, nil)
		succ.Add(rs, retAddr, symbolic.True(), KindReturn)
		succ.Processed = true
		return succ, nil
	}

	if state.Addr.Block < 0 || state.Addr.Block >= len(method.Blocks) {
		return succ, fmt.Errorf("%w: block %d of %s", ErrIncorrectLocation, state.Addr.Block, state.Addr.Method)
	}

	log.Debugf("executing block %s", state.Addr)
	if err := e.handleBlock(state, succ, method.Blocks[state.Addr.Block], state.Addr.Stmt); err != nil {
		return succ, err
	}
	succ.Processed = true
	return succ, nil
}

// handleBlock iterates the block's statements starting at startStmt and
// emits successors for the first terminating control effect. A block
// exhausted without one advances linearly to the following block.
func (e *Engine) handleBlock(state *State, succ *Successors, block *bytecode.Block, startStmt int) error {
	if len(block.Statements) == 0 {
		// Upstream lifting defect; nothing to execute and nowhere to go.
		log.Warningf("executed empty block at %s", state.Addr)
		e.record(state, trace.KindEmpty, nil)
		return nil
	}

	for idx := startStmt; idx < len(block.Statements); idx++ {
		res, err := e.handleStatement(state, succ, idx, block.Statements[idx])
		if err != nil {
			return err
		}
		if res != stepFallthrough {
			return nil
		}
	}

	// The fallthrough edge derives from the entry statement index, so a
	// plain block advances one statement per step.
	next, err := e.nextLinearInstruction(state.Addr)
	if err != nil {
		return err
	}
	log.Debugf("advancing execution linearly to %s", next)
	succ.Add(state.Fork(), next, symbolic.True(), KindBranch)
	return nil
}

// handleStatement translates one statement and applies its control
// effect, emitting successors as needed.
func (e *Engine) handleStatement(state *State, succ *Successors, stmtIdx int, stmt bytecode.Statement) (stepResult, error) {
	cur := state.Addr.WithStmt(stmtIdx)

	sop, err := e.translateStatement(stmt, state)
	if err != nil {
		if e.strict {
			return stepStop, err
		}
		// A single bad statement never aborts the block.
		log.Errorf("skipping statement at %s: %v", cur, err)
		e.record(state, trace.KindSkipped, map[string]any{"stmt": stmt.String(), "error": err.Error()})
		return stepFallthrough, nil
	}

	switch sop := sop.(type) {
	case invokeOp:
		return e.handleInvoke(state, succ, cur, sop)

	case branchOp:
		for _, t := range sop.targets {
			target := cur
			if t.block == nil {
				var err error
				target, err = e.nextLinearInstruction(cur)
				if err != nil {
					return stepStop, err
				}
			} else {
				target = cur.WithBlock(*t.block)
			}
			log.Debugf("possible jump: %s -> %s", cur, target)
			succ.Add(state.Fork(), target, t.guard, KindBranch)
		}
		return stepStop, nil

	case returnOp:
		if state.CallStack.IsEmpty() {
			e.terminateExecution(sop.value, state, succ)
			return stepTerminated, nil
		}
		rs := state.Fork()
		retAddr := rs.CallStack.RetAddr()
		e.PrepareReturnState(rs, sop.value)
		log.Debugf("return exit: %s -> %s", cur, retAddr)
		succ.Add(rs, retAddr, symbolic.True(), KindReturn)
		succ.Processed = true
		return stepStop, nil

	case fallthroughOp:
		return stepFallthrough, nil

	default:
		return stepStop, fmt.Errorf("unhandled structured operation %T at %s", sop, cur)
	}
}

// handleInvoke builds the call site for an invoke. The callee's entry
// becomes the successor for managed calls; native callees cross the
// bridge instead. An invoke always terminates block processing, the
// lifter does not guarantee it ends a block.
func (e *Engine) handleInvoke(state *State, succ *Successors, cur bytecode.Address, sop invokeOp) (stepResult, error) {
	retAddr, err := e.nextLinearInstruction(cur)
	if err != nil {
		return stepStop, err
	}

	invokeState := state.Fork()
	var target bytecode.Address
	if sop.method.IsNative() {
		log.Debugf("native invoke: %s", sop.method)
		nativeAddr, err := e.os.NativeAddr(sop.method)
		if err != nil {
			return stepStop, err
		}
		invokeState, err = e.setupNativeCallsite(invokeState, nativeAddr, sop.method, sop.args, retAddr, sop.retVar)
		if err != nil {
			return stepStop, err
		}
		target = bytecode.NativeAddress(nativeAddr)
	} else {
		log.Debugf("invoke: %s", sop.method)
		e.SetupCallsite(invokeState, sop.args, retAddr, sop.retVar)
		target = bytecode.EntryAddress(sop.method.Key())
	}

	e.record(state, trace.KindCall, map[string]any{"callee": sop.method.String()})
	succ.Add(invokeState, target, symbolic.True(), KindCall)
	return stepStop, nil
}
