package engine

import (
	"fmt"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

// ---------------------------------------------------------------------------
// Native bridge: crossing into the foreign calling convention and back
// ---------------------------------------------------------------------------

// OS is the foreign calling-convention and platform adapter the native
// bridge delegates to.
type OS interface {
	// NativeAddr returns the foreign code address of a native method.
	NativeAddr(m bytecode.MethodDescriptor) (uint64, error)

	// Env returns the opaque environment handle passed as the first
	// argument of every native call.
	Env() symbolic.Value

	// StateCall constructs the foreign-side call state for a call to
	// addr with the fully marshalled argument list.
	StateCall(addr uint64, args []Arg, base *State, ret bytecode.Type) (*State, error)

	// GetReturnVal reads the raw return value of a completed foreign
	// call. The foreign convention guarantees nothing about its width.
	GetReturnVal(state *State) (symbolic.Value, error)

	// ResolveClassRef returns a reference to the named class,
	// triggering class initialization on the state as a side effect.
	ResolveClassRef(state *State, class string) (symbolic.Value, error)
}

// noOS rejects every native operation; installed when no adapter is
// configured.
type noOS struct{}

func (noOS) NativeAddr(m bytecode.MethodDescriptor) (uint64, error) {
	return 0, fmt.Errorf("%w: %s", ErrNoForeignOS, m)
}
func (noOS) Env() symbolic.Value { return symbolic.Value{} }
func (noOS) StateCall(uint64, []Arg, *State, bytecode.Type) (*State, error) {
	return nil, ErrNoForeignOS
}
func (noOS) GetReturnVal(*State) (symbolic.Value, error) {
	return symbolic.Value{}, ErrNoForeignOS
}
func (noOS) ResolveClassRef(*State, string) (symbolic.Value, error) {
	return symbolic.Value{}, ErrNoForeignOS
}

// setupNativeCallsite constructs a call that crosses into the foreign
// convention. The managed frame is pushed without storing arguments
// (the foreign side reads them directly); the argument list is then
// rewritten for the foreign convention: environment handle first, then
// the receiver — or, for static calls, a reference to the declaring
// class, initializing it as a side effect — then the remaining
// arguments.
func (e *Engine) setupNativeCallsite(state *State, nativeAddr uint64, method bytecode.MethodDescriptor,
	args *CallArgs, retAddr bytecode.Address, retVar *VarSlot) (*State, error) {

	e.SetupCallsite(state, nil, retAddr, retVar)

	var recv Arg
	if args != nil && args.This != nil {
		recv = *args.This
	} else {
		classRef, err := e.os.ResolveClassRef(state, method.Class)
		if err != nil {
			return nil, fmt.Errorf("resolving class for native call to %s: %w", method, err)
		}
		recv = Arg{Value: classRef, Type: "java.lang.Class"}
	}

	final := make([]Arg, 0, 2+argCount(args))
	final = append(final, Arg{Value: e.os.Env(), Type: "JNIEnv"}, recv)
	if args != nil {
		final = append(final, args.Params...)
	}

	return e.os.StateCall(nativeAddr, final, state, method.Ret)
}

func argCount(args *CallArgs) int {
	if args == nil {
		return 0
	}
	return len(args.Params)
}

// PrepareNativeReturnState handles a foreign call that has returned:
// it clones the native-side state, recovers the raw return value
// through the foreign convention — casting primitives to their declared
// width, resolving reference returns through the reference table —
// tears down the frame, and purges the call-scoped reference entries.
// The resulting state resumes at the frame's saved return address.
func (e *Engine) PrepareNativeReturnState(nativeState *State) (*State, error) {
	if nativeState.Native == nil {
		return nil, ErrNotNativeCall
	}
	rs := nativeState.Fork()
	retAddr := rs.CallStack.RetAddr()

	var value *symbolic.Value
	if top := rs.CallStack.Top(); top != nil && top.RetVar != nil {
		raw, err := e.os.GetReturnVal(rs)
		if err != nil {
			return nil, fmt.Errorf("reading native return value: %w", err)
		}
		retType := rs.Native.RetType
		if retType.IsPrimitive() {
			// The foreign convention does not guarantee the declared
			// width; cast explicitly.
			v := symbolic.CastPrimitive(raw, retType)
			value = &v
		} else {
			ref, err := rs.Refs.Lookup(raw)
			if err != nil {
				return nil, fmt.Errorf("resolving native return reference: %w", err)
			}
			value = &ref
		}
	}

	e.PrepareReturnState(rs, value)
	rs.Refs.ClearLocal()
	rs.Native = nil
	rs.Addr = retAddr
	return rs, nil
}
