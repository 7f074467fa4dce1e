package engine

import (
	"sync/atomic"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

var stateIDs atomic.Uint64

// Registers is the symbolic register file of a state.
type Registers struct {
	// InvokeReturn receives a return value when no caller frame exists
	// to declare a destination slot (top-level invocations).
	InvokeReturn *symbolic.Value
}

// Arg is one (value, type) entry of a pending call's argument list.
type Arg struct {
	Value symbolic.Value
	Type  bytecode.Type
}

// CallArgs is the argument list of a pending call: an optional receiver
// plus the positional parameters.
type CallArgs struct {
	This   *Arg
	Params []Arg
}

// NativeCallInfo describes a pending foreign call attached to a state
// between call-site construction and native return.
type NativeCallInfo struct {
	Addr    uint64
	Method  bytecode.MethodDescriptor
	Args    []Arg
	RetType bytecode.Type
}

// State is the mutable context of one control-flow path. A state is
// exclusively owned by that path: whenever control flow splits, Fork
// produces decoupled copies of the call stack, memory scopes and
// reference table so no two live states alias mutable data.
type State struct {
	ID   uint64
	Addr bytecode.Address

	CallStack *CallStack
	Memory    *Memory
	Regs      Registers
	History   *History
	Options   OptionSet
	Refs      *RefTable

	// Native carries the pending foreign call while Addr points into
	// native code; nil otherwise.
	Native *NativeCallInfo

	initialized map[string]bool
}

// NewState returns a fresh state positioned at addr.
func NewState(addr bytecode.Address) *State {
	return &State{
		ID:        stateIDs.Add(1),
		Addr:      addr,
		CallStack: NewCallStack(),
		Memory:    NewMemory(),
		History:   &History{},
		Options:   DefaultOptions(),
		Refs:      NewRefTable(),
	}
}

// Fork returns an independent copy of the state. Call stack, memory
// scopes, reference table, history and options are deep-copied; the
// pending native call descriptor is immutable and shared.
func (s *State) Fork() *State {
	var initialized map[string]bool
	if len(s.initialized) > 0 {
		initialized = make(map[string]bool, len(s.initialized))
		for k := range s.initialized {
			initialized[k] = true
		}
	}
	return &State{
		ID:          stateIDs.Add(1),
		Addr:        s.Addr,
		CallStack:   s.CallStack.Fork(),
		Memory:      s.Memory.Fork(),
		Regs:        s.Regs,
		History:     s.History.Fork(),
		Options:     s.Options.Fork(),
		Refs:        s.Refs.Fork(),
		Native:      s.Native,
		initialized: initialized,
	}
}

// MarkClassInitialized records that the named class has been
// initialized on this path.
func (s *State) MarkClassInitialized(name string) {
	if s.initialized == nil {
		s.initialized = make(map[string]bool)
	}
	s.initialized[name] = true
	s.History.Add(HistoryEvent{Kind: EventClassInit, Addr: s.Addr})
}

// ClassInitialized reports whether the named class was initialized on
// this path.
func (s *State) ClassInitialized(name string) bool {
	return s.initialized[name]
}
