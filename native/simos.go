// Package native implements the foreign calling-convention adapter the
// engine's native bridge delegates to. Native method bodies are not
// executed: a call is simulated by producing an unconstrained return
// value of the convention's raw width, which is exactly how unmodeled
// foreign code is treated in symbolic execution.
package native

import (
	"errors"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/engine"
	"github.com/javelin-vm/javelin/symbolic"
)

var log = commonlog.GetLogger("javelin.native")

// rawWidth is the width of every raw foreign return value. It is wider
// than most declared primitive types on purpose; the engine must cast.
const rawWidth = 64

// nativeBase is where fake foreign code addresses are allocated from.
const nativeBase uint64 = 0x70000000

// ErrNoPendingCall is returned when a return value is requested from a
// state with no pending foreign call.
var ErrNoPendingCall = errors.New("native: state has no pending foreign call")

// Simulator produces the raw return value of a simulated native call.
type Simulator func(method bytecode.MethodDescriptor, args []engine.Arg, state *engine.State) symbolic.Value

// SimOS is the platform adapter: it assigns stable fake addresses to
// native methods, owns the environment handle, and simulates foreign
// call bodies.
type SimOS struct {
	prog *bytecode.Program
	env  symbolic.Value

	// Simulate overrides the default unconstrained-symbol simulation.
	Simulate Simulator

	mu        sync.Mutex
	next      uint64
	addrs     map[bytecode.MethodKey]uint64
	byAddr    map[uint64]bytecode.MethodDescriptor
	classRefs map[string]symbolic.Value
}

// New returns an adapter over the given program.
func New(prog *bytecode.Program) *SimOS {
	return &SimOS{
		prog:      prog,
		env:       symbolic.Ref("JNIEnv"),
		next:      nativeBase,
		addrs:     make(map[bytecode.MethodKey]uint64),
		byAddr:    make(map[uint64]bytecode.MethodDescriptor),
		classRefs: make(map[string]symbolic.Value),
	}
}

// NativeAddr returns the foreign code address of a native method,
// allocating a stable one on first use.
func (s *SimOS) NativeAddr(m bytecode.MethodDescriptor) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if addr, ok := s.addrs[m.Key()]; ok {
		return addr, nil
	}
	addr := s.next
	s.next += 0x10
	s.addrs[m.Key()] = addr
	s.byAddr[addr] = m
	return addr, nil
}

// Env returns the environment handle passed to every native call.
func (s *SimOS) Env() symbolic.Value { return s.env }

// StateCall attaches the pending foreign call to the base state. The
// foreign convention reads arguments from the attached list; nothing is
// stored in managed memory.
func (s *SimOS) StateCall(addr uint64, args []engine.Arg, base *engine.State, ret bytecode.Type) (*engine.State, error) {
	s.mu.Lock()
	method, ok := s.byAddr[addr]
	s.mu.Unlock()
	if !ok {
		return nil, errors.New("native: call to unallocated address")
	}
	base.Native = &engine.NativeCallInfo{
		Addr:    addr,
		Method:  method,
		Args:    args,
		RetType: ret,
	}
	base.Addr = bytecode.NativeAddress(addr)
	return base, nil
}

// GetReturnVal simulates the foreign body of the state's pending call
// and returns the raw result. Primitive results are raw 64-bit values;
// reference results are registered as call-scoped references and
// returned as opaque handles.
func (s *SimOS) GetReturnVal(state *engine.State) (symbolic.Value, error) {
	info := state.Native
	if info == nil {
		return symbolic.Value{}, ErrNoPendingCall
	}
	if s.Simulate != nil {
		return s.Simulate(info.Method, info.Args, state), nil
	}
	if info.RetType.IsReference() {
		ref := symbolic.Ref(string(info.RetType))
		return state.Refs.NewLocal(ref), nil
	}
	return symbolic.Symbol("native_ret_"+info.Method.Name, rawWidth), nil
}

// ResolveClassRef returns a stable reference to the named class and
// marks it initialized on the state. Classes outside the loaded
// program still get a reference; their initializers simply have no
// code to run.
func (s *SimOS) ResolveClassRef(state *engine.State, class string) (symbolic.Value, error) {
	s.mu.Lock()
	ref, ok := s.classRefs[class]
	if !ok {
		ref = symbolic.Ref(class)
		s.classRefs[class] = ref
	}
	s.mu.Unlock()

	if _, err := s.prog.Class(class); err != nil {
		log.Debugf("class %s not loaded; using bare reference", class)
	}
	if !state.ClassInitialized(class) {
		state.MarkClassInitialized(class)
	}
	return ref, nil
}
