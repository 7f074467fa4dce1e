package engine

import (
	"sync"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

// ---------------------------------------------------------------------------
// Procedure hooks: built-in substitute implementations
// ---------------------------------------------------------------------------

// Procedure is a built-in substitute executed instead of bytecode for a
// hooked method. The procedure owns the whole step: it fills the
// accumulator and decides whether processing is complete.
type Procedure interface {
	Run(e *Engine, state *State, succ *Successors) error
}

// Registry maps declaring class name to method signature
// ("name(param,param)") to a procedure factory.
type Registry map[string]map[string]func() Procedure

// Register adds a procedure factory for class.sig.
func (r Registry) Register(class, sig string, factory func() Procedure) {
	byClass, ok := r[class]
	if !ok {
		byClass = make(map[string]func() Procedure)
		r[class] = byClass
	}
	byClass[sig] = factory
}

// Lookup returns the factory registered for class.sig.
func (r Registry) Lookup(class, sig string) (func() Procedure, bool) {
	byClass, ok := r[class]
	if !ok {
		return nil, false
	}
	f, ok := byClass[sig]
	return f, ok
}

// hookCache resolves addresses to substitute procedures, memoizing per
// address for the engine's lifetime. The cache belongs to the engine,
// not the process: two engines over different programs never share it.
type hookCache struct {
	registry Registry

	mu    sync.Mutex
	cache map[bytecode.Address]Procedure
}

func newHookCache(r Registry) *hookCache {
	return &hookCache{registry: r, cache: make(map[bytecode.Address]Procedure)}
}

// substitute returns the procedure hooked at addr, or nil to interpret
// the method normally.
func (c *hookCache) substitute(addr bytecode.Address) Procedure {
	if c.registry == nil || addr.IsTerminator() || addr.IsNative() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if proc, ok := c.cache[addr]; ok {
		return proc
	}
	factory, ok := c.registry.Lookup(addr.Method.Class, addr.Method.Sig)
	if !ok {
		return nil
	}
	proc := factory()
	c.cache[addr] = proc
	return proc
}

// ReturnFromProcedure tears down the current frame from inside a
// procedure and emits the single return successor.
func (e *Engine) ReturnFromProcedure(state *State, succ *Successors, value *symbolic.Value) {
	rs := state.Fork()
	retAddr := rs.CallStack.RetAddr()
	e.PrepareReturnState(rs, value)
	succ.Add(rs, retAddr, symbolic.True(), KindReturn)
	succ.Processed = true
}

// TerminateFromProcedure ends the program from inside a procedure with
// the given exit value.
func (e *Engine) TerminateFromProcedure(state *State, succ *Successors, value symbolic.Value) {
	e.terminateExecution(&value, state, succ)
}
