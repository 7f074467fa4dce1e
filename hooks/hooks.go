// Package hooks provides the built-in substitute procedures that
// replace well-known platform methods instead of interpreting their
// bytecode (which is usually not loaded anyway).
package hooks

import (
	"github.com/javelin-vm/javelin/engine"
	"github.com/javelin-vm/javelin/symbolic"
)

// Default returns the standard procedure registry, minus any classes
// named in disabled.
func Default(disabled ...string) engine.Registry {
	r := engine.Registry{}
	r.Register("java.lang.System", "exit(int)", func() engine.Procedure { return systemExit{} })
	r.Register("java.lang.System", "currentTimeMillis()", func() engine.Procedure { return currentTimeMillis{} })
	r.Register("java.lang.Object", "<init>()", func() engine.Procedure { return voidReturn{} })
	r.Register("java.lang.String", "length()", func() engine.Procedure { return stringLength{} })

	for _, class := range disabled {
		delete(r, class)
	}
	return r
}

// systemExit ends the program with the caller-supplied status code.
type systemExit struct{}

func (systemExit) Run(e *engine.Engine, state *engine.State, succ *engine.Successors) error {
	code, ok := state.Memory.Load(engine.ParamSlot(0))
	if !ok {
		code = symbolic.Zero
	}
	e.TerminateFromProcedure(state, succ, code)
	return nil
}

// currentTimeMillis returns an unconstrained clock reading.
type currentTimeMillis struct{}

func (currentTimeMillis) Run(e *engine.Engine, state *engine.State, succ *engine.Successors) error {
	v := symbolic.Symbol("currentTimeMillis", 64)
	e.ReturnFromProcedure(state, succ, &v)
	return nil
}

// voidReturn is a no-op substitute for constructors and other methods
// whose effects are irrelevant to the analysis.
type voidReturn struct{}

func (voidReturn) Run(e *engine.Engine, state *engine.State, succ *engine.Successors) error {
	e.ReturnFromProcedure(state, succ, nil)
	return nil
}

// stringLength returns an unconstrained int-width length.
type stringLength struct{}

func (stringLength) Run(e *engine.Engine, state *engine.State, succ *engine.Successors) error {
	v := symbolic.Symbol("string_length", 32)
	e.ReturnFromProcedure(state, succ, &v)
	return nil
}
