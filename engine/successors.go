package engine

import (
	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

// Kind classifies the transition a successor takes.
type Kind string

const (
	KindCall   Kind = "call"
	KindBranch Kind = "branch"
	KindReturn Kind = "return"
	KindExit   Kind = "exit"
)

// Successor is one possible next execution state: the forked state, the
// address it resumes at, the guard constraining the edge, and the
// transition kind.
type Successor struct {
	State *State
	Addr  bytecode.Address
	Guard symbolic.Bool
	Kind  Kind
}

// Successors accumulates the successor set produced while processing
// one input state. Once Processed is set, no further successors may be
// added.
type Successors struct {
	Input     bytecode.Address
	Processed bool

	list []Successor
}

// NewSuccessors returns an empty accumulator for the given input address.
func NewSuccessors(input bytecode.Address) *Successors {
	return &Successors{Input: input}
}

// Add appends a successor and repositions its state at addr. Additions
// after Processed is set are ignored.
func (s *Successors) Add(state *State, addr bytecode.Address, guard symbolic.Bool, kind Kind) {
	if s.Processed {
		return
	}
	state.Addr = addr
	s.list = append(s.list, Successor{State: state, Addr: addr, Guard: guard, Kind: kind})
}

// All returns the accumulated successors in emission order.
func (s *Successors) All() []Successor { return s.list }

// Len returns the number of accumulated successors.
func (s *Successors) Len() int { return len(s.list) }
