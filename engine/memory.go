package engine

import (
	"fmt"

	"github.com/javelin-vm/javelin/symbolic"
)

// ---------------------------------------------------------------------------
// Memory: per-frame local variable scopes
// ---------------------------------------------------------------------------

// SlotKind discriminates the local-variable slot forms.
type SlotKind uint8

const (
	// SlotThis is the reserved receiver slot of a frame.
	SlotThis SlotKind = iota
	// SlotParam is a positional parameter slot.
	SlotParam
	// SlotLocal is a named local variable slot.
	SlotLocal
)

// VarSlot identifies one local-variable binding inside a memory scope.
// It is comparable and usable as a map key.
type VarSlot struct {
	Kind  SlotKind
	Index int
	Name  string
}

// ThisSlot returns the reserved receiver slot.
func ThisSlot() VarSlot { return VarSlot{Kind: SlotThis} }

// ParamSlot returns the slot of parameter idx.
func ParamSlot(idx int) VarSlot { return VarSlot{Kind: SlotParam, Index: idx} }

// LocalSlot returns the slot of the named local.
func LocalSlot(name string) VarSlot { return VarSlot{Kind: SlotLocal, Name: name} }

func (s VarSlot) String() string {
	switch s.Kind {
	case SlotThis:
		return "this"
	case SlotParam:
		return fmt.Sprintf("param%d", s.Index)
	default:
		return s.Name
	}
}

// scope is one frame's local-variable bindings.
type scope map[VarSlot]symbolic.Value

// Memory is the stack of local-variable scopes. A fresh Memory carries
// the entry method's base scope; every call frame pushed afterwards
// pairs with exactly one additional scope.
type Memory struct {
	scopes []scope
}

// NewMemory returns a memory with the base scope.
func NewMemory() *Memory {
	return &Memory{scopes: []scope{{}}}
}

// Push adds a fresh scope for a new call frame.
func (m *Memory) Push() {
	m.scopes = append(m.scopes, scope{})
}

// Pop removes the current scope. The base scope is never popped.
func (m *Memory) Pop() {
	if len(m.scopes) <= 1 {
		return
	}
	m.scopes = m.scopes[:len(m.scopes)-1]
}

// Depth returns the number of scopes pushed on top of the base scope.
func (m *Memory) Depth() int { return len(m.scopes) - 1 }

// Store binds a slot in the current scope.
func (m *Memory) Store(slot VarSlot, v symbolic.Value) {
	m.scopes[len(m.scopes)-1][slot] = v
}

// Load reads a slot from the current scope.
func (m *Memory) Load(slot VarSlot) (symbolic.Value, bool) {
	v, ok := m.scopes[len(m.scopes)-1][slot]
	return v, ok
}

// Fork returns an independent deep copy.
func (m *Memory) Fork() *Memory {
	scopes := make([]scope, len(m.scopes))
	for i, sc := range m.scopes {
		cp := make(scope, len(sc))
		for k, v := range sc {
			cp[k] = v
		}
		scopes[i] = cp
	}
	return &Memory{scopes: scopes}
}
