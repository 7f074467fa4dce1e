package engine

import "github.com/javelin-vm/javelin/bytecode"

// ---------------------------------------------------------------------------
// CallStack: per-invocation frames
// ---------------------------------------------------------------------------

// Frame is the per-invocation record: where to resume in the caller,
// which caller slot (if any) receives the return value, and an opaque
// payload built-in procedures may thread across the call boundary.
type Frame struct {
	RetAddr       bytecode.Address
	RetVar        *VarSlot
	ProcedureData any
}

// CallStack is a stack of call frames exclusively owned by one
// execution state. Pushing a frame always pairs with pushing a memory
// scope; the engine's call-site helpers keep the two in lockstep.
type CallStack struct {
	frames []Frame
}

// NewCallStack returns an empty call stack.
func NewCallStack() *CallStack {
	return &CallStack{}
}

// Push adds a frame.
func (cs *CallStack) Push(f Frame) {
	cs.frames = append(cs.frames, f)
}

// Pop removes and returns the top frame. ok is false on an empty stack.
func (cs *CallStack) Pop() (Frame, bool) {
	if len(cs.frames) == 0 {
		return Frame{}, false
	}
	f := cs.frames[len(cs.frames)-1]
	cs.frames = cs.frames[:len(cs.frames)-1]
	return f, true
}

// Top returns a pointer to the current frame, or nil when empty.
func (cs *CallStack) Top() *Frame {
	if len(cs.frames) == 0 {
		return nil
	}
	return &cs.frames[len(cs.frames)-1]
}

// Depth returns the number of frames.
func (cs *CallStack) Depth() int { return len(cs.frames) }

// IsEmpty reports whether no frames are pushed.
func (cs *CallStack) IsEmpty() bool { return len(cs.frames) == 0 }

// RetAddr returns the current frame's return address, or the terminator
// sentinel when the stack is empty (a return from the entry method ends
// the program).
func (cs *CallStack) RetAddr() bytecode.Address {
	if top := cs.Top(); top != nil {
		return top.RetAddr
	}
	return bytecode.Terminator()
}

// Fork returns an independent deep copy.
func (cs *CallStack) Fork() *CallStack {
	frames := make([]Frame, len(cs.frames))
	copy(frames, cs.frames)
	return &CallStack{frames: frames}
}
