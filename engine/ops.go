package engine

import (
	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/symbolic"
)

// ---------------------------------------------------------------------------
// Structured operations: the closed variant set dispatch matches on
// ---------------------------------------------------------------------------

// op is the control effect of one translated statement. The dispatcher
// type-switches over the closed set below; an unhandled variant is a
// programming error, never a silent fallthrough.
type op interface {
	controlOp()
}

// invokeOp is a call site: callee, marshalled arguments and the caller
// slot receiving the result.
type invokeOp struct {
	method bytecode.MethodDescriptor
	args   *CallArgs
	retVar *VarSlot
}

// branchTarget is one edge of a (possibly multi-way) branch. A nil
// block means the edge falls through to the next linear instruction.
type branchTarget struct {
	block *int
	guard symbolic.Bool
}

// branchOp is a conditional, unconditional or multi-way jump.
type branchOp struct {
	targets []branchTarget
}

// returnOp returns to the caller, optionally carrying a value.
type returnOp struct {
	value *symbolic.Value
}

// fallthroughOp has no control effect; execution continues with the
// next statement in the same block.
type fallthroughOp struct{}

func (invokeOp) controlOp()      {}
func (branchOp) controlOp()      {}
func (returnOp) controlOp()      {}
func (fallthroughOp) controlOp() {}
