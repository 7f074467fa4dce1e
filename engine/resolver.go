package engine

import (
	"fmt"

	"github.com/javelin-vm/javelin/bytecode"
)

// Resolve maps an address descriptor to a concrete block. With a nil
// statement index it returns the method's first block (nil if the
// method has none). Otherwise it returns the block at blockIdx
// directly; the statement index never affects block selection, a block
// is always processed from the literal index given. Out-of-range block
// indices yield nil. A method absent from the loaded program fails with
// bytecode.ErrMethodUnresolved.
func (e *Engine) Resolve(method bytecode.MethodKey, blockIdx int, stmtIdx *int) (*bytecode.Block, error) {
	m, err := e.prog.Method(method)
	if err != nil {
		return nil, err
	}
	if stmtIdx == nil {
		if len(m.Blocks) == 0 {
			return nil, nil
		}
		return m.Blocks[0], nil
	}
	if blockIdx < 0 || blockIdx >= len(m.Blocks) {
		return nil, nil
	}
	return m.Blocks[blockIdx], nil
}

// nextLinearInstruction computes the address following addr: the next
// statement in the same block, else the first statement of the next
// block, else ErrIncorrectLocation — falling off the end of a method is
// never silently tolerated.
func (e *Engine) nextLinearInstruction(addr bytecode.Address) (bytecode.Address, error) {
	m, err := e.prog.Method(addr.Method)
	if err != nil {
		return bytecode.Address{}, err
	}
	if addr.Block < 0 || addr.Block >= len(m.Blocks) {
		return bytecode.Address{}, fmt.Errorf("%w: block %d of %s", ErrIncorrectLocation, addr.Block, addr.Method)
	}
	block := m.Blocks[addr.Block]
	if addr.Stmt+1 < len(block.Statements) {
		return addr.WithStmt(addr.Stmt + 1), nil
	}
	if addr.Block+1 < len(m.Blocks) {
		return addr.WithBlock(addr.Block + 1), nil
	}
	return bytecode.Address{}, fmt.Errorf("%w: past end of %s", ErrIncorrectLocation, addr.Method)
}
