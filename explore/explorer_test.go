package explore

import (
	"context"
	"testing"

	"github.com/javelin-vm/javelin/bytecode"
	"github.com/javelin-vm/javelin/engine"
)

// branchingProgram builds a main method whose single conditional splits
// into two returning paths.
func branchingProgram() (*bytecode.Program, bytecode.MethodKey) {
	cond := bytecode.CondExpr{
		Op:    bytecode.CmpEq,
		Left:  bytecode.ParamOp(0, bytecode.TypeInt),
		Right: bytecode.ConstOp(0, bytecode.TypeInt),
	}
	one := bytecode.ConstOp(1, bytecode.TypeInt)
	zero := bytecode.ConstOp(0, bytecode.TypeInt)

	m := &bytecode.Method{
		Descriptor: bytecode.MethodDescriptor{Class: "C", Name: "main", Ret: bytecode.TypeInt},
		Blocks: []*bytecode.Block{
			{Statements: []bytecode.Statement{{Kind: bytecode.StmtIf, Cond: &cond, Target: 2}}},
			{Statements: []bytecode.Statement{{Kind: bytecode.StmtReturn, Value: &one}}},
			{Statements: []bytecode.Statement{{Kind: bytecode.StmtReturn, Value: &zero}}},
		},
	}
	prog := bytecode.NewProgram()
	prog.AddMethod(m)
	return prog, m.Descriptor.Key()
}

func TestExplorerFindsAllExits(t *testing.T) {
	prog, entry := branchingProgram()
	e := engine.New(prog)
	x := &Explorer{Engine: e}

	res, err := x.Run(context.Background(), e.NewEntryState(entry))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Exited) != 2 {
		t.Fatalf("exited paths = %d, want 2", len(res.Exited))
	}
	if res.Errors != 0 {
		t.Errorf("errors = %d, want 0", res.Errors)
	}
	// One step for the branch, one per returning path.
	if res.Steps != 3 {
		t.Errorf("steps = %d, want 3", res.Steps)
	}

	codes := map[int64]bool{}
	for _, s := range res.Exited {
		code, ok := s.History.ExitCode()
		if !ok {
			t.Fatal("exited state has no exit code")
		}
		c, _ := code.Concrete()
		codes[c] = true
	}
	if !codes[0] || !codes[1] {
		t.Errorf("exit codes = %v, want both 0 and 1", codes)
	}
}

func TestExplorerStepBudget(t *testing.T) {
	prog, entry := branchingProgram()
	e := engine.New(prog)
	x := &Explorer{Engine: e, MaxSteps: 1}

	res, err := x.Run(context.Background(), e.NewEntryState(entry))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Steps != 1 {
		t.Errorf("steps = %d, want 1", res.Steps)
	}
	if len(res.Exited) != 0 {
		t.Errorf("exited = %d within a 1-step budget, want 0", len(res.Exited))
	}
}

func TestExplorerCountsStructuralErrors(t *testing.T) {
	// A lone fallthrough statement runs past the end of the method.
	m := &bytecode.Method{
		Descriptor: bytecode.MethodDescriptor{Class: "C", Name: "broken", Ret: bytecode.TypeVoid},
		Blocks: []*bytecode.Block{
			{Statements: []bytecode.Statement{{Kind: bytecode.StmtNop}}},
		},
	}
	prog := bytecode.NewProgram()
	prog.AddMethod(m)
	e := engine.New(prog)
	x := &Explorer{Engine: e}

	res, err := x.Run(context.Background(), e.NewEntryState(m.Descriptor.Key()))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Errors != 1 {
		t.Errorf("errors = %d, want 1", res.Errors)
	}
	if len(res.Exited) != 0 {
		t.Error("broken path must not reach an exit")
	}
}

func TestExplorerCancellation(t *testing.T) {
	prog, entry := branchingProgram()
	e := engine.New(prog)
	x := &Explorer{Engine: e, Workers: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := x.Run(ctx, e.NewEntryState(entry))
	if err == nil {
		t.Fatal("cancelled context must abort the run")
	}
}
