// package icvm executes intcode programs.
//
// Instructions are built out of Ops, which are composed from icexpr expressions.
// An InstructionSet maps opcodes to their Ops, and stepping a machine dispatches on the opcode
// at the program counter.  Execution only ever stops at one of three suspend points:
// Output, NeedInput, and Halt.
package icvm

import (
	"context"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
)

// VM runs a single machine with a bound on the number of instructions executed.
// A VM is not safe for concurrent use.
type VM struct {
	set   *InstructionSet
	m     *Machine
	step  Op
	steps uint64
	err   error
}

// NewVM creates a VM which executes m using set.
// If set is nil, the complete instruction set is used.
func NewVM(set *InstructionSet, m *Machine) *VM {
	if set == nil {
		set = Complete()
	}
	return &VM{
		set:  set,
		m:    m,
		step: set.Step(),
	}
}

// Run executes at most maxSteps instructions.
// It returns Running if maxSteps is exhausted before the machine suspends.
// Once the machine has faulted, Run always returns the same error.
func (vm *VM) Run(ctx context.Context, in Input, maxSteps uint64) (State, error) {
	if vm.err != nil {
		return Running, vm.err
	}
	if in == nil {
		in = NoInput
	}
	for i := uint64(0); i < maxSteps; i++ {
		st, err := vm.step(vm.m, in)
		if err != nil {
			vm.fail(ctx, err)
			return Running, err
		}
		switch st.Kind() {
		case KindRunning:
			vm.steps++
			continue
		case KindNeedInput:
		case KindHalt:
			logctx.Debug(ctx, "machine halted", zap.Uint64("steps", vm.steps))
		default:
			vm.steps++
		}
		return st, nil
	}
	return Running, nil
}

// Steps returns the number of instructions executed so far.
func (vm *VM) Steps() uint64 {
	return vm.steps
}

func (vm *VM) Err() error {
	return vm.err
}

func (vm *VM) Machine() *Machine {
	return vm.m
}

func (vm *VM) fail(ctx context.Context, err error) {
	vm.err = err
	logctx.Error(ctx, "machine faulted", zap.Int("pc", vm.m.PC()), zap.Uint64("steps", vm.steps), zap.Error(err))
}
