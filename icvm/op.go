package icvm

import (
	"intcodeweb.org/intcode"
	"intcodeweb.org/intcode/icexpr"
	"intcodeweb.org/intcode/icmem"
)

type (
	Word    = intcode.Word
	Machine = icmem.Machine
)

// Op is an operation on a machine.
// An Op returns Running to let execution continue, or one of the suspend states.
// An error is always a fault that ends execution.
type Op func(m *Machine, in Input) (State, error)

// Seq runs ops in order, stopping at the first one that suspends or fails.
func Seq(ops ...Op) Op {
	return func(m *Machine, in Input) (State, error) {
		for _, op := range ops {
			st, err := op(m, in)
			if err != nil || st.Suspended() {
				return st, err
			}
		}
		return Running, nil
	}
}

// UntilBlock repeats op until it suspends or fails.
func UntilBlock(op Op) Op {
	return func(m *Machine, in Input) (State, error) {
		for {
			st, err := op(m, in)
			if err != nil || st.Suspended() {
				return st, err
			}
		}
	}
}

// Set evaluates src and writes it to dst
func Set(src *icexpr.Value, dst *icexpr.Addr) Op {
	return func(m *Machine, _ Input) (State, error) {
		x, err := src.Eval(m)
		if err != nil {
			return Running, err
		}
		addr, err := dst.Resolve(m)
		if err != nil {
			return Running, err
		}
		m.Write(addr, x)
		return Running, nil
	}
}

// SetExternal writes the result of calling fn to dst. fn is called every time the operation runs.
func SetExternal(fn func() Word, dst *icexpr.Addr) Op {
	return func(m *Machine, _ Input) (State, error) {
		addr, err := dst.Resolve(m)
		if err != nil {
			return Running, err
		}
		m.Write(addr, fn())
		return Running, nil
	}
}

// SetPC moves the program counter to target
func SetPC(target *icexpr.Addr) Op {
	return func(m *Machine, _ Input) (State, error) {
		addr, err := target.Resolve(m)
		if err != nil {
			return Running, err
		}
		m.SetPC(addr)
		return Running, nil
	}
}

// Advance moves the program counter forward n words.
func Advance(n int) Op {
	return SetPC(icexpr.AtPC().Offset(Word(n)))
}

// AdjustRelBase adds delta to the relative base
func AdjustRelBase(delta *icexpr.Value) Op {
	return func(m *Machine, _ Input) (State, error) {
		x, err := delta.Eval(m)
		if err != nil {
			return Running, err
		}
		m.AdjustRelBase(x)
		return Running, nil
	}
}

// Emit evaluates x, advances past the instruction, and suspends with Output(x).
func Emit(x *icexpr.Value, width int) Op {
	return func(m *Machine, in Input) (State, error) {
		v, err := x.Eval(m)
		if err != nil {
			return Running, err
		}
		if _, err := Advance(width)(m, in); err != nil {
			return Running, err
		}
		return Output(v), nil
	}
}

// Receive writes the next input to dst, then advances width words.
// If there is no input available, Receive returns NeedInput and leaves the machine untouched.
func Receive(dst *icexpr.Addr, width int) Op {
	return func(m *Machine, in Input) (State, error) {
		addr, err := dst.Resolve(m)
		if err != nil {
			return Running, err
		}
		x, ok := in.Next()
		if !ok {
			return NeedInput, nil
		}
		m.Write(addr, x)
		return Advance(width)(m, in)
	}
}

// Stop suspends with Halt without changing the machine.
func Stop() Op {
	return func(*Machine, Input) (State, error) {
		return Halt, nil
	}
}
