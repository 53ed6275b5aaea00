package icexpr

import (
	"fmt"

	"intcodeweb.org/intcode/icmem"
)

// Mode is a parameter mode; how an operand of an instruction is resolved.
type Mode uint8

const (
	// Position operands are the address of the value
	Position Mode = 0
	// Immediate operands are the value itself
	Immediate Mode = 1
	// Relative operands are an address measured from the relative base
	Relative Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Opcode returns the operation selector of an instruction word.
func Opcode(word Word) Word {
	return word % 100
}

// ParamMode decodes the mode of the i-th parameter (starting at 1) from an instruction word.
func ParamMode(word Word, i int) (Mode, error) {
	digit := word
	for j := 0; j < i+1; j++ {
		digit /= 10
	}
	digit %= 10
	switch mode := Mode(digit); mode {
	case Position, Immediate, Relative:
		return mode, nil
	default:
		return 0, fmt.Errorf("invalid mode %d for parameter %d", digit, i)
	}
}

// operand is the location of the raw i-th operand
func operand(i int) *Addr {
	return AtPC().Offset(Word(i))
}

// ParamValueExpr returns the expression for the value form of a parameter with the given mode.
func ParamValueExpr(mode Mode, i int) *Value {
	switch mode {
	case Position:
		return Load(Deref(Load(operand(i))))
	case Immediate:
		return Load(operand(i))
	case Relative:
		return Load(RelTo(Load(operand(i))))
	default:
		panic(mode)
	}
}

// ParamAddrExpr returns the expression for the address form of a parameter.
// Immediate parameters have no address; ok is false for them.
func ParamAddrExpr(mode Mode, i int) (_ *Addr, ok bool) {
	switch mode {
	case Position:
		return Deref(Load(operand(i))), true
	case Relative:
		return RelTo(Load(operand(i))), true
	default:
		return nil, false
	}
}

func paramValue(m *Machine, i int) (*Value, error) {
	word := m.Read(m.PC())
	mode, err := ParamMode(word, i)
	if err != nil {
		return nil, faultFrom(m, err)
	}
	return ParamValueExpr(mode, i), nil
}

func paramAddr(m *Machine, i int) (*Addr, error) {
	word := m.Read(m.PC())
	mode, err := ParamMode(word, i)
	if err != nil {
		return nil, faultFrom(m, err)
	}
	a, ok := ParamAddrExpr(mode, i)
	if !ok {
		return nil, faultFrom(m, fmt.Errorf("parameter %d is a destination, but has mode %v", i, mode))
	}
	return a, nil
}

func faultFrom(m *Machine, err error) error {
	return icmem.Fault(m, "%v", err)
}
