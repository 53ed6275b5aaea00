package icvm

import (
	"fmt"
	"strings"

	"intcodeweb.org/intcode/icexpr"
)

// Operand is a decoded instruction parameter
type Operand struct {
	Mode icexpr.Mode
	Raw  Word
}

func (o Operand) String() string {
	switch o.Mode {
	case icexpr.Immediate:
		return formatWord(o.Raw)
	case icexpr.Relative:
		return fmt.Sprintf("rb[%d]", o.Raw)
	default:
		return fmt.Sprintf("[%d]", o.Raw)
	}
}

// Instruction is a decoded instruction, or a single data word if Op is nil.
type Instruction struct {
	Addr   int
	Word   Word
	Op     *Opcode
	Params []Operand
}

// Width is the number of words covered by the instruction
func (ix Instruction) Width() int {
	if ix.Op == nil {
		return 1
	}
	return ix.Op.Width()
}

func (ix Instruction) String() string {
	if ix.Op == nil {
		return fmt.Sprintf("%5d: data %d", ix.Addr, ix.Word)
	}
	params := make([]string, len(ix.Params))
	for i, p := range ix.Params {
		params[i] = p.String()
	}
	return strings.TrimRight(fmt.Sprintf("%5d: %-4s %s", ix.Addr, ix.Op.Name, strings.Join(params, ", ")), " ")
}

// Disassemble decodes the memory of m from start to end using the instruction set.
// Words which are not valid instructions are reported as data.
func (is *InstructionSet) Disassemble(m *Machine) []Instruction {
	var ret []Instruction
	for addr := 0; addr < m.Len(); {
		ix := is.decode(m, addr)
		ret = append(ret, ix)
		addr += ix.Width()
	}
	return ret
}

// Disassemble decodes m using the complete instruction set
func Disassemble(m *Machine) []Instruction {
	return Complete().Disassemble(m)
}

func (is *InstructionSet) decode(m *Machine, addr int) Instruction {
	word := m.Read(addr)
	data := Instruction{Addr: addr, Word: word}
	oc := is.Lookup(icexpr.Opcode(word))
	if oc == nil {
		return data
	}
	params := make([]Operand, oc.Arity)
	for i := range params {
		mode, err := icexpr.ParamMode(word, i+1)
		if err != nil {
			return data
		}
		params[i] = Operand{Mode: mode, Raw: m.Read(addr + i + 1)}
	}
	return Instruction{Addr: addr, Word: word, Op: oc, Params: params}
}
