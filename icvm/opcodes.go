package icvm

import (
	"fmt"
	"slices"
	"sync"

	"intcodeweb.org/intcode/icexpr"
	"intcodeweb.org/intcode/icmem"
)

const (
	OpAdd         Word = 1
	OpMul         Word = 2
	OpInput       Word = 3
	OpOutput      Word = 4
	OpJumpIfTrue  Word = 5
	OpJumpIfFalse Word = 6
	OpLessThan    Word = 7
	OpEquals      Word = 8
	OpAdjustBase  Word = 9
	OpHalt        Word = 99
)

// Opcode binds an opcode number to the body of the instruction.
type Opcode struct {
	Code Word
	Name string
	// Arity is the number of parameters, not counting the instruction word.
	Arity int
	// Body executes the instruction. It is responsible for moving the program counter.
	Body Op
}

// Width is the number of words the instruction occupies
func (oc *Opcode) Width() int {
	return oc.Arity + 1
}

// InstructionSet is a table of opcodes.
// Sets returned by Arithmetic and Complete are frozen; Clone them to extend.
type InstructionSet struct {
	ops    map[Word]*Opcode
	frozen bool
}

func NewInstructionSet() *InstructionSet {
	return &InstructionSet{ops: make(map[Word]*Opcode)}
}

// Define adds an opcode to the set.
func (is *InstructionSet) Define(oc Opcode) error {
	switch {
	case is.frozen:
		return fmt.Errorf("cannot define opcode %d: instruction set is frozen", oc.Code)
	case oc.Code < 1 || oc.Code > 99:
		return fmt.Errorf("opcode %d out of range [1, 99]", oc.Code)
	case oc.Body == nil:
		return fmt.Errorf("opcode %d (%s) has no body", oc.Code, oc.Name)
	case oc.Arity < 0:
		return fmt.Errorf("opcode %d (%s) has negative arity", oc.Code, oc.Name)
	}
	if prev, exists := is.ops[oc.Code]; exists {
		return fmt.Errorf("opcode %d is already defined as %s", oc.Code, prev.Name)
	}
	is.ops[oc.Code] = &oc
	return nil
}

// DefineBinary defines a 3 parameter instruction which writes fn(a, b) to the third parameter.
func (is *InstructionSet) DefineBinary(code Word, name string, fn func(a, b Word) Word) error {
	val := icexpr.Binary(name, icexpr.Param(1), icexpr.Param(2), fn)
	return is.Define(Opcode{
		Code:  code,
		Name:  name,
		Arity: 3,
		Body: Seq(
			Set(val, icexpr.ParamAddr(3)),
			Advance(4),
		),
	})
}

// DefineJump defines a 2 parameter instruction which jumps to the second parameter
// if pred holds for the first, and otherwise moves on to the next instruction.
func (is *InstructionSet) DefineJump(code Word, name string, pred func(Word) bool) error {
	cond := icexpr.Map(name, icexpr.Param(1), func(x Word) Word {
		return boolWord(pred(x))
	})
	next := icexpr.Binary("add", icexpr.PC(), icexpr.Lit(3), add)
	target := icexpr.If(cond, icexpr.Param(2), next)
	return is.Define(Opcode{
		Code:  code,
		Name:  name,
		Arity: 2,
		Body:  SetPC(icexpr.Deref(target)),
	})
}

// Lookup returns the opcode for code, or nil if there is none.
func (is *InstructionSet) Lookup(code Word) *Opcode {
	return is.ops[code]
}

// Codes returns the defined opcode numbers in ascending order
func (is *InstructionSet) Codes() []Word {
	codes := make([]Word, 0, len(is.ops))
	for code := range is.ops {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Clone returns an unfrozen copy of the set.
func (is *InstructionSet) Clone() *InstructionSet {
	ret := NewInstructionSet()
	for k, v := range is.ops {
		oc := *v
		ret.ops[k] = &oc
	}
	return ret
}

func (is *InstructionSet) freeze() *InstructionSet {
	is.frozen = true
	return is
}

// Step decodes the instruction at the program counter and executes it.
func (is *InstructionSet) Step() Op {
	return func(m *Machine, in Input) (State, error) {
		word := m.Read(m.PC())
		oc, exists := is.ops[icexpr.Opcode(word)]
		if !exists {
			return Running, icmem.Fault(m, "unknown opcode %d", icexpr.Opcode(word))
		}
		return oc.Body(m, in)
	}
}

// Run steps until the machine suspends.
func (is *InstructionSet) Run() Op {
	return UntilBlock(is.Step())
}

// Arithmetic is the first instruction set: add, mul, and halt.
func Arithmetic() *InstructionSet {
	return arithmetic()
}

// Complete is the full instruction set.
func Complete() *InstructionSet {
	return complete()
}

var arithmetic = sync.OnceValue(func() *InstructionSet {
	is := NewInstructionSet()
	must(is.DefineBinary(OpAdd, "add", add))
	must(is.DefineBinary(OpMul, "mul", mul))
	must(is.Define(Opcode{Code: OpHalt, Name: "halt", Body: Stop()}))
	return is.freeze()
})

var complete = sync.OnceValue(func() *InstructionSet {
	is := arithmetic().Clone()
	must(is.Define(Opcode{
		Code:  OpInput,
		Name:  "in",
		Arity: 1,
		Body:  Receive(icexpr.ParamAddr(1), 2),
	}))
	must(is.Define(Opcode{
		Code:  OpOutput,
		Name:  "out",
		Arity: 1,
		Body:  Emit(icexpr.Param(1), 2),
	}))
	must(is.DefineJump(OpJumpIfTrue, "jt", func(x Word) bool { return x != 0 }))
	must(is.DefineJump(OpJumpIfFalse, "jf", func(x Word) bool { return x == 0 }))
	must(is.DefineBinary(OpLessThan, "lt", func(a, b Word) Word { return boolWord(a < b) }))
	must(is.DefineBinary(OpEquals, "eq", func(a, b Word) Word { return boolWord(a == b) }))
	must(is.Define(Opcode{
		Code:  OpAdjustBase,
		Name:  "arb",
		Arity: 1,
		Body: Seq(
			AdjustRelBase(icexpr.Param(1)),
			Advance(2),
		),
	}))
	return is.freeze()
})

func add(a, b Word) Word { return a + b }

func mul(a, b Word) Word { return a * b }

func boolWord(x bool) Word {
	if x {
		return 1
	}
	return 0
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
