// package icexpr has expression trees describing numbers and locations
// obtainable from the state of a machine.
//
// A Value evaluates to a Word.  An Addr resolves to an index into memory.
// Instruction bodies are assembled out of these trees, and evaluated by a small
// recursive interpreter.
package icexpr

import (
	"fmt"

	"intcodeweb.org/intcode"
	"intcodeweb.org/intcode/icmem"
)

type (
	Word    = intcode.Word
	Machine = icmem.Machine
)

type valueCode uint8

const (
	vLiteral valueCode = iota
	vPC
	vRelBase
	vLoad
	vParam
	vUnary
	vBinary
	vIf
)

// Value is an expression which evaluates to a Word.
// Value = Literal | PC | RelBase | Load | Param | Unary | Binary | If
type Value struct {
	code valueCode
	// lit is set for literals, and holds the parameter index for params
	lit  Word
	addr *Addr
	args [3]*Value

	name string
	fn1  func(Word) Word
	fn2  func(Word, Word) Word
}

// Lit is a constant.
func Lit(x Word) *Value {
	return &Value{code: vLiteral, lit: x}
}

// PC evaluates to the program counter itself.
func PC() *Value {
	return &Value{code: vPC}
}

// RelBase evaluates to the relative base register.
func RelBase() *Value {
	return &Value{code: vRelBase}
}

// Load evaluates to the word stored at a.
func Load(a *Addr) *Value {
	return &Value{code: vLoad, addr: a}
}

// Param evaluates the i-th parameter of the current instruction (starting at 1),
// honoring the parameter mode encoded in the instruction word.
func Param(i int) *Value {
	if i < 1 {
		panic(fmt.Sprintf("icexpr: parameter index %d", i))
	}
	return &Value{code: vParam, lit: Word(i)}
}

// Map applies fn to the value of x.
func Map(name string, x *Value, fn func(Word) Word) *Value {
	return &Value{code: vUnary, name: name, args: [3]*Value{x}, fn1: fn}
}

// Binary combines the values of lhs and rhs with fn.
func Binary(name string, lhs, rhs *Value, fn func(Word, Word) Word) *Value {
	return &Value{code: vBinary, name: name, args: [3]*Value{lhs, rhs}, fn2: fn}
}

// If evaluates to then if cond is non-zero, otherwise to els.
// Only the selected branch is evaluated.
func If(cond, then, els *Value) *Value {
	return &Value{code: vIf, args: [3]*Value{cond, then, els}}
}

// Eval evaluates v against the state of m
func (v *Value) Eval(m *Machine) (Word, error) {
	switch v.code {
	case vLiteral:
		return v.lit, nil
	case vPC:
		return Word(m.PC()), nil
	case vRelBase:
		return m.RelBase(), nil
	case vLoad:
		a, err := v.addr.Resolve(m)
		if err != nil {
			return 0, err
		}
		return m.Read(a), nil
	case vParam:
		inner, err := paramValue(m, int(v.lit))
		if err != nil {
			return 0, err
		}
		return inner.Eval(m)
	case vUnary:
		x, err := v.args[0].Eval(m)
		if err != nil {
			return 0, err
		}
		return v.fn1(x), nil
	case vBinary:
		l, err := v.args[0].Eval(m)
		if err != nil {
			return 0, err
		}
		r, err := v.args[1].Eval(m)
		if err != nil {
			return 0, err
		}
		return v.fn2(l, r), nil
	case vIf:
		c, err := v.args[0].Eval(m)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return v.args[1].Eval(m)
		}
		return v.args[2].Eval(m)
	default:
		panic(v.code)
	}
}

// Deref turns the value into an address.
func (v *Value) Deref() *Addr {
	return Deref(v)
}

func (v *Value) String() string {
	switch v.code {
	case vLiteral:
		return fmt.Sprint(v.lit)
	case vPC:
		return "pc"
	case vRelBase:
		return "rb"
	case vLoad:
		return fmt.Sprintf("[%v]", v.addr)
	case vParam:
		return fmt.Sprintf("$%d", v.lit)
	case vUnary:
		return fmt.Sprintf("%s(%v)", v.name, v.args[0])
	case vBinary:
		return fmt.Sprintf("%s(%v, %v)", v.name, v.args[0], v.args[1])
	case vIf:
		return fmt.Sprintf("if(%v, %v, %v)", v.args[0], v.args[1], v.args[2])
	default:
		return fmt.Sprintf("Value{%d}", v.code)
	}
}

type addrCode uint8

const (
	aPC addrCode = iota
	aDeref
	aRelative
	aOffset
	aParam
)

// Addr is an expression which resolves to a location in memory.
// Addr = AtPC | Deref | RelTo | Offset | ParamAddr
type Addr struct {
	code addrCode
	// n is the offset for Offset, and the parameter index for ParamAddr
	n     Word
	inner *Addr
	val   *Value
}

// AtPC is the location of the current instruction word.
func AtPC() *Addr {
	return &Addr{code: aPC}
}

// Deref is the location named by the value of v.
func Deref(v *Value) *Addr {
	return &Addr{code: aDeref, val: v}
}

// RelTo is the location at v, measured from the relative base.
func RelTo(v *Value) *Addr {
	return &Addr{code: aRelative, val: v}
}

// ParamAddr is the destination named by the i-th parameter of the current instruction.
func ParamAddr(i int) *Addr {
	if i < 1 {
		panic(fmt.Sprintf("icexpr: parameter index %d", i))
	}
	return &Addr{code: aParam, n: Word(i)}
}

// Offset returns the address n words after a.
func (a *Addr) Offset(n Word) *Addr {
	return &Addr{code: aOffset, inner: a, n: n}
}

// Load returns the value stored at a
func (a *Addr) Load() *Value {
	return Load(a)
}

// Resolve computes the memory index a refers to.
// Negative indexes are a ProgramError.
func (a *Addr) Resolve(m *Machine) (int, error) {
	x, err := a.resolve(m)
	if err != nil {
		return 0, err
	}
	if x < 0 {
		return 0, icmem.Fault(m, "negative address %d from %v", x, a)
	}
	return int(x), nil
}

func (a *Addr) resolve(m *Machine) (Word, error) {
	switch a.code {
	case aPC:
		return Word(m.PC()), nil
	case aDeref:
		return a.val.Eval(m)
	case aRelative:
		x, err := a.val.Eval(m)
		if err != nil {
			return 0, err
		}
		return m.RelBase() + x, nil
	case aOffset:
		x, err := a.inner.resolve(m)
		if err != nil {
			return 0, err
		}
		return x + a.n, nil
	case aParam:
		inner, err := paramAddr(m, int(a.n))
		if err != nil {
			return 0, err
		}
		return inner.resolve(m)
	default:
		panic(a.code)
	}
}

func (a *Addr) String() string {
	switch a.code {
	case aPC:
		return "pc"
	case aDeref:
		return fmt.Sprintf("*%v", a.val)
	case aRelative:
		return fmt.Sprintf("rb+%v", a.val)
	case aOffset:
		return fmt.Sprintf("%v+%d", a.inner, a.n)
	case aParam:
		return fmt.Sprintf("&$%d", a.n)
	default:
		return fmt.Sprintf("Addr{%d}", a.code)
	}
}
