// package icmem contains the state of an intcode machine: its registers and memory.
package icmem

import (
	"fmt"
	"slices"

	"intcodeweb.org/intcode"
)

type Word = intcode.Word

// Machine is the complete state of a running intcode program.
// A Machine is owned by a single goroutine; use Clone to hand a copy to another.
type Machine struct {
	pc      int
	relBase Word
	mem     []Word
}

// New creates a Machine with pc = 0 and relative base = 0.
// The Machine takes ownership of mem.
func New(mem []Word) *Machine {
	return &Machine{mem: mem}
}

// PC returns the program counter
func (m *Machine) PC() int {
	return m.pc
}

func (m *Machine) SetPC(pc int) {
	if pc < 0 {
		panic(fmt.Sprintf("icmem: negative program counter %d", pc))
	}
	m.pc = pc
}

// RelBase returns the relative base register
func (m *Machine) RelBase() Word {
	return m.relBase
}

func (m *Machine) AdjustRelBase(delta Word) {
	m.relBase += delta
}

// Len is the current length of memory.
// It grows on writes past the end, and never shrinks.
func (m *Machine) Len() int {
	return len(m.mem)
}

// Read returns the word at addr.
// Addresses outside of memory read as 0.
func (m *Machine) Read(addr int) Word {
	if addr < 0 || addr >= len(m.mem) {
		return 0
	}
	return m.mem[addr]
}

// Write stores x at addr, growing memory with zeros if addr is past the end.
// Write panics if addr is negative.
func (m *Machine) Write(addr int, x Word) {
	if addr < 0 {
		panic(fmt.Sprintf("icmem: write to negative address %d", addr))
	}
	if n := len(m.mem); addr >= n {
		m.mem = slices.Grow(m.mem, addr+1-n)[:addr+1]
		// the buffer may hold stale words past the old length
		clear(m.mem[n:])
	}
	m.mem[addr] = x
}

// Memory returns a copy of the machine's memory
func (m *Machine) Memory() []Word {
	return slices.Clone(m.mem)
}

// Clone returns a deep copy of m.
func (m *Machine) Clone() *Machine {
	return &Machine{
		pc:      m.pc,
		relBase: m.relBase,
		mem:     slices.Clone(m.mem),
	}
}

// CopyFrom overwrites m with the state of src, reusing m's memory buffer if it is large enough.
func (m *Machine) CopyFrom(src *Machine) {
	m.pc = src.pc
	m.relBase = src.relBase
	m.mem = append(m.mem[:0], src.mem...)
}

// Equal returns true if m and other have the same registers and memory contents.
func (m *Machine) Equal(other *Machine) bool {
	return m.pc == other.pc &&
		m.relBase == other.relBase &&
		slices.Equal(m.mem, other.mem)
}
