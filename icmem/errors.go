package icmem

import (
	"errors"
	"fmt"
)

// ParseError is returned when program text contains something other than integers.
type ParseError struct {
	// Index is the position of the token in the comma separated list
	Index int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parsing program: invalid token %q at index %d", e.Token, e.Index)
	}
	return fmt.Sprintf("parsing program: invalid token %q at index %d: %v", e.Token, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProgramError is a fault in the program being executed.
// Execution cannot continue past a ProgramError.
type ProgramError struct {
	// Addr is the program counter of the faulting instruction
	Addr int
	// Word is the instruction word at Addr
	Word Word
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("program error at %d (instruction %d): %s", e.Addr, e.Word, e.Msg)
}

// Fault returns a ProgramError for the instruction at m's program counter.
func Fault(m *Machine, format string, args ...any) *ProgramError {
	return &ProgramError{
		Addr: m.PC(),
		Word: m.Read(m.PC()),
		Msg:  fmt.Sprintf(format, args...),
	}
}

func IsProgramError(err error) bool {
	var target *ProgramError
	return errors.As(err, &target)
}

func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}
