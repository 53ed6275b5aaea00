package icvm

import "fmt"

// StateKind identifies where a machine stopped.
type StateKind uint8

const (
	// KindRunning is not a suspend point. Operations return it to let execution continue.
	KindRunning StateKind = iota
	// KindOutput means the machine produced a value, and is paused after the output instruction.
	KindOutput
	// KindNeedInput means the machine is paused before an input instruction.
	KindNeedInput
	// KindHalt means the machine executed a halt instruction.
	KindHalt
)

func (k StateKind) String() string {
	switch k {
	case KindRunning:
		return "Running"
	case KindOutput:
		return "Output"
	case KindNeedInput:
		return "NeedInput"
	case KindHalt:
		return "Halt"
	default:
		return fmt.Sprintf("StateKind(%d)", uint8(k))
	}
}

// State is the result of running a machine.
// State = Running | Output(Word) | NeedInput | Halt
type State struct {
	kind StateKind
	out  Word
}

var (
	Running   = State{}
	NeedInput = State{kind: KindNeedInput}
	Halt      = State{kind: KindHalt}
)

// Output is the state of a machine which has just produced x
func Output(x Word) State {
	return State{kind: KindOutput, out: x}
}

func (s State) Kind() StateKind {
	return s.kind
}

// Value returns the output value. It is only meaningful for Output states.
func (s State) Value() Word {
	return s.out
}

// Suspended returns true for every state except Running.
func (s State) Suspended() bool {
	return s.kind != KindRunning
}

// ExpectOutput returns the output value, or a ProtocolError if s is not an Output.
func (s State) ExpectOutput() (Word, error) {
	if s.kind != KindOutput {
		return 0, &ProtocolError{Want: KindOutput, Have: s}
	}
	return s.out, nil
}

func (s State) String() string {
	if s.kind == KindOutput {
		return fmt.Sprintf("Output(%d)", s.out)
	}
	return s.kind.String()
}

// ProtocolError is returned when a caller expected the machine to stop in one state,
// and it stopped in another.  It is a mistake by the caller, not a fault in the program.
type ProtocolError struct {
	Want StateKind
	Have State
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: expected machine to stop with %v, but it stopped with %v", e.Want, e.Have)
}
