package icvm

import (
	"iter"
	"strconv"
)

// Stepper runs a machine until it blocks.
type Stepper = func(m *Machine) (State, error)

// RunUntilBlock returns a Stepper which executes the complete instruction set,
// drawing input from in.  The Stepper can be called again to continue from where the machine stopped.
func RunUntilBlock(in Input) Stepper {
	return Complete().RunUntilBlock(in)
}

func (is *InstructionSet) RunUntilBlock(in Input) Stepper {
	if in == nil {
		in = NoInput
	}
	run := is.Run()
	return func(m *Machine) (State, error) {
		return run(m, in)
	}
}

// Feed returns a Stepper which runs with exactly one input value available, x.
// There is no guarantee that x is consumed before the machine suspends.
func Feed(x Word) Stepper {
	return func(m *Machine) (State, error) {
		return RunUntilBlock(Once(x))(m)
	}
}

// Outputs returns the sequence of values output by m.
// The sequence ends when the machine halts.
// If the machine asks for input that in does not have, the sequence ends with a ProtocolError.
func Outputs(m *Machine, in Input) iter.Seq2[Word, error] {
	return Complete().Outputs(m, in)
}

func (is *InstructionSet) Outputs(m *Machine, in Input) iter.Seq2[Word, error] {
	step := is.RunUntilBlock(in)
	return func(yield func(Word, error) bool) {
		for {
			st, err := step(m)
			if err != nil {
				yield(0, err)
				return
			}
			switch st.Kind() {
			case KindOutput:
				if !yield(st.Value(), nil) {
					return
				}
			case KindHalt:
				return
			default:
				yield(0, &ProtocolError{Want: KindOutput, Have: st})
				return
			}
		}
	}
}

// CollectOutputs runs m until it halts and returns everything it output.
func CollectOutputs(m *Machine, in Input) ([]Word, error) {
	var ret []Word
	for x, err := range Outputs(m, in) {
		if err != nil {
			return ret, err
		}
		ret = append(ret, x)
	}
	return ret, nil
}

func formatWord(w Word) string {
	return strconv.FormatInt(w, 10)
}
