// package icsys runs systems of many intcode machines.
//
// Every machine in a system is owned by exactly one goroutine at a time.
// Machines which need the same starting state get their own Clone.
package icsys

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcodeweb.org/intcode"
	"intcodeweb.org/intcode/icmem"
	"intcodeweb.org/intcode/icvm"
)

type Word = intcode.Word

var ErrNoAmplifiers = errors.New("amplifier: at least one phase is required")

// Amplifier computes the signal produced by a series of machines running prog,
// each configured with one of phases.
type Amplifier = func(ctx context.Context, prog *icmem.Machine, phases []Word) (Word, error)

// RunChain runs one copy of prog per phase, in series.
// Each copy is given its phase, then the signal from the previous copy (0 for the first),
// and its first output is the signal passed on.
func RunChain(ctx context.Context, prog *icmem.Machine, phases []Word) (Word, error) {
	if len(phases) == 0 {
		return 0, ErrNoAmplifiers
	}
	var signal Word
	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		m := prog.Clone()
		st, err := icvm.RunUntilBlock(icvm.Inputs(phase, signal))(m)
		if err != nil {
			return 0, fmt.Errorf("amplifier %d: %w", i, err)
		}
		if signal, err = st.ExpectOutput(); err != nil {
			return 0, fmt.Errorf("amplifier %d: %w", i, err)
		}
	}
	return signal, nil
}

// RunFeedback runs one copy of prog per phase, connected in a loop.
// The signal goes around the loop until an amplifier halts.  The last signal produced by the
// final amplifier is returned.
func RunFeedback(ctx context.Context, prog *icmem.Machine, phases []Word) (Word, error) {
	if len(phases) == 0 {
		return 0, ErrNoAmplifiers
	}
	machines := make([]*icmem.Machine, len(phases))
	for i, phase := range phases {
		machines[i] = prog.Clone()
		st, err := icvm.Feed(phase)(machines[i])
		if err != nil {
			return 0, fmt.Errorf("amplifier %d: %w", i, err)
		}
		if st != icvm.NeedInput {
			return 0, fmt.Errorf("amplifier %d: priming with phase %d: %w", i, phase,
				&icvm.ProtocolError{Want: icvm.KindNeedInput, Have: st})
		}
	}

	var signal, final Word
	for rounds := 0; ; rounds++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for i, m := range machines {
			st, err := icvm.Feed(signal)(m)
			if err != nil {
				return 0, fmt.Errorf("amplifier %d: %w", i, err)
			}
			switch st.Kind() {
			case icvm.KindOutput:
				signal = st.Value()
			case icvm.KindHalt:
				logctx.Debug(ctx, "feedback loop halted", zap.Int("rounds", rounds), zap.Int64("signal", final))
				return final, nil
			default:
				return 0, fmt.Errorf("amplifier %d: %w", i, &icvm.ProtocolError{Want: icvm.KindOutput, Have: st})
			}
		}
		final = signal
	}
}

// MaxSignal tries every ordering of phases with amp, and returns the largest signal,
// along with the ordering that produced it.
func MaxSignal(ctx context.Context, prog *icmem.Machine, phases []Word, amp Amplifier) (best Word, bestPhases []Word, _ error) {
	first := true
	err := permute(slices.Clone(phases), func(perm []Word) error {
		signal, err := amp(ctx, prog, perm)
		if err != nil {
			return fmt.Errorf("phases %v: %w", perm, err)
		}
		if first || signal > best {
			first = false
			best = signal
			bestPhases = slices.Clone(perm)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, bestPhases, nil
}

// permute calls fn with every permutation of xs, using Heap's algorithm.
// xs is modified in place; fn must not retain it.
func permute(xs []Word, fn func([]Word) error) error {
	c := make([]int, len(xs))
	if err := fn(xs); err != nil {
		return err
	}
	for i := 1; i < len(xs); {
		if c[i] < i {
			if i%2 == 0 {
				xs[0], xs[i] = xs[i], xs[0]
			} else {
				xs[c[i]], xs[i] = xs[i], xs[c[i]]
			}
			if err := fn(xs); err != nil {
				return err
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}
