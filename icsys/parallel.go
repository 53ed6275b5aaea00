package icsys

import (
	"context"
	"fmt"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intcodeweb.org/intcode/icmem"
	"intcodeweb.org/intcode/icvm"
)

// stepBatch is the number of instructions a job runs between checks of its context.
const stepBatch = 1 << 16

// Job is a machine to run to completion with a fixed input.
type Job struct {
	Name    string
	Machine *icmem.Machine
	Input   []Word
	// MaxSteps bounds the number of instructions executed. 0 means no bound.
	MaxSteps uint64
}

type Result struct {
	Name    string
	Outputs []Word
	Steps   uint64
}

// RunParallel runs each job on its own goroutine, and returns the results in the same order as jobs.
// The jobs must not share Machines.  If any job fails, the others are cancelled.
func RunParallel(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		eg.Go(func() error {
			res, err := runJob(ctx, job)
			if err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runJob(ctx context.Context, job Job) (Result, error) {
	vm := icvm.NewVM(nil, job.Machine)
	in := icvm.Inputs(job.Input...)
	res := Result{Name: job.Name}
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		budget := uint64(stepBatch)
		if job.MaxSteps > 0 {
			if vm.Steps() >= job.MaxSteps {
				return Result{}, fmt.Errorf("exceeded %d steps", job.MaxSteps)
			}
			budget = min(budget, job.MaxSteps-vm.Steps())
		}
		st, err := vm.Run(ctx, in, budget)
		if err != nil {
			return Result{}, err
		}
		switch st.Kind() {
		case icvm.KindOutput:
			res.Outputs = append(res.Outputs, st.Value())
		case icvm.KindHalt:
			res.Steps = vm.Steps()
			logctx.Debug(ctx, "job done", zap.String("job", job.Name), zap.Uint64("steps", res.Steps))
			return res, nil
		case icvm.KindNeedInput:
			return Result{}, &icvm.ProtocolError{Want: icvm.KindOutput, Have: st}
		}
	}
}
