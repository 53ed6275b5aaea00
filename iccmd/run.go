package iccmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"

	"intcodeweb.org/intcode"
	"intcodeweb.org/intcode/icmem"
	"intcodeweb.org/intcode/icvm"
)

var runCmd = star.Command{
	Metadata: star.Metadata{
		Short: "run a program to completion, printing its outputs",
	},
	Flags: []star.IParam{inputParam, maxStepsParam, asciiParam},
	Pos:   []star.IParam{ProgParam},
	F: func(c star.Context) error {
		m := ProgParam.Load(c)
		in := icvm.Inputs(inputParam.LoadAll(c)...)
		outs, err := RunProgram(c.Context, m, in, maxStepsParam.Load(c))
		if err != nil {
			return err
		}
		return printOutputs(c.StdOut, outs, asciiParam.Load(c))
	},
}

var asciiParam = star.Param[bool]{
	Name:    "ascii",
	Default: star.Ptr("false"),
	Parse:   strconv.ParseBool,
}

var disCmd = star.Command{
	Metadata: star.Metadata{
		Short: "disassemble a program",
	},
	Pos: []star.IParam{ProgParam},
	F: func(c star.Context) error {
		for _, ix := range icvm.Disassemble(ProgParam.Load(c)) {
			c.Printf("%v\n", ix)
		}
		return nil
	},
}

// RunProgram runs m until it halts, returning all of its outputs.
// If maxSteps is 0, there is no limit on the number of instructions executed.
func RunProgram(ctx context.Context, m *icmem.Machine, in icvm.Input, maxSteps uint64) ([]intcode.Word, error) {
	vm := icvm.NewVM(nil, m)
	var outs []intcode.Word
	for {
		budget := uint64(1 << 20)
		if maxSteps > 0 {
			if vm.Steps() >= maxSteps {
				return outs, fmt.Errorf("program did not halt within %d steps", maxSteps)
			}
			budget = min(budget, maxSteps-vm.Steps())
		}
		st, err := vm.Run(ctx, in, budget)
		if err != nil {
			return outs, err
		}
		switch st.Kind() {
		case icvm.KindOutput:
			outs = append(outs, st.Value())
		case icvm.KindNeedInput:
			return outs, fmt.Errorf("program needs more input than was provided: %w",
				&icvm.ProtocolError{Want: icvm.KindOutput, Have: st})
		case icvm.KindHalt:
			logctx.Infof(ctx, "halted after %d steps", vm.Steps())
			return outs, nil
		}
	}
}

func printOutputs(w io.Writer, outs []intcode.Word, ascii bool) error {
	if ascii {
		_, err := io.WriteString(w, icvm.FormatASCII(outs))
		return err
	}
	for _, x := range outs {
		if _, err := fmt.Fprintln(w, x); err != nil {
			return err
		}
	}
	return nil
}
