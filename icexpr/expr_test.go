package icexpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intcodeweb.org/intcode/icmem"
)

func TestParamMode(t *testing.T) {
	t.Parallel()
	type testCase struct {
		Word  Word
		Modes []Mode
	}
	tcs := []testCase{
		{Word: 1, Modes: []Mode{Position, Position, Position}},
		{Word: 1002, Modes: []Mode{Position, Immediate, Position}},
		{Word: 21101, Modes: []Mode{Immediate, Immediate, Relative}},
		{Word: 204, Modes: []Mode{Relative}},
	}
	for _, tc := range tcs {
		for i, want := range tc.Modes {
			mode, err := ParamMode(tc.Word, i+1)
			require.NoError(t, err)
			require.Equal(t, want, mode, "word=%d param=%d", tc.Word, i+1)
		}
	}
	_, err := ParamMode(301, 1)
	require.Error(t, err)
	require.Equal(t, Word(2), Opcode(1002))
	require.Equal(t, Word(99), Opcode(99))
}

func TestModesAgree(t *testing.T) {
	t.Parallel()
	// the operand is 4 in every case, and memory[4] = 77
	for _, word := range []Word{1, 201} {
		m := icmem.New([]Word{word, 4, 0, 0, 77})
		x, err := Param(1).Eval(m)
		require.NoError(t, err)
		require.Equal(t, Word(77), x)

		a, err := ParamAddr(1).Resolve(m)
		require.NoError(t, err)
		require.Equal(t, 4, a)
	}
	m := icmem.New([]Word{101, 4, 0, 0, 77})
	x, err := Param(1).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(4), x)
}

func TestRelative(t *testing.T) {
	t.Parallel()
	m := icmem.New([]Word{22201, -3, 1, 9})
	m.AdjustRelBase(5)
	m.Write(6, 12)
	x, err := Param(1).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(1), x)
	y, err := Param(2).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(12), y)
	a, err := ParamAddr(3).Resolve(m)
	require.NoError(t, err)
	require.Equal(t, 14, a)
}

func TestImmediateDoesNotDereference(t *testing.T) {
	t.Parallel()
	// operands point far outside of memory; dereferencing them would read 0
	m := icmem.New([]Word{1101, 500, 600, 0})
	sum := Binary("add", Param(1), Param(2), func(a, b Word) Word { return a + b })
	x, err := sum.Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(1100), x)
	require.Equal(t, 4, m.Len())
}

func TestImmediateDestination(t *testing.T) {
	t.Parallel()
	m := icmem.New([]Word{10001, 1, 2, 3})
	_, err := ParamAddr(3).Resolve(m)
	require.True(t, icmem.IsProgramError(err))
}

func TestInvalidMode(t *testing.T) {
	t.Parallel()
	m := icmem.New([]Word{501, 1, 2, 3})
	_, err := Param(1).Eval(m)
	require.True(t, icmem.IsProgramError(err))
}

func TestNegativeAddress(t *testing.T) {
	t.Parallel()
	m := icmem.New([]Word{1, -1, 0, 0})
	_, err := Param(1).Eval(m)
	require.True(t, icmem.IsProgramError(err))
}

func TestCompose(t *testing.T) {
	t.Parallel()
	m := icmem.New([]Word{5, 6, 7, 8})
	m.SetPC(1)
	m.AdjustRelBase(2)

	x, err := AtPC().Offset(1).Load().Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(7), x)

	x, err = Load(RelTo(Lit(1))).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(8), x)

	neg := Map("neg", PC(), func(x Word) Word { return -x })
	x, err = neg.Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(-1), x)

	x, err = If(Lit(0), Lit(1), RelBase()).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(2), x)

	// the branch that is not taken is never evaluated
	x, err = If(Lit(1), Lit(1), Load(Deref(Lit(-5)))).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(1), x)

	x, err = Load(Deref(Load(AtPC()))).Eval(m)
	require.NoError(t, err)
	require.Equal(t, Word(0), x)
}

func TestString(t *testing.T) {
	t.Parallel()
	v := Binary("mul", Param(1), Lit(3), nil)
	require.Equal(t, "mul($1, 3)", v.String())
	require.Equal(t, "[pc+2]", AtPC().Offset(2).Load().String())
	require.Equal(t, "[rb+[pc+1]]", ParamValueExpr(Relative, 1).String())
	require.Equal(t, "*[pc+1]", Load(AtPC().Offset(1)).Deref().String())
	require.Equal(t, "&$3", ParamAddr(3).String())
}
