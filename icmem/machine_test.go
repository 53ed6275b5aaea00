package icmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	type testCase struct {
		Text string
		Mem  []Word
		Err  bool
	}
	tcs := []testCase{
		{Text: "1,0,0,0,99", Mem: []Word{1, 0, 0, 0, 99}},
		{Text: "  1,-2,3\n", Mem: []Word{1, -2, 3}},
		{Text: "104,1125899906842624,99,", Mem: []Word{104, 1125899906842624, 99}},
		{Text: "1, 2 ,3", Mem: []Word{1, 2, 3}},
		{Text: "1,x,3", Err: true},
		{Text: "1,,3", Err: true},
		{Text: "", Err: true},
		{Text: ",1,2", Err: true},
		{Text: "1,2,,", Err: true},
	}
	for _, tc := range tcs {
		t.Run(tc.Text, func(t *testing.T) {
			m, err := Parse(tc.Text)
			if tc.Err {
				require.Error(t, err)
				require.True(t, IsParseError(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.Mem, m.Memory())
			require.Equal(t, 0, m.PC())
			require.Equal(t, Word(0), m.RelBase())
		})
	}
}

func TestParseErrorToken(t *testing.T) {
	t.Parallel()
	_, err := Parse("1,2,abc,4")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 2, perr.Index)
	require.Equal(t, "abc", perr.Token)
	require.Contains(t, err.Error(), `"abc"`)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	m := MustParse("109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99")
	m.Write(120, -7)
	m2, err := Parse(m.String())
	require.NoError(t, err)
	require.Equal(t, m.Memory(), m2.Memory())
}

func TestGrowth(t *testing.T) {
	t.Parallel()
	m := New([]Word{1, 2, 3})
	require.Equal(t, Word(0), m.Read(10))
	require.Equal(t, Word(0), m.Read(-1))
	require.Equal(t, 3, m.Len())

	m.Write(10, 77)
	require.Equal(t, 11, m.Len())
	require.Equal(t, Word(77), m.Read(10))
	for i := 3; i < 10; i++ {
		require.Equal(t, Word(0), m.Read(i))
	}
	require.Equal(t, Word(3), m.Read(2))

	m.Write(4, 5)
	require.Equal(t, 11, m.Len())
	require.Panics(t, func() { m.Write(-1, 0) })
}

func TestCloneIsolation(t *testing.T) {
	t.Parallel()
	m := MustParse("1,0,0,0,99")
	m.SetPC(4)
	m.AdjustRelBase(9)

	c1, c2 := m.Clone(), m.Clone()
	require.True(t, c1.Equal(m))

	c1.Write(0, 100)
	c1.Write(50, 1)
	c1.SetPC(0)
	c2.AdjustRelBase(-20)

	require.Equal(t, Word(1), m.Read(0))
	require.Equal(t, Word(1), c2.Read(0))
	require.Equal(t, 5, c2.Len())
	require.Equal(t, 4, m.PC())
	require.Equal(t, 4, c2.PC())
	require.Equal(t, Word(9), c1.RelBase())
	require.Equal(t, Word(-11), c2.RelBase())
}

func TestCopyFrom(t *testing.T) {
	t.Parallel()
	dst := New(make([]Word, 100))
	src := MustParse("3,0,4,0,99")
	src.SetPC(2)
	dst.CopyFrom(src)
	require.True(t, dst.Equal(src))

	dst.Write(0, 42)
	require.Equal(t, Word(3), src.Read(0))
}

func TestPool(t *testing.T) {
	t.Parallel()
	var p Pool
	src := MustParse("1,2,3")
	a := p.Fork(src)
	require.True(t, a.Equal(src))
	a.Write(0, 9)
	p.Release(a)
	require.Equal(t, 1, p.Len())

	b := p.Fork(src)
	require.Equal(t, 0, p.Len())
	require.True(t, b.Equal(src))
	require.Equal(t, Word(1), src.Read(0))
}

func TestLoader(t *testing.T) {
	t.Parallel()
	l := NewLoader(4)
	m1, err := l.Load("1,0,0,0,99")
	require.NoError(t, err)
	m2, err := l.Load(" 1,0,0,0,99,\n")
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())

	m1.Write(0, 2)
	require.Equal(t, Word(1), m2.Read(0))

	_, err = l.Load("1,?")
	require.True(t, IsParseError(err))
	require.Equal(t, 1, l.Len())
}

func TestFault(t *testing.T) {
	t.Parallel()
	m := MustParse("1,2,42")
	m.SetPC(2)
	err := Fault(m, "unknown opcode %d", 42)
	require.True(t, IsProgramError(err))
	require.Equal(t, 2, err.Addr)
	require.Equal(t, Word(42), err.Word)
	require.Contains(t, err.Error(), "unknown opcode 42")
}

func TestGrowAfterCopyFrom(t *testing.T) {
	t.Parallel()
	m := New([]Word{9, 9, 9, 9, 9, 9})
	m.CopyFrom(New([]Word{1}))
	m.Write(4, 2)
	require.Equal(t, []Word{1, 0, 0, 0, 2}, m.Memory())
}
