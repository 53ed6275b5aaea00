package icvm

import (
	"strings"

	"intcodeweb.org/intcode/internal/ringbuf"
)

// Input supplies values to input instructions.
// Next returns false if no value is available right now.
type Input interface {
	Next() (Word, bool)
}

// InputFunc adapts a function to the Input interface
type InputFunc func() (Word, bool)

func (f InputFunc) Next() (Word, bool) {
	return f()
}

// NoInput never has a value available
var NoInput Input = InputFunc(func() (Word, bool) { return 0, false })

// Once returns an Input which produces x one time.
func Once(x Word) Input {
	used := false
	return InputFunc(func() (Word, bool) {
		if used {
			return 0, false
		}
		used = true
		return x, true
	})
}

// Queue is a FIFO of input values. The zero value is an empty Queue.
type Queue struct {
	rb ringbuf.RingBuf[Word]
}

// Inputs returns a Queue holding xs
func Inputs(xs ...Word) *Queue {
	q := &Queue{rb: ringbuf.New[Word](len(xs))}
	q.Push(xs...)
	return q
}

// ASCII returns a Queue holding the character codes of s.
func ASCII(s string) *Queue {
	q := &Queue{rb: ringbuf.New[Word](len(s))}
	for i := 0; i < len(s); i++ {
		q.rb.PushBack(Word(s[i]))
	}
	return q
}

func (q *Queue) Push(xs ...Word) {
	for _, x := range xs {
		q.rb.PushBack(x)
	}
}

func (q *Queue) Next() (Word, bool) {
	return q.rb.PopFront()
}

// Len returns the number of values waiting to be consumed
func (q *Queue) Len() int {
	return q.rb.Len()
}

// FormatASCII renders outputs as text.
// Values outside of the ASCII range are written as decimal numbers on their own line.
func FormatASCII(ws []Word) string {
	var sb strings.Builder
	for _, w := range ws {
		if w >= 0 && w < 128 {
			sb.WriteByte(byte(w))
		} else {
			sb.WriteString("\n")
			sb.WriteString(formatWord(w))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
