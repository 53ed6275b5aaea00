// package ringbuf implements a growable FIFO on top of a circular buffer.
package ringbuf

// RingBuf is a double ended queue.
// The zero value is an empty queue, ready to use.
type RingBuf[T any] struct {
	buf  []T
	head int
	n    int
}

func New[T any](n int) RingBuf[T] {
	return RingBuf[T]{buf: make([]T, n)}
}

// Cap returns the number of elements the queue can hold before it has to grow.
func (rb *RingBuf[T]) Cap() int {
	return len(rb.buf)
}

func (rb *RingBuf[T]) Len() int {
	return rb.n
}

func (rb *RingBuf[T]) PushBack(val T) {
	rb.grow()
	rb.buf[(rb.head+rb.n)%len(rb.buf)] = val
	rb.n++
}

func (rb *RingBuf[T]) PushFront(val T) {
	rb.grow()
	rb.head = (rb.head - 1 + len(rb.buf)) % len(rb.buf)
	rb.buf[rb.head] = val
	rb.n++
}

// PopFront removes and returns the oldest element.
// ok is false if the queue is empty.
func (rb *RingBuf[T]) PopFront() (ret T, ok bool) {
	if rb.n == 0 {
		return ret, false
	}
	var zero T
	ret = rb.buf[rb.head]
	rb.buf[rb.head] = zero
	rb.head = (rb.head + 1) % len(rb.buf)
	rb.n--
	return ret, true
}

// PopBack removes and returns the newest element.
func (rb *RingBuf[T]) PopBack() (ret T, ok bool) {
	if rb.n == 0 {
		return ret, false
	}
	var zero T
	i := (rb.head + rb.n - 1) % len(rb.buf)
	ret = rb.buf[i]
	rb.buf[i] = zero
	rb.n--
	return ret, true
}

// At returns the i-th element from the front
func (rb *RingBuf[T]) At(i int) T {
	if i < 0 || i >= rb.n {
		panic(i)
	}
	return rb.buf[(rb.head+i)%len(rb.buf)]
}

func (rb *RingBuf[T]) Reset() {
	clear(rb.buf)
	rb.head = 0
	rb.n = 0
}

func (rb *RingBuf[T]) grow() {
	if rb.n < len(rb.buf) {
		return
	}
	next := make([]T, max(2*len(rb.buf), 8))
	for i := 0; i < rb.n; i++ {
		next[i] = rb.buf[(rb.head+i)%len(rb.buf)]
	}
	rb.buf = next
	rb.head = 0
}
