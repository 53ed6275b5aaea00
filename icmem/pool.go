package icmem

// Pool keeps released Machines around so their memory can be reused by later forks.
// Pool is not safe for concurrent use.
type Pool struct {
	free []*Machine
}

// Fork returns a Machine with the same state as src.
func (p *Pool) Fork(src *Machine) *Machine {
	n := len(p.free)
	if n == 0 {
		return src.Clone()
	}
	m := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	m.CopyFrom(src)
	return m
}

// Release gives m back to the pool. m must not be used after it is released.
func (p *Pool) Release(m *Machine) {
	p.free = append(p.free, m)
}

// Len returns the number of idle machines in the pool
func (p *Pool) Len() int {
	return len(p.free)
}
