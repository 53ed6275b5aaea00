package icsys

import (
	"context"
	"errors"
	"fmt"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcodeweb.org/intcode/icmem"
	"intcodeweb.org/intcode/icvm"
	"intcodeweb.org/intcode/internal/ringbuf"
)

const (
	DefaultNetworkSize = 50
	DefaultMonitor     = 255
	// Idle is given to every node when there are no packets in flight.
	Idle Word = -1
)

var ErrMaxRounds = errors.New("network: exceeded max rounds")

// Packet is a message between nodes.
// Nodes send a packet by outputting Dest, X, and Y; they receive X and Y as input.
type Packet struct {
	Dest int
	X, Y Word
}

type NetworkConfig struct {
	// Size is the number of nodes. Defaults to DefaultNetworkSize
	Size int
	// Monitor is the address which ends the run when a packet is sent to it.
	// Defaults to DefaultMonitor
	Monitor int
}

// Network is a set of machines exchanging packets.
// The nodes run cooperatively, one at a time, on the caller's goroutine.
type Network struct {
	cfg    NetworkConfig
	nodes  []*node
	queue  ringbuf.RingBuf[Packet]
	booted bool
}

type node struct {
	m       *icmem.Machine
	inbox   *icvm.Queue
	step    icvm.Stepper
	pending []Word
}

// NewNetwork creates a network of nodes, each running its own copy of prog.
func NewNetwork(prog *icmem.Machine, cfg NetworkConfig) *Network {
	if cfg.Size <= 0 {
		cfg.Size = DefaultNetworkSize
	}
	if cfg.Monitor == 0 {
		cfg.Monitor = DefaultMonitor
	}
	nodes := make([]*node, cfg.Size)
	for i := range nodes {
		inbox := icvm.Inputs(Word(i))
		nodes[i] = &node{
			m:     prog.Clone(),
			inbox: inbox,
			step:  icvm.RunUntilBlock(inbox),
		}
	}
	return &Network{cfg: cfg, nodes: nodes, queue: ringbuf.New[Packet](cfg.Size)}
}

// Size returns the number of nodes
func (n *Network) Size() int {
	return len(n.nodes)
}

// Send puts a packet in flight.
func (n *Network) Send(p Packet) {
	n.queue.PushBack(p)
}

// Run delivers packets until one is sent to the monitor address, and returns it.
// A round delivers every packet in flight, then, once nothing is in flight, gives every node Idle.
// If maxRounds > 0 and that many rounds pass without reaching the monitor, ErrMaxRounds is returned.
func (n *Network) Run(ctx context.Context, maxRounds int) (Packet, error) {
	if !n.booted {
		for i := range n.nodes {
			if found, err := n.runNode(ctx, i); err != nil || found != nil {
				return deref(found), err
			}
		}
		n.booted = true
	}
	for round := 0; maxRounds <= 0 || round < maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return Packet{}, err
		}
		for {
			p, ok := n.queue.PopFront()
			if !ok {
				break
			}
			if p.Dest < 0 || p.Dest >= len(n.nodes) {
				return Packet{}, fmt.Errorf("network: packet for unknown address %d", p.Dest)
			}
			n.nodes[p.Dest].inbox.Push(p.X, p.Y)
			if found, err := n.runNode(ctx, p.Dest); err != nil || found != nil {
				return deref(found), err
			}
		}
		for i, nd := range n.nodes {
			nd.inbox.Push(Idle)
			if found, err := n.runNode(ctx, i); err != nil || found != nil {
				return deref(found), err
			}
		}
	}
	return Packet{}, ErrMaxRounds
}

// runNode runs a node until it waits for input.
// If the node sends a packet to the monitor, that packet is returned.
func (n *Network) runNode(ctx context.Context, addr int) (*Packet, error) {
	nd := n.nodes[addr]
	for {
		st, err := nd.step(nd.m)
		if err != nil {
			return nil, fmt.Errorf("network: node %d: %w", addr, err)
		}
		switch st.Kind() {
		case icvm.KindNeedInput:
			return nil, nil
		case icvm.KindHalt:
			return nil, fmt.Errorf("network: node %d halted", addr)
		}
		nd.pending = append(nd.pending, st.Value())
		if len(nd.pending) < 3 {
			continue
		}
		p := Packet{Dest: int(nd.pending[0]), X: nd.pending[1], Y: nd.pending[2]}
		nd.pending = nd.pending[:0]
		logctx.Debug(ctx, "packet", zap.Int("from", addr), zap.Int("to", p.Dest), zap.Int64("x", p.X), zap.Int64("y", p.Y))
		if p.Dest == n.cfg.Monitor {
			logctx.Info(ctx, "packet reached monitor", zap.Int("from", addr), zap.Int64("y", p.Y))
			return &p, nil
		}
		n.queue.PushBack(p)
	}
}

func deref(p *Packet) Packet {
	if p == nil {
		return Packet{}
	}
	return *p
}
