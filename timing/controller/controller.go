package controller

import (
	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/regs"
)

// ReadyPolicy selects how ARREADY, AWREADY and WREADY are driven outside
// reset. The same policy applies to the read and write channels.
type ReadyPolicy int

const (
	// ReadyAlways holds every ready high outside reset. The slave never
	// backpressures an address or data beat.
	ReadyAlways ReadyPolicy = iota
	// ReadyConditional drops a channel's ready while that channel has a
	// transaction outstanding.
	ReadyConditional
)

// WritePolicy selects the behavior of the write channel.
type WritePolicy int

const (
	// WriteCommit latches the address and data beats, commits the data into
	// the register bank once both are held and raises BVALID.
	WriteCommit WritePolicy = iota
	// WriteStub accepts beats on the wire but leaves the register bank
	// untouched and never raises BVALID. Registers are read-only from the
	// bus under this policy.
	WriteStub
)

// Stats holds per-slave statistics.
type Stats struct {
	// Cycles is the number of clock edges evaluated.
	Cycles uint64
	// ResetCycles is the number of edges with ARESETn low.
	ResetCycles uint64
	// Reads is the number of accepted read requests.
	Reads uint64
	// Writes is the number of data beats committed to the register bank.
	Writes uint64
	// DecodeMisses counts accepted accesses whose address decoded to no
	// register.
	DecodeMisses uint64
	// ReadStalls counts edges where RVALID was held because RREADY was low.
	ReadStalls uint64
	// WriteStalls counts edges where BVALID was held because BREADY was low.
	WriteStalls uint64
}

// Edge reports what happened on one clock edge.
type Edge struct {
	Cycle uint64
	Reset bool

	ReadAccepted bool
	ReadRetired  bool
	ReadID       uint8
	ReadAddr     uint32
	ReadData     uint64
	ReadHit      bool

	WriteAddrAccepted bool
	WriteDataAccepted bool
	WriteCommitted    bool
	WriteRetired      bool
	WriteID           uint8
	WriteAddr         uint32
	WriteData         uint64
	WriteHit          bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithReadyPolicy sets the ready policy.
func WithReadyPolicy(policy ReadyPolicy) Option {
	return func(c *Controller) {
		c.readyPolicy = policy
	}
}

// WithWritePolicy sets the write policy.
func WithWritePolicy(policy WritePolicy) Option {
	return func(c *Controller) {
		c.writePolicy = policy
	}
}

// Controller is an AXI4-Lite slave bound to a register bank. Tick evaluates
// one rising clock edge.
type Controller struct {
	regFile     *regs.RegFile
	readyPolicy ReadyPolicy
	writePolicy WritePolicy

	state    State
	stats    Stats
	lastEdge Edge
}

// NewController creates a controller in its power-on state: ARREADY and
// AWREADY high, every other flop low.
func NewController(regFile *regs.RegFile, opts ...Option) *Controller {
	c := &Controller{
		regFile: regFile,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.powerOnState()

	return c
}

func (c *Controller) powerOnState() {
	c.state.Clear()
	c.state.Read.Ready = true
	c.state.Write.AddrReady = true
}

// PowerOn restores the controller and its register bank to the state they
// had when created, and clears statistics. Unlike bus reset it does not take
// a clock edge.
func (c *Controller) PowerOn() {
	c.powerOnState()
	c.regFile.PowerOn()
	c.stats = Stats{}
	c.lastEdge = Edge{}
}

// RegFile returns the register bank behind the controller.
func (c *Controller) RegFile() *regs.RegFile {
	return c.regFile
}

// ReadyPolicy returns the configured ready policy.
func (c *Controller) ReadyPolicy() ReadyPolicy {
	return c.readyPolicy
}

// WritePolicy returns the configured write policy.
func (c *Controller) WritePolicy() WritePolicy {
	return c.writePolicy
}

// Outputs returns the signals currently driven onto the bus.
func (c *Controller) Outputs() axi.SlaveOutputs {
	return c.state.Outputs()
}

// Snapshot returns a copy of the current flops.
func (c *Controller) Snapshot() State {
	return c.state
}

// Stats returns statistics accumulated since creation or the last
// ResetStats.
func (c *Controller) Stats() Stats {
	return c.stats
}

// ResetStats clears the statistics.
func (c *Controller) ResetStats() {
	c.stats = Stats{}
}

// LastEdge reports what happened on the most recent Tick.
func (c *Controller) LastEdge() Edge {
	return c.lastEdge
}

// Tick evaluates one rising clock edge with the given sampled inputs and
// returns the outputs driven after the edge. Every next value is computed
// from the flops as they were before the edge. Reset is evaluated last and
// overrides everything else.
func (c *Controller) Tick(in axi.SlaveInputs) axi.SlaveOutputs {
	cur := c.state
	next := cur
	edge := Edge{Cycle: c.stats.Cycles}

	c.tickRead(&cur, &next, in, &edge)
	commit := c.tickWrite(&cur, &next, in, &edge)
	c.updateReady(&next)

	c.stats.Cycles++

	if !in.ResetN {
		next.Clear()
		c.regFile.Reset()
		c.state = next
		c.stats.ResetCycles++
		c.lastEdge = Edge{Cycle: edge.Cycle, Reset: true}
		return c.state.Outputs()
	}

	if commit {
		edge.WriteHit = c.regFile.Write(edge.WriteAddr, edge.WriteData)
	}

	c.state = next
	c.lastEdge = edge
	c.countEdge(&cur, in, &edge)

	return c.state.Outputs()
}

func (c *Controller) updateReady(next *State) {
	switch c.readyPolicy {
	case ReadyConditional:
		next.Read.Ready = !next.Read.Valid
		next.Write.AddrReady = !next.Write.AddrPending && !next.Write.RespValid
		next.Write.DataReady = !next.Write.DataPending && !next.Write.RespValid
	default:
		next.Read.Ready = true
		next.Write.AddrReady = true
		next.Write.DataReady = true
	}
}

func (c *Controller) countEdge(cur *State, in axi.SlaveInputs, edge *Edge) {
	if edge.ReadAccepted {
		c.stats.Reads++
		if !edge.ReadHit {
			c.stats.DecodeMisses++
		}
	}

	if edge.WriteCommitted {
		c.stats.Writes++
		if !edge.WriteHit {
			c.stats.DecodeMisses++
		}
	}

	if cur.Read.Valid && !in.RReady {
		c.stats.ReadStalls++
	}

	if cur.Write.RespValid && !in.BReady {
		c.stats.WriteStalls++
	}
}
