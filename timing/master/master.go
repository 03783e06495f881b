// Package master provides a scripted AXI4-Lite bus master that drives the
// slave one clock edge at a time.
package master

import (
	"fmt"

	"github.com/sarchlab/axilite/axi"
)

// Op is the kind of a scripted transaction.
type Op int

const (
	// OpRead issues a single-beat read.
	OpRead Op = iota
	// OpWrite issues a single-beat write.
	OpWrite
	// OpReset holds ARESETn low.
	OpReset
	// OpIdle keeps the bus out of reset with nothing valid.
	OpIdle
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpReset:
		return "reset"
	case OpIdle:
		return "idle"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Transaction is one step of a master script. Read results and response
// codes are filled in when the step completes.
type Transaction struct {
	Op   Op
	ID   uint8
	Addr uint32
	// Data is the write data, or the read data once a read completes.
	Data uint64
	// Cycles is the duration of a reset or idle step.
	Cycles int

	Resp          axi.Response
	RespID        uint8
	IssueCycle    uint64
	CompleteCycle uint64
	// TimedOut is set when no response arrived within the response
	// timeout.
	TimedOut bool
	Done     bool
}

// Latency returns the number of edges between issue and completion.
func (t *Transaction) Latency() uint64 {
	return t.CompleteCycle - t.IssueCycle
}

// DefaultResponseTimeout is the number of edges a master waits for RVALID or
// BVALID before giving up on a transaction.
const DefaultResponseTimeout = 64

// Master drives scripted transactions one at a time. It never has more than
// one transaction outstanding.
type Master struct {
	queue     []*Transaction
	current   *Transaction
	completed []*Transaction

	addrDone   bool
	dataDone   bool
	cyclesLeft int
	respWait   int

	respReadyDelay int
	respTimeout    int
}

// Option configures a Master.
type Option func(*Master)

// WithResponseReadyDelay keeps RREADY/BREADY low for the given number of
// edges after the request handshake.
func WithResponseReadyDelay(cycles int) Option {
	return func(m *Master) {
		m.respReadyDelay = cycles
	}
}

// WithResponseTimeout sets how many edges to wait for a response. Zero waits
// forever.
func WithResponseTimeout(cycles int) Option {
	return func(m *Master) {
		m.respTimeout = cycles
	}
}

// NewMaster creates a master with an empty script.
func NewMaster(opts ...Option) *Master {
	m := &Master{
		respTimeout: DefaultResponseTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Enqueue appends transactions to the script.
func (m *Master) Enqueue(txns ...*Transaction) {
	m.queue = append(m.queue, txns...)
}

// Read enqueues a read of addr with the given ID.
func (m *Master) Read(id uint8, addr uint32) *Transaction {
	t := &Transaction{Op: OpRead, ID: id & axi.IDMask, Addr: addr}
	m.Enqueue(t)
	return t
}

// Write enqueues a write of data to addr with the given ID.
func (m *Master) Write(id uint8, addr uint32, data uint64) *Transaction {
	t := &Transaction{Op: OpWrite, ID: id & axi.IDMask, Addr: addr, Data: data}
	m.Enqueue(t)
	return t
}

// Reset enqueues a reset that lasts the given number of edges.
func (m *Master) Reset(cycles int) *Transaction {
	t := &Transaction{Op: OpReset, Cycles: cycles}
	m.Enqueue(t)
	return t
}

// Idle enqueues idle edges.
func (m *Master) Idle(cycles int) *Transaction {
	t := &Transaction{Op: OpIdle, Cycles: cycles}
	m.Enqueue(t)
	return t
}

// Done returns true when every scripted transaction has completed.
func (m *Master) Done() bool {
	return m.current == nil && len(m.queue) == 0
}

// Completed returns the transactions that have completed, in order.
func (m *Master) Completed() []*Transaction {
	return m.completed
}

// Drive returns the inputs to present at the edge numbered cycle, given the
// outputs the slave drives before that edge. A handshake is considered done
// when the master's VALID and the slave's READY are both high at the edge.
func (m *Master) Drive(cycle uint64, outs axi.SlaveOutputs) axi.SlaveInputs {
	if m.current == nil {
		if len(m.queue) == 0 {
			return axi.IdleInputs()
		}
		m.start(cycle)
	}

	switch m.current.Op {
	case OpReset:
		return m.driveTimed(cycle, axi.ResetInputs())
	case OpIdle:
		return m.driveTimed(cycle, axi.IdleInputs())
	case OpRead:
		return m.driveRead(cycle, outs)
	case OpWrite:
		return m.driveWrite(cycle, outs)
	default:
		panic(fmt.Sprintf("unknown op %s", m.current.Op))
	}
}

func (m *Master) start(cycle uint64) {
	m.current = m.queue[0]
	m.queue = m.queue[1:]

	m.current.IssueCycle = cycle
	m.addrDone = false
	m.dataDone = false
	m.respWait = 0
	m.cyclesLeft = m.current.Cycles
	if m.cyclesLeft < 1 {
		m.cyclesLeft = 1
	}
}

func (m *Master) finish(cycle uint64) {
	m.current.CompleteCycle = cycle
	m.current.Done = true
	m.completed = append(m.completed, m.current)
	m.current = nil
}

func (m *Master) driveTimed(cycle uint64, in axi.SlaveInputs) axi.SlaveInputs {
	m.cyclesLeft--
	if m.cyclesLeft == 0 {
		m.finish(cycle)
	}
	return in
}

func (m *Master) driveRead(cycle uint64, outs axi.SlaveOutputs) axi.SlaveInputs {
	t := m.current
	in := axi.IdleInputs()

	if !m.addrDone {
		in.AR = m.addrBeat(t)
		if outs.ARReady {
			m.addrDone = true
		}
		return in
	}

	in.RReady = m.respWait >= m.respReadyDelay
	if outs.R.Valid && in.RReady {
		t.Data = outs.R.Data
		t.Resp = outs.R.Resp
		t.RespID = outs.R.ID
		m.finish(cycle)
		return in
	}

	m.waitResponse(cycle)
	return in
}

func (m *Master) driveWrite(cycle uint64, outs axi.SlaveOutputs) axi.SlaveInputs {
	t := m.current
	in := axi.IdleInputs()

	if !m.addrDone || !m.dataDone {
		if !m.addrDone {
			in.AW = m.addrBeat(t)
			if outs.AWReady {
				m.addrDone = true
			}
		}

		if !m.dataDone {
			in.W = axi.WriteDataChannel{
				ID:    t.ID,
				Data:  t.Data,
				Strb:  0xF,
				Last:  true,
				Valid: true,
			}
			if outs.WReady {
				m.dataDone = true
			}
		}

		return in
	}

	in.BReady = m.respWait >= m.respReadyDelay
	if outs.B.Valid && in.BReady {
		t.Resp = outs.B.Resp
		t.RespID = outs.B.ID
		m.finish(cycle)
		return in
	}

	m.waitResponse(cycle)
	return in
}

func (m *Master) addrBeat(t *Transaction) axi.AddrChannel {
	return axi.AddrChannel{
		ID:    t.ID,
		Addr:  t.Addr,
		Size:  2,
		Burst: axi.BurstIncr,
		Cache: axi.CacheDeviceNonBufferable,
		Valid: true,
	}
}

func (m *Master) waitResponse(cycle uint64) {
	m.respWait++
	if m.respTimeout > 0 && m.respWait > m.respTimeout {
		m.current.TimedOut = true
		m.finish(cycle)
	}
}
