// Package controller provides the cycle-accurate AXI4-Lite slave state
// machine that fronts a register bank.
package controller

import "github.com/sarchlab/axilite/axi"

// ReadChannel holds the flops of the read-address and read-data channels.
type ReadChannel struct {
	// Ready is ARREADY.
	Ready bool

	// Valid is RVALID. While it is set a response is outstanding.
	Valid bool

	// Response beat driven on the R channel.
	ID   uint8
	Data uint64
	Resp axi.Response
	Last bool

	// SampledAddr and SampledID capture ARADDR/ARID whenever ARVALID is
	// high, whether or not the request is accepted.
	SampledAddr uint32
	SampledID   uint8
}

// Clear resets the read channel flops to the reset vector.
func (c *ReadChannel) Clear() {
	c.Ready = false
	c.Valid = false
	c.ID = 0
	c.Data = 0
	c.Resp = axi.OKAY
	c.Last = false
	c.SampledAddr = 0
	c.SampledID = 0
}

// WriteChannel holds the flops of the write-address, write-data and
// write-response channels.
type WriteChannel struct {
	// AddrReady is AWREADY.
	AddrReady bool
	// DataReady is WREADY.
	DataReady bool

	// AddrPending is set once an address beat is held waiting for its data.
	AddrPending bool
	Addr        uint32
	AddrID      uint8

	// DataPending is set once a data beat is held waiting for its address.
	DataPending bool
	Data        uint64
	DataID      uint8

	// RespValid is BVALID. While it is set a response is outstanding.
	RespValid bool
	RespID    uint8
	Resp      axi.Response
}

// Clear resets the write channel flops to the reset vector.
func (c *WriteChannel) Clear() {
	c.AddrReady = false
	c.DataReady = false
	c.AddrPending = false
	c.Addr = 0
	c.AddrID = 0
	c.DataPending = false
	c.Data = 0
	c.DataID = 0
	c.RespValid = false
	c.RespID = 0
	c.Resp = axi.OKAY
}

// State is the complete set of flops of the slave, excluding the register
// bank.
type State struct {
	Read  ReadChannel
	Write WriteChannel
}

// Clear resets every flop to the reset vector.
func (s *State) Clear() {
	s.Read.Clear()
	s.Write.Clear()
}

// Outputs returns the signals the flops drive onto the bus.
func (s *State) Outputs() axi.SlaveOutputs {
	return axi.SlaveOutputs{
		ARReady: s.Read.Ready,
		R: axi.ReadDataChannel{
			ID:    s.Read.ID,
			Data:  s.Read.Data,
			Resp:  s.Read.Resp,
			Last:  s.Read.Last,
			Valid: s.Read.Valid,
		},
		AWReady: s.Write.AddrReady,
		WReady:  s.Write.DataReady,
		B: axi.WriteRespChannel{
			ID:    s.Write.RespID,
			Resp:  s.Write.Resp,
			Valid: s.Write.RespValid,
		},
	}
}
