// Package core runs an AXI4-Lite register slave against a bus master one
// clock edge at a time.
package core

import (
	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/timing/controller"
)

// Driver produces the slave inputs for each clock edge. A bus master is the
// typical driver.
type Driver interface {
	// Drive returns the inputs sampled at edge cycle, given the outputs the
	// slave drives just before that edge.
	Drive(cycle uint64, outs axi.SlaveOutputs) axi.SlaveInputs

	// Done returns true when the driver has nothing left to do.
	Done() bool
}

// Sample records the signals of one clock edge.
type Sample struct {
	Cycle uint64
	// Inputs are the values sampled at the edge.
	Inputs axi.SlaveInputs
	// Before are the slave outputs before the edge.
	Before axi.SlaveOutputs
	// After are the slave outputs after the edge.
	After axi.SlaveOutputs
	// Edge reports the transfers that took place.
	Edge controller.Edge
}

// Core binds a controller to a driver.
type Core struct {
	// Controller is the slave state machine.
	Controller *controller.Controller

	driver Driver
	cycle  uint64
}

// NewCore creates a Core.
func NewCore(ctrl *controller.Controller, driver Driver) *Core {
	return &Core{
		Controller: ctrl,
		driver:     driver,
	}
}

// Cycle returns the number of edges evaluated so far.
func (c *Core) Cycle() uint64 {
	return c.cycle
}

// Done returns true when the driver has finished.
func (c *Core) Done() bool {
	return c.driver == nil || c.driver.Done()
}

// Tick evaluates one clock edge.
func (c *Core) Tick() Sample {
	before := c.Controller.Outputs()

	in := axi.IdleInputs()
	if c.driver != nil {
		in = c.driver.Drive(c.cycle, before)
	}

	after := c.Controller.Tick(in)

	sample := Sample{
		Cycle:  c.cycle,
		Inputs: in,
		Before: before,
		After:  after,
		Edge:   c.Controller.LastEdge(),
	}

	c.cycle++

	return sample
}

// Run ticks until the driver is done or maxCycles edges have been evaluated.
// A maxCycles of 0 means no limit. Returns true if the driver finished.
func (c *Core) Run(maxCycles uint64) bool {
	for !c.Done() {
		if maxCycles > 0 && c.cycle >= maxCycles {
			return false
		}
		c.Tick()
	}
	return true
}

// RunCycles evaluates exactly the given number of edges, whether or not the
// driver has finished.
func (c *Core) RunCycles(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		c.Tick()
	}
}

// Stats returns the controller statistics.
func (c *Core) Stats() controller.Stats {
	return c.Controller.Stats()
}

// Reset powers the controller back on and restarts the cycle count.
func (c *Core) Reset() {
	c.Controller.PowerOn()
	c.cycle = 0
}
