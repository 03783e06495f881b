// Package slave wraps the AXI4-Lite register slave as an Akita ticking
// component. Each Akita tick is one rising ACLK edge.
package slave

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/axilite/timing/controller"
	"github.com/sarchlab/axilite/timing/core"
)

// HookPosEdge marks the evaluation of a clock edge. The hook item is a
// core.Sample.
var HookPosEdge = &sim.HookPos{Name: "AXI4-Lite Edge"}

// HookPosReset marks an edge evaluated with ARESETn low. The hook item is a
// core.Sample.
var HookPosReset = &sim.HookPos{Name: "AXI4-Lite Reset"}

// Comp is an AXI4-Lite register slave clocked by an Akita engine.
type Comp struct {
	*sim.TickingComponent

	core      *core.Core
	maxCycles uint64
}

// Tick evaluates one clock edge. It stops ticking once the driver has
// finished or the cycle limit is reached.
func (c *Comp) Tick() bool {
	if c.core.Done() {
		return false
	}

	if c.maxCycles > 0 && c.core.Cycle() >= c.maxCycles {
		return false
	}

	sample := c.core.Tick()

	pos := HookPosEdge
	if sample.Edge.Reset {
		pos = HookPosReset
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   sample,
	})

	return true
}

// Start schedules the first edge.
func (c *Comp) Start() {
	c.TickLater()
}

// Controller returns the slave state machine.
func (c *Comp) Controller() *controller.Controller {
	return c.core.Controller
}

// Cycle returns the number of edges evaluated.
func (c *Comp) Cycle() uint64 {
	return c.core.Cycle()
}

// Finished returns true if the driver has finished.
func (c *Comp) Finished() bool {
	return c.core.Done()
}
