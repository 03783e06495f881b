package slave

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/axilite/config"
	"github.com/sarchlab/axilite/timing/controller"
	"github.com/sarchlab/axilite/timing/core"
)

// Builder can build register slaves.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	cfg       *config.Config
	driver    core.Driver
	maxCycles uint64
}

// MakeBuilder returns a Builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg: config.DefaultConfig(),
	}
}

// WithEngine sets the engine that clocks the slave.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the ACLK frequency. When unset, the frequency comes from the
// configuration.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithConfig sets the slave configuration.
func (b Builder) WithConfig(cfg *config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithDriver sets the bus master that drives the slave inputs.
func (b Builder) WithDriver(driver core.Driver) Builder {
	b.driver = driver
	return b
}

// WithMaxCycles bounds the number of edges the slave evaluates. Zero means
// no bound.
func (b Builder) WithMaxCycles(cycles uint64) Builder {
	b.maxCycles = cycles
	return b
}

// Build creates a new Comp.
func (b Builder) Build(name string) (*Comp, error) {
	if b.engine == nil {
		return nil, fmt.Errorf("slave %s: engine is not set", name)
	}

	ctrl, err := controller.NewFromConfig(b.cfg)
	if err != nil {
		return nil, fmt.Errorf("slave %s: %w", name, err)
	}

	freq := b.freq
	if freq == 0 {
		freq = sim.Freq(b.cfg.ClockFreqMHz) * sim.MHz
	}

	c := &Comp{
		core:      core.NewCore(ctrl, b.driver),
		maxCycles: b.maxCycles,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, c)

	return c, nil
}
