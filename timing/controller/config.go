package controller

import (
	"fmt"

	"github.com/sarchlab/axilite/config"
	"github.com/sarchlab/axilite/regs"
)

// NewFromConfig builds a register bank and a controller from a validated
// configuration.
func NewFromConfig(cfg *config.Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	regOpts := make([]regs.Option, 0,
		len(cfg.PowerOnValues)+len(cfg.ResetValues))
	for index, value := range cfg.PowerOnValues {
		regOpts = append(regOpts, regs.WithPowerOnValue(index, value))
	}
	for index, value := range cfg.ResetValues {
		regOpts = append(regOpts, regs.WithResetValue(index, value))
	}

	regFile := regs.NewRegFile(cfg.NumRegisters, cfg.DataWidth, regOpts...)

	readyPolicy := ReadyAlways
	if cfg.ReadyPolicy == config.ReadyConditional {
		readyPolicy = ReadyConditional
	}

	writePolicy := WriteCommit
	if cfg.WritePolicy == config.WriteStub {
		writePolicy = WriteStub
	}

	return NewController(
		regFile,
		WithReadyPolicy(readyPolicy),
		WithWritePolicy(writePolicy),
	), nil
}
