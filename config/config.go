// Package config holds the elaboration parameters of the AXI4-Lite register
// slave.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Ready policies.
const (
	// ReadyAlways holds ARREADY, AWREADY and WREADY high whenever the bus is
	// out of reset.
	ReadyAlways = "always"
	// ReadyConditional drops a channel's ready while it has a transaction
	// outstanding.
	ReadyConditional = "conditional"
)

// Write policies.
const (
	// WriteCommit completes the write channel: the data beat is committed
	// into the register file and acknowledged with BVALID.
	WriteCommit = "commit"
	// WriteStub accepts write beats on the wire but never changes a
	// register and never raises BVALID.
	WriteStub = "stub"
)

// MaxRegisters bounds the register count so that every register has a
// 32-bit byte address.
const MaxRegisters = 1 << 30

// Config describes one register slave.
type Config struct {
	// DataWidth is the register and RDATA/WDATA width in bits.
	// Default: 32.
	DataWidth uint `json:"data_width"`

	// NumRegisters is the number of registers in the bank. Default: 4.
	NumRegisters int `json:"num_registers"`

	// PowerOnValues maps register index to the value it holds when the
	// slave is created. Default: register 1 holds 0x12345678.
	PowerOnValues map[int]uint64 `json:"power_on_values"`

	// ResetValues maps register index to the value it takes under bus
	// reset. Unlisted registers reset to 0. Default: empty.
	ResetValues map[int]uint64 `json:"reset_values"`

	// ReadyPolicy is "always" or "conditional". Default: "always".
	ReadyPolicy string `json:"ready_policy"`

	// WritePolicy is "commit" or "stub". Default: "commit".
	WritePolicy string `json:"write_policy"`

	// ClockFreqMHz is the ACLK frequency. Default: 100.
	ClockFreqMHz float64 `json:"clock_freq_mhz"`
}

// DefaultConfig returns the four-register, 32-bit slave.
func DefaultConfig() *Config {
	return &Config{
		DataWidth:     32,
		NumRegisters:  4,
		PowerOnValues: map[int]uint64{1: 0x12345678},
		ResetValues:   map[int]uint64{},
		ReadyPolicy:   ReadyAlways,
		WritePolicy:   WriteCommit,
		ClockFreqMHz:  100,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Maps would be merged into the defaults by json.Unmarshal, so they start
	// empty and only fall back to the defaults when the file omits them.
	config := DefaultConfig()
	config.PowerOnValues = nil
	config.ResetValues = nil

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	defaults := DefaultConfig()
	if config.PowerOnValues == nil {
		config.PowerOnValues = defaults.PowerOnValues
	}
	if config.ResetValues == nil {
		config.ResetValues = defaults.ResetValues
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a buildable slave.
func (c *Config) Validate() error {
	if c.DataWidth == 0 || c.DataWidth > 64 {
		return fmt.Errorf("data_width must be in [1, 64], got %d", c.DataWidth)
	}
	if c.NumRegisters <= 0 {
		return fmt.Errorf("num_registers must be > 0")
	}
	if c.NumRegisters > MaxRegisters {
		return fmt.Errorf("num_registers must be <= %d", MaxRegisters)
	}
	if err := c.validateValues("power_on_values", c.PowerOnValues); err != nil {
		return err
	}
	if err := c.validateValues("reset_values", c.ResetValues); err != nil {
		return err
	}
	if c.ReadyPolicy != ReadyAlways && c.ReadyPolicy != ReadyConditional {
		return fmt.Errorf("ready_policy must be %q or %q, got %q",
			ReadyAlways, ReadyConditional, c.ReadyPolicy)
	}
	if c.WritePolicy != WriteCommit && c.WritePolicy != WriteStub {
		return fmt.Errorf("write_policy must be %q or %q, got %q",
			WriteCommit, WriteStub, c.WritePolicy)
	}
	if c.ClockFreqMHz <= 0 {
		return fmt.Errorf("clock_freq_mhz must be > 0")
	}
	return nil
}

func (c *Config) validateValues(field string, values map[int]uint64) error {
	var limit uint64 = ^uint64(0)
	if c.DataWidth < 64 {
		limit = (uint64(1) << c.DataWidth) - 1
	}

	for index, value := range values {
		if index < 0 || index >= c.NumRegisters {
			return fmt.Errorf("%s: register index %d out of range [0, %d)",
				field, index, c.NumRegisters)
		}
		if value > limit {
			return fmt.Errorf("%s: value 0x%X of register %d exceeds %d bits",
				field, value, index, c.DataWidth)
		}
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.PowerOnValues = cloneValues(c.PowerOnValues)
	clone.ResetValues = cloneValues(c.ResetValues)
	return &clone
}

func cloneValues(values map[int]uint64) map[int]uint64 {
	if values == nil {
		return nil
	}
	out := make(map[int]uint64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
