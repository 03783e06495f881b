// Package regs provides the addressable register bank exposed by the
// AXI4-Lite slave.
package regs

import "fmt"

// WordStride is the byte distance between two consecutive registers.
const WordStride = 4

// RegFile is a bank of N registers, each Width bits wide. Register i is
// mapped at byte address 4*i.
type RegFile struct {
	words []uint64
	width uint
	mask  uint64

	// powerOn holds the values registers take when the bank is created.
	powerOn map[int]uint64
	// resetVals holds the values registers take under bus reset. Registers
	// that are not listed reset to zero.
	resetVals map[int]uint64
}

// Option configures a RegFile.
type Option func(*RegFile)

// WithPowerOnValue sets the value register index takes at power-on.
func WithPowerOnValue(index int, value uint64) Option {
	return func(r *RegFile) {
		r.powerOn[index] = value
	}
}

// WithResetValue sets the value register index takes when the bus is reset.
func WithResetValue(index int, value uint64) Option {
	return func(r *RegFile) {
		r.resetVals[index] = value
	}
}

// NewRegFile creates a register bank with n registers of the given bit width
// and applies the power-on values.
func NewRegFile(n int, width uint, opts ...Option) *RegFile {
	if n <= 0 {
		panic(fmt.Sprintf("register count must be positive, got %d", n))
	}
	if width == 0 || width > 64 {
		panic(fmt.Sprintf("register width must be in [1, 64], got %d", width))
	}

	r := &RegFile{
		words:     make([]uint64, n),
		width:     width,
		mask:      widthMask(width),
		powerOn:   make(map[int]uint64),
		resetVals: make(map[int]uint64),
	}

	for _, opt := range opts {
		opt(r)
	}

	for index := range r.powerOn {
		r.mustBeInRange(index)
	}
	for index := range r.resetVals {
		r.mustBeInRange(index)
	}

	r.PowerOn()

	return r
}

func widthMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func (r *RegFile) mustBeInRange(index int) {
	if index < 0 || index >= len(r.words) {
		panic(fmt.Sprintf("register index %d out of range [0, %d)",
			index, len(r.words)))
	}
}

// Len returns the number of registers.
func (r *RegFile) Len() int {
	return len(r.words)
}

// Width returns the register width in bits.
func (r *RegFile) Width() uint {
	return r.width
}

// Mask returns the bit mask applied to every stored value.
func (r *RegFile) Mask() uint64 {
	return r.mask
}

// Decode maps a byte address to a register index. Addresses that are not
// word aligned or fall past the last register do not decode.
func (r *RegFile) Decode(addr uint32) (int, bool) {
	if addr%WordStride != 0 {
		return 0, false
	}

	index := uint64(addr / WordStride)
	if index >= uint64(len(r.words)) {
		return 0, false
	}

	return int(index), true
}

// Read returns the value of the register decoded from addr. Addresses that
// do not decode read as 0.
func (r *RegFile) Read(addr uint32) (uint64, bool) {
	index, ok := r.Decode(addr)
	if !ok {
		return 0, false
	}
	return r.words[index], true
}

// Write stores value into the register decoded from addr. Writes to
// addresses that do not decode are dropped.
func (r *RegFile) Write(addr uint32, value uint64) bool {
	index, ok := r.Decode(addr)
	if !ok {
		return false
	}
	r.words[index] = value & r.mask
	return true
}

// Word returns register index directly, bypassing the bus.
func (r *RegFile) Word(index int) uint64 {
	r.mustBeInRange(index)
	return r.words[index]
}

// SetWord preloads register index directly, bypassing the bus.
func (r *RegFile) SetWord(index int, value uint64) {
	r.mustBeInRange(index)
	r.words[index] = value & r.mask
}

// PowerOn restores every register to its power-on value.
func (r *RegFile) PowerOn() {
	for i := range r.words {
		r.words[i] = r.powerOn[i] & r.mask
	}
}

// Reset applies the reset vector.
func (r *RegFile) Reset() {
	for i := range r.words {
		r.words[i] = r.resetVals[i] & r.mask
	}
}

// Snapshot returns a copy of all register values.
func (r *RegFile) Snapshot() []uint64 {
	out := make([]uint64, len(r.words))
	copy(out, r.words)
	return out
}
