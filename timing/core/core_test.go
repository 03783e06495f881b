package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/regs"
	"github.com/sarchlab/axilite/timing/controller"
	"github.com/sarchlab/axilite/timing/core"
	"github.com/sarchlab/axilite/timing/master"
)

// fixedDriver presents the same inputs on every edge.
type fixedDriver struct {
	in    axi.SlaveInputs
	edges int
}

func (d *fixedDriver) Drive(uint64, axi.SlaveOutputs) axi.SlaveInputs {
	d.edges++
	return d.in
}

func (d *fixedDriver) Done() bool {
	return false
}

var _ = Describe("Core", func() {
	var (
		regFile *regs.RegFile
		ctrl    *controller.Controller
		m       *master.Master
		c       *core.Core
	)

	BeforeEach(func() {
		regFile = regs.NewRegFile(4, 32,
			regs.WithPowerOnValue(1, 0x12345678))
		ctrl = controller.NewController(regFile)
		m = master.NewMaster()
		c = core.NewCore(ctrl, m)
	})

	It("should create a core with a controller", func() {
		Expect(c).NotTo(BeNil())
		Expect(c.Controller).To(BeIdenticalTo(ctrl))
		Expect(c.Cycle()).To(Equal(uint64(0)))
	})

	It("should be done when the driver has nothing to do", func() {
		Expect(c.Done()).To(BeTrue())

		m.Read(0, 0x4)
		Expect(c.Done()).To(BeFalse())
	})

	It("should treat a missing driver as done and drive idle inputs", func() {
		c = core.NewCore(ctrl, nil)

		Expect(c.Done()).To(BeTrue())

		sample := c.Tick()
		Expect(sample.Inputs).To(Equal(axi.IdleInputs()))
	})

	It("should record the signals of an edge", func() {
		m.Read(3, 0x4)

		sample := c.Tick()

		Expect(sample.Cycle).To(Equal(uint64(0)))
		Expect(sample.Inputs.AR.Valid).To(BeTrue())
		Expect(sample.Before.R.Valid).To(BeFalse())
		Expect(sample.After.R.Valid).To(BeTrue())
		Expect(sample.After.R.Data).To(Equal(uint64(0x12345678)))
		Expect(sample.Edge.ReadAccepted).To(BeTrue())
		Expect(sample.Edge.ReadID).To(Equal(uint8(3)))
		Expect(c.Cycle()).To(Equal(uint64(1)))
	})

	It("should run until the driver finishes", func() {
		m.Write(0, 0x0, 0x42)
		r := m.Read(0, 0x0)

		Expect(c.Run(0)).To(BeTrue())
		Expect(r.Data).To(Equal(uint64(0x42)))
	})

	It("should stop at the cycle limit", func() {
		d := &fixedDriver{in: axi.IdleInputs()}
		c = core.NewCore(ctrl, d)

		Expect(c.Run(10)).To(BeFalse())
		Expect(c.Cycle()).To(Equal(uint64(10)))
		Expect(d.edges).To(Equal(10))
	})

	It("should run a fixed number of cycles", func() {
		c.RunCycles(5)

		stats := c.Stats()
		Expect(stats.Cycles).To(Equal(uint64(5)))
	})

	It("should power back on when reset", func() {
		c = core.NewCore(ctrl, &fixedDriver{in: axi.ResetInputs()})
		c.RunCycles(3)
		Expect(regFile.Word(1)).To(Equal(uint64(0)))

		c.Reset()

		Expect(c.Cycle()).To(Equal(uint64(0)))
		Expect(c.Stats()).To(Equal(controller.Stats{}))
		Expect(regFile.Word(1)).To(Equal(uint64(0x12345678)))
	})
})
