package slave_test

import (
	"github.com/sarchlab/akita/v4/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/config"
	"github.com/sarchlab/axilite/timing/core"
	"github.com/sarchlab/axilite/timing/master"
	"github.com/sarchlab/axilite/timing/slave"
)

type countingHook struct {
	edges   int
	resets  int
	samples []core.Sample
}

func (h *countingHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case slave.HookPosEdge:
		h.edges++
	case slave.HookPosReset:
		h.resets++
	}
	h.samples = append(h.samples, ctx.Item.(core.Sample))
}

var _ = Describe("Comp", func() {
	var (
		engine sim.Engine
		m      *master.Master
		hook   *countingHook
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		m = master.NewMaster()
		hook = &countingHook{}
	})

	It("should require an engine", func() {
		_, err := slave.MakeBuilder().Build("Slave")
		Expect(err).To(MatchError(ContainSubstring("engine")))
	})

	It("should reject an invalid configuration", func() {
		cfg := config.DefaultConfig()
		cfg.ReadyPolicy = "never"

		_, err := slave.MakeBuilder().
			WithEngine(engine).
			WithConfig(cfg).
			Build("Slave")
		Expect(err).To(HaveOccurred())
	})

	It("should run a script to completion on the engine", func() {
		m.Reset(1)
		w := m.Write(1, 0x8, 0x5A5A)
		r := m.Read(2, 0x8)

		comp, err := slave.MakeBuilder().
			WithEngine(engine).
			WithDriver(m).
			Build("Slave")
		Expect(err).NotTo(HaveOccurred())
		comp.AcceptHook(hook)

		comp.Start()
		Expect(engine.Run()).To(Succeed())

		Expect(comp.Finished()).To(BeTrue())
		Expect(comp.Name()).To(Equal("Slave"))
		Expect(w.Done).To(BeTrue())
		Expect(r.Data).To(Equal(uint64(0x5A5A)))
		Expect(comp.Controller().RegFile().Word(2)).To(Equal(uint64(0x5A5A)))

		Expect(hook.resets).To(Equal(1))
		Expect(hook.edges + hook.resets).To(Equal(int(comp.Cycle())))
		Expect(hook.samples[0].Edge.Reset).To(BeTrue())
	})

	It("should stop at the cycle limit", func() {
		m.Idle(100)

		comp, err := slave.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithDriver(m).
			WithMaxCycles(10).
			Build("Slave")
		Expect(err).NotTo(HaveOccurred())

		comp.Start()
		Expect(engine.Run()).To(Succeed())

		Expect(comp.Cycle()).To(Equal(uint64(10)))
		Expect(comp.Finished()).To(BeFalse())
	})

	It("should advance simulated time by one period per edge", func() {
		m.Idle(4)

		comp, err := slave.MakeBuilder().
			WithEngine(engine).
			WithDriver(m).
			Build("Slave")
		Expect(err).NotTo(HaveOccurred())

		comp.Start()
		Expect(engine.Run()).To(Succeed())

		Expect(comp.Cycle()).To(Equal(uint64(4)))
		Expect(engine.CurrentTime()).To(BeNumerically(">", 0))
	})
})
