package regs_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/regs"
)

var _ = Describe("RegFile", func() {
	var regFile *regs.RegFile

	BeforeEach(func() {
		regFile = regs.NewRegFile(4, 32,
			regs.WithPowerOnValue(1, 0x12345678),
			regs.WithResetValue(3, 0xA5))
	})

	It("should report its geometry", func() {
		Expect(regFile.Len()).To(Equal(4))
		Expect(regFile.Width()).To(Equal(uint(32)))
		Expect(regFile.Mask()).To(Equal(uint64(0xFFFFFFFF)))
	})

	It("should apply power-on values on creation", func() {
		Expect(regFile.Snapshot()).To(Equal([]uint64{0, 0x12345678, 0, 0}))
	})

	It("should apply the reset vector", func() {
		regFile.SetWord(0, 7)
		regFile.Reset()

		Expect(regFile.Snapshot()).To(Equal([]uint64{0, 0, 0, 0xA5}))
	})

	It("should restore power-on values after a reset", func() {
		regFile.Reset()
		regFile.PowerOn()

		Expect(regFile.Word(1)).To(Equal(uint64(0x12345678)))
		Expect(regFile.Word(3)).To(Equal(uint64(0)))
	})

	DescribeTable("Decode",
		func(addr uint32, index int, ok bool) {
			i, hit := regFile.Decode(addr)
			Expect(hit).To(Equal(ok))
			if ok {
				Expect(i).To(Equal(index))
			}
		},
		Entry("first register", uint32(0x0), 0, true),
		Entry("last register", uint32(0xC), 3, true),
		Entry("past the end", uint32(0x10), 0, false),
		Entry("unaligned", uint32(0x5), 0, false),
		Entry("top of the address space", uint32(0xFFFFFFFC), 0, false),
	)

	It("should read zero on a decode miss", func() {
		value, hit := regFile.Read(0x14)

		Expect(hit).To(BeFalse())
		Expect(value).To(Equal(uint64(0)))
	})

	It("should write through an address", func() {
		Expect(regFile.Write(0x8, 0xBEEF)).To(BeTrue())

		value, hit := regFile.Read(0x8)
		Expect(hit).To(BeTrue())
		Expect(value).To(Equal(uint64(0xBEEF)))
	})

	It("should drop a write that misses", func() {
		Expect(regFile.Write(0x20, 0xBEEF)).To(BeFalse())
		Expect(regFile.Snapshot()).To(Equal([]uint64{0, 0x12345678, 0, 0}))
	})

	It("should mask values to the register width", func() {
		narrow := regs.NewRegFile(2, 12, regs.WithPowerOnValue(0, 0xFFFF))

		Expect(narrow.Word(0)).To(Equal(uint64(0xFFF)))

		narrow.Write(0x4, 0x12345)
		Expect(narrow.Word(1)).To(Equal(uint64(0x345)))
	})

	It("should keep all bits of a 64-bit register", func() {
		wide := regs.NewRegFile(1, 64)
		wide.SetWord(0, 0xFFFFFFFFFFFFFFFF)

		Expect(wide.Word(0)).To(Equal(uint64(0xFFFFFFFFFFFFFFFF)))
	})

	It("should return a copy from Snapshot", func() {
		snap := regFile.Snapshot()
		snap[0] = 99

		Expect(regFile.Word(0)).To(Equal(uint64(0)))
	})

	It("should panic on an invalid geometry", func() {
		Expect(func() { regs.NewRegFile(0, 32) }).To(Panic())
		Expect(func() { regs.NewRegFile(4, 0) }).To(Panic())
		Expect(func() { regs.NewRegFile(4, 65) }).To(Panic())
	})

	It("should panic on an out-of-range index", func() {
		Expect(func() {
			regs.NewRegFile(4, 32, regs.WithPowerOnValue(4, 1))
		}).To(Panic())
		Expect(func() { regFile.Word(-1) }).To(Panic())
		Expect(func() { regFile.SetWord(4, 0) }).To(Panic())
	})
})
