package master_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/timing/master"
)

var _ = Describe("Script", func() {
	It("should parse every op", func() {
		txns, err := master.ParseScript([]byte(`[
			{"op": "reset", "cycles": 2},
			{"op": "idle"},
			{"op": "write", "id": 3, "addr": 8, "data": 255},
			{"op": "read", "id": 4, "addr": 8}
		]`))

		Expect(err).NotTo(HaveOccurred())
		Expect(txns).To(HaveLen(4))
		Expect(txns[0].Op).To(Equal(master.OpReset))
		Expect(txns[0].Cycles).To(Equal(2))
		Expect(txns[1].Op).To(Equal(master.OpIdle))
		Expect(txns[2].Op).To(Equal(master.OpWrite))
		Expect(txns[2].Data).To(Equal(uint64(255)))
		Expect(txns[3].Op).To(Equal(master.OpRead))
		Expect(txns[3].ID).To(Equal(uint8(4)))
		Expect(txns[3].Addr).To(Equal(uint32(8)))
	})

	DescribeTable("should reject bad steps",
		func(script, message string) {
			_, err := master.ParseScript([]byte(script))
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("unknown op", `[{"op": "burst"}]`, "unknown op"),
		Entry("wide id", `[{"op": "read", "id": 16}]`, "4 bits"),
		Entry("negative cycles", `[{"op": "idle", "cycles": -1}]`, "cycles"),
	)

	It("should reject malformed JSON", func() {
		_, err := master.ParseScript([]byte(`{"op": "read"}`))
		Expect(err).To(HaveOccurred())
	})

	It("should load a script file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "script.json")
		Expect(os.WriteFile(path, []byte(`[{"op": "read", "addr": 4}]`), 0644)).
			To(Succeed())

		txns, err := master.LoadScript(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(txns).To(HaveLen(1))
	})

	It("should report a missing script file", func() {
		_, err := master.LoadScript("/nonexistent/script.json")
		Expect(err).To(MatchError(ContainSubstring("failed to read script file")))
	})
})
