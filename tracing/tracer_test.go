package tracing

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

func newTestSimulator() *simulation.Simulator {
	return simulation.MakeBuilder().
		WithIDGenerator(sim.NewSequentialIDGenerator()).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).
		Build("Sim")
}

var _ = Describe("LogTracer", func() {
	var (
		buf       *bytes.Buffer
		simulator *simulation.Simulator
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf,
			&slog.HandlerOptions{Level: slog.LevelDebug}))

		simulator = newTestSimulator()
		simulator.AcceptHook(NewLogTracer(logger))
	})

	It("should log every translated address and the summary", func() {
		_, err := simulator.Run(simulation.Request{
			PageTable: "{0: 2, 1: -1}",
			Addresses: "[0, 1500, 9000]",
		})
		Expect(err).NotTo(HaveOccurred())

		out := buf.String()
		Expect(out).To(ContainSubstring("msg=\"run started\""))
		Expect(out).To(ContainSubstring("physical_address=2048"))
		Expect(out).To(ContainSubstring(
			"reason=\"Page Fault - Page not loaded in memory\""))
		Expect(out).To(ContainSubstring(
			"reason=\"Invalid page number (exceeds 8 pages)\""))
		Expect(out).To(ContainSubstring(
			"msg=\"run finished\" run=1 page_size=1024 successful=1 " +
				"page_faults=1 errors=1"))
	})

	It("should log rejected runs", func() {
		_, err := simulator.Run(simulation.Request{
			PageTable: "[0, 2]",
			Addresses: "[0]",
		})
		Expect(err).To(HaveOccurred())

		Expect(buf.String()).To(ContainSubstring("level=WARN msg=\"run rejected\""))
	})
})

var _ = Describe("SummaryTracer", func() {
	It("should accumulate counts across runs", func() {
		simulator := newTestSimulator()
		tracer := NewSummaryTracer()
		simulator.AcceptHook(tracer)

		_, _ = simulator.Run(simulation.Request{
			PageTable: "{0: 2, 1: -1, 2: 4}",
			Addresses: "[0, 1500, 3000]",
		})
		_, _ = simulator.Run(simulation.Request{
			PageTable: "{0: 2}",
			Addresses: "[9000, 2048]",
		})
		_, _ = simulator.Run(simulation.Request{
			PageTable: "{0: 2}",
			Addresses: "[1, 2, 3.5]",
		})

		totals := tracer.Totals()
		Expect(totals.Runs).To(Equal(3))
		Expect(totals.RejectedRuns).To(Equal(1))
		Expect(totals.Outcomes.Successful).To(Equal(2))
		Expect(totals.Outcomes.PageFaults).To(Equal(2))
		Expect(totals.Outcomes.Errors).To(Equal(1))
	})

	It("should count runs with an unsupported page size as rejected", func() {
		simulator := newTestSimulator()
		tracer := NewSummaryTracer()
		simulator.AcceptHook(tracer)

		_, err := simulator.Run(simulation.Request{
			PageTable: "{0: 2}",
			Addresses: "[0]",
			PageSize:  3000,
		})
		Expect(err).To(HaveOccurred())

		totals := tracer.Totals()
		Expect(totals.Runs).To(Equal(1))
		Expect(totals.RejectedRuns).To(Equal(1))
		Expect(totals.Outcomes.Total()).To(Equal(0))
	})
})

var _ = Describe("JSONTracer", func() {
	It("should write one line per finished run", func() {
		buf := new(bytes.Buffer)
		simulator := newTestSimulator()
		simulator.AcceptHook(NewJSONTracer(buf))

		_, err := simulator.Run(simulation.Request{
			PageTable: "{0: 2}",
			Addresses: "[0]",
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = simulator.Run(simulation.Request{
			PageTable: "{0: 2}",
			Addresses: "[0",
		})
		Expect(err).To(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(ContainSubstring(`"id":"1"`))
		Expect(lines[0]).To(ContainSubstring(`"physical_address":2048`))
	})
})
