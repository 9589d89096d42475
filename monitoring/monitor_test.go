package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

var _ = Describe("Monitor", func() {
	var (
		simulator *simulation.Simulator
		m         *Monitor
		router    http.Handler
	)

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	decode := func(rec *httptest.ResponseRecorder) map[string]any {
		out := map[string]any{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())

		return out
	}

	BeforeEach(func() {
		simulator = simulation.MakeBuilder().
			WithIDGenerator(sim.NewSequentialIDGenerator()).
			WithLogger(discard).
			Build("Sim")
		m = NewMonitor(simulator).
			WithLogger(discard).
			WithProfileDuration(10 * time.Millisecond)
		router = m.Router()
	})

	It("should translate addresses", func() {
		rec := do(http.MethodPost, "/api/translate",
			`{"page_table": "{0: 2, 1: -1, 2: 4}", "addresses": "[0, 1500, 3000]"}`)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		out := decode(rec)
		Expect(out["id"]).To(Equal("1"))
		Expect(out["page_size"]).To(BeNumerically("==", 1024))
		Expect(out["summary"]).To(Equal(map[string]any{
			"successful":  float64(2),
			"page_faults": float64(1),
			"errors":      float64(0),
		}))

		results := out["results"].([]any)
		Expect(results).To(HaveLen(3))
		Expect(results[2].(map[string]any)["physical_address"]).
			To(BeNumerically("==", 5048))
	})

	It("should honor a page size in the request", func() {
		rec := do(http.MethodPost, "/api/translate",
			`{"page_table": "{0: 1}", "addresses": "[600]", "page_size": 512}`)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec)["page_size"]).To(BeNumerically("==", 512))
	})

	It("should report format errors", func() {
		rec := do(http.MethodPost, "/api/translate",
			`{"page_table": "[0,2]", "addresses": "[0]"}`)

		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(decode(rec)).To(Equal(map[string]any{
			"kind":  "format",
			"field": "page_table",
			"message": "Page table should use curly braces { } " +
				"not square brackets [ ]",
		}))
	})

	It("should report parse errors", func() {
		rec := do(http.MethodPost, "/api/translate",
			`{"page_table": "{0: 2}", "addresses": "[1 2]"}`)

		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		out := decode(rec)
		Expect(out["kind"]).To(Equal("parse"))
		Expect(out["field"]).To(Equal("addresses"))
	})

	It("should report semantic errors with the position", func() {
		rec := do(http.MethodPost, "/api/translate",
			`{"page_table": "{0: 2}", "addresses": "[1, 2, 3.5]"}`)

		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		out := decode(rec)
		Expect(out["kind"]).To(Equal("semantic"))
		Expect(out["position"]).To(BeNumerically("==", 3))
		Expect(out["message"]).To(Equal(
			"Address at position 3 is not an integer: 3.5"))
	})

	It("should reject malformed request bodies", func() {
		rec := do(http.MethodPost, "/api/translate", `{"page_table": 1}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		rec = do(http.MethodPost, "/api/translate", `{"unknown": "x"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject unsupported page sizes in the request", func() {
		rec := do(http.MethodPost, "/api/translate",
			`{"page_table": "{0: 1}", "addresses": "[1]", "page_size": 100}`)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(rec)["kind"]).To(Equal("request"))
	})

	It("should show and select the page size", func() {
		rec := do(http.MethodGet, "/api/page_size", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(
			`{"page_size": 1024, "allowed": [512, 1024, 2048, 4096]}`))

		rec = do(http.MethodPut, "/api/page_size/2048", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(simulator.PageSize()).To(BeEquivalentTo(2048))

		rec = do(http.MethodPut, "/api/page_size/1000", "")
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(simulator.PageSize()).To(BeEquivalentTo(2048))
	})

	It("should not route unknown methods", func() {
		rec := do(http.MethodGet, "/api/translate", "")
		Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
	})

	It("should count runs in stats", func() {
		do(http.MethodPost, "/api/translate",
			`{"page_table": "{0: 2}", "addresses": "[0, 9000]"}`)
		do(http.MethodPost, "/api/translate",
			`{"page_table": "", "addresses": "[0]"}`)

		rec := do(http.MethodGet, "/api/stats", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{
			"runs": 2,
			"rejected_runs": 1,
			"outcomes": {"successful": 1, "page_faults": 0, "errors": 1}
		}`))
	})

	It("should describe the simulator", func() {
		rec := do(http.MethodGet, "/api/simulator", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should list resources", func() {
		rec := do(http.MethodGet, "/api/resource", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec)).To(HaveKey("memory_size"))
	})

	It("should collect a profile", func() {
		rec := do(http.MethodGet, "/api/profile", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should replace low port numbers", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should serve until the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- m.Serve(ctx)
		}()

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})

	It("should start a background server", func() {
		addr, err := m.StartServer()
		Expect(err).NotTo(HaveOccurred())

		port := addr.(*net.TCPAddr).Port
		rsp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/page_size", port))
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
	})
})
