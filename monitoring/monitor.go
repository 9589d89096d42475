// Package monitoring turns a simulator into an HTTP server that a host UI can
// drive. It serves JSON only; rendering is left to the client.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/validator"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

const maxRequestBytes = 64 << 10

// Monitor serves the translation API of a simulator.
type Monitor struct {
	simulator       *simulation.Simulator
	summary         *tracing.SummaryTracer
	logger          *slog.Logger
	portNumber      int
	profileDuration time.Duration
}

// NewMonitor creates a Monitor for the simulator. It attaches a
// SummaryTracer to the simulator to serve run statistics.
func NewMonitor(s *simulation.Simulator) *Monitor {
	m := &Monitor{
		simulator:       s,
		summary:         tracing.NewSummaryTracer(),
		logger:          slog.Default(),
		profileDuration: time.Second,
	}

	s.AcceptHook(m.summary)

	return m
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port not allowed, using a random port instead",
			"port", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logger
	return m
}

// WithProfileDuration sets how long /api/profile samples the CPU.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// Router returns the HTTP handler of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/translate", m.translate).Methods(http.MethodPost)
	r.HandleFunc("/api/page_size", m.getPageSize).Methods(http.MethodGet)
	r.HandleFunc("/api/page_size/{size}", m.selectPageSize).
		Methods(http.MethodPut)
	r.HandleFunc("/api/simulator", m.describeSimulator).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", m.stats).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	return r
}

// StartServer starts the monitor in the background and returns the address
// it listens on.
func (m *Monitor) StartServer() (net.Addr, error) {
	listener, srv, err := m.listen()
	if err != nil {
		return nil, err
	}

	go func() {
		err := srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor stopped", "error", err)
		}
	}()

	return listener.Addr(), nil
}

// Serve runs the monitor until the context is canceled.
func (m *Monitor) Serve(ctx context.Context) error {
	listener, srv, err := m.listen()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}

func (m *Monitor) listen() (net.Listener, *http.Server, error) {
	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return nil, nil, err
	}

	fmt.Fprintf(
		os.Stderr,
		"Monitoring simulator %s with http://localhost:%d\n",
		m.simulator.Name(),
		listener.Addr().(*net.TCPAddr).Port)

	srv := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return listener, srv, nil
}

type translateReq struct {
	PageTable string `json:"page_table"`
	Addresses string `json:"addresses"`
	PageSize  uint64 `json:"page_size,omitempty"`
}

type errorRsp struct {
	Kind     string `json:"kind"`
	Field    string `json:"field,omitempty"`
	Position int    `json:"position,omitempty"`
	Message  string `json:"message"`
}

func (m *Monitor) translate(w http.ResponseWriter, r *http.Request) {
	req := translateReq{}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorRsp{Kind: "request", Message: err.Error()})
		return
	}

	report, err := m.simulator.Run(simulation.Request{
		PageTable: req.PageTable,
		Addresses: req.Addresses,
		PageSize:  vm.PageSize(req.PageSize),
	})
	if err != nil {
		status, rsp := classifyError(err)
		writeJSON(w, status, rsp)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func classifyError(err error) (int, errorRsp) {
	var (
		formatErr   *validator.FormatError
		parseErr    *validator.ParseError
		semanticErr *validator.SemanticError
	)

	switch {
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity, errorRsp{
			Kind:    "format",
			Field:   string(formatErr.Field),
			Message: formatErr.Message,
		}
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, errorRsp{
			Kind:    "parse",
			Field:   string(parseErr.Field),
			Message: parseErr.Message,
		}
	case errors.As(err, &semanticErr):
		return http.StatusUnprocessableEntity, errorRsp{
			Kind:     "semantic",
			Field:    string(semanticErr.Field),
			Position: semanticErr.Position,
			Message:  semanticErr.Message,
		}
	default:
		return http.StatusBadRequest, errorRsp{
			Kind:    "request",
			Message: err.Error(),
		}
	}
}

type pageSizeRsp struct {
	PageSize uint64   `json:"page_size"`
	Allowed  []uint64 `json:"allowed"`
}

func (m *Monitor) pageSizeRsp() pageSizeRsp {
	rsp := pageSizeRsp{PageSize: uint64(m.simulator.PageSize())}
	for _, s := range vm.AllowedPageSizes {
		rsp.Allowed = append(rsp.Allowed, uint64(s))
	}

	return rsp
}

func (m *Monitor) getPageSize(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.pageSizeRsp())
}

func (m *Monitor) selectPageSize(w http.ResponseWriter, r *http.Request) {
	size, err := vm.ParsePageSize(mux.Vars(r)["size"])
	if err == nil {
		err = m.simulator.SelectPageSize(size)
	}

	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorRsp{Kind: "request", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, m.pageSizeRsp())
}

func (m *Monitor) describeSimulator(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.simulator)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, m.summary.Totals())
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, http.StatusOK, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeJSON(w, http.StatusConflict,
			errorRsp{Kind: "profile", Message: err.Error()})
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, http.StatusOK, prof)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
