// Package simulation runs address translations for a session. A session
// remembers the selected page size; each run validates its inputs and
// translates every address.
package simulation

import (
	"log/slog"
	"sync"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/mem/vm/validator"
	"github.com/sarchlab/pagesim/sim"
)

// HookPosRunStart triggers when a run starts. The item is the Request and the
// detail is the run ID.
var HookPosRunStart = &sim.HookPos{Name: "RunStart"}

// HookPosAddressTranslated triggers after each address is translated. The
// item is the vm.Result and the detail is the index of the address.
var HookPosAddressTranslated = &sim.HookPos{Name: "AddressTranslated"}

// HookPosRunEnd triggers when a run produces a report. The item is the
// *RunReport.
var HookPosRunEnd = &sim.HookPos{Name: "RunEnd"}

// HookPosRunRejected triggers when the inputs of a run fail validation. The
// item is the error and the detail is the run ID.
var HookPosRunRejected = &sim.HookPos{Name: "RunRejected"}

// A Request holds the raw text of one run.
type Request struct {
	PageTable string
	Addresses string

	// PageSize overrides the session page size when not zero.
	PageSize vm.PageSize
}

// A Simulator translates logical addresses through user-provided page tables.
type Simulator struct {
	*sim.HookableBase

	name        string
	idGenerator sim.IDGenerator
	logger      *slog.Logger

	lock     sync.RWMutex
	pageSize vm.PageSize
	numRuns  uint64
}

// Name returns the name of the simulator.
func (s *Simulator) Name() string {
	return s.name
}

// PageSize returns the page size currently selected.
func (s *Simulator) PageSize() vm.PageSize {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.pageSize
}

// SelectPageSize changes the page size used by later runs.
func (s *Simulator) SelectPageSize(pageSize vm.PageSize) error {
	if err := pageSize.Validate(); err != nil {
		return err
	}

	s.lock.Lock()
	s.pageSize = pageSize
	s.lock.Unlock()

	s.logger.Info("page size selected",
		"simulator", s.name, "page_size", uint64(pageSize))

	return nil
}

// NumRuns returns the number of runs started.
func (s *Simulator) NumRuns() uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.numRuns
}

func (s *Simulator) startRun(override vm.PageSize) vm.PageSize {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.numRuns++

	if override != 0 {
		return override
	}

	return s.pageSize
}

// Run validates the request and translates all its addresses. It returns
// either a full report or the first validation error. An unsupported page
// size override rejects the run like malformed input does.
func (s *Simulator) Run(req Request) (*RunReport, error) {
	pageSize := s.startRun(req.PageSize)

	id := s.idGenerator.Generate()
	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosRunStart,
		Item:   req,
		Detail: id,
	})

	pt, addrs, err := parseRequest(req)
	if err != nil {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosRunRejected,
			Item:   err,
			Detail: id,
		})

		return nil, err
	}

	results := make([]vm.Result, len(addrs))
	for i, addr := range addrs {
		results[i] = vm.Translate(addr, pageSize, pt)

		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosAddressTranslated,
			Item:   results[i],
			Detail: i,
		})
	}

	report := &RunReport{
		ID:        id,
		PageSize:  pageSize,
		PageTable: pt,
		Addresses: addrs,
		Results:   results,
		Summary:   vm.Summarize(results),
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosRunEnd,
		Item:   report,
	})

	return report, nil
}

func parseRequest(req Request) (*vm.PageTable, []uint64, error) {
	if req.PageSize != 0 {
		if err := req.PageSize.Validate(); err != nil {
			return nil, nil, err
		}
	}

	err := validator.ValidateFormats(req.PageTable, req.Addresses)
	if err != nil {
		return nil, nil, err
	}

	pt, err := validator.ParsePageTable(req.PageTable)
	if err != nil {
		return nil, nil, err
	}

	addrs, err := validator.ParseAddresses(req.Addresses)
	if err != nil {
		return nil, nil, err
	}

	return pt, addrs, nil
}
