package simulation

import (
	"encoding/json"

	"github.com/sarchlab/pagesim/mem/vm"
)

// A RunReport is the outcome of a run that passed validation.
type RunReport struct {
	ID        string
	PageSize  vm.PageSize
	PageTable *vm.PageTable
	Addresses []uint64
	Results   []vm.Result
	Summary   vm.Summary
}

// A Record is a flat view of a result for renderers. Frame and physical
// address are nil when the translation did not reach a frame.
type Record struct {
	Index           int     `json:"index"`
	Status          string  `json:"status"`
	LogicalAddress  uint64  `json:"logical_address"`
	PageNumber      uint64  `json:"page_number"`
	Offset          uint64  `json:"offset"`
	FrameNumber     *int    `json:"frame_number,omitempty"`
	PhysicalAddress *uint64 `json:"physical_address,omitempty"`
	Message         string  `json:"message,omitempty"`
}

// Records flattens results into records, keeping their order. Indices start
// from 1.
func Records(results []vm.Result) []Record {
	records := make([]Record, len(results))
	for i, r := range results {
		records[i] = recordOf(r)
		records[i].Index = i + 1
	}

	return records
}

func recordOf(r vm.Result) Record {
	rec := Record{
		Status:  r.Status().String(),
		Message: r.Message(),
	}

	switch r := r.(type) {
	case vm.Success:
		frame := r.FrameNumber
		physical := r.PhysicalAddress
		rec.LogicalAddress = r.LogicalAddress
		rec.PageNumber = r.PageNumber
		rec.Offset = r.Offset
		rec.FrameNumber = &frame
		rec.PhysicalAddress = &physical
	case vm.PageFault:
		rec.LogicalAddress = r.LogicalAddress
		rec.PageNumber = r.PageNumber
		rec.Offset = r.Offset
	case vm.Error:
		rec.LogicalAddress = r.LogicalAddress
		rec.PageNumber = r.PageNumber
		rec.Offset = r.Offset
	default:
		panic("unknown result type")
	}

	return rec
}

type reportJSON struct {
	ID        string     `json:"id"`
	PageSize  uint64     `json:"page_size"`
	PageTable string     `json:"page_table"`
	Addresses []uint64   `json:"addresses"`
	Results   []Record   `json:"results"`
	Summary   vm.Summary `json:"summary"`
}

// MarshalJSON encodes the report with flattened records.
func (r *RunReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		ID:        r.ID,
		PageSize:  uint64(r.PageSize),
		PageTable: r.PageTable.String(),
		Addresses: r.Addresses,
		Results:   Records(r.Results),
		Summary:   r.Summary,
	})
}
