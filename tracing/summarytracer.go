package tracing

import (
	"sync"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

// Totals are the counts a SummaryTracer has collected.
type Totals struct {
	Runs         int        `json:"runs"`
	RejectedRuns int        `json:"rejected_runs"`
	Outcomes     vm.Summary `json:"outcomes"`
}

// SummaryTracer accumulates run and outcome counts across runs. It is safe
// for concurrent use.
type SummaryTracer struct {
	lock   sync.Mutex
	totals Totals
}

// NewSummaryTracer creates a SummaryTracer with zero counts.
func NewSummaryTracer() *SummaryTracer {
	return &SummaryTracer{}
}

// Func updates the counts.
func (t *SummaryTracer) Func(ctx sim.HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	switch ctx.Pos {
	case simulation.HookPosRunStart:
		t.totals.Runs++
	case simulation.HookPosRunRejected:
		t.totals.RejectedRuns++
	case simulation.HookPosRunEnd:
		report := ctx.Item.(*simulation.RunReport)
		t.totals.Outcomes = t.totals.Outcomes.Add(report.Summary)
	}
}

// Totals returns a snapshot of the counts.
func (t *SummaryTracer) Totals() Totals {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.totals
}
