package tracing

import (
	"log/slog"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

// LogTracer writes one structured log line for each step of a run.
type LogTracer struct {
	logger *slog.Logger
}

// NewLogTracer creates a LogTracer that writes to the given logger.
func NewLogTracer(logger *slog.Logger) *LogTracer {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogTracer{logger: logger}
}

// Func logs the hook context.
func (t *LogTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case simulation.HookPosRunStart:
		req := ctx.Item.(simulation.Request)
		t.logger.Debug("run started",
			"run", ctx.Detail,
			"page_table", req.PageTable,
			"addresses", req.Addresses)
	case simulation.HookPosAddressTranslated:
		t.logResult(ctx.Detail.(int), ctx.Item.(vm.Result))
	case simulation.HookPosRunEnd:
		report := ctx.Item.(*simulation.RunReport)
		t.logger.Info("run finished",
			"run", report.ID,
			"page_size", uint64(report.PageSize),
			"successful", report.Summary.Successful,
			"page_faults", report.Summary.PageFaults,
			"errors", report.Summary.Errors)
	case simulation.HookPosRunRejected:
		t.logger.Warn("run rejected",
			"run", ctx.Detail,
			"reason", ctx.Item.(error).Error())
	}
}

func (t *LogTracer) logResult(index int, r vm.Result) {
	attrs := []any{
		"index", index + 1,
		"logical_address", r.Address(),
		"status", r.Status().String(),
	}

	switch r := r.(type) {
	case vm.Success:
		attrs = append(attrs,
			"page", r.PageNumber,
			"offset", r.Offset,
			"frame", r.FrameNumber,
			"physical_address", r.PhysicalAddress)
	case vm.PageFault:
		attrs = append(attrs,
			"page", r.PageNumber,
			"offset", r.Offset,
			"reason", r.Message())
	case vm.Error:
		attrs = append(attrs,
			"page", r.PageNumber,
			"offset", r.Offset,
			"reason", r.Message())
	}

	t.logger.Debug("address translated", attrs...)
}
