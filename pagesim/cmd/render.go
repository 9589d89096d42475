package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/simulation"
)

const notApplicable = "N/A"

func renderText(out io.Writer, report *simulation.RunReport) error {
	fmt.Fprintf(out, "Run %s, page size %d bytes, page table %s\n\n",
		report.ID, uint64(report.PageSize), report.PageTable)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	for _, rec := range simulation.Records(report.Results) {
		fmt.Fprintf(w, "Address #%d: %s\n", rec.Index, rec.Status)
		fmt.Fprintf(w, "  Logical address:\t%d\n", rec.LogicalAddress)
		fmt.Fprintf(w, "  Page number:\t%d\n", rec.PageNumber)
		fmt.Fprintf(w, "  Offset:\t%d\n", rec.Offset)
		fmt.Fprintf(w, "  Frame number:\t%s\n", intOrNA(rec.FrameNumber))
		fmt.Fprintf(w, "  Physical address:\t%s\n",
			uintOrNA(rec.PhysicalAddress))

		if rec.Message != "" {
			fmt.Fprintf(w, "  Message:\t%s\n", rec.Message)
		}

		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	s := report.Summary
	_, err := fmt.Fprintf(out,
		"Summary: %d translated, %d successful, %d page faults, %d errors\n",
		s.Total(), s.Successful, s.PageFaults, s.Errors)

	return err
}

func intOrNA(v *int) string {
	if v == nil {
		return notApplicable
	}

	return strconv.Itoa(*v)
}

func uintOrNA(v *uint64) string {
	if v == nil {
		return notApplicable
	}

	return strconv.FormatUint(*v, 10)
}
