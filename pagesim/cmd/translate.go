package cmd

import (
	"encoding/json"
	"io"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

type translateOptions struct {
	pageTable string
	addresses string
	pageSize  uint64
	asJSON    bool
}

func newTranslateCmd(a *app) *cobra.Command {
	opts := &translateOptions{}

	translateCmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate logical addresses through a page table.",
		Long: "`translate --page-table '{0: 2, 1: -1}' --addresses " +
			"'[0, 1500]'` translates every address and prints a summary.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.translate(cmd.OutOrStdout(), opts)
		},
	}

	flags := translateCmd.Flags()
	flags.StringVarP(&opts.pageTable, "page-table", "t", "",
		"Page table, e.g. {0: 2, 1: -1, 2: 4}")
	flags.StringVarP(&opts.addresses, "addresses", "a", "",
		"Logical addresses, e.g. [0, 512, 1500, 2048]")
	flags.Uint64VarP(&opts.pageSize, "page-size", "p", 0,
		"Page size in bytes (512, 1024, 2048, or 4096)")
	flags.BoolVar(&opts.asJSON, "json", false, "Print the report as JSON")

	return translateCmd
}

func (a *app) pageSize(flagValue uint64) (vm.PageSize, error) {
	if flagValue == 0 {
		return a.cfg.PageSize, nil
	}

	size := vm.PageSize(flagValue)
	if err := size.Validate(); err != nil {
		return 0, err
	}

	return size, nil
}

func (a *app) translate(out io.Writer, opts *translateOptions) error {
	pageSize, err := a.pageSize(opts.pageSize)
	if err != nil {
		return err
	}

	simulator := simulation.MakeBuilder().
		WithPageSize(pageSize).
		WithLogger(a.logger).
		Build("Pagesim")
	simulator.AcceptHook(tracing.NewLogTracer(a.logger))

	report, err := simulator.Run(simulation.Request{
		PageTable: opts.pageTable,
		Addresses: opts.addresses,
	})
	if err != nil {
		return err
	}

	if opts.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(report)
	}

	return renderText(out, report)
}
