package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port     int
		pageSize uint64
		trace    bool
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation API over HTTP.",
		Long: "`serve --port 8080` starts a JSON API that a host UI can " +
			"use to select page sizes and translate addresses.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size, err := a.pageSize(pageSize)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = a.cfg.MonitorPort
			}

			simulator := simulation.MakeBuilder().
				WithPageSize(size).
				WithLogger(a.logger).
				Build("Pagesim")
			simulator.AcceptHook(tracing.NewLogTracer(a.logger))

			if trace {
				simulator.AcceptHook(tracing.NewJSONTracer(cmd.OutOrStdout()))
			}

			m := monitoring.NewMonitor(simulator).
				WithLogger(a.logger).
				WithPortNumber(port)

			ctx, stop := signal.NotifyContext(cmd.Context(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return m.Serve(ctx)
		},
	}

	serveCmd.Flags().IntVar(&port, "port", 0,
		"Port to listen on; a random port is used when unset")
	serveCmd.Flags().Uint64VarP(&pageSize, "page-size", "p", 0,
		"Initial page size in bytes")
	serveCmd.Flags().BoolVar(&trace, "trace", false,
		"Write every finished run to stdout as a line of JSON")

	return serveCmd
}
