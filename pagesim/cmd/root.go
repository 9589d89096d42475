// Package cmd provides the command-line interface for pagesim.
package cmd

import (
	"log/slog"
	"os"

	"github.com/sarchlab/pagesim/config"
	"github.com/spf13/cobra"
)

// app holds what the persistent flags resolve to before a subcommand runs.
type app struct {
	envFile  string
	logLevel string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds the pagesim command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use: "pagesim",
		Short: "Pagesim simulates single-level paging address " +
			"translation.",
		Long: `Pagesim simulates single-level paging address translation. ` +
			`Given a page table and a list of logical addresses, it ` +
			`computes page numbers, offsets, frames and physical ` +
			`addresses, and reports page faults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "",
		"Load settings from this .env file instead of ./.env")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, or error")

	rootCmd.AddCommand(
		newTranslateCmd(a),
		newServeCmd(a),
		newPageSizesCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg config.Config
		err error
	)

	if a.envFile != "" {
		cfg, err = config.Load(a.envFile)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.LogLevel, err = config.ParseLogLevel(a.logLevel)
		if err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
		&slog.HandlerOptions{Level: cfg.LogLevel}))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	rootCmd := NewRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
