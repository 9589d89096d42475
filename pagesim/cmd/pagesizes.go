package cmd

import (
	"fmt"

	"github.com/sarchlab/pagesim/mem/vm"
	"github.com/spf13/cobra"
)

func newPageSizesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "page-sizes",
		Short: "List the page sizes that can be selected.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, size := range vm.AllowedPageSizes {
				marker := ""
				if size == a.cfg.PageSize {
					marker = " (selected)"
				}

				fmt.Fprintf(out, "%d%s\n", uint64(size), marker)
			}
		},
	}
}
