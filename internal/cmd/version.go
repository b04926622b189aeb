package cmd

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/michaelrosejr/pytellum/internal"
)

func newVersionCmd(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the intellim version",
		Args:  NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cli.Stdout, 0, 0, 1, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "Version:\t", internal.FullVersion())

			if internal.Commit != "" {
				fmt.Fprintln(w, "Commit:\t", internal.Commit)
			}

			if internal.Date != "" {
				fmt.Fprintln(w, "Built:\t", internal.Date)
			}

			fmt.Fprintln(w, "Go:\t", runtime.Version())

			return nil
		},
	}
}
