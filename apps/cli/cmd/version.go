package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/dotenv/packages/output"
	"github.com/spf13/cobra"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			console := output.NewConsoleFormatter(
				output.WithWriter(cmd.OutOrStdout()),
				output.WithNoColor(opts.noColor),
			)
			console.FormatHeader(version)
			fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", buildTime)
		},
	}
}
