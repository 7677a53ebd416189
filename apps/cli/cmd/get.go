package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a key",
		Long: `Print KEY="VALUE" for the last assignment to KEY.

Exits with a non-zero status when the file or the key does not exist.

Examples:
  dotenv get DATABASE_URL
  dotenv -f config/.env get API_KEY`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getCommand(cmd, opts, args[0])
		},
	}
}

func getCommand(cmd *cobra.Command, opts *rootOptions, key string) error {
	editor, err := opts.editor()
	if err != nil {
		return err
	}

	value, ok, err := editor.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return missingTarget(editor.Path())
	}

	fmt.Fprintln(cmd.OutOrStdout(), env.FormatAssignment(key, value, env.FormatOptions{Quote: env.QuoteAlways}))
	return nil
}
