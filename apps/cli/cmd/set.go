package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"github.com/spf13/cobra"
)

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a value for a key",
		Long: `Store VALUE for KEY, replacing the last existing assignment or
appending a new one. Every other line is left untouched.

The file must already exist; set never creates it (see "dotenv init").

Examples:
  dotenv set API_KEY secret123
  dotenv -q auto set GREETING "hello world"
  dotenv --export set PATH_PREFIX /opt/bin`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCommand(cmd, opts, args[0], args[1])
		},
	}
}

func setCommand(cmd *cobra.Command, opts *rootOptions, key, value string) error {
	editor, err := opts.editor()
	if err != nil {
		return err
	}

	key, stored, err := editor.Set(key, value)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), env.FormatAssignment(key, stored, env.FormatOptions{Quote: env.QuoteAlways}))
	return nil
}
