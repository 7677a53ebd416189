package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/dotenv/packages/output"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		formatFlag string
		watchFlag  bool
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print all key/value pairs",
		Long: `Print every assignment in the file.

The simple format prints KEY=VALUE lines in file order, duplicates included.
The json and yaml formats print one value per key, later assignments winning.

Examples:
  dotenv list
  dotenv list --format json
  eval "$(dotenv list --format export)"
  dotenv list --watch`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCommand(cmd, opts, formatFlag, watchFlag)
		},
	}

	listCmd.Flags().StringVar(&formatFlag, "format", getEnvString("DOTENV_FORMAT", ""), "Output format: simple, json, shell, export, yaml (env: DOTENV_FORMAT)")
	listCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Print the list again whenever the file changes")

	return listCmd
}

func listCommand(cmd *cobra.Command, opts *rootOptions, formatFlag string, watch bool) error {
	if formatFlag == "" {
		formatFlag = opts.cfg.Format
	}
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return usageError(err)
	}

	editor, err := opts.editor()
	if err != nil {
		return err
	}

	printEntries := func() error {
		entries, err := editor.List()
		if err != nil {
			return err
		}
		return output.WriteEntries(cmd.OutOrStdout(), entries, format)
	}

	if err := printEntries(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", editor.Path())

	onChange := func() {
		if err := printEntries(); err != nil {
			opts.console.FormatError(err)
		}
	}
	onError := func(err error) {
		opts.console.FormatError(err)
	}

	return watchFile(cmd.Context(), editor.Path(), onChange, onError)
}
