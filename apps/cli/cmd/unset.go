package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

func newUnsetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a key",
		Long: `Remove every assignment to KEY.

A missing file or key is reported as a warning and a non-zero exit status.

Examples:
  dotenv unset API_KEY`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return unsetCommand(cmd, opts, args[0])
		},
	}
}

func unsetCommand(cmd *cobra.Command, opts *rootOptions, key string) error {
	editor, err := opts.editor()
	if err != nil {
		return err
	}

	removed, err := editor.Unset(key)
	if err != nil {
		return err
	}

	if !removed {
		return missingTarget(editor.Path())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully removed %s\n", key)
	return nil
}

// missingTarget is returned after the editor has already warned about a
// missing file or key.
func missingTarget(path string) error {
	code := ExitFailure
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		code = ExitFileNotFound
	}
	return &exitError{code: code, silent: true}
}
