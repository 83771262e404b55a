package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every entry in the file",
		Long: `The list command prints every entry of the target file in file order,
with the comment bound to it. Duplicate keys are listed once per line.

Example:
  sysctlctl list
  sysctlctl list --target /etc/sysctl.d/90-tuning.conf --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context())
		},
	}
	return cmd
}

func runList(ctx context.Context) error {
	file := resource("", "").File()
	entries, err := newProvider().ListAll(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", file, err)
	}

	if jsonOut {
		return printJSON(entries)
	}

	printVerbose("%s\n", paint(headerStyle, file))
	for _, e := range entries {
		line := fmt.Sprintf("%s = %s", paint(keyStyle, e.Name), e.Value)
		if e.Comment != "" {
			line += "  " + paint(commentStyle, "# "+e.Comment)
		}
		printInfo("%s\n", line)
	}
	printVerbose("\n%d entries\n", len(entries))
	return nil
}
