package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Remove a key and its comment from the file",
		Long: `The delete command removes every entry for a key together with the
"key: ..." comment directly above each one. Other comments are left alone.
The running kernel is not changed.

Example:
  sysctlctl delete net.ipv4.ip_forward`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.Context(), args)
		},
	}
	return cmd
}

func runDelete(ctx context.Context, args []string) error {
	r := resource(args[0], "")
	p := newProvider()

	existed, err := p.Exists(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.File(), err)
	}
	if existed {
		if err := p.Destroy(ctx, r); err != nil {
			return fmt.Errorf("failed to delete %s: %w", r.Name, err)
		}
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"target":  r.File(),
			"name":    r.Name,
			"deleted": existed,
		})
	}
	if !existed {
		printInfo("%s %s not present\n", paint(warnStyle, "-"), paint(keyStyle, r.Name))
		return nil
	}
	printInfo("%s %s deleted\n", paint(okStyle, "✓"), paint(keyStyle, r.Name))
	return nil
}
