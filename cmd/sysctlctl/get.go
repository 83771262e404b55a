package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the stored value of a key",
		Long: `The get command prints the value stored in the target file for a key.
With --apply the live kernel value is compared as well and "` + types.OutOfSync + `"
is printed when the two differ.

Example:
  sysctlctl get net.ipv4.ip_forward
  sysctlctl get vm.swappiness --apply
  sysctlctl get kernel.panic --target /etc/sysctl.d/90-tuning.conf --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), args)
		},
	}
	return cmd
}

func runGet(ctx context.Context, args []string) error {
	r := resource(args[0], "")
	p := newProvider()

	printVerbose("Reading %s from %s\n", r.Name, r.File())

	value, err := p.ReadValue(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.Name, err)
	}
	comment, err := p.ReadComment(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to read comment for %s: %w", r.Name, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"target":       r.File(),
			"name":         r.Name,
			"value":        value,
			"comment":      comment,
			"in_sync":      value != types.OutOfSync,
			"checked_live": r.Apply,
		})
	}

	if value == types.OutOfSync {
		printInfo("%s\n", paint(driftStyle, value))
		return nil
	}
	printInfo("%s\n", value)
	return nil
}
