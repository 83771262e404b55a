package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errAbsent makes `exists` fail for scripting.
var errAbsent = errors.New("not present")

func init() {
	rootCmd.AddCommand(newExistsCmd())
}

func newExistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <key>",
		Short: "Report whether the file has an entry for a key",
		Long: `The exists command exits 0 when the target file has an entry for the key
and non-zero otherwise.

Example:
  sysctlctl exists net.ipv4.ip_forward && echo configured`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExists(cmd.Context(), args)
		},
	}
	return cmd
}

func runExists(ctx context.Context, args []string) error {
	r := resource(args[0], "")
	ok, err := newProvider().Exists(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.File(), err)
	}

	if jsonOut {
		if err := printJSON(map[string]interface{}{"name": r.Name, "exists": ok}); err != nil {
			return err
		}
	} else if ok {
		printInfo("%s present\n", r.Name)
	}
	if !ok {
		return fmt.Errorf("%s: %w", r.Name, errAbsent)
	}
	return nil
}
