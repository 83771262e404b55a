package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setComment string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setComment, "comment", "", "Comment bound to the entry (empty removes it)")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set the value of a key, creating the entry if needed",
		Long: `The set command stores a value in the target file. A new entry is placed
next to a commented-out line for the same key when there is one, otherwise at
the end of the file. With --apply the value is also set on the running kernel.

Example:
  sysctlctl set net.ipv4.ip_forward 1
  sysctlctl set kernel.panic 10 --comment "reboot after panic"
  sysctlctl set vm.swappiness 10 --apply`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd.Context(), args, cmd.Flags().Changed("comment"))
		},
	}
	return cmd
}

func runSet(ctx context.Context, args []string, withComment bool) error {
	r := resource(args[0], args[1])
	p := newProvider()

	printVerbose("Setting %s in %s\n", r.Name, r.File())

	changed := true
	var err error
	if withComment {
		r.Comment = setComment
		r.ClearComment = true
		changed, err = p.Ensure(ctx, r)
	} else {
		err = p.WriteValue(ctx, r, r.Value)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", r.Name, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"target":  r.File(),
			"name":    r.Name,
			"value":   r.Value,
			"changed": changed,
			"applied": r.Apply,
			"success": true,
		})
	}

	if !changed {
		printInfo("%s %s already set\n", paint(okStyle, "✓"), paint(keyStyle, r.Name))
		return nil
	}
	printInfo("%s %s = %s\n", paint(okStyle, "✓"), paint(keyStyle, r.Name), r.Value)
	if r.Apply {
		printVerbose("Applied to running kernel\n")
	}
	if cfg.Backup {
		printVerbose("Backup: %s.bak\n", r.File())
	}
	return nil
}
