package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

// errDrift makes `drift` fail when any entry is out of sync.
var errDrift = errors.New("live values differ from file")

func init() {
	rootCmd.AddCommand(newDriftCmd())
}

func newDriftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Compare every entry with the running kernel",
		Long: `The drift command reads the live value of each entry in the target file
and reports which ones differ. It never changes either side. The exit status is
non-zero when anything is out of sync.

Example:
  sysctlctl drift
  sysctlctl drift --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrift(cmd.Context())
		},
	}
	return cmd
}

func runDrift(ctx context.Context) error {
	file := resource("", "").File()
	report, err := newProvider().Drift(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", file, err)
	}

	drifted, unreadable := countDrifted(report), countUnreadable(report)

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		for _, d := range report {
			switch {
			case d.Err != "":
				printInfo("%s %s: %s\n", paint(warnStyle, "?"), paint(keyStyle, d.Name), d.Err)
			case d.InSync:
				printVerbose("%s %s = %s\n", paint(okStyle, "✓"), paint(keyStyle, d.Name), d.Value)
			default:
				printInfo("%s %s: file %s, live %s\n",
					paint(driftStyle, "✗"), paint(keyStyle, d.Name), d.Value, d.Live)
			}
		}
		summary := fmt.Sprintf("%d of %d entries in sync", len(report)-drifted-unreadable, len(report))
		if unreadable > 0 {
			summary += fmt.Sprintf(", %d unreadable", unreadable)
		}
		printInfo("%s\n", summary)
	}

	if drifted > 0 {
		return fmt.Errorf("%d entries: %w", drifted, errDrift)
	}
	return nil
}

// countDrifted counts entries whose live value was read and differs.
// Unreadable entries are not drift.
func countDrifted(rows []types.DriftEntry) int {
	n := 0
	for _, r := range rows {
		if r.Err == "" && !r.InSync {
			n++
		}
	}
	return n
}

func countUnreadable(rows []types.DriftEntry) int {
	n := 0
	for _, r := range rows {
		if r.Err != "" {
			n++
		}
	}
	return n
}
