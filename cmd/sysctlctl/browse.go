package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newBrowseCmd())
}

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse entries and their live values interactively",
		Long: `The browse command opens a full-screen list of every entry in the target
file next to its live kernel value. Press c to copy the selected line, r to
reload and ? for all shortcuts. Nothing is modified.

Example:
  sysctlctl browse
  sysctlctl browse --target /etc/sysctl.d/90-tuning.conf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse()
		},
	}
	return cmd
}

func runBrowse() error {
	file := resource("", "").File()
	p := newProvider()
	load := func(ctx context.Context) ([]types.DriftEntry, error) {
		return p.Drift(ctx, file)
	}

	prog := tea.NewProgram(
		newBrowseModel(file, load, clipboard.WriteAll),
		tea.WithAltScreen(),
	)
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if m, ok := final.(browseModel); ok && m.err != nil {
		return fmt.Errorf("failed to load %s: %w", file, m.err)
	}
	return nil
}
