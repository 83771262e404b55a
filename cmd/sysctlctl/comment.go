package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	commentClear bool
)

func init() {
	cmd := newCommentCmd()
	cmd.Flags().BoolVar(&commentClear, "clear", false, "Remove the comment")
	rootCmd.AddCommand(cmd)
}

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <key> [text]",
		Short: "Show or change the comment bound to a key",
		Long: `The comment command prints the comment bound to a key, the "key: text"
comment line directly above its entry. Given text, it replaces or adds that
comment; --clear removes it.

Example:
  sysctlctl comment kernel.panic
  sysctlctl comment kernel.panic "reboot after panic"
  sysctlctl comment kernel.panic --clear`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComment(cmd.Context(), args)
		},
	}
	return cmd
}

func runComment(ctx context.Context, args []string) error {
	r := resource(args[0], "")
	p := newProvider()

	if len(args) == 1 && !commentClear {
		text, err := p.ReadComment(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to read comment for %s: %w", r.Name, err)
		}
		if jsonOut {
			return printJSON(map[string]interface{}{"name": r.Name, "comment": text})
		}
		printInfo("%s\n", text)
		return nil
	}

	if len(args) == 2 && commentClear {
		return fmt.Errorf("give either a comment text or --clear, not both")
	}
	text := ""
	if len(args) == 2 {
		text = args[1]
	}
	if err := p.WriteComment(ctx, r, text); err != nil {
		return fmt.Errorf("failed to update comment for %s: %w", r.Name, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"name": r.Name, "comment": text, "success": true})
	}
	if text == "" {
		printInfo("%s comment removed from %s\n", paint(okStyle, "✓"), paint(keyStyle, r.Name))
		return nil
	}
	printInfo("%s %s: %s\n", paint(okStyle, "✓"), paint(keyStyle, r.Name), text)
	return nil
}
