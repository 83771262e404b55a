package sysctl

import (
	"context"
	"strings"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

// SameValue compares a stored and a live value. Runs of whitespace are
// equivalent: `sysctl -n` prints vector values tab-separated while files
// usually use spaces.
func SameValue(stored, live string) bool {
	return strings.Join(strings.Fields(stored), " ") == strings.Join(strings.Fields(live), " ")
}

// Drift reads the live value of every entry in target. Keys the kernel
// does not know are reported with Err set instead of failing the report.
func (p *Provider) Drift(ctx context.Context, target string) ([]types.DriftEntry, error) {
	entries, err := p.ListAll(ctx, target)
	if err != nil {
		return nil, err
	}
	out := make([]types.DriftEntry, 0, len(entries))
	for _, e := range entries {
		d := types.DriftEntry{Entry: e}
		current, err := p.live.Get(ctx, e.Name)
		if err != nil {
			d.Err = err.Error()
		} else {
			d.Live = current
			d.InSync = SameValue(e.Value, current)
		}
		out = append(out, d)
	}
	return out, nil
}
