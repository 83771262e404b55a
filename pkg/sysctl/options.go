package sysctl

import (
	"context"
	"log/slog"

	"github.com/joshuapare/sysctlkit/internal/live"
	"github.com/joshuapare/sysctlkit/internal/session"
)

// Live reads and sets values on the running kernel.
type Live interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Options configures a Provider. The zero value edits files with default
// session settings and uses the sysctl command for live values.
type Options struct {
	Sessions *session.Manager // shared session manager; nil creates one
	Live     Live             // live bridge; nil uses live.New(live.Options{})
	Logger   *slog.Logger     // nil uses logger.L
}

func (o Options) sessions() *session.Manager {
	if o.Sessions != nil {
		return o.Sessions
	}
	return session.NewManager(session.Options{Logger: o.Logger})
}

func (o Options) live() Live {
	if o.Live != nil {
		return o.Live
	}
	return live.New(live.Options{Logger: o.Logger})
}
