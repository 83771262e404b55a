package sysctl

import (
	"context"
	"log/slog"

	"github.com/joshuapare/sysctlkit/internal/lens"
	"github.com/joshuapare/sysctlkit/internal/logger"
	"github.com/joshuapare/sysctlkit/internal/session"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// Provider implements per-resource operations on sysctl files. Every call
// opens the resource's file, holds its lock for the duration of the call
// and closes it on return. Calls made with a context from
// session.WithScope share one session per file.
//
// Live-apply failures are returned after the file has been saved; the file
// change is not rolled back.
type Provider struct {
	sessions *session.Manager
	live     Live
	log      *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(opts Options) *Provider {
	return &Provider{
		sessions: opts.sessions(),
		live:     opts.live(),
		log:      logger.OrDefault(opts.Logger),
	}
}

// Exists reports whether r.Name has an entry in r's file.
func (p *Provider) Exists(ctx context.Context, r types.Resource) (bool, error) {
	var ok bool
	err := p.view(ctx, r.File(), func(e *Editor) error {
		ok = e.Exists(r.Name)
		return nil
	})
	return ok, err
}

// Create adds the entry for r, then pushes r.Value live when r.Apply is set.
func (p *Provider) Create(ctx context.Context, r types.Resource) error {
	err := p.update(ctx, r.File(), func(e *Editor) error {
		return e.Create(r.Name, r.Value, r.Comment)
	})
	if err != nil {
		return err
	}
	p.log.Info("sysctl.create", "file", r.File(), "key", r.Name, "value", r.Value)
	return p.apply(ctx, r, r.Value)
}

// Destroy removes every entry for r.Name and its bound comment.
func (p *Provider) Destroy(ctx context.Context, r types.Resource) error {
	var removed int
	err := p.update(ctx, r.File(), func(e *Editor) error {
		removed = e.Delete(r.Name)
		return nil
	})
	if err == nil && removed > 0 {
		p.log.Info("sysctl.destroy", "file", r.File(), "key", r.Name, "nodes", removed)
	}
	return err
}

// ReadValue returns the stored value of r.Name. With r.Apply set, it
// returns types.OutOfSync instead when the live value differs.
func (p *Provider) ReadValue(ctx context.Context, r types.Resource) (string, error) {
	var stored string
	err := p.view(ctx, r.File(), func(e *Editor) error {
		var err error
		stored, err = e.Read(r.Name)
		return err
	})
	if err != nil || !r.Apply {
		return stored, err
	}

	current, err := p.live.Get(ctx, r.Name)
	if err != nil {
		return "", err
	}
	if !SameValue(stored, current) {
		p.log.Debug("sysctl.drift", "key", r.Name, "stored", stored, "live", current)
		return types.OutOfSync, nil
	}
	return stored, nil
}

// WriteValue stores value for r.Name, creating the entry when absent, then
// pushes value live when r.Apply is set.
func (p *Provider) WriteValue(ctx context.Context, r types.Resource, value string) error {
	err := p.update(ctx, r.File(), func(e *Editor) error {
		_, err := e.SetValue(r.Name, value)
		return err
	})
	if err != nil {
		return err
	}
	p.log.Info("sysctl.write", "file", r.File(), "key", r.Name, "value", value)
	return p.apply(ctx, r, value)
}

// ReadComment returns the comment bound to r.Name, "" when there is none.
func (p *Provider) ReadComment(ctx context.Context, r types.Resource) (string, error) {
	var text string
	err := p.view(ctx, r.File(), func(e *Editor) error {
		text = e.Comment(r.Name)
		return nil
	})
	return text, err
}

// WriteComment binds text to r.Name; an empty text removes the comment.
func (p *Provider) WriteComment(ctx context.Context, r types.Resource, text string) error {
	return p.update(ctx, r.File(), func(e *Editor) error {
		return e.SetComment(r.Name, text)
	})
}

// ListAll returns every entry of the file at target in document order. A
// missing file has no entries.
func (p *Provider) ListAll(ctx context.Context, target string) ([]types.Entry, error) {
	var out []types.Entry
	err := p.view(ctx, types.Resource{Target: target}.File(), func(e *Editor) error {
		out = e.Entries()
		return nil
	})
	return out, err
}

// Ensure converges r: the entry is created when absent, otherwise its value
// and comment are rewritten where they differ. An empty r.Comment only
// removes the bound comment when r.ClearComment is set. With r.Apply set a
// live value that drifted from the file is also pushed again. All steps run
// in one session. It reports whether anything changed.
func (p *Provider) Ensure(ctx context.Context, r types.Resource) (changed bool, err error) {
	if !session.InScope(ctx) {
		ctx = session.WithScope(ctx)
	}
	s, err := p.sessions.Open(ctx, r.File(), lens.SysctlID)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	ok, err := p.Exists(ctx, r)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, p.Create(ctx, r)
	}

	current, err := p.ReadValue(ctx, r)
	if err != nil {
		return false, err
	}
	if current != r.Value {
		if err := p.WriteValue(ctx, r, r.Value); err != nil {
			return true, err
		}
		changed = true
	}

	if r.Comment == "" && !r.ClearComment {
		return changed, nil
	}
	comment, err := p.ReadComment(ctx, r)
	if err != nil {
		return changed, err
	}
	if comment != r.Comment {
		if err := p.WriteComment(ctx, r, r.Comment); err != nil {
			return true, err
		}
		changed = true
	}
	return changed, nil
}

func (p *Provider) apply(ctx context.Context, r types.Resource, value string) error {
	if !r.Apply {
		return nil
	}
	return p.live.Set(ctx, r.Name, value)
}

// view runs fn on the file without saving.
func (p *Provider) view(ctx context.Context, file string, fn func(*Editor) error) error {
	return p.with(ctx, file, false, fn)
}

// update runs fn on the file and saves the result if fn changed it.
func (p *Provider) update(ctx context.Context, file string, fn func(*Editor) error) error {
	return p.with(ctx, file, true, fn)
}

func (p *Provider) with(ctx context.Context, file string, save bool, fn func(*Editor) error) (err error) {
	s, err := p.sessions.Open(ctx, file, lens.SysctlID)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	if err := fn(NewEditor(s.Tree())); err != nil {
		return err
	}
	if save {
		return s.Save()
	}
	return nil
}
