package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joshuapare/sysctlkit/internal/flock"
	"github.com/joshuapare/sysctlkit/internal/lens"
	"github.com/joshuapare/sysctlkit/internal/logger"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// DefaultLockTimeout bounds how long Open waits for another holder.
const DefaultLockTimeout = 10 * time.Second

// Options configures a Manager.
type Options struct {
	// LockTimeout bounds the wait for the file lock. Zero selects
	// DefaultLockTimeout; a negative value waits without bound.
	LockTimeout time.Duration

	// Backup copies the current file to <path>.bak before each save that
	// replaces an existing file.
	Backup bool

	// Logger receives debug traces. Nil uses logger.L.
	Logger *slog.Logger
}

type sessionKey struct {
	path string
	lens string
}

// Manager opens sessions and tracks the live ones by (absolute path, lens).
//
// Safe for concurrent use. Individual sessions are not.
type Manager struct {
	opts Options
	log  *slog.Logger

	mu   sync.Mutex
	open map[sessionKey]*Session
}

// NewManager creates a session manager.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts: opts,
		log:  logger.OrDefault(opts.Logger),
		open: make(map[sessionKey]*Session),
	}
}

// Open locks path, reads it and parses it with the lens registered under
// lensID. A missing file reads as empty when the lens allows it; a missing
// parent directory is types.ErrNotFound.
//
// Symlinks are resolved first: the session, its lock and its saves all act
// on the real file, so every alias of a file shares one lock.
func (m *Manager) Open(ctx context.Context, path, lensID string) (*Session, error) {
	l, err := lens.Lookup(lensID)
	if err != nil {
		return nil, err
	}
	abs, err := resolvePath(path)
	if err != nil {
		return nil, classify(err, "resolve", path)
	}
	key := sessionKey{path: abs, lens: l.ID}
	sc := scopeFrom(ctx)

	if s := m.reuse(key, sc); s != nil {
		m.log.Debug("session.reuse", "path", abs, "lens", l.ID)
		return s, nil
	}

	dir := filepath.Dir(abs)
	if fi, err := os.Stat(dir); err != nil {
		return nil, classify(err, "stat directory", dir)
	} else if !fi.IsDir() {
		return nil, types.Errorf(types.ErrKindNotFound, nil, "session: %s is not a directory", dir)
	}

	start := time.Now()
	lk, err := flock.Acquire(ctx, lockPath(abs), m.lockTimeout())
	if err != nil {
		var te *types.Error
		if errors.As(err, &te) {
			return nil, fmt.Errorf("session: lock %s: %w", abs, err)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, classify(err, "lock", abs)
	}
	m.log.Debug("session.lock", "path", abs, "waited", time.Since(start))

	s := &Session{
		m:     m,
		key:   key,
		lens:  l,
		lock:  lk,
		scope: sc,
		refs:  1,
	}
	if err := s.load(); err != nil {
		_ = lk.Release()
		return nil, err
	}
	m.removeStaleTemps(abs)

	m.mu.Lock()
	m.open[key] = s
	m.mu.Unlock()

	m.log.Debug("session.open", "path", abs, "lens", l.ID, "exists", s.exists, "nodes", s.tree.Len())
	return s, nil
}

// Sessions returns the number of live sessions.
func (m *Manager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}

func (m *Manager) reuse(key sessionKey, sc *scope) *Session {
	if sc == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.open[key]
	if s == nil || s.scope != sc || s.closed {
		return nil
	}
	s.refs++
	return s
}

// release drops one reference and reports whether it was the last one.
func (m *Manager) release(s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.closed {
		return false
	}
	s.refs--
	if s.refs > 0 {
		return false
	}
	s.closed = true
	if m.open[s.key] == s {
		delete(m.open, s.key)
	}
	return true
}

func (m *Manager) lockTimeout() time.Duration {
	switch {
	case m.opts.LockTimeout == 0:
		return DefaultLockTimeout
	case m.opts.LockTimeout < 0:
		return 0
	default:
		return m.opts.LockTimeout
	}
}

// removeStaleTemps deletes temp files left by an interrupted save. Only the
// lock holder writes temps, so anything present now is garbage.
func (m *Manager) removeStaleTemps(path string) {
	dir, base := filepath.Split(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	prefix := tempPrefix(base)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		stale := filepath.Join(dir, e.Name())
		if err := os.Remove(stale); err == nil {
			m.log.Debug("session.cleanup", "removed", stale)
		}
	}
}

// maxLinkHops bounds symlink chains followed by resolvePath.
const maxLinkHops = 40

// resolvePath returns the absolute path of the file path refers to. A link
// whose target does not exist yet resolves to that target.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	for range maxLinkHops {
		fi, err := os.Lstat(abs)
		if err != nil || fi.Mode()&os.ModeSymlink == 0 {
			break
		}
		target, err := os.Readlink(abs)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(abs), target)
		}
		abs = filepath.Clean(target)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs)), nil
	}
	return abs, nil
}

// lockPath is the hidden sidecar locked for path. The target itself cannot
// carry the lock: saving replaces its inode.
func lockPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+".lock")
}

func tempPrefix(base string) string {
	return "." + base + ".tmp-"
}
