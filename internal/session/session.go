package session

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joshuapare/sysctlkit/internal/flock"
	"github.com/joshuapare/sysctlkit/internal/lens"
	"github.com/joshuapare/sysctlkit/pkg/ast"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// Session is a locked, editable view of one file.
//
// NOT thread-safe. Only one goroutine should use a session at a time.
type Session struct {
	m     *Manager
	key   sessionKey
	lens  *lens.Lens
	lock  *flock.Lock
	scope *scope
	tree  *ast.Tree

	exists bool        // file was present at load/save time
	info   os.FileInfo // of the file at load time, for mode/owner on save

	refs   int  // guarded by m.mu
	closed bool // guarded by m.mu
}

// Path returns the absolute file path.
func (s *Session) Path() string { return s.key.path }

// Lens returns the id of the grammar the file was parsed with.
func (s *Session) Lens() string { return s.key.lens }

// Tree returns the in-memory document. It is nil after Close.
func (s *Session) Tree() *ast.Tree { return s.tree }

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool { return s.tree != nil && s.tree.Dirty() }

// Reload re-reads the file from disk, discarding unsaved changes.
func (s *Session) Reload() error {
	if s.tree == nil {
		return types.ErrClosed
	}
	if err := s.load(); err != nil {
		return err
	}
	s.m.log.Debug("session.reload", "path", s.key.path)
	return nil
}

// Save renders the tree and atomically replaces the file. A clean tree is
// not written. On failure the original file is left untouched.
func (s *Session) Save() error {
	if s.tree == nil {
		return types.ErrClosed
	}
	if !s.tree.Dirty() {
		return nil
	}

	data := s.lens.Render(s.tree)

	if s.m.opts.Backup && s.exists {
		if err := copyFile(s.key.path, backupPath(s.key.path)); err != nil {
			return classify(err, "backup", s.key.path)
		}
	}

	if err := writeAtomic(s.key.path, data, s.info); err != nil {
		return classify(err, "save", s.key.path)
	}

	s.tree.MarkClean()
	s.exists = true
	if fi, err := os.Stat(s.key.path); err == nil {
		s.info = fi
	}
	s.m.log.Debug("session.save", "path", s.key.path, "bytes", len(data))
	return nil
}

// Close releases the lock and discards the tree once the last reference in
// the session's scope is closed. Calling it again is a no-op.
func (s *Session) Close() error {
	if !s.m.release(s) {
		return nil
	}
	unsaved := s.tree != nil && s.tree.Dirty()
	s.tree = nil
	err := s.lock.Release()
	s.m.log.Debug("session.close", "path", s.key.path, "discarded_changes", unsaved)
	if err != nil {
		return classify(err, "unlock", s.key.path)
	}
	return nil
}

func (s *Session) load() error {
	data, err := os.ReadFile(s.key.path)
	switch {
	case err == nil:
		s.exists = true
	case errors.Is(err, fs.ErrNotExist) && s.lens.AllowMissing:
		data, s.exists = nil, false
	default:
		return classify(err, "read", s.key.path)
	}

	s.info = nil
	if s.exists {
		if fi, err := os.Stat(s.key.path); err == nil {
			s.info = fi
		}
	}

	tree, err := s.lens.Parse(data)
	if err != nil {
		return err
	}
	s.tree = tree
	return nil
}
