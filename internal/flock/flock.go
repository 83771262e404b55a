// Package flock provides exclusive advisory file locks that serialize both
// goroutines of this process and cooperating processes.
//
// Two layers are taken in order: a per-path in-process slot (so goroutines
// queue without polling) and an OS lock on the lock file (flock(2) on unix,
// nothing elsewhere). A lock is released by Release, which is safe to call
// more than once.
package flock

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

// pollInterval is how often a contended OS lock is retried.
const pollInterval = 20 * time.Millisecond

var errWouldBlock = errors.New("flock: lock held elsewhere")

var (
	slotsMu sync.Mutex
	slots   = make(map[string]chan struct{})
)

// slot returns the in-process semaphore for path.
func slot(path string) chan struct{} {
	slotsMu.Lock()
	defer slotsMu.Unlock()
	ch, ok := slots[path]
	if !ok {
		ch = make(chan struct{}, 1)
		slots[path] = ch
	}
	return ch
}

// Lock is a held advisory lock.
type Lock struct {
	path string
	f    *os.File
	slot chan struct{}
	once sync.Once
	err  error
}

// Acquire takes an exclusive lock on the file at path, creating it if
// needed. It waits at most timeout (no bound when timeout <= 0) and fails
// with types.ErrLockTimeout when the wait runs out.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s := slot(path)
	select {
	case s <- struct{}{}:
	case <-ctx.Done():
		return nil, waitError(ctx, path)
	}

	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		<-s
		return nil, err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		err := tryLock(f)
		if err == nil {
			break
		}
		if !errors.Is(err, errWouldBlock) {
			_ = f.Close()
			<-s
			return nil, err
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			_ = f.Close()
			<-s
			return nil, waitError(ctx, path)
		}
	}

	return &Lock{path: path, f: f, slot: s}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Release drops the OS lock and the in-process slot.
func (l *Lock) Release() error {
	l.once.Do(func() {
		err := unlock(l.f)
		if cerr := l.f.Close(); err == nil {
			err = cerr
		}
		<-l.slot
		l.err = err
	})
	return l.err
}

func waitError(ctx context.Context, path string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return types.Errorf(types.ErrKindLockTimeout, ctx.Err(), "flock: timed out waiting for %s", path)
	}
	return ctx.Err()
}
