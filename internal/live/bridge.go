// Package live reads and sets kernel parameters on the running system by
// invoking the sysctl(8) command.
package live

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/joshuapare/sysctlkit/internal/logger"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

const (
	// DefaultCommand is the sysctl binary looked up on PATH.
	DefaultCommand = "sysctl"

	// DefaultTimeout bounds a single sysctl invocation.
	DefaultTimeout = 10 * time.Second
)

// Runner executes name with args and returns its stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Options configures a Bridge. The zero value runs `sysctl` from PATH with
// the platform syntax of the running OS.
type Options struct {
	Command  string        // sysctl binary; default DefaultCommand
	Platform Platform      // set syntax; default PlatformAuto
	Timeout  time.Duration // per invocation; default DefaultTimeout
	Runner   Runner        // default ExecRunner
	Logger   *slog.Logger  // default logger.L
}

// Bridge reads and writes live kernel values.
type Bridge struct {
	command  string
	platform Platform
	timeout  time.Duration
	run      Runner
	log      *slog.Logger
}

// New creates a Bridge.
func New(opts Options) *Bridge {
	b := &Bridge{
		command:  opts.Command,
		platform: opts.Platform.resolve(),
		timeout:  opts.Timeout,
		run:      opts.Runner,
		log:      logger.OrDefault(opts.Logger),
	}
	if b.command == "" {
		b.command = DefaultCommand
	}
	if b.timeout <= 0 {
		b.timeout = DefaultTimeout
	}
	if b.run == nil {
		b.run = ExecRunner
	}
	return b
}

// Platform returns the resolved set syntax.
func (b *Bridge) Platform() Platform { return b.platform }

// Get returns the live value of key with the trailing newline removed.
func (b *Bridge) Get(ctx context.Context, key string) (string, error) {
	out, err := b.invoke(ctx, "-n", key)
	if err != nil {
		return "", types.Errorf(types.ErrKindCommand, err, "live: get %s", key)
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// Set applies value to key on the running system.
func (b *Bridge) Set(ctx context.Context, key, value string) error {
	if _, err := b.invoke(ctx, b.setArgs(key, value)...); err != nil {
		b.log.Warn("live.set", "key", key, "value", value, "err", err)
		return types.Errorf(types.ErrKindCommand, err, "live: set %s", key)
	}
	b.log.Debug("live.set", "key", key, "value", value, "platform", b.platform.String())
	return nil
}

func (b *Bridge) setArgs(key, value string) []string {
	assign := key + "=" + value
	if b.platform == PlatformBare {
		return []string{assign}
	}
	return []string{"-w", assign}
}

// invoke runs the command. Failures come back as *CommandError.
func (b *Bridge) invoke(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	stdout, stderr, err := b.run(ctx, b.command, args...)
	if err == nil {
		return stdout, nil
	}
	return nil, &CommandError{
		Command: b.command,
		Args:    args,
		Stderr:  strings.TrimSpace(string(stderr)),
		Err:     commandCause(ctx, err),
	}
}

func commandCause(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}
	return err
}

// CommandError reports a failed sysctl invocation: the binary is missing,
// the key is unknown to the kernel, or the write was refused.
type CommandError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := e.Command + " " + strings.Join(e.Args, " ") + ": " + e.Err.Error()
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
