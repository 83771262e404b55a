package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sysctlkit/internal/config"
	"github.com/joshuapare/sysctlkit/pkg/sysctl"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// mapLive is an in-memory kernel for command tests.
type mapLive map[string]string

func (m mapLive) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", types.Errorf(types.ErrKindCommand, nil, "unknown oid %s", key)
	}
	return v, nil
}

func (m mapLive) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

// setupTarget writes content to a temp sysctl.conf, points cfg at it and
// resets global flags. It returns the file path and the fake kernel.
func setupTarget(t *testing.T, content string) (string, mapLive) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	kernel := mapLive{}
	prevLive, prevCfg := newLive, cfg
	newLive = func(config.Config) sysctl.Live { return kernel }
	t.Cleanup(func() { newLive, cfg = prevLive, prevCfg })

	cfg = config.Default()
	cfg.Target = path
	cfg.LockTimeout = 2 * time.Second

	verbose, quiet, jsonOut, apply = false, false, false, false
	noColor = true
	setComment, commentClear = "", false
	return path, kernel
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	require.NoError(t, err)

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String(), fnErr
}

// decodeJSON unmarshals command output into v.
func decodeJSON(t *testing.T, output string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}

// writeConfig writes a YAML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysctlctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
