// Package config loads the optional sysctlctl configuration file.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/sysctlkit/internal/live"
	"github.com/joshuapare/sysctlkit/internal/session"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "/etc/sysctlctl.yaml"

// Config holds resolved CLI settings.
type Config struct {
	Target      string
	LockTimeout time.Duration
	SysctlPath  string
	Platform    live.Platform
	Backup      bool
	LogLevel    slog.Level
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Target:      types.DefaultTarget,
		LockTimeout: session.DefaultLockTimeout,
		SysctlPath:  live.DefaultCommand,
		Platform:    live.PlatformAuto,
		LogLevel:    slog.LevelWarn,
	}
}

// Load reads path. A missing file yields Default() when optional is true
// (the implicit default path); an explicitly named file must exist.
func Load(path string, optional bool) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		kind := types.ErrKindIO
		switch {
		case errors.Is(err, fs.ErrNotExist):
			kind = types.ErrKindNotFound
		case errors.Is(err, fs.ErrPermission):
			kind = types.ErrKindPermission
		}
		return Config{}, types.Errorf(kind, err, "config: read %s", path)
	}

	var dto YAMLConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, types.Errorf(types.ErrKindSyntax, err, "config: parse %s", path)
	}

	cfg, err := Map(dto)
	if err != nil {
		return Config{}, types.Errorf(types.ErrKindSyntax, err, "config: %s", path)
	}
	return cfg, nil
}

// Map applies dto on top of Default().
func Map(dto YAMLConfig) (Config, error) {
	cfg := Default()
	if dto.Target != "" {
		cfg.Target = dto.Target
	}
	if dto.LockTimeout != "" {
		d, err := time.ParseDuration(dto.LockTimeout)
		if err != nil {
			return Config{}, fieldError("lock_timeout", err)
		}
		cfg.LockTimeout = d
	}
	if dto.SysctlPath != "" {
		cfg.SysctlPath = dto.SysctlPath
	}
	p, err := live.ParsePlatform(dto.Platform)
	if err != nil {
		return Config{}, fieldError("platform", err)
	}
	cfg.Platform = p
	if dto.Backup != nil {
		cfg.Backup = *dto.Backup
	}
	if dto.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.TrimSpace(dto.LogLevel))); err != nil {
			return Config{}, fieldError("log_level", err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// FieldError names the config key holding an invalid value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }
