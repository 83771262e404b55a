package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sysctlkit/internal/config"
	"github.com/joshuapare/sysctlkit/internal/live"
	"github.com/joshuapare/sysctlkit/internal/logger"
	"github.com/joshuapare/sysctlkit/internal/session"
	"github.com/joshuapare/sysctlkit/pkg/sysctl"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	noColor     bool
	apply       bool
	target      string
	configPath  string
	lockTimeout time.Duration
	logLevel    string
	logDir      string

	// cfg is resolved in the root pre-run from the config file and flags.
	cfg = config.Default()
)

// newLive builds the live bridge; tests replace it.
var newLive = func(c config.Config) sysctl.Live {
	return live.New(live.Options{Command: c.SysctlPath, Platform: c.Platform})
}

var rootCmd = &cobra.Command{
	Use:   "sysctlctl",
	Short: "Manage kernel parameters in sysctl.conf files",
	Long: `sysctlctl reads and edits sysctl.conf-style files without disturbing
comments, blank lines or formatting, and can mirror values to the running
kernel. Every command locks the target file for its duration.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		BoolVarP(&apply, "apply", "a", false, "Also read/write the live kernel value")
	rootCmd.PersistentFlags().
		StringVarP(&target, "target", "t", "", "File to edit (default from config, else "+types.DefaultTarget+")")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().
		DurationVar(&lockTimeout, "lock-timeout", 0, "How long to wait for the file lock (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to daily files in this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves cfg and initializes logging. Flags win over the file.
func setup(cmd *cobra.Command, _ []string) error {
	path, optional := configPath, false
	if path == "" {
		path, optional = config.DefaultPath, true
	}
	c, err := config.Load(path, optional)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		c.Target = target
	}
	if flags.Changed("lock-timeout") {
		c.LockTimeout = lockTimeout
	}
	if flags.Changed("log-level") {
		c.LogLevel = logger.ParseLevel(logLevel)
	}
	if verbose {
		c.LogLevel = slog.LevelDebug
	}
	cfg = c

	opts := logger.Options{Enabled: !quiet || logDir != "", Level: cfg.LogLevel}
	if logDir != "" {
		opts.LogDir = logDir
	} else {
		opts.Writer = os.Stderr
	}
	return logger.Init(opts)
}

// newProvider wires a provider from cfg.
func newProvider() *sysctl.Provider {
	return sysctl.NewProvider(sysctl.Options{
		Sessions: session.NewManager(session.Options{
			LockTimeout: cfg.LockTimeout,
			Backup:      cfg.Backup,
		}),
		Live: newLive(cfg),
	})
}

// resource describes key in the configured target file.
func resource(key, value string) types.Resource {
	return types.Resource{Name: key, Value: value, Target: cfg.Target, Apply: apply}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
