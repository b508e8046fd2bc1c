package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vitalsight/healthmon/monitor/internal/alerts"
	"github.com/vitalsight/healthmon/monitor/internal/config"
	"github.com/vitalsight/healthmon/monitor/internal/export"
)

// Process exit codes.
const (
	exitOK              = 0
	exitRuntime         = 1
	exitFormatError     = 2
	exitValidationError = 3
)

// exitError carries a non-zero exit code for a run that completed but
// reported a data error under --strict-exit.
type exitError struct {
	code   int
	reason string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("%s (exit %d)", e.reason, e.code)
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	input      string
	format     string
	logLevel   string
	strictExit bool

	// changed records which flags were set on the command line so they can
	// be re-applied over a hot-reloaded config file.
	changed map[string]bool
	runID   string

	mu      sync.Mutex
	cfg     *config.Config
	alerts  *alerts.Engine
	metrics *export.Metrics
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "healthmon",
		Short: "Health telemetry validation and fitness reporting",
		Long: `healthmon reads per-user health telemetry as CSV or JSON, validates the
whole batch, and renders a Markdown report for every user with the derived
activity, heart rate, environment and composite fitness metrics.

Run without a subcommand to report on the built-in sample dataset.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd, true)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to YAML config file")
	pf.StringVarP(&a.input, "input", "i", "", `input file, "-" for stdin (default: built-in sample)`)
	pf.StringVarP(&a.format, "format", "f", config.DefaultFormat, "output format: markdown|pretty|json|prometheus")
	pf.StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "log level: debug|info|warn|error")
	pf.BoolVar(&a.strictExit, "strict-exit", false, "exit 2 on format errors and 3 on validation errors")

	root.AddCommand(
		newReportCmd(a),
		newValidateCmd(a),
		newWatchCmd(a),
		newSampleCmd(a),
	)
	return root
}

// setup loads the config, applies flag overrides, and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.changed = make(map[string]bool)
	for _, name := range []string{"input", "format", "log-level", "strict-exit"} {
		if cmd.Flags().Changed(name) {
			a.changed[name] = true
		}
	}

	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := a.apply(cfg); err != nil {
		return err
	}

	a.runID = uuid.NewString()
	logger := slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{
		Level: cfg.Monitor.Log.SlogLevel(),
	})).With("run_id", a.runID)
	slog.SetDefault(logger)

	slog.Debug("healthmon: config loaded",
		"config", a.configPath,
		"input", cfg.Monitor.Input,
		"format", cfg.Monitor.Format,
		"alert_rules", len(cfg.Alerts.Rules),
	)
	return nil
}

// apply overlays command-line flags on cfg, validates it, and installs it
// together with a fresh alert engine.
func (a *app) apply(cfg *config.Config) error {
	if a.changed["input"] {
		cfg.Monitor.Input = a.input
	}
	if a.changed["format"] {
		cfg.Monitor.Format = a.format
	}
	if a.changed["log-level"] {
		cfg.Monitor.Log.Level = a.logLevel
	}
	if a.changed["strict-exit"] {
		cfg.Monitor.StrictExit = a.strictExit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine, err := alerts.New(cfg.Alerts.Rules)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.alerts = engine
	if a.metrics == nil {
		a.metrics = export.NewMetrics()
	}
	return nil
}

// snapshot returns the current config and alert engine.
func (a *app) snapshot() (*config.Config, *alerts.Engine) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg, a.alerts
}
