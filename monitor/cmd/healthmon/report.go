package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalsight/healthmon/monitor/internal/alerts"
	"github.com/vitalsight/healthmon/monitor/internal/config"
	"github.com/vitalsight/healthmon/monitor/internal/export"
	"github.com/vitalsight/healthmon/monitor/internal/ingest"
	"github.com/vitalsight/healthmon/monitor/internal/pipeline"
	"github.com/vitalsight/healthmon/monitor/internal/report"
)

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Validate the input and print a report for every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd, false)
		},
	}
}

// report runs the pipeline once. banner prefixes Markdown output with the
// "Result:" heading printed by the bare command.
func (a *app) report(cmd *cobra.Command, banner bool) error {
	cfg, engine := a.snapshot()
	out, err := a.runOnce(cmd.Context(), cfg, engine, banner)
	if err != nil {
		return err
	}
	return exitStatus(cfg, out.Status)
}

// runOnce reads the configured source, runs the pipeline, evaluates alerts,
// writes the textfile export, and prints the result in the configured format.
func (a *app) runOnce(ctx context.Context, cfg *config.Config, engine *alerts.Engine, banner bool) (pipeline.Output, error) {
	src := ingest.NewSource(cfg.Monitor.Input, a.stdin)
	raw, err := src.Read(ctx)
	if err != nil {
		return pipeline.Output{}, err
	}

	out := pipeline.Process(raw)
	// Rejected input says nothing about the users, so alert state carries
	// over unchanged.
	var fired []alerts.Alert
	if out.Status == pipeline.StatusOK {
		fired = engine.Evaluate(out.Results)
	}

	a.metrics.Observe(out)
	if path := cfg.Export.Textfile; path != "" {
		if err := export.WriteTextfile(path, a.metrics); err != nil {
			return out, err
		}
	}

	slog.Info("healthmon: run complete",
		"source", src.Name(),
		"format", out.Format,
		"status", out.Status,
		"users", len(out.Results),
		"alerts", len(fired),
	)

	if err := a.emit(cfg.Monitor.Format, out, fired, engine.Active(), banner); err != nil {
		return out, err
	}
	return out, nil
}

// emit prints out to stdout in the requested format.
func (a *app) emit(format string, out pipeline.Output, fired, active []alerts.Alert, banner bool) error {
	w := a.stdout
	switch format {
	case config.FormatPretty:
		term, err := a.terminal()
		if err != nil {
			return err
		}
		rendered, err := term.Render(out.Text)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, rendered)
		return err

	case config.FormatJSON:
		return export.WriteJSON(w, export.NewDocument(out, fired, active))

	case config.FormatPrometheus:
		return a.metrics.WriteText(w)

	default:
		if banner {
			if _, err := io.WriteString(w, "\nResult:\n"); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, out.Text)
		return err
	}
}

// terminal builds a glamour renderer sized for stdout. Output that is not a
// terminal gets the uncoloured style.
func (a *app) terminal() (*report.Terminal, error) {
	width, style := 0, "notty"
	if f, ok := a.stdout.(*os.File); ok {
		fd := int(f.Fd())
		width = report.TerminalWidth(fd)
		if report.IsTerminal(fd) {
			style = "dark"
		}
	}
	return report.NewTerminal(width, style)
}

// exitStatus converts a data error into a non-zero exit under strict mode.
func exitStatus(cfg *config.Config, status pipeline.Status) error {
	if !cfg.Monitor.StrictExit {
		return nil
	}
	switch status {
	case pipeline.StatusFormatError:
		return &exitError{code: exitFormatError, reason: "input format error"}
	case pipeline.StatusValidationError:
		return &exitError{code: exitValidationError, reason: "input validation failed"}
	default:
		return nil
	}
}
