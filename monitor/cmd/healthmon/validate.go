package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vitalsight/healthmon/monitor/internal/config"
	"github.com/vitalsight/healthmon/monitor/internal/ingest"
	"github.com/vitalsight/healthmon/monitor/internal/pipeline"
	"github.com/vitalsight/healthmon/monitor/internal/validate"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Print the validation report without computing metrics",
		Long: `validate parses and checks the input batch and prints the data validation
report, including on success. The pretty format renders it for the terminal;
every other format prints the Markdown text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := a.snapshot()
			src := ingest.NewSource(cfg.Monitor.Input, a.stdin)
			raw, err := src.Read(cmd.Context())
			if err != nil {
				return err
			}

			out := pipeline.Output{Text: pipeline.MsgInvalidFormat, Status: pipeline.StatusFormatError}
			records, format, err := ingest.Decode(raw)
			out.Format = format
			if err == nil && len(records) > 0 {
				v := validate.Validate(records)
				out.Text = v.Report
				out.Validation = &v
				out.Status = pipeline.StatusOK
				if !v.Passed {
					out.Status = pipeline.StatusValidationError
				}
			}

			slog.Info("healthmon: validation complete",
				"source", src.Name(),
				"format", out.Format,
				"status", out.Status,
			)

			render := config.FormatMarkdown
			if cfg.Monitor.Format == config.FormatPretty {
				render = config.FormatPretty
			}
			if err := a.emit(render, out, nil, nil, false); err != nil {
				return err
			}
			return exitStatus(cfg, out.Status)
		},
	}
}
