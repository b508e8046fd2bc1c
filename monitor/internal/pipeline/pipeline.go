package pipeline

import (
	"log/slog"

	"github.com/vitalsight/healthmon/monitor/internal/compute"
	"github.com/vitalsight/healthmon/monitor/internal/ingest"
	"github.com/vitalsight/healthmon/monitor/internal/report"
	"github.com/vitalsight/healthmon/monitor/internal/validate"
)

// MsgInvalidFormat is returned when the payload yields no records.
const MsgInvalidFormat = "ERROR: Invalid data format. Please provide data in CSV or JSON format."

// Status classifies the outcome of a run.
type Status string

const (
	StatusOK              Status = "ok"
	StatusFormatError     Status = "format_error"
	StatusValidationError Status = "validation_error"
)

// Output is the result of one Process call.
type Output struct {
	// Text is the report, the validation report, or MsgInvalidFormat.
	Text   string
	Status Status
	Format ingest.Format

	// Results holds one entry per record, in input order, when Status is
	// StatusOK.
	Results []compute.Result

	// Validation is nil only for StatusFormatError.
	Validation *validate.Result
}

// Process runs the whole pipeline over raw.
func Process(raw string) Output {
	records, format, err := ingest.Decode(raw)
	if err != nil || len(records) == 0 {
		slog.Debug("pipeline: no records parsed", "format", format, "err", err)
		return Output{Text: MsgInvalidFormat, Status: StatusFormatError, Format: format}
	}
	slog.Debug("pipeline: parsed", "format", format, "records", len(records))

	v := validate.Validate(records)
	if !v.Passed {
		slog.Debug("pipeline: validation failed", "errors", len(v.Details.Errors))
		return Output{Text: v.Report, Status: StatusValidationError, Format: format, Validation: &v}
	}

	results := make([]compute.Result, 0, len(v.Records))
	for _, u := range v.Records {
		results = append(results, compute.Compute(u))
	}
	slog.Debug("pipeline: computed", "users", len(results))

	return Output{
		Text:       report.RenderAll(results),
		Status:     StatusOK,
		Format:     format,
		Results:    results,
		Validation: &v,
	}
}
