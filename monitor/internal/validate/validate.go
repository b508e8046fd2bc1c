package validate

import (
	"fmt"
	"strings"

	"github.com/vitalsight/healthmon/pkg/types"
)

// Presence states in Details.FieldsCheck.
const (
	StatusPresent = "present"
	StatusMissing = "missing"
)

// MsgNoData is the report returned for an empty batch.
const MsgNoData = "ERROR: No data provided."

// FieldCheck is one row of the batch-wide presence table.
type FieldCheck struct {
	Field  string `json:"field"`
	Status string `json:"status"`
}

// Details is the structured outcome of a validation call.
type Details struct {
	NumUsers    int          `json:"num_users"`
	FieldsCheck []FieldCheck `json:"fields_check"`
	Errors      []string     `json:"errors"`
}

// Result is the immutable snapshot returned by Validate.
type Result struct {
	Passed  bool
	Report  string
	Details Details

	// Records holds the typed form of every input record, in input order.
	// It is populated only when Passed is true.
	Records []types.UserRecord
}

// Validate checks every record of the batch and renders the report.
func Validate(records []types.RawRecord) Result {
	details := Details{NumUsers: len(records), Errors: []string{}}

	if len(records) == 0 {
		return Result{Passed: false, Report: MsgNoData, Details: details}
	}

	typed := make([]types.UserRecord, 0, len(records))
	for i, rec := range records {
		row := i + 1

		if missing := missingFields(rec); len(missing) > 0 {
			details.Errors = append(details.Errors, fmt.Sprintf(
				"ERROR: Missing required field(s): %s in row %d.",
				strings.Join(missing, ", "), row))
			continue
		}

		u, invalid := typeRecord(rec)
		if len(invalid) > 0 {
			details.Errors = append(details.Errors, fmt.Sprintf(
				"ERROR: Invalid value for the field(s): %s in row %d. Please correct and resubmit.",
				strings.Join(invalid, ", "), row))
			continue
		}
		typed = append(typed, u)
	}

	details.FieldsCheck = presence(records)

	res := Result{
		Passed:  len(details.Errors) == 0,
		Details: details,
	}
	res.Report = renderReport(details)
	if res.Passed {
		res.Records = typed
	}
	return res
}

func missingFields(rec types.RawRecord) []string {
	var missing []string
	for _, f := range types.RequiredFields {
		if !rec.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// typeRecord applies the per-field type and range rules, returning the
// typed record and the names of failing fields in schema order.
func typeRecord(rec types.RawRecord) (types.UserRecord, []string) {
	var invalid []string
	u := types.UserRecord{Original: rec.Clone()}

	if id, ok := rec[types.FieldUserID].(string); ok && id != "" {
		u.UserID = id
	} else {
		invalid = append(invalid, types.FieldUserID)
	}

	if n, ok := types.AsInt(rec[types.FieldCurrentSteps]); ok && n > 0 {
		u.CurrentSteps = n
	} else {
		invalid = append(invalid, types.FieldCurrentSteps)
	}

	if n, ok := types.AsInt(rec[types.FieldHeartRate]); ok && n > 0 {
		u.HeartRate = n
	} else {
		invalid = append(invalid, types.FieldHeartRate)
	}

	if f, ok := types.AsFloat(rec[types.FieldAmbientTemperature]); ok {
		u.AmbientTemperature = f
	} else {
		invalid = append(invalid, types.FieldAmbientTemperature)
	}

	// NaN compares false against both bounds and is let through, matching
	// the comparison-only range rule.
	if f, ok := types.AsFloat(rec[types.FieldEnvironmentalIndex]); ok && !(f < 0 || f > 100) {
		u.EnvironmentalIndex = f
	} else {
		invalid = append(invalid, types.FieldEnvironmentalIndex)
	}

	if f, ok := types.AsFloat(rec[types.FieldActivityIntensityFactor]); ok && !(f <= 0) {
		u.ActivityIntensityFactor = f
	} else {
		invalid = append(invalid, types.FieldActivityIntensityFactor)
	}

	return u, invalid
}

// presence builds the batch-wide key audit in schema order.
func presence(records []types.RawRecord) []FieldCheck {
	out := make([]FieldCheck, 0, len(types.RequiredFields))
	for _, f := range types.RequiredFields {
		status := StatusPresent
		for _, rec := range records {
			if !rec.Has(f) {
				status = StatusMissing
				break
			}
		}
		out = append(out, FieldCheck{Field: f, Status: status})
	}
	return out
}
