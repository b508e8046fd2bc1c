package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vitalsight/healthmon/pkg/types"
)

// Format identifies the encoding Decode detected.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatUnknown Format = "unknown"
)

// ErrUnrecognized is returned by Decode when the payload is neither a JSON
// object nor comma-delimited text.
var ErrUnrecognized = errors.New("ingest: unrecognized payload encoding")

// Parse converts a raw payload into an ordered sequence of records.
// It returns an empty sequence on any failure.
func Parse(raw string) []types.RawRecord {
	records, _, err := Decode(raw)
	if err != nil {
		return nil
	}
	return records
}

// Decode is Parse with the detected format and the failure cause exposed.
func Decode(raw string) ([]types.RawRecord, Format, error) {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "{"):
		records, err := decodeJSON(s)
		return records, FormatJSON, err
	case strings.Contains(s, ","):
		records, err := decodeCSV(s)
		return records, FormatCSV, err
	default:
		return nil, FormatUnknown, ErrUnrecognized
	}
}

// decodeJSON handles the structured-object form.
func decodeJSON(s string) ([]types.RawRecord, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("ingest: decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("ingest: decode json: unexpected data after top-level object")
	}

	users, ok := obj["users"]
	if !ok {
		return []types.RawRecord{toRecord(obj)}, nil
	}

	list, ok := users.([]any)
	if !ok {
		return nil, fmt.Errorf("ingest: decode json: \"users\" is %T, want array", users)
	}
	out := make([]types.RawRecord, 0, len(list))
	for _, item := range list {
		// Non-object entries become empty records so validation reports
		// every field of that row as missing.
		m, _ := item.(map[string]any)
		out = append(out, toRecord(m))
	}
	return out, nil
}

func toRecord(m map[string]any) types.RawRecord {
	rec := make(types.RawRecord, len(m))
	for k, v := range m {
		rec[k] = normalize(v)
	}
	return rec
}

// normalize replaces json.Number with int64 for integer literals and
// float64 for everything else, recursing into nested values.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	default:
		return v
	}
}

// decodeCSV handles the delimited-text form.
func decodeCSV(s string) ([]types.RawRecord, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: decode csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var out []types.RawRecord
	for _, row := range rows[1:] {
		if len(row) != len(headers) {
			continue
		}
		rec := make(types.RawRecord, len(headers))
		for i, h := range headers {
			rec[h] = row[i]
		}
		coerceNumeric(rec)
		out = append(out, rec)
	}
	return out, nil
}

// coerceNumeric converts numeric schema fields in place where possible.
// Values that do not parse stay as strings for the validator to reject.
func coerceNumeric(rec types.RawRecord) {
	for _, f := range types.IntFields {
		if s, ok := rec[f].(string); ok {
			if n, ok := types.AsInt(s); ok {
				rec[f] = n
			}
		}
	}
	for _, f := range types.FloatFields {
		if s, ok := rec[f].(string); ok {
			if v, ok := types.AsFloat(s); ok {
				rec[f] = v
			}
		}
	}
}
