package types

// Field names of the fixed telemetry schema.
const (
	FieldUserID                  = "user_id"
	FieldCurrentSteps            = "current_steps"
	FieldHeartRate               = "heart_rate"
	FieldAmbientTemperature      = "ambient_temperature"
	FieldEnvironmentalIndex      = "environmental_index"
	FieldActivityIntensityFactor = "activity_intensity_factor"
)

// RequiredFields is the ordered schema every record must satisfy.
// The order is used by validation reports and by the input echo of user reports.
var RequiredFields = []string{
	FieldUserID,
	FieldCurrentSteps,
	FieldHeartRate,
	FieldAmbientTemperature,
	FieldEnvironmentalIndex,
	FieldActivityIntensityFactor,
}

// IntFields and FloatFields list the schema fields coerced to integers and
// reals respectively.
var (
	IntFields   = []string{FieldCurrentSteps, FieldHeartRate}
	FloatFields = []string{FieldAmbientTemperature, FieldEnvironmentalIndex, FieldActivityIntensityFactor}
)

// RawRecord is one parsed but unvalidated input record.
type RawRecord map[string]any

// Has reports whether the record carries the given key, regardless of value.
func (r RawRecord) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy of r.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// UserRecord is a validated telemetry record for one user.
type UserRecord struct {
	UserID                  string  `json:"user_id"`
	CurrentSteps            int64   `json:"current_steps"`
	HeartRate               int64   `json:"heart_rate"`
	AmbientTemperature      float64 `json:"ambient_temperature"`
	EnvironmentalIndex      float64 `json:"environmental_index"`
	ActivityIntensityFactor float64 `json:"activity_intensity_factor"`

	// Original holds the raw values the record was built from. Reports echo
	// these so the input section shows exactly what was submitted.
	Original RawRecord `json:"-"`
}

// Display returns the report rendering of the named field: the original
// submitted value when one is known, otherwise the typed value.
func (u UserRecord) Display(field string) string {
	if v, ok := u.Original[field]; ok {
		return FormatValue(v)
	}
	switch field {
	case FieldUserID:
		return u.UserID
	case FieldCurrentSteps:
		return FormatValue(u.CurrentSteps)
	case FieldHeartRate:
		return FormatValue(u.HeartRate)
	case FieldAmbientTemperature:
		return FormatValue(u.AmbientTemperature)
	case FieldEnvironmentalIndex:
		return FormatValue(u.EnvironmentalIndex)
	case FieldActivityIntensityFactor:
		return FormatValue(u.ActivityIntensityFactor)
	default:
		return ""
	}
}
