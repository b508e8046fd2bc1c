package alerts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vitalsight/healthmon/monitor/internal/compute"
	"github.com/vitalsight/healthmon/pkg/types"
)

// Condition is a parsed rule expression.
type Condition struct {
	Field string
	Op    string
	Value string

	threshold   float64
	categorical bool
}

var categoricalFields = map[string]bool{
	"heart_rate_category":   true,
	"environmental_quality": true,
	"temperature_impact":    true,
	"status":                true,
}

var numericFields = map[string]bool{
	"predicted_activity":               true,
	"normalized_activity":              true,
	"heart_component":                  true,
	"env_component":                    true,
	"composite_fitness_score":          true,
	types.FieldCurrentSteps:            true,
	types.FieldHeartRate:               true,
	types.FieldAmbientTemperature:      true,
	types.FieldEnvironmentalIndex:      true,
	types.FieldActivityIntensityFactor: true,
}

// ParseCondition compiles an expression such as "heart_rate > 100" or
// "status == Needs Adjustment".
func ParseCondition(expr string) (Condition, error) {
	parts := strings.Fields(expr)
	if len(parts) < 3 {
		return Condition{}, fmt.Errorf("alerts: condition %q: want \"<field> <op> <value>\"", expr)
	}
	c := Condition{
		Field: parts[0],
		Op:    parts[1],
		Value: strings.Trim(strings.Join(parts[2:], " "), `"'`),
	}

	switch {
	case categoricalFields[c.Field]:
		if c.Op != "==" && c.Op != "!=" {
			return Condition{}, fmt.Errorf("alerts: condition %q: operator %q not valid for %s", expr, c.Op, c.Field)
		}
		c.categorical = true

	case numericFields[c.Field]:
		switch c.Op {
		case ">", ">=", "<", "<=", "==", "!=":
		default:
			return Condition{}, fmt.Errorf("alerts: condition %q: unknown operator %q", expr, c.Op)
		}
		v, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return Condition{}, fmt.Errorf("alerts: condition %q: threshold: %w", expr, err)
		}
		c.threshold = v

	default:
		return Condition{}, fmt.Errorf("alerts: condition %q: unknown field %q", expr, c.Field)
	}
	return c, nil
}

// Eval reports whether the condition holds for r, and the numeric value it
// compared. Categorical conditions report a value of 0.
func (c Condition) Eval(r compute.Result) (bool, float64) {
	if c.categorical {
		got := categoricalField(c.Field, r)
		if c.Op == "==" {
			return got == c.Value, 0
		}
		return got != c.Value, 0
	}
	v := numericField(c.Field, r)
	return compareFloat(v, c.Op, c.threshold), v
}

func (c Condition) String() string {
	return c.Field + " " + c.Op + " " + c.Value
}

// numericField maps a field name to its value in the result.
func numericField(field string, r compute.Result) float64 {
	c := r.Calculations
	switch field {
	case "predicted_activity":
		return c.PredictedActivity
	case "normalized_activity":
		return c.NormalizedActivity
	case "heart_component":
		return c.HeartComponent
	case "env_component":
		return c.EnvComponent
	case "composite_fitness_score":
		return c.CompositeFitnessScore
	case types.FieldCurrentSteps:
		return float64(r.Input.CurrentSteps)
	case types.FieldHeartRate:
		return float64(r.Input.HeartRate)
	case types.FieldAmbientTemperature:
		return r.Input.AmbientTemperature
	case types.FieldEnvironmentalIndex:
		return r.Input.EnvironmentalIndex
	case types.FieldActivityIntensityFactor:
		return r.Input.ActivityIntensityFactor
	default:
		return 0
	}
}

func categoricalField(field string, r compute.Result) string {
	c := r.Calculations
	switch field {
	case "heart_rate_category":
		return c.HeartRateCategory
	case "environmental_quality":
		return c.EnvironmentalQuality
	case "temperature_impact":
		return c.TemperatureImpact
	case "status":
		return c.Status
	default:
		return ""
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	default:
		return false
	}
}
