package alerts

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vitalsight/healthmon/monitor/internal/compute"
	"github.com/vitalsight/healthmon/monitor/internal/config"
	"github.com/vitalsight/healthmon/pkg/types"
)

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func result(id string, steps, hr int64, temp, env, factor float64) compute.Result {
	return compute.Compute(types.UserRecord{
		UserID:                  id,
		CurrentSteps:            steps,
		HeartRate:               hr,
		AmbientTemperature:      temp,
		EnvironmentalIndex:      env,
		ActivityIntensityFactor: factor,
	})
}

// newEngine builds an Engine with a fixed clock, failing on config errors.
func newEngine(t *testing.T, rules ...config.AlertRule) *Engine {
	t.Helper()
	e, err := New(rules)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	e.now = func() time.Time { return fixedNow }
	return e
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
		value   string
	}{
		{"composite_fitness_score < 0.75", false, "0.75"},
		{"heart_rate >= 100", false, "100"},
		{"status == Needs Adjustment", false, "Needs Adjustment"},
		{`heart_rate_category != "Above Optimal"`, false, "Above Optimal"},
		{"heart_rate", true, ""},
		{"heart_rate ~ 100", true, ""},
		{"heart_rate > fast", true, ""},
		{"status > Optimal", true, ""},
		{"blood_pressure > 120", true, ""},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			c, err := ParseCondition(tc.expr)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseCondition(%q) expected error", tc.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCondition(%q) = %v", tc.expr, err)
			}
			if c.Value != tc.value {
				t.Errorf("Value = %q, want %q", c.Value, tc.value)
			}
		})
	}
}

func TestCondition_Eval(t *testing.T) {
	// U1 scores 1.0 and is Optimal; U2 scores 0.48 and runs hot.
	u1 := result("U1", 10000, 70, 20, 80, 1.0)
	u2 := result("U2", 4000, 105, 30.5, 49.5, 0.75)

	tests := []struct {
		expr      string
		r         compute.Result
		wantFire  bool
		wantValue float64
	}{
		{"composite_fitness_score < 0.75", u1, false, 1.0},
		{"composite_fitness_score < 0.75", u2, true, 0.48},
		{"heart_rate > 100", u2, true, 105},
		{"ambient_temperature >= 30.5", u2, true, 30.5},
		{"predicted_activity == 3000", u2, true, 3000},
		{"heart_component != 0.3", u1, false, 0.3},
		{"heart_rate_category == Above Optimal", u2, true, 0},
		{"temperature_impact == Ideal Temperature", u1, true, 0},
		{"status != Optimal", u1, false, 0},
		{"environmental_quality == Poor", u2, true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.expr+"/"+tc.r.Input.UserID, func(t *testing.T) {
			c, err := ParseCondition(tc.expr)
			if err != nil {
				t.Fatalf("ParseCondition: %v", err)
			}
			fires, v := c.Eval(tc.r)
			if fires != tc.wantFire || v != tc.wantValue {
				t.Errorf("Eval() = (%v, %v), want (%v, %v)", fires, v, tc.wantFire, tc.wantValue)
			}
		})
	}
}

func TestNew_BadRule(t *testing.T) {
	_, err := New([]config.AlertRule{{Name: "broken", Condition: "pulse > 1"}})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("New() error = %v, want one naming the rule", err)
	}
}

func TestEngine_NoRules(t *testing.T) {
	e := newEngine(t)
	if got := e.Evaluate([]compute.Result{result("U1", 1, 1, 1, 1, 1)}); got != nil {
		t.Errorf("Evaluate() with no rules = %v, want nil", got)
	}
}

func TestEngine_Evaluate(t *testing.T) {
	e := newEngine(t,
		config.AlertRule{Name: "low-score", Condition: "composite_fitness_score < 0.6", Severity: "critical"},
		config.AlertRule{Name: "hot", Condition: "temperature_impact == Too Hot"},
	)
	results := []compute.Result{
		result("U1", 10000, 70, 20, 80, 1.0),
		result("U2", 4000, 105, 30.5, 49.5, 0.75),
	}

	got := e.Evaluate(results)
	want := []Alert{
		{
			RuleName: "low-score",
			UserID:   "U2",
			Severity: "critical",
			Value:    0.48,
			Message:  "[critical] low-score fired on U2: composite_fitness_score < 0.6, composite_fitness_score = 0.48",
			FiredAt:  fixedNow,
		},
		{
			RuleName: "hot",
			UserID:   "U2",
			Severity: config.DefaultSeverity,
			Message:  "[warning] hot fired on U2: temperature_impact == Too Hot",
			FiredAt:  fixedNow,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_ResolvesAndKeepsFiredAt(t *testing.T) {
	e := newEngine(t, config.AlertRule{Name: "fast-heart", Condition: "heart_rate > 100"})

	e.Evaluate([]compute.Result{result("U2", 4000, 105, 20, 80, 1.0)})
	if n := len(e.Active()); n != 1 {
		t.Fatalf("Active() after fire = %d, want 1", n)
	}

	later := fixedNow.Add(time.Minute)
	e.now = func() time.Time { return later }
	got := e.Evaluate([]compute.Result{result("U2", 4000, 110, 20, 80, 1.0)})
	if len(got) != 1 || !got[0].FiredAt.Equal(fixedNow) || got[0].Value != 110 {
		t.Errorf("still-firing alert = %+v, want original FiredAt and updated value", got)
	}

	e.Evaluate([]compute.Result{result("U2", 4000, 80, 20, 80, 1.0)})
	if n := len(e.Active()); n != 0 {
		t.Errorf("Active() after recovery = %d, want 0", n)
	}
}

func TestEngine_ActiveOrdering(t *testing.T) {
	e := newEngine(t,
		config.AlertRule{Name: "b-rule", Condition: "heart_rate > 0"},
		config.AlertRule{Name: "a-rule", Condition: "heart_rate > 0"},
	)
	e.Evaluate([]compute.Result{
		result("U9", 1, 70, 20, 80, 1),
		result("U1", 1, 70, 20, 80, 1),
	})
	var keys []string
	for _, a := range e.Active() {
		keys = append(keys, a.RuleName+":"+a.UserID)
	}
	want := []string{"a-rule:U1", "a-rule:U9", "b-rule:U1", "b-rule:U9"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Active() order mismatch (-want +got):\n%s", diff)
	}
}
