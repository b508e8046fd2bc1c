package alerts

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vitalsight/healthmon/monitor/internal/compute"
	"github.com/vitalsight/healthmon/monitor/internal/config"
)

// Alert is one rule firing for one user.
type Alert struct {
	RuleName string    `json:"rule_name"`
	UserID   string    `json:"user_id"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Value    float64   `json:"value"`
	FiredAt  time.Time `json:"fired_at"`
}

type rule struct {
	name     string
	severity string
	cond     Condition
}

// Engine evaluates alert rules against computed results.
//
// Engine is safe for concurrent use.
type Engine struct {
	rules []rule
	now   func() time.Time

	mu     sync.Mutex
	active map[string]*Alert // key: "ruleName:userID"
}

// New compiles the configured rules. An Engine with no rules is valid and
// Evaluate becomes a no-op.
func New(rules []config.AlertRule) (*Engine, error) {
	e := &Engine{
		now:    time.Now,
		active: make(map[string]*Alert),
	}
	for _, r := range rules {
		cond, err := ParseCondition(r.Condition)
		if err != nil {
			return nil, fmt.Errorf("alerts: rule %q: %w", r.Name, err)
		}
		sev := r.Severity
		if sev == "" {
			sev = config.DefaultSeverity
		}
		e.rules = append(e.rules, rule{name: r.Name, severity: sev, cond: cond})
	}
	return e, nil
}

// Evaluate tests every rule against every result and returns the alerts
// firing for this batch, in result order then rule order. Pairs that fired
// on an earlier call but no longer hold are resolved.
func (e *Engine) Evaluate(results []compute.Result) []Alert {
	if len(e.rules) == 0 {
		return nil
	}

	now := e.now()
	var firing []Alert
	seen := make(map[string]bool)

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, res := range results {
		user := res.Input.UserID
		for _, r := range e.rules {
			fires, value := r.cond.Eval(res)
			if !fires {
				continue
			}
			key := r.name + ":" + user
			seen[key] = true

			a, ok := e.active[key]
			if !ok {
				a = &Alert{
					RuleName: r.name,
					UserID:   user,
					Severity: r.severity,
					Value:    value,
					Message:  message(r, user, value),
					FiredAt:  now,
				}
				e.active[key] = a
				slog.Warn("alerts: fired",
					"rule", r.name,
					"user_id", user,
					"value", value,
					"severity", r.severity,
				)
			} else {
				a.Value = value
				a.Message = message(r, user, value)
			}
			firing = append(firing, *a)
		}
	}

	for key, a := range e.active {
		if seen[key] {
			continue
		}
		delete(e.active, key)
		slog.Info("alerts: resolved", "rule", a.RuleName, "user_id", a.UserID)
	}

	return firing
}

// Active returns copies of all currently firing alerts, ordered by rule
// name then user.
func (e *Engine) Active() []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alert, 0, len(e.active))
	for _, a := range e.active {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RuleName != out[j].RuleName {
			return out[i].RuleName < out[j].RuleName
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func message(r rule, user string, value float64) string {
	if r.cond.categorical {
		return fmt.Sprintf("[%s] %s fired on %s: %s", r.severity, r.name, user, r.cond)
	}
	return fmt.Sprintf("[%s] %s fired on %s: %s, %s = %.2f",
		r.severity, r.name, user, r.cond, r.cond.Field, value)
}
