package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/vitalsight/healthmon/monitor/internal/pipeline"
)

const namespace = "healthmon"

// Metrics is the Prometheus view of the latest pipeline run.
//
// Metrics is safe for concurrent use.
type Metrics struct {
	reg *prometheus.Registry

	predicted  *prometheus.GaugeVec
	normalized *prometheus.GaugeVec
	heart      *prometheus.GaugeVec
	env        *prometheus.GaugeVec
	composite  *prometheus.GaugeVec
	status     *prometheus.GaugeVec

	batchUsers  prometheus.Gauge
	batchErrors prometheus.Gauge
	batchOK     prometheus.Gauge
}

func userGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, []string{"user_id"})
}

// NewMetrics returns Metrics registered on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg:        prometheus.NewRegistry(),
		predicted:  userGauge("predicted_activity", "Predicted activity in steps (current_steps x intensity factor)."),
		normalized: userGauge("normalized_activity", "Activity contribution to the composite fitness score."),
		heart:      userGauge("heart_component", "Heart rate contribution to the composite fitness score."),
		env:        userGauge("env_component", "Environmental contribution to the composite fitness score."),
		composite:  userGauge("composite_fitness_score", "Composite fitness score, rounded to two decimals."),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "user_status",
			Help:      "Final status per user; the series value is always 1.",
		}, []string{"user_id", "status"}),
		batchUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_users",
			Help:      "Number of records in the last batch.",
		}),
		batchErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_validation_errors",
			Help:      "Number of validation errors in the last batch.",
		}),
		batchOK: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_ok",
			Help:      "1 when the last batch produced user reports, else 0.",
		}),
	}
	m.reg.MustRegister(
		m.predicted, m.normalized, m.heart, m.env, m.composite, m.status,
		m.batchUsers, m.batchErrors, m.batchOK,
	)
	return m
}

// Observe replaces the exposed series with those of out.
func (m *Metrics) Observe(out pipeline.Output) {
	for _, v := range []*prometheus.GaugeVec{m.predicted, m.normalized, m.heart, m.env, m.composite, m.status} {
		v.Reset()
	}

	var users, errs int
	if out.Validation != nil {
		users = out.Validation.Details.NumUsers
		errs = len(out.Validation.Details.Errors)
	}
	m.batchUsers.Set(float64(users))
	m.batchErrors.Set(float64(errs))
	if out.Status == pipeline.StatusOK {
		m.batchOK.Set(1)
	} else {
		m.batchOK.Set(0)
	}

	for _, r := range out.Results {
		id := r.Input.UserID
		c := r.Calculations
		m.predicted.WithLabelValues(id).Set(c.PredictedActivity)
		m.normalized.WithLabelValues(id).Set(c.NormalizedActivity)
		m.heart.WithLabelValues(id).Set(c.HeartComponent)
		m.env.WithLabelValues(id).Set(c.EnvComponent)
		m.composite.WithLabelValues(id).Set(c.CompositeFitnessScore)
		m.status.DeletePartialMatch(prometheus.Labels{"user_id": id})
		m.status.WithLabelValues(id, c.Status).Set(1)
	}
}

// Gather returns the current metric families, sorted by name.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	mfs, err := m.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("export: gather: %w", err)
	}
	return mfs, nil
}

// WriteText writes the text exposition format to w.
func (m *Metrics) WriteText(w io.Writer) error {
	mfs, err := m.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("export: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile writes the exposition to path via a temporary file in the
// same directory and a rename, so readers never see a partial file.
func WriteTextfile(path string, m *Metrics) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := m.WriteText(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("export: chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: rename textfile: %w", err)
	}

	slog.Debug("export: wrote textfile", "path", path)
	return nil
}
