package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFormat        = FormatMarkdown
	DefaultWatchDebounce = 250 * time.Millisecond
	DefaultLogLevel      = "info"
	DefaultSeverity      = SeverityWarning
)

// Output formats.
const (
	FormatMarkdown   = "markdown"
	FormatPretty     = "pretty"
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
)

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Formats lists the accepted values of monitor.format.
var Formats = []string{FormatMarkdown, FormatPretty, FormatJSON, FormatPrometheus}

// Config is the top-level monitor configuration.
type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
	Export  ExportConfig  `yaml:"export"`
	Alerts  AlertsConfig  `yaml:"alerts"`
}

// MonitorConfig holds the run settings.
type MonitorConfig struct {
	// Input is a file path, "-" for stdin, or empty for the built-in sample.
	Input string `yaml:"input"`

	// Format selects the stdout rendering.
	Format string `yaml:"format"`

	// StrictExit makes format and validation errors exit non-zero.
	StrictExit bool `yaml:"strict_exit"`

	// WatchDebounce collapses bursts of file events in watch mode.
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
}

// SlogLevel maps Level onto a slog.Level. Unknown values map to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ExportConfig configures side outputs written after every run.
type ExportConfig struct {
	// Textfile, when set, receives the Prometheus exposition of each run.
	Textfile string `yaml:"textfile"`
}

// AlertsConfig holds the alert rules evaluated against every user.
type AlertsConfig struct {
	Rules []AlertRule `yaml:"rules"`
}

// AlertRule defines a threshold or category alert condition.
type AlertRule struct {
	// Name is the human-readable alert identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "composite_fitness_score < 0.6" or
	// "heart_rate_category == Above Optimal".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	for i := range cfg.Alerts.Rules {
		if cfg.Alerts.Rules[i].Severity == "" {
			cfg.Alerts.Rules[i].Severity = DefaultSeverity
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Format:        DefaultFormat,
			WatchDebounce: DefaultWatchDebounce,
			Log:           LogConfig{Level: DefaultLogLevel},
		},
	}
}

// Validate checks cfg after it has been changed outside Load, for example
// by command-line flags.
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// validate checks enums and structural constraints.
func validate(cfg *Config) error {
	if !validFormat(cfg.Monitor.Format) {
		return fmt.Errorf("monitor.format: unknown format %q (want one of %s)",
			cfg.Monitor.Format, strings.Join(Formats, ", "))
	}
	if cfg.Monitor.WatchDebounce < 0 {
		return fmt.Errorf("monitor.watch_debounce must not be negative")
	}
	switch strings.ToLower(cfg.Monitor.Log.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("monitor.log.level: unknown level %q", cfg.Monitor.Log.Level)
	}

	seen := make(map[string]bool, len(cfg.Alerts.Rules))
	for i, r := range cfg.Alerts.Rules {
		if r.Name == "" {
			return fmt.Errorf("alerts.rules[%d]: name is required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("alerts.rules[%d] %q: duplicate name", i, r.Name)
		}
		seen[r.Name] = true
		if len(strings.Fields(r.Condition)) < 3 {
			return fmt.Errorf("alerts.rules[%d] %q: condition must be \"<field> <op> <value>\"", i, r.Name)
		}
		switch r.Severity {
		case SeverityCritical, SeverityWarning, SeverityInfo, "":
		default:
			return fmt.Errorf("alerts.rules[%d] %q: unknown severity %q", i, r.Name, r.Severity)
		}
	}
	return nil
}

func validFormat(f string) bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}
