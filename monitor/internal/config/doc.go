// Package config loads and watches the monitor configuration file.
//
// Top-level types:
//   - Config{Monitor, Export, Alerts} — full config tree parsed from YAML
//   - MonitorConfig — input (path, "-" for stdin, "" for the built-in
//     sample), format (markdown|pretty|json|prometheus), strict_exit,
//     watch_debounce, log.level (debug|info|warn|error)
//   - ExportConfig — textfile, an optional Prometheus textfile path
//   - AlertsConfig — rules [] of {name, condition, severity}
//
// The file is optional. Default() returns the configuration used when no
// file is given: sample input, markdown output, 250ms debounce, info logs.
//
// Load(path) reads the YAML file, applies defaults, then validates enums
// and alert rules. Rule conditions are only checked for shape here; the
// alerts package compiles them.
//
// Watch(ctx, path, debounce, onChange) uses fsnotify to detect file changes
// and calls onChange with the newly parsed Config once the file has been
// quiet for debounce. A reload that finds the file empty or fails to parse
// or validate is logged and the previous config stays in effect.
package config
