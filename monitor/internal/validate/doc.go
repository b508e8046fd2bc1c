// Package validate checks a parsed batch against the fixed telemetry schema.
//
// Validation is all-or-nothing across the batch: a single incomplete or
// ill-typed record fails the whole submission and no typed records are
// produced. Each offending record contributes exactly one error line,
// either naming its missing fields (further checks skipped) or listing
// every field that failed its type/range rule.
//
// The per-field presence table in the report is a batch-wide key audit:
// a field is "valid" only if every record carries the key. It is
// informational and does not decide pass/fail.
package validate
