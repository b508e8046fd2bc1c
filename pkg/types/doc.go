// Package types defines the record types shared by every stage of the
// health monitor pipeline.
//
// Records move through two phases:
//   - RawRecord — an open field-name → value map produced by the parser.
//     Values are untrusted: string, int64, float64, bool, nil or a nested
//     JSON value.
//   - UserRecord — the strictly typed form, built only after the whole
//     batch passed validation.
//
// AsInt and AsFloat are the single place where raw values are coerced to
// numbers, so the parser and the validator agree on what is numeric.
// FormatValue renders raw values the way reports display them.
package types
