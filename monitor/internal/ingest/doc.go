// Package ingest turns raw telemetry payloads into RawRecords.
//
// Parse accepts the two supported encodings:
//   - a JSON object, either carrying a "users" array of per-user objects or
//     being a single bare user object
//   - comma-delimited text whose first line is the header
//
// Delimited rows whose field count differs from the header are dropped
// silently. Any other failure yields an empty sequence; callers cannot
// tell "unparseable" from "no rows" and are not meant to. Decode exposes
// the detected format and the underlying error for logging.
//
// Source abstracts where a payload comes from (file, stdin or the built-in
// sample dataset). Watch re-invokes a callback whenever an input file is
// rewritten, using fsnotify.
package ingest
