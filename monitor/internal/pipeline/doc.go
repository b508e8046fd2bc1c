// Package pipeline wires the monitor's stages into a single synchronous call.
//
// Process takes the raw payload text and runs it through:
//
//	ingest.Decode → validate.Validate ─(fail)→ validation report
//	                                  └(pass)→ compute.Compute → report.Render (per record) → report.Join
//
// The returned Output.Text is the complete caller-visible result. A payload
// that yields no records produces MsgInvalidFormat; a batch with any invalid
// record produces the validation report and no user reports. Process holds
// no state between calls and is safe to call from multiple goroutines.
package pipeline
