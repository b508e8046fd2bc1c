// Package report renders per-user health reports as Markdown.
//
// Render is formatting only: every decision was already made by
// compute.Compute. Join concatenates several user reports with a visible
// horizontal rule between them. Terminal renders any report for display
// on a TTY through glamour.
package report
