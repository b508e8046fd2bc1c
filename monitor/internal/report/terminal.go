package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	maxWidth     = 120
)

// Terminal renders report Markdown for a terminal.
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal builds a Terminal that wraps at width columns. Style is a
// glamour standard style name; "notty" yields uncoloured output.
func NewTerminal(width int, style string) (*Terminal, error) {
	if width <= 0 {
		width = defaultWidth
	}
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("report: create terminal renderer: %w", err)
	}
	return &Terminal{renderer: r}, nil
}

// Render styles md. Empty input renders as empty output.
func (t *Terminal) Render(md string) (string, error) {
	if md == "" {
		return "", nil
	}
	out, err := t.renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("report: render markdown: %w", err)
	}
	return out, nil
}

// TerminalWidth returns a wrap width for the terminal on fd, leaving a small
// margin. It falls back to 80 when fd is not a terminal.
func TerminalWidth(fd int) int {
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	w -= 4
	if w > maxWidth {
		w = maxWidth
	}
	if w <= 0 {
		return defaultWidth
	}
	return w
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
