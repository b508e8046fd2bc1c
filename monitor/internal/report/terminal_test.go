package report

import (
	"strings"
	"testing"
)

func TestTerminal_RenderPlain(t *testing.T) {
	term, err := NewTerminal(100, "notty")
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	out, err := term.Render(Render(referenceUser()))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Health Monitoring Summary", "U1", "Continue current fitness plan"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}

func TestTerminal_RenderEmpty(t *testing.T) {
	term, err := NewTerminal(0, "notty")
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	out, err := term.Render("")
	if err != nil || out != "" {
		t.Errorf("Render(\"\") = %q, %v; want empty", out, err)
	}
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	if got := TerminalWidth(-1); got != defaultWidth {
		t.Errorf("TerminalWidth(-1) = %d, want %d", got, defaultWidth)
	}
}
