package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a key hint for a footer bar. Descriptions are shorter than
// full help text.
type footerHint struct {
	key  string
	desc string
}

var (
	formFooterHints = []footerHint{
		{"⏎", "Save"},
		{"⇥", "Next"},
		{"esc", "Cancel"},
	}
	commentFooterHints = []footerHint{
		{"^s", "Save"},
		{"⇥", "Next"},
		{"esc", "Cancel"},
	}
	nodeFooterHints = []footerHint{
		{"↓", "Browse"},
		{"⏎", "Save"},
		{"⇥", "Next"},
		{"esc", "Cancel"},
	}
	dropdownFooterHints = []footerHint{
		{"⏎", "Select"},
		{"esc", "Close"},
	}
	stepFooterHints = []footerHint{
		{"←→", "Step"},
		{"⏎", "Save"},
		{"⇥", "Next"},
		{"esc", "Cancel"},
	}
	summaryFooterHints = []footerHint{
		{"y", "Copy JSON"},
		{"q", "Quit"},
	}
)

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

// renderHints joins hints as pills, dropping trailing hints until the line
// fits maxWidth. maxWidth <= 0 disables trimming.
func renderHints(hints []footerHint, maxWidth int) string {
	for len(hints) > 0 {
		line := joinHints(hints)
		if maxWidth <= 0 || lipgloss.Width(line) <= maxWidth {
			return line
		}
		hints = hints[:len(hints)-1]
	}
	return ""
}

func joinHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}
