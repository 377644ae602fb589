package ui

import (
	"strings"

	"moncollect/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Panel sizing
//
// lipgloss Width(n) is the width inside the border and includes padding.
// A panel with Width(64), Padding(1, 2) and a rounded border is 66 columns
// on screen with 60 columns of content. PanelBuilder does this arithmetic.
const (
	// PanelWidth is the default panel Width value.
	PanelWidth = 64

	panelHPadding = 2
	minPanelWidth = 32
)

// PanelContentWidth returns the usable width inside a panel of boxWidth.
func PanelContentWidth(boxWidth int) int {
	inner := boxWidth - (panelHPadding * 2)
	if inner < 1 {
		return 1
	}
	return inner
}

// panelWidthFor fits the default panel into a terminal of termWidth. Zero
// means the size is not known yet.
func panelWidthFor(termWidth int) int {
	if termWidth <= 0 {
		return PanelWidth
	}
	w := termWidth - 4
	if w > PanelWidth {
		w = PanelWidth
	}
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

// PanelBuilder assembles the title / body / footer layout shared by the
// form and the summary view.
type PanelBuilder struct {
	boxWidth     int
	contentWidth int
	lines        []string
}

// NewPanelBuilder creates a builder for a panel of boxWidth.
func NewPanelBuilder(boxWidth int) *PanelBuilder {
	return &PanelBuilder{
		boxWidth:     boxWidth,
		contentWidth: PanelContentWidth(boxWidth),
		lines:        make([]string, 0, 24),
	}
}

// ContentWidth returns the usable width for text content.
func (b *PanelBuilder) ContentWidth() int {
	return b.contentWidth
}

// Header adds the title, an optional muted subtitle and a divider.
func (b *PanelBuilder) Header(title, subtitle string) *PanelBuilder {
	b.lines = append(b.lines, stylePanelTitle().Render(title))
	if subtitle != "" {
		b.lines = append(b.lines, subtitle)
	}
	b.lines = append(b.lines, b.Divider(), "")
	return b
}

// Divider returns a styled horizontal divider line.
func (b *PanelBuilder) Divider() string {
	return stylePanelDivider().Render(strings.Repeat("─", b.contentWidth))
}

// Line adds a content line.
func (b *PanelBuilder) Line(content string) *PanelBuilder {
	b.lines = append(b.lines, content)
	return b
}

// BlankLine adds an empty line for spacing.
func (b *PanelBuilder) BlankLine() *PanelBuilder {
	return b.Line("")
}

// Footer adds a divider and key hints trimmed to the content width.
func (b *PanelBuilder) Footer(hints []footerHint) *PanelBuilder {
	b.lines = append(b.lines, b.Divider(), renderHints(hints, b.contentWidth))
	return b
}

// FooterText adds a divider and a centered status line.
func (b *PanelBuilder) FooterText(text string) *PanelBuilder {
	centered := lipgloss.NewStyle().
		Width(b.contentWidth).
		Align(lipgloss.Center).
		Foreground(theme.Current().TextMuted).
		Render(text)
	b.lines = append(b.lines, b.Divider(), centered)
	return b
}

// Build returns the panel wrapped in its border.
func (b *PanelBuilder) Build() string {
	return stylePanel().Width(b.boxWidth).Render(strings.Join(b.lines, "\n"))
}

func stylePanel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused).
		Padding(1, panelHPadding)
}

func stylePanelTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent).
		Bold(true)
}

func stylePanelDivider() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Primary)
}
