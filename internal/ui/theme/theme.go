// Package theme holds the color palettes of the collector UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette maps semantic roles to adaptive colors. Every field is set for
// registered palettes.
type Palette struct {
	Primary   lipgloss.AdaptiveColor // panel border, dividers
	Secondary lipgloss.AdaptiveColor // field labels, combo highlight
	Accent    lipgloss.AdaptiveColor // panel title, metric

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor // focused inputs, saved state
	Info    lipgloss.AdaptiveColor

	Text           lipgloss.AdaptiveColor
	TextMuted      lipgloss.AdaptiveColor
	TextEmphasized lipgloss.AdaptiveColor

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // panels, key pills

	BorderNormal  lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor
	BorderDim     lipgloss.AdaptiveColor
}

// Roles returns every color with its role name, in declaration order.
func (p Palette) Roles() []Role {
	return []Role{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"error", p.Error},
		{"warning", p.Warning},
		{"success", p.Success},
		{"info", p.Info},
		{"text", p.Text},
		{"text-muted", p.TextMuted},
		{"text-emphasized", p.TextEmphasized},
		{"background", p.Background},
		{"background-secondary", p.BackgroundSecondary},
		{"border-normal", p.BorderNormal},
		{"border-focused", p.BorderFocused},
		{"border-dim", p.BorderDim},
	}
}

// Role is a named palette entry.
type Role struct {
	Name  string
	Color lipgloss.AdaptiveColor
}
