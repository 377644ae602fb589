package theme

import "github.com/charmbracelet/lipgloss"

// https://www.nordtheme.com/docs/colors-and-palettes
const (
	nordPolar0 = "#2E3440"
	nordPolar1 = "#3B4252"
	nordPolar3 = "#4C566A"
	nordSnow0  = "#D8DEE9"
	nordSnow2  = "#ECEFF4"
	nordFrost0 = "#8FBCBB"
	nordFrost1 = "#88C0D0"
	nordFrost2 = "#81A1C1"
	nordFrost3 = "#5E81AC"
	nordRed    = "#BF616A"
	nordOrange = "#D08770"
	nordYellow = "#EBCB8B"
	nordGreen  = "#A3BE8C"
)

func init() {
	Register("nord", Palette{
		Primary:   lipgloss.AdaptiveColor{Light: nordFrost3, Dark: nordFrost1},
		Secondary: lipgloss.AdaptiveColor{Light: nordFrost2, Dark: nordFrost2},
		Accent:    lipgloss.AdaptiveColor{Light: nordOrange, Dark: nordFrost0},

		Error:   lipgloss.AdaptiveColor{Light: nordRed, Dark: nordRed},
		Warning: lipgloss.AdaptiveColor{Light: nordOrange, Dark: nordYellow},
		Success: lipgloss.AdaptiveColor{Light: nordGreen, Dark: nordGreen},
		Info:    lipgloss.AdaptiveColor{Light: nordFrost3, Dark: nordFrost1},

		Text:           lipgloss.AdaptiveColor{Light: nordPolar0, Dark: nordSnow0},
		TextMuted:      lipgloss.AdaptiveColor{Light: nordPolar3, Dark: nordPolar3},
		TextEmphasized: lipgloss.AdaptiveColor{Light: nordPolar1, Dark: nordSnow2},

		Background:          lipgloss.AdaptiveColor{Light: nordSnow2, Dark: nordPolar0},
		BackgroundSecondary: lipgloss.AdaptiveColor{Light: nordSnow0, Dark: nordPolar1},

		BorderNormal:  lipgloss.AdaptiveColor{Light: nordSnow0, Dark: nordPolar3},
		BorderFocused: lipgloss.AdaptiveColor{Light: nordFrost3, Dark: nordFrost1},
		BorderDim:     lipgloss.AdaptiveColor{Light: nordSnow0, Dark: nordPolar1},
	})
}
