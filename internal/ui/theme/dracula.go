package theme

import "github.com/charmbracelet/lipgloss"

// https://draculatheme.com/contribute
const (
	draculaBackground  = "#282a36"
	draculaCurrentLine = "#44475a"
	draculaForeground  = "#f8f8f2"
	draculaComment     = "#6272a4"
	draculaCyan        = "#8be9fd"
	draculaGreen       = "#50fa7b"
	draculaOrange      = "#ffb86c"
	draculaPink        = "#ff79c6"
	draculaPurple      = "#bd93f9"
	draculaRed         = "#ff5555"
	draculaYellow      = "#f1fa8c"
)

func init() {
	Register("dracula", Palette{
		Primary:   lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: draculaPurple},
		Secondary: lipgloss.AdaptiveColor{Light: "#0097a7", Dark: draculaCyan},
		Accent:    lipgloss.AdaptiveColor{Light: "#c2185b", Dark: draculaPink},

		Error:   lipgloss.AdaptiveColor{Light: "#d32f2f", Dark: draculaRed},
		Warning: lipgloss.AdaptiveColor{Light: "#ef6c00", Dark: draculaOrange},
		Success: lipgloss.AdaptiveColor{Light: "#388e3c", Dark: draculaGreen},
		Info:    lipgloss.AdaptiveColor{Light: "#1976d2", Dark: draculaCyan},

		Text:           lipgloss.AdaptiveColor{Light: "#212121", Dark: draculaForeground},
		TextMuted:      lipgloss.AdaptiveColor{Light: "#757575", Dark: draculaComment},
		TextEmphasized: lipgloss.AdaptiveColor{Light: "#f9a825", Dark: draculaYellow},

		Background:          lipgloss.AdaptiveColor{Light: "#ffffff", Dark: draculaBackground},
		BackgroundSecondary: lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: draculaCurrentLine},

		BorderNormal:  lipgloss.AdaptiveColor{Light: "#bdbdbd", Dark: draculaComment},
		BorderFocused: lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: draculaPurple},
		BorderDim:     lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: draculaCurrentLine},
	})
}
