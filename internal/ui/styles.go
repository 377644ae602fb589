package ui

import (
	"strings"

	"moncollect/internal/ui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Styles are functions so a palette switch takes effect on the next render.

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted).
		Bold(true)
}

func styleFieldLabelFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary).
		Bold(true)
}

func styleFieldError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error)
}

func styleMetric() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)
}

func styleStepValue(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(theme.Current().Text)
	if focused {
		s = s.Foreground(theme.Current().Success).Bold(true)
	}
	return s
}

// Footer bar

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().Primary).
		Foreground(theme.Current().Background).
		Bold(true)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)
}

func styleFooterMuted() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted).
		Italic(true)
}

// Toasts

func styleErrorToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Error).
		Foreground(theme.Current().Text).
		Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Success).
		Foreground(theme.Current().Text).
		Padding(0, 1)
}

// Inputs

func styleInput(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim).
		Padding(0, 1).
		Width(width)
}

func styleInputFocused(width int) lipgloss.Style {
	return styleInput(width).BorderForeground(theme.Current().Success)
}

// styleInputError is the red border shown while a field error flashes.
func styleInputError(width int) lipgloss.Style {
	return styleInput(width).BorderForeground(theme.Current().Error)
}

// buildMarkdownRenderer returns a glamour renderer for format, falling back
// to plain word wrapping for "plain" or when glamour cannot be set up.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	switch style {
	case "", "rich", "dark":
		style = "dark"
	case "plain":
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
