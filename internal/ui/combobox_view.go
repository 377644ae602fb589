package ui

import (
	"strings"

	"moncollect/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the input and, when open, the dropdown below it.
func (c ComboBox) View() string {
	var b strings.Builder

	inputView := c.textInput.View()
	if ghost := c.GhostText(); ghost != "" && c.focused {
		// First ghost rune sits in an inverted block cursor.
		runes := []rune(ghost)
		inputView = c.textInput.Prompt + c.textInput.Value() +
			styleGhostCursor().Render(string(runes[0])) +
			styleGhostText().Render(string(runes[1:]))
	}

	// Border is outside Width, so subtract it from the visual width.
	inputStyle := styleComboBoxInput()
	if c.focused {
		inputStyle = styleComboBoxInputFocused()
	}
	b.WriteString(inputStyle.Width(c.Width - 2).Render(inputView))

	if c.state != ComboBoxIdle {
		b.WriteString("\n")
		if len(c.filtered) == 0 {
			b.WriteString(styleComboBoxNoMatch().Render("  No matching nodes"))
		} else {
			b.WriteString(c.renderDropdownItems())
		}
	}
	return b.String()
}

func (c ComboBox) renderDropdownItems() string {
	var lines []string
	if c.scrollOffset > 0 {
		lines = append(lines, styleComboBoxHint().Render("  ▲ more above"))
	}

	end := min(c.scrollOffset+c.MaxVisible, len(c.filtered))
	itemWidth := max(c.Width-4, 10)
	for i := c.scrollOffset; i < end; i++ {
		// Style padding and the "▸ " marker take 4 columns.
		label := ansi.Truncate(c.filtered[i], itemWidth-4, "…")
		if i == c.highlightIndex {
			lines = append(lines, styleComboBoxHighlight().Width(itemWidth).Render("▸ "+label))
		} else {
			lines = append(lines, styleComboBoxOption().Width(itemWidth).Render("  "+label))
		}
	}

	if end < len(c.filtered) {
		lines = append(lines, styleComboBoxHint().Render("  ▼ more below"))
	}
	return strings.Join(lines, "\n")
}

func styleComboBoxInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim).
		Padding(0, 1)
}

func styleComboBoxInputFocused() lipgloss.Style {
	return styleComboBoxInput().BorderForeground(theme.Current().Success)
}

func styleComboBoxOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text).
		PaddingLeft(2)
}

func styleComboBoxHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary).
		Bold(true).
		PaddingLeft(2)
}

func styleComboBoxNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal).
		Italic(true)
}

func styleComboBoxHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)
}

func styleGhostText() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)
}

// styleGhostCursor is muted text on a muted background.
func styleGhostCursor() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background).
		Background(theme.Current().TextMuted)
}
