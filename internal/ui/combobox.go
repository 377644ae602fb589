package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ComboBoxState is the dropdown state of a ComboBox.
type ComboBoxState int

const (
	// ComboBoxIdle - focused, dropdown closed.
	ComboBoxIdle ComboBoxState = iota
	// ComboBoxBrowsing - dropdown open with the full list.
	ComboBoxBrowsing
	// ComboBoxFiltering - dropdown open with fuzzy-ranked matches.
	ComboBoxFiltering
)

// ComboBoxSelectedMsg is sent when Enter or Tab commits a highlighted option.
type ComboBoxSelectedMsg struct {
	Value string
	ByTab bool
}

// ComboBox is a single-select autocomplete field over a fixed option list.
// Typing ranks options with fuzzy matching; the highlighted option is what
// Enter or Tab commits.
type ComboBox struct {
	Options     []string
	Placeholder string
	Width       int // visual width including border
	MaxVisible  int

	state          ComboBoxState
	textInput      textinput.Model
	value          string
	filtered       []string
	highlightIndex int
	scrollOffset   int
	focused        bool
}

// NewComboBox creates a ComboBox over options.
func NewComboBox(options []string) ComboBox {
	ti := textinput.New()
	ti.CharLimit = 256

	c := ComboBox{
		Options:    options,
		Width:      40,
		MaxVisible: 5,
		state:      ComboBoxIdle,
		textInput:  ti,
		filtered:   options,
	}
	c.textInput.Width = c.Width - 6
	return c
}

// WithPlaceholder sets the placeholder text.
func (c ComboBox) WithPlaceholder(s string) ComboBox {
	c.Placeholder = s
	c.textInput.Placeholder = s
	return c
}

// WithWidth sets the visual width.
func (c ComboBox) WithWidth(w int) ComboBox {
	c.Width = w
	c.textInput.Width = w - 6
	return c
}

// WithMaxVisible sets how many options the dropdown shows at once.
func (c ComboBox) WithMaxVisible(n int) ComboBox {
	if n > 0 {
		c.MaxVisible = n
	}
	return c
}

// Update handles keys for the focused combo box.
func (c ComboBox) Update(msg tea.Msg) (ComboBox, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch c.state {
		case ComboBoxIdle:
			return c.handleIdleKey(key)
		default:
			return c.handleOpenKey(key)
		}
	}
	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	return c, cmd
}

func (c ComboBox) handleIdleKey(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
	switch msg.Type {
	case tea.KeyDown:
		c.state = ComboBoxBrowsing
		c.filtered = c.Options
		c.highlightCurrentValue()
		return c, nil
	case tea.KeyEsc:
		// Revert typed text to the committed value.
		if c.textInput.Value() != c.value {
			c.textInput.SetValue(c.value)
		}
		return c, nil
	case tea.KeyRunes, tea.KeyBackspace:
		// Typing over a committed value replaces it.
		if c.value != "" && c.textInput.Value() == c.value {
			c.textInput.SetValue("")
		}
		before := c.textInput.Value()
		var cmd tea.Cmd
		c.textInput, cmd = c.textInput.Update(msg)
		if c.textInput.Value() != before {
			c.state = ComboBoxFiltering
			c.filterOptions()
		}
		return c, cmd
	}
	return c, nil
}

func (c ComboBox) handleOpenKey(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if c.highlightIndex > 0 {
			c.highlightIndex--
			c.adjustScrollOffset()
		}
		return c, nil
	case tea.KeyDown:
		if c.highlightIndex < len(c.filtered)-1 {
			c.highlightIndex++
			c.adjustScrollOffset()
		}
		return c, nil
	case tea.KeyEnter:
		return c.selectHighlighted(false)
	case tea.KeyTab:
		return c.selectHighlighted(true)
	case tea.KeyEsc:
		// First Esc closes the dropdown and keeps the typed text.
		c.state = ComboBoxIdle
		return c, nil
	case tea.KeyDelete:
		// Delete rejects the ghost completion.
		if c.HasGhostText() {
			c.highlightIndex = -1
		}
		return c, nil
	case tea.KeyRunes, tea.KeyBackspace:
		c.state = ComboBoxFiltering
		var cmd tea.Cmd
		c.textInput, cmd = c.textInput.Update(msg)
		c.filterOptions()
		return c, cmd
	}
	return c, nil
}

func (c ComboBox) selectHighlighted(byTab bool) (ComboBox, tea.Cmd) {
	c.state = ComboBoxIdle
	if c.highlightIndex < 0 || c.highlightIndex >= len(c.filtered) {
		if !c.Settle() {
			return c, nil
		}
		return c, func() tea.Msg {
			return ComboBoxSelectedMsg{Value: "", ByTab: byTab}
		}
	}
	selected := c.filtered[c.highlightIndex]
	c.value = selected
	c.textInput.SetValue(selected)
	c.textInput.CursorEnd()
	return c, func() tea.Msg {
		return ComboBoxSelectedMsg{Value: selected, ByTab: byTab}
	}
}

func (c *ComboBox) filterOptions() {
	input := c.textInput.Value()
	c.scrollOffset = 0
	c.highlightIndex = 0
	if strings.TrimSpace(input) == "" {
		// Cleared text highlights nothing so Enter or Tab clears the value.
		c.filtered = c.Options
		c.highlightIndex = -1
		return
	}
	c.filtered = rankOptions(c.Options, input)
	for i, opt := range c.filtered {
		if strings.EqualFold(opt, strings.TrimSpace(input)) {
			c.highlightIndex = i
			c.adjustScrollOffset()
			return
		}
	}
}

func (c *ComboBox) highlightCurrentValue() {
	c.highlightIndex = 0
	c.scrollOffset = 0
	for i, opt := range c.filtered {
		if opt == c.value {
			c.highlightIndex = i
			c.adjustScrollOffset()
			return
		}
	}
}

// adjustScrollOffset keeps the highlighted option inside the visible window.
func (c *ComboBox) adjustScrollOffset() {
	if c.highlightIndex < c.scrollOffset {
		c.scrollOffset = c.highlightIndex
	}
	if c.highlightIndex >= c.scrollOffset+c.MaxVisible {
		c.scrollOffset = c.highlightIndex - c.MaxVisible + 1
	}
	maxOffset := max(len(c.filtered)-c.MaxVisible, 0)
	c.scrollOffset = min(max(c.scrollOffset, 0), maxOffset)
}

// Value returns the committed value.
func (c ComboBox) Value() string {
	return c.value
}

// SetValue commits v without opening the dropdown.
func (c *ComboBox) SetValue(v string) {
	c.value = v
	c.textInput.SetValue(v)
}

// Settle reconciles the typed text with the committed value when the
// field is left: empty text clears the value, any other text that is not
// the committed value is reverted. It reports whether the value changed.
func (c *ComboBox) Settle() bool {
	c.state = ComboBoxIdle
	input := c.textInput.Value()
	if strings.TrimSpace(input) == "" {
		c.textInput.SetValue("")
		changed := c.value != ""
		c.value = ""
		return changed
	}
	if input != c.value {
		c.textInput.SetValue(c.value)
		c.textInput.CursorEnd()
	}
	return false
}

// Focus focuses the combo box and returns the cursor blink command.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	return c.textInput.Focus()
}

// Blur removes focus and closes the dropdown.
func (c *ComboBox) Blur() {
	c.focused = false
	c.state = ComboBoxIdle
	c.textInput.Blur()
}

// Focused reports whether the combo box has focus.
func (c ComboBox) Focused() bool {
	return c.focused
}

// IsDropdownOpen reports whether the dropdown is visible.
func (c ComboBox) IsDropdownOpen() bool {
	return c.state != ComboBoxIdle
}

// State returns the dropdown state.
func (c ComboBox) State() ComboBoxState {
	return c.state
}

// FilteredOptions returns the options currently listed.
func (c ComboBox) FilteredOptions() []string {
	return c.filtered
}

// HighlightIndex returns the highlighted index in FilteredOptions, or -1.
func (c ComboBox) HighlightIndex() int {
	return c.highlightIndex
}

// InputValue returns the raw text in the input.
func (c ComboBox) InputValue() string {
	return c.textInput.Value()
}

// GhostText returns the inline completion for the highlighted option: the
// rest of it when it starts with the typed text.
func (c ComboBox) GhostText() string {
	if c.state != ComboBoxFiltering {
		return ""
	}
	if c.highlightIndex < 0 || c.highlightIndex >= len(c.filtered) {
		return ""
	}
	typed := c.textInput.Value()
	if typed == "" {
		return ""
	}
	highlighted := c.filtered[c.highlightIndex]
	if !strings.HasPrefix(strings.ToLower(highlighted), strings.ToLower(typed)) {
		return ""
	}
	return highlighted[len(typed):]
}

// HasGhostText reports whether a completion is shown.
func (c ComboBox) HasGhostText() bool {
	return c.GhostText() != ""
}
