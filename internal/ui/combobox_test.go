package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var testPaths = []string{"prod", "prod.web", "prod.web.api", "prod.db", "staging", "staging.web"}

func focusedCombo(options []string) ComboBox {
	cb := NewComboBox(options)
	cb.Focus()
	return cb
}

func comboKey(cb ComboBox, t tea.KeyType) (ComboBox, tea.Cmd) {
	return cb.Update(tea.KeyMsg{Type: t})
}

func comboType(cb ComboBox, s string) ComboBox {
	cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cb
}

func TestNewComboBox(t *testing.T) {
	cb := NewComboBox(testPaths)
	if cb.Width != 40 {
		t.Errorf("expected default width 40, got %d", cb.Width)
	}
	if cb.MaxVisible != 5 {
		t.Errorf("expected default MaxVisible 5, got %d", cb.MaxVisible)
	}
	if cb.State() != ComboBoxIdle {
		t.Errorf("expected idle state, got %v", cb.State())
	}
	if cb.Focused() {
		t.Error("expected combo box to start blurred")
	}
	if len(cb.FilteredOptions()) != len(testPaths) {
		t.Errorf("expected all options listed, got %d", len(cb.FilteredOptions()))
	}
}

func TestComboBoxBuilders(t *testing.T) {
	cb := NewComboBox(nil).WithPlaceholder("search...").WithWidth(60).WithMaxVisible(8)
	if cb.Placeholder != "search..." {
		t.Errorf("expected placeholder, got %q", cb.Placeholder)
	}
	if cb.Width != 60 {
		t.Errorf("expected width 60, got %d", cb.Width)
	}
	if cb.MaxVisible != 8 {
		t.Errorf("expected MaxVisible 8, got %d", cb.MaxVisible)
	}
	if cb.WithMaxVisible(0).MaxVisible != 8 {
		t.Error("expected non-positive MaxVisible to be ignored")
	}
}

func TestComboBoxBrowse(t *testing.T) {
	t.Run("DownOpensFullList", func(t *testing.T) {
		cb, _ := comboKey(focusedCombo(testPaths), tea.KeyDown)
		if cb.State() != ComboBoxBrowsing {
			t.Fatalf("expected browsing, got %v", cb.State())
		}
		if cb.HighlightIndex() != 0 {
			t.Errorf("expected first option highlighted, got %d", cb.HighlightIndex())
		}
	})

	t.Run("HighlightsCommittedValue", func(t *testing.T) {
		cb := focusedCombo(testPaths)
		cb.SetValue("prod.db")
		cb, _ = comboKey(cb, tea.KeyDown)
		if got := cb.FilteredOptions()[cb.HighlightIndex()]; got != "prod.db" {
			t.Errorf("expected prod.db highlighted, got %q", got)
		}
	})

	t.Run("EnterSelects", func(t *testing.T) {
		cb, _ := comboKey(focusedCombo(testPaths), tea.KeyDown)
		cb, _ = comboKey(cb, tea.KeyDown)
		cb, cmd := comboKey(cb, tea.KeyEnter)
		if cb.Value() != "prod.web" {
			t.Fatalf("expected prod.web, got %q", cb.Value())
		}
		if cb.IsDropdownOpen() {
			t.Error("expected dropdown closed after selection")
		}
		if cmd == nil {
			t.Fatal("expected selection command")
		}
		msg, ok := cmd().(ComboBoxSelectedMsg)
		if !ok || msg.Value != "prod.web" || msg.ByTab {
			t.Errorf("unexpected selection msg %#v", msg)
		}
	})

	t.Run("TabSelects", func(t *testing.T) {
		cb, _ := comboKey(focusedCombo(testPaths), tea.KeyDown)
		cb, cmd := comboKey(cb, tea.KeyTab)
		if cb.Value() != "prod" {
			t.Fatalf("expected prod, got %q", cb.Value())
		}
		if msg, ok := cmd().(ComboBoxSelectedMsg); !ok || !msg.ByTab {
			t.Errorf("expected tab selection msg, got %#v", msg)
		}
	})

	t.Run("UpStopsAtTop", func(t *testing.T) {
		cb, _ := comboKey(focusedCombo(testPaths), tea.KeyDown)
		cb, _ = comboKey(cb, tea.KeyUp)
		if cb.HighlightIndex() != 0 {
			t.Errorf("expected highlight to stay at 0, got %d", cb.HighlightIndex())
		}
	})
}

func TestComboBoxFilter(t *testing.T) {
	t.Run("TypingRanksMatches", func(t *testing.T) {
		cb := comboType(focusedCombo(testPaths), "stag")
		if cb.State() != ComboBoxFiltering {
			t.Fatalf("expected filtering, got %v", cb.State())
		}
		for _, opt := range cb.FilteredOptions() {
			if !strings.HasPrefix(opt, "staging") {
				t.Errorf("unexpected match %q", opt)
			}
		}
		if len(cb.FilteredOptions()) != 2 {
			t.Errorf("expected 2 matches, got %v", cb.FilteredOptions())
		}
	})

	t.Run("ExactMatchHighlighted", func(t *testing.T) {
		cb := comboType(focusedCombo(testPaths), "staging.web")
		if got := cb.FilteredOptions()[cb.HighlightIndex()]; got != "staging.web" {
			t.Errorf("expected exact match highlighted, got %q", got)
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		cb := comboType(focusedCombo(testPaths), "zzz")
		if len(cb.FilteredOptions()) != 0 {
			t.Errorf("expected no matches, got %v", cb.FilteredOptions())
		}
		if !strings.Contains(ansi.Strip(cb.View()), "No matching nodes") {
			t.Error("expected empty-state hint in view")
		}
		cb, cmd := comboKey(cb, tea.KeyEnter)
		if cmd != nil || cb.Value() != "" {
			t.Error("expected Enter with no matches to select nothing")
		}
	})

	t.Run("TypingReplacesCommittedValue", func(t *testing.T) {
		cb := focusedCombo(testPaths)
		cb.SetValue("prod")
		cb = comboType(cb, "s")
		if cb.InputValue() != "s" {
			t.Errorf("expected input to restart, got %q", cb.InputValue())
		}
		if cb.Value() != "prod" {
			t.Errorf("expected committed value kept until selection, got %q", cb.Value())
		}
	})
}

func TestComboBoxEscape(t *testing.T) {
	cb := focusedCombo(testPaths)
	cb.SetValue("prod")
	cb = comboType(cb, "stag")

	cb, _ = comboKey(cb, tea.KeyEsc)
	if cb.IsDropdownOpen() {
		t.Fatal("expected first Esc to close dropdown")
	}
	if cb.InputValue() != "stag" {
		t.Errorf("expected typed text kept, got %q", cb.InputValue())
	}

	cb, _ = comboKey(cb, tea.KeyEsc)
	if cb.InputValue() != "prod" {
		t.Errorf("expected second Esc to revert to committed value, got %q", cb.InputValue())
	}
}

func TestComboBoxGhostText(t *testing.T) {
	cb := comboType(focusedCombo([]string{"prod.db", "staging"}), "prod")
	if got := cb.GhostText(); got != ".db" {
		t.Fatalf("expected ghost %q, got %q", ".db", got)
	}
	if !strings.Contains(ansi.Strip(cb.View()), "prod.db") {
		t.Error("expected ghost completion rendered inline")
	}

	cb, _ = comboKey(cb, tea.KeyDelete)
	if cb.HasGhostText() {
		t.Error("expected Delete to reject the ghost completion")
	}

	browsing, _ := comboKey(focusedCombo([]string{"prod.db"}), tea.KeyDown)
	if browsing.HasGhostText() {
		t.Error("expected no ghost text while browsing")
	}
}

func TestComboBoxScrolling(t *testing.T) {
	options := []string{"n0", "n1", "n2", "n3", "n4", "n5", "n6", "n7"}
	cb := focusedCombo(options).WithMaxVisible(3)
	cb, _ = comboKey(cb, tea.KeyDown)
	for range 5 {
		cb, _ = comboKey(cb, tea.KeyDown)
	}
	if cb.HighlightIndex() != 5 {
		t.Fatalf("expected highlight 5, got %d", cb.HighlightIndex())
	}
	view := ansi.Strip(cb.View())
	if !strings.Contains(view, "more above") || !strings.Contains(view, "more below") {
		t.Errorf("expected both scroll hints, got:\n%s", view)
	}
	if strings.Contains(view, "n2") || !strings.Contains(view, "n5") {
		t.Errorf("expected window n3..n5, got:\n%s", view)
	}
}

func TestComboBoxViewTruncatesLongOptions(t *testing.T) {
	long := "datacenter.region.cluster.rack.host.with.a.very.long.path"
	cb := focusedCombo([]string{long}).WithWidth(24)
	cb, _ = comboKey(cb, tea.KeyDown)
	for _, line := range strings.Split(cb.View(), "\n") {
		if w := lipgloss.Width(line); w > 24 {
			t.Errorf("line wider than combo box (%d): %q", w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(cb.View()), "…") {
		t.Error("expected truncated option to end with an ellipsis")
	}
}

func TestComboBoxSettle(t *testing.T) {
	t.Run("EmptyTextClears", func(t *testing.T) {
		cb := focusedCombo(testPaths)
		cb.SetValue("prod")
		cb, _ = comboKey(cb, tea.KeyBackspace)
		if !cb.Settle() {
			t.Fatal("expected clearing to report a change")
		}
		if cb.Value() != "" {
			t.Errorf("expected value cleared, got %q", cb.Value())
		}
	})

	t.Run("UnmatchedTextReverts", func(t *testing.T) {
		cb := focusedCombo(testPaths)
		cb.SetValue("prod")
		cb = comboType(cb, "zzz")
		if cb.Settle() {
			t.Error("expected no value change")
		}
		if cb.InputValue() != "prod" || cb.IsDropdownOpen() {
			t.Errorf("expected input reverted and closed, got %q", cb.InputValue())
		}
	})

	t.Run("TabOnErasedFilterClears", func(t *testing.T) {
		cb := focusedCombo(testPaths)
		cb.SetValue("prod")
		cb = comboType(cb, "s")
		cb, _ = comboKey(cb, tea.KeyBackspace)
		if cb.HighlightIndex() != -1 {
			t.Fatalf("expected nothing highlighted, got %d", cb.HighlightIndex())
		}
		cb, cmd := comboKey(cb, tea.KeyTab)
		if cb.Value() != "" {
			t.Fatalf("expected value cleared, got %q", cb.Value())
		}
		if msg, ok := cmd().(ComboBoxSelectedMsg); !ok || msg.Value != "" {
			t.Errorf("expected empty selection msg, got %#v", msg)
		}
	})
}
