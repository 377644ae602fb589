package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderHints(t *testing.T) {
	full := plain(renderHints(formFooterHints, 0))
	for _, want := range []string{"Save", "Next", "Cancel"} {
		if !strings.Contains(full, want) {
			t.Errorf("expected %q in %q", want, full)
		}
	}

	narrow := renderHints(formFooterHints, 20)
	if w := lipgloss.Width(narrow); w > 20 {
		t.Errorf("expected hints trimmed to 20 columns, got %d", w)
	}
	if strings.Contains(plain(narrow), "Cancel") {
		t.Errorf("expected trailing hints dropped first, got %q", plain(narrow))
	}
	if !strings.Contains(plain(narrow), "Save") {
		t.Errorf("expected leading hint kept, got %q", plain(narrow))
	}

	if got := renderHints(formFooterHints, 2); got != "" {
		t.Errorf("expected nothing when no hint fits, got %q", got)
	}
}

func TestKeyPill(t *testing.T) {
	if got := plain(keyPill("esc", "Cancel")); got != " esc  Cancel" {
		t.Errorf("unexpected pill %q", got)
	}
}
