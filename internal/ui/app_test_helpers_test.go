package ui

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"moncollect/internal/collect"
	"moncollect/internal/nodetree"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var testSteps = []int{5, 10, 30}

func testNodes() []nodetree.Option {
	return []nodetree.Option{
		{ID: 1, Path: "prod", Depth: 0},
		{ID: 2, Path: "prod.web", Depth: 1, Leaf: true},
		{ID: 3, Path: "prod.db", Depth: 1, Leaf: true},
	}
}

// submitRecorder records payloads and fails with queued errors in order.
type submitRecorder struct {
	mu       sync.Mutex
	payloads []collect.Payload
	errs     []error
	block    chan struct{}
}

func (r *submitRecorder) submit(ctx context.Context, p collect.Payload) error {
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return err
	}
	return nil
}

func (r *submitRecorder) calls() []collect.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]collect.Payload(nil), r.payloads...)
}

// drain runs cmd and returns the messages it produces, flattening batches.
// Commands that do not finish promptly (ticks, cursor blinks) are skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func plain(s string) string {
	return ansi.Strip(s)
}
