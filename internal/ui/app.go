package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"moncollect/internal/collect"
	"moncollect/internal/config"
	appErrors "moncollect/internal/errors"
	"moncollect/internal/nodetree"
	"moncollect/internal/store"
	"moncollect/internal/ui/theme"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

const (
	errorToastDuration = 10 * time.Second
	copyToastDuration  = 5 * time.Second
)

// Config configures the UI application.
type Config struct {
	Nodes    []nodetree.Option
	Initial  *collect.InitialValues
	EditID   int64 // collector being edited, 0 for a new one
	Store    *store.Store
	Submit   collect.SubmitFunc // used when Store is nil
	Steps    []int
	Defaults collect.InitialValues

	OutputFormat string
	Logger       zerolog.Logger
	Version      string
}

type viewMode int

const (
	viewForm viewMode = iota
	viewSummary
)

// App implements the Bubble Tea model hosting the port collector form.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	form         *PortForm
	mode         viewMode
	width        int
	height       int
	outputFormat string
	version      string
	nodePaths    map[int64]string

	// stored is filled by the store from the submit goroutine.
	storedMu sync.Mutex
	stored   *store.Collector

	saved     savedCollector
	cancelled bool

	lastError       string
	showErrorToast  bool
	errorToastStart time.Time

	showCopyToast  bool
	copyToastStart time.Time

	copyFn    func(string) error
	saveTheme func(string) error
	now       func() time.Time
}

// NewApp builds the application. Either cfg.Store or cfg.Submit must be set.
func NewApp(cfg Config) (*App, error) {
	if cfg.Store == nil && cfg.Submit == nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "no collector store or submit func configured", nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &App{
		ctx:          ctx,
		cancel:       cancel,
		log:          cfg.Logger,
		outputFormat: cfg.OutputFormat,
		version:      cfg.Version,
		nodePaths:    make(map[int64]string, len(cfg.Nodes)),
		copyFn:       clipboard.WriteAll,
		saveTheme:    config.SaveTheme,
		now:          time.Now,
	}
	for _, n := range cfg.Nodes {
		m.nodePaths[n.ID] = n.Path
	}

	submit := cfg.Submit
	if cfg.Store != nil {
		submit = cfg.Store.Save(cfg.EditID, store.OnSaved(m.recordStored))
	}

	steps := cfg.Steps
	if len(steps) == 0 {
		steps = config.DefaultCollectSteps
	}
	pipeline := collect.NewPipeline(submit,
		collect.WithLogger(cfg.Logger),
		collect.WithValidator(collect.NewRuleValidator(collect.WithSteps(steps))),
	)

	title := "New port collector"
	if cfg.EditID > 0 {
		title = fmt.Sprintf("Edit port collector #%d", cfg.EditID)
	}

	m.form = NewPortForm(FormOptions{
		Nodes:    cfg.Nodes,
		Initial:  cfg.Initial,
		Defaults: cfg.Defaults,
		Steps:    steps,
		Pipeline: pipeline,
		Context:  ctx,
		Logger:   cfg.Logger,
		Title:    title,
	})
	return m, nil
}

// Init implements tea.Model.
func (m *App) Init() tea.Cmd {
	return m.form.Init()
}

// cycleTheme switches to the next palette and persists the choice.
func (m *App) cycleTheme() {
	name := theme.Cycle()
	if err := m.saveTheme(name); err != nil {
		m.log.Warn().Err(err).Str("theme", name).Msg("could not save theme")
	}
}

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.form.SetSize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if msg.Type == tea.KeyCtrlT {
			m.cycleTheme()
			return m, nil
		}
		if m.mode == viewSummary {
			return m.handleSummaryKey(msg)
		}

	case FormCancelledMsg:
		m.cancelled = true
		return m, m.quit()

	case SubmitFailedMsg:
		return m, m.showError(msg.Err)

	case DismissErrorToastMsg:
		m.showErrorToast = false
		return m, nil

	case CollectorSavedMsg:
		m.showErrorToast = false
		m.saved = m.savedFrom(msg.Payload)
		m.mode = viewSummary
		m.log.Info().Int64("id", m.saved.ID).Str("name", msg.Payload.Name).Msg("port collector saved")
		return m, nil

	case errorToastTickMsg:
		if !m.showErrorToast {
			return m, nil
		}
		if m.now().Sub(m.errorToastStart) >= errorToastDuration {
			m.showErrorToast = false
			return m, nil
		}
		return m, scheduleErrorToastTick()

	case copyToastTickMsg:
		if !m.showCopyToast {
			return m, nil
		}
		if m.now().Sub(m.copyToastStart) >= copyToastDuration {
			m.showCopyToast = false
			return m, nil
		}
		return m, scheduleCopyToastTick()
	}

	if m.mode != viewForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *App) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "c":
		data, err := payloadJSON(m.saved.Payload)
		if err == nil {
			err = m.copyFn(data)
		}
		if err != nil {
			return m, m.showError(fmt.Errorf("copy to clipboard: %w", err))
		}
		m.showCopyToast = true
		m.copyToastStart = m.now()
		return m, scheduleCopyToastTick()
	case "q", "esc", "enter":
		return m, m.quit()
	}
	return m, nil
}

// quit cancels the form context so an in-flight submit is abandoned.
func (m *App) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m *App) showError(err error) tea.Cmd {
	m.lastError = err.Error()
	m.showErrorToast = true
	m.errorToastStart = m.now()
	return scheduleErrorToastTick()
}

func (m *App) recordStored(c store.Collector) {
	m.storedMu.Lock()
	defer m.storedMu.Unlock()
	m.stored = &c
}

func (m *App) savedFrom(p collect.Payload) savedCollector {
	out := savedCollector{NodePath: m.nodePaths[p.NID], Payload: p}
	m.storedMu.Lock()
	defer m.storedMu.Unlock()
	if m.stored != nil {
		out.ID = m.stored.ID
		out.Payload = m.stored.Payload
	}
	return out
}

// Saved returns the stored payload once a submit has succeeded.
func (m *App) Saved() (collect.Payload, bool) {
	if m.mode != viewSummary {
		return collect.Payload{}, false
	}
	return m.saved.Payload, true
}

// SavedID returns the id of the stored collector, or 0.
func (m *App) SavedID() int64 {
	return m.saved.ID
}

// Cancelled reports whether the user backed out of the form.
func (m *App) Cancelled() bool {
	return m.cancelled
}

// Context returns the context handed to the submit func.
func (m *App) Context() context.Context {
	return m.ctx
}

// Form returns the hosted form.
func (m *App) Form() *PortForm {
	return m.form
}

// View implements tea.Model.
func (m *App) View() string {
	var body string
	if m.mode == viewSummary {
		body = m.summaryView()
	} else {
		body = m.form.View()
	}

	parts := []string{body}
	if toast := m.errorToastView(); toast != "" {
		parts = append(parts, toast)
	}
	if toast := m.copyToastView(); toast != "" {
		parts = append(parts, toast)
	}
	out := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
	}
	return out
}

func (m *App) summaryView() string {
	pb := NewPanelBuilder(panelWidthFor(m.width))
	subtitle := ""
	if m.version != "" {
		subtitle = styleMuted().Render("moncollect " + m.version)
	}
	pb.Header("Collector saved", subtitle)
	render := buildMarkdownRenderer(m.outputFormat, pb.ContentWidth())
	for _, line := range strings.Split(render(collectorMarkdown(m.saved)), "\n") {
		pb.Line(line)
	}
	pb.BlankLine()
	pb.Footer(summaryFooterHints)
	return pb.Build()
}

func (m *App) errorToastView() string {
	if !m.showErrorToast || m.lastError == "" {
		return ""
	}
	remaining := max(int((errorToastDuration - m.now().Sub(m.errorToastStart)).Seconds()), 0)
	msg := shortError(m.lastError, 60)
	countdown := fmt.Sprintf("[%ds]", remaining)
	width := max(lipgloss.Width(msg), 40)
	pad := max(width-len(countdown), 0)
	content := "⚠ Error\n" + msg + "\n" + strings.Repeat(" ", pad) + countdown
	return styleErrorToast().Render(content)
}

func (m *App) copyToastView() string {
	if !m.showCopyToast {
		return ""
	}
	remaining := max(int((copyToastDuration - m.now().Sub(m.copyToastStart)).Seconds()), 0)
	msg := "Copied collector JSON to clipboard."
	countdown := fmt.Sprintf("[%ds]", remaining)
	pad := max(lipgloss.Width(msg)-len(countdown), 0)
	return styleSuccessToast().Render(msg + "\n" + strings.Repeat(" ", pad) + countdown)
}

// shortError returns the first line of msg truncated to width.
func shortError(msg string, width int) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return ansi.Truncate(strings.TrimSpace(msg), width, "…")
}
