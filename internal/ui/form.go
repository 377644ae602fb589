package ui

import (
	"context"

	"moncollect/internal/collect"
	"moncollect/internal/config"
	"moncollect/internal/nodetree"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// FormFocus is the focused zone of the port collector form.
type FormFocus int

const (
	FocusNode FormFocus = iota
	FocusName
	FocusService
	FocusPort
	FocusTimeout
	FocusStep
	FocusComment

	formFocusCount
)

// Field returns the form field edited in zone f.
func (f FormFocus) Field() collect.Field {
	return collect.Fields[f]
}

func focusForField(field collect.Field) (FormFocus, bool) {
	for i, f := range collect.Fields {
		if f == field {
			return FormFocus(i), true
		}
	}
	return 0, false
}

// FormOptions configures a PortForm.
type FormOptions struct {
	// Nodes are the selectable nodes, usually nodetree.Flatten output.
	Nodes []nodetree.Option
	// Initial prefills the form; nil starts from the defaults.
	Initial *collect.InitialValues
	// Defaults replaces collect.DefaultFormData when non-zero.
	Defaults collect.InitialValues
	// Steps are the step options in seconds.
	Steps []int
	// Pipeline runs validation and submit. A nil Pipeline gets one with a
	// step-restricted validator and no submit func.
	Pipeline *collect.Pipeline
	// Context is handed to the submit func. Cancelling it aborts a submit.
	Context context.Context
	Logger  zerolog.Logger
	Title   string
}

// PortForm edits one port-listen collector.
type PortForm struct {
	title    string
	state    *collect.FormState
	pipeline *collect.Pipeline
	ctx      context.Context
	log      zerolog.Logger

	nodeCombo    ComboBox
	nodeIDs      map[string]int64
	nameInput    textinput.Model
	serviceInput textinput.Model
	portInput    textinput.Model
	timeoutInput textinput.Model
	commentInput textarea.Model
	spinner      spinner.Model

	steps     []int
	stepIndex int // -1 when the current step is not one of steps

	focus       FormFocus
	fieldErrors collect.FieldErrors
	flashing    bool
	submitErr   error
	boxWidth    int
}

// NewPortForm builds the form from opts.
func NewPortForm(opts FormOptions) *PortForm {
	steps := opts.Steps
	if len(steps) == 0 {
		steps = config.DefaultCollectSteps
	}
	steps = append([]int(nil), steps...)

	base := collect.DefaultFormData
	if opts.Defaults != (collect.InitialValues{}) {
		base = collect.MergeOnto(collect.DefaultFormData, &opts.Defaults)
	}

	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = collect.NewPipeline(nil,
			collect.WithLogger(opts.Logger),
			collect.WithValidator(collect.NewRuleValidator(collect.WithSteps(steps))),
		)
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	title := opts.Title
	if title == "" {
		title = "New port collector"
	}

	state := collect.NewFormStateWithBase(base, opts.Initial)

	nodeIDs := make(map[string]int64, len(opts.Nodes))
	for _, n := range opts.Nodes {
		nodeIDs[n.Path] = n.ID
	}
	nodeCombo := NewComboBox(nodetree.Paths(opts.Nodes)).
		WithMaxVisible(6).
		WithPlaceholder("type to search nodes...")
	for _, n := range opts.Nodes {
		if n.ID == state.NID() {
			nodeCombo.SetValue(n.Path)
			break
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &PortForm{
		title:        title,
		state:        state,
		pipeline:     pipeline,
		ctx:          ctx,
		log:          opts.Logger,
		nodeCombo:    nodeCombo,
		nodeIDs:      nodeIDs,
		nameInput:    newFieldInput(state.Field(collect.FieldName), "e.g. sshd", 128),
		serviceInput: newFieldInput(state.Field(collect.FieldService), "e.g. ssh", 128),
		portInput:    newFieldInput(state.Field(collect.FieldPort), "1-65535", 5),
		timeoutInput: newFieldInput(state.Field(collect.FieldTimeout), "seconds", 4),
		commentInput: newCommentInput(state.Comment()),
		spinner:      sp,
		steps:        steps,
		stepIndex:    -1,
		fieldErrors:  collect.FieldErrors{},
	}
	if step, ok := state.Step(); ok {
		for i, s := range steps {
			if s == step {
				m.stepIndex = i
				break
			}
		}
	}
	m.SetSize(0)
	return m
}

func newFieldInput(value, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.SetValue(value)
	return ti
}

func newCommentInput(value string) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 1024
	ta.SetHeight(3)
	ta.SetValue(value)
	return ta
}

// SetSize fits the form into a terminal of termWidth columns.
func (m *PortForm) SetSize(termWidth int) {
	m.boxWidth = panelWidthFor(termWidth)
	content := PanelContentWidth(m.boxWidth)
	// Inputs render inside a rounded border with one column of padding.
	inner := max(content-4, 8)
	m.nodeCombo = m.nodeCombo.WithWidth(content)
	for _, ti := range []*textinput.Model{&m.nameInput, &m.serviceInput, &m.portInput, &m.timeoutInput} {
		ti.Width = inner - 1
	}
	m.commentInput.SetWidth(inner)
}

// Init focuses the first zone.
func (m *PortForm) Init() tea.Cmd {
	return m.setFocus(FocusNode)
}

// Focus returns the focused zone.
func (m *PortForm) Focus() FormFocus {
	return m.focus
}

// Values returns the form values as last synced from the inputs.
func (m *PortForm) Values() collect.Values {
	return m.state.Values()
}

// FieldErrors returns the messages currently shown under fields.
func (m *PortForm) FieldErrors() collect.FieldErrors {
	return m.fieldErrors
}

// SubmitErr returns the last submit failure, or nil.
func (m *PortForm) SubmitErr() error {
	return m.submitErr
}

// Submitting reports whether a submit is in flight or has succeeded.
func (m *PortForm) Submitting() bool {
	return m.pipeline.Submitting()
}

// Flashing reports whether invalid fields are flashing.
func (m *PortForm) Flashing() bool {
	return m.flashing
}

// StepIndex returns the selected step option, or -1 for a custom step.
func (m *PortForm) StepIndex() int {
	return m.stepIndex
}

// Title returns the form title.
func (m *PortForm) Title() string {
	return m.title
}
