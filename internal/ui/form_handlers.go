package ui

import (
	"errors"

	"moncollect/internal/collect"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles input and submit completion.
func (m *PortForm) Update(msg tea.Msg) (*PortForm, tea.Cmd) {
	switch msg := msg.(type) {
	case fieldFlashMsg:
		m.flashing = false
		return m, nil
	case submitDoneMsg:
		return m.handleSubmitDone(msg)
	case spinner.TickMsg:
		if !m.pipeline.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case ComboBoxSelectedMsg:
		m.syncNode()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.passToFocusedZone(msg)
}

func (m *PortForm) handleKey(msg tea.KeyMsg) (*PortForm, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m.handleEscape()
	}
	// Fields are read-only while a submit is in flight.
	if m.pipeline.Submitting() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlS:
		return m.handleSubmit()
	case tea.KeyTab:
		return m.handleTab()
	case tea.KeyShiftTab:
		return m.handleShiftTab()
	case tea.KeyEnter:
		if m.focus == FocusComment || m.nodeCombo.IsDropdownOpen() {
			return m.passToFocusedZone(msg)
		}
		return m.handleSubmit()
	}

	if m.focus == FocusStep {
		switch msg.String() {
		case "left", "h":
			m.cycleStep(-1)
		case "right", "l", " ":
			m.cycleStep(1)
		}
		return m, nil
	}
	return m.passToFocusedZone(msg)
}

func (m *PortForm) handleEscape() (*PortForm, tea.Cmd) {
	if m.submitErr != nil {
		m.submitErr = nil
		return m, func() tea.Msg { return DismissErrorToastMsg{} }
	}
	if m.focus == FocusNode {
		if m.nodeCombo.IsDropdownOpen() || m.nodeCombo.InputValue() != m.nodeCombo.Value() {
			m.nodeCombo, _ = m.nodeCombo.Update(tea.KeyMsg{Type: tea.KeyEsc})
			return m, nil
		}
	}
	return m, func() tea.Msg { return FormCancelledMsg{} }
}

func (m *PortForm) handleTab() (*PortForm, tea.Cmd) {
	var cmds []tea.Cmd
	if m.focus == FocusNode && m.nodeCombo.IsDropdownOpen() {
		var cmd tea.Cmd
		m.nodeCombo, cmd = m.nodeCombo.Update(tea.KeyMsg{Type: tea.KeyTab})
		m.syncNode()
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.setFocus((m.focus+1)%formFocusCount))
	return m, tea.Batch(cmds...)
}

func (m *PortForm) handleShiftTab() (*PortForm, tea.Cmd) {
	return m, m.setFocus((m.focus + formFocusCount - 1) % formFocusCount)
}

// handleSubmit syncs inputs into the form state and starts a submit. Parse
// and validation errors are shown under their fields and flashed.
func (m *PortForm) handleSubmit() (*PortForm, tea.Cmd) {
	if m.pipeline.Submitting() {
		return m, nil
	}
	m.settleNode()
	if parseErrs := m.syncAll(); len(parseErrs) > 0 {
		return m, m.showFieldErrors(parseErrs)
	}

	payload, err := m.pipeline.Begin(m.state.Values())
	if err != nil {
		var fe collect.FieldErrors
		switch {
		case errors.As(err, &fe):
			return m, m.showFieldErrors(fe)
		case errors.Is(err, collect.ErrSubmitInFlight):
			return m, nil
		}
		m.submitErr = err
		return m, nil
	}

	m.fieldErrors = collect.FieldErrors{}
	m.submitErr = nil
	m.blurAll()
	return m, tea.Batch(m.spinner.Tick, m.sendCmd(payload))
}

func (m *PortForm) sendCmd(payload collect.Payload) tea.Cmd {
	ctx, pipeline := m.ctx, m.pipeline
	return func() tea.Msg {
		return submitDoneMsg{payload: payload, err: pipeline.Send(ctx, payload)}
	}
}

func (m *PortForm) handleSubmitDone(msg submitDoneMsg) (*PortForm, tea.Cmd) {
	m.pipeline.Complete(msg.err)
	if msg.err != nil {
		m.submitErr = msg.err
		err := msg.err
		return m, tea.Batch(m.setFocus(m.focus), func() tea.Msg { return SubmitFailedMsg{Err: err} })
	}
	payload := msg.payload
	return m, func() tea.Msg { return CollectorSavedMsg{Payload: payload} }
}

func (m *PortForm) showFieldErrors(fe collect.FieldErrors) tea.Cmd {
	m.fieldErrors = fe
	m.flashing = true
	cmds := []tea.Cmd{fieldFlashCmd()}
	for _, field := range collect.Fields {
		if !fe.Has(field) {
			continue
		}
		if f, ok := focusForField(field); ok {
			cmds = append(cmds, m.setFocus(f))
		}
		break
	}
	return tea.Batch(cmds...)
}

func (m *PortForm) cycleStep(delta int) {
	n := len(m.steps)
	if n == 0 {
		return
	}
	switch {
	case m.stepIndex < 0 && delta > 0:
		m.stepIndex = 0
	case m.stepIndex < 0:
		m.stepIndex = n - 1
	default:
		m.stepIndex = (m.stepIndex + delta + n) % n
	}
	m.state.SetStep(m.steps[m.stepIndex])
	delete(m.fieldErrors, collect.FieldStep)
}

func (m *PortForm) passToFocusedZone(msg tea.Msg) (*PortForm, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusNode:
		m.nodeCombo, cmd = m.nodeCombo.Update(msg)
		m.syncNode()
	case FocusComment:
		m.commentInput, cmd = m.commentInput.Update(msg)
		m.syncField(FocusComment)
	case FocusStep:
	default:
		if ti := m.inputFor(m.focus); ti != nil {
			*ti, cmd = ti.Update(msg)
			m.syncField(m.focus)
		}
	}
	return m, cmd
}

func (m *PortForm) inputFor(f FormFocus) *textinput.Model {
	switch f {
	case FocusName:
		return &m.nameInput
	case FocusService:
		return &m.serviceInput
	case FocusPort:
		return &m.portInput
	case FocusTimeout:
		return &m.timeoutInput
	}
	return nil
}

func (m *PortForm) rawValue(f FormFocus) string {
	if f == FocusComment {
		return m.commentInput.Value()
	}
	if ti := m.inputFor(f); ti != nil {
		return ti.Value()
	}
	return ""
}

// syncField copies one input into the form state. Editing a field clears
// its shown errors; unparseable numbers replace them.
func (m *PortForm) syncField(f FormFocus) {
	field := f.Field()
	delete(m.fieldErrors, field)
	var fe collect.FieldErrors
	if err := m.state.SetField(field, m.rawValue(f)); errors.As(err, &fe) {
		for _, msg := range fe[field] {
			m.fieldErrors.Add(field, msg)
		}
	}
}

// syncAll copies every text input into the form state and returns the
// parse errors.
func (m *PortForm) syncAll() collect.FieldErrors {
	out := collect.FieldErrors{}
	for _, f := range []FormFocus{FocusName, FocusService, FocusPort, FocusTimeout, FocusComment} {
		var fe collect.FieldErrors
		if err := m.state.SetField(f.Field(), m.rawValue(f)); errors.As(err, &fe) {
			for field, msgs := range fe {
				for _, msg := range msgs {
					out.Add(field, msg)
				}
			}
		}
	}
	return out
}

// syncNode copies the committed node into the form state. A cleared
// selector leaves no node, which the required rule reports.
func (m *PortForm) syncNode() {
	value := m.nodeCombo.Value()
	if value == "" {
		m.state.SetNID(0)
		return
	}
	if id, ok := m.nodeIDs[value]; ok && id != m.state.NID() {
		m.state.SetNID(id)
		delete(m.fieldErrors, collect.FieldNID)
	}
}

// settleNode drops uncommitted selector text before the node is read.
func (m *PortForm) settleNode() {
	m.nodeCombo.Settle()
	m.syncNode()
}

func (m *PortForm) blurAll() {
	m.nodeCombo.Blur()
	m.nameInput.Blur()
	m.serviceInput.Blur()
	m.portInput.Blur()
	m.timeoutInput.Blur()
	m.commentInput.Blur()
}

func (m *PortForm) setFocus(f FormFocus) tea.Cmd {
	if m.focus == FocusNode && f != FocusNode {
		m.settleNode()
	}
	m.blurAll()
	m.focus = f
	switch f {
	case FocusNode:
		return m.nodeCombo.Focus()
	case FocusComment:
		return m.commentInput.Focus()
	case FocusStep:
		return nil
	}
	if ti := m.inputFor(f); ti != nil {
		return ti.Focus()
	}
	return nil
}
