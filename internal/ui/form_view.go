package ui

import (
	"fmt"
	"strings"

	"moncollect/internal/collect"

	"github.com/charmbracelet/lipgloss"
)

// View renders the form panel.
func (m *PortForm) View() string {
	pb := NewPanelBuilder(m.boxWidth)
	content := pb.ContentWidth()

	pb.Header(m.title, styleMuted().Render("metric ")+styleMetric().Render(collect.Metric))

	pb.Line(m.renderLabel("NODE", FocusNode))
	pb.Line(m.nodeCombo.View())
	m.fieldErrorLine(pb, collect.FieldNID)

	pb.Line(m.renderLabel("NAME", FocusName))
	pb.Line(m.renderInput(m.nameInput.View(), FocusName, content))
	m.fieldErrorLine(pb, collect.FieldName)

	pb.Line(m.renderLabel("SERVICE", FocusService))
	pb.Line(m.renderInput(m.serviceInput.View(), FocusService, content))
	m.fieldErrorLine(pb, collect.FieldService)

	pb.Line(m.renderPortTimeoutRow(content))
	m.fieldErrorLine(pb, collect.FieldPort)
	m.fieldErrorLine(pb, collect.FieldTimeout)

	pb.Line(m.renderLabel("STEP (s)", FocusStep))
	pb.Line(m.renderStepRow())
	m.fieldErrorLine(pb, collect.FieldStep)

	pb.Line(m.renderLabel("COMMENT", FocusComment))
	pb.Line(m.renderInput(m.commentInput.View(), FocusComment, content))
	m.fieldErrorLine(pb, collect.FieldComment)

	if m.submitErr != nil {
		pb.BlankLine()
		pb.Line(styleFieldError().Width(content).Render("✗ save failed: " + m.submitErr.Error()))
	}
	pb.BlankLine()

	if m.pipeline.Submitting() {
		pb.FooterText(m.spinner.View() + " Saving collector...")
	} else {
		pb.Footer(m.footerHints())
	}
	return pb.Build()
}

func (m *PortForm) renderLabel(label string, f FormFocus) string {
	if m.focus == f && !m.pipeline.Submitting() {
		return styleFieldLabelFocused().Render(label)
	}
	return styleFieldLabel().Render(label)
}

// renderInput wraps an input view in a border sized to width columns.
func (m *PortForm) renderInput(view string, f FormFocus, width int) string {
	// Border is outside Width.
	w := width - 2
	switch {
	case m.flashing && m.fieldErrors.Has(f.Field()):
		return styleInputError(w).Render(view)
	case m.focus == f && !m.pipeline.Submitting():
		return styleInputFocused(w).Render(view)
	}
	return styleInput(w).Render(view)
}

func (m *PortForm) renderPortTimeoutRow(content int) string {
	gap := 2
	half := (content - gap) / 2
	port := lipgloss.JoinVertical(lipgloss.Left,
		m.renderLabel("PORT", FocusPort),
		m.renderInput(m.portInput.View(), FocusPort, half),
	)
	timeout := lipgloss.JoinVertical(lipgloss.Left,
		m.renderLabel("TIMEOUT (s)", FocusTimeout),
		m.renderInput(m.timeoutInput.View(), FocusTimeout, content-gap-half),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, port, strings.Repeat(" ", gap), timeout)
}

func (m *PortForm) renderStepRow() string {
	focused := m.focus == FocusStep && !m.pipeline.Submitting()
	parts := make([]string, 0, len(m.steps)+1)
	if m.stepIndex < 0 {
		if step, ok := m.state.Step(); ok {
			parts = append(parts, styleStepValue(focused).Render(fmt.Sprintf("[%d]", step)))
		}
	}
	for i, s := range m.steps {
		label := fmt.Sprintf("%d", s)
		if i == m.stepIndex {
			parts = append(parts, styleStepValue(focused).Render("["+label+"]"))
			continue
		}
		parts = append(parts, styleMuted().Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

func (m *PortForm) fieldErrorLine(pb *PanelBuilder, field collect.Field) {
	if msg := m.fieldErrors.First(field); msg != "" {
		pb.Line(styleFieldError().Render(fmt.Sprintf("  %s %s", fieldLabel(field), msg)))
	}
}

func fieldLabel(field collect.Field) string {
	if field == collect.FieldNID {
		return "node"
	}
	return string(field)
}

func (m *PortForm) footerHints() []footerHint {
	if m.nodeCombo.IsDropdownOpen() {
		return dropdownFooterHints
	}
	switch m.focus {
	case FocusNode:
		return nodeFooterHints
	case FocusStep:
		return stepFooterHints
	case FocusComment:
		return commentFooterHints
	}
	return formFooterHints
}
