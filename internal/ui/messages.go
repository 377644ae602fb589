package ui

import (
	"time"

	"moncollect/internal/collect"

	tea "github.com/charmbracelet/bubbletea"
)

// FormCancelledMsg is sent when the user backs out of the form.
type FormCancelledMsg struct{}

// CollectorSavedMsg is sent after the submit func accepted the payload.
type CollectorSavedMsg struct {
	Payload collect.Payload
}

// SubmitFailedMsg is sent when the submit func returned an error. The form
// stays populated so the user can retry.
type SubmitFailedMsg struct {
	Err error
}

// DismissErrorToastMsg hides the error toast.
type DismissErrorToastMsg struct{}

// submitDoneMsg carries the outcome of an asynchronous submit back to the
// form that started it.
type submitDoneMsg struct {
	payload collect.Payload
	err     error
}

// fieldFlashMsg ends the error flash on invalid fields.
type fieldFlashMsg struct{}

func fieldFlashCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
		return fieldFlashMsg{}
	})
}

type errorToastTickMsg struct{}

func scheduleErrorToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return errorToastTickMsg{}
	})
}

type copyToastTickMsg struct{}

func scheduleCopyToastTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return copyToastTickMsg{}
	})
}
