package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastKind selects the toast color.
type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toastMsg shows a transient notice on the toast line.
type toastMsg struct {
	kind toastKind
	text string
}

// toastExpiredMsg clears the toast identified by id.
type toastExpiredMsg struct{ id int }

// toastDuration matches the notification timing of the web app.
const toastDuration = 4 * time.Second

// toastModel is the single transient notice line. A new toast replaces the
// previous one; the expiry of a replaced toast is ignored via the id.
type toastModel struct {
	id   int
	kind toastKind
	text string
}

func (t toastModel) show(kind toastKind, text string) (toastModel, tea.Cmd) {
	t.id++
	t.kind = kind
	t.text = text
	id := t.id
	return t, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (t toastModel) expire(msg toastExpiredMsg) toastModel {
	if msg.id == t.id {
		t.text = ""
	}
	return t
}

func (t toastModel) View() string {
	if t.text == "" {
		return ""
	}
	if t.kind == toastError {
		return dangerStyle.Render("✗ " + t.text)
	}
	return successStyle.Render("✓ " + t.text)
}

// toast is a convenience command for sub-models to raise a toast.
func toast(kind toastKind, text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{kind: kind, text: text} }
}
