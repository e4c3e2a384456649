package views

import tea "github.com/charmbracelet/bubbletea"

// SwitchView asks the app to flip between the tasks and activities views.
type SwitchView struct{}

// Notice asks the app to show a transient status line.
type Notice struct {
	Text    string
	IsError bool
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return Notice{Text: text} }
}

func notifyError(text string) tea.Cmd {
	return func() tea.Msg { return Notice{Text: text, IsError: true} }
}
