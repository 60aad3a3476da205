package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/views"
)

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.Auth.Focused == AuthFieldEmail {
			m.Auth.Focused = AuthFieldPassword
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.Auth.Focused = AuthFieldEmail
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil
	case "enter":
		return m.submitAuth(signInCmd, "signing in")
	case "ctrl+s":
		return m.submitAuth(signUpCmd, "registering")
	case "ctrl+g":
		m.controller.EnterGuest()
		m.Session = m.controller.Session()
		m.store.Reset()
		m.Tasks = nil
		m.Bookmarks = nil
		m.CurrentView = ViewTasks
		m.Status = StatusBar{Text: "guest mode: tasks live in memory only", IsError: false}
		return m, nil
	}

	var cmd tea.Cmd
	if m.Auth.Focused == AuthFieldEmail {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAuth(op func(SessionController, string, string) tea.Cmd, verb string) (tea.Model, tea.Cmd) {
	if m.Auth.Busy {
		return m, nil
	}
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	if email == "" || password == "" {
		m.Status = StatusBar{Text: "email and password are required", IsError: true}
		return m, nil
	}
	m.Auth.Busy = true
	m.spinnerActive = true
	m.Status = StatusBar{Text: verb, IsError: false}
	return m, tea.Batch(op(m.controller, email, password), m.loadSpinner.Tick)
}

func (m Model) renderAuthView() string {
	return views.RenderAuthPanel(views.AuthPanelData{
		EmailView:    m.emailInput.View(),
		PasswordView: m.passwordInput.View(),
		Busy:         m.Auth.Busy,
	})
}
