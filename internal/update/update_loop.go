package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/model"
	"loctodo/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.Scheduler != nil {
		if cmd := waitForReminderCmd(m.Scheduler.C()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.Session.State != model.SessionAnonymous && m.store != nil {
		cmds = append(cmds, loadTasksCmd(m.store), loadBookmarksCmd(m.store))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.dispatch(msg)
	// The list items are rebuilt on the copy that gets returned. A sync
	// deferred on the receiver would run on a copy the runtime never sees.
	if next, ok := updated.(Model); ok {
		next.syncBubbleData()
		return next, cmd
	}
	return updated, cmd
}

func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		m.spinnerActive = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil

	case SessionChangedMsg:
		return m.onSessionChanged(typed)

	case SignUpDoneMsg:
		m.Auth.Busy = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		// Registration never signs in; the user signs in explicitly.
		m.Status = StatusBar{Text: "registration successful, you can now sign in", IsError: false}
		m.passwordInput.SetValue("")
		return m, nil

	case SignInDoneMsg:
		m.Auth.Busy = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Session = m.controller.Session()
		m.CurrentView = ViewTasks
		m.passwordInput.SetValue("")
		m.Status = StatusBar{Text: fmt.Sprintf("signed in as %s", m.Session.Email), IsError: false}
		return m, tea.Batch(loadTasksCmd(m.store), loadBookmarksCmd(m.store))

	case SignOutDoneMsg:
		m = m.resetToAnonymous()
		if typed.Err != nil {
			// Local state is already cleared; the remote failure is a note.
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "signed out", IsError: false}
		}
		return m, nil

	case TasksLoadedMsg:
		m.Tasks = typed.Tasks
		m.spinnerActive = false
		return m, m.scheduleLoadedReminders()

	case BookmarksLoadedMsg:
		m.Bookmarks = typed.Bookmarks
		m.spinnerActive = false
		return m, nil

	case SuggestionsMsg:
		m.Suggestions = typed.Suggestions
		m.CurrentView = ViewSuggestions
		if len(typed.Suggestions) == 0 {
			m.Status = StatusBar{Text: "no suggestions right now", IsError: false}
		}
		return m, nil

	case SearchTickMsg:
		return m.onSearchTick(typed)

	case SearchResultsMsg:
		return m.onSearchResults(typed)

	case ReminderDueMsg:
		return m.onReminderDue(typed)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.CurrentView == ViewAuth {
		return m.handleAuthKey(msg)
	}
	if m.Pending.Stage != CaptureIdle {
		return m.handleCaptureKey(msg)
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, nil
	case m.Keys.Bookmarks:
		m.CurrentView = ViewBookmarks
		return m, nil
	case m.Keys.Suggestions:
		return m, suggestionsCmd(m.suggester, m.Latitude, m.Longitude)
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleTaskKey(msg)
	case ViewBookmarks:
		return m.handleBookmarkKey(msg)
	}
	return m, nil
}

// onSessionChanged applies a session transition announced by the
// controller. Transitions driven through the UI arrive here too and are
// absorbed by the equality check; the interesting case is a provider-side
// event (a token rejected mid-session, a sign-out inside the client).
func (m Model) onSessionChanged(msg SessionChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Session == m.Session {
		return m, nil
	}
	prev := m.Session
	m.Session = msg.Session

	switch msg.Session.State {
	case model.SessionAnonymous:
		if prev.State != model.SessionAnonymous {
			m = m.resetToAnonymous()
			m.Status = StatusBar{Text: "session ended, sign in again", IsError: false}
		}
		return m, nil
	case model.SessionAuthenticated:
		if m.CurrentView == ViewAuth {
			m.CurrentView = ViewTasks
		}
		return m, tea.Batch(loadTasksCmd(m.store), loadBookmarksCmd(m.store))
	}
	return m, nil
}

func (m Model) resetToAnonymous() Model {
	m.Session = m.controller.Session()
	m.store.Reset()
	m.Tasks = nil
	m.Bookmarks = nil
	m.Suggestions = nil
	m.Filter = FilterState{}
	m.Pending = PendingTask{}
	m.scheduledReminders = make(map[string]bool)
	m.CurrentView = ViewAuth
	m.emailInput.Focus()
	return m
}

func (m Model) View() string {
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewAuth:
		leftPane = m.renderAuthView()
		rightPane = m.renderHelpIfVisible()
	case ViewTasks:
		if m.Pending.Stage != CaptureIdle {
			leftPane = m.renderCaptureView()
		} else {
			leftPane = m.renderTaskView()
		}
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewBookmarks:
		leftPane = m.renderBookmarkView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewSuggestions:
		leftPane = m.renderSuggestionView()
		rightPane = m.renderHelpIfVisible()
	}

	notification := ""
	if m.spinnerActive {
		notification = "working " + m.loadSpinner.View()
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("loctodo | view: %s | session: %s", m.CurrentView, m.sessionLabel()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusText:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: %s tasks | %s bookmarks | %s suggest | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Bookmarks, m.Keys.Suggestions, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) sessionLabel() string {
	switch m.Session.State {
	case model.SessionAuthenticated:
		return m.Session.Email
	case model.SessionGuest:
		return "guest (nothing is saved)"
	default:
		return "signed out"
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewAuth, ViewTasks, ViewBookmarks, ViewSuggestions:
		return true
	default:
		return false
	}
}
