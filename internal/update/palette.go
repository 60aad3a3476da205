package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/commands"
	"loctodo/internal/model"
	"loctodo/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			next, startCmd := m.beginLocationStage(a.Text)
			m = next.(Model)
			followUp = startCmd
			return commands.Result{Message: fmt.Sprintf("parsing: %s", a.Text)}, nil
		},
		Bookmark: func(b commands.BookmarkArgs) (commands.Result, error) {
			location := model.FormatCoordinates(m.Latitude, m.Longitude)
			bookmark, err := model.NewBookmark(b.Name, location)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.CurrentView = ViewBookmarks
			followUp = addBookmarkCmd(m.store, bookmark)
			return commands.Result{Message: fmt.Sprintf("bookmarked %s at %s", b.Name, location)}, nil
		},
		Suggest: func() (commands.Result, error) {
			followUp = suggestionsCmd(m.suggester, m.Latitude, m.Longitude)
			return commands.Result{Message: "generating suggestions"}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			if f.All {
				m.Filter = FilterState{}
				return commands.Result{Message: "filter cleared"}, nil
			}
			m.Filter = FilterState{Category: f.Category, Active: true}
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("showing %s tasks", f.Category)}, nil
		},
		Reload: func() (commands.Result, error) {
			m.spinnerActive = true
			followUp = tea.Batch(loadTasksCmd(m.store), loadBookmarksCmd(m.store), m.loadSpinner.Tick)
			return commands.Result{Message: "reloading"}, nil
		},
		SignOut: func() (commands.Result, error) {
			followUp = signOutCmd(m.controller)
			return commands.Result{Message: "signing out"}, nil
		},
		Guest: func() (commands.Result, error) {
			m.controller.EnterGuest()
			m.Session = m.controller.Session()
			m.store.Reset()
			m.Tasks = nil
			m.Bookmarks = nil
			m.CurrentView = ViewTasks
			return commands.Result{Message: "guest mode: tasks live in memory only"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, followUp
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}
