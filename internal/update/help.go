package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"loctodo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `# loctodo

Tasks remember **where** they belong. Describe one in plain words and
the parser pulls out the time and the place:

` + "```" + `
/add buy milk at the store at 5pm
` + "```" + `

Guest mode keeps everything in memory; sign in to sync.

Commands: /add, /bookmark, /suggest, /filter, /reload, /signout, /guest
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		Markdown:    views.RenderMarkdown(helpMarkdown),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Bookmarks, Action: "switch to Bookmarks"},
		{Key: m.Keys.Suggestions, Action: "generate suggestions"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewAuth:
		return []KeyBinding{
			{Key: "tab", Action: "switch field"},
			{Key: "enter", Action: "sign in"},
			{Key: "ctrl+s", Action: "register"},
			{Key: "ctrl+g", Action: "continue as guest"},
		}
	case ViewTasks:
		return []KeyBinding{
			{Key: "n", Action: "new task"},
			{Key: "space/x", Action: "toggle done"},
			{Key: "m", Action: "remind me in 30 minutes"},
			{Key: "d", Action: "delete task"},
			{Key: "r", Action: "reload"},
			{Key: "j/k", Action: "move selection"},
		}
	case ViewBookmarks:
		return []KeyBinding{
			{Key: "d", Action: "delete bookmark"},
			{Key: "r", Action: "reload"},
			{Key: "j/k", Action: "move selection"},
		}
	case ViewSuggestions:
		return []KeyBinding{
			{Key: m.Keys.Suggestions, Action: "regenerate"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
