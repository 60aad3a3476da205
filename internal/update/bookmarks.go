package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/views"
)

func (m Model) handleBookmarkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "d":
		bookmark, ok := m.selectedBookmark()
		if !ok {
			return m, nil
		}
		return m, deleteBookmarkCmd(m.store, bookmark.ID)
	case "r":
		m.spinnerActive = true
		return m, tea.Batch(loadBookmarksCmd(m.store), m.loadSpinner.Tick)
	}

	var cmd tea.Cmd
	m.bookmarkList, cmd = m.bookmarkList.Update(msg)
	return m, cmd
}

func (m Model) renderBookmarkView() string {
	return views.RenderBookmarkPanel(views.BookmarkPanelData{
		ListView: m.bookmarkList.View(),
		Count:    len(m.Bookmarks),
	})
}

func (m Model) renderSuggestionView() string {
	items := make([]views.SuggestionData, 0, len(m.Suggestions))
	for _, s := range m.Suggestions {
		items = append(items, views.SuggestionData{
			Text:     s.Text,
			Category: string(s.Category),
			Priority: string(s.Priority),
			Time:     s.Context.Time,
			Location: s.Context.Location,
		})
	}
	return views.RenderSuggestionPanel(views.SuggestionPanelData{Items: items})
}
