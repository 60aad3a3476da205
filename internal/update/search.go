package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// onSearchTick fires after the debounce delay. Ticks scheduled before
// the latest keystroke carry an older sequence number and are ignored,
// so only the final quiet keystroke reaches the geocoder.
func (m Model) onSearchTick(msg SearchTickMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Search.seq {
		return m, nil
	}
	query := strings.TrimSpace(m.Search.Query)
	if query == "" {
		m.Search.Results = nil
		m.Search.Cursor = 0
		return m, nil
	}
	return m, searchCmd(m.geocoder, msg.Seq, query)
}

// onSearchResults drops responses for superseded queries. Without the
// sequence check a slow response could land after a newer one and
// clobber it.
func (m Model) onSearchResults(msg SearchResultsMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.Search.seq {
		return m, nil
	}
	if msg.Err != nil {
		m.Status = StatusBar{Text: "location search failed: " + msg.Err.Error(), IsError: true}
		return m, nil
	}
	m.Search.Results = msg.Places
	m.Search.Cursor = 0
	return m, nil
}
