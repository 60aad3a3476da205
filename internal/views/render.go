package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one full frame: a title bar, two panes side by side, the
// status line and the key hints.
type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusText   string
	StatusError  bool
	Notification string
	Footer       string
}

const paneWidth = 62

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	noticeStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(lipgloss.Color("214"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

func RenderApp(data AppData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Header))
	b.WriteString("\n")

	left := paneStyle.Width(paneWidth).Render(data.LeftPane)
	if data.RightPane != "" {
		right := paneStyle.Width(paneWidth).Render(data.RightPane)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(left)
	}
	b.WriteString("\n")

	if data.StatusText != "" {
		if data.StatusError {
			b.WriteString(alertStyle.Render("! " + data.StatusText))
		} else {
			b.WriteString(okStyle.Render(data.StatusText))
		}
		b.WriteString("\n")
	}
	if data.Notification != "" {
		b.WriteString(noticeStyle.Render(data.Notification))
		b.WriteString("\n")
	}
	if data.Footer != "" {
		b.WriteString(hintStyle.Render(data.Footer))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(paneWidth-4),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
