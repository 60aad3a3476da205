package views

import (
	"fmt"
	"strings"
)

type AuthPanelData struct {
	EmailView    string
	PasswordView string
	Busy         bool
}

type TaskPanelData struct {
	ListView string
	Filter   string
	Total    int
	Shown    int
}

type BookmarkPanelData struct {
	ListView string
	Count    int
}

type SuggestionData struct {
	Text     string
	Category string
	Priority string
	Time     string
	Location string
}

type SuggestionPanelData struct {
	Items []SuggestionData
}

type SearchResultData struct {
	DisplayName string
	Coordinates string
}

type CapturePanelData struct {
	Stage      int
	TaskInput  string
	TaskText   string
	TimeHint   string
	PlaceHint  string
	Priority   string
	WhereInput string
	Results    []SearchResultData
	Cursor     int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	Markdown    string
	HelpView    string
}

func RenderAuthPanel(data AuthPanelData) string {
	var b strings.Builder
	b.WriteString("sign in:\n")
	b.WriteString(data.EmailView + "\n")
	b.WriteString(data.PasswordView + "\n")
	b.WriteString("actions: [enter]sign in [ctrl+s]register [ctrl+g]guest\n")
	if data.Busy {
		b.WriteString("working...\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("filter: %s (%d of %d)\n", data.Filter, data.Shown, data.Total))
	b.WriteString("actions: [n]new [space]done [m]remind [d]delete [r]reload\n")
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderBookmarkPanel(data BookmarkPanelData) string {
	var b strings.Builder
	b.WriteString("bookmarks:\n")
	b.WriteString(fmt.Sprintf("saved places: %d\n", data.Count))
	b.WriteString("actions: [d]delete [r]reload | /bookmark <name> saves here\n")
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderSuggestionPanel(data SuggestionPanelData) string {
	var b strings.Builder
	b.WriteString("suggestions:\n")
	if len(data.Items) == 0 {
		b.WriteString("nothing nearby and no time window active\n")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		b.WriteString(fmt.Sprintf("- %s [%s/%s]", item.Text, item.Category, item.Priority))
		hints := make([]string, 0, 2)
		if item.Time != "" {
			hints = append(hints, "time: "+item.Time)
		}
		if item.Location != "" {
			hints = append(hints, "near: "+item.Location)
		}
		if len(hints) > 0 {
			b.WriteString(" (" + strings.Join(hints, ", ") + ")")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCapturePanel(data CapturePanelData) string {
	var b strings.Builder
	b.WriteString("new task:\n")
	if data.Stage <= 1 {
		b.WriteString(data.TaskInput + "\n")
		b.WriteString("actions: [enter]next [esc]cancel\n")
		return strings.TrimSpace(b.String())
	}

	b.WriteString(fmt.Sprintf("task: %s\n", data.TaskText))
	if data.TimeHint != "" {
		b.WriteString(fmt.Sprintf("when: %s\n", data.TimeHint))
	}
	if data.PlaceHint != "" {
		b.WriteString(fmt.Sprintf("place: %s\n", data.PlaceHint))
	}
	if data.Priority != "" {
		b.WriteString(fmt.Sprintf("priority: %s\n", data.Priority))
	}
	b.WriteString(data.WhereInput + "\n")
	b.WriteString("actions: [up/down]pick [enter]save [esc]cancel\n")
	for i, r := range data.Results {
		marker := "  "
		if i == data.Cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s (%s)\n", marker, r.DisplayName, r.Coordinates))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command:\n" + input + "\n"
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", data.CurrentView))
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView + "\n")
	}
	if data.Markdown != "" {
		b.WriteString(data.Markdown + "\n")
	}
	return strings.TrimSpace(b.String())
}
