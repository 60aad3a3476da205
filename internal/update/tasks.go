package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/model"
	"loctodo/internal/nlp"
	"loctodo/internal/views"
)

// defaultReminderLead is how far out the quick "remind me" key schedules.
const defaultReminderLead = 30 * time.Minute

func (m Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.Pending = PendingTask{Stage: CaptureText}
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		m.Status = StatusBar{Text: "describe the task in plain words", IsError: false}
		return m, nil
	case " ", "x":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, setCompletedCmd(m.store, task, !task.Completed)
	case "d":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if m.Scheduler != nil {
			m.Scheduler.Cancel(task.ID)
		}
		delete(m.scheduledReminders, task.ID)
		return m, deleteTaskCmd(m.store, task.ID)
	case "m":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		at := time.Now().UTC().Add(defaultReminderLead)
		m.Status = StatusBar{Text: fmt.Sprintf("reminder set for %s", at.Format("15:04")), IsError: false}
		return m, setReminderCmd(m.store, task, at)
	case "r":
		m.spinnerActive = true
		return m, tea.Batch(loadTasksCmd(m.store), loadBookmarksCmd(m.store), m.loadSpinner.Tick)
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Pending.Stage {
	case CaptureText:
		return m.handleCaptureTextKey(msg)
	case CaptureLocation:
		return m.handleCaptureLocationKey(msg)
	}
	return m, nil
}

func (m Model) handleCaptureTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Pending = PendingTask{}
		m.taskInput.Blur()
		m.Status = StatusBar{Text: "task entry cancelled", IsError: false}
		return m, nil
	case "enter":
		return m.beginLocationStage(m.taskInput.Value())
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

// beginLocationStage runs the free text through the parser and moves to
// the location step. An extracted location phrase seeds the search box.
func (m Model) beginLocationStage(raw string) (tea.Model, tea.Cmd) {
	extraction := nlp.Process(raw)
	if extraction.Task == "" {
		m.Status = StatusBar{Text: model.ErrEmptyTask.Error(), IsError: true}
		return m, nil
	}
	priority, _ := nlp.AnalyzeContext(raw)
	m.Pending.Stage = CaptureLocation
	m.Pending.Text = extraction.Task
	m.Pending.Time = extraction.Time
	m.Pending.Place = extraction.Location
	m.Pending.Priority = priority
	m.taskInput.Blur()
	m.searchInput.SetValue(extraction.Location)
	m.searchInput.Focus()
	m.Search = SearchState{Query: extraction.Location, seq: m.Search.seq}
	m.Status = StatusBar{Text: "pick a place or type Latitude: X, Longitude: Y", IsError: false}

	if extraction.Location != "" {
		m.Search.seq++
		return m, searchTickCmd(m.Search.seq)
	}
	return m, nil
}

func (m Model) handleCaptureLocationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Pending = PendingTask{}
		m.Search = SearchState{seq: m.Search.seq}
		m.searchInput.Blur()
		m.Status = StatusBar{Text: "task entry cancelled", IsError: false}
		return m, nil
	case "up", "ctrl+p":
		if m.Search.Cursor > 0 {
			m.Search.Cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.Search.Cursor < len(m.Search.Results)-1 {
			m.Search.Cursor++
		}
		return m, nil
	case "enter":
		return m.commitPendingTask()
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.Search.Query = m.searchInput.Value()
		m.Search.seq++
		return m, tea.Batch(cmd, searchTickCmd(m.Search.seq))
	}
	return m, cmd
}

func (m Model) commitPendingTask() (tea.Model, tea.Cmd) {
	location := ""
	raw := m.searchInput.Value()
	if _, _, err := model.ParseCoordinates(raw); err == nil {
		location = raw
	} else if len(m.Search.Results) > 0 {
		place := m.Search.Results[m.Search.Cursor]
		location = model.FormatCoordinates(place.Latitude, place.Longitude)
	} else {
		m.Status = StatusBar{Text: model.ErrEmptyLocation.Error(), IsError: true}
		return m, nil
	}

	task, err := model.NewTask(m.Pending.Text, location)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	m.Pending = PendingTask{}
	m.Search = SearchState{seq: m.Search.seq}
	m.searchInput.Blur()
	m.searchInput.SetValue("")
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text), IsError: false}
	return m, addTaskCmd(m.store, task)
}

func (m Model) renderTaskView() string {
	filter := "all"
	if m.Filter.Active {
		filter = string(m.Filter.Category)
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		ListView: m.taskList.View(),
		Filter:   filter,
		Total:    len(m.Tasks),
		Shown:    len(m.visibleTasks()),
	})
}

func (m Model) renderCaptureView() string {
	results := make([]views.SearchResultData, 0, len(m.Search.Results))
	for _, p := range m.Search.Results {
		results = append(results, views.SearchResultData{
			DisplayName: p.DisplayName,
			Coordinates: model.FormatCoordinates(p.Latitude, p.Longitude),
		})
	}
	return views.RenderCapturePanel(views.CapturePanelData{
		Stage:      int(m.Pending.Stage),
		TaskInput:  m.taskInput.View(),
		TaskText:   m.Pending.Text,
		TimeHint:   m.Pending.Time,
		PlaceHint:  m.Pending.Place,
		Priority:   string(m.Pending.Priority),
		WhereInput: m.searchInput.View(),
		Results:    results,
		Cursor:     m.Search.Cursor,
	})
}
