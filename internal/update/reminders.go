package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/model"
	"loctodo/internal/scheduler"
)

// scheduleLoadedReminders queues every loaded task with a set, unsent
// reminder. Already-queued tasks are skipped so a reload does not double
// up; tasks whose reminder was cleared server-side are cancelled.
func (m *Model) scheduleLoadedReminders() tea.Cmd {
	if m.Scheduler == nil {
		return nil
	}

	present := make(map[string]bool, len(m.Tasks))
	for _, t := range m.Tasks {
		if t.ReminderAt == nil || t.ReminderSent || t.Completed {
			continue
		}
		present[t.ID] = true
		if m.scheduledReminders[t.ID] {
			continue
		}
		err := m.Scheduler.Schedule(scheduler.Reminder{
			TaskID:    t.ID,
			Text:      t.Text,
			TriggerAt: *t.ReminderAt,
		})
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("reminder scheduling failed: %v", err), IsError: true}
			continue
		}
		m.scheduledReminders[t.ID] = true
	}

	for id := range m.scheduledReminders {
		if !present[id] {
			m.Scheduler.Cancel(id)
			delete(m.scheduledReminders, id)
		}
	}
	return nil
}

func (m Model) onReminderDue(msg ReminderDueMsg) (tea.Model, tea.Cmd) {
	delete(m.scheduledReminders, msg.Reminder.TaskID)
	m.Status = StatusBar{
		Text: fmt.Sprintf("reminder: %s (due %s)", msg.Reminder.Text, msg.Reminder.TriggerAt.Format(time.Kitchen)),
	}

	cmds := []tea.Cmd{}
	if task, ok := m.taskByID(msg.Reminder.TaskID); ok && !task.ReminderSent {
		cmds = append(cmds, markReminderSentCmd(m.store, task))
	}
	if m.Scheduler != nil {
		if wait := waitForReminderCmd(m.Scheduler.C()); wait != nil {
			cmds = append(cmds, wait)
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) taskByID(id string) (model.Task, bool) {
	for _, task := range m.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}
