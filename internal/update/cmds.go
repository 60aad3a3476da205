package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"loctodo/internal/gateway"
	"loctodo/internal/model"
	"loctodo/internal/scheduler"
)

// opTimeout bounds every network call made from a tea.Cmd.
const opTimeout = 15 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func signUpCmd(ctrl SessionController, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return SignUpDoneMsg{Err: ctrl.SignUp(ctx, email, password)}
	}
}

func signInCmd(ctrl SessionController, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return SignInDoneMsg{Err: ctrl.SignIn(ctx, email, password)}
	}
}

func signOutCmd(ctrl SessionController) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return SignOutDoneMsg{Err: ctrl.SignOut(ctx)}
	}
}

func loadTasksCmd(store gateway.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		tasks, err := store.LoadTasks(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

func loadBookmarksCmd(store gateway.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		bookmarks, err := store.LoadBookmarks(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return BookmarksLoadedMsg{Bookmarks: bookmarks}
	}
}

func addTaskCmd(store gateway.Store, task model.Task) tea.Cmd {
	return taskMutationCmd(func(ctx context.Context) ([]model.Task, error) {
		return store.AddTask(ctx, task)
	})
}

func setCompletedCmd(store gateway.Store, task model.Task, done bool) tea.Cmd {
	return taskMutationCmd(func(ctx context.Context) ([]model.Task, error) {
		return store.SetCompleted(ctx, task, done)
	})
}

func setReminderCmd(store gateway.Store, task model.Task, at time.Time) tea.Cmd {
	return taskMutationCmd(func(ctx context.Context) ([]model.Task, error) {
		return store.SetReminder(ctx, task, at)
	})
}

func markReminderSentCmd(store gateway.Store, task model.Task) tea.Cmd {
	return taskMutationCmd(func(ctx context.Context) ([]model.Task, error) {
		return store.MarkReminderSent(ctx, task)
	})
}

func deleteTaskCmd(store gateway.Store, id string) tea.Cmd {
	return taskMutationCmd(func(ctx context.Context) ([]model.Task, error) {
		return store.DeleteTask(ctx, id)
	})
}

func taskMutationCmd(op func(context.Context) ([]model.Task, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		tasks, err := op(ctx)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

func addBookmarkCmd(store gateway.Store, bookmark model.Bookmark) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		bookmarks, err := store.AddBookmark(ctx, bookmark)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return BookmarksLoadedMsg{Bookmarks: bookmarks}
	}
}

func deleteBookmarkCmd(store gateway.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		bookmarks, err := store.DeleteBookmark(ctx, id)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return BookmarksLoadedMsg{Bookmarks: bookmarks}
	}
}

func suggestionsCmd(suggester Suggester, lat, lon float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return SuggestionsMsg{Suggestions: suggester.Generate(ctx, lat, lon)}
	}
}

func searchTickCmd(seq int) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return SearchTickMsg{Seq: seq}
	})
}

func searchCmd(geo GeoSearcher, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		places, err := geo.Search(ctx, query)
		return SearchResultsMsg{Seq: seq, Places: places, Err: err}
	}
}

func waitForReminderCmd(ch <-chan scheduler.Reminder) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Reminder: r}
	}
}
