// Package gateway is the single persistence surface the UI talks to. Every
// operation branches on the session mode: authenticated operations go to
// the hosted table API and re-fetch the full list afterwards, guest
// operations mutate a memory-only store. The re-fetch after every mutation
// is deliberate: client state stays authoritative-from-server instead of
// being optimistically merged.
package gateway

import (
	"context"
	"time"

	"loctodo/internal/backend"
	"loctodo/internal/model"
)

// TableAPI is the slice of the backend client the gateway needs. Kept as
// an interface so tests can count and fake remote calls.
type TableAPI interface {
	SelectTasks(ctx context.Context) ([]backend.TaskRow, error)
	InsertTask(ctx context.Context, row backend.TaskRow) error
	UpdateTask(ctx context.Context, id string, patch map[string]any) error
	DeleteTask(ctx context.Context, id string) error
	SelectBookmarks(ctx context.Context) ([]backend.BookmarkRow, error)
	SelectBookmarksNear(ctx context.Context, lat, lon, delta float64) ([]backend.BookmarkRow, error)
	InsertBookmark(ctx context.Context, row backend.BookmarkRow) error
	DeleteBookmark(ctx context.Context, id string) error
}

// Store is what the UI layer consumes. Mutations return the refreshed list
// so callers replace their state wholesale.
type Store interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	AddTask(ctx context.Context, task model.Task) ([]model.Task, error)
	SetCompleted(ctx context.Context, task model.Task, done bool) ([]model.Task, error)
	SetReminder(ctx context.Context, task model.Task, at time.Time) ([]model.Task, error)
	MarkReminderSent(ctx context.Context, task model.Task) ([]model.Task, error)
	DeleteTask(ctx context.Context, id string) ([]model.Task, error)

	LoadBookmarks(ctx context.Context) ([]model.Bookmark, error)
	AddBookmark(ctx context.Context, bookmark model.Bookmark) ([]model.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) ([]model.Bookmark, error)
	NearbyBookmarks(ctx context.Context, lat, lon, delta float64) ([]model.Bookmark, error)

	Reset()
}

type Gateway struct {
	remote  TableAPI
	mem     *MemoryStore
	session func() model.Session
}

var _ Store = (*Gateway)(nil)

// New builds a gateway. session reports the current session mode on every
// call; the gateway itself holds no auth state.
func New(remote TableAPI, session func() model.Session) *Gateway {
	return &Gateway{remote: remote, mem: NewMemoryStore(), session: session}
}

func (g *Gateway) LoadTasks(ctx context.Context) ([]model.Task, error) {
	if !g.session().Authenticated() {
		return g.mem.Tasks(), nil
	}
	rows, err := g.remote.SelectTasks(ctx)
	if err != nil {
		return nil, err
	}
	return tasksFromRows(rows), nil
}

func (g *Gateway) AddTask(ctx context.Context, task model.Task) ([]model.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if !g.session().Authenticated() {
		g.mem.AddTask(task)
		return g.mem.Tasks(), nil
	}
	if err := g.remote.InsertTask(ctx, taskToRow(task)); err != nil {
		return nil, err
	}
	return g.LoadTasks(ctx)
}

func (g *Gateway) SetCompleted(ctx context.Context, task model.Task, done bool) ([]model.Task, error) {
	if !g.session().Authenticated() {
		g.mem.UpdateTask(task.ID, func(t *model.Task) { t.Completed = done })
		return g.mem.Tasks(), nil
	}
	if err := g.remote.UpdateTask(ctx, task.ID, map[string]any{"completed": done}); err != nil {
		return nil, err
	}
	return g.LoadTasks(ctx)
}

func (g *Gateway) SetReminder(ctx context.Context, task model.Task, at time.Time) ([]model.Task, error) {
	if !g.session().Authenticated() {
		g.mem.UpdateTask(task.ID, func(t *model.Task) {
			t.ReminderAt = &at
			t.ReminderSent = false
		})
		return g.mem.Tasks(), nil
	}
	patch := map[string]any{"reminder_time": at.UTC().Format(time.RFC3339), "reminder_sent": false}
	if err := g.remote.UpdateTask(ctx, task.ID, patch); err != nil {
		return nil, err
	}
	return g.LoadTasks(ctx)
}

func (g *Gateway) MarkReminderSent(ctx context.Context, task model.Task) ([]model.Task, error) {
	if !g.session().Authenticated() {
		g.mem.UpdateTask(task.ID, func(t *model.Task) { t.ReminderSent = true })
		return g.mem.Tasks(), nil
	}
	if err := g.remote.UpdateTask(ctx, task.ID, map[string]any{"reminder_sent": true}); err != nil {
		return nil, err
	}
	return g.LoadTasks(ctx)
}

func (g *Gateway) DeleteTask(ctx context.Context, id string) ([]model.Task, error) {
	if !g.session().Authenticated() {
		g.mem.DeleteTask(id)
		return g.mem.Tasks(), nil
	}
	if err := g.remote.DeleteTask(ctx, id); err != nil {
		return nil, err
	}
	return g.LoadTasks(ctx)
}

func (g *Gateway) LoadBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	if !g.session().Authenticated() {
		return g.mem.Bookmarks(), nil
	}
	rows, err := g.remote.SelectBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return bookmarksFromRows(rows), nil
}

func (g *Gateway) AddBookmark(ctx context.Context, bookmark model.Bookmark) ([]model.Bookmark, error) {
	if !g.session().Authenticated() {
		g.mem.AddBookmark(bookmark)
		return g.mem.Bookmarks(), nil
	}
	if err := g.remote.InsertBookmark(ctx, bookmarkToRow(bookmark)); err != nil {
		return nil, err
	}
	return g.LoadBookmarks(ctx)
}

func (g *Gateway) DeleteBookmark(ctx context.Context, id string) ([]model.Bookmark, error) {
	if !g.session().Authenticated() {
		g.mem.DeleteBookmark(id)
		return g.mem.Bookmarks(), nil
	}
	if err := g.remote.DeleteBookmark(ctx, id); err != nil {
		return nil, err
	}
	return g.LoadBookmarks(ctx)
}

func (g *Gateway) NearbyBookmarks(ctx context.Context, lat, lon, delta float64) ([]model.Bookmark, error) {
	if !g.session().Authenticated() {
		return g.mem.BookmarksNear(lat, lon, delta), nil
	}
	rows, err := g.remote.SelectBookmarksNear(ctx, lat, lon, delta)
	if err != nil {
		return nil, err
	}
	return bookmarksFromRows(rows), nil
}

// Reset discards the guest store. Called on guest entry and sign-out.
func (g *Gateway) Reset() {
	g.mem = NewMemoryStore()
}

func taskToRow(t model.Task) backend.TaskRow {
	return backend.TaskRow{
		Task:         t.Text,
		Latitude:     t.Latitude,
		Longitude:    t.Longitude,
		Completed:    t.Completed,
		ReminderTime: t.ReminderAt,
		ReminderSent: t.ReminderSent,
	}
}

func tasksFromRows(rows []backend.TaskRow) []model.Task {
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		task := model.Task{
			ID:           row.ID,
			Text:         row.Task,
			Latitude:     row.Latitude,
			Longitude:    row.Longitude,
			UserID:       row.UserID,
			Completed:    row.Completed,
			ReminderAt:   row.ReminderTime,
			ReminderSent: row.ReminderSent,
		}
		if row.CreatedAt != nil {
			task.CreatedAt = *row.CreatedAt
		}
		out = append(out, task)
	}
	return out
}

func bookmarkToRow(b model.Bookmark) backend.BookmarkRow {
	return backend.BookmarkRow{
		Name:      b.Name,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
	}
}

func bookmarksFromRows(rows []backend.BookmarkRow) []model.Bookmark {
	out := make([]model.Bookmark, 0, len(rows))
	for _, row := range rows {
		bookmark := model.Bookmark{
			ID:        row.ID,
			Name:      row.Name,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			UserID:    row.UserID,
		}
		if row.CreatedAt != nil {
			bookmark.CreatedAt = *row.CreatedAt
		}
		out = append(out, bookmark)
	}
	return out
}
