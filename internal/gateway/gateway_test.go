package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"loctodo/internal/backend"
	"loctodo/internal/model"
)

// fakeAPI counts remote calls and serves canned rows.
type fakeAPI struct {
	tasks     []backend.TaskRow
	bookmarks []backend.BookmarkRow
	calls     map[string]int
	failWith  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) error {
	f.calls[name]++
	return f.failWith
}

func (f *fakeAPI) SelectTasks(context.Context) ([]backend.TaskRow, error) {
	if err := f.record("SelectTasks"); err != nil {
		return nil, err
	}
	return f.tasks, nil
}

func (f *fakeAPI) InsertTask(_ context.Context, row backend.TaskRow) error {
	if err := f.record("InsertTask"); err != nil {
		return err
	}
	now := time.Now().UTC()
	row.ID = "srv-task"
	row.CreatedAt = &now
	f.tasks = append([]backend.TaskRow{row}, f.tasks...)
	return nil
}

func (f *fakeAPI) UpdateTask(_ context.Context, id string, patch map[string]any) error {
	if err := f.record("UpdateTask"); err != nil {
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			if done, ok := patch["completed"].(bool); ok {
				f.tasks[i].Completed = done
			}
			if sent, ok := patch["reminder_sent"].(bool); ok {
				f.tasks[i].ReminderSent = sent
			}
		}
	}
	return nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, id string) error {
	if err := f.record("DeleteTask"); err != nil {
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) SelectBookmarks(context.Context) ([]backend.BookmarkRow, error) {
	if err := f.record("SelectBookmarks"); err != nil {
		return nil, err
	}
	return f.bookmarks, nil
}

func (f *fakeAPI) SelectBookmarksNear(context.Context, float64, float64, float64) ([]backend.BookmarkRow, error) {
	if err := f.record("SelectBookmarksNear"); err != nil {
		return nil, err
	}
	return f.bookmarks, nil
}

func (f *fakeAPI) InsertBookmark(_ context.Context, row backend.BookmarkRow) error {
	if err := f.record("InsertBookmark"); err != nil {
		return err
	}
	row.ID = "srv-bookmark"
	f.bookmarks = append(f.bookmarks, row)
	return nil
}

func (f *fakeAPI) DeleteBookmark(_ context.Context, id string) error {
	return f.record("DeleteBookmark")
}

func guestGateway(api TableAPI) *Gateway {
	return New(api, func() model.Session { return model.GuestSession() })
}

func authGateway(api TableAPI) *Gateway {
	return New(api, func() model.Session {
		return model.Session{State: model.SessionAuthenticated, UserID: "user-1"}
	})
}

func mustTask(t *testing.T, text, location string) model.Task {
	t.Helper()
	task, err := model.NewTask(text, location)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func TestGuestAddThenDeleteLeavesEmptyListWithoutRemoteCalls(t *testing.T) {
	api := newFakeAPI()
	gw := guestGateway(api)
	ctx := context.Background()

	tasks, err := gw.AddTask(ctx, mustTask(t, "buy milk", "Latitude: 1, Longitude: 2"))
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID == "" {
		t.Fatalf("unexpected guest task list: %#v", tasks)
	}

	tasks, err = gw.DeleteTask(ctx, tasks[0].ID)
	if err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got: %#v", tasks)
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no remote calls, got: %#v", api.calls)
	}
}

func TestGuestLocalIDsAreUnique(t *testing.T) {
	gw := guestGateway(newFakeAPI())
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tasks, err := gw.AddTask(ctx, mustTask(t, "task", "Latitude: 1, Longitude: 2"))
		if err != nil {
			t.Fatalf("add task: %v", err)
		}
		id := tasks[0].ID
		if seen[id] {
			t.Fatalf("duplicate local id: %s", id)
		}
		seen[id] = true
	}
}

func TestAuthenticatedAddReloadsFromServer(t *testing.T) {
	api := newFakeAPI()
	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	api.tasks = []backend.TaskRow{{ID: "old", Task: "existing", CreatedAt: &older}}
	gw := authGateway(api)

	tasks, err := gw.AddTask(context.Background(), mustTask(t, "buy milk", "Latitude: 1, Longitude: 2"))
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if api.calls["InsertTask"] != 1 || api.calls["SelectTasks"] != 1 {
		t.Fatalf("expected insert followed by one reload, got: %#v", api.calls)
	}
	// Server-declared ordering: the fake prepends new rows (newest first).
	if len(tasks) != 2 || tasks[0].ID != "srv-task" || tasks[1].ID != "old" {
		t.Fatalf("unexpected reloaded list: %#v", tasks)
	}
}

func TestAuthenticatedFailureLeavesStateUntouched(t *testing.T) {
	api := newFakeAPI()
	api.failWith = errors.New("network down")
	gw := authGateway(api)

	if _, err := gw.AddTask(context.Background(), mustTask(t, "x", "Latitude: 1, Longitude: 2")); err == nil {
		t.Fatal("expected remote error")
	}
	if api.calls["SelectTasks"] != 0 {
		t.Fatalf("no reload expected after a failed insert, got: %#v", api.calls)
	}
}

func TestAddTaskValidatesBeforeAnyCall(t *testing.T) {
	api := newFakeAPI()
	gw := authGateway(api)
	if _, err := gw.AddTask(context.Background(), model.Task{Text: "  "}); !errors.Is(err, model.ErrEmptyTask) {
		t.Fatalf("expected validation error, got: %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no remote calls, got: %#v", api.calls)
	}
}

func TestGuestBookmarksSortedByName(t *testing.T) {
	gw := guestGateway(newFakeAPI())
	ctx := context.Background()

	for _, name := range []string{"Office", "Gym", "Home"} {
		bm, err := model.NewBookmark(name, "Latitude: 1, Longitude: 2")
		if err != nil {
			t.Fatalf("new bookmark: %v", err)
		}
		if _, err := gw.AddBookmark(ctx, bm); err != nil {
			t.Fatalf("add bookmark: %v", err)
		}
	}

	bookmarks, err := gw.LoadBookmarks(ctx)
	if err != nil {
		t.Fatalf("load bookmarks: %v", err)
	}
	if len(bookmarks) != 3 || bookmarks[0].Name != "Gym" || bookmarks[1].Name != "Home" || bookmarks[2].Name != "Office" {
		t.Fatalf("unexpected order: %#v", bookmarks)
	}
}

func TestGuestNearbyBookmarksBoundingBox(t *testing.T) {
	gw := guestGateway(newFakeAPI())
	ctx := context.Background()

	near, _ := model.NewBookmark("Near", "Latitude: 10.005, Longitude: 20.005")
	far, _ := model.NewBookmark("Far", "Latitude: 10.5, Longitude: 20.005")
	if _, err := gw.AddBookmark(ctx, near); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}
	if _, err := gw.AddBookmark(ctx, far); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}

	got, err := gw.NearbyBookmarks(ctx, 10, 20, 0.01)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Near" {
		t.Fatalf("unexpected nearby set: %#v", got)
	}
}

func TestResetDiscardsGuestState(t *testing.T) {
	gw := guestGateway(newFakeAPI())
	ctx := context.Background()
	if _, err := gw.AddTask(ctx, mustTask(t, "x", "Latitude: 1, Longitude: 2")); err != nil {
		t.Fatalf("add task: %v", err)
	}
	gw.Reset()
	tasks, err := gw.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty store after reset, got: %#v", tasks)
	}
}
