package gateway

import (
	"sort"
	"strconv"
	"time"

	"loctodo/internal/model"
)

// MemoryStore backs guest mode. Data lives only for the session and is
// discarded on sign-out or guest re-entry. Local identifiers are derived
// from the current time, which keeps them unique within a session.
type MemoryStore struct {
	tasks     []model.Task
	bookmarks []model.Bookmark
	now       func() time.Time
	lastID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

func (s *MemoryStore) localID() string {
	id := s.now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *MemoryStore) AddTask(task model.Task) model.Task {
	task.ID = s.localID()
	task.CreatedAt = s.now()
	s.tasks = append(s.tasks, task)
	return task
}

func (s *MemoryStore) UpdateTask(id string, apply func(*model.Task)) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			apply(&s.tasks[i])
			return true
		}
	}
	return false
}

func (s *MemoryStore) DeleteTask(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Tasks returns a snapshot sorted newest first, mirroring the server order.
func (s *MemoryStore) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemoryStore) AddBookmark(bookmark model.Bookmark) model.Bookmark {
	bookmark.ID = s.localID()
	bookmark.CreatedAt = s.now()
	s.bookmarks = append(s.bookmarks, bookmark)
	return bookmark
}

func (s *MemoryStore) DeleteBookmark(id string) bool {
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

// Bookmarks returns a snapshot sorted by name, mirroring the server order.
func (s *MemoryStore) Bookmarks() []model.Bookmark {
	out := make([]model.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BookmarksNear applies the same independent-range bounding box the remote
// query uses.
func (s *MemoryStore) BookmarksNear(lat, lon, delta float64) []model.Bookmark {
	out := make([]model.Bookmark, 0)
	for _, b := range s.Bookmarks() {
		if b.Latitude >= lat-delta && b.Latitude <= lat+delta &&
			b.Longitude >= lon-delta && b.Longitude <= lon+delta {
			out = append(out, b)
		}
	}
	return out
}
