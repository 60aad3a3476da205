package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TaskRow mirrors the hosted tasks table.
type TaskRow struct {
	ID           string     `json:"id,omitempty"`
	Task         string     `json:"task"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	UserID       string     `json:"user_id,omitempty"`
	Completed    bool       `json:"completed"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
	ReminderSent bool       `json:"reminder_sent"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// BookmarkRow mirrors the hosted location_bookmarks table.
type BookmarkRow struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	UserID    string     `json:"user_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

const (
	tasksTable     = "tasks"
	bookmarksTable = "location_bookmarks"
)

var writePrefer = map[string]string{"Prefer": "return=minimal"}

func (c *Client) restPath(table string) string {
	return "/rest/v1/" + table
}

func (c *Client) ownerFilter() (url.Values, error) {
	session := c.CurrentSession()
	if session == nil {
		return nil, ErrNoSession
	}
	query := url.Values{}
	query.Set("user_id", "eq."+session.UserID)
	return query, nil
}

// SelectTasks fetches all tasks owned by the current session, newest first.
func (c *Client) SelectTasks(ctx context.Context) ([]TaskRow, error) {
	query, err := c.ownerFilter()
	if err != nil {
		return nil, err
	}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	var rows []TaskRow
	if err := c.do(ctx, http.MethodGet, c.restPath(tasksTable), query, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	return rows, nil
}

func (c *Client) InsertTask(ctx context.Context, row TaskRow) error {
	session := c.CurrentSession()
	if session == nil {
		return ErrNoSession
	}
	row.UserID = session.UserID
	if err := c.do(ctx, http.MethodPost, c.restPath(tasksTable), nil, writePrefer, []TaskRow{row}, nil); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// UpdateTask patches the given columns on one task row.
func (c *Client) UpdateTask(ctx context.Context, id string, patch map[string]any) error {
	query, err := c.ownerFilter()
	if err != nil {
		return err
	}
	query.Set("id", "eq."+id)
	if err := c.do(ctx, http.MethodPatch, c.restPath(tasksTable), query, writePrefer, patch, nil); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	query, err := c.ownerFilter()
	if err != nil {
		return err
	}
	query.Set("id", "eq."+id)
	if err := c.do(ctx, http.MethodDelete, c.restPath(tasksTable), query, writePrefer, nil, nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// SelectBookmarks fetches all bookmarks owned by the current session,
// ordered by name.
func (c *Client) SelectBookmarks(ctx context.Context) ([]BookmarkRow, error) {
	query, err := c.ownerFilter()
	if err != nil {
		return nil, err
	}
	query.Set("select", "*")
	query.Set("order", "name.asc")
	var rows []BookmarkRow
	if err := c.do(ctx, http.MethodGet, c.restPath(bookmarksTable), query, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("select bookmarks: %w", err)
	}
	return rows, nil
}

// SelectBookmarksNear fetches bookmarks inside the bounding box of
// ±delta degrees around the point, using independent range filters.
func (c *Client) SelectBookmarksNear(ctx context.Context, lat, lon, delta float64) ([]BookmarkRow, error) {
	query, err := c.ownerFilter()
	if err != nil {
		return nil, err
	}
	query.Set("select", "*")
	query.Set("latitude", "gte."+formatCoord(lat-delta))
	query.Add("latitude", "lte."+formatCoord(lat+delta))
	query.Set("longitude", "gte."+formatCoord(lon-delta))
	query.Add("longitude", "lte."+formatCoord(lon+delta))
	var rows []BookmarkRow
	if err := c.do(ctx, http.MethodGet, c.restPath(bookmarksTable), query, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("select nearby bookmarks: %w", err)
	}
	return rows, nil
}

func (c *Client) InsertBookmark(ctx context.Context, row BookmarkRow) error {
	session := c.CurrentSession()
	if session == nil {
		return ErrNoSession
	}
	row.UserID = session.UserID
	if err := c.do(ctx, http.MethodPost, c.restPath(bookmarksTable), nil, writePrefer, []BookmarkRow{row}, nil); err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	query, err := c.ownerFilter()
	if err != nil {
		return err
	}
	query.Set("id", "eq."+id)
	if err := c.do(ctx, http.MethodDelete, c.restPath(bookmarksTable), query, writePrefer, nil, nil); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
