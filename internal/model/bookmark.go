package model

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyBookmarkName = errors.New("model: bookmark name is required")

// Bookmark is a saved location. Names are unique by convention only.
type Bookmark struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	UserID    string
	CreatedAt time.Time
}

func NewBookmark(name, location string) (Bookmark, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return Bookmark{}, ErrEmptyBookmarkName
	}
	if location == "" {
		return Bookmark{}, ErrEmptyLocation
	}
	lat, lon, err := ParseCoordinates(location)
	if err != nil {
		return Bookmark{}, err
	}
	return Bookmark{Name: name, Latitude: lat, Longitude: lon}, nil
}
