package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyTask         = errors.New("model: task text is required")
	ErrEmptyLocation     = errors.New("model: location text is required")
	ErrMalformedLocation = errors.New("model: location text has no coordinates")
)

// coordPattern matches the location strings the coordinate picker and the
// geocoder write into the location field, e.g.
// "Latitude: 51.5074, Longitude: -0.1278".
var coordPattern = regexp.MustCompile(`Latitude:\s*(-?\d+(?:\.\d+)?)\s*,\s*Longitude:\s*(-?\d+(?:\.\d+)?)`)

type Task struct {
	ID           string
	Text         string
	Latitude     float64
	Longitude    float64
	UserID       string
	Completed    bool
	ReminderAt   *time.Time
	ReminderSent bool
	CreatedAt    time.Time
}

// NewTask builds a task from the two raw input fields. Both must be
// non-empty after trimming, and the location text must carry coordinates.
func NewTask(text, location string) (Task, error) {
	text = strings.TrimSpace(text)
	location = strings.TrimSpace(location)
	if text == "" {
		return Task{}, ErrEmptyTask
	}
	if location == "" {
		return Task{}, ErrEmptyLocation
	}
	lat, lon, err := ParseCoordinates(location)
	if err != nil {
		return Task{}, err
	}
	return Task{Text: text, Latitude: lat, Longitude: lon}, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTask
	}
	return nil
}

// ParseCoordinates extracts the decimal-degree pair from a location string.
func ParseCoordinates(location string) (lat, lon float64, err error) {
	match := coordPattern.FindStringSubmatch(location)
	if match == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedLocation, location)
	}
	lat, err = strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedLocation, location)
	}
	lon, err = strconv.ParseFloat(match[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedLocation, location)
	}
	return lat, lon, nil
}

// FormatCoordinates renders a coordinate pair in the canonical location
// field format understood by ParseCoordinates.
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("Latitude: %s, Longitude: %s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)
}
