// Package suggest produces contextual task suggestions from the user's
// surroundings: bookmarks within a small bounding box of the current
// position, plus at most one time-of-day prompt.
package suggest

import (
	"context"
	"time"

	"loctodo/internal/model"
)

// ProximityDelta is the half-width, in degrees, of the bounding box used
// to find nearby bookmarks. Latitude and longitude ranges are filtered
// independently, so the region is a box, not a circle.
const ProximityDelta = 0.01

// BookmarkSource yields bookmarks near a coordinate. The persistence
// gateway satisfies this.
type BookmarkSource interface {
	NearbyBookmarks(ctx context.Context, lat, lon, delta float64) ([]model.Bookmark, error)
}

type Generator struct {
	source  BookmarkSource
	now     func() time.Time
	onError func(error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source. Tests use this to pin the
// time-of-day window.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithErrorHook installs a callback for bookmark-lookup failures. The
// failure itself never propagates; suggestions degrade to empty.
func WithErrorHook(fn func(error)) Option {
	return func(g *Generator) { g.onError = fn }
}

func NewGenerator(source BookmarkSource, opts ...Option) *Generator {
	g := &Generator{
		source:  source,
		now:     time.Now,
		onError: func(error) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the suggestion list for a position: one entry per
// nearby bookmark, then the time-of-day prompt if the current hour falls
// in a window. A bookmark lookup failure reports through the error hook
// and returns an empty list rather than failing the caller.
func (g *Generator) Generate(ctx context.Context, lat, lon float64) []model.Suggestion {
	bookmarks, err := g.source.NearbyBookmarks(ctx, lat, lon, ProximityDelta)
	if err != nil {
		g.onError(err)
		return []model.Suggestion{}
	}

	suggestions := make([]model.Suggestion, 0, len(bookmarks)+1)
	for _, b := range bookmarks {
		suggestions = append(suggestions, model.Suggestion{
			Text:     "Check tasks at " + b.Name,
			Category: model.CategoryLocation,
			Priority: model.PriorityMedium,
			Context:  model.SuggestionContext{Location: b.Name},
		})
	}

	if s, ok := timeOfDaySuggestion(g.now().Hour()); ok {
		suggestions = append(suggestions, s)
	}
	return suggestions
}

// timeOfDaySuggestion maps an hour to its window. Bounds are inclusive;
// the gaps (e.g. 15-16) intentionally produce nothing.
func timeOfDaySuggestion(hour int) (model.Suggestion, bool) {
	switch {
	case hour >= 7 && hour <= 10:
		return model.Suggestion{
			Text:     "Morning routine tasks",
			Category: model.CategoryPersonal,
			Priority: model.PriorityHigh,
			Context:  model.SuggestionContext{Time: "morning"},
		}, true
	case hour >= 11 && hour <= 14:
		return model.Suggestion{
			Text:     "Lunch break tasks",
			Category: model.CategoryPersonal,
			Priority: model.PriorityMedium,
			Context:  model.SuggestionContext{Time: "lunch"},
		}, true
	case hour >= 17 && hour <= 19:
		return model.Suggestion{
			Text:     "Evening errands",
			Category: model.CategoryErrands,
			Priority: model.PriorityMedium,
			Context:  model.SuggestionContext{Time: "evening"},
		}, true
	}
	return model.Suggestion{}, false
}
