package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"loctodo/internal/model"
)

type stubSource struct {
	bookmarks []model.Bookmark
	err       error
	gotDelta  float64
}

func (s *stubSource) NearbyBookmarks(_ context.Context, _, _, delta float64) ([]model.Bookmark, error) {
	s.gotDelta = delta
	return s.bookmarks, s.err
}

func clockAt(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 28, hour, 30, 0, 0, time.UTC)
	}
}

func TestGenerateBookmarkAndTimeSuggestions(t *testing.T) {
	source := &stubSource{bookmarks: []model.Bookmark{
		{ID: "b1", Name: "Gym"},
		{ID: "b2", Name: "Office"},
	}}
	gen := NewGenerator(source, WithClock(clockAt(8)))

	got := gen.Generate(context.Background(), 10, 20)

	if source.gotDelta != ProximityDelta {
		t.Fatalf("expected delta %v, got %v", ProximityDelta, source.gotDelta)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got: %#v", got)
	}
	if got[0].Text != "Check tasks at Gym" || got[0].Category != model.CategoryLocation || got[0].Priority != model.PriorityMedium {
		t.Fatalf("unexpected bookmark suggestion: %#v", got[0])
	}
	if got[0].Context.Location != "Gym" {
		t.Fatalf("expected bookmark name in context, got: %#v", got[0].Context)
	}
	if got[2].Text != "Morning routine tasks" || got[2].Priority != model.PriorityHigh {
		t.Fatalf("unexpected time suggestion: %#v", got[2])
	}
}

func TestGenerateTimeWindows(t *testing.T) {
	cases := []struct {
		hour     int
		text     string
		category model.Category
		priority model.Priority
	}{
		{7, "Morning routine tasks", model.CategoryPersonal, model.PriorityHigh},
		{10, "Morning routine tasks", model.CategoryPersonal, model.PriorityHigh},
		{11, "Lunch break tasks", model.CategoryPersonal, model.PriorityMedium},
		{14, "Lunch break tasks", model.CategoryPersonal, model.PriorityMedium},
		{17, "Evening errands", model.CategoryErrands, model.PriorityMedium},
		{19, "Evening errands", model.CategoryErrands, model.PriorityMedium},
	}
	for _, tc := range cases {
		gen := NewGenerator(&stubSource{}, WithClock(clockAt(tc.hour)))
		got := gen.Generate(context.Background(), 0, 0)
		if len(got) != 1 {
			t.Fatalf("hour %d: expected one suggestion, got: %#v", tc.hour, got)
		}
		if got[0].Text != tc.text || got[0].Category != tc.category || got[0].Priority != tc.priority {
			t.Fatalf("hour %d: unexpected suggestion: %#v", tc.hour, got[0])
		}
	}
}

func TestGenerateOutsideWindowsYieldsNothing(t *testing.T) {
	for _, hour := range []int{0, 6, 15, 16, 20, 23} {
		gen := NewGenerator(&stubSource{}, WithClock(clockAt(hour)))
		if got := gen.Generate(context.Background(), 0, 0); len(got) != 0 {
			t.Fatalf("hour %d: expected no suggestions, got: %#v", hour, got)
		}
	}
}

func TestGenerateSourceFailureYieldsEmpty(t *testing.T) {
	srcErr := errors.New("table api down")
	var reported error
	gen := NewGenerator(
		&stubSource{err: srcErr},
		WithClock(clockAt(8)),
		WithErrorHook(func(err error) { reported = err }),
	)

	got := gen.Generate(context.Background(), 10, 20)
	if len(got) != 0 {
		t.Fatalf("expected empty list on source failure, got: %#v", got)
	}
	if !errors.Is(reported, srcErr) {
		t.Fatalf("expected hook to receive source error, got: %v", reported)
	}
}
