package nlp

import (
	"regexp"

	"loctodo/internal/model"
)

// ContextSignals records which of the three fixed pattern types matched.
type ContextSignals struct {
	Time     bool
	Location bool
	Urgency  bool
}

type contextualPattern struct {
	kind    string
	pattern *regexp.Regexp
	weight  int
}

var contextualPatterns = []contextualPattern{
	{"time", regexp.MustCompile(`(?i)\b(morning|afternoon|evening|tonight|today|tomorrow)\b`), 2},
	{"location", regexp.MustCompile(`(?i)\b(at|in|near|by)\b`), 1},
	{"urgency", regexp.MustCompile(`(?i)\b(urgent|asap|important|priority)\b`), 2},
}

// AnalyzeContext scores the task text against the three patterns. Each
// match adds its fixed weight; a total of 3 or more is high priority, 1 or
// more is medium, otherwise low. Heuristic constants, not a classifier.
func AnalyzeContext(taskText string) (model.Priority, ContextSignals) {
	signals := ContextSignals{}
	score := 0
	for _, cp := range contextualPatterns {
		if !cp.pattern.MatchString(taskText) {
			continue
		}
		score += cp.weight
		switch cp.kind {
		case "time":
			signals.Time = true
		case "location":
			signals.Location = true
		case "urgency":
			signals.Urgency = true
		}
	}
	switch {
	case score >= 3:
		return model.PriorityHigh, signals
	case score >= 1:
		return model.PriorityMedium, signals
	default:
		return model.PriorityLow, signals
	}
}
