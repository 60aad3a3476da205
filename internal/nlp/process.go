// Package nlp extracts task text, an optional location phrase and an
// optional time phrase from free-form input, and scores task text with
// fixed keyword heuristics.
package nlp

import (
	"regexp"
	"strings"
)

var (
	timePattern     = regexp.MustCompile(`(?i)\b(at|on|by)\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|\w+day|\d{1,2}(?:st|nd|rd|th)?)\b`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:at|in|near|by)\s+([^,.]+)`)
)

type Extraction struct {
	Task     string
	Location string
	Time     string
}

// Process applies the time and location phrase patterns to the input. Both
// phrases are captured from the original text; the task text is the input
// with the first time span removed and the first location span stripped
// from the remainder. Later repeats of either phrase stay in the task
// text. The trigger words overlap, so overlapping spans can strip extra
// words from the task text. That artifact is kept as-is.
func Process(input string) Extraction {
	out := Extraction{}
	if m := timePattern.FindStringSubmatch(input); m != nil {
		out.Time = strings.TrimSpace(m[2])
	}
	if m := locationPattern.FindStringSubmatch(input); m != nil {
		out.Location = strings.TrimSpace(m[1])
	}
	task := stripFirst(timePattern, input)
	task = stripFirst(locationPattern, task)
	out.Task = strings.TrimSpace(task)
	return out
}

func stripFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
