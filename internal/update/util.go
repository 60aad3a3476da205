package update

import (
	"loctodo/internal/model"
	"loctodo/internal/nlp"
)

// categoryOf derives a task's category from its text. Categories are
// never stored, so filtering recomputes them on demand.
func categoryOf(t model.Task) model.Category {
	return nlp.Categorize(t.Text)
}
