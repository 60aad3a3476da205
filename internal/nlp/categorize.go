package nlp

import (
	"strings"

	"loctodo/internal/model"
)

type keywordSet struct {
	category model.Category
	keywords []string
}

// Declaration order matters: the first matching category wins.
var taskCategories = []keywordSet{
	{model.CategoryWork, []string{"meeting", "presentation", "report", "email", "client", "project", "deadline", "office"}},
	{model.CategoryShopping, []string{"buy", "purchase", "grocery", "store", "mall", "shop", "market"}},
	{model.CategoryHealth, []string{"gym", "workout", "exercise", "doctor", "appointment", "medical", "fitness"}},
	{model.CategoryPersonal, []string{"call", "visit", "meet", "family", "friend", "home"}},
	{model.CategoryErrands, []string{"bank", "post", "pickup", "drop", "delivery", "repair"}},
}

// Categorize assigns a task category by keyword membership.
func Categorize(taskText string) model.Category {
	lower := strings.ToLower(taskText)
	for _, set := range taskCategories {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.category
			}
		}
	}
	return model.CategoryOther
}
