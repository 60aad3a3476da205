package model

type Category string

const (
	CategoryWork     Category = "work"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryPersonal Category = "personal"
	CategoryErrands  Category = "errands"
	CategoryLocation Category = "location"
	CategoryOther    Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryShopping, CategoryHealth, CategoryPersonal,
		CategoryErrands, CategoryLocation, CategoryOther:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// SuggestionContext carries the optional hints attached to a suggestion.
type SuggestionContext struct {
	Time     string
	Location string
	Urgency  bool
}

// Suggestion is ephemeral: generated on demand, shown, never stored.
type Suggestion struct {
	Text     string
	Category Category
	Priority Priority
	Context  SuggestionContext
}
