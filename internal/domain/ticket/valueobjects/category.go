package valueobjects

import "fmt"

// Category determines which transition table and which fields (assignee,
// resolution, rejection reason) apply to a ticket. It is immutable after
// creation.
type Category string

const (
	CategoryComplaint  Category = "complaint"
	CategorySuggestion Category = "suggestion"
)

var validCategories = map[Category]bool{
	CategoryComplaint:  true,
	CategorySuggestion: true,
}

// categoryPrefixes maps each category to its ticket number prefix.
var categoryPrefixes = map[Category]string{
	CategoryComplaint:  "CMP",
	CategorySuggestion: "SGT",
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func (c Category) IsComplaint() bool {
	return c == CategoryComplaint
}

func (c Category) IsSuggestion() bool {
	return c == CategorySuggestion
}

// NumberPrefix returns the ticket number prefix for the category.
func (c Category) NumberPrefix() string {
	return categoryPrefixes[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
