package domain

// Category enumerates the closed set of campaign categories.
type Category string

const (
	CategoryEducation      Category = "Education"
	CategoryEnvironment    Category = "Environment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryDisasterRelief Category = "Disaster Relief"
)

// Valid reports whether the category is one of the recognized values.
func (c Category) Valid() bool {
	switch c {
	case CategoryEducation, CategoryEnvironment, CategoryHealthcare, CategoryDisasterRelief:
		return true
	}
	return false
}

// Campaign is a funding initiative. Raised is mutated only by the donate
// transition and always equals the sum of matching donation amounts; it may
// exceed Target, which represents over-funding and is allowed.
type Campaign struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Target      float64  `json:"target"`
	Raised      float64  `json:"raised"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Address     string   `json:"address"`
}
