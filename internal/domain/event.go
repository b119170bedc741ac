package domain

// Event is a volunteering opportunity. Volunteers holds user ids as a set:
// a given id appears at most once, and there is no leave operation.
type Event struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	Location       string   `json:"location"`
	RequiredSkills []string `json:"requiredSkills"`
	Description    string   `json:"description"`
	Volunteers     []string `json:"volunteers"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Address        string   `json:"address"`
}

// HasVolunteer reports whether the user id is already on the roster.
func (e Event) HasVolunteer(userID string) bool {
	for _, id := range e.Volunteers {
		if id == userID {
			return true
		}
	}
	return false
}
