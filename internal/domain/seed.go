package domain

// Seed data for fresh installs. The registry always contains these entries
// unless a persisted entry shares the same lower-cased email, in which case
// the persisted entry wins.

// SeedUsers returns the fixed demo accounts.
func SeedUsers() []User {
	return []User{
		{
			ID:         "u-admin",
			Email:      "admin@ngo.com",
			Name:       "Sarah NGO",
			Role:       RoleAdmin,
			Credential: "admin123",
			Avatar:     "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah",
			City:       "San Francisco",
			State:      "CA",
			Pincode:    "94105",
		},
		{
			ID:         "u-donor",
			Email:      "donor@gmail.com",
			Name:       "John Doe",
			Role:       RoleDonor,
			Credential: "password",
			Avatar:     "https://api.dicebear.com/7.x/avataaars/svg?seed=John",
			City:       "New York",
			State:      "NY",
			Pincode:    "10001",
		},
		{
			ID:         "u-volunteer",
			Email:      "volunteer@gmail.com",
			Name:       "Jane Smith",
			Role:       RoleVolunteer,
			Credential: "password",
			Skills:     []string{"Teaching", "Logistics"},
			Bio:        "Passionate about community service and education.",
			Avatar:     "https://api.dicebear.com/7.x/avataaars/svg?seed=Jane",
			City:       "San Francisco",
			State:      "CA",
			Pincode:    "94107",
		},
	}
}

// SeedCampaigns returns the starter fundraising campaigns.
func SeedCampaigns() []Campaign {
	return []Campaign{
		{
			ID:          "c1",
			Title:       "Safe Water for All",
			Description: "Providing clean drinking water to remote villages in sub-Saharan Africa.",
			Target:      50000,
			Raised:      32400,
			Image:       "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?auto=format&fit=crop&q=80&w=800",
			Category:    CategoryHealthcare,
			City:        "San Francisco",
			State:       "CA",
			Address:     "123 Market St, Financial District",
		},
		{
			ID:          "c2",
			Title:       "Education for Every Child",
			Description: "Building digital classrooms and providing tablets for underprivileged students.",
			Target:      75000,
			Raised:      12000,
			Image:       "https://images.unsplash.com/photo-1509062522246-3755977927d7?auto=format&fit=crop&q=80&w=800",
			Category:    CategoryEducation,
			City:        "New York",
			State:       "NY",
			Address:     "456 Broadway Ave, Manhattan",
		},
		{
			ID:          "c3",
			Title:       "Reforest the Amazon",
			Description: "Help us plant 10,000 native trees to restore critical wildlife habitats.",
			Target:      20000,
			Raised:      18500,
			Image:       "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?auto=format&fit=crop&q=80&w=800",
			Category:    CategoryEnvironment,
			City:        "Austin",
			State:       "TX",
			Address:     "789 Congress Ave, Downtown",
		},
	}
}

// SeedEvents returns the starter volunteering events.
func SeedEvents() []Event {
	return []Event{
		{
			ID:             "e1",
			Title:          "Weekend Food Drive",
			Date:           "2024-11-20",
			Location:       "Community Center",
			RequiredSkills: []string{"Logistics", "Teamwork"},
			Description:    "Help us sort and pack food donations for local families.",
			Volunteers:     []string{},
			City:           "San Francisco",
			State:          "CA",
			Address:        "555 Mission Bay Blvd",
		},
		{
			ID:             "e2",
			Title:          "Virtual Tutoring: Math",
			Date:           "2024-11-22",
			Location:       "Remote (Zoom)",
			RequiredSkills: []string{"Teaching", "Mathematics"},
			Description:    "Tutor high school students in basic calculus and algebra.",
			Volunteers:     []string{},
			City:           "San Francisco",
			State:          "CA",
			Address:        "HQ - 101 California St",
		},
	}
}
