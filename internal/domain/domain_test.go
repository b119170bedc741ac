package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Donor@Gmail.COM "); got != "donor@gmail.com" {
		t.Fatalf("normalized = %q", got)
	}
	u := User{Email: "ADMIN@ngo.com"}
	if u.EmailKey() != "admin@ngo.com" {
		t.Fatalf("key = %q", u.EmailKey())
	}
}

func TestRoleAndCategoryValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleDonor, RoleVolunteer} {
		if !r.Valid() {
			t.Errorf("role %q must be valid", r)
		}
	}
	if Role("SUPERUSER").Valid() {
		t.Error("unknown role accepted")
	}
	for _, c := range []Category{CategoryEducation, CategoryEnvironment, CategoryHealthcare, CategoryDisasterRelief} {
		if !c.Valid() {
			t.Errorf("category %q must be valid", c)
		}
	}
	if Category("Fashion").Valid() {
		t.Error("unknown category accepted")
	}
}

func TestEventHasVolunteer(t *testing.T) {
	e := Event{Volunteers: []string{"u-1", "u-2"}}
	if !e.HasVolunteer("u-2") {
		t.Fatal("roster member not found")
	}
	if e.HasVolunteer("u-3") {
		t.Fatal("non-member reported present")
	}
	if (Event{}).HasVolunteer("u-1") {
		t.Fatal("empty roster reported a member")
	}
}

func TestSeedDataShape(t *testing.T) {
	users := SeedUsers()
	if len(users) != 3 {
		t.Fatalf("seed users = %d", len(users))
	}
	seen := make(map[string]bool)
	for _, u := range users {
		if !u.Role.Valid() {
			t.Errorf("seed user %s has invalid role %q", u.ID, u.Role)
		}
		if seen[u.EmailKey()] {
			t.Errorf("duplicate seed email %q", u.Email)
		}
		seen[u.EmailKey()] = true
	}

	for _, c := range SeedCampaigns() {
		if !c.Category.Valid() || c.Target <= 0 {
			t.Errorf("seed campaign %s malformed: %+v", c.ID, c)
		}
	}
	for _, e := range SeedEvents() {
		if e.Volunteers == nil {
			t.Errorf("seed event %s must start with an empty roster, not nil", e.ID)
		}
	}
}
