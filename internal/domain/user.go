package domain

import "strings"

// Role enumerates supported account roles.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDonor     Role = "DONOR"
	RoleVolunteer Role = "VOLUNTEER"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDonor, RoleVolunteer:
		return true
	}
	return false
}

// User represents a registered identity within the network.
//
// Credential is an opaque demo string compared verbatim at login; it is never
// hashed and must never be treated as a real secret.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         Role     `json:"role"`
	Credential   string   `json:"password,omitempty"`
	Avatar       string   `json:"avatar,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Pincode      string   `json:"pincode,omitempty"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Bio          string   `json:"bio,omitempty"`
}

// EmailKey returns the canonical registry key for the user's email. Email
// uniqueness is case-insensitive across the whole registry.
func (u User) EmailKey() string {
	return NormalizeEmail(u.Email)
}

// NormalizeEmail lower-cases and trims an email for registry comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session points at the single currently-authenticated user. Privileged marks
// a break-glass admin identity that is allowed to live outside the registry.
type Session struct {
	User       User `json:"user"`
	Privileged bool `json:"privileged,omitempty"`
}
