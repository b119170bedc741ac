// Package view resolves which page component a client should render for a
// given (page, visitor) pair. Resolution is total: every input maps to
// exactly one view descriptor, never an error.
package view

import "ngonexus/internal/domain"

// Page identifies one of the closed set of navigable pages.
type Page string

const (
	PageHome         Page = "home"
	PageLogin        Page = "login"
	PageDashboard    Page = "dashboard"
	PageCampaigns    Page = "campaigns"
	PageVolunteers   Page = "volunteers"
	PageTransparency Page = "transparency"
	// PageWireframe is the debug page outside the auth model.
	PageWireframe Page = "wireframe"
)

// Known reports whether p is in the defined page set. Unknown pages are still
// resolvable; they fall back to the home view.
func (p Page) Known() bool {
	switch p {
	case PageHome, PageLogin, PageDashboard, PageCampaigns, PageVolunteers, PageTransparency, PageWireframe:
		return true
	}
	return false
}

// Pages lists the defined page set.
func Pages() []Page {
	return []Page{PageHome, PageLogin, PageDashboard, PageCampaigns, PageVolunteers, PageTransparency, PageWireframe}
}

// Visitor is the typed role variant a resolution is computed against.
type Visitor int

const (
	Anonymous Visitor = iota
	Admin
	Donor
	Volunteer
)

func (v Visitor) String() string {
	switch v {
	case Admin:
		return "admin"
	case Donor:
		return "donor"
	case Volunteer:
		return "volunteer"
	default:
		return "anonymous"
	}
}

// Visitors lists all visitor variants.
func Visitors() []Visitor {
	return []Visitor{Anonymous, Admin, Donor, Volunteer}
}

// VisitorOf maps an optional session to its visitor variant. An unrecognized
// role resolves to Anonymous, which in turn falls back to public views.
func VisitorOf(session *domain.Session) Visitor {
	if session == nil {
		return Anonymous
	}
	switch session.User.Role {
	case domain.RoleAdmin:
		return Admin
	case domain.RoleDonor:
		return Donor
	case domain.RoleVolunteer:
		return Volunteer
	default:
		return Anonymous
	}
}

// View names a concrete page component.
type View string

const (
	ViewHome                   View = "home"
	ViewLogin                  View = "login"
	ViewAdminDashboard         View = "admin_dashboard"
	ViewDonorDashboard         View = "donor_dashboard"
	ViewVolunteerDashboard     View = "volunteer_dashboard"
	ViewCampaignManagement     View = "campaign_management"
	ViewCampaigns              View = "campaigns"
	ViewVolunteerManagement    View = "volunteer_management"
	ViewVolunteerOpportunities View = "volunteer_opportunities"
	ViewTransparency           View = "transparency"
	ViewWireframe              View = "wireframe"
)

// Layout selects the page chrome.
type Layout string

const (
	// LayoutAuthenticated is the sidebar + topbar dashboard chrome.
	LayoutAuthenticated Layout = "authenticated"
	// LayoutPublic is the navbar + footer public chrome.
	LayoutPublic Layout = "public"
	// LayoutBare renders the wireframe page without any chrome.
	LayoutBare Layout = "bare"
)

// Descriptor is the resolved rendering instruction for a request.
type Descriptor struct {
	Page    Page   `json:"page"`
	View    View   `json:"view"`
	Layout  Layout `json:"layout"`
	Visitor string `json:"visitor"`
}

// Resolve maps a (page, visitor) pair to its view descriptor. Unknown pages
// resolve like home. The dashboard splits three ways by role and falls back
// to the public landing for anonymous visitors.
func Resolve(page Page, visitor Visitor) Descriptor {
	d := Descriptor{Page: page, Visitor: visitor.String()}
	d.Layout = resolveLayout(page, visitor)

	switch page {
	case PageWireframe:
		d.View = ViewWireframe
	case PageLogin:
		d.View = ViewLogin
	case PageDashboard:
		switch visitor {
		case Admin:
			d.View = ViewAdminDashboard
		case Donor:
			d.View = ViewDonorDashboard
		case Volunteer:
			d.View = ViewVolunteerDashboard
		default:
			d.View = ViewHome
		}
	case PageCampaigns:
		if visitor == Admin {
			d.View = ViewCampaignManagement
		} else {
			d.View = ViewCampaigns
		}
	case PageVolunteers:
		if visitor == Admin {
			d.View = ViewVolunteerManagement
		} else {
			d.View = ViewVolunteerOpportunities
		}
	case PageTransparency:
		d.View = ViewTransparency
	default:
		// home and anything unrecognized
		d.View = ViewHome
	}
	return d
}

// resolveLayout derives the chrome: authenticated chrome needs a signed-in
// visitor on a page other than home, login, and the wireframe.
func resolveLayout(page Page, visitor Visitor) Layout {
	if page == PageWireframe {
		return LayoutBare
	}
	if visitor == Anonymous {
		return LayoutPublic
	}
	switch page {
	case PageHome, PageLogin:
		return LayoutPublic
	}
	if !page.Known() {
		return LayoutPublic
	}
	return LayoutAuthenticated
}
