package view

import (
	"testing"

	"ngonexus/internal/domain"
)

func TestResolveIsTotal(t *testing.T) {
	pages := append(Pages(), Page("made-up"), Page(""))
	for _, page := range pages {
		for _, visitor := range Visitors() {
			d := Resolve(page, visitor)
			if d.View == "" || d.Layout == "" || d.Visitor == "" {
				t.Fatalf("Resolve(%q, %s) incomplete: %+v", page, visitor, d)
			}
			if d.Page != page {
				t.Fatalf("Resolve(%q, %s) echoed page %q", page, visitor, d.Page)
			}
		}
	}
}

func TestResolveDashboardSplitsByRole(t *testing.T) {
	cases := []struct {
		visitor Visitor
		want    View
	}{
		{Admin, ViewAdminDashboard},
		{Donor, ViewDonorDashboard},
		{Volunteer, ViewVolunteerDashboard},
		{Anonymous, ViewHome},
	}
	for _, tc := range cases {
		if got := Resolve(PageDashboard, tc.visitor).View; got != tc.want {
			t.Errorf("dashboard for %s = %q, want %q", tc.visitor, got, tc.want)
		}
	}
}

func TestResolveAdminVariants(t *testing.T) {
	if got := Resolve(PageCampaigns, Admin).View; got != ViewCampaignManagement {
		t.Errorf("campaigns for admin = %q", got)
	}
	if got := Resolve(PageCampaigns, Donor).View; got != ViewCampaigns {
		t.Errorf("campaigns for donor = %q", got)
	}
	if got := Resolve(PageVolunteers, Admin).View; got != ViewVolunteerManagement {
		t.Errorf("volunteers for admin = %q", got)
	}
	if got := Resolve(PageVolunteers, Volunteer).View; got != ViewVolunteerOpportunities {
		t.Errorf("volunteers for volunteer = %q", got)
	}
}

func TestResolveUnknownPageFallsBackHome(t *testing.T) {
	d := Resolve(Page("nonsense"), Donor)
	if d.View != ViewHome {
		t.Fatalf("view = %q, want home", d.View)
	}
	if d.Layout != LayoutPublic {
		t.Fatalf("layout = %q, want public", d.Layout)
	}
}

func TestResolveLayouts(t *testing.T) {
	if got := Resolve(PageWireframe, Anonymous).Layout; got != LayoutBare {
		t.Errorf("wireframe layout = %q", got)
	}
	if got := Resolve(PageWireframe, Admin).Layout; got != LayoutBare {
		t.Errorf("wireframe layout for admin = %q", got)
	}
	if got := Resolve(PageTransparency, Anonymous).Layout; got != LayoutPublic {
		t.Errorf("anonymous transparency layout = %q", got)
	}
	if got := Resolve(PageTransparency, Donor).Layout; got != LayoutAuthenticated {
		t.Errorf("donor transparency layout = %q", got)
	}
	if got := Resolve(PageHome, Admin).Layout; got != LayoutPublic {
		t.Errorf("home layout = %q", got)
	}
	if got := Resolve(PageLogin, Donor).Layout; got != LayoutPublic {
		t.Errorf("login layout = %q", got)
	}
}

func TestVisitorOf(t *testing.T) {
	if got := VisitorOf(nil); got != Anonymous {
		t.Fatalf("nil session = %s", got)
	}
	cases := []struct {
		role domain.Role
		want Visitor
	}{
		{domain.RoleAdmin, Admin},
		{domain.RoleDonor, Donor},
		{domain.RoleVolunteer, Volunteer},
		{domain.Role("ghost"), Anonymous},
	}
	for _, tc := range cases {
		s := &domain.Session{User: domain.User{Role: tc.role}}
		if got := VisitorOf(s); got != tc.want {
			t.Errorf("VisitorOf(%q) = %s, want %s", tc.role, got, tc.want)
		}
	}
}
