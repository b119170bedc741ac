package nexus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ngonexus/internal/domain"
	"ngonexus/internal/store"
	"ngonexus/internal/view"
)

func TestRegisterOpensSessionAndPersists(t *testing.T) {
	kv := newMemStore()
	n, _, err := bootstrappedNexus(kv)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	u, err := n.Register(context.Background(), donor())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" || u.Avatar == "" {
		t.Fatalf("expected generated id and avatar, got %+v", u)
	}
	s := n.Session()
	if s == nil || s.User.Email != "a@x.com" || s.Privileged {
		t.Fatalf("unexpected session %+v", s)
	}
	if got := n.CurrentPage(); got != view.PageDashboard {
		t.Fatalf("page = %q, want dashboard", got)
	}

	blob, ok, _ := kv.Get(context.Background(), store.KeyUsers)
	if !ok {
		t.Fatal("registry not persisted")
	}
	var users []domain.User
	if err := json.Unmarshal(blob, &users); err != nil {
		t.Fatalf("decode registry: %v", err)
	}
	if len(users) != 4 || users[3].Email != "a@x.com" {
		t.Fatalf("persisted registry = %d entries, want seed trio plus new donor", len(users))
	}
}

func TestRegisterRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	dup := donor()
	dup.Email = "DONOR@GMAIL.COM"
	if _, err := n.Register(context.Background(), dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if len(n.Users()) != 3 {
		t.Fatal("failed registration must leave the registry untouched")
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	u := donor()
	u.Role = domain.RoleAdmin
	if _, err := n.Register(context.Background(), u); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLoginMatchesSeedCredential(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	s, err := n.Login(context.Background(), "Donor@Gmail.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.User.ID != "u-donor" || s.Privileged {
		t.Fatalf("unexpected session %+v", s)
	}
	if _, err := n.Login(context.Background(), "donor@gmail.com", "wrong"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginAdminChecksSecurityKey(t *testing.T) {
	kv := newMemStore()
	n, _, err := bootstrappedNexus(kv)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if _, err := n.LoginAdmin(context.Background(), "boss@ngo.com", "nope"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if n.Session() != nil {
		t.Fatal("failed admin login must not open a session")
	}

	s, err := n.LoginAdmin(context.Background(), "boss@ngo.com", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !s.Privileged || s.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session %+v", s)
	}
	if blob, ok, _ := kv.Get(context.Background(), store.KeyAdminAuthorized); !ok || string(blob) != "true" {
		t.Fatalf("admin flag = %q/%v, want persisted true", blob, ok)
	}
}

func TestLogoutClearsSessionAndFlag(t *testing.T) {
	kv := newMemStore()
	n, _, err := bootstrappedNexus(kv)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := n.LoginAdmin(context.Background(), "", "admin123"); err != nil {
		t.Fatalf("admin login: %v", err)
	}

	if err := n.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if n.Session() != nil || n.CurrentPage() != view.PageHome {
		t.Fatal("logout must drop the session and return home")
	}
	if _, ok, _ := kv.Get(context.Background(), store.KeySession); ok {
		t.Fatal("session mirror must be removed")
	}
	if _, ok, _ := kv.Get(context.Background(), store.KeyAdminAuthorized); ok {
		t.Fatal("admin flag must be removed")
	}

	// Logging out twice is harmless.
	if err := n.Logout(context.Background()); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestUpdateProfileReplacesRegistryEntry(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	s, err := n.Login(context.Background(), "volunteer@gmail.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	updated := s.User
	updated.Bio = "Now teaching calculus full time."
	got, err := n.UpdateProfile(context.Background(), updated)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Bio != updated.Bio {
		t.Fatalf("bio = %q", got.Bio)
	}
	for _, u := range n.Users() {
		if u.ID == "u-volunteer" && u.Bio != updated.Bio {
			t.Fatal("registry entry not replaced")
		}
	}

	other := s.User
	other.ID = "u-donor"
	if _, err := n.UpdateProfile(context.Background(), other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestUpdateProfilePrivilegedAdminHasNoRegistryEntry(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	s, err := n.LoginAdmin(context.Background(), "boss@ngo.com", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	if _, err := n.UpdateProfile(context.Background(), s.User); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDonateAppendsLedgerAndCreditsCampaign(t *testing.T) {
	kv := newMemStore()
	n, _, err := bootstrappedNexus(kv)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := n.Login(context.Background(), "donor@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}

	before := n.Campaigns()[0].Raised
	d, err := n.Donate(context.Background(), "c1", 150)
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	if d.CampaignTitle != "Safe Water for All" || d.DonorID != "u-donor" {
		t.Fatalf("unexpected donation %+v", d)
	}
	if _, err := time.Parse(time.RFC3339, d.Date); err != nil {
		t.Fatalf("date %q not RFC3339: %v", d.Date, err)
	}

	if got := n.Campaigns()[0].Raised; got != before+150 {
		t.Fatalf("raised = %g, want %g", got, before+150)
	}
	ledger := n.Donations()
	if len(ledger) != 1 || ledger[0].ID != d.ID {
		t.Fatalf("ledger = %+v", ledger)
	}

	// A second donation lands at the head of the ledger.
	d2, err := n.Donate(context.Background(), "c2", 25)
	if err != nil {
		t.Fatalf("second donate: %v", err)
	}
	ledger = n.Donations()
	if ledger[0].ID != d2.ID || ledger[1].ID != d.ID {
		t.Fatal("ledger must be newest first")
	}

	// Both mirrors are written.
	for _, key := range []string{store.KeyDonations, store.KeyCampaigns} {
		if _, ok, _ := kv.Get(context.Background(), key); !ok {
			t.Fatalf("mirror %s not written", key)
		}
	}
}

func TestDonateValidation(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if _, err := n.Donate(context.Background(), "c1", 10); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if _, err := n.Login(context.Background(), "donor@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := n.Donate(context.Background(), "c1", 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if _, err := n.Donate(context.Background(), "c1", -5); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if _, err := n.Donate(context.Background(), "missing", 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(n.Donations()) != 0 {
		t.Fatal("failed donations must not touch the ledger")
	}
}

func TestAddCampaignAdminOnlyAndRaisedResets(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	c := domain.Campaign{Title: "Coastal Cleanup", Target: 5000, Raised: 999, Category: domain.CategoryEnvironment}
	if _, err := n.AddCampaign(context.Background(), c); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}

	if _, err := n.Login(context.Background(), "donor@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := n.AddCampaign(context.Background(), c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	if _, err := n.LoginAdmin(context.Background(), "", "admin123"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	got, err := n.AddCampaign(context.Background(), c)
	if err != nil {
		t.Fatalf("add campaign: %v", err)
	}
	if got.Raised != 0 {
		t.Fatalf("raised = %g, want 0", got.Raised)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestJoinEventIsIdempotent(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := n.Login(context.Background(), "volunteer@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}

	e, err := n.JoinEvent(context.Background(), "e1")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(e.Volunteers) != 1 || e.Volunteers[0] != "u-volunteer" {
		t.Fatalf("roster = %v", e.Volunteers)
	}

	e, err = n.JoinEvent(context.Background(), "e1")
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if len(e.Volunteers) != 1 {
		t.Fatalf("roster grew on duplicate join: %v", e.Volunteers)
	}

	if _, err := n.JoinEvent(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationSingleSlotAndExpiry(t *testing.T) {
	n, clock, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := n.Login(context.Background(), "donor@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := n.Donate(context.Background(), "c1", 42); err != nil {
		t.Fatalf("donate: %v", err)
	}

	note := n.Notification()
	if note == nil || note.Message != "Impact Locked: $42 Authorized." {
		t.Fatalf("notification = %+v", note)
	}
	if note.Severity != SeveritySuccess {
		t.Fatalf("severity = %q", note.Severity)
	}

	clock.Advance(NotificationTTL + time.Second)
	if got := n.Notification(); got != nil {
		t.Fatalf("expired notification still visible: %+v", got)
	}

	// A newer message replaces the slot outright.
	if _, err := n.Donate(context.Background(), "c2", 7); err != nil {
		t.Fatalf("donate: %v", err)
	}
	if _, err := n.JoinEvent(context.Background(), "e1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if note := n.Notification(); note == nil || note.Message != "Mission Assignment Verified." {
		t.Fatalf("notification = %+v", note)
	}
}

func TestDonationNotificationRendersPlainNumbers(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := n.Login(context.Background(), "donor@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Large and fractional amounts must not fall into scientific notation.
	for _, tc := range []struct {
		amount float64
		want   string
	}{
		{1500000, "Impact Locked: $1500000 Authorized."},
		{1234567.89, "Impact Locked: $1234567.89 Authorized."},
		{0.5, "Impact Locked: $0.5 Authorized."},
	} {
		if _, err := n.Donate(context.Background(), "c1", tc.amount); err != nil {
			t.Fatalf("donate %v: %v", tc.amount, err)
		}
		if note := n.Notification(); note == nil || note.Message != tc.want {
			t.Fatalf("notification for %v = %+v, want %q", tc.amount, note, tc.want)
		}
	}
}

func TestEventsAccessorCopiesRosters(t *testing.T) {
	n, _, err := bootstrappedNexus(newMemStore())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := n.Login(context.Background(), "volunteer@gmail.com", "password"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := n.JoinEvent(context.Background(), "e1"); err != nil {
		t.Fatalf("join: %v", err)
	}

	events := n.Events()
	events[0].Volunteers[0] = "tampered"
	if got := n.Events()[0].Volunteers[0]; got != "u-volunteer" {
		t.Fatalf("roster mutated through accessor copy: %q", got)
	}
}
