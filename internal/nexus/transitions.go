package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ngonexus/internal/domain"
	"ngonexus/internal/store"
	"ngonexus/internal/view"
)

// Transitions. Each one validates first, applies the whole in-memory change
// under the mutex, then mirrors every touched collection to the store before
// returning. Validation failures leave the state tree untouched.

// Register appends a new donor or volunteer to the registry and opens a
// session for it. Email uniqueness is enforced case-insensitively.
func (n *Nexus) Register(ctx context.Context, u domain.User) (domain.User, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	u.Email = domain.NormalizeEmail(u.Email)
	if u.Email == "" || strings.TrimSpace(u.Name) == "" {
		return domain.User{}, domain.ErrInvalidInput
	}
	if u.Role != domain.RoleDonor && u.Role != domain.RoleVolunteer {
		return domain.User{}, domain.ErrInvalidInput
	}
	if n.findUserByEmail(u.Email) >= 0 {
		return domain.User{}, domain.ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = "u-" + n.newID()
	}
	if u.Avatar == "" {
		u.Avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(strings.TrimSpace(u.Name))
	}

	n.users = append(n.users, u)
	n.session = &domain.Session{User: u}
	n.page = view.PageDashboard
	n.notify(fmt.Sprintf("Welcome to the Network, %s.", u.Name), SeveritySuccess)

	if err := n.persistUsers(ctx); err != nil {
		return u, err
	}
	return u, n.persistSession(ctx)
}

// Login matches a registry entry by email and credential and opens a session
// for it. The credential comparison is plaintext; that is the demo contract.
func (n *Nexus) Login(ctx context.Context, email, credential string) (domain.Session, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	i := n.findUserByEmail(email)
	if i < 0 || n.users[i].Credential != strings.TrimSpace(credential) {
		return domain.Session{}, domain.ErrNotFound
	}
	u := n.users[i]
	n.session = &domain.Session{User: u}
	n.page = view.PageDashboard
	n.notify(fmt.Sprintf("Access Authorized: %s Node Active", u.Role), SeveritySuccess)

	if err := n.persistSession(ctx); err != nil {
		return *n.session, err
	}
	return *n.session, nil
}

// LoginAdmin is the break-glass path: it checks the configured security key
// and opens a privileged session for a synthesized admin identity that lives
// outside the registry. The admin-authorized flag is persisted so the session
// survives a restart.
func (n *Nexus) LoginAdmin(ctx context.Context, email, securityKey string) (domain.Session, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.adminKey == "" || strings.TrimSpace(securityKey) != n.adminKey {
		return domain.Session{}, domain.ErrForbidden
	}
	email = domain.NormalizeEmail(email)
	if email == "" {
		email = "admin@ngo.com"
	}
	admin := domain.User{
		ID:     fmt.Sprintf("admin-%d", n.now().UnixMilli()),
		Email:  email,
		Name:   "NGO Administrator",
		Role:   domain.RoleAdmin,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(email),
		City:   "Global",
		State:  "HQ",
	}
	n.session = &domain.Session{User: admin, Privileged: true}
	n.page = view.PageDashboard
	n.notify("Access Authorized: ADMIN Node Active", SeveritySuccess)

	if err := n.kv.Set(ctx, store.KeyAdminAuthorized, []byte("true")); err != nil {
		return *n.session, err
	}
	if err := n.persistSession(ctx); err != nil {
		return *n.session, err
	}
	return *n.session, nil
}

// Logout clears the session, its persisted mirror and the admin-authorized
// flag, and returns to the public landing page. Logging out without a session
// is a no-op.
func (n *Nexus) Logout(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.session = nil
	n.page = view.PageHome
	if err := n.kv.Remove(ctx, store.KeySession); err != nil {
		return err
	}
	return n.kv.Remove(ctx, store.KeyAdminAuthorized)
}

// UpdateProfile replaces the session user and its registry entry. Only the
// session owner may update itself; a privileged admin has no registry entry
// and gets ErrNotFound.
func (n *Nexus) UpdateProfile(ctx context.Context, updated domain.User) (domain.User, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.session == nil {
		return domain.User{}, domain.ErrNoSession
	}
	if updated.ID != n.session.User.ID {
		return domain.User{}, domain.ErrForbidden
	}
	idx := -1
	for i, u := range n.users {
		if u.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.User{}, domain.ErrNotFound
	}

	updated.Email = domain.NormalizeEmail(updated.Email)
	n.users[idx] = updated
	n.session = &domain.Session{User: updated, Privileged: n.session.Privileged}

	if err := n.persistUsers(ctx); err != nil {
		return updated, err
	}
	return updated, n.persistSession(ctx)
}

// Donate appends an immutable ledger entry and credits the campaign in one
// critical section. The ledger entry snapshots the campaign title at donation
// time; renaming the campaign later does not rewrite history.
func (n *Nexus) Donate(ctx context.Context, campaignID string, amount float64) (domain.Donation, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.session == nil {
		return domain.Donation{}, domain.ErrNoSession
	}
	if amount <= 0 {
		return domain.Donation{}, domain.ErrInvalidAmount
	}
	i := n.findCampaign(campaignID)
	if i < 0 {
		return domain.Donation{}, domain.ErrNotFound
	}

	donation := domain.Donation{
		ID:            "d-" + n.newID(),
		DonorID:       n.session.User.ID,
		CampaignID:    campaignID,
		CampaignTitle: n.campaigns[i].Title,
		Amount:        amount,
		Date:          n.now().UTC().Format(time.RFC3339),
	}
	n.donations = append([]domain.Donation{donation}, n.donations...)
	n.campaigns[i].Raised += amount
	n.notify("Impact Locked: $"+strconv.FormatFloat(amount, 'f', -1, 64)+" Authorized.", SeveritySuccess)

	if err := n.persistDonations(ctx); err != nil {
		return donation, err
	}
	return donation, n.persistCampaigns(ctx)
}

// AddCampaign appends a campaign to the catalog. Admin only. Raised always
// starts at zero regardless of the input.
func (n *Nexus) AddCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.session == nil {
		return domain.Campaign{}, domain.ErrNoSession
	}
	if n.session.User.Role != domain.RoleAdmin {
		return domain.Campaign{}, domain.ErrForbidden
	}
	if strings.TrimSpace(c.Title) == "" || c.Target <= 0 || !c.Category.Valid() {
		return domain.Campaign{}, domain.ErrInvalidInput
	}
	if c.ID == "" {
		c.ID = "c-" + n.newID()
	}
	c.Raised = 0

	n.campaigns = append(n.campaigns, c)
	n.notify(fmt.Sprintf("Campaign Deployed: %s", c.Title), SeveritySuccess)
	return c, n.persistCampaigns(ctx)
}

// AddEvent appends a volunteering event to the catalog. Admin only.
func (n *Nexus) AddEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.session == nil {
		return domain.Event{}, domain.ErrNoSession
	}
	if n.session.User.Role != domain.RoleAdmin {
		return domain.Event{}, domain.ErrForbidden
	}
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Date) == "" {
		return domain.Event{}, domain.ErrInvalidInput
	}
	if e.ID == "" {
		e.ID = "e-" + n.newID()
	}
	if e.Volunteers == nil {
		e.Volunteers = []string{}
	}

	n.events = append(n.events, e)
	n.notify(fmt.Sprintf("Mission Published: %s", e.Title), SeveritySuccess)
	return e, n.persistEvents(ctx)
}

// JoinEvent adds the session user to an event roster. Joining twice is a
// no-op; the roster is a set.
func (n *Nexus) JoinEvent(ctx context.Context, eventID string) (domain.Event, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.session == nil {
		return domain.Event{}, domain.ErrNoSession
	}
	i := n.findEvent(eventID)
	if i < 0 {
		return domain.Event{}, domain.ErrNotFound
	}
	if n.events[i].HasVolunteer(n.session.User.ID) {
		return n.events[i], nil
	}

	n.events[i].Volunteers = append(n.events[i].Volunteers, n.session.User.ID)
	n.notify("Mission Assignment Verified.", SeveritySuccess)
	return n.events[i], n.persistEvents(ctx)
}

// Persistence mirrors. Callers hold the mutex.

func (n *Nexus) persistUsers(ctx context.Context) error {
	return n.persist(ctx, store.KeyUsers, n.users)
}

func (n *Nexus) persistCampaigns(ctx context.Context) error {
	return n.persist(ctx, store.KeyCampaigns, n.campaigns)
}

func (n *Nexus) persistDonations(ctx context.Context) error {
	return n.persist(ctx, store.KeyDonations, n.donations)
}

func (n *Nexus) persistEvents(ctx context.Context) error {
	return n.persist(ctx, store.KeyEvents, n.events)
}

func (n *Nexus) persistSession(ctx context.Context) error {
	if n.session == nil {
		return n.kv.Remove(ctx, store.KeySession)
	}
	return n.persist(ctx, store.KeySession, n.session.User)
}

func (n *Nexus) persist(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("nexus: encode %s: %w", key, err)
	}
	if err := n.kv.Set(ctx, key, blob); err != nil {
		n.logger.Error().Err(err).Str("key", key).Msg("nexus: mirror write failed")
		return err
	}
	return nil
}
