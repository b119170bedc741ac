// Package nexus owns the application state tree: the user registry, the
// campaign and event catalogs, the donation ledger, the active session and
// the current page. All mutation goes through the transition methods; reads
// go through copying accessors. A single mutex serializes transitions so the
// donate pair (append ledger entry, bump campaign raised) is always observed
// together.
package nexus

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ngonexus/internal/domain"
	"ngonexus/internal/infra"
	"ngonexus/internal/store"
	"ngonexus/internal/view"
)

// NotificationTTL is how long a transition's advisory message stays visible.
const NotificationTTL = 5 * time.Second

// Severity tags an advisory message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single-slot, short-lived advisory set by transitions.
// It is pure UI feedback: never persisted, replaced by newer messages and
// expired automatically.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	expires  time.Time
}

// Options configures a Nexus.
type Options struct {
	Store    store.Store
	Logger   infra.Logger
	AdminKey string
	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Nexus is the state controller. Construct with New, then call Bootstrap to
// load the persisted mirror before serving transitions.
type Nexus struct {
	mu       sync.Mutex
	kv       store.Store
	logger   infra.Logger
	adminKey string
	now      func() time.Time
	newID    func() string

	users     []domain.User
	campaigns []domain.Campaign
	donations []domain.Donation // newest first
	events    []domain.Event
	session   *domain.Session
	page      view.Page
	notice    *Notification
}

// New creates an empty Nexus on the home page with no session.
func New(opts Options) *Nexus {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Nexus{
		kv:       opts.Store,
		logger:   opts.Logger,
		adminKey: opts.AdminKey,
		now:      now,
		newID:    newID,
		page:     view.PageHome,
	}
}

// Users returns a copy of the registry.
func (n *Nexus) Users() []domain.User {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.User(nil), n.users...)
}

// Campaigns returns a copy of the campaign catalog.
func (n *Nexus) Campaigns() []domain.Campaign {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Campaign(nil), n.campaigns...)
}

// Donations returns a copy of the ledger, newest first.
func (n *Nexus) Donations() []domain.Donation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Donation(nil), n.donations...)
}

// Events returns a copy of the event catalog.
func (n *Nexus) Events() []domain.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Event, len(n.events))
	for i, e := range n.events {
		e.Volunteers = append([]string(nil), e.Volunteers...)
		out[i] = e
	}
	return out
}

// Session returns a copy of the active session, or nil.
func (n *Nexus) Session() *domain.Session {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.session == nil {
		return nil
	}
	s := *n.session
	return &s
}

// CurrentPage returns the active page id.
func (n *Nexus) CurrentPage() view.Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.page
}

// Navigate moves to the requested page. Unknown pages are accepted; the view
// router resolves them to the home view.
func (n *Nexus) Navigate(page view.Page) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.page = page
}

// ResolveView resolves the descriptor for the requested page against the
// current session.
func (n *Nexus) ResolveView(page view.Page) view.Descriptor {
	n.mu.Lock()
	defer n.mu.Unlock()
	return view.Resolve(page, view.VisitorOf(n.session))
}

// Notification returns the pending advisory, or nil once it has expired.
func (n *Nexus) Notification() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.notice == nil || n.now().After(n.notice.expires) {
		n.notice = nil
		return nil
	}
	note := *n.notice
	return &note
}

// notify replaces the advisory slot. Callers hold the mutex.
func (n *Nexus) notify(message string, severity Severity) {
	n.notice = &Notification{
		Message:  message,
		Severity: severity,
		expires:  n.now().Add(NotificationTTL),
	}
}

// findUserByEmail returns the registry index for a lower-cased email, or -1.
// Callers hold the mutex.
func (n *Nexus) findUserByEmail(email string) int {
	key := domain.NormalizeEmail(email)
	for i, u := range n.users {
		if u.EmailKey() == key {
			return i
		}
	}
	return -1
}

// findCampaign returns the catalog index for a campaign id, or -1. Callers
// hold the mutex.
func (n *Nexus) findCampaign(id string) int {
	for i, c := range n.campaigns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// findEvent returns the catalog index for an event id, or -1. Callers hold
// the mutex.
func (n *Nexus) findEvent(id string) int {
	for i, e := range n.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
