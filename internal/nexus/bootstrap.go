package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"ngonexus/internal/domain"
	"ngonexus/internal/store"
	"ngonexus/internal/view"
)

// Bootstrap loads the persisted mirror, merges it with the seed data and
// restores the session. A store read failure aborts the bootstrap so a
// transient backend error can never overwrite the persisted registry with a
// seed-only merge. A malformed blob is different: it is treated as absent and
// logged, and a malformed session blob additionally clears the persisted
// session key so a broken blob cannot wedge every restart.
//
// Bootstrap is idempotent: loading, re-persisting and reloading yields an
// identical state tree.
func (n *Nexus) Bootstrap(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	persisted, err := n.loadUsers(ctx)
	if err != nil {
		return err
	}
	n.users = mergeUsers(domain.SeedUsers(), persisted)
	if err := n.persistUsers(ctx); err != nil {
		return fmt.Errorf("nexus: persist merged registry: %w", err)
	}

	if err := n.loadCollections(ctx); err != nil {
		return err
	}
	if err := n.restoreSession(ctx); err != nil {
		return err
	}

	if err := n.kv.Set(ctx, store.KeySchemaVersion, []byte(strconv.Itoa(store.SchemaVersion))); err != nil {
		n.logger.Warn().Err(err).Msg("nexus: persist schema version")
	}
	return nil
}

// mergeUsers deduplicates by lower-cased email. Seed entries keep their
// position and are overwritten by persisted entries sharing the same email;
// persisted-only entries are appended in order.
func mergeUsers(seeds, persisted []domain.User) []domain.User {
	merged := make([]domain.User, 0, len(seeds)+len(persisted))
	index := make(map[string]int, len(seeds)+len(persisted))
	for _, u := range append(append([]domain.User(nil), seeds...), persisted...) {
		key := u.EmailKey()
		if i, ok := index[key]; ok {
			merged[i] = u
			continue
		}
		index[key] = len(merged)
		merged = append(merged, u)
	}
	return merged
}

func (n *Nexus) loadUsers(ctx context.Context) ([]domain.User, error) {
	blob, ok, err := n.loadBlob(ctx, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var users []domain.User
	if err := json.Unmarshal(blob, &users); err != nil {
		n.logger.Warn().Err(err).Msg("nexus: malformed user registry blob, using seeds")
		return nil, nil
	}
	return users, nil
}

func (n *Nexus) loadCollections(ctx context.Context) error {
	n.donations = nil
	blob, ok, err := n.loadBlob(ctx, store.KeyDonations)
	if err != nil {
		return err
	}
	if ok {
		var donations []domain.Donation
		if err := json.Unmarshal(blob, &donations); err != nil {
			n.logger.Warn().Err(err).Msg("nexus: malformed donation blob, starting empty")
		} else {
			n.donations = donations
		}
	}

	n.campaigns = domain.SeedCampaigns()
	blob, ok, err = n.loadBlob(ctx, store.KeyCampaigns)
	if err != nil {
		return err
	}
	if ok {
		var campaigns []domain.Campaign
		if err := json.Unmarshal(blob, &campaigns); err != nil {
			n.logger.Warn().Err(err).Msg("nexus: malformed campaign blob, using seeds")
		} else {
			n.campaigns = campaigns
		}
	}

	n.events = domain.SeedEvents()
	blob, ok, err = n.loadBlob(ctx, store.KeyEvents)
	if err != nil {
		return err
	}
	if ok {
		var events []domain.Event
		if err := json.Unmarshal(blob, &events); err != nil {
			n.logger.Warn().Err(err).Msg("nexus: malformed event blob, using seeds")
		} else {
			n.events = events
		}
	}
	return nil
}

// restoreSession re-attaches the persisted session. The privileged-admin
// carve-out is honored first: an ADMIN session with the admin-authorized flag
// set restores directly, even when the identity is not in the registry.
// Otherwise the session is only restored when its email matches a registry
// entry, and the registry entry wins so the session reflects the canonical
// profile. A stale session is discarded.
func (n *Nexus) restoreSession(ctx context.Context) error {
	n.session = nil
	n.page = view.PageHome

	blob, ok, err := n.loadBlob(ctx, store.KeySession)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var saved domain.User
	if err := json.Unmarshal(blob, &saved); err != nil {
		n.logger.Warn().Err(err).Msg("nexus: malformed session blob, clearing")
		if err := n.kv.Remove(ctx, store.KeySession); err != nil {
			n.logger.Warn().Err(err).Msg("nexus: clear session key")
		}
		return nil
	}

	if saved.Role == domain.RoleAdmin {
		authorized, err := n.adminAuthorized(ctx)
		if err != nil {
			return err
		}
		if authorized {
			n.session = &domain.Session{User: saved, Privileged: true}
			n.page = view.PageDashboard
			return nil
		}
	}

	if i := n.findUserByEmail(saved.Email); i >= 0 {
		n.session = &domain.Session{User: n.users[i]}
		n.page = view.PageDashboard
	}
	return nil
}

func (n *Nexus) adminAuthorized(ctx context.Context) (bool, error) {
	blob, ok, err := n.loadBlob(ctx, store.KeyAdminAuthorized)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	var flag bool
	if err := json.Unmarshal(blob, &flag); err != nil {
		n.logger.Warn().Err(err).Msg("nexus: malformed admin-authorized blob")
		return false, nil
	}
	return flag, nil
}

func (n *Nexus) loadBlob(ctx context.Context, key string) ([]byte, bool, error) {
	blob, ok, err := n.kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("nexus: load %s: %w", key, err)
	}
	return blob, ok, nil
}
