package store

import "context"

// Persisted keys. The originals from the browser build are kept verbatim so a
// snapshot taken there can be dropped into a DATA_DIR and restored here.
const (
	KeyUsers           = "ngo_registered_users"
	KeySession         = "ngo_user"
	KeyDonations       = "ngo_donations"
	KeyCampaigns       = "ngo_campaigns"
	KeyEvents          = "ngo_events"
	KeyAdminAuthorized = "ngo_admin_authorized"
	KeySchemaVersion   = "ngo_schema_version"
	KeyGeminiAPIKey    = "ngo_gemini_key"
)

// SchemaVersion is written at bootstrap so future layouts can migrate.
const SchemaVersion = 1

// Store is a key-value blob store holding JSON snapshots of the domain
// collections. Writes to different keys are independent; a single Set is
// atomic (readers never observe a torn blob).
type Store interface {
	// Get returns the blob for key. The boolean is false when the key is
	// absent; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores blob under key, replacing any previous value.
	Set(ctx context.Context, key string, blob []byte) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}
