package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ngonexus/internal/store"
)

// Store keeps provider API keys in the blob store. The presence of a stored
// Gemini key doubles as the "key selected" capability flag that gates the
// image generation and editing paths.
type Store struct {
	kv store.Store
}

// NewStore creates a credentials store over the given blob store.
func NewStore(kv store.Store) *Store {
	return &Store{kv: kv}
}

// GeminiAPIKey returns the stored key, or empty when none is selected.
func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	blob, ok, err := s.kv.Get(ctx, store.KeyGeminiAPIKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	var key string
	if err := json.Unmarshal(blob, &key); err != nil {
		return "", fmt.Errorf("credentials: decode gemini key: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// HasGeminiAPIKey reports whether a non-empty key is selected.
func (s *Store) HasGeminiAPIKey(ctx context.Context) (bool, error) {
	key, err := s.GeminiAPIKey(ctx)
	if err != nil {
		return false, err
	}
	return key != "", nil
}

// SetGeminiAPIKey stores the key. An empty key is rejected; use Clear to
// deselect.
func (s *Store) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("credentials: gemini api key is required")
	}
	blob, err := json.Marshal(key)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, store.KeyGeminiAPIKey, blob)
}

// Clear removes the stored key, dropping the capability flag.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, store.KeyGeminiAPIKey)
}
