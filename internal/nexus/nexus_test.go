package nexus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ngonexus/internal/domain"
)

// memStore is an in-memory blob store for tests.
type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

func (m *memStore) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestNexus(kv *memStore) (*Nexus, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)}
	seq := 0
	n := New(Options{
		Store:    kv,
		Logger:   zerolog.Nop(),
		AdminKey: "admin123",
		Now:      clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("test-%04d", seq)
		},
	})
	return n, clock
}

func bootstrappedNexus(kv *memStore) (*Nexus, *fakeClock, error) {
	n, clock := newTestNexus(kv)
	err := n.Bootstrap(context.Background())
	return n, clock, err
}

func donor() domain.User {
	return domain.User{
		Email:      "a@x.com",
		Name:       "Ada Lovelace",
		Role:       domain.RoleDonor,
		Credential: "secret",
		City:       "London",
		State:      "UK",
		Pincode:    "00001",
	}
}
