package session

import (
	"context"
	"sync"
	"time"

	"go-admin-console/internal/feature/user"
)

// MemoryBackend holds sessions in-process. Fine for single-node
// deployments and tests; sessions die with the process.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	profile user.Profile
	expires time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Put(_ context.Context, token string, p user.Profile, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[token] = memoryEntry{profile: p, expires: time.Now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Get(_ context.Context, token string) (*user.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expires) {
		delete(b.entries, token)
		return nil, nil
	}
	p := e.profile
	return &p, nil
}

func (b *MemoryBackend) Del(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, token)
	return nil
}
