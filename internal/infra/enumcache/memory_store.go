package enumcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/listing-insights/internal/domain/listing"
	"github.com/yanqian/listing-insights/pkg/util"
)

type entry struct {
	values    []string
	expiresAt time.Time
}

// MemoryStore keeps enumeration lists in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     util.Clock
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     util.NowUTC,
	}
}

// Get implements listing.EnumStore.
func (s *MemoryStore) Get(_ context.Context, key string) ([]string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.expired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]string(nil), e.values...), true, nil
}

// Save caches values with an optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, values []string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = entry{
		values:    append([]string(nil), values...),
		expiresAt: exp,
	}
	return nil
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ listing.EnumStore = (*MemoryStore)(nil)
