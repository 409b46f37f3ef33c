package plan

import (
	"context"
	"sync"
)

// MemoryStore keeps tier assignments in a process-local map.
//
// It is a degraded-mode fallback and test double only: its state is
// scoped to a single process instance and is NOT correct when the
// gateway runs as multiple replicas. Production deployments should use
// PostgresStore or RedisStore.
type MemoryStore struct {
	mu    sync.RWMutex
	tiers map[string]Tier
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tiers: make(map[string]Tier)}
}

func (s *MemoryStore) Get(_ context.Context, identity string) (Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tier, ok := s.tiers[identity]
	if !ok {
		return TierFree, nil
	}
	return tier, nil
}

func (s *MemoryStore) Set(_ context.Context, identity string, tier Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tiers[identity] = tier
	return nil
}
