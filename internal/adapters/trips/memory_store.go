package trips

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
)

// MemoryStore is the in-process trip store used when no database is
// configured, and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Itinerary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]*domain.Itinerary{}}
}

func (s *MemoryStore) Save(ctx context.Context, it *domain.Itinerary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := it.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	it.ID = id
	it.CreatedAt = now
	it.UpdatedAt = now

	stored := *it
	s.mu.Lock()
	s.items[id] = &stored
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	it, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTripNotFound, id)
	}

	out := *it
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context, destination string, limit, offset int) ([]*domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	all := make([]*domain.Itinerary, 0, len(s.items))
	for _, it := range s.items {
		if destination != "" && it.Destination != destination {
			continue
		}
		cp := *it
		all = append(all, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemoryStore) Replace(ctx context.Context, id string, it *domain.Itinerary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTripNotFound, id)
	}

	it.ID = id
	it.CreatedAt = old.CreatedAt
	it.UpdatedAt = time.Now().UTC()

	stored := *it
	s.items[id] = &stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTripNotFound, id)
	}
	delete(s.items, id)
	return nil
}
