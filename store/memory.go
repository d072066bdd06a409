package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"moyo/models"
)

// MemoryCartStore holds serialized cart blobs in memory. Used by tests and
// for running the gateway without MongoDB.
type MemoryCartStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{blobs: make(map[string][]byte)}
}

func (s *MemoryCartStore) LoadCart(_ context.Context, userID string) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.blobs[userID]
	if !ok {
		return models.CartState{Items: []models.CartItem{}}
	}
	var state models.CartState
	if err := json.Unmarshal(raw, &state); err != nil || state.Items == nil {
		return models.CartState{Items: []models.CartItem{}}
	}
	return state
}

func (s *MemoryCartStore) SaveCart(_ context.Context, userID string, state models.CartState) bool {
	state.LastUpdated = time.Now()
	raw, err := json.Marshal(state)
	if err != nil {
		return false
	}
	s.mu.Lock()
	s.blobs[userID] = raw
	s.mu.Unlock()
	return true
}

func (s *MemoryCartStore) ClearCart(_ context.Context, userID string) bool {
	s.mu.Lock()
	delete(s.blobs, userID)
	s.mu.Unlock()
	return true
}
