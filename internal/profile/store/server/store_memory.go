package server

import (
	"context"
	"sync"

	"wordwatch/pkg/models"
	"wordwatch/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
// Every method holds the lock for its whole body, which makes each call
// atomic the same way a single Mongo update command is.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[int64]*models.ServerProfile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[int64]*models.ServerProfile)}
}

func (s *InMemory) Exists(_ context.Context, serverID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[serverID]
	return ok, nil
}

func (s *InMemory) Create(_ context.Context, serverID int64) (*models.ServerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[serverID]; ok {
		return nil, sentinel.ErrConflict
	}
	profile := models.NewServerProfile(serverID)
	s.profiles[serverID] = profile
	return copyServerProfile(profile), nil
}

func (s *InMemory) Get(_ context.Context, serverID int64) (*models.ServerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[serverID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyServerProfile(profile), nil
}

func (s *InMemory) GetWords(_ context.Context, serverID int64) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[serverID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyWords(profile.Words), nil
}

func (s *InMemory) InsertWords(_ context.Context, serverID int64, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[serverID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, w := range words {
		profile.Words[w] = 0
	}
	return nil
}

func (s *InMemory) RemoveWords(_ context.Context, serverID int64, words []string, flaggedRollback int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[serverID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, w := range words {
		delete(profile.Words, w)
	}
	profile.TotalFlaggedWords -= flaggedRollback
	return nil
}

func (s *InMemory) IncTotalWords(_ context.Context, serverID int64, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[serverID]
	if !ok {
		return sentinel.ErrNotFound
	}
	profile.TotalWords += delta
	return nil
}

func (s *InMemory) IncFlags(_ context.Context, serverID int64, deltas map[string]int64, totalDelta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[serverID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for w, delta := range deltas {
		profile.Words[w] += delta
	}
	profile.TotalFlaggedWords += totalDelta
	return nil
}

func copyServerProfile(p *models.ServerProfile) *models.ServerProfile {
	clone := *p
	clone.Words = copyWords(p.Words)
	return &clone
}

func copyWords(words map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(words))
	for w, n := range words {
		out[w] = n
	}
	return out
}
