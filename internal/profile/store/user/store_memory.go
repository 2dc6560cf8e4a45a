package user

import (
	"context"
	"sort"
	"sync"

	"wordwatch/pkg/models"
	"wordwatch/pkg/platform/sentinel"
)

type key struct {
	serverID int64
	userID   int64
}

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[key]*models.UserProfile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[key]*models.UserProfile)}
}

func (s *InMemory) Exists(_ context.Context, serverID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[key{serverID, userID}]
	return ok, nil
}

func (s *InMemory) Get(_ context.Context, serverID, userID int64) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[key{serverID, userID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyUserProfile(profile), nil
}

func (s *InMemory) GetWords(_ context.Context, serverID, userID int64) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[key{serverID, userID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyWords(profile.Words), nil
}

func (s *InMemory) Insert(_ context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{profile.ServerID, profile.UserID}
	if _, ok := s.profiles[k]; ok {
		return sentinel.ErrConflict
	}
	s.profiles[k] = copyUserProfile(profile)
	return nil
}

func (s *InMemory) InsertMany(_ context.Context, profiles []*models.UserProfile) (*models.CreateManyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := &models.CreateManyResult{
		Inserted:  []int64{},
		Conflicts: []int64{},
		Errors:    []string{},
	}
	for _, profile := range profiles {
		k := key{profile.ServerID, profile.UserID}
		if _, ok := s.profiles[k]; ok {
			result.Conflicts = append(result.Conflicts, profile.UserID)
			continue
		}
		s.profiles[k] = copyUserProfile(profile)
		result.Inserted = append(result.Inserted, profile.UserID)
	}
	result.InsertedCount = len(result.Inserted)
	result.ConflictsCount = len(result.Conflicts)
	return result, nil
}

func (s *InMemory) ListByServer(_ context.Context, serverID int64) ([]*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.UserProfile
	for k, profile := range s.profiles {
		if k.serverID == serverID {
			out = append(out, copyUserProfile(profile))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *InMemory) SetWordsZero(_ context.Context, serverID int64, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, profile := range s.profiles {
		if k.serverID != serverID {
			continue
		}
		for _, w := range words {
			profile.Words[w] = 0
		}
	}
	return nil
}

func (s *InMemory) BulkRemoveWords(_ context.Context, serverID int64, ops []RemoveWordsOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		profile, ok := s.profiles[key{serverID, op.UserID}]
		if !ok {
			continue
		}
		for _, w := range op.Words {
			delete(profile.Words, w)
		}
		profile.TotalFlaggedWords -= op.FlaggedRollback
	}
	return nil
}

func (s *InMemory) IncTotalWords(_ context.Context, serverID, userID, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[key{serverID, userID}]
	if !ok {
		return sentinel.ErrNotFound
	}
	profile.TotalWords += delta
	return nil
}

func (s *InMemory) IncFlags(_ context.Context, serverID, userID int64, deltas map[string]int64, totalDelta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[key{serverID, userID}]
	if !ok {
		return sentinel.ErrNotFound
	}
	for w, delta := range deltas {
		profile.Words[w] += delta
	}
	profile.TotalFlaggedWords += totalDelta
	return nil
}

func (s *InMemory) Delete(_ context.Context, serverID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{serverID, userID}
	if _, ok := s.profiles[k]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.profiles, k)
	return nil
}

func copyUserProfile(p *models.UserProfile) *models.UserProfile {
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
