package service

import (
	"context"

	"wordwatch/internal/audit"
	"wordwatch/internal/word"
	dErrors "wordwatch/pkg/domain-errors"
	"wordwatch/pkg/models"
)

// ServerExists reports whether an aggregate profile exists for the server.
func (s *Service) ServerExists(ctx context.Context, serverID int64) (bool, error) {
	if err := requireServerID(serverID); err != nil {
		return false, err
	}
	exists, err := s.servers.Exists(ctx, serverID)
	if err != nil {
		return false, wrapStoreErr(err, "server profile")
	}
	return exists, nil
}

// CreateServer creates the aggregate profile. Duplicate creation is a
// conflict, not a silent no-op.
func (s *Service) CreateServer(ctx context.Context, serverID int64) (*models.ServerProfile, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	profile, err := s.servers.Create(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}
	if s.metrics != nil {
		s.metrics.IncrementServerProfilesCreated()
	}
	s.emit(ctx, audit.Event{ServerID: serverID, Action: audit.ActionServerCreated})
	return profile, nil
}

// GetServer returns the full aggregate profile.
func (s *Service) GetServer(ctx context.Context, serverID int64) (*models.ServerProfile, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	profile, err := s.servers.Get(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}
	return profile, nil
}

// GetServerTotalWords returns the server's total word counter.
func (s *Service) GetServerTotalWords(ctx context.Context, serverID int64) (int64, error) {
	profile, err := s.GetServer(ctx, serverID)
	if err != nil {
		return 0, err
	}
	return profile.TotalWords, nil
}

// GetServerTotalFlaggedWords returns the server's flagged-word counter.
func (s *Service) GetServerTotalFlaggedWords(ctx context.Context, serverID int64) (int64, error) {
	profile, err := s.GetServer(ctx, serverID)
	if err != nil {
		return 0, err
	}
	return profile.TotalFlaggedWords, nil
}

// GetServerFlaggedWords returns the server's vocabulary with counts.
func (s *Service) GetServerFlaggedWords(ctx context.Context, serverID int64) (map[string]int64, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	words, err := s.servers.GetWords(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}
	return words, nil
}

// GetServerWordCount returns one word's counter. Reserved field names are
// rejected before any store access.
func (s *Service) GetServerWordCount(ctx context.Context, serverID int64, raw string) (int64, error) {
	if err := requireServerID(serverID); err != nil {
		return 0, err
	}
	if err := word.CheckReserved(raw); err != nil {
		return 0, err
	}
	normalized, err := word.Normalize(raw)
	if err != nil {
		return 0, err
	}
	words, err := s.servers.GetWords(ctx, serverID)
	if err != nil {
		return 0, wrapStoreErr(err, "server profile")
	}
	count, ok := words[normalized]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeNotFound, "word %q is not flagged on this server", normalized)
	}
	return count, nil
}

// FlagServerWords adds words to the server vocabulary at count zero. Words
// already present are reported as conflicts and left untouched; a batch that
// is entirely conflicts fails and mutates nothing.
func (s *Service) FlagServerWords(ctx context.Context, serverID int64, words []string) (*models.FlagWordsResult, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	input, err := word.NormalizeAll(words)
	if err != nil {
		return nil, err
	}

	current, err := s.servers.GetWords(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	result := &models.FlagWordsResult{Flagged: []string{}, Conflicts: []string{}}
	for _, w := range input {
		if _, ok := current[w]; ok {
			result.Conflicts = append(result.Conflicts, w)
		} else {
			result.Flagged = append(result.Flagged, w)
		}
	}
	if len(result.Flagged) == 0 {
		return nil, dErrors.New(dErrors.CodeConflict, "all words are already flagged on this server")
	}

	// One update command: all new words land at zero atomically. Two racing
	// callers may both insert the same word, which is idempotent at zero.
	if err := s.servers.InsertWords(ctx, serverID, result.Flagged); err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	result.FlaggedCount = len(result.Flagged)
	result.ConflictsCount = len(result.Conflicts)
	if s.metrics != nil {
		s.metrics.AddWordsFlagged(result.FlaggedCount)
	}
	s.emit(ctx, audit.Event{ServerID: serverID, Action: audit.ActionServerWordsFlagged, Words: result.Flagged})
	return result, nil
}

// UnflagServerWords removes words from the server vocabulary and subtracts
// their accumulated counts from total_flagged_words. Absent words are
// reported as ignored. Member profiles are left untouched: user vocabulary
// reconciliation is a separate, explicit operation.
func (s *Service) UnflagServerWords(ctx context.Context, serverID int64, words []string) (*models.UnflagWordsResult, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	input, err := word.NormalizeAll(words)
	if err != nil {
		return nil, err
	}

	current, err := s.servers.GetWords(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	result := &models.UnflagWordsResult{Unflagged: []string{}, Ignored: []string{}}
	var rollback int64
	for _, w := range input {
		if count, ok := current[w]; ok {
			rollback += count
			result.Unflagged = append(result.Unflagged, w)
		} else {
			result.Ignored = append(result.Ignored, w)
		}
	}
	if len(result.Unflagged) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no matching words in the server profile")
	}

	if err := s.servers.RemoveWords(ctx, serverID, result.Unflagged, rollback); err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	result.UnflaggedCount = len(result.Unflagged)
	result.IgnoredCount = len(result.Ignored)
	if s.metrics != nil {
		s.metrics.AddWordsUnflagged(result.UnflaggedCount)
	}
	s.emit(ctx, audit.Event{ServerID: serverID, Action: audit.ActionServerWordsUnflagged, Words: result.Unflagged})
	return result, nil
}

// AddServerTotalWords adds delta (possibly negative) to the server's
// total_words counter. A single native increment, safe under concurrency.
func (s *Service) AddServerTotalWords(ctx context.Context, serverID int64, delta int64) error {
	if err := requireServerID(serverID); err != nil {
		return err
	}
	if err := s.servers.IncTotalWords(ctx, serverID, delta); err != nil {
		return wrapStoreErr(err, "server profile")
	}
	return nil
}

// ApplyServerFlagDeltas increments server word counters by the given deltas
// and accumulates the applied sum into total_flagged_words. Words not flagged
// on the server are silently skipped: broadcast updates are forgiving, unlike
// explicit flagging.
func (s *Service) ApplyServerFlagDeltas(ctx context.Context, serverID int64, deltas map[string]int64) error {
	if err := requireServerID(serverID); err != nil {
		return err
	}
	current, err := s.servers.GetWords(ctx, serverID)
	if err != nil {
		return wrapStoreErr(err, "server profile")
	}

	applied := make(map[string]int64, len(deltas))
	var total int64
	for w, delta := range deltas {
		if _, ok := current[w]; ok {
			applied[w] = delta
			total += delta
		}
	}
	if len(applied) == 0 {
		return nil
	}

	if err := s.servers.IncFlags(ctx, serverID, applied, total); err != nil {
		return wrapStoreErr(err, "server profile")
	}
	return nil
}
