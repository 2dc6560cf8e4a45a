package service

import (
	"context"
	"time"

	"wordwatch/internal/audit"
	"wordwatch/internal/profile/store/user"
	"wordwatch/internal/word"
	dErrors "wordwatch/pkg/domain-errors"
	"wordwatch/pkg/models"
)

// UserExists reports whether a profile exists for the (server, user) pair.
func (s *Service) UserExists(ctx context.Context, serverID, userID int64) (bool, error) {
	if err := requirePair(serverID, userID); err != nil {
		return false, err
	}
	exists, err := s.users.Exists(ctx, serverID, userID)
	if err != nil {
		return false, wrapStoreErr(err, "user profile")
	}
	return exists, nil
}

// CreateUser creates a member profile seeded with a zeroed snapshot of the
// server's current vocabulary. The snapshot is a copy, not a live reference:
// words flagged on the server later are absent from this user until a
// propagation step runs. Fails when the server profile does not exist.
func (s *Service) CreateUser(ctx context.Context, serverID, userID int64) (*models.UserProfile, error) {
	if err := requirePair(serverID, userID); err != nil {
		return nil, err
	}
	server, err := s.servers.Get(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	profile := models.NewUserProfile(serverID, userID, server.SnapshotZeroed())
	if err := s.users.Insert(ctx, profile); err != nil {
		return nil, wrapStoreErr(err, "user profile")
	}
	if s.metrics != nil {
		s.metrics.AddUserProfilesCreated(1)
	}
	s.emit(ctx, audit.Event{ServerID: serverID, UserID: userID, Action: audit.ActionUserCreated})
	return profile, nil
}

// CreateUsers bulk-creates member profiles, all seeded from the same
// vocabulary snapshot. Duplicate members are collected as conflicts, other
// per-member store errors under errors; neither aborts sibling insertions.
func (s *Service) CreateUsers(ctx context.Context, serverID int64, userIDs []int64) (*models.CreateManyResult, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "list of user ids must not be empty")
	}
	for _, userID := range userIDs {
		if err := requireUserID(userID); err != nil {
			return nil, err
		}
	}

	server, err := s.servers.Get(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	profiles := make([]*models.UserProfile, 0, len(userIDs))
	for _, userID := range userIDs {
		// Each profile owns its own snapshot map.
		profiles = append(profiles, models.NewUserProfile(serverID, userID, server.SnapshotZeroed()))
	}

	result, err := s.users.InsertMany(ctx, profiles)
	if err != nil {
		return nil, wrapStoreErr(err, "user profiles")
	}
	if s.metrics != nil {
		s.metrics.AddUserProfilesCreated(result.InsertedCount)
	}
	s.emit(ctx, audit.Event{ServerID: serverID, Action: audit.ActionUsersBulkCreated})
	return result, nil
}

// GetUser returns the full member profile.
func (s *Service) GetUser(ctx context.Context, serverID, userID int64) (*models.UserProfile, error) {
	if err := requirePair(serverID, userID); err != nil {
		return nil, err
	}
	profile, err := s.users.Get(ctx, serverID, userID)
	if err != nil {
		return nil, wrapStoreErr(err, "user profile")
	}
	return profile, nil
}

// GetUserTotalWords returns the member's total word counter.
func (s *Service) GetUserTotalWords(ctx context.Context, serverID, userID int64) (int64, error) {
	profile, err := s.GetUser(ctx, serverID, userID)
	if err != nil {
		return 0, err
	}
	return profile.TotalWords, nil
}

// GetUserTotalFlaggedWords returns the member's flagged-word counter.
func (s *Service) GetUserTotalFlaggedWords(ctx context.Context, serverID, userID int64) (int64, error) {
	profile, err := s.GetUser(ctx, serverID, userID)
	if err != nil {
		return 0, err
	}
	return profile.TotalFlaggedWords, nil
}

// GetUserFlaggedWords returns the member's word map.
func (s *Service) GetUserFlaggedWords(ctx context.Context, serverID, userID int64) (map[string]int64, error) {
	if err := requirePair(serverID, userID); err != nil {
		return nil, err
	}
	words, err := s.users.GetWords(ctx, serverID, userID)
	if err != nil {
		return nil, wrapStoreErr(err, "user profile")
	}
	return words, nil
}

// GetUserWordCount returns one word's counter for a member. Reserved field
// names are rejected before any store access.
func (s *Service) GetUserWordCount(ctx context.Context, serverID, userID int64, raw string) (int64, error) {
	if err := requirePair(serverID, userID); err != nil {
		return 0, err
	}
	if err := word.CheckReserved(raw); err != nil {
		return 0, err
	}
	normalized, err := word.Normalize(raw)
	if err != nil {
		return 0, err
	}
	words, err := s.users.GetWords(ctx, serverID, userID)
	if err != nil {
		return 0, wrapStoreErr(err, "user profile")
	}
	count, ok := words[normalized]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeNotFound, "word %q is not tracked for this user", normalized)
	}
	return count, nil
}

// FlagUserWords propagates server vocabulary into every member profile of the
// server. A word is flaggable only when it exists in the server vocabulary
// AND its server-side count is still zero: a word accumulating counts
// anywhere is already active, so it is a conflict even though the operation
// targets user scope. Flagging is server-authoritative.
func (s *Service) FlagUserWords(ctx context.Context, serverID int64, words []string) (*models.FlagWordsResult, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	input, err := word.NormalizeAll(words)
	if err != nil {
		return nil, err
	}

	serverWords, err := s.servers.GetWords(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "server profile")
	}

	result := &models.FlagWordsResult{Flagged: []string{}, Conflicts: []string{}}
	for _, w := range input {
		if count, ok := serverWords[w]; ok && count == 0 {
			result.Flagged = append(result.Flagged, w)
		} else {
			result.Conflicts = append(result.Conflicts, w)
		}
	}
	if len(result.Flagged) == 0 {
		return nil, dErrors.New(dErrors.CodeConflict, "no words eligible for user propagation")
	}

	// One bulk update across all members of the server.
	if err := s.users.SetWordsZero(ctx, serverID, result.Flagged); err != nil {
		return nil, wrapStoreErr(err, "user profiles")
	}

	result.FlaggedCount = len(result.Flagged)
	result.ConflictsCount = len(result.Conflicts)
	s.emit(ctx, audit.Event{ServerID: serverID, Action: audit.ActionUserWordsFlagged, Words: result.Flagged})
	return result, nil
}

// UnflagUserWords removes words from every member profile of the server. For
// each member it computes an unset map plus a flagged-count rollback, then
// applies one mixed unset+decrement update per member in a single batch.
// The unflagged/ignored lists accumulate across members without
// deduplication: a word ignored for one member and matched for another
// appears in both lists. On partial batch failure, applied members stay
// applied.
func (s *Service) UnflagUserWords(ctx context.Context, serverID int64, words []string) (*models.UnflagWordsResult, error) {
	if err := requireServerID(serverID); err != nil {
		return nil, err
	}
	input, err := word.NormalizeAll(words)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	members, err := s.users.ListByServer(ctx, serverID)
	if err != nil {
		return nil, wrapStoreErr(err, "user profiles")
	}

	result := &models.UnflagWordsResult{Unflagged: []string{}, Ignored: []string{}}
	ops := make([]user.RemoveWordsOp, 0, len(members))
	for _, member := range members {
		op := user.RemoveWordsOp{UserID: member.UserID}
		for _, w := range input {
			if count, ok := member.Words[w]; ok {
				op.Words = append(op.Words, w)
				op.FlaggedRollback += count
				result.Unflagged = append(result.Unflagged, w)
			} else {
				result.Ignored = append(result.Ignored, w)
			}
		}
		if len(op.Words) > 0 {
			ops = append(ops, op)
		}
	}

	if err := s.users.BulkRemoveWords(ctx, serverID, ops); err != nil {
		return nil, wrapStoreErr(err, "user profiles")
	}

	result.UnflaggedCount = len(result.Unflagged)
	result.IgnoredCount = len(result.Ignored)
	if s.metrics != nil {
		s.metrics.ObserveUnflagFanout(start)
	}
	s.emit(ctx, audit.Event{ServerID: serverID, Action: audit.ActionUserWordsUnflagged, Words: input})
	return result, nil
}

// ApplyUserFlagDeltas increments one member's word counters, skipping words
// absent from that member's snapshot, and accumulates the applied sum into
// the member's total_flagged_words.
func (s *Service) ApplyUserFlagDeltas(ctx context.Context, serverID, userID int64, deltas map[string]int64) error {
	if err := requirePair(serverID, userID); err != nil {
		return err
	}
	current, err := s.users.GetWords(ctx, serverID, userID)
	if err != nil {
		return wrapStoreErr(err, "user profile")
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

	if err := s.users.IncFlags(ctx, serverID, userID, applied, total); err != nil {
		return wrapStoreErr(err, "user profile")
	}
	return nil
}

// AddUserTotalWords adds delta to one member's total_words counter.
func (s *Service) AddUserTotalWords(ctx context.Context, serverID, userID int64, delta int64) error {
	if err := requirePair(serverID, userID); err != nil {
		return err
	}
	if err := s.users.IncTotalWords(ctx, serverID, userID, delta); err != nil {
		return wrapStoreErr(err, "user profile")
	}
	return nil
}

// RemoveUser rolls the member's counts out of the server aggregate and
// deletes the member profile. The profile is read first, the two server-side
// rollbacks run next, the delete runs last.
//
// The three steps are separate commands with no surrounding transaction: a
// crash between them leaves the server aggregate and the set of live member
// profiles inconsistent. This is a known limitation of the protocol, not a
// condition this method detects or repairs.
func (s *Service) RemoveUser(ctx context.Context, serverID, userID int64) error {
	if err := requirePair(serverID, userID); err != nil {
		return err
	}
	start := time.Now()

	profile, err := s.users.Get(ctx, serverID, userID)
	if err != nil {
		return wrapStoreErr(err, "user profile")
	}

	negated := make(map[string]int64, len(profile.Words))
	for w, count := range profile.Words {
		negated[w] = -count
	}

	// The deltas go through the forgiving path: words the server has since
	// unflagged are skipped rather than resurrected.
	if err := s.ApplyServerFlagDeltas(ctx, serverID, negated); err != nil {
		return err
	}
	if err := s.AddServerTotalWords(ctx, serverID, -profile.TotalWords); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, serverID, userID); err != nil {
		return wrapStoreErr(err, "user profile")
	}

	if s.metrics != nil {
		s.metrics.ObserveRemoveUser(start)
	}
	s.emit(ctx, audit.Event{ServerID: serverID, UserID: userID, Action: audit.ActionUserRemoved})
	return nil
}

func requirePair(serverID, userID int64) error {
	if err := requireServerID(serverID); err != nil {
		return err
	}
	return requireUserID(userID)
}
