// Package user persists the per-member profiles, keyed by
// (discord_server_id, discord_user_id). Like the server store it executes
// single commands and bulk writes; vocabulary decisions stay in the
// synchronization engine.
package user

import (
	"context"

	"wordwatch/pkg/models"
)

// RemoveWordsOp is one member's share of a whole-server unflag: the words to
// unset on that member and the flagged-count rollback their counts add up to.
type RemoveWordsOp struct {
	UserID          int64
	Words           []string
	FlaggedRollback int64
}

// Store is the user-profile persistence contract.
type Store interface {
	// Exists reports whether a profile exists for the (server, user) pair.
	Exists(ctx context.Context, serverID, userID int64) (bool, error)
	// Get returns the full profile or sentinel.ErrNotFound.
	Get(ctx context.Context, serverID, userID int64) (*models.UserProfile, error)
	// GetWords returns the member's word map or sentinel.ErrNotFound.
	GetWords(ctx context.Context, serverID, userID int64) (map[string]int64, error)
	// Insert stores a new profile. Returns sentinel.ErrConflict when the
	// (server, user) pair is already taken.
	Insert(ctx context.Context, profile *models.UserProfile) error
	// InsertMany performs an unordered bulk insert. Per-document duplicate-key
	// failures are partitioned into Conflicts, any other per-document error
	// into Errors; sibling inserts proceed either way.
	InsertMany(ctx context.Context, profiles []*models.UserProfile) (*models.CreateManyResult, error)
	// ListByServer returns every member profile of the server.
	ListByServer(ctx context.Context, serverID int64) ([]*models.UserProfile, error)
	// SetWordsZero sets the given words to 0 in every member profile of the
	// server with one bulk update. Zero members is not an error.
	SetWordsZero(ctx context.Context, serverID int64, words []string) error
	// BulkRemoveWords applies one mixed unset+decrement update per member.
	// On partial failure, already-applied updates are not rolled back.
	BulkRemoveWords(ctx context.Context, serverID int64, ops []RemoveWordsOp) error
	// IncTotalWords adds delta to the member's total_words.
	IncTotalWords(ctx context.Context, serverID, userID, delta int64) error
	// IncFlags atomically increments the member's word counters and adds
	// totalDelta to total_flagged_words.
	IncFlags(ctx context.Context, serverID, userID int64, deltas map[string]int64, totalDelta int64) error
	// Delete removes the member profile or returns sentinel.ErrNotFound.
	Delete(ctx context.Context, serverID, userID int64) error
}
