// Package server persists the per-server aggregate profiles. The store layer
// is deliberately thin: it executes single update commands and reports
// sentinel facts (not found, conflict); deciding which words to insert,
// remove or increment is the synchronization engine's job.
package server

import (
	"context"

	"wordwatch/pkg/models"
)

// Store is the server-profile persistence contract.
//
// All word slices and delta maps arrive pre-normalized. Mutating methods map
// to one native update command each, so they are individually atomic; no
// method performs a read-modify-write.
type Store interface {
	// Exists reports whether a profile exists for the server.
	Exists(ctx context.Context, serverID int64) (bool, error)
	// Create inserts an empty profile. Returns sentinel.ErrConflict when a
	// profile already exists for the server.
	Create(ctx context.Context, serverID int64) (*models.ServerProfile, error)
	// Get returns the full profile or sentinel.ErrNotFound.
	Get(ctx context.Context, serverID int64) (*models.ServerProfile, error)
	// GetWords returns the flagged-word map or sentinel.ErrNotFound.
	GetWords(ctx context.Context, serverID int64) (map[string]int64, error)
	// InsertWords sets every given word to 0 in one atomic update.
	InsertWords(ctx context.Context, serverID int64, words []string) error
	// RemoveWords unsets the given words and subtracts flaggedRollback from
	// total_flagged_words in the same update.
	RemoveWords(ctx context.Context, serverID int64, words []string, flaggedRollback int64) error
	// IncTotalWords adds delta (possibly negative) to total_words. No lower
	// bound is enforced at this layer.
	IncTotalWords(ctx context.Context, serverID int64, delta int64) error
	// IncFlags atomically increments the given word counters and adds
	// totalDelta to total_flagged_words.
	IncFlags(ctx context.Context, serverID int64, deltas map[string]int64, totalDelta int64) error
}
