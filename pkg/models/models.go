// Package models defines the profile documents and the structured outcome
// records returned by batch mutations.
package models

// ServerProfile is the aggregate counter record for one Discord server. It is
// the source of truth for which words are flagged on the server.
//
// Invariants:
//   - ServerID is positive and unique
//   - TotalWords and TotalFlaggedWords are never negative in a quiescent state
//   - TotalFlaggedWords equals the sum of Words values after every completed
//     synchronization operation (the remove-user rollback is not transactional,
//     so the equality is eventual, not continuous)
type ServerProfile struct {
	ServerID          int64            `bson:"discord_server_id" json:"discord_server_id"`
	TotalWords        int64            `bson:"total_words" json:"total_words"`
	TotalFlaggedWords int64            `bson:"total_flagged_words" json:"total_flagged_words"`
	Words             map[string]int64 `bson:"words" json:"words"`
}

// NewServerProfile returns an empty aggregate for the server.
func NewServerProfile(serverID int64) *ServerProfile {
	return &ServerProfile{
		ServerID: serverID,
		Words:    map[string]int64{},
	}
}

// SnapshotZeroed clones the server vocabulary with every count reset to zero.
// User profiles are seeded from this snapshot; words flagged on the server
// afterwards do not appear in existing users until explicitly propagated.
func (p *ServerProfile) SnapshotZeroed() map[string]int64 {
	words := make(map[string]int64, len(p.Words))
	for w := range p.Words {
		words[w] = 0
	}
	return words
}

// UserProfile is one member's contribution record. Its Words key set is a
// point-in-time copy of the owning server's vocabulary, cloned at creation.
type UserProfile struct {
	ServerID          int64            `bson:"discord_server_id" json:"discord_server_id"`
	UserID            int64            `bson:"discord_user_id" json:"discord_user_id"`
	TotalWords        int64            `bson:"total_words" json:"total_words"`
	TotalFlaggedWords int64            `bson:"total_flagged_words" json:"total_flagged_words"`
	Words             map[string]int64 `bson:"words" json:"words"`
}

// NewUserProfile builds a user profile seeded with the given vocabulary
// snapshot. The snapshot map is owned by the profile afterwards.
func NewUserProfile(serverID, userID int64, words map[string]int64) *UserProfile {
	if words == nil {
		words = map[string]int64{}
	}
	return &UserProfile{
		ServerID: serverID,
		UserID:   userID,
		Words:    words,
	}
}

// FlagWordsResult partitions a flag batch into inserted words and conflicts
// (words that were already flagged).
type FlagWordsResult struct {
	FlaggedCount   int      `json:"flagged_count"`
	ConflictsCount int      `json:"conflicts_count"`
	Flagged        []string `json:"flagged"`
	Conflicts      []string `json:"conflicts"`
}

// UnflagWordsResult partitions an unflag batch into removed words and ignored
// words (absent from the profile). For the whole-server user operation the
// lists accumulate across all member profiles without deduplication.
type UnflagWordsResult struct {
	UnflaggedCount int      `json:"unflagged_count"`
	IgnoredCount   int      `json:"ignored_count"`
	Unflagged      []string `json:"unflagged"`
	Ignored        []string `json:"ignored"`
}

// CreateManyResult reports a bulk user-profile insert. Duplicate-key failures
// land in Conflicts, any other per-document error lands in Errors; neither
// aborts sibling insertions.
type CreateManyResult struct {
	InsertedCount   int      `json:"inserted_count"`
	ConflictsCount  int      `json:"conflicts_count"`
	UnhandledErrors int      `json:"unhandled_errors"`
	Inserted        []int64  `json:"inserted"`
	Conflicts       []int64  `json:"conflicts"`
	Errors          []string `json:"errors"`
}
