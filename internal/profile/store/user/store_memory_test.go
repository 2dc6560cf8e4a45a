package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"wordwatch/pkg/models"
	"wordwatch/pkg/platform/sentinel"
)

type UserStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *UserStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

func (s *UserStoreSuite) newProfile(serverID, userID int64, words map[string]int64) *models.UserProfile {
	return models.NewUserProfile(serverID, userID, words)
}

func (s *UserStoreSuite) TestInsertAndLookups() {
	s.Run("inserts and finds by pair", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 10, map[string]int64{"foo": 0})))

		profile, err := s.store.Get(s.ctx, 1, 10)
		s.Require().NoError(err)
		s.Equal(int64(10), profile.UserID)
		s.Equal(map[string]int64{"foo": 0}, profile.Words)

		exists, err := s.store.Exists(s.ctx, 1, 10)
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("same user on another server is a distinct profile", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(2, 10, nil)))

		exists, err := s.store.Exists(s.ctx, 2, 10)
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("duplicate pair returns ErrConflict", func() {
		err := s.store.Insert(s.ctx, s.newProfile(1, 10, nil))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown pair returns ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, 1, 999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UserStoreSuite) TestInsertMany() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 2, nil)))

	s.Run("partitions duplicates from insertions", func() {
		result, err := s.store.InsertMany(s.ctx, []*models.UserProfile{
			s.newProfile(1, 1, nil),
			s.newProfile(1, 2, nil),
			s.newProfile(1, 3, nil),
		})
		s.Require().NoError(err)
		s.Equal([]int64{1, 3}, result.Inserted)
		s.Equal([]int64{2}, result.Conflicts)
		s.Equal(2, result.InsertedCount)
		s.Equal(1, result.ConflictsCount)
	})

	s.Run("duplicate inside the batch conflicts with itself", func() {
		result, err := s.store.InsertMany(s.ctx, []*models.UserProfile{
			s.newProfile(1, 4, nil),
			s.newProfile(1, 4, nil),
		})
		s.Require().NoError(err)
		s.Equal([]int64{4}, result.Inserted)
		s.Equal([]int64{4}, result.Conflicts)
	})
}

func (s *UserStoreSuite) TestListByServer() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 3, nil)))
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 1, nil)))
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(2, 2, nil)))

	members, err := s.store.ListByServer(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal(int64(1), members[0].UserID)
	s.Equal(int64(3), members[1].UserID)
}

func (s *UserStoreSuite) TestServerWideMutations() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 1, map[string]int64{"foo": 2})))
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 2, map[string]int64{"foo": 5, "bar": 1})))
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(2, 1, map[string]int64{"foo": 9})))

	s.Run("set words zero touches every member of the server", func() {
		s.Require().NoError(s.store.SetWordsZero(s.ctx, 1, []string{"foo", "new"}))

		words, err := s.store.GetWords(s.ctx, 1, 1)
		s.Require().NoError(err)
		s.Equal(map[string]int64{"foo": 0, "new": 0}, words)

		// Other servers are untouched.
		other, err := s.store.GetWords(s.ctx, 2, 1)
		s.Require().NoError(err)
		s.Equal(int64(9), other["foo"])
	})

	s.Run("bulk remove applies per-member unsets and rollbacks", func() {
		s.Require().NoError(s.store.IncFlags(s.ctx, 1, 2, map[string]int64{"bar": 3}, 4))

		err := s.store.BulkRemoveWords(s.ctx, 1, []RemoveWordsOp{
			{UserID: 2, Words: []string{"bar"}, FlaggedRollback: 4},
		})
		s.Require().NoError(err)

		profile, err := s.store.Get(s.ctx, 1, 2)
		s.Require().NoError(err)
		s.NotContains(profile.Words, "bar")
		s.Zero(profile.TotalFlaggedWords)
	})
}

func (s *UserStoreSuite) TestCountersAndDelete() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 1, map[string]int64{"foo": 0})))

	s.Run("increments accumulate", func() {
		s.Require().NoError(s.store.IncTotalWords(s.ctx, 1, 1, 7))
		s.Require().NoError(s.store.IncFlags(s.ctx, 1, 1, map[string]int64{"foo": 2}, 2))

		profile, err := s.store.Get(s.ctx, 1, 1)
		s.Require().NoError(err)
		s.Equal(int64(7), profile.TotalWords)
		s.Equal(int64(2), profile.TotalFlaggedWords)
		s.Equal(int64(2), profile.Words["foo"])
	})

	s.Run("delete removes the pair", func() {
		s.Require().NoError(s.store.Delete(s.ctx, 1, 1))

		exists, err := s.store.Exists(s.ctx, 1, 1)
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("delete of unknown pair returns ErrNotFound", func() {
		s.ErrorIs(s.store.Delete(s.ctx, 1, 1), sentinel.ErrNotFound)
	})

	s.Run("counter mutations on unknown pair return ErrNotFound", func() {
		s.ErrorIs(s.store.IncTotalWords(s.ctx, 1, 999, 1), sentinel.ErrNotFound)
		s.ErrorIs(s.store.IncFlags(s.ctx, 1, 999, map[string]int64{"x": 1}, 1), sentinel.ErrNotFound)
	})
}

func (s *UserStoreSuite) TestInsertCopiesTheProfile() {
	words := map[string]int64{"foo": 0}
	s.Require().NoError(s.store.Insert(s.ctx, s.newProfile(1, 1, words)))

	// Mutating the caller's map must not leak into the stored profile.
	words["foo"] = 42

	stored, err := s.store.GetWords(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Zero(stored["foo"])
}
