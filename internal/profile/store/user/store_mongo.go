package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wordwatch/pkg/models"
	"wordwatch/pkg/platform/sentinel"
)

// Collection is the Mongo collection name for user profiles.
const Collection = "user_profiles"

// duplicateKeyCode is Mongo's E11000 write error code.
const duplicateKeyCode = 11000

// MongoStore persists user profiles in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo constructs a MongoDB-backed user-profile store.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(Collection)}
}

// EnsureIndexes creates the unique compound index on the (server, user) pair.
// Idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "discord_server_id", Value: 1},
			{Key: "discord_user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure user profile indexes: %w", err)
	}
	return nil
}

func pairFilter(serverID, userID int64) bson.M {
	return bson.M{"discord_server_id": serverID, "discord_user_id": userID}
}

func (s *MongoStore) Exists(ctx context.Context, serverID, userID int64) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := s.col.FindOne(ctx, pairFilter(serverID, userID), opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user profile: %w", err)
	}
	return true, nil
}

func (s *MongoStore) Get(ctx context.Context, serverID, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.col.FindOne(ctx, pairFilter(serverID, userID)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	if profile.Words == nil {
		profile.Words = map[string]int64{}
	}
	return &profile, nil
}

func (s *MongoStore) GetWords(ctx context.Context, serverID, userID int64) (map[string]int64, error) {
	opts := options.FindOne().SetProjection(bson.M{"words": 1, "_id": 0})
	var doc struct {
		Words map[string]int64 `bson:"words"`
	}
	err := s.col.FindOne(ctx, pairFilter(serverID, userID), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user words: %w", err)
	}
	if doc.Words == nil {
		doc.Words = map[string]int64{}
	}
	return doc.Words, nil
}

func (s *MongoStore) Insert(ctx context.Context, profile *models.UserProfile) error {
	if _, err := s.col.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user profile %d/%d: %w", profile.ServerID, profile.UserID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create user profile: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertMany(ctx context.Context, profiles []*models.UserProfile) (*models.CreateManyResult, error) {
	writes := make([]mongo.WriteModel, 0, len(profiles))
	for _, profile := range profiles {
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(profile))
	}

	result := &models.CreateManyResult{
		Inserted:  []int64{},
		Conflicts: []int64{},
		Errors:    []string{},
	}
	failed := map[int]bool{}

	_, err := s.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if !errors.As(err, &bwe) {
			return nil, fmt.Errorf("bulk insert user profiles: %w", err)
		}
		// Unordered bulk: siblings of a failed insert still went through.
		// Partition failures by write-error code.
		for _, we := range bwe.WriteErrors {
			if we.Index < 0 || we.Index >= len(profiles) {
				result.Errors = append(result.Errors, we.Message)
				continue
			}
			failed[we.Index] = true
			if we.Code == duplicateKeyCode {
				result.Conflicts = append(result.Conflicts, profiles[we.Index].UserID)
			} else {
				result.Errors = append(result.Errors, we.Message)
			}
		}
	}

	for i, profile := range profiles {
		if !failed[i] {
			result.Inserted = append(result.Inserted, profile.UserID)
		}
	}
	result.InsertedCount = len(result.Inserted)
	result.ConflictsCount = len(result.Conflicts)
	result.UnhandledErrors = len(result.Errors)
	return result, nil
}

func (s *MongoStore) ListByServer(ctx context.Context, serverID int64) ([]*models.UserProfile, error) {
	cursor, err := s.col.Find(ctx, bson.M{"discord_server_id": serverID})
	if err != nil {
		return nil, fmt.Errorf("list user profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*models.UserProfile
	for cursor.Next(ctx) {
		var profile models.UserProfile
		if err := cursor.Decode(&profile); err != nil {
			return nil, fmt.Errorf("decode user profile: %w", err)
		}
		if profile.Words == nil {
			profile.Words = map[string]int64{}
		}
		out = append(out, &profile)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate user profiles: %w", err)
	}
	return out, nil
}

func (s *MongoStore) SetWordsZero(ctx context.Context, serverID int64, words []string) error {
	set := bson.M{}
	for _, w := range words {
		set["words."+w] = int64(0)
	}
	_, err := s.col.UpdateMany(ctx, bson.M{"discord_server_id": serverID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set user words: %w", err)
	}
	return nil
}

func (s *MongoStore) BulkRemoveWords(ctx context.Context, serverID int64, ops []RemoveWordsOp) error {
	if len(ops) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(ops))
	for _, op := range ops {
		unset := bson.M{}
		for _, w := range op.Words {
			unset["words."+w] = ""
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(pairFilter(serverID, op.UserID)).
			SetUpdate(bson.M{
				"$unset": unset,
				"$inc":   bson.M{"total_flagged_words": -op.FlaggedRollback},
			}))
	}
	// Ordered write: on failure, earlier member updates stay applied. The
	// engine favors partial progress over all-or-nothing here.
	if _, err := s.col.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("bulk remove user words: %w", err)
	}
	return nil
}

func (s *MongoStore) IncTotalWords(ctx context.Context, serverID, userID, delta int64) error {
	res, err := s.col.UpdateOne(ctx, pairFilter(serverID, userID),
		bson.M{"$inc": bson.M{"total_words": delta}})
	if err != nil {
		return fmt.Errorf("update user total words: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoStore) IncFlags(ctx context.Context, serverID, userID int64, deltas map[string]int64, totalDelta int64) error {
	inc := bson.M{"total_flagged_words": totalDelta}
	for w, delta := range deltas {
		inc["words."+w] = delta
	}
	res, err := s.col.UpdateOne(ctx, pairFilter(serverID, userID), bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("update user flags: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, serverID, userID int64) error {
	res, err := s.col.DeleteOne(ctx, pairFilter(serverID, userID))
	if err != nil {
		return fmt.Errorf("delete user profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
