package server

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

// Collection is the Mongo collection name for server profiles.
const Collection = "server_profiles"

// MongoStore persists server profiles in MongoDB. Each mutating method issues
// exactly one update command, so per-call atomicity comes from the server.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo constructs a MongoDB-backed server-profile store.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(Collection)}
}

// EnsureIndexes creates the unique index on discord_server_id. Idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "discord_server_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure server profile indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Exists(ctx context.Context, serverID int64) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := s.col.FindOne(ctx, bson.M{"discord_server_id": serverID}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check server profile: %w", err)
	}
	return true, nil
}

func (s *MongoStore) Create(ctx context.Context, serverID int64) (*models.ServerProfile, error) {
	profile := models.NewServerProfile(serverID)
	if _, err := s.col.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("server profile %d: %w", serverID, sentinel.ErrConflict)
		}
		return nil, fmt.Errorf("create server profile: %w", err)
	}
	return profile, nil
}

func (s *MongoStore) Get(ctx context.Context, serverID int64) (*models.ServerProfile, error) {
	var profile models.ServerProfile
	err := s.col.FindOne(ctx, bson.M{"discord_server_id": serverID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get server profile: %w", err)
	}
	if profile.Words == nil {
		profile.Words = map[string]int64{}
	}
	return &profile, nil
}

func (s *MongoStore) GetWords(ctx context.Context, serverID int64) (map[string]int64, error) {
	opts := options.FindOne().SetProjection(bson.M{"words": 1, "_id": 0})
	var doc struct {
		Words map[string]int64 `bson:"words"`
	}
	err := s.col.FindOne(ctx, bson.M{"discord_server_id": serverID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get server words: %w", err)
	}
	if doc.Words == nil {
		doc.Words = map[string]int64{}
	}
	return doc.Words, nil
}

func (s *MongoStore) InsertWords(ctx context.Context, serverID int64, words []string) error {
	set := bson.M{}
	for _, w := range words {
		set["words."+w] = int64(0)
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"discord_server_id": serverID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("insert server words: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoStore) RemoveWords(ctx context.Context, serverID int64, words []string, flaggedRollback int64) error {
	unset := bson.M{}
	for _, w := range words {
		unset["words."+w] = ""
	}
	update := bson.M{
		"$unset": unset,
		"$inc":   bson.M{"total_flagged_words": -flaggedRollback},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"discord_server_id": serverID}, update)
	if err != nil {
		return fmt.Errorf("remove server words: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoStore) IncTotalWords(ctx context.Context, serverID int64, delta int64) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"discord_server_id": serverID},
		bson.M{"$inc": bson.M{"total_words": delta}})
	if err != nil {
		return fmt.Errorf("update server total words: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoStore) IncFlags(ctx context.Context, serverID int64, deltas map[string]int64, totalDelta int64) error {
	inc := bson.M{"total_flagged_words": totalDelta}
	for w, delta := range deltas {
		inc["words."+w] = delta
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"discord_server_id": serverID}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("update server flags: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
