package audit

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the Mongo collection name for audit events.
const Collection = "audit_events"

// MongoStore persists audit events in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(Collection)}
}

func (s *MongoStore) Append(ctx context.Context, event Event) error {
	if _, err := s.col.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *MongoStore) ListByServer(ctx context.Context, serverID int64) ([]Event, error) {
	opts := options.Find().SetSort(bson.M{"at": 1})
	cursor, err := s.col.Find(ctx, bson.M{"discord_server_id": serverID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var out []Event
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}
	return out, nil
}
