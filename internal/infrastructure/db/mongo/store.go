package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollection = "client_sessions"

// SessionStore is a KeyValueStore backed by a single document:
// {_id: <client_id>, values: {<key>: <value>}, updated_at: <unix>}
type SessionStore struct {
	coll     *mongo.Collection
	clientID string
}

func NewSessionStore(db *mongo.Database, clientID string) *SessionStore {
	return &SessionStore{coll: db.Collection(sessionCollection), clientID: clientID}
}

type sessionDoc struct {
	ClientID  string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt int64             `bson:"updated_at"`
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc sessionDoc
	opts := options.FindOne().SetProjection(bson.M{valuePath(key): 1})
	err := s.coll.FindOne(ctx, bson.M{"_id": s.clientID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find session %s: %w", key, err)
	}
	v, ok := doc.Values[key]
	return v, ok, nil
}

func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{
		valuePath(key): value,
		"updated_at":   time.Now().Unix(),
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.clientID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set session %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, key string) error {
	update := bson.M{
		"$unset": bson.M{valuePath(key): ""},
		"$set":   bson.M{"updated_at": time.Now().Unix()},
	}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.clientID}, update); err != nil {
		return fmt.Errorf("remove session %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func valuePath(key string) string {
	return "values." + key
}
