package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rdv360:session"

// SessionStore is a KeyValueStore scoped to one client id.
// Key format: rdv360:session:<client_id>:<key>
type SessionStore struct {
	client   redis.UniversalClient
	clientID string
}

func NewSessionStore(client redis.UniversalClient, clientID string) *SessionStore {
	return &SessionStore{client: client, clientID: clientID}
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores the value without expiry; the session lives until logout.
func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, s.clientID, key)
}
