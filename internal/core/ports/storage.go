package ports

import "context"

// Keys under which the session is persisted. They are written together on
// login/refresh and removed together on logout.
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// SessionKeys lists every persisted session key.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// KeyValueStore is the durable per-client storage the session is persisted in.
// Get reports ok=false for a missing key; that is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
