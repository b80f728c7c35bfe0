package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	goDigest "github.com/MrEthical07/goDigest"
)

// DefaultPrefix namespaces credential keys: "<prefix>:<userID>".
const DefaultPrefix = "gdc"

var (
	// ErrNotFound is returned when no hash is stored for a user.
	ErrNotFound = goDigest.ErrCredentialNotFound
	// ErrUnavailable wraps every Redis failure.
	ErrUnavailable = goDigest.ErrCredentialStoreUnavailable
	// ErrEmptyHash is returned by Set for an empty hash.
	ErrEmptyHash = errors.New("encoded hash is empty")
)

const compareAndSwapScript = `
local current = redis.call("GET", KEYS[1])
if not current then
  return 0
end
if current ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "KEEPTTL")
return 1
`

var compareAndSwapLua = redis.NewScript(compareAndSwapScript)

// RedisStore keeps one encoded hash per user in a Redis string key and
// implements goDigest.CredentialStore.
//
// RedisStore is safe for concurrent use.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore returns a store using client. An empty prefix selects
// [DefaultPrefix].
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + ":" + userID
}

// Get returns the stored hash for userID.
//
//	Performance: 1 Redis GET.
func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	encoded, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return encoded, nil
}

// Set stores encoded for userID, replacing any previous hash.
//
//	Performance: 1 Redis SET.
func (s *RedisStore) Set(ctx context.Context, userID, encoded string) error {
	if encoded == "" {
		return ErrEmptyHash
	}
	if err := s.redis.Set(ctx, s.key(userID), encoded, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// SetIfAbsent stores encoded only when userID has no hash yet and reports
// whether it did.
//
//	Performance: 1 Redis SETNX.
func (s *RedisStore) SetIfAbsent(ctx context.Context, userID, encoded string) (bool, error) {
	if encoded == "" {
		return false, ErrEmptyHash
	}
	ok, err := s.redis.SetNX(ctx, s.key(userID), encoded, 0).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ok, nil
}

// Delete removes userID's hash. Deleting a missing user is not an error.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CompareAndSwap replaces userID's hash with new only while it still equals
// old. The check and the write run atomically in one Lua script, so a
// password change racing an upgrade is never overwritten.
//
//	Performance: 1 Redis EVALSHA.
func (s *RedisStore) CompareAndSwap(ctx context.Context, userID, old, new string) (bool, error) {
	if new == "" {
		return false, ErrEmptyHash
	}
	swapped, err := compareAndSwapLua.Run(ctx, s.redis, []string{s.key(userID)}, old, new).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return swapped == 1, nil
}
