package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker invalidates access tokens before they expire. Logout and
// forced session teardown both go through here; the middleware rejects a
// revoked token with AUTH_EXPIRED exactly as it rejects an expired one.
type SessionRevoker interface {
	// Revoke marks a single token (by its JTI) as revoked until it would
	// have expired anyway
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks whether a token's JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUser invalidates every token the user currently holds
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserRevoked checks whether a token issued at the given time falls
	// before the user's last forced teardown
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisSessionRevoker implements SessionRevoker on Redis
type RedisSessionRevoker struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionRevoker creates a session revoker over an existing client
func NewRedisSessionRevoker(client *redis.Client) *RedisSessionRevoker {
	return &RedisSessionRevoker{
		client:    client,
		keyPrefix: "crm:session:revoked:",
	}
}

func (r *RedisSessionRevoker) jtiKey(jti string) string {
	return r.keyPrefix + "jti:" + jti
}

func (r *RedisSessionRevoker) userKey(userID string) string {
	return r.keyPrefix + "user:" + userID
}

// Revoke marks a token as revoked for its remaining lifetime
func (r *RedisSessionRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked checks whether a token's JTI has been revoked
func (r *RedisSessionRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return exists > 0, nil
}

// RevokeUser stores a teardown timestamp; tokens issued at or before it are
// rejected
func (r *RedisSessionRevoker) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}
	return nil
}

// IsUserRevoked checks a token's issue time against the teardown timestamp
func (r *RedisSessionRevoker) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	val, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user session revocation: %w", err)
	}

	var revokedAt int64
	if _, err := fmt.Sscanf(val, "%d", &revokedAt); err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return issuedAt.Unix() <= revokedAt, nil
}

var _ SessionRevoker = (*RedisSessionRevoker)(nil)

// InMemorySessionRevoker is the single-process fallback used when Redis is
// not configured, and in tests
type InMemorySessionRevoker struct {
	mu       sync.RWMutex
	jtis     map[string]time.Time // JTI -> revocation entry expiry
	userTime map[string]time.Time // userID -> teardown time
}

// NewInMemorySessionRevoker creates an in-memory session revoker
func NewInMemorySessionRevoker() *InMemorySessionRevoker {
	return &InMemorySessionRevoker{
		jtis:     make(map[string]time.Time),
		userTime: make(map[string]time.Time),
	}
}

// Revoke marks a token as revoked for its remaining lifetime
func (r *InMemorySessionRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jtis[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks whether a token's JTI has been revoked
func (r *InMemorySessionRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.jtis[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(r.jtis, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUser stores a teardown timestamp for the user
func (r *InMemorySessionRevoker) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userTime[userID] = time.Now()
	return nil
}

// IsUserRevoked checks a token's issue time against the teardown timestamp
func (r *InMemorySessionRevoker) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	revokedAt, ok := r.userTime[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.UnixNano() <= revokedAt.UnixNano(), nil
}

var _ SessionRevoker = (*InMemorySessionRevoker)(nil)
