package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for the session cache.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (uuid.UUID, error)
	DeleteSession(ctx context.Context, token string) error
}

// SessionStore keeps a read-through copy of session lookups in Redis.
// The sessions table stays authoritative; the store only short-cuts
// the token-to-user resolution on the hot path.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreSession caches a token-to-user mapping until the session expires.
func (s *SessionStore) StoreSession(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(map[string]string{"user_id": userID.String()})
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+token, payload, ttl)
}

// GetSession resolves a cached token to its user id.
func (s *SessionStore) GetSession(ctx context.Context, token string) (uuid.UUID, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return uuid.Nil, fmt.Errorf("session not cached")
	}

	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return uuid.Nil, fmt.Errorf("unmarshal session data: %w", err)
	}
	userID, err := uuid.Parse(payload["user_id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id in session data: %w", err)
	}
	return userID, nil
}

// DeleteSession evicts a token from the cache.
func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
