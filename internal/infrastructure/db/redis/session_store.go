package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/niharika-studio/portfolio-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps admin sessions in Redis, one key per session with the
// idle timeout expressed as the key TTL. Key format: session:<id> → admin id.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore with the given idle TTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, adminID string) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+id, adminID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	adminID, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &domain.Session{
		ID:            id,
		AdminID:       adminID,
		Authenticated: adminID != "",
	}, nil
}

// Touch resets the idle timeout so active admins stay logged in.
func (s *SessionStore) Touch(ctx context.Context, id string) error {
	ok, err := s.client.Expire(ctx, sessionKeyPrefix+id, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// generateSessionID returns 32 bytes of crypto-grade randomness, hex encoded.
func generateSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
