package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fibear/portal/pkg/auth"
)

// currentKey is the fixed key holding the single cached session. The portal
// serves one subscriber; there is at most one current identity.
const currentKey = "portal:session:current"

// RedisStore implements auth.SessionStore backed by Redis, the service's
// stand-in for device-local secure storage. The identity provider remains the
// source of truth; this is a thin cached view that survives restarts.
type RedisStore struct {
	client *redis.Client

	// Serializes read-modify-write mutations so SetCurrent and
	// UpdateDisplayName cannot interleave and lose updates.
	mu sync.Mutex
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type record struct {
	UID             string    `json:"uid"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"display_name"`
	ProfileImageRef string    `json:"profile_image_ref,omitempty"`
	IDToken         string    `json:"id_token"`
	RefreshToken    string    `json:"refresh_token"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func toRecord(s auth.Session) record {
	return record{
		UID:             s.Identity.ID,
		Email:           s.Identity.Email,
		DisplayName:     s.Identity.DisplayName,
		ProfileImageRef: s.Identity.ProfileImageRef,
		IDToken:         s.IDToken,
		RefreshToken:    s.RefreshToken,
		ExpiresAt:       s.ExpiresAt,
	}
}

func (r record) session() auth.Session {
	return auth.Session{
		Identity: auth.Identity{
			ID:              r.UID,
			Email:           r.Email,
			DisplayName:     r.DisplayName,
			ProfileImageRef: r.ProfileImageRef,
		},
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
	}
}

func (s *RedisStore) load(ctx context.Context) (*record, error) {
	val, err := s.client.Get(ctx, currentKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // signed out
	}
	if err != nil {
		return nil, err
	}
	var rec record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) save(ctx context.Context, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}
	// No TTL: the session lives until an explicit sign-out; token expiry is
	// handled by refresh, not by dropping the cache.
	return s.client.Set(ctx, currentKey, data, 0).Err()
}

func (s *RedisStore) Current(ctx context.Context) (*auth.Identity, error) {
	rec, err := s.load(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	sess := rec.session()
	return &sess.Identity, nil
}

func (s *RedisStore) CurrentSession(ctx context.Context) (*auth.Session, error) {
	rec, err := s.load(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	sess := rec.session()
	return &sess, nil
}

func (s *RedisStore) SetCurrent(ctx context.Context, sess auth.Session) error {
	if sess.Identity.ID == "" {
		return fmt.Errorf("session: missing identity id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, toRecord(sess))
}

func (s *RedisStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Del(ctx, currentKey).Err()
}

func (s *RedisStore) UpdateDisplayName(ctx context.Context, name string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, auth.ErrNoActiveSession
	}
	rec.DisplayName = name
	if err := s.save(ctx, *rec); err != nil {
		return nil, err
	}
	sess := rec.session()
	return &sess.Identity, nil
}
