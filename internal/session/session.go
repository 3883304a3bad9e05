// Package session is the server-side session store. The cookie carries only
// an opaque id; everything the authorization gates trust lives in redis and
// disappears at logout or after the TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session: not found")

const keyPrefix = "session:"

// Actor roles stored in the session. The role is the only authorization
// signal in the system; there is no hierarchy.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

type Session struct {
	Role        string    `json:"role"`
	DoctorID    string    `json:"doctorId,omitempty"`
	Email       string    `json:"email,omitempty"`
	PatientName string    `json:"patientName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Manager creates, resolves and destroys sessions. Handlers depend on the
// interface so tests can substitute a mock.
type Manager interface {
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, id string) (*Session, error)
	// Destroy is idempotent: destroying a missing session is a no-op success.
	Destroy(ctx context.Context, id string) error
}

type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	return &RedisManager{client: client, ttl: ttl}
}

func (m *RedisManager) Create(ctx context.Context, s Session) (string, error) {
	s.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	id := uuid.NewString()
	if err := m.client.Set(ctx, keyPrefix+id, payload, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (m *RedisManager) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := m.client.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (m *RedisManager) Destroy(ctx context.Context, id string) error {
	if err := m.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
