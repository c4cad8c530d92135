package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"ridemedia-backend/internal/apperrors"
)

// Session - активная сессия администратора
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore хранит активные сессии. Токен без записи в хранилище недействителен.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type RedisSessionStore struct {
	redisClient *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redisClient: client}
}

func sessionKey(id string) string {
	return fmt.Sprintf("admin_session:%s", id)
}

func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации сессии: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("сессия %s уже истекла", session.ID)
	}

	if err := s.redisClient.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при сохранении сессии в Redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.redisClient.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("ошибка при получении сессии из Redis: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("ошибка при десериализации сессии: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.redisClient.Del(ctx, sessionKey(id)).Err()
}

// MemorySessionStore используется, когда Redis недоступен. Сессии теряются при перезапуске.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session), now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil, fmt.Errorf("session %s expired: %w", id, apperrors.ErrNotFound)
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type sessionContextKey struct{}

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}
