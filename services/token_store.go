package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore เก็บ session ที่ยัง active ของผู้ใช้แต่ละคน (key = jti ของ JWT)
// token ที่ถูก revoke แล้วจะไม่ผ่าน middleware อีก แม้ตัว JWT ยังไม่หมดอายุ
type TokenStore interface {
	Save(ctx context.Context, userID uint, jti string, ttl time.Duration) error
	Revoke(ctx context.Context, userID uint, jti string) error
	// RevokeAll ลบทุก session ของ user แบบ best-effort:
	// ลบตัวไหนพลาดก็ข้าม ไม่ abort ทั้งชุด
	RevokeAll(ctx context.Context, userID uint) error
	IsLive(ctx context.Context, userID uint, jti string) (bool, error)
}

// ---------------- Redis ----------------

type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func sessionKey(userID uint, jti string) string {
	return fmt.Sprintf("session:%d:%s", userID, jti)
}

func (s *RedisTokenStore) Save(ctx context.Context, userID uint, jti string, ttl time.Duration) error {
	return s.Client.Set(ctx, sessionKey(userID, jti), "1", ttl).Err()
}

func (s *RedisTokenStore) Revoke(ctx context.Context, userID uint, jti string) error {
	return s.Client.Del(ctx, sessionKey(userID, jti)).Err()
}

func (s *RedisTokenStore) RevokeAll(ctx context.Context, userID uint) error {
	pattern := fmt.Sprintf("session:%d:*", userID)
	iter := s.Client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		// token หมดอายุ/หายไปแล้วก็ไม่เป็นไร ลบตัวถัดไป
		_ = s.Client.Del(ctx, iter.Val()).Err()
	}
	return iter.Err()
}

func (s *RedisTokenStore) IsLive(ctx context.Context, userID uint, jti string) (bool, error) {
	n, err := s.Client.Exists(ctx, sessionKey(userID, jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ---------------- In-memory (dev/test) ----------------

type MemoryTokenStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time // key → expiry
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{sessions: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Save(_ context.Context, userID uint, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(userID, jti)] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, userID uint, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(userID, jti))
	return nil
}

func (s *MemoryTokenStore) RevokeAll(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := fmt.Sprintf("session:%d:", userID)
	for k := range s.sessions {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.sessions, k)
		}
	}
	return nil
}

func (s *MemoryTokenStore) IsLive(_ context.Context, userID uint, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.sessions[sessionKey(userID, jti)]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(s.sessions, sessionKey(userID, jti))
		return false, nil
	}
	return true, nil
}
