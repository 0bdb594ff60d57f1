package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ezzcrafts/testimania/pkg/crypto"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SigninTokenTTL bounds how long a post-verification signin token lives.
const SigninTokenTTL = 10 * time.Minute

var ErrTokenConsumed = errors.New("signin token invalid or already used")

// SigninTokenStore issues short-lived single-use tokens handed out after a
// successful email verification, so the client can open a session without
// re-sending the password it just typed.
type SigninTokenStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}

// RedisSigninTokens stores tokens in redis; GETDEL makes consumption
// single-use even across multiple server instances.
type RedisSigninTokens struct {
	client *redis.Client
}

func NewRedisSigninTokens(client *redis.Client) *RedisSigninTokens {
	return &RedisSigninTokens{client: client}
}

func (s *RedisSigninTokens) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := crypto.GenerateToken(32)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, "signin:"+token, userID.String(), SigninTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSigninTokens) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.GetDel(ctx, "signin:"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrTokenConsumed
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrTokenConsumed
	}
	return id, nil
}

// MemorySigninTokens is the single-process fallback used when redis is not
// configured, and by tests.
type MemorySigninTokens struct {
	mu     sync.Mutex
	tokens map[string]memToken
}

type memToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewMemorySigninTokens() *MemorySigninTokens {
	return &MemorySigninTokens{tokens: make(map[string]memToken)}
}

func (s *MemorySigninTokens) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := crypto.GenerateToken(32)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for t, entry := range s.tokens {
		if time.Now().After(entry.expiresAt) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = memToken{userID: userID, expiresAt: time.Now().Add(SigninTokenTTL)}
	return token, nil
}

func (s *MemorySigninTokens) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, ErrTokenConsumed
	}
	delete(s.tokens, token)
	if time.Now().After(entry.expiresAt) {
		return uuid.Nil, ErrTokenConsumed
	}
	return entry.userID, nil
}

var (
	_ SigninTokenStore = (*RedisSigninTokens)(nil)
	_ SigninTokenStore = (*MemorySigninTokens)(nil)
)
