package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"noteshare/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache keeps device sessions in redis so the session middleware
// does not hit mongo on every request. Optional: the server runs
// without it when REDIS_URL is unset.
type SessionCache struct {
	client *redis.Client
}

var GlobalSessionCache *SessionCache

func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &SessionCache{client: client}, nil
}

// SetSession caches a session with a TTL matching its expiry.
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session has already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	key := fmt.Sprintf("session:%s", session.SessionID)
	if err := sc.client.Set(context.Background(), key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %v", err)
	}
	return nil
}

// GetSession returns a cached session, or nil on a cache miss.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	key := fmt.Sprintf("session:%s", sessionID)
	data, err := sc.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from cache: %v", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %v", err)
	}

	if time.Now().After(session.ExpiresAt) {
		sc.DeleteSession(sessionID)
		return nil, nil
	}

	return &session, nil
}

func (sc *SessionCache) DeleteSession(sessionID string) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return sc.client.Del(context.Background(), key).Err()
}
