package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/storage"
)

// Storage is a Redis-backed session store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.SessionStore = (*Storage)(nil)

func (s *Storage) GetSession(ctx context.Context, channelID string) (model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(channelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.GameSession{}, model.ErrSessionNotFound
		}
		return model.GameSession{}, err
	}
	return decodeSession(data)
}

func (s *Storage) SaveSession(ctx context.Context, session model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ChannelID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) DeleteSession(ctx context.Context, channelID string) (bool, error) {
	n, err := s.client.Del(ctx, sessionKey(channelID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]model.GameSession, error) {
	keys, err := s.sessionKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []model.GameSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]model.GameSession, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Expired between SCAN and MGET
		}
		session, err := decodeSession([]byte(str))
		if err != nil {
			continue // Skip invalid data
		}
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ChannelID < sessions[j].ChannelID
	})
	return sessions, nil
}

func (s *Storage) CleanupSessions(ctx context.Context, now time.Time, maxAge time.Duration) (int, error) {
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return 0, err
	}

	var stale []string
	for _, session := range sessions {
		if storage.IsExpired(session, now, maxAge) {
			stale = append(stale, sessionKey(session.ChannelID))
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	n, err := s.client.Del(ctx, stale...).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// sessionKeys collects all session keys using SCAN
func (s *Storage) sessionKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, sessionKeyPattern(), s.cfg.ScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan session keys: %w", err)
	}
	return keys, nil
}

func decodeSession(data []byte) (model.GameSession, error) {
	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return model.GameSession{}, err
	}
	if session.Guesses == nil {
		session.Guesses = []string{}
	}
	if session.Hints == nil {
		session.Hints = []string{}
	}
	return session, nil
}
