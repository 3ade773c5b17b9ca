package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/storage"
)

// Storage is an in-memory session store keyed by channel
type Storage struct {
	mu       sync.RWMutex
	sessions map[string]model.GameSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[string]model.GameSession),
	}
}

// Ensure Storage implements the interface
var _ storage.SessionStore = (*Storage)(nil)

func (s *Storage) GetSession(ctx context.Context, channelID string) (model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[channelID]
	if !ok {
		return model.GameSession{}, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) SaveSession(ctx context.Context, session model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChannelID] = session.Clone()
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[channelID]
	delete(s.sessions, channelID)
	return ok, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.GameSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ChannelID < result[j].ChannelID
	})
	return result, nil
}

func (s *Storage) CleanupSessions(ctx context.Context, now time.Time, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for channelID, session := range s.sessions {
		if storage.IsExpired(session, now, maxAge) {
			delete(s.sessions, channelID)
			removed++
		}
	}
	return removed, nil
}
