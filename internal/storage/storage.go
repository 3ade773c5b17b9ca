package storage

import (
	"context"
	"time"

	"github.com/mcoot/champguess/internal/model"
)

// SessionStore holds at most one game session per channel
type SessionStore interface {
	// GetSession returns the session for a channel or model.ErrSessionNotFound
	GetSession(ctx context.Context, channelID string) (model.GameSession, error)
	// SaveSession stores the session, replacing any previous one for its channel
	SaveSession(ctx context.Context, session model.GameSession) error
	// DeleteSession removes the channel's session; reports whether one existed
	DeleteSession(ctx context.Context, channelID string) (bool, error)
	// ListSessions returns copies of all stored sessions
	ListSessions(ctx context.Context) ([]model.GameSession, error)
	// CleanupSessions removes sessions older than maxAge or no longer active
	CleanupSessions(ctx context.Context, now time.Time, maxAge time.Duration) (int, error)
}

// IsExpired reports whether a session should be removed by a cleanup sweep
func IsExpired(session model.GameSession, now time.Time, maxAge time.Duration) bool {
	return now.Sub(session.StartTime) > maxAge || !session.Active()
}
