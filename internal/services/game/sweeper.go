package game

import (
	"context"
	"log/slog"
	"time"
)

// InactiveCleaner evicts users that have not been seen for a number of days
type InactiveCleaner interface {
	CleanupInactive(daysInactive int) int
}

// HubCleaner drops event hubs nobody is subscribed to
type HubCleaner interface {
	CleanupEmptyHubs() int
}

// SweeperConfig controls how often stale state is removed
type SweeperConfig struct {
	Interval         time.Duration
	SessionMaxAge    time.Duration
	InactiveUserDays int
}

// Sweeper periodically removes stale sessions and inactive preferences
type Sweeper struct {
	controller  *Controller
	preferences InactiveCleaner
	hubs        HubCleaner
	cfg         SweeperConfig
	logger      *slog.Logger
}

// NewSweeper creates a Sweeper; preferences may be nil to skip preference cleanup
func NewSweeper(controller *Controller, preferences InactiveCleaner, cfg SweeperConfig, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		controller:  controller,
		preferences: preferences,
		cfg:         cfg,
		logger:      logger,
	}
}

// WithHubs also removes idle event hubs on each sweep
func (s *Sweeper) WithHubs(hubs HubCleaner) *Sweeper {
	s.hubs = hubs
	return s
}

// Run sweeps on every tick until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	if s.cfg.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one cleanup pass and returns the sessions and users removed
func (s *Sweeper) Sweep(ctx context.Context) (sessions, users int) {
	removed, err := s.controller.Cleanup(ctx, s.cfg.SessionMaxAge)
	if err != nil {
		s.logger.Error("session sweep failed", slog.String("error", err.Error()))
	}
	sessions = removed

	if s.preferences != nil && s.cfg.InactiveUserDays > 0 {
		users = s.preferences.CleanupInactive(s.cfg.InactiveUserDays)
	}

	hubs := 0
	if s.hubs != nil {
		hubs = s.hubs.CleanupEmptyHubs()
	}

	s.logger.Debug("sweep complete",
		slog.Int("sessions_removed", sessions),
		slog.Int("users_removed", users),
		slog.Int("hubs_removed", hubs),
	)
	return sessions, users
}
