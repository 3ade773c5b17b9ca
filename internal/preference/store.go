package preference

import (
	"io"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mcoot/champguess/internal/dependencies/clock"
	"github.com/mcoot/champguess/internal/model"
)

// Config holds capacity and expiry settings for the preference cache
type Config struct {
	Capacity int
	TTL      time.Duration
}

// DefaultConfig returns sensible defaults for the preference cache
func DefaultConfig() Config {
	return Config{
		Capacity: 1000,
		TTL:      24 * time.Hour,
	}
}

// Update carries the user-editable fields; nil fields are left unchanged
type Update struct {
	Language   *string
	Difficulty *string
	AutoHints  *bool
}

// Stats summarises the cached preferences
type Stats struct {
	TotalUsers             int
	LanguageDistribution   map[model.Language]int
	DifficultyDistribution map[model.Difficulty]int
	CacheSize              int
	CacheCapacity          int
}

// Store is a bounded, TTL-based cache of user preferences
type Store struct {
	cache    *expirable.LRU[string, model.UserPreference]
	capacity int
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a preference store
func New(cfg Config, clk clock.Clock, logger *slog.Logger) *Store {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultConfig().Capacity
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Store{
		cache:    expirable.NewLRU[string, model.UserPreference](cfg.Capacity, nil, cfg.TTL),
		capacity: cfg.Capacity,
		clock:    clk,
		logger:   logger,
	}
}

// Get returns the user's preference, creating the default on first access.
// Every call refreshes both the entry's TTL and LastUsed.
func (s *Store) Get(userID string) model.UserPreference {
	now := s.clock.Now()
	if pref, ok := s.cache.Get(userID); ok {
		touched := pref.Touch(now)
		s.cache.Add(userID, touched)
		return touched
	}

	pref := model.NewDefaultPreference(userID, now)
	s.cache.Add(userID, pref)
	s.logger.Info("preference created", slog.String("user_id", userID))
	return pref
}

// Update applies the recognised fields of u. Invalid language or difficulty
// values are ignored for that field only.
func (s *Store) Update(userID string, u Update) model.UserPreference {
	pref := s.Get(userID)

	if u.Language != nil {
		if lang, ok := model.ParseLanguage(*u.Language); ok {
			pref.Language = lang
			pref.Locale = lang.Locale()
		} else {
			s.logger.Warn("ignoring invalid language",
				slog.String("user_id", userID),
				slog.String("language", *u.Language),
			)
		}
	}

	if u.Difficulty != nil {
		if diff, ok := model.ParseDifficulty(*u.Difficulty); ok {
			pref.Difficulty = diff
		} else {
			s.logger.Warn("ignoring invalid difficulty",
				slog.String("user_id", userID),
				slog.String("difficulty", *u.Difficulty),
			)
		}
	}

	if u.AutoHints != nil {
		pref.AutoHints = *u.AutoHints
	}

	pref.LastUsed = s.clock.Now()
	s.cache.Add(userID, pref)

	s.logger.Info("preference updated",
		slog.String("user_id", userID),
		slog.String("language", string(pref.Language)),
		slog.String("difficulty", string(pref.Difficulty)),
	)
	return pref
}

// Peek returns the cached preference without creating or refreshing it
func (s *Store) Peek(userID string) (model.UserPreference, bool) {
	return s.cache.Peek(userID)
}

// Stats returns counts by language and difficulty along with cache occupancy
func (s *Store) Stats() Stats {
	values := s.cache.Values()
	stats := Stats{
		TotalUsers:             len(values),
		LanguageDistribution:   make(map[model.Language]int),
		DifficultyDistribution: make(map[model.Difficulty]int),
		CacheSize:              s.cache.Len(),
		CacheCapacity:          s.capacity,
	}
	for _, pref := range values {
		stats.LanguageDistribution[pref.Language]++
		stats.DifficultyDistribution[pref.Difficulty]++
	}
	return stats
}

// CleanupInactive evicts preferences unused for more than daysInactive days
func (s *Store) CleanupInactive(daysInactive int) int {
	now := s.clock.Now()
	age := time.Duration(daysInactive) * 24 * time.Hour

	cleaned := 0
	for _, userID := range s.cache.Keys() {
		pref, ok := s.cache.Peek(userID)
		if !ok {
			continue
		}
		if pref.IsInactive(now, age) {
			s.cache.Remove(userID)
			cleaned++
		}
	}

	s.logger.Info("inactive preferences cleaned",
		slog.Int("cleaned", cleaned),
		slog.Int("days_inactive", daysInactive),
	)
	return cleaned
}

// UsersByLanguage returns the IDs of cached users with the given language
func (s *Store) UsersByLanguage(lang model.Language) []string {
	return s.usersWhere(func(p model.UserPreference) bool { return p.Language == lang })
}

// UsersByDifficulty returns the IDs of cached users with the given difficulty
func (s *Store) UsersByDifficulty(diff model.Difficulty) []string {
	return s.usersWhere(func(p model.UserPreference) bool { return p.Difficulty == diff })
}

func (s *Store) usersWhere(keep func(model.UserPreference) bool) []string {
	users := []string{}
	for _, userID := range s.cache.Keys() {
		if pref, ok := s.cache.Peek(userID); ok && keep(pref) {
			users = append(users, userID)
		}
	}
	return users
}

// Len returns the number of cached preferences
func (s *Store) Len() int {
	return s.cache.Len()
}
