package response

import (
	"time"

	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/services/game"
)

// Session represents a game session in API responses.
// The champion is only revealed once the session has ended.
type Session struct {
	ChannelID      string     `json:"channel_id"`
	UserID         string     `json:"user_id"`
	Difficulty     string     `json:"difficulty"`
	DifficultyName string     `json:"difficulty_name"`
	Language       string     `json:"language"`
	AutoHints      bool       `json:"auto_hints"`
	Outcome        string     `json:"outcome"`
	Active         bool       `json:"active"`
	AttemptsLeft   int        `json:"attempts_left"`
	MaxAttempts    int        `json:"max_attempts"`
	HintsUsed      int        `json:"hints_used"`
	MaxHints       int        `json:"max_hints"`
	Guesses        []string   `json:"guesses"`
	Hints          []string   `json:"hints"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Score          int        `json:"score"`
	Champion       string     `json:"champion,omitempty"`
}

// SessionFromModel converts a model.GameSession to a response Session
func SessionFromModel(s model.GameSession) Session {
	resp := Session{
		ChannelID:      s.ChannelID,
		UserID:         s.UserID,
		Difficulty:     string(s.Difficulty),
		DifficultyName: s.Difficulty.Profile().DisplayName,
		Language:       string(s.Language),
		AutoHints:      s.AutoHints,
		Outcome:        string(s.Outcome),
		Active:         s.Active(),
		AttemptsLeft:   s.AttemptsLeft,
		MaxAttempts:    s.MaxAttempts,
		HintsUsed:      s.HintsUsed,
		MaxHints:       s.MaxHints(),
		Guesses:        append([]string{}, s.Guesses...),
		Hints:          append([]string{}, s.Hints...),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		Score:          s.Score(),
	}
	if !s.Active() {
		resp.Champion = s.Target.Name
	}
	return resp
}

// SessionList wraps a list of sessions
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// Hint is a revealed hint
type Hint struct {
	Hint       string  `json:"hint"`
	HintType   string  `json:"hint_type"`
	CanGetMore bool    `json:"can_get_more"`
	Session    Session `json:"session"`
}

// HintFromResult converts a game.HintResult
func HintFromResult(r game.HintResult) Hint {
	return Hint{
		Hint:       r.Hint,
		HintType:   string(r.HintType),
		CanGetMore: r.CanGetMore,
		Session:    SessionFromModel(r.Session),
	}
}

// Guess is the response to a guess
type Guess struct {
	IsCorrect   bool     `json:"is_correct"`
	IsGameOver  bool     `json:"is_game_over"`
	IsWon       bool     `json:"is_won"`
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
	AutoHint    *Hint    `json:"auto_hint,omitempty"`
	Session     Session  `json:"session"`
}

// GuessFromResult converts a game.GuessResult
func GuessFromResult(r game.GuessResult) Guess {
	resp := Guess{
		IsCorrect:   r.IsCorrect,
		IsGameOver:  r.IsGameOver,
		IsWon:       r.IsWon,
		Score:       r.Score,
		Suggestions: r.Suggestions,
		Session:     SessionFromModel(r.Session),
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}
	if r.AutoHint != nil {
		hint := HintFromResult(*r.AutoHint)
		resp.AutoHint = &hint
	}
	return resp
}

// GiveUp is the response to conceding a game
type GiveUp struct {
	Champion string  `json:"champion"`
	Session  Session `json:"session"`
}

// GiveUpFromResult converts a game.GiveUpResult
func GiveUpFromResult(r game.GiveUpResult) GiveUp {
	return GiveUp{
		Champion: r.ChampionName,
		Session:  SessionFromModel(r.Session),
	}
}

// SessionStats summarises a single session
type SessionStats struct {
	Attempts        int       `json:"attempts"`
	HintsUsed       int       `json:"hints_used"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
}

// SessionStatsFromModel converts model.SessionStats
func SessionStatsFromModel(s model.SessionStats) SessionStats {
	return SessionStats{
		Attempts:        s.Attempts,
		HintsUsed:       s.HintsUsed,
		DurationSeconds: s.Duration,
		StartedAt:       s.StartedAt,
	}
}

// GlobalStats summarises all sessions
type GlobalStats struct {
	Sessions       int        `json:"sessions"`
	ChannelIDs     []string   `json:"channel_ids"`
	OldestStart    *time.Time `json:"oldest_start,omitempty"`
	AverageGuesses float64    `json:"average_guesses"`
	AverageHints   float64    `json:"average_hints"`
}

// GlobalStatsFromModel converts model.GlobalStats
func GlobalStatsFromModel(s model.GlobalStats) GlobalStats {
	return GlobalStats{
		Sessions:       s.Sessions,
		ChannelIDs:     s.ChannelIDs,
		OldestStart:    s.OldestStart,
		AverageGuesses: s.AverageGuesses,
		AverageHints:   s.AverageHints,
	}
}

// Suggestions lists champion names matching a partial input
type Suggestions struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Preference represents a user preference
type Preference struct {
	UserID         string    `json:"user_id"`
	Language       string    `json:"language"`
	Locale         string    `json:"locale"`
	Difficulty     string    `json:"difficulty"`
	DifficultyName string    `json:"difficulty_name"`
	AutoHints      bool      `json:"auto_hints"`
	LastUsed       time.Time `json:"last_used"`
}

// PreferenceFromModel converts model.UserPreference
func PreferenceFromModel(p model.UserPreference) Preference {
	return Preference{
		UserID:         p.UserID,
		Language:       string(p.Language),
		Locale:         string(p.Locale),
		Difficulty:     string(p.Difficulty),
		DifficultyName: p.Difficulty.Profile().DisplayName,
		AutoHints:      p.AutoHints,
		LastUsed:       p.LastUsed,
	}
}

// PreferenceStats summarises the preference cache
type PreferenceStats struct {
	TotalUsers    int            `json:"total_users"`
	Languages     map[string]int `json:"languages"`
	Difficulties  map[string]int `json:"difficulties"`
	CacheSize     int            `json:"cache_size"`
	CacheCapacity int            `json:"cache_capacity"`
}

// PreferenceStatsFromStore converts preference.Stats
func PreferenceStatsFromStore(s preference.Stats) PreferenceStats {
	resp := PreferenceStats{
		TotalUsers:    s.TotalUsers,
		Languages:     make(map[string]int, len(s.LanguageDistribution)),
		Difficulties:  make(map[string]int, len(s.DifficultyDistribution)),
		CacheSize:     s.CacheSize,
		CacheCapacity: s.CacheCapacity,
	}
	for lang, n := range s.LanguageDistribution {
		resp.Languages[string(lang)] = n
	}
	for diff, n := range s.DifficultyDistribution {
		resp.Difficulties[string(diff)] = n
	}
	return resp
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// UserList response type
type UserList struct {
	Users []string `json:"users"`
}
