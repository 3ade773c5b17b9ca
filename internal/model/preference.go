package model

import "time"

// Default preference values for users seen for the first time
const (
	DefaultLanguage   = LanguageES
	DefaultDifficulty = DifficultyNormal
)

// UserPreference holds per-user settings that outlive game sessions
type UserPreference struct {
	UserID     string
	Language   Language
	Locale     Locale
	Difficulty Difficulty
	AutoHints  bool
	LastUsed   time.Time
}

// NewDefaultPreference creates the preference given to unknown users
func NewDefaultPreference(userID string, now time.Time) UserPreference {
	return UserPreference{
		UserID:     userID,
		Language:   DefaultLanguage,
		Locale:     DefaultLanguage.Locale(),
		Difficulty: DefaultDifficulty,
		AutoHints:  false,
		LastUsed:   now,
	}
}

// Touch returns a copy with LastUsed set to now
func (p UserPreference) Touch(now time.Time) UserPreference {
	p.LastUsed = now
	return p
}

// IsInactive reports whether the preference was last used before now minus the given age
func (p UserPreference) IsInactive(now time.Time, age time.Duration) bool {
	return p.LastUsed.Before(now.Add(-age))
}
