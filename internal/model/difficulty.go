package model

// Difficulty names a difficulty tier
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// DifficultyProfile is the constant bundle applied to a session
type DifficultyProfile struct {
	MaxAttempts int
	MaxHints    int
	DisplayName string
}

var difficultyProfiles = map[Difficulty]DifficultyProfile{
	DifficultyEasy:   {MaxAttempts: 6, MaxHints: 8, DisplayName: "Easy"},
	DifficultyNormal: {MaxAttempts: 5, MaxHints: 6, DisplayName: "Normal"},
	DifficultyHard:   {MaxAttempts: 4, MaxHints: 4, DisplayName: "Hard"},
	DifficultyExpert: {MaxAttempts: 3, MaxHints: 3, DisplayName: "Expert"},
}

// Profile returns the profile for d, falling back to normal for unknown tiers.
// MaxHints never exceeds the number of hints the game can generate.
func (d Difficulty) Profile() DifficultyProfile {
	p, ok := difficultyProfiles[d]
	if !ok {
		p = difficultyProfiles[DifficultyNormal]
	}
	if p.MaxHints > len(HintSequence) {
		p.MaxHints = len(HintSequence)
	}
	return p
}

// IsValid reports whether d is one of the known tiers
func (d Difficulty) IsValid() bool {
	_, ok := difficultyProfiles[d]
	return ok
}

// ParseDifficulty converts a raw string to a Difficulty
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(s)
	return d, d.IsValid()
}

// ValidDifficulties returns all tiers from easiest to hardest
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}
}
