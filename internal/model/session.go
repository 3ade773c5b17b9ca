package model

import "time"

// Outcome is the lifecycle state of a game session
type Outcome string

const (
	OutcomeActive  Outcome = "active"   // Accepting guesses and hints
	OutcomeWon     Outcome = "won"      // Target guessed
	OutcomeLost    Outcome = "lost"     // Attempts exhausted
	OutcomeGivenUp Outcome = "given_up" // Player conceded
)

// Scoring constants
const (
	BaseScore          = 1000
	AttemptPenalty     = 50
	HintPenalty        = 100
	SecondPenalty      = 2
	MaxDurationPenalty = 500
)

// GameSession is one guessing round scoped to a channel.
// Values are never mutated in place: every transition returns a new session.
type GameSession struct {
	UserID       string     `json:"user_id"`
	ChannelID    string     `json:"channel_id"`
	Target       Champion   `json:"target"`
	Difficulty   Difficulty `json:"difficulty"`
	Language     Language   `json:"language"`
	Locale       Locale     `json:"locale"`
	MaxAttempts  int        `json:"max_attempts"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Guesses      []string   `json:"guesses"` // Normalized, in order
	Hints        []string   `json:"hints"`   // Revealed hint texts, in order
	HintsUsed    int        `json:"hints_used"`
	AttemptsLeft int        `json:"attempts_left"`
	Outcome      Outcome    `json:"outcome"`
	AutoHints    bool       `json:"auto_hints"` // Owner's setting when the game started
}

// NewGameSession starts an active session for the given target and preference
func NewGameSession(userID, channelID string, target Champion, pref UserPreference, now time.Time) GameSession {
	profile := pref.Difficulty.Profile()
	return GameSession{
		UserID:       userID,
		ChannelID:    channelID,
		Target:       target.clone(),
		Difficulty:   pref.Difficulty,
		Language:     pref.Language,
		Locale:       pref.Locale,
		MaxAttempts:  profile.MaxAttempts,
		StartTime:    now,
		Guesses:      []string{},
		Hints:        []string{},
		HintsUsed:    0,
		AttemptsLeft: profile.MaxAttempts,
		Outcome:      OutcomeActive,
		AutoHints:    pref.AutoHints,
	}
}

// Clone returns a deep copy of the session
func (s GameSession) Clone() GameSession {
	out := s
	out.Target = s.Target.clone()
	out.Guesses = append([]string{}, s.Guesses...)
	out.Hints = append([]string{}, s.Hints...)
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	return out
}

// Active returns true while the session accepts guesses
func (s GameSession) Active() bool {
	return s.Outcome == OutcomeActive
}

// IsWon returns true if the session ended with a correct guess
func (s GameSession) IsWon() bool {
	return s.Outcome == OutcomeWon
}

// HasGuessed reports whether the normalized guess was already made
func (s GameSession) HasGuessed(normalized string) bool {
	for _, g := range s.Guesses {
		if g == normalized {
			return true
		}
	}
	return false
}

// AttemptsUsed returns how many guesses have been spent
func (s GameSession) AttemptsUsed() int {
	return s.MaxAttempts - s.AttemptsLeft
}

// MaxHints returns the hint budget for the session's difficulty
func (s GameSession) MaxHints() int {
	return s.Difficulty.Profile().MaxHints
}

// CanUseMoreHints returns true if the hint budget is not exhausted
func (s GameSession) CanUseMoreHints() bool {
	return s.HintsUsed < s.MaxHints()
}

// WithGuess records a normalized guess and resolves the outcome.
// The caller decides correctness; a wrong guess on the last attempt loses the session.
func (s GameSession) WithGuess(normalized string, correct bool, now time.Time) (GameSession, error) {
	if !s.Active() {
		return s, ErrSessionNotActive
	}
	if s.HasGuessed(normalized) {
		return s, ErrAlreadyGuessed
	}

	next := s.Clone()
	next.Guesses = append(next.Guesses, normalized)
	next.AttemptsLeft--

	switch {
	case correct:
		next = next.finish(OutcomeWon, now)
	case next.AttemptsLeft <= 0:
		next.AttemptsLeft = 0
		next = next.finish(OutcomeLost, now)
	}
	return next, nil
}

// WithHint records a revealed hint
func (s GameSession) WithHint(hint string) (GameSession, error) {
	if !s.Active() {
		return s, ErrSessionNotActive
	}
	if !s.CanUseMoreHints() {
		return s, ErrNoHintsLeft
	}

	next := s.Clone()
	next.Hints = append(next.Hints, hint)
	next.HintsUsed++
	return next, nil
}

// GiveUp concedes the session
func (s GameSession) GiveUp(now time.Time) (GameSession, error) {
	if !s.Active() {
		return s, ErrSessionNotActive
	}
	return s.Clone().finish(OutcomeGivenUp, now), nil
}

func (s GameSession) finish(outcome Outcome, now time.Time) GameSession {
	end := now
	s.Outcome = outcome
	s.EndTime = &end
	return s
}

// DurationSeconds returns whole elapsed seconds, measured to now while the session is live
func (s GameSession) DurationSeconds(now time.Time) int {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	secs := int(end.Sub(s.StartTime) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Score returns the final score; only won sessions score above zero
func (s GameSession) Score() int {
	if !s.IsWon() || s.EndTime == nil {
		return 0
	}
	return ComputeScore(s.AttemptsUsed(), s.HintsUsed, s.DurationSeconds(*s.EndTime))
}

// ComputeScore applies the scoring formula for a won session
func ComputeScore(attemptsUsed, hintsUsed, durationSeconds int) int {
	timePenalty := min(durationSeconds*SecondPenalty, MaxDurationPenalty)
	score := BaseScore - attemptsUsed*AttemptPenalty - hintsUsed*HintPenalty - timePenalty
	return max(0, score)
}

// SessionStats summarises a single session
type SessionStats struct {
	Attempts  int
	HintsUsed int
	Duration  int // Seconds
	StartedAt time.Time
}

// Stats returns a summary of the session as of now
func (s GameSession) Stats(now time.Time) SessionStats {
	return SessionStats{
		Attempts:  len(s.Guesses),
		HintsUsed: s.HintsUsed,
		Duration:  s.DurationSeconds(now),
		StartedAt: s.StartTime,
	}
}

// GlobalStats summarises all stored sessions
type GlobalStats struct {
	Sessions       int
	ChannelIDs     []string
	OldestStart    *time.Time
	AverageGuesses float64
	AverageHints   float64
}
