package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SessionSuite struct {
	suite.Suite
	start  time.Time
	target Champion
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.target = Champion{
		ID:          "Darius",
		Key:         "122",
		Name:        "Darius",
		Title:       "the Hand of Noxus",
		Tags:        []string{"Fighter", "Tank"},
		Partype:     "Mana",
		AttackRange: 175,
		Difficulty:  2,
	}
}

func (s *SessionSuite) newSession(diff Difficulty) GameSession {
	pref := NewDefaultPreference("user-1", s.start)
	pref.Difficulty = diff
	return NewGameSession("user-1", "c1", s.target, pref, s.start)
}

// Construction

func (s *SessionSuite) TestNewSessionUsesDifficultyProfile() {
	for _, diff := range ValidDifficulties() {
		session := s.newSession(diff)
		profile := diff.Profile()

		s.Equal(OutcomeActive, session.Outcome)
		s.Equal(profile.MaxAttempts, session.MaxAttempts)
		s.Equal(profile.MaxAttempts, session.AttemptsLeft)
		s.Equal(profile.MaxHints, session.MaxHints())
		s.Empty(session.Guesses)
		s.Empty(session.Hints)
		s.Nil(session.EndTime)
	}
}

func (s *SessionSuite) TestUnknownDifficultyFallsBackToNormal() {
	s.Equal(DifficultyNormal.Profile(), Difficulty("legendary").Profile())
}

func (s *SessionSuite) TestMaxHintsCappedAtHintSequence() {
	for _, diff := range ValidDifficulties() {
		s.LessOrEqual(diff.Profile().MaxHints, len(HintSequence))
	}
}

// Guessing

func (s *SessionSuite) TestCorrectGuessWins() {
	session := s.newSession(DifficultyNormal)

	next, err := session.WithGuess("darius", true, s.start.Add(10*time.Second))

	s.Require().NoError(err)
	s.Equal(OutcomeWon, next.Outcome)
	s.Equal(4, next.AttemptsLeft)
	s.Equal([]string{"darius"}, next.Guesses)
	s.Require().NotNil(next.EndTime)
	s.Equal(s.start.Add(10*time.Second), *next.EndTime)
}

func (s *SessionSuite) TestWrongGuessesExhaustAttempts() {
	session := s.newSession(DifficultyNormal)
	wrong := []string{"garen", "lux", "ahri", "annie", "ashe"}

	var err error
	for i, guess := range wrong {
		session, err = session.WithGuess(guess, false, s.start.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
	}

	s.Equal(OutcomeLost, session.Outcome)
	s.Equal(0, session.AttemptsLeft)
	s.Equal(5, session.AttemptsUsed())
	s.Equal(0, session.Score())

	_, err = session.WithGuess("darius", true, s.start)
	s.ErrorIs(err, ErrSessionNotActive)
}

func (s *SessionSuite) TestRepeatedGuessRejected() {
	session := s.newSession(DifficultyNormal)
	session, err := session.WithGuess("garen", false, s.start)
	s.Require().NoError(err)

	again, err := session.WithGuess("garen", false, s.start)

	s.ErrorIs(err, ErrAlreadyGuessed)
	s.Equal(4, again.AttemptsLeft)
	s.Len(again.Guesses, 1)
}

func (s *SessionSuite) TestTransitionsDoNotMutateReceiver() {
	session := s.newSession(DifficultyNormal)

	_, err := session.WithGuess("garen", false, s.start)
	s.Require().NoError(err)
	_, err = session.WithHint("Role: Fighter")
	s.Require().NoError(err)
	_, err = session.GiveUp(s.start)
	s.Require().NoError(err)

	s.Equal(OutcomeActive, session.Outcome)
	s.Empty(session.Guesses)
	s.Empty(session.Hints)
	s.Equal(5, session.AttemptsLeft)
	s.Nil(session.EndTime)
}

func (s *SessionSuite) TestCloneIsDeep() {
	session := s.newSession(DifficultyNormal)
	session, err := session.WithGuess("garen", false, s.start)
	s.Require().NoError(err)

	clone := session.Clone()
	clone.Guesses[0] = "lux"
	clone.Target.Tags[0] = "Mage"

	s.Equal("garen", session.Guesses[0])
	s.Equal("Fighter", session.Target.Tags[0])
}

// Hints

func (s *SessionSuite) TestHintBudgetEnforced() {
	session := s.newSession(DifficultyExpert)

	var err error
	for i := 0; i < 3; i++ {
		s.True(session.CanUseMoreHints())
		session, err = session.WithHint("hint")
		s.Require().NoError(err)
	}

	s.False(session.CanUseMoreHints())
	_, err = session.WithHint("one too many")
	s.ErrorIs(err, ErrNoHintsLeft)
	s.Equal(3, session.HintsUsed)
}

func (s *SessionSuite) TestHintOnFinishedSession() {
	session, err := s.newSession(DifficultyNormal).GiveUp(s.start)
	s.Require().NoError(err)

	_, err = session.WithHint("hint")
	s.ErrorIs(err, ErrSessionNotActive)
}

// Give up

func (s *SessionSuite) TestGiveUp() {
	session, err := s.newSession(DifficultyNormal).GiveUp(s.start.Add(time.Minute))

	s.Require().NoError(err)
	s.Equal(OutcomeGivenUp, session.Outcome)
	s.Equal(0, session.Score())

	_, err = session.GiveUp(s.start)
	s.ErrorIs(err, ErrSessionNotActive)
}

// Scoring

func (s *SessionSuite) TestComputeScore() {
	s.Equal(1000, ComputeScore(0, 0, 0))
	s.Equal(950, ComputeScore(1, 0, 0))
	s.Equal(800, ComputeScore(2, 1, 0))
	s.Equal(980, ComputeScore(0, 0, 10))
	s.Equal(500, ComputeScore(0, 0, 10_000))
	s.Equal(0, ComputeScore(6, 8, 10_000))
}

func (s *SessionSuite) TestScoreMonotonic() {
	for attempts := 0; attempts < 6; attempts++ {
		for hints := 0; hints < 8; hints++ {
			for _, secs := range []int{0, 30, 250, 1000} {
				base := ComputeScore(attempts, hints, secs)
				s.GreaterOrEqual(base, 0)
				s.LessOrEqual(base, BaseScore)
				s.LessOrEqual(ComputeScore(attempts+1, hints, secs), base)
				s.LessOrEqual(ComputeScore(attempts, hints+1, secs), base)
				s.LessOrEqual(ComputeScore(attempts, hints, secs+1), base)
			}
		}
	}
}

func (s *SessionSuite) TestScoreUsesWholeSeconds() {
	session := s.newSession(DifficultyNormal)
	session, err := session.WithGuess("darius", true, s.start.Add(12*time.Second+900*time.Millisecond))
	s.Require().NoError(err)

	s.Equal(12, session.DurationSeconds(s.start.Add(time.Hour)))
	s.Equal(ComputeScore(1, 0, 12), session.Score())
}

func (s *SessionSuite) TestStats() {
	session := s.newSession(DifficultyNormal)
	session, err := session.WithGuess("garen", false, s.start)
	s.Require().NoError(err)
	session, err = session.WithHint("hint")
	s.Require().NoError(err)

	stats := session.Stats(s.start.Add(45 * time.Second))

	s.Equal(1, stats.Attempts)
	s.Equal(1, stats.HintsUsed)
	s.Equal(45, stats.Duration)
	s.Equal(s.start, stats.StartedAt)
}

// Champion attributes

func (s *SessionSuite) TestChampionAttackType() {
	s.Equal(AttackTypeMelee, s.target.AttackType())

	ranged := s.target
	ranged.AttackRange = 550
	s.Equal(AttackTypeRanged, ranged.AttackType())

	edge := s.target
	edge.AttackRange = RangedThreshold
	s.Equal(AttackTypeMelee, edge.AttackType())
}

func (s *SessionSuite) TestChampionRoles() {
	s.Equal("Fighter", s.target.PrimaryRole())
	s.True(s.target.HasRole("Tank"))
	s.False(s.target.HasRole("Mage"))
	s.Equal("", Champion{}.PrimaryRole())
}

// Languages

func (s *SessionSuite) TestLanguageLocales() {
	s.Equal(LocaleSpanish, LanguageES.Locale())
	s.Equal(LocaleEnglish, LanguageEN.Locale())
	s.Equal(LocaleLatinAmerica, LanguageMX.Locale())
	s.Equal(LocaleSpanish, Language("fr").Locale())
	s.Equal(LanguageMX, LanguageForLocale(LocaleLatinAmerica))

	_, ok := ParseLanguage("fr")
	s.False(ok)
}
