package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/champguess/internal/catalog"
	"github.com/mcoot/champguess/internal/dependencies/clock"
	"github.com/mcoot/champguess/internal/localize"
	"github.com/mcoot/champguess/internal/matching"
	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/storage"
)

// Preferences resolves a user's preference, creating the default on first access
type Preferences interface {
	Get(userID string) model.UserPreference
}

// Publisher receives an event after every successful state change
type Publisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Controller manages the session state machine for every channel
type Controller struct {
	sessions    storage.SessionStore
	preferences Preferences
	catalog     catalog.Provider
	matcher     *matching.Matcher
	localizer   localize.Localizer
	publisher   Publisher
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	sessions storage.SessionStore,
	preferences Preferences,
	catalog catalog.Provider,
	matcher *matching.Matcher,
	localizer localize.Localizer,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		sessions:    sessions,
		preferences: preferences,
		catalog:     catalog,
		matcher:     matcher,
		localizer:   localizer,
		publisher:   nopPublisher{},
		clock:       clock,
		logger:      logger,
	}
}

// SetPublisher routes game events to p; nil disables publishing
func (c *Controller) SetPublisher(p Publisher) {
	if p == nil {
		p = nopPublisher{}
	}
	c.publisher = p
}

func (c *Controller) publish(t model.EventType, session model.GameSession, fill func(*model.Event)) {
	event := model.NewEvent(t, session, c.clock.Now())
	if fill != nil {
		fill(&event)
	}
	c.publisher.Publish(event)
}

// StartGame begins a new session in the channel, replacing any existing one
func (c *Controller) StartGame(ctx context.Context, userID, channelID string) (model.GameSession, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(channelID) == "" {
		return model.GameSession{}, fmt.Errorf("%w: user and channel are required", model.ErrValidation)
	}

	pref := c.preferences.Get(userID)

	target, err := c.catalog.GetRandom(ctx, pref.Locale)
	if err != nil {
		c.logger.Error("failed to pick champion",
			slog.String("channel_id", channelID),
			slog.String("locale", string(pref.Locale)),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, model.ErrCatalogUnavailable) {
			return model.GameSession{}, err
		}
		return model.GameSession{}, fmt.Errorf("%w: %w", model.ErrCatalogUnavailable, err)
	}

	session := model.NewGameSession(userID, channelID, target, pref, c.clock.Now())
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("channel_id", channelID),
			slog.String("error", err.Error()),
		)
		return model.GameSession{}, err
	}

	c.logger.Info("game created",
		slog.String("channel_id", channelID),
		slog.String("user_id", userID),
		slog.String("difficulty", string(session.Difficulty)),
		slog.String("locale", string(session.Locale)),
	)
	c.publish(model.EventGameStarted, session, nil)

	return session, nil
}

// GetSession returns the channel's session
func (c *Controller) GetSession(ctx context.Context, channelID string) (model.GameSession, error) {
	return c.sessions.GetSession(ctx, channelID)
}

// MakeGuess records a guess. Preconditions are checked before anything is written,
// so a rejected guess leaves the stored session untouched.
func (c *Controller) MakeGuess(ctx context.Context, channelID, text string) (GuessResult, error) {
	session, err := c.sessions.GetSession(ctx, channelID)
	if err != nil {
		return GuessResult{}, err
	}
	if !session.Active() {
		return GuessResult{}, model.ErrSessionNotActive
	}

	if strings.TrimSpace(text) == "" {
		return GuessResult{}, fmt.Errorf("%w: guess is empty", model.ErrValidation)
	}
	normalized := matching.Normalize(text)
	if normalized == "" {
		return GuessResult{}, fmt.Errorf("%w: guess has no usable characters", model.ErrValidation)
	}

	correct := c.matcher.MatchesTarget(text, session.Target)
	now := c.clock.Now()

	next, err := session.WithGuess(normalized, correct, now)
	if err != nil {
		return GuessResult{}, err
	}

	result := GuessResult{
		IsCorrect:   correct,
		IsGameOver:  !next.Active(),
		IsWon:       next.IsWon(),
		Suggestions: []string{},
	}

	if !correct {
		result.Suggestions = c.guessSuggestions(ctx, next, text)

		if next.Active() && next.CanUseMoreHints() && next.AutoHints {
			hinted, hint := c.nextHint(next)
			next = hinted
			result.AutoHint = &hint
		}
	}

	if err := c.sessions.SaveSession(ctx, next); err != nil {
		return GuessResult{}, err
	}

	result.Session = next
	result.Score = next.Score()
	if result.AutoHint != nil {
		result.AutoHint.Session = next
	}

	c.publish(model.EventGuessMade, next, func(e *model.Event) {
		e.Guess = normalized
		e.Correct = correct
	})
	if hint := result.AutoHint; hint != nil {
		c.publish(model.EventHintRevealed, next, func(e *model.Event) {
			e.Hint = hint.Hint
			e.HintType = hint.HintType
		})
	}

	switch next.Outcome {
	case model.OutcomeWon:
		c.logger.Info("game won",
			slog.String("channel_id", channelID),
			slog.String("champion", next.Target.Name),
			slog.Int("attempts", next.AttemptsUsed()),
			slog.Int("hints", next.HintsUsed),
			slog.Int("score", result.Score),
		)
		c.publish(model.EventGameWon, next, nil)
	case model.OutcomeLost:
		c.logger.Info("game lost",
			slog.String("channel_id", channelID),
			slog.String("champion", next.Target.Name),
		)
		c.publish(model.EventGameLost, next, nil)
	}

	return result, nil
}

// guessSuggestions returns close catalog names for a wrong guess. The target is never
// suggested, and a catalog failure only costs the suggestions.
func (c *Controller) guessSuggestions(ctx context.Context, session model.GameSession, text string) []string {
	champions, err := c.catalog.GetAll(ctx, session.Locale, "")
	if err != nil {
		c.logger.Warn("suggestions unavailable",
			slog.String("channel_id", session.ChannelID),
			slog.String("error", err.Error()),
		)
		return []string{}
	}

	suggestions := []string{}
	for _, match := range matching.BestMatches(text, champions, matching.DefaultThreshold) {
		if match.Champion.ID == session.Target.ID || match.Champion.Name == session.Target.Name {
			continue
		}
		suggestions = append(suggestions, match.Champion.Name)
		if len(suggestions) == MaxGuessSuggestions {
			break
		}
	}
	return suggestions
}

// GetHint reveals the next hint in the sequence
func (c *Controller) GetHint(ctx context.Context, channelID string) (HintResult, error) {
	session, err := c.sessions.GetSession(ctx, channelID)
	if err != nil {
		return HintResult{}, err
	}
	if !session.Active() {
		return HintResult{}, model.ErrSessionNotActive
	}
	if !session.CanUseMoreHints() {
		return HintResult{}, model.ErrNoHintsLeft
	}

	next, result := c.nextHint(session)
	if err := c.sessions.SaveSession(ctx, next); err != nil {
		return HintResult{}, err
	}

	c.publish(model.EventHintRevealed, next, func(e *model.Event) {
		e.Hint = result.Hint
		e.HintType = result.HintType
	})
	return result, nil
}

// nextHint applies the hint at ordinal HintsUsed. Callers check the budget first.
func (c *Controller) nextHint(session model.GameSession) (model.GameSession, HintResult) {
	text, hintType := hintFor(session.HintsUsed, session.Target, session.Language, c.localizer)

	next, err := session.WithHint(text)
	if err != nil {
		// Unreachable once the caller has checked Active and CanUseMoreHints
		return session, HintResult{Session: session}
	}

	c.logger.Info("hint revealed",
		slog.String("channel_id", session.ChannelID),
		slog.String("hint_type", string(hintType)),
		slog.Int("hints_used", next.HintsUsed),
	)

	return next, HintResult{
		Session:    next,
		Hint:       text,
		HintType:   hintType,
		CanGetMore: next.CanUseMoreHints(),
	}
}

// GiveUp concedes the session and reveals the answer
func (c *Controller) GiveUp(ctx context.Context, channelID string) (GiveUpResult, error) {
	session, err := c.sessions.GetSession(ctx, channelID)
	if err != nil {
		return GiveUpResult{}, err
	}

	next, err := session.GiveUp(c.clock.Now())
	if err != nil {
		return GiveUpResult{}, err
	}
	if err := c.sessions.SaveSession(ctx, next); err != nil {
		return GiveUpResult{}, err
	}

	c.logger.Info("game given up",
		slog.String("channel_id", channelID),
		slog.String("champion", next.Target.Name),
		slog.Int("attempts", next.AttemptsUsed()),
	)
	c.publish(model.EventGameGivenUp, next, nil)

	return GiveUpResult{Session: next, ChampionName: next.Target.Name}, nil
}

// EndSession deletes the channel's session; reports whether one existed
func (c *Controller) EndSession(ctx context.Context, channelID string) (bool, error) {
	existed, err := c.sessions.DeleteSession(ctx, channelID)
	if err != nil || !existed {
		return existed, err
	}

	c.publisher.Publish(model.Event{
		Type:      model.EventGameEnded,
		ChannelID: channelID,
		Timestamp: c.clock.Now(),
	})
	return true, nil
}

// ListSessions returns every stored session
func (c *Controller) ListSessions(ctx context.Context) ([]model.GameSession, error) {
	return c.sessions.ListSessions(ctx)
}

// Cleanup removes sessions that are finished or older than maxAge
func (c *Controller) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	removed, err := c.sessions.CleanupSessions(ctx, c.clock.Now(), maxAge)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		c.logger.Info("sessions cleaned up", slog.Int("removed", removed))
	}
	return removed, nil
}

// SessionStats summarises the channel's session as of now
func (c *Controller) SessionStats(ctx context.Context, channelID string) (model.SessionStats, error) {
	session, err := c.sessions.GetSession(ctx, channelID)
	if err != nil {
		return model.SessionStats{}, err
	}
	return session.Stats(c.clock.Now()), nil
}

// GlobalStats summarises every stored session
func (c *Controller) GlobalStats(ctx context.Context) (model.GlobalStats, error) {
	sessions, err := c.sessions.ListSessions(ctx)
	if err != nil {
		return model.GlobalStats{}, err
	}

	stats := model.GlobalStats{
		Sessions:   len(sessions),
		ChannelIDs: make([]string, 0, len(sessions)),
	}
	if len(sessions) == 0 {
		return stats, nil
	}

	var guesses, hints int
	for _, s := range sessions {
		stats.ChannelIDs = append(stats.ChannelIDs, s.ChannelID)
		guesses += len(s.Guesses)
		hints += s.HintsUsed
		if stats.OldestStart == nil || s.StartTime.Before(*stats.OldestStart) {
			start := s.StartTime
			stats.OldestStart = &start
		}
	}
	sort.Strings(stats.ChannelIDs)

	stats.AverageGuesses = float64(guesses) / float64(len(sessions))
	stats.AverageHints = float64(hints) / float64(len(sessions))
	return stats, nil
}

// Suggest autocompletes a partial champion name against the locale's catalog
func (c *Controller) Suggest(ctx context.Context, locale model.Locale, partial string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = matching.DefaultMaxSuggestions
	}
	champions, err := c.catalog.GetAll(ctx, locale, "")
	if err != nil {
		return nil, err
	}
	return matching.Suggestions(partial, champions, maxResults), nil
}
