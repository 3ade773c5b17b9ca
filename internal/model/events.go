package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventGuessMade    EventType = "guess_made"
	EventHintRevealed EventType = "hint_revealed"
	EventGameWon      EventType = "game_won"
	EventGameLost     EventType = "game_lost"
	EventGameGivenUp  EventType = "game_given_up"
	EventGameEnded    EventType = "game_ended"
)

// Event describes a change to a channel's game, as seen by channel observers
type Event struct {
	Type         EventType `json:"type"`
	ChannelID    string    `json:"channel_id"`
	UserID       string    `json:"user_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Guess        string    `json:"guess,omitempty"`
	Correct      bool      `json:"correct,omitempty"`
	Hint         string    `json:"hint,omitempty"`
	HintType     HintType  `json:"hint_type,omitempty"`
	AttemptsLeft int       `json:"attempts_left"`
	HintsUsed    int       `json:"hints_used"`
	Champion     string    `json:"champion,omitempty"` // Set only once the game is over
	Score        int       `json:"score,omitempty"`
}

// NewEvent snapshots the session into an event of the given type
func NewEvent(t EventType, s GameSession, now time.Time) Event {
	e := Event{
		Type:         t,
		ChannelID:    s.ChannelID,
		UserID:       s.UserID,
		Timestamp:    now,
		AttemptsLeft: s.AttemptsLeft,
		HintsUsed:    s.HintsUsed,
	}
	if !s.Active() {
		e.Champion = s.Target.Name
		e.Score = s.Score()
	}
	return e
}
