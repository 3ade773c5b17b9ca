package testutil

import (
	"time"

	"github.com/mcoot/champguess/internal/model"
)

// Darius returns a melee fighter fixture
func Darius() model.Champion {
	return model.Champion{
		ID: "Darius", Key: "122", Name: "Darius", Title: "the Hand of Noxus",
		Tags: []string{"Fighter", "Tank"}, Partype: "Mana", AttackRange: 175, Difficulty: 2,
	}
}

// Garen returns a melee fighter fixture with no resource bar
func Garen() model.Champion {
	return model.Champion{
		ID: "Garen", Key: "86", Name: "Garen", Title: "The Might of Demacia",
		Tags: []string{"Fighter", "Tank"}, Partype: "None", AttackRange: 175, Difficulty: 5,
	}
}

// Lux returns a ranged mage fixture
func Lux() model.Champion {
	return model.Champion{
		ID: "Lux", Key: "99", Name: "Lux", Title: "the Lady of Luminosity",
		Tags: []string{"Mage", "Support"}, Partype: "Mana", AttackRange: 550, Difficulty: 5,
	}
}

// MissFortune returns a ranged marksman fixture with a multi-word name
func MissFortune() model.Champion {
	return model.Champion{
		ID: "MissFortune", Key: "21", Name: "Miss Fortune", Title: "the Bounty Hunter",
		Tags: []string{"Marksman"}, Partype: "Mana", AttackRange: 550, Difficulty: 1,
	}
}

// KaiSa returns a fixture whose name carries an apostrophe
func KaiSa() model.Champion {
	return model.Champion{
		ID: "Kaisa", Key: "145", Name: "Kai'Sa", Title: "Daughter of the Void",
		Tags: []string{"Marksman"}, Partype: "Mana", AttackRange: 525, Difficulty: 6,
	}
}

// Champions returns all fixtures in a fixed order
func Champions() []model.Champion {
	return []model.Champion{Darius(), Garen(), KaiSa(), Lux(), MissFortune()}
}

// FixedTime is the reference instant used across tests
func FixedTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// SessionBuilder creates test sessions
type SessionBuilder struct {
	session model.GameSession
}

// NewSessionBuilder creates an active normal-difficulty session targeting Darius
func NewSessionBuilder(channelID string) *SessionBuilder {
	pref := model.NewDefaultPreference("user-1", FixedTime())
	return &SessionBuilder{
		session: model.NewGameSession("user-1", channelID, Darius(), pref, FixedTime()),
	}
}

// WithTarget sets the target champion
func (b *SessionBuilder) WithTarget(c model.Champion) *SessionBuilder {
	b.session.Target = c
	return b
}

// WithUser sets the session owner
func (b *SessionBuilder) WithUser(userID string) *SessionBuilder {
	b.session.UserID = userID
	return b
}

// StartedAt sets the start time
func (b *SessionBuilder) StartedAt(t time.Time) *SessionBuilder {
	b.session.StartTime = t
	return b
}

// Finished marks the session as given up at the given time
func (b *SessionBuilder) Finished(at time.Time) *SessionBuilder {
	b.session.Outcome = model.OutcomeGivenUp
	b.session.EndTime = &at
	return b
}

// Build returns the session
func (b *SessionBuilder) Build() model.GameSession {
	return b.session.Clone()
}
