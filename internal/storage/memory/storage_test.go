package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = testutil.FixedTime()
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := testutil.NewSessionBuilder("c1").Build()

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal(session, retrieved)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveOverwritesChannel() {
	first := testutil.NewSessionBuilder("c1").WithUser("alice").Build()
	second := testutil.NewSessionBuilder("c1").WithUser("bob").WithTarget(testutil.Lux()).Build()

	s.Require().NoError(s.storage.SaveSession(s.ctx, first))
	s.Require().NoError(s.storage.SaveSession(s.ctx, second))

	retrieved, err := s.storage.GetSession(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("bob", retrieved.UserID)
	s.Equal("Lux", retrieved.Target.Name)

	all, _ := s.storage.ListSessions(s.ctx)
	s.Len(all, 1)
}

func (s *StorageSuite) TestStoredSessionIsNotAliased() {
	session := testutil.NewSessionBuilder("c1").Build()
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	// Mutating the caller's copy does not reach the store
	session.Guesses = append(session.Guesses, "garen")

	retrieved, _ := s.storage.GetSession(s.ctx, "c1")
	s.Empty(retrieved.Guesses)

	// Nor does mutating a retrieved copy
	retrieved.Guesses = append(retrieved.Guesses, "lux")
	again, _ := s.storage.GetSession(s.ctx, "c1")
	s.Empty(again.Guesses)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, testutil.NewSessionBuilder("c1").Build())

	deleted, err := s.storage.DeleteSession(s.ctx, "c1")
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.storage.GetSession(s.ctx, "c1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	deleted, err = s.storage.DeleteSession(s.ctx, "c1")
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *StorageSuite) TestListSessionsReturnsCopies() {
	_ = s.storage.SaveSession(s.ctx, testutil.NewSessionBuilder("c2").Build())
	_ = s.storage.SaveSession(s.ctx, testutil.NewSessionBuilder("c1").Build())

	all, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("c1", all[0].ChannelID)
	s.Equal("c2", all[1].ChannelID)

	all[0].Hints = append(all[0].Hints, "leaked")
	retrieved, _ := s.storage.GetSession(s.ctx, "c1")
	s.Empty(retrieved.Hints)
}

func (s *StorageSuite) TestListSessionsEmpty() {
	all, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.NotNil(all)
	s.Empty(all)
}

func (s *StorageSuite) TestCleanupRemovesOldAndInactive() {
	old := testutil.NewSessionBuilder("old").StartedAt(s.now.Add(-25 * time.Hour)).Build()
	finished := testutil.NewSessionBuilder("finished").StartedAt(s.now.Add(-time.Minute)).Finished(s.now).Build()
	recent := testutil.NewSessionBuilder("recent").StartedAt(s.now.Add(-time.Hour)).Build()

	for _, session := range []model.GameSession{old, finished, recent} {
		s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	}

	removed, err := s.storage.CleanupSessions(s.ctx, s.now, 24*time.Hour)
	s.Require().NoError(err)
	s.Equal(2, removed)

	_, err = s.storage.GetSession(s.ctx, "recent")
	s.NoError(err)
	_, err = s.storage.GetSession(s.ctx, "old")
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.storage.GetSession(s.ctx, "finished")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestCleanupIsIdempotent() {
	_ = s.storage.SaveSession(s.ctx, testutil.NewSessionBuilder("finished").Finished(s.now).Build())

	removed, _ := s.storage.CleanupSessions(s.ctx, s.now, 24*time.Hour)
	s.Equal(1, removed)

	removed, _ = s.storage.CleanupSessions(s.ctx, s.now, 24*time.Hour)
	s.Equal(0, removed)
}
