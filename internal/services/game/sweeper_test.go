package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/champguess/internal/catalog"
	"github.com/mcoot/champguess/internal/dependencies/mocks"
	"github.com/mcoot/champguess/internal/localize"
	"github.com/mcoot/champguess/internal/matching"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/storage/memory"
	"github.com/mcoot/champguess/internal/testutil"
)

func TestSweepRemovesStaleState(t *testing.T) {
	ctx := context.Background()
	clk := mocks.NewMockClock(testutil.FixedTime())
	storage := memory.New()
	prefs := preference.New(preference.DefaultConfig(), clk, testutil.NopLogger())
	controller := NewController(
		storage,
		prefs,
		catalog.NewStatic(testutil.Champions(), mocks.NewMockRandom()),
		matching.NewMatcher(nil),
		localize.Default(),
		clk,
		testutil.NopLogger(),
	)

	_, err := controller.StartGame(ctx, "old-user", "c1")
	require.NoError(t, err)
	_, err = controller.GiveUp(ctx, "c1")
	require.NoError(t, err)

	clk.Advance(31 * 24 * time.Hour)
	_, err = controller.StartGame(ctx, "new-user", "c2")
	require.NoError(t, err)

	sweeper := NewSweeper(controller, prefs, SweeperConfig{
		Interval:         time.Hour,
		SessionMaxAge:    24 * time.Hour,
		InactiveUserDays: 30,
	}, testutil.NopLogger())

	sessions, users := sweeper.Sweep(ctx)

	assert.Equal(t, 1, sessions)
	assert.Equal(t, 1, users)
	_, ok := prefs.Peek("new-user")
	assert.True(t, ok)
	_, err = controller.GetSession(ctx, "c2")
	assert.NoError(t, err)
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	clk := mocks.NewMockClock(testutil.FixedTime())
	controller := NewController(
		memory.New(),
		preference.New(preference.DefaultConfig(), clk, testutil.NopLogger()),
		catalog.NewStatic(testutil.Champions(), mocks.NewMockRandom()),
		matching.NewMatcher(nil),
		localize.Default(),
		clk,
		testutil.NopLogger(),
	)
	sweeper := NewSweeper(controller, nil, SweeperConfig{Interval: time.Millisecond}, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

type countingHubs struct {
	calls int
}

func (c *countingHubs) CleanupEmptyHubs() int {
	c.calls++
	return 2
}

func TestSweepCleansIdleHubs(t *testing.T) {
	clk := mocks.NewMockClock(testutil.FixedTime())
	controller := NewController(
		memory.New(),
		preference.New(preference.DefaultConfig(), clk, testutil.NopLogger()),
		catalog.NewStatic(testutil.Champions(), mocks.NewMockRandom()),
		matching.NewMatcher(nil),
		localize.Default(),
		clk,
		testutil.NopLogger(),
	)
	hubs := &countingHubs{}
	sweeper := NewSweeper(controller, nil, SweeperConfig{SessionMaxAge: time.Hour}, testutil.NopLogger()).WithHubs(hubs)

	sweeper.Sweep(context.Background())
	sweeper.Sweep(context.Background())

	assert.Equal(t, 2, hubs.calls)
}
