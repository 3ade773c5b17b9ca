package factory

import (
	"github.com/mcoot/champguess/internal/catalog"
	"github.com/mcoot/champguess/internal/dependencies/mocks"
	"github.com/mcoot/champguess/internal/localize"
	"github.com/mcoot/champguess/internal/matching"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/storage/memory"
	"github.com/mcoot/champguess/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The catalog is the fixed testutil roster; queue MockRandom indexes to pick targets.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(testutil.FixedTime())
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(dependencies{
		sessions:    memory.New(),
		catalog:     catalog.NewStatic(testutil.Champions(), mockRandom),
		builds:      catalog.StaticBuilds{Patch: "14.21.1"},
		aliases:     matching.DefaultAliases(),
		localizer:   localize.Default(),
		preferences: preference.DefaultConfig(),
		sweeper:     DefaultSweeperConfig(),
		clock:       mockClock,
		random:      mockRandom,
		logger:      testutil.NopLogger(),
	})

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
