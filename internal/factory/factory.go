package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/champguess/internal/catalog"
	"github.com/mcoot/champguess/internal/dependencies/clock"
	"github.com/mcoot/champguess/internal/dependencies/random"
	"github.com/mcoot/champguess/internal/localize"
	"github.com/mcoot/champguess/internal/matching"
	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/preference"
	"github.com/mcoot/champguess/internal/services/champion"
	"github.com/mcoot/champguess/internal/services/game"
	"github.com/mcoot/champguess/internal/sse"
	"github.com/mcoot/champguess/internal/storage"
	"github.com/mcoot/champguess/internal/storage/memory"
	redisstorage "github.com/mcoot/champguess/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Catalog source constants
const (
	CatalogSourceDataDragon = "ddragon"
	CatalogSourceStatic     = "static"
)

// App contains all wired application components
type App struct {
	// Storage
	Sessions    storage.SessionStore
	Preferences *preference.Store

	// External dependencies
	Clock   clock.Clock
	Random  random.Random
	Catalog catalog.Provider
	Builds  catalog.BuildProvider

	// Services
	GameController *game.Controller
	Sweeper        *game.Sweeper
	Champions      *champion.Service

	// Live channel event feeds
	HubManager *sse.HubManager

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the session backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// CatalogSource selects "ddragon" or the bundled "static" roster
	// If empty, defaults to "ddragon"
	CatalogSource string
	DataDragon    catalog.Config

	// CommunityDragon configures build lookups for the "ddragon" source;
	// the "static" source serves tag-derived builds offline
	CommunityDragon catalog.BuildConfig

	// AliasesPath optionally points at a YAML alias table merged over the built-in one
	AliasesPath string
	// MessagesPath optionally replaces the embedded message catalog
	MessagesPath string

	// Preferences defaults to preference.DefaultConfig() when zero
	Preferences preference.Config
	// Sweeper defaults to DefaultSweeperConfig() when zero
	Sweeper game.SweeperConfig
}

// DefaultSweeperConfig returns the production cleanup cadence
func DefaultSweeperConfig() game.SweeperConfig {
	return game.SweeperConfig{
		Interval:         30 * time.Minute,
		SessionMaxAge:    24 * time.Hour,
		InactiveUserDays: 30,
	}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var (
		store   storage.SessionStore
		closers []io.Closer
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	var (
		provider catalog.Provider
		builds   catalog.BuildProvider
	)
	catalogSource := cfg.CatalogSource
	if catalogSource == "" {
		catalogSource = CatalogSourceDataDragon
	}

	switch catalogSource {
	case CatalogSourceDataDragon:
		ddCfg := cfg.DataDragon
		if ddCfg == (catalog.Config{}) {
			ddCfg = catalog.DefaultConfig()
		}
		dd := catalog.NewDataDragon(ddCfg, &http.Client{Timeout: ddCfg.Timeout}, clk, rnd, logger)
		provider = dd

		cdCfg := cfg.CommunityDragon
		if cdCfg == (catalog.BuildConfig{}) {
			cdCfg = catalog.DefaultBuildConfig()
		}
		builds = catalog.NewCommunityDragon(cdCfg, &http.Client{Timeout: cdCfg.Timeout}, dd, logger)
	case CatalogSourceStatic:
		static, err := catalog.NewBundled(rnd)
		if err != nil {
			return nil, err
		}
		provider = static
		builds = catalog.StaticBuilds{Patch: catalog.DefaultFallbackVersion}
	default:
		return nil, errors.New("invalid CatalogSource: must be 'ddragon' or 'static'")
	}

	aliases := matching.DefaultAliases()
	if cfg.AliasesPath != "" {
		extra, err := matching.LoadAliasesFile(cfg.AliasesPath)
		if err != nil {
			return nil, err
		}
		aliases = aliases.Merge(extra)
	}

	var localizer localize.Localizer = localize.Default()
	if cfg.MessagesPath != "" {
		messages, err := localize.LoadCatalogFile(cfg.MessagesPath)
		if err != nil {
			return nil, err
		}
		warnMissingLanguages(logger, cfg.MessagesPath, messages.Languages())
		localizer = messages
	}

	prefCfg := cfg.Preferences
	if prefCfg == (preference.Config{}) {
		prefCfg = preference.DefaultConfig()
	}
	sweeperCfg := cfg.Sweeper
	if sweeperCfg == (game.SweeperConfig{}) {
		sweeperCfg = DefaultSweeperConfig()
	}

	app := newWithDependencies(dependencies{
		sessions:    store,
		catalog:     provider,
		builds:      builds,
		aliases:     aliases,
		localizer:   localizer,
		preferences: prefCfg,
		sweeper:     sweeperCfg,
		clock:       clk,
		random:      rnd,
		logger:      logger,
	})
	app.closers = closers

	logger.Info("application wired",
		slog.String("storage", storageType),
		slog.String("catalog", catalogSource),
		slog.Int("aliases", len(aliases)),
	)
	return app, nil
}

// warnMissingLanguages flags supported languages a custom message file leaves out;
// those users fall back to the default language.
func warnMissingLanguages(logger *slog.Logger, path string, have []model.Language) {
	present := make(map[model.Language]bool, len(have))
	for _, lang := range have {
		present[lang] = true
	}
	for _, lang := range model.ValidLanguages() {
		if !present[lang] {
			logger.Warn("message catalog has no entries for language",
				slog.String("path", path),
				slog.String("language", string(lang)),
				slog.String("fallback", string(localize.FallbackLanguage)),
			)
		}
	}
}

// Close releases connections held by the storage backend
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type dependencies struct {
	sessions    storage.SessionStore
	catalog     catalog.Provider
	builds      catalog.BuildProvider
	aliases     matching.Aliases
	localizer   localize.Localizer
	preferences preference.Config
	sweeper     game.SweeperConfig
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(deps dependencies) *App {
	prefs := preference.New(deps.preferences, deps.clock, deps.logger)
	matcher := matching.NewMatcher(deps.aliases)
	controller := game.NewController(deps.sessions, prefs, deps.catalog, matcher, deps.localizer, deps.clock, deps.logger)

	hubs := sse.NewHubManager(deps.logger)
	controller.SetPublisher(sse.NewBroadcaster(hubs, deps.logger))

	sweeper := game.NewSweeper(controller, prefs, deps.sweeper, deps.logger).WithHubs(hubs)
	champions := champion.NewService(deps.catalog, deps.builds, matcher, deps.logger)

	return &App{
		Sessions:       deps.sessions,
		Preferences:    prefs,
		Clock:          deps.clock,
		Random:         deps.random,
		Catalog:        deps.catalog,
		Builds:         deps.builds,
		GameController: controller,
		Sweeper:        sweeper,
		Champions:      champions,
		HubManager:     hubs,
	}
}
