package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mcoot/champguess/internal/dependencies/clock"
	"github.com/mcoot/champguess/internal/dependencies/random"
	"github.com/mcoot/champguess/internal/model"
)

const (
	DefaultBaseURL         = "https://ddragon.leagueoflegends.com"
	DefaultFallbackVersion = "14.20.1"
	DefaultUserAgent       = "LoL-Guesser-Bot/1.0"
)

// Config configures the Data Dragon client
type Config struct {
	BaseURL string
	// Version pins the catalog version and skips the versions lookup when set
	Version         string
	FallbackVersion string
	UserAgent       string
	Timeout         time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration

	VersionTTL      time.Duration
	FallbackTTL     time.Duration
	ResponseTTL     time.Duration
	ResponseEntries int
}

// DefaultConfig returns the production Data Dragon settings
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		FallbackVersion: DefaultFallbackVersion,
		UserAgent:       DefaultUserAgent,
		Timeout:         10 * time.Second,
		MaxAttempts:     3,
		RetryDelay:      500 * time.Millisecond,
		VersionTTL:      10 * time.Minute,
		FallbackTTL:     time.Minute,
		ResponseTTL:     time.Hour,
		ResponseEntries: 20,
	}
}

// championsResponse is the shape of champion.json
type championsResponse struct {
	Type    string                       `json:"type"`
	Version string                       `json:"version"`
	Data    map[string]dataDragonChampion `json:"data"`
}

type dataDragonChampion struct {
	ID      string   `json:"id"`
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Partype string   `json:"partype"`
	Info    struct {
		Difficulty int `json:"difficulty"`
	} `json:"info"`
	Stats struct {
		AttackRange float64 `json:"attackrange"`
	} `json:"stats"`
}

func (c dataDragonChampion) toModel() model.Champion {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Champion{
		ID:          c.ID,
		Key:         c.Key,
		Name:        c.Name,
		Title:       c.Title,
		Tags:        tags,
		Partype:     c.Partype,
		AttackRange: c.Stats.AttackRange,
		Difficulty:  c.Info.Difficulty,
	}
}

// decodeChampions parses champion.json into a name-sorted slice
func decodeChampions(r io.Reader) ([]model.Champion, error) {
	var resp championsResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode champions: %w", err)
	}

	champions := make([]model.Champion, 0, len(resp.Data))
	for _, c := range resp.Data {
		champions = append(champions, c.toModel())
	}
	sortByName(champions)
	return champions, nil
}

type cachedVersion struct {
	version string
	expires time.Time
}

// DataDragon is a Provider backed by Riot's Data Dragon CDN
type DataDragon struct {
	fetcher
	cfg    Config
	clock  clock.Clock
	random random.Random

	versionMu sync.Mutex
	version   cachedVersion

	responses *expirable.LRU[string, []model.Champion]
}

var _ Provider = (*DataDragon)(nil)

// NewDataDragon creates a Data Dragon provider
func NewDataDragon(cfg Config, httpClient *http.Client, clk clock.Clock, rnd random.Random, logger *slog.Logger) *DataDragon {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.FallbackVersion == "" {
		cfg.FallbackVersion = defaults.FallbackVersion
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.ResponseEntries <= 0 {
		cfg.ResponseEntries = defaults.ResponseEntries
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &DataDragon{
		fetcher:   newFetcher(httpClient, cfg.UserAgent, cfg.MaxAttempts, cfg.RetryDelay, logger),
		cfg:       cfg,
		clock:     clk,
		random:    rnd,
		responses: expirable.NewLRU[string, []model.Champion](cfg.ResponseEntries, nil, cfg.ResponseTTL),
	}
}

// LatestVersion returns the newest catalog version. Lookup failures fall back to
// the configured fallback version, which is cached for a shorter period.
func (d *DataDragon) LatestVersion(ctx context.Context) string {
	if d.cfg.Version != "" {
		return d.cfg.Version
	}

	d.versionMu.Lock()
	defer d.versionMu.Unlock()

	now := d.clock.Now()
	if d.version.version != "" && now.Before(d.version.expires) {
		return d.version.version
	}

	version, err := d.fetchLatestVersion(ctx)
	if err != nil {
		d.logger.Warn("version lookup failed, using fallback",
			slog.String("fallback", d.cfg.FallbackVersion),
			slog.String("error", err.Error()),
		)
		d.version = cachedVersion{version: d.cfg.FallbackVersion, expires: now.Add(d.cfg.FallbackTTL)}
		return d.cfg.FallbackVersion
	}

	d.logger.Info("catalog version resolved", slog.String("version", version))
	d.version = cachedVersion{version: version, expires: now.Add(d.cfg.VersionTTL)}
	return version
}

func (d *DataDragon) fetchLatestVersion(ctx context.Context) (string, error) {
	var versions []string
	err := d.getWithRetry(ctx, d.cfg.BaseURL+"/api/versions.json", func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&versions)
	})
	if err != nil {
		return "", err
	}
	if len(versions) == 0 || versions[0] == "" {
		return "", errors.New("no versions available")
	}
	return versions[0], nil
}

// GetAll returns the catalog for the locale, served from cache when fresh
func (d *DataDragon) GetAll(ctx context.Context, locale model.Locale, version string) ([]model.Champion, error) {
	if version == "" {
		version = d.LatestVersion(ctx)
	}

	cacheKey := version + "/" + string(locale)
	if cached, ok := d.responses.Get(cacheKey); ok {
		return cloneChampions(cached), nil
	}

	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", d.cfg.BaseURL, version, locale)
	var champions []model.Champion
	err := d.getWithRetry(ctx, url, func(body io.Reader) error {
		var decodeErr error
		champions, decodeErr = decodeChampions(body)
		return decodeErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCatalogUnavailable, err)
	}

	d.responses.Add(cacheKey, champions)
	d.logger.Info("catalog loaded",
		slog.String("version", version),
		slog.String("locale", string(locale)),
		slog.Int("champions", len(champions)),
	)
	return cloneChampions(champions), nil
}

// GetRandom picks a champion from the latest catalog for the locale
func (d *DataDragon) GetRandom(ctx context.Context, locale model.Locale) (model.Champion, error) {
	champions, err := d.GetAll(ctx, locale, "")
	if err != nil {
		return model.Champion{}, err
	}
	champion, ok := random.Pick(d.random, champions)
	if !ok {
		return model.Champion{}, fmt.Errorf("%w: catalog is empty", model.ErrCatalogUnavailable)
	}
	return champion, nil
}

func cloneChampions(champions []model.Champion) []model.Champion {
	out := make([]model.Champion, len(champions))
	for i, c := range champions {
		c.Tags = append(make([]string, 0, len(c.Tags)), c.Tags...)
		out[i] = c
	}
	return out
}
