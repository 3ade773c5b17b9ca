package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mcoot/champguess/internal/model"
)

const (
	DefaultCommunityDragonURL = "https://cdn.communitydragon.org"
	DefaultBuildPatch         = "latest"

	// Item variants Community Dragon lists alongside the real item
	quickChargeMarker = "Quick Charge"
)

// BuildConfig configures the Community Dragon build client
type BuildConfig struct {
	BaseURL     string
	Patch       string
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration

	BuildTTL     time.Duration
	BuildEntries int
	// AssetTTL bounds how long the item and perk tables are reused
	AssetTTL time.Duration
}

// DefaultBuildConfig returns the production Community Dragon settings
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		BaseURL:      DefaultCommunityDragonURL,
		Patch:        DefaultBuildPatch,
		UserAgent:    DefaultUserAgent,
		Timeout:      10 * time.Second,
		MaxAttempts:  3,
		RetryDelay:   500 * time.Millisecond,
		BuildTTL:     6 * time.Hour,
		BuildEntries: 200,
		AssetTTL:     24 * time.Hour,
	}
}

// VersionSource reports the current game patch
type VersionSource interface {
	LatestVersion(ctx context.Context) string
}

// cdragonChampion is the subset of /champion/{key}/data we read
type cdragonChampion struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Spells []struct {
		SpellKey string `json:"spellKey"`
		Name     string `json:"name"`
	} `json:"spells"`
}

// cdragonAsset covers entries of both items.json and perks.json
type cdragonAsset struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceTotal int    `json:"priceTotal"`
	IconPath   string `json:"iconPath"`
}

type assetTable map[int]cdragonAsset

const (
	assetItems = "items"
	assetPerks = "perks"
)

// CommunityDragon is a BuildProvider that starts from the tag-derived defaults
// and fills in abilities, item and rune details from Community Dragon. Upstream
// failures degrade to the defaults rather than failing the lookup.
type CommunityDragon struct {
	fetcher
	cfg      BuildConfig
	versions VersionSource

	builds *expirable.LRU[string, model.ChampionBuild]
	assets *expirable.LRU[string, assetTable]
}

var _ BuildProvider = (*CommunityDragon)(nil)

// NewCommunityDragon creates a Community Dragon build provider. versions is
// optional and supplies the patch label reported on each build.
func NewCommunityDragon(cfg BuildConfig, httpClient *http.Client, versions VersionSource, logger *slog.Logger) *CommunityDragon {
	defaults := DefaultBuildConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Patch == "" {
		cfg.Patch = defaults.Patch
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.BuildEntries <= 0 {
		cfg.BuildEntries = defaults.BuildEntries
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &CommunityDragon{
		fetcher:  newFetcher(httpClient, cfg.UserAgent, cfg.MaxAttempts, cfg.RetryDelay, logger),
		cfg:      cfg,
		versions: versions,
		builds:   expirable.NewLRU[string, model.ChampionBuild](cfg.BuildEntries, nil, cfg.BuildTTL),
		assets:   expirable.NewLRU[string, assetTable](2, nil, cfg.AssetTTL),
	}
}

// GetBuild returns the champion's builds, cached per champion key. A build is
// only cached when every upstream lookup succeeded.
func (c *CommunityDragon) GetBuild(ctx context.Context, champion model.Champion) (model.ChampionBuild, error) {
	if cached, ok := c.builds.Get(champion.Key); ok {
		return cloneBuild(cached), nil
	}

	build := DefaultBuild(champion, c.patch(ctx))
	complete := true

	data, err := c.championData(ctx, champion.Key)
	if err != nil {
		complete = false
		c.logger.Warn("champion data unavailable, using default build",
			slog.String("champion", champion.ID),
			slog.String("error", err.Error()),
		)
	} else {
		build.Abilities = abilities(data)
	}

	items, itemsErr := c.assetTable(ctx, assetItems)
	perks, perksErr := c.assetTable(ctx, assetPerks)
	if itemsErr != nil || perksErr != nil {
		complete = false
	}
	enrich(&build, items, perks)

	if err := ctx.Err(); err != nil {
		return model.ChampionBuild{}, err
	}

	if complete {
		c.builds.Add(champion.Key, build)
	}
	c.logger.Debug("champion build assembled",
		slog.String("champion", champion.ID),
		slog.Int("roles", len(build.Roles)),
		slog.Bool("complete", complete),
	)
	return cloneBuild(build), nil
}

func (c *CommunityDragon) patch(ctx context.Context) string {
	if c.versions != nil {
		if v := c.versions.LatestVersion(ctx); v != "" {
			return v
		}
	}
	return c.cfg.Patch
}

func (c *CommunityDragon) championData(ctx context.Context, key string) (cdragonChampion, error) {
	var data cdragonChampion
	if key == "" {
		return data, fmt.Errorf("%w: champion has no numeric key", model.ErrChampionNotFound)
	}
	url := fmt.Sprintf("%s/%s/champion/%s/data", c.cfg.BaseURL, c.cfg.Patch, key)
	err := c.getWithRetry(ctx, url, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&data)
	})
	return data, err
}

// assetTable loads items.json or perks.json, keeping only named entries
func (c *CommunityDragon) assetTable(ctx context.Context, name string) (assetTable, error) {
	if cached, ok := c.assets.Get(name); ok {
		return cached, nil
	}

	url := fmt.Sprintf("%s/%s/plugins/rcp-be-lol-game-data/global/default/v1/%s.json", c.cfg.BaseURL, c.cfg.Patch, name)
	var entries []cdragonAsset
	err := c.getWithRetry(ctx, url, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&entries)
	})
	if err != nil {
		c.logger.Warn("community dragon table unavailable",
			slog.String("table", name),
			slog.String("error", err.Error()),
		)
		return assetTable{}, err
	}

	table := make(assetTable, len(entries))
	for _, e := range entries {
		if e.ID == 0 || e.Name == "" || strings.Contains(e.Name, quickChargeMarker) {
			continue
		}
		table[e.ID] = e
	}
	c.assets.Add(name, table)
	c.logger.Info("community dragon table loaded",
		slog.String("table", name),
		slog.Int("entries", len(table)),
	)
	return table, nil
}

func abilities(data cdragonChampion) []model.Ability {
	out := make([]model.Ability, 0, len(data.Spells))
	for _, s := range data.Spells {
		out = append(out, model.Ability{Key: strings.ToUpper(s.SpellKey), Name: s.Name})
	}
	return out
}

// enrich overwrites default item and rune details with the upstream tables
func enrich(build *model.ChampionBuild, items, perks assetTable) {
	for i := range build.Roles {
		rb := &build.Roles[i]
		enrichItems(rb.StartingItems, items)
		enrichItems(rb.CoreItems, items)
		enrichItems(rb.SituationalItems, items)
		for j := range rb.RunePage.Runes {
			r := &rb.RunePage.Runes[j]
			if p, ok := perks[r.ID]; ok {
				r.Name = p.Name
				r.Icon = p.IconPath
			}
		}
	}
}

func enrichItems(list []model.BuildItem, items assetTable) {
	for i := range list {
		if it, ok := items[list[i].ID]; ok {
			list[i].Name = it.Name
			list[i].Icon = it.IconPath
			if it.PriceTotal > 0 {
				list[i].Price = it.PriceTotal
			}
		}
	}
}

func cloneBuild(b model.ChampionBuild) model.ChampionBuild {
	out := b
	out.Abilities = append([]model.Ability{}, b.Abilities...)
	out.Roles = make([]model.RoleBuild, len(b.Roles))
	for i, rb := range b.Roles {
		rb.StartingItems = append([]model.BuildItem{}, rb.StartingItems...)
		rb.CoreItems = append([]model.BuildItem{}, rb.CoreItems...)
		rb.SituationalItems = append([]model.BuildItem{}, rb.SituationalItems...)
		rb.SkillOrder = append([]string{}, rb.SkillOrder...)
		rb.RunePage.Runes = append([]model.Rune{}, rb.RunePage.Runes...)
		out.Roles[i] = rb
	}
	return out
}
