package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/champguess/internal/model"
	"github.com/mcoot/champguess/internal/testutil"
)

const luxDataFixture = `{"id": 99, "name": "Lux", "spells": [
  {"spellKey": "q", "name": "Light Binding"},
  {"spellKey": "w", "name": "Prismatic Barrier"},
  {"spellKey": "e", "name": "Lucent Singularity"},
  {"spellKey": "r", "name": "Final Spark"}
]}`

const itemsFixture = `[
  {"id": 1056, "name": "Doran's Ring", "priceTotal": 400, "iconPath": "/items/1056.png"},
  {"id": 3031, "name": "Infinity Edge", "priceTotal": 3450, "iconPath": "/items/3031.png"},
  {"id": 3094, "name": "Rapid Firecannon (Quick Charge)", "priceTotal": 1}
]`

const perksFixture = `[{"id": 8005, "name": "Press the Attack", "iconPath": "/perks/8005.png"}]`

// fakeCommunityDragon serves champion data plus the item and perk tables
type fakeCommunityDragon struct {
	server        *httptest.Server
	championHits  atomic.Int32
	itemHits      atomic.Int32
	championDown  atomic.Bool
	itemsDown     atomic.Bool
	lastUserAgent atomic.Value
}

func newFakeCommunityDragon(t *testing.T) *fakeCommunityDragon {
	t.Helper()

	f := &fakeCommunityDragon{}
	mux := http.NewServeMux()
	mux.HandleFunc("/latest/champion/99/data", func(w http.ResponseWriter, r *http.Request) {
		f.championHits.Add(1)
		f.lastUserAgent.Store(r.Header.Get("User-Agent"))
		if f.championDown.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, luxDataFixture)
	})
	mux.HandleFunc("/latest/plugins/rcp-be-lol-game-data/global/default/v1/items.json", func(w http.ResponseWriter, r *http.Request) {
		f.itemHits.Add(1)
		if f.itemsDown.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, itemsFixture)
	})
	mux.HandleFunc("/latest/plugins/rcp-be-lol-game-data/global/default/v1/perks.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, perksFixture)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

type fixedVersion string

func (v fixedVersion) LatestVersion(context.Context) string { return string(v) }

func newTestCommunityDragon(f *fakeCommunityDragon, versions VersionSource) *CommunityDragon {
	cfg := DefaultBuildConfig()
	cfg.BaseURL = f.server.URL
	cfg.RetryDelay = 0
	cfg.MaxAttempts = 1
	return NewCommunityDragon(cfg, f.server.Client(), versions, testutil.NopLogger())
}

func lux() model.Champion {
	return model.Champion{ID: "Lux", Key: "99", Name: "Lux", Tags: []string{"Mage", "Support"}}
}

func TestGetBuildUsesCommunityDragonData(t *testing.T) {
	f := newFakeCommunityDragon(t)
	cd := newTestCommunityDragon(f, fixedVersion("14.21.1"))

	build, err := cd.GetBuild(context.Background(), lux())
	require.NoError(t, err)

	assert.Equal(t, "Lux", build.ChampionID)
	assert.Equal(t, "14.21.1", build.Patch)
	require.Len(t, build.Abilities, 4)
	assert.Equal(t, model.Ability{Key: "Q", Name: "Light Binding"}, build.Abilities[0])
	assert.Equal(t, DefaultUserAgent, f.lastUserAgent.Load())

	require.Len(t, build.Roles, 2)
	mid := build.Roles[0]
	assert.Equal(t, model.RoleMid, mid.Role)
	assert.Equal(t, "Domination", mid.RunePage.Primary.Name)
	assert.Equal(t, "Sorcery", mid.RunePage.Secondary.Name)
	assert.Equal(t, "/perks/8005.png", mid.RunePage.Runes[0].Icon)
	assert.Equal(t, "Doran's Ring", mid.StartingItems[0].Name)
	assert.Equal(t, "/items/1056.png", mid.StartingItems[0].Icon)
	assert.Equal(t, 3450, mid.CoreItems[0].Price, "upstream price wins")
	assert.Equal(t, "Rapid Firecannon", mid.CoreItems[1].Name, "quick charge variants are ignored")
	assert.Equal(t, model.SummonerSpells{First: "Flash", Second: "Teleport"}, mid.SummonerSpells)
	assert.Equal(t, model.SummonerSpells{First: "Flash", Second: "Ignite"}, build.Roles[1].SummonerSpells)
}

func TestGetBuildCachesCompleteBuilds(t *testing.T) {
	f := newFakeCommunityDragon(t)
	cd := newTestCommunityDragon(f, nil)
	ctx := context.Background()

	first, err := cd.GetBuild(ctx, lux())
	require.NoError(t, err)
	assert.Equal(t, DefaultBuildPatch, first.Patch)
	first.Roles[0].CoreItems[0].Name = "mutated"

	second, err := cd.GetBuild(ctx, lux())
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.championHits.Load())
	assert.Equal(t, int32(1), f.itemHits.Load())
	assert.Equal(t, "Infinity Edge", second.Roles[0].CoreItems[0].Name)
}

func TestGetBuildFallsBackToDefaults(t *testing.T) {
	f := newFakeCommunityDragon(t)
	f.championDown.Store(true)
	f.itemsDown.Store(true)
	cd := newTestCommunityDragon(f, nil)
	ctx := context.Background()

	build, err := cd.GetBuild(ctx, lux())
	require.NoError(t, err)

	assert.Empty(t, build.Abilities)
	require.NotEmpty(t, build.Roles)
	assert.Equal(t, 400, build.Roles[0].StartingItems[0].Price)
	assert.Empty(t, build.Roles[0].StartingItems[0].Icon)

	f.championDown.Store(false)
	f.itemsDown.Store(false)
	build, err = cd.GetBuild(ctx, lux())
	require.NoError(t, err)
	assert.Len(t, build.Abilities, 4, "degraded builds are not cached")
	assert.Equal(t, int32(2), f.championHits.Load())
}

func TestGetBuildHonoursCancelledContext(t *testing.T) {
	f := newFakeCommunityDragon(t)
	cd := newTestCommunityDragon(f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cd.GetBuild(ctx, lux())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultBuildByClass(t *testing.T) {
	darius := model.Champion{ID: "Darius", Key: "122", Name: "Darius", Tags: []string{"Fighter", "Tank"}}
	build := DefaultBuild(darius, "14.21.1")

	require.Len(t, build.Roles, 2)
	top, jungle := build.Roles[0], build.Roles[1]
	assert.Equal(t, model.RoleTop, top.Role)
	assert.Equal(t, "Precision", top.RunePage.Primary.Name)
	assert.Equal(t, "Resolve", top.RunePage.Secondary.Name)
	assert.Equal(t, "Doran's Shield", top.StartingItems[0].Name)
	assert.Equal(t, model.RoleJungle, jungle.Role)
	assert.Equal(t, model.SummonerSpells{First: "Smite", Second: "Flash"}, jungle.SummonerSpells)
	assert.Equal(t, DefaultSkillOrder, top.SkillOrder)

	jinx := model.Champion{ID: "Jinx", Name: "Jinx", Tags: []string{"Marksman"}}
	adc := DefaultBuild(jinx, "").Roles[0]
	assert.Equal(t, model.RoleADC, adc.Role)
	assert.Equal(t, "Doran's Blade", adc.StartingItems[0].Name)
	assert.Equal(t, model.SummonerSpells{First: "Flash", Second: "Heal"}, adc.SummonerSpells)
}

func TestStaticBuilds(t *testing.T) {
	build, err := StaticBuilds{Patch: "14.21.1"}.GetBuild(context.Background(), lux())
	require.NoError(t, err)
	assert.Equal(t, "14.21.1", build.Patch)
	assert.Equal(t, []model.Role{model.RoleMid, model.RoleSupport}, []model.Role{build.Roles[0].Role, build.Roles[1].Role})
}
