package catalog

import (
	"context"

	"github.com/mcoot/champguess/internal/model"
)

// BuildProvider supplies recommended builds for a champion
type BuildProvider interface {
	// GetBuild returns one RoleBuild per viable role for the champion
	GetBuild(ctx context.Context, champion model.Champion) (model.ChampionBuild, error)
}

// DefaultSkillOrder is the level 1-10 skill sequence used for every role
var DefaultSkillOrder = []string{"Q", "W", "E", "Q", "Q", "R", "Q", "W", "Q", "W"}

var (
	runeTreePrecision  = model.Rune{ID: 8000, Name: "Precision"}
	runeTreeDomination = model.Rune{ID: 8100, Name: "Domination"}
	runeTreeSorcery    = model.Rune{ID: 8200, Name: "Sorcery"}
	runeTreeResolve    = model.Rune{ID: 8400, Name: "Resolve"}

	defaultRunes = []model.Rune{
		{ID: 8005, Name: "Press the Attack"},
		{ID: 8009, Name: "Presence of Mind"},
		{ID: 8014, Name: "Legend: Alacrity"},
		{ID: 8017, Name: "Coup de Grace"},
	}
	defaultShards = model.RuneShards{Offense: 5008, Flex: 5008, Defense: 5002}

	itemHealthPotion = model.BuildItem{ID: 2003, Name: "Health Potion", Price: 50}
	itemDoransBlade  = model.BuildItem{ID: 1055, Name: "Doran's Blade", Price: 450}
	itemDoransRing   = model.BuildItem{ID: 1056, Name: "Doran's Ring", Price: 400}
	itemDoransShield = model.BuildItem{ID: 1054, Name: "Doran's Shield", Price: 450}

	defaultCoreItems = []model.BuildItem{
		{ID: 3031, Name: "Infinity Edge", Price: 3400},
		{ID: 3094, Name: "Rapid Firecannon", Price: 2600},
		{ID: 3046, Name: "Phantom Dancer", Price: 2600},
	}
	defaultSituationalItems = []model.BuildItem{
		{ID: 3036, Name: "Lord Dominik's Regards", Price: 3000},
		{ID: 3033, Name: "Mortal Reminder", Price: 3000},
		{ID: 3026, Name: "Guardian Angel", Price: 3200},
	}
)

// DefaultBuild assembles the tag-derived build for a champion without any
// upstream data
func DefaultBuild(champion model.Champion, patch string) model.ChampionBuild {
	roles := champion.ViableRoles()
	builds := make([]model.RoleBuild, 0, len(roles))
	for _, role := range roles {
		builds = append(builds, defaultRoleBuild(champion, role))
	}
	return model.ChampionBuild{
		ChampionID:   champion.ID,
		ChampionName: champion.Name,
		Patch:        patch,
		Abilities:    []model.Ability{},
		Roles:        builds,
	}
}

func defaultRoleBuild(champion model.Champion, role model.Role) model.RoleBuild {
	return model.RoleBuild{
		Role:             role,
		RunePage:         defaultRunePage(champion),
		StartingItems:    startingItems(champion),
		CoreItems:        append([]model.BuildItem{}, defaultCoreItems...),
		SituationalItems: append([]model.BuildItem{}, defaultSituationalItems...),
		SkillOrder:       append([]string{}, DefaultSkillOrder...),
		SummonerSpells:   summonerSpells(role),
	}
}

func defaultRunePage(champion model.Champion) model.RunePage {
	physical := champion.HasRole("Marksman") || champion.HasRole("Assassin") || champion.HasRole("Fighter")

	page := model.RunePage{
		Primary:   runeTreeDomination,
		Secondary: runeTreeSorcery,
		Runes:     append([]model.Rune{}, defaultRunes...),
		Shards:    defaultShards,
	}
	if physical {
		page.Primary = runeTreePrecision
	}
	if champion.HasRole("Tank") {
		page.Secondary = runeTreeResolve
	}
	return page
}

func startingItems(champion model.Champion) []model.BuildItem {
	switch {
	case champion.HasRole("Marksman"):
		return []model.BuildItem{itemDoransBlade, itemHealthPotion}
	case champion.HasRole("Mage"):
		return []model.BuildItem{itemDoransRing, itemHealthPotion}
	default:
		return []model.BuildItem{itemDoransShield, itemHealthPotion}
	}
}

func summonerSpells(role model.Role) model.SummonerSpells {
	switch role {
	case model.RoleJungle:
		return model.SummonerSpells{First: "Smite", Second: "Flash"}
	case model.RoleSupport:
		return model.SummonerSpells{First: "Flash", Second: "Ignite"}
	case model.RoleADC:
		return model.SummonerSpells{First: "Flash", Second: "Heal"}
	default:
		return model.SummonerSpells{First: "Flash", Second: "Teleport"}
	}
}

// StaticBuilds serves DefaultBuild for every champion with no network access
type StaticBuilds struct {
	Patch string
}

var _ BuildProvider = StaticBuilds{}

// GetBuild returns the tag-derived build
func (s StaticBuilds) GetBuild(ctx context.Context, champion model.Champion) (model.ChampionBuild, error) {
	if err := ctx.Err(); err != nil {
		return model.ChampionBuild{}, err
	}
	return DefaultBuild(champion, s.Patch), nil
}
