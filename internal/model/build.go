package model

import "strings"

// Role is a lane position a build targets
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

// ValidRoles returns every role in lane order
func ValidRoles() []Role {
	return []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}
}

// ParseRole converts a case-insensitive role name to a Role
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range ValidRoles() {
		if r == valid {
			return r, true
		}
	}
	return "", false
}

// BuildItem is one purchasable item in a build
type BuildItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Icon  string `json:"icon,omitempty"`
}

// Rune is a single rune or rune tree
type Rune struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// RuneShards are the three stat shard slots
type RuneShards struct {
	Offense int `json:"offense"`
	Flex    int `json:"flex"`
	Defense int `json:"defense"`
}

// RunePage is a full rune selection
type RunePage struct {
	Primary   Rune       `json:"primary_tree"`
	Secondary Rune       `json:"secondary_tree"`
	Runes     []Rune     `json:"runes"`
	Shards    RuneShards `json:"shards"`
}

// SummonerSpells holds the two summoner spell picks
type SummonerSpells struct {
	First  string `json:"spell1"`
	Second string `json:"spell2"`
}

// Ability is a champion spell as listed by Community Dragon
type Ability struct {
	Key  string `json:"key"` // q, w, e, r
	Name string `json:"name"`
}

// RoleBuild is the recommended setup for one role
type RoleBuild struct {
	Role             Role           `json:"role"`
	RunePage         RunePage       `json:"rune_page"`
	StartingItems    []BuildItem    `json:"starting_items"`
	CoreItems        []BuildItem    `json:"core_items"`
	SituationalItems []BuildItem    `json:"situational_items"`
	SkillOrder       []string       `json:"skill_order"`
	SummonerSpells   SummonerSpells `json:"summoner_spells"`
}

// ChampionBuild groups the role builds recommended for a champion
type ChampionBuild struct {
	ChampionID   string      `json:"champion_id"`
	ChampionName string      `json:"champion_name"`
	Patch        string      `json:"patch"`
	Abilities    []Ability   `json:"abilities"`
	Roles        []RoleBuild `json:"roles"`
}

// RoleBuild returns the build for role, if the champion has one
func (b ChampionBuild) RoleBuild(role Role) (RoleBuild, bool) {
	for _, rb := range b.Roles {
		if rb.Role == role {
			return rb, true
		}
	}
	return RoleBuild{}, false
}

// ViableRoles derives the lanes a champion is built for from its class tags.
// Champions with no recognised tag default to mid.
func (c Champion) ViableRoles() []Role {
	var roles []Role
	if c.HasRole("Fighter") || c.HasRole("Tank") {
		roles = append(roles, RoleTop)
	}
	if c.HasRole("Mage") || c.HasRole("Assassin") {
		roles = append(roles, RoleMid)
	}
	if c.HasRole("Marksman") {
		roles = append(roles, RoleADC)
	}
	if c.HasRole("Support") {
		roles = append(roles, RoleSupport)
	}
	if c.HasRole("Fighter") || c.HasRole("Assassin") || c.HasRole("Tank") {
		roles = append(roles, RoleJungle)
	}
	if len(roles) == 0 {
		return []Role{RoleMid}
	}
	return roles
}
