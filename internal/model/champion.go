package model

// RangedThreshold is the attack range above which a champion counts as ranged
const RangedThreshold = 200

// AttackType classifies a champion as melee or ranged
type AttackType string

const (
	AttackTypeMelee  AttackType = "melee"
	AttackTypeRanged AttackType = "ranged"
)

// Champion is an immutable catalog entry
type Champion struct {
	ID          string   `json:"id"`  // e.g., "MissFortune"
	Key         string   `json:"key"` // e.g., "21"
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"` // Ordered, primary role first
	Partype     string   `json:"partype"`
	AttackRange float64  `json:"attack_range"`
	Difficulty  int      `json:"difficulty"`
}

// PrimaryRole returns the first role tag, or "" if the champion has none
func (c Champion) PrimaryRole() string {
	if len(c.Tags) == 0 {
		return ""
	}
	return c.Tags[0]
}

// HasRole reports whether the champion carries the given role tag
func (c Champion) HasRole(role string) bool {
	for _, t := range c.Tags {
		if t == role {
			return true
		}
	}
	return false
}

// AttackType derives melee/ranged from the attack range
func (c Champion) AttackType() AttackType {
	if c.AttackRange > RangedThreshold {
		return AttackTypeRanged
	}
	return AttackTypeMelee
}

// clone returns a copy that shares no slices with c
func (c Champion) clone() Champion {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	return out
}
