package components

// Rarity is a creature tier, ordered from most common to rarest.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// RarityCount is the number of rarity tiers.
const RarityCount = 5

var rarityNames = [RarityCount]string{"common", "rare", "epic", "legendary", "mythic"}

// String returns the config name of the tier.
func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "unknown"
}

// ParseRarity maps a config name to its tier.
func ParseRarity(name string) (Rarity, bool) {
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), true
		}
	}
	return RarityCommon, false
}

// Ability is the special effect a creature releases when it dies.
type Ability uint8

const (
	AbilityNone Ability = iota
	AbilityArea
	AbilityChain
	AbilityCrowdControl
	AbilityPull
)

// String returns the config name of the ability.
func (a Ability) String() string {
	switch a {
	case AbilityArea:
		return "area"
	case AbilityChain:
		return "chain"
	case AbilityCrowdControl:
		return "crowd_control"
	case AbilityPull:
		return "pull"
	default:
		return "none"
	}
}

// ParseAbility maps a config name to its ability. The empty string means none.
func ParseAbility(name string) (Ability, bool) {
	switch name {
	case "":
		return AbilityNone, true
	case "area":
		return AbilityArea, true
	case "chain":
		return AbilityChain, true
	case "crowd_control":
		return AbilityCrowdControl, true
	case "pull":
		return AbilityPull, true
	}
	return AbilityNone, false
}
