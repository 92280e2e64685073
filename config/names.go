package config

// RarityNames lists the rarity tiers from most common to rarest.
// The rarity table in the config must use exactly this order.
var RarityNames = []string{"common", "rare", "epic", "legendary", "mythic"}

// Ability names accepted in rarity.ability.
const (
	AbilityArea         = "area"
	AbilityChain        = "chain"
	AbilityCrowdControl = "crowd_control"
	AbilityPull         = "pull"
)
