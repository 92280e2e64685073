package components

// Creature holds gameplay identity for a spawned target.
// IDs are assigned in spawn order, so a lower ID means an earlier spawn.
type Creature struct {
	ID         uint32
	Rarity     Rarity
	BaseReward int64
	Multiplier int64
	Ability    Ability
	SpawnTick  int64
	Phase      float32 // Noise offset for the swim wobble
}

// Reward returns the payout credited when the creature dies.
func (c *Creature) Reward() int64 {
	return c.BaseReward * c.Multiplier
}

// Status holds timed movement modifiers.
// SlowScale multiplies velocity while the creature is frozen; 1 means unaffected.
type Status struct {
	SlowScale float32
	SlowUntil int64 // Tick at which the freeze lapses
}

// Slowed reports whether a freeze is still in force at tick now.
func (s *Status) Slowed(now int64) bool {
	return s.SlowScale < 1 && now < s.SlowUntil
}

// Projectile holds the fixed flight parameters of a cannon shot.
// Direction is a unit vector and Power is copied from the cannon at fire time.
type Projectile struct {
	ID      uint32
	OriginX float32
	OriginY float32
	DirX    float32
	DirY    float32
	Speed   float32
	Power   int
}
