package systems

// SystemInfo describes a tick phase for perf reports and the HUD.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "physics", "effects")
}

// Tick phase IDs, shared by the perf collector and the registry.
const (
	PhaseSchedule    = "schedule"
	PhaseWaves       = "waves"
	PhaseAutoFire    = "autoFire"
	PhaseAdvance     = "advance"
	PhaseCollision   = "collision"
	PhaseEffects     = "effects"
	PhaseCull        = "cull"
	PhaseWaveAdvance = "waveAdvance"
	PhaseTelemetry   = "telemetry"
	PhaseEvents      = "events"
)

// SystemRegistry holds metadata about all systems.
// This centralizes phase naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all tick phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the tick phases in execution order.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseSchedule, Name: "Schedule", Description: "Fires scheduled expiries", Category: "core"})
	r.Register(SystemInfo{ID: PhaseWaves, Name: "Waves", Description: "Advances wave timers and spawns creatures", Category: "core"})
	r.Register(SystemInfo{ID: PhaseAutoFire, Name: "Auto Fire", Description: "Fires at the most valuable creature", Category: "input"})
	r.Register(SystemInfo{ID: PhaseAdvance, Name: "Advance", Description: "Moves creatures and projectiles", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseCollision, Name: "Collision", Description: "Resolves projectile hits", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseEffects, Name: "Effects", Description: "Applies queued abilities and active wells", Category: "effects"})
	r.Register(SystemInfo{ID: PhaseCull, Name: "Cull", Description: "Removes entities that left the playfield", Category: "core"})
	r.Register(SystemInfo{ID: PhaseWaveAdvance, Name: "Wave Advance", Description: "Moves to the next wave", Category: "core"})
	r.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Records stats and bookmarks", Category: "internal"})
	r.Register(SystemInfo{ID: PhaseEvents, Name: "Events", Description: "Flushes the event bus", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
