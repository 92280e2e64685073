// Package components defines ECS components for the simulation.
package components

// Position represents an entity's playfield position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in units per tick.
type Velocity struct {
	X, Y float32
}
