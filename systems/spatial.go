// Package systems provides the simulation systems: entity pool, waves,
// collision and effects.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // Delta from query origin to the entity
	DistSq float32
}

// SpatialGrid provides cell-based neighbor lookups over the playfield.
// Positions outside the playfield are clamped into the border cells, so
// creatures still offscreen are found by queries near the edge.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]ecs.Entity
}

// NewSpatialGrid creates a spatial grid covering the given playfield size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	col, row := g.cellCoords(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// QueryRadiusInto appends every entity within radius of (x, y) to dst.
// Entities that are no longer alive in world are skipped.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, world *ecs.World, posMap *ecs.Map[components.Position]) []Neighbor {
	minCol, minRow := g.cellCoords(x-radius, y-radius)
	maxCol, maxRow := g.cellCoords(x+radius, y+radius)
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if !world.Alive(e) {
					continue
				}
				pos := posMap.Get(e)
				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)
	if x < 0 {
		col = 0
	}
	if y < 0 {
		row = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
