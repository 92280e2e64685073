package ui

import (
	"slices"
	"testing"
)

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()

	want := []string{CategoryEconomy, CategoryTiming, CategoryCollision, CategoryEffects}
	if got := reg.Categories(); !slices.Equal(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	for _, cat := range want {
		if categoryLabel(cat) == cat {
			t.Errorf("category %q has no display label", cat)
		}
	}
	var collision []OverlayID
	for _, d := range reg.ByCategory(CategoryCollision) {
		collision = append(collision, d.ID)
	}
	if !slices.Equal(collision, []OverlayID{OverlayHitRadius, OverlaySpatialGrid}) {
		t.Errorf("collision overlays = %v", collision)
	}
}

func TestOverlayReading(t *testing.T) {
	data := ControlsData{Creatures: 12, Wells: 2, GridCell: 64, TickMicros: 140}

	tests := []struct {
		id   OverlayID
		want string
	}{
		{OverlayHitRadius, "12 fish"},
		{OverlaySpatialGrid, "64px"},
		{OverlayWells, "2 active"},
		{OverlayStats, "pending"},
		{OverlayPerf, "140us"},
	}
	for _, tt := range tests {
		if got := reading(tt.id, data); got != tt.want {
			t.Errorf("reading(%s) = %q, want %q", tt.id, got, tt.want)
		}
	}

	data.WindowTicks = 600
	if got := reading(OverlayStats, data); got != "@600" {
		t.Errorf("stats reading after a flush = %q, want @600", got)
	}
}
