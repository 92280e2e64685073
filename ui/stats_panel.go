package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/telemetry"
)

// StatsPanel shows the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewStatsPanel creates a stats panel. tierColors colors the kill rows.
func NewStatsPanel(x, y, width int32, tierColors [components.RarityCount]rl.Color) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		sections: statsSections(tierColors),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel. A zero WindowEndTick means no window has closed yet.
func (s *StatsPanel) Draw(stats telemetry.WindowStats) {
	r := s.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 4
	for _, sd := range s.sections {
		height += r.SectionHeight(sd, stats)
	}
	r.DrawPanel(s.x, s.y, s.width, height)

	y := s.y + padding
	title := "Last Window"
	if stats.WindowEndTick > 0 {
		title = fmt.Sprintf("Window @ %d", stats.WindowEndTick)
	}
	rl.DrawText(title, s.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sd := range s.sections {
		y = r.DrawSection(s.x+padding, y, sd, stats, s.width-padding*2)
	}
}

func windowStats(data any) telemetry.WindowStats {
	return data.(telemetry.WindowStats)
}

func statsSections(tierColors [components.RarityCount]rl.Color) []SectionDescriptor {
	kills := SectionDescriptor{ID: "kills", Title: "Kills"}
	for i := range components.RarityCount {
		r := components.Rarity(i)
		kills.Fields = append(kills.Fields, FieldDescriptor{
			ID:     "kills_" + r.String(),
			Label:  r.String(),
			Widget: WidgetColorSwatch,
			Color:  tierColors[r],
			TextGetter: func(d any) string {
				return fmt.Sprintf("%d", windowStats(d).KillsOf(r))
			},
		})
	}

	return []SectionDescriptor{
		{
			ID:    "economy",
			Title: "Economy",
			Fields: []FieldDescriptor{
				{ID: "rtp", Label: "RTP", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 2},
					Getter: func(d any) float32 { return float32(windowStats(d).RTP) }},
				{ID: "hit_rate", Label: "Hit rate", Widget: WidgetBar, Range: DefaultRange(),
					Getter: func(d any) float32 { return float32(windowStats(d).HitRate) }},
				{ID: "spent", Label: "Spent", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprintf("%d", windowStats(d).CoinsSpent) }},
				{ID: "won", Label: "Won", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprintf("%d", windowStats(d).CoinsWon) }},
			},
		},
		kills,
		{
			ID:    "creatures",
			Title: "Creatures",
			Fields: []FieldDescriptor{
				{ID: "health", Label: "Health p50", Widget: WidgetBar, Range: DefaultRange(),
					Getter: func(d any) float32 { return float32(windowStats(d).HealthP50) }},
				{ID: "ttk", Label: "TTK p50", Widget: WidgetText, Format: "%.0f ticks",
					Getter: func(d any) float32 { return float32(windowStats(d).TimeToKillP50) },
					Visible: func(d any) bool { return windowStats(d).Kills > 0 }},
				{ID: "escaped", Label: "Escaped", Widget: WidgetText,
					TextGetter: func(d any) string { return fmt.Sprintf("%d", windowStats(d).Culled) }},
			},
		},
	}
}
