package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsPlayfield(t *testing.T) {
	tests := []struct {
		name     string
		vw, vh   float32
		wantZoom float32
	}{
		{"same size", 1280, 720, 1},
		{"half size", 640, 360, 0.5},
		{"tall window letterboxes", 1280, 1440, 1},
		{"wide window pillarboxes", 2560, 720, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, 1280, 720)
			if !near(cam.Zoom, tt.wantZoom) {
				t.Errorf("zoom = %f, want %f", cam.Zoom, tt.wantZoom)
			}
			if cam.X != 640 || cam.Y != 360 {
				t.Errorf("center = (%f, %f), want (640, 360)", cam.X, cam.Y)
			}
		})
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 1440, 1280, 720)

	// Playfield is vertically centered in the taller window.
	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 360) {
		t.Errorf("origin maps to (%f, %f), want (0, 360)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1000, 700, 1280, 720)
	cam.ZoomBy(1.7)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float32 }{
		{500, 350},
		{100, 100},
		{950, 650},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestInPlayfield(t *testing.T) {
	cam := New(1280, 1440, 1280, 720)

	if cam.InPlayfield(640, 100) {
		t.Error("letterbox band should be outside the playfield")
	}
	if !cam.InPlayfield(640, 720) {
		t.Error("window center should be on the playfield")
	}
}

func TestZoomAndPanClamped(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.ZoomBy(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}

	cam.Pan(-1e6, 1e6)
	if cam.X != 0 || cam.Y != 720 {
		t.Errorf("center = (%f, %f), want clamped to (0, 720)", cam.X, cam.Y)
	}

	cam.Reset()
	if cam.X != 640 || cam.Y != 360 || cam.Zoom != cam.MinZoom {
		t.Errorf("reset = (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

func TestResizeKeepsRelativeZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomBy(2)

	cam.Resize(640, 360)
	if !near(cam.MinZoom, 0.5) || !near(cam.Zoom, 1) {
		t.Errorf("after resize min %f zoom %f, want 0.5 and 1", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomBy(2) // Shows x in [320, 960]

	if !cam.IsVisible(640, 360, 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(100, 360, 10) {
		t.Error("x=100 should be off screen at 2x")
	}
	if !cam.IsVisible(315, 360, 10) {
		t.Error("circle overlapping the edge should count as visible")
	}
}
