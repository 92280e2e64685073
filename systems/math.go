package systems

import "math"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// sqrt32 is math.Sqrt for float32.
func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// normalize returns the unit vector of (x, y) and its length.
// A zero vector returns (0, 0, 0).
func normalize(x, y float32) (nx, ny, length float32) {
	length = sqrt32(x*x + y*y)
	if length == 0 {
		return 0, 0, 0
	}
	return x / length, y / length, length
}
