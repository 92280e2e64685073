package components

// Body holds the size scalar of a creature. The hit radius is size * hit_radius_factor.
type Body struct {
	Size float32
}

// Health tracks a creature's hit points.
// While the creature is alive, 0 < Current <= Max.
type Health struct {
	Current int
	Max     int
}

// Fraction returns Current/Max in [0, 1].
func (h Health) Fraction() float32 {
	if h.Max <= 0 {
		return 0
	}
	return float32(h.Current) / float32(h.Max)
}
