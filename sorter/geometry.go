package sorter

import "math"

// Vec2 is a point in playfield coordinates: x grows to the right, y grows
// downwards.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp moves from v towards to by fraction t, clamped to [0, 1].
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	t = max(0, min(1, t))
	return Vec2{v.X + (to.X-v.X)*t, v.Y + (to.Y-v.Y)*t}
}
