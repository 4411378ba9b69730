package math

// Vec2 is a 2D vector. Mesh UVs use X as U and Y as V.
type Vec2 struct {
	X, Y float32
}

// Array returns the components as an array.
func (v Vec2) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}
