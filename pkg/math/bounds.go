package math

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// PointBounds returns a degenerate box enclosing only p.
func PointBounds(p Vec3) Bounds {
	return Bounds{Min: p, Max: p}
}

// BoundsOf returns the smallest box enclosing all points.
// With no points the box degenerates to fallback.
func BoundsOf(points []Vec3, fallback Vec3) Bounds {
	if len(points) == 0 {
		return PointBounds(fallback)
	}
	b := PointBounds(points[0])
	for _, p := range points[1:] {
		b.Extend(p)
	}
	return b
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
