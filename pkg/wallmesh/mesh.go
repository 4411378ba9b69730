// Package wallmesh generates axis-aligned box meshes with independently
// toggleable, independently textured faces.
package wallmesh

import (
	"github.com/Faultbox/wallmesh/pkg/math"
)

// Mesh holds indexed triangle data ready for upload or export.
// Positions, UVs and Normals are parallel; Indices name counter-clockwise
// triangles by vertex index.
type Mesh struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Normals   []math.Vec3
	Indices   []uint32
	Bounds    math.Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Positions) == 0
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
}

// Generate builds the box described by cfg. Faces are emitted in
// Front, Back, Right, Left, Top, Bottom order, skipping disabled ones.
// A config with no enabled faces yields an empty mesh whose bounds
// collapse to the center. Negative or non-finite sizes fail with
// ErrInvalidDimension.
func Generate(cfg BoxConfig) (*Mesh, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.EnabledCount()
	m := &Mesh{
		Positions: make([]math.Vec3, 0, 4*n),
		UVs:       make([]math.Vec2, 0, 4*n),
		Indices:   make([]uint32, 0, 6*n),
	}

	half := cfg.Size.Scale(0.5)
	for _, f := range AllFaces {
		spec := cfg.Faces[f]
		if !spec.Enabled {
			continue
		}
		var c [4]math.Vec3
		for i, s := range corners[f] {
			c[i] = cfg.Center.Add(half.Mul(math.Vec3{X: s[0], Y: s[1], Z: s[2]}))
		}
		m.addQuad(c[0], c[1], c[2], c[3], spec.UV)
	}

	m.RecalculateBounds(cfg.Center)
	m.RecalculateNormals()
	return m, nil
}

// addQuad appends one face as two triangles split along the
// bottom-left/top-right diagonal. Vertices are stored bottom-left,
// top-left, top-right, bottom-right.
func (m *Mesh) addQuad(bottomLeft, bottomRight, topLeft, topRight math.Vec3, uv UVRect) {
	base := uint32(len(m.Positions))
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	m.Positions = append(m.Positions, bottomLeft, topLeft, topRight, bottomRight)
	m.UVs = append(m.UVs,
		math.Vec2{X: uv.U0, Y: uv.V0},
		math.Vec2{X: uv.U0, Y: uv.V1},
		math.Vec2{X: uv.U1, Y: uv.V1},
		math.Vec2{X: uv.U1, Y: uv.V0},
	)
}

// RecalculateBounds recomputes Bounds from Positions. An empty mesh gets
// a degenerate box at fallback.
func (m *Mesh) RecalculateBounds(fallback math.Vec3) {
	m.Bounds = math.BoundsOf(m.Positions, fallback)
}

// RecalculateNormals recomputes per-vertex normals by summing the
// area-weighted normals of adjacent triangles. Box faces never share
// vertices, so every vertex ends up with its face's flat normal.
// Vertices on zero-area faces get a zero normal.
func (m *Mesh) RecalculateNormals() {
	m.Normals = make([]math.Vec3, len(m.Positions))
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range m.Indices[3*t : 3*t+3] {
			m.Normals[idx] = m.Normals[idx].Add(n)
		}
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}
