package wallmesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/wallmesh/pkg/math"
)

var (
	// ErrInvalidDimension is returned when a size component is negative, NaN or infinite.
	ErrInvalidDimension = errors.New("invalid box dimension")
	// ErrUnknownFace is returned for face names or values outside the six faces.
	ErrUnknownFace = errors.New("unknown face")
)

// UVRect maps a quad's corners to texture space. Values are not validated;
// inverted and out-of-range rectangles pass through as given.
type UVRect struct {
	U0, V0, U1, V1 float32
}

// FullUV covers the whole texture.
var FullUV = UVRect{0, 0, 1, 1}

// FaceSpec controls emission and texture mapping of a single face.
type FaceSpec struct {
	Enabled bool
	UV      UVRect
}

// BoxConfig describes the box to generate.
type BoxConfig struct {
	Center math.Vec3
	Size   math.Vec3
	Faces  [FaceCount]FaceSpec
}

// DefaultBoxConfig returns a unit box at the origin with every face
// enabled and mapped to the full texture.
func DefaultBoxConfig() BoxConfig {
	cfg := BoxConfig{Size: math.Vec3{X: 1, Y: 1, Z: 1}}
	for _, f := range AllFaces {
		cfg.Faces[f] = FaceSpec{Enabled: true, UV: FullUV}
	}
	return cfg
}

// Validate checks the size. Every component must be finite and not negative.
// Zero components are legal and produce flat faces.
func (c BoxConfig) Validate() error {
	axes := [3]struct {
		name string
		v    float32
	}{{"x", c.Size.X}, {"y", c.Size.Y}, {"z", c.Size.Z}}
	for _, a := range axes {
		if a.v < 0 || math32.IsNaN(a.v) || math32.IsInf(a.v, 0) {
			return fmt.Errorf("%w: size.%s = %g", ErrInvalidDimension, a.name, a.v)
		}
	}
	return nil
}

// EnabledCount returns the number of faces that will be emitted.
func (c BoxConfig) EnabledCount() int {
	n := 0
	for _, fs := range c.Faces {
		if fs.Enabled {
			n++
		}
	}
	return n
}

// SetFace enables or disables a face, keeping its UV rectangle.
func (c *BoxConfig) SetFace(f Face, enabled bool) {
	c.Faces[f].Enabled = enabled
}

// Only returns a copy of c with just the given faces enabled.
func (c BoxConfig) Only(faces ...Face) BoxConfig {
	out := c
	for i := range out.Faces {
		out.Faces[i].Enabled = false
	}
	for _, f := range faces {
		out.Faces[f].Enabled = true
	}
	return out
}
