// Package scene loads meshes for preview and packs them for upload.
package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/wallmesh/internal/settings"
	"github.com/Faultbox/wallmesh/pkg/formats"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// VertexStride is the number of floats per packed vertex:
// position (3), normal (3), texcoord (2).
const VertexStride = 8

// Load returns the mesh described by path. A .wmsh file is decoded as a
// stored asset; anything else is read as a settings file and generated
// in memory without touching the recorded output.
func Load(path string) (*wallmesh.Mesh, error) {
	if strings.EqualFold(filepath.Ext(path), ".wmsh") {
		asset, err := formats.ParseWMSHFile(path)
		if err != nil {
			return nil, err
		}
		return asset.Mesh, nil
	}

	s, err := settings.Load(path)
	if err != nil {
		return nil, err
	}
	cfg, err := s.BoxConfig()
	if err != nil {
		return nil, err
	}
	mesh, err := wallmesh.Generate(cfg)
	if err != nil {
		return nil, fmt.Errorf("generating mesh: %w", err)
	}
	return mesh, nil
}

// VertexData interleaves the mesh attributes in VertexStride layout.
func VertexData(m *wallmesh.Mesh) []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		n := m.Normals[i]
		uv := m.UVs[i]
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	return out
}
