package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/wallmesh/internal/config"
	"github.com/Faultbox/wallmesh/internal/logger"
	"github.com/Faultbox/wallmesh/internal/settings"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// BuildResult describes one build.
type BuildResult struct {
	// Path is the primary asset, the one recorded in the settings file.
	Path string
	// Extra lists secondary exports written alongside Path.
	Extra    []string
	Created  bool
	Revision int
	Mesh     *wallmesh.Mesh
}

// Builder turns settings files into persisted mesh assets.
type Builder struct {
	store *Store
	out   config.OutputConfig
}

// NewBuilder creates a builder that writes through store.
func NewBuilder(store *Store, out config.OutputConfig) *Builder {
	return &Builder{store: store, out: out}
}

// Build loads the settings file at path and builds it.
func (b *Builder) Build(path string) (*BuildResult, error) {
	s, err := settings.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return b.BuildSettings(s)
}

// BuildSettings generates the mesh for s and persists it. The first build
// creates a new asset named after Output.FileName, records it in the
// settings and saves them. Later builds overwrite the recorded asset.
// Nothing is written when generation fails.
func (b *Builder) BuildSettings(s *settings.Settings) (*BuildResult, error) {
	box, err := s.BoxConfig()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	mesh, err := wallmesh.Generate(box)
	if err != nil {
		return nil, fmt.Errorf("generating mesh: %w", err)
	}

	name := AssetName(s.Output.FileName)
	path := s.MeshPath()
	created := path == ""
	if created {
		path = filepath.Join(b.outputDir(s), name+b.primaryExt())
	}

	h, _, err := b.store.Put(path, name, mesh)
	if err != nil {
		return nil, err
	}

	res := &BuildResult{
		Path:     h.Path,
		Created:  created,
		Revision: h.Revision,
		Mesh:     mesh,
	}

	if b.out.Format == config.FormatBoth && strings.EqualFold(filepath.Ext(h.Path), ExtWMSH) {
		objPath := strings.TrimSuffix(h.Path, filepath.Ext(h.Path)) + ExtOBJ
		if _, _, err := b.store.Put(objPath, name, mesh); err != nil {
			return nil, err
		}
		res.Extra = append(res.Extra, objPath)
	}

	if created {
		s.SetMeshPath(h.Path)
		if s.Path() != "" {
			if err := s.Save(); err != nil {
				return nil, fmt.Errorf("saving settings: %w", err)
			}
		}
	}

	logger.Info("mesh built",
		zap.String("asset", res.Path),
		zap.Bool("created", res.Created),
		zap.Int("revision", res.Revision),
		zap.Int("faces", box.EnabledCount()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)

	return res, nil
}

func (b *Builder) primaryExt() string {
	if b.out.Format == config.FormatOBJ {
		return ExtOBJ
	}
	return ExtWMSH
}

// outputDir is where new assets go: the configured directory, resolved
// against the settings file, or the settings directory itself.
func (b *Builder) outputDir(s *settings.Settings) string {
	switch {
	case b.out.Directory == "":
		return s.Dir()
	case filepath.IsAbs(b.out.Directory):
		return b.out.Directory
	default:
		return filepath.Join(s.Dir(), b.out.Directory)
	}
}
