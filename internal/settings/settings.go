// Package settings loads and saves wall build settings files.
//
// A settings file is the persisted input of one wall asset: box shape,
// per-face flags and UVs, and the output handle written by the first build.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wallmesh/pkg/math"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// DefaultFileName is the asset label used when none is set.
const DefaultFileName = "Wall"

// ErrDuplicateFace is returned when two keys of a faces mapping name the same face.
var ErrDuplicateFace = errors.New("duplicate face")

// Settings is the on-disk build settings record.
type Settings struct {
	Center [3]float32 `yaml:"center,flow"`
	Size   [3]float32 `yaml:"size,flow"`
	Faces  Faces      `yaml:"faces"`
	Output Output     `yaml:"output"`

	// path is where the record was loaded from; Save writes back to it.
	path string
}

// FaceSettings configures one face. Missing fields fall back to enabled
// and the full texture.
type FaceSettings struct {
	Enabled *bool       `yaml:"enabled,omitempty"`
	UV      *[4]float32 `yaml:"uv,omitempty,flow"`
}

// Faces holds per-face settings. In YAML the keys are face names, matched
// case-insensitively and written back in canonical lowercase.
type Faces map[wallmesh.Face]FaceSettings

// UnmarshalYAML merges a faces mapping into fs. Faces the mapping does not
// mention keep their current entry.
func (fs *Faces) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: faces must be a mapping", value.Line)
	}
	if *fs == nil {
		*fs = make(Faces, wallmesh.FaceCount)
	}

	seen := make(map[wallmesh.Face]string, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]

		var f wallmesh.Face
		if err := f.UnmarshalText([]byte(key.Value)); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
		if prev, ok := seen[f]; ok {
			return fmt.Errorf("line %d: %w: %q and %q both name %s", key.Line, ErrDuplicateFace, prev, key.Value, f)
		}
		seen[f] = key.Value

		var entry FaceSettings
		if err := val.Decode(&entry); err != nil {
			return err
		}
		(*fs)[f] = entry
	}
	return nil
}

// Output records where the built mesh lives.
type Output struct {
	// Mesh is the previously produced asset, relative to the settings file.
	// Empty until the first build.
	Mesh     string `yaml:"mesh"`
	FileName string `yaml:"file_name"`
}

// Default returns settings for a unit box with every face enabled.
func Default() *Settings {
	s := &Settings{
		Size:   [3]float32{1, 1, 1},
		Faces:  make(Faces, wallmesh.FaceCount),
		Output: Output{FileName: DefaultFileName},
	}
	for _, f := range wallmesh.AllFaces {
		enabled := true
		uv := [4]float32{0, 0, 1, 1}
		s.Faces[f] = FaceSettings{Enabled: &enabled, UV: &uv}
	}
	return s
}

// Parse decodes settings from YAML, merging over Default.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Path returns the file the settings were loaded from or last saved to.
func (s *Settings) Path() string {
	return s.path
}

// Dir returns the directory of the settings file, "." when unsaved.
func (s *Settings) Dir() string {
	if s.path == "" {
		return "."
	}
	return filepath.Dir(s.path)
}

// Save writes the settings back to the file they were loaded from.
func (s *Settings) Save() error {
	if s.path == "" {
		return fmt.Errorf("settings have no path; use SaveTo")
	}
	return s.SaveTo(s.path)
}

// SaveTo writes the settings to path and remembers it for Save.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	s.path = path
	return nil
}

// MeshPath resolves Output.Mesh against the settings directory.
// It returns "" when no mesh has been built yet.
func (s *Settings) MeshPath() string {
	if s.Output.Mesh == "" {
		return ""
	}
	if filepath.IsAbs(s.Output.Mesh) {
		return s.Output.Mesh
	}
	return filepath.Join(s.Dir(), s.Output.Mesh)
}

// SetMeshPath records the built asset, relative to the settings file when possible.
func (s *Settings) SetMeshPath(path string) {
	dir, errDir := filepath.Abs(s.Dir())
	abs, errPath := filepath.Abs(path)
	if errDir == nil && errPath == nil {
		if rel, err := filepath.Rel(dir, abs); err == nil {
			s.Output.Mesh = filepath.ToSlash(rel)
			return
		}
	}
	s.Output.Mesh = path
}

// BoxConfig converts the record into generator input.
func (s *Settings) BoxConfig() (wallmesh.BoxConfig, error) {
	cfg := wallmesh.BoxConfig{
		Center: math.Vec3{X: s.Center[0], Y: s.Center[1], Z: s.Center[2]},
		Size:   math.Vec3{X: s.Size[0], Y: s.Size[1], Z: s.Size[2]},
	}
	for f := range s.Faces {
		if !f.Valid() {
			return wallmesh.BoxConfig{}, fmt.Errorf("%w: %d", wallmesh.ErrUnknownFace, int(f))
		}
	}

	for _, f := range wallmesh.AllFaces {
		cfg.Faces[f] = wallmesh.FaceSpec{Enabled: true, UV: wallmesh.FullUV}
		fs, ok := s.Faces[f]
		if !ok {
			continue
		}
		if fs.Enabled != nil {
			cfg.Faces[f].Enabled = *fs.Enabled
		}
		if fs.UV != nil {
			cfg.Faces[f].UV = wallmesh.UVRect{U0: fs.UV[0], V0: fs.UV[1], U1: fs.UV[2], V1: fs.UV[3]}
		}
	}
	return cfg, nil
}
