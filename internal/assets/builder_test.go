package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wallmesh/internal/config"
	"github.com/Faultbox/wallmesh/internal/settings"
	"github.com/Faultbox/wallmesh/pkg/formats"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

func writeSettings(t *testing.T, dir, yaml string) string {
	t.Helper()
	path := filepath.Join(dir, "wall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	return path
}

func TestBuildFirstCreatesThenOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "output:\n  file_name: North Wall\n")
	b := NewBuilder(NewStore(), config.Default().Output)

	res, err := b.Build(path)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Revision)
	assert.Equal(t, filepath.Join(dir, "North_Wall.wmsh"), res.Path)
	assert.Equal(t, 24, res.Mesh.VertexCount())

	// The handle is recorded in the settings file.
	s, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "North_Wall.wmsh", s.Output.Mesh)

	// Rename the label and disable faces: the recorded asset is overwritten.
	s.Output.FileName = "Other"
	off := false
	s.Faces[wallmesh.Top] = settings.FaceSettings{Enabled: &off}
	s.Faces[wallmesh.Bottom] = settings.FaceSettings{Enabled: &off}
	require.NoError(t, s.Save())

	res, err = b.Build(path)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 2, res.Revision)
	assert.Equal(t, filepath.Join(dir, "North_Wall.wmsh"), res.Path)

	asset, err := formats.ParseWMSHFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 16, asset.Mesh.VertexCount())
	assert.Equal(t, "Other", asset.Name)

	_, err = os.Stat(filepath.Join(dir, "Other.wmsh"))
	assert.True(t, os.IsNotExist(err), "rebuild must not allocate a new asset")
}

func TestBuildRecordedHandleSurvivesNewBuilder(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "size: [2, 1, 0.2]\n")

	res, err := NewBuilder(NewStore(), config.Default().Output).Build(path)
	require.NoError(t, err)
	require.True(t, res.Created)

	// A fresh process has an empty registry but still overwrites the recorded asset.
	res2, err := NewBuilder(NewStore(), config.Default().Output).Build(path)
	require.NoError(t, err)
	assert.False(t, res2.Created)
	assert.Equal(t, res.Path, res2.Path)
}

func TestBuildFormats(t *testing.T) {
	tests := []struct {
		format    string
		wantPath  string
		wantExtra []string
	}{
		{config.FormatWMSH, "Wall.wmsh", nil},
		{config.FormatOBJ, "Wall.obj", nil},
		{config.FormatBoth, "Wall.wmsh", []string{"Wall.obj"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			path := writeSettings(t, dir, "center: [0, 0.5, 0]\n")

			out := config.Default().Output
			out.Format = tt.format
			res, err := NewBuilder(NewStore(), out).Build(path)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, tt.wantPath), res.Path)
			var extra []string
			for _, p := range res.Extra {
				rel, err := filepath.Rel(dir, p)
				require.NoError(t, err)
				extra = append(extra, rel)
			}
			assert.Equal(t, tt.wantExtra, extra)
			for _, p := range append([]string{res.Path}, res.Extra...) {
				_, err := os.Stat(p)
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "output:\n  file_name: Gate\n")

	out := config.Default().Output
	out.Directory = "meshes"
	res, err := NewBuilder(NewStore(), out).Build(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "meshes", "Gate.wmsh"), res.Path)

	s, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "meshes/Gate.wmsh", s.Output.Mesh)
}

func TestBuildInvalidDimensionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "size: [-1, 1, 1]\n")
	store := NewStore()

	_, err := NewBuilder(store, config.Default().Output).Build(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wallmesh.ErrInvalidDimension))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the settings file should exist")
	assert.Empty(t, store.Handles())

	s, err := settings.Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.Output.Mesh)
}

func TestBuildAllFacesDisabled(t *testing.T) {
	dir := t.TempDir()
	yaml := `faces:
  front: {enabled: false}
  back: {enabled: false}
  right: {enabled: false}
  left: {enabled: false}
  top: {enabled: false}
  bottom: {enabled: false}
`
	res, err := NewBuilder(NewStore(), config.Default().Output).Build(writeSettings(t, dir, yaml))
	require.NoError(t, err)
	assert.True(t, res.Mesh.Empty())

	asset, err := formats.ParseWMSHFile(res.Path)
	require.NoError(t, err)
	assert.True(t, asset.Mesh.Empty())
}

func TestBuildMissingSettings(t *testing.T) {
	_, err := NewBuilder(NewStore(), config.Default().Output).Build(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestBuildUnsavedSettings(t *testing.T) {
	s := settings.Default()
	s.Output.FileName = "Scratch"

	out := config.Default().Output
	out.Directory = t.TempDir()
	res, err := NewBuilder(NewStore(), out).BuildSettings(s)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, filepath.Join(out.Directory, "Scratch.wmsh"), res.Path)
	assert.NotEmpty(t, s.Output.Mesh)
}
