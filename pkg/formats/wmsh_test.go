package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

func buildTestMesh(t *testing.T, faces ...wallmesh.Face) *wallmesh.Mesh {
	t.Helper()
	mesh, err := wallmesh.Generate(wallmesh.DefaultBoxConfig().Only(faces...))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return mesh
}

func encodeWMSH(t *testing.T, name string, mesh *wallmesh.Mesh) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteWMSH(&buf, name, mesh); err != nil {
		t.Fatalf("WriteWMSH failed: %v", err)
	}
	return buf.Bytes()
}

func TestParseWMSH_Valid(t *testing.T) {
	mesh := buildTestMesh(t, wallmesh.AllFaces[:]...)
	data := encodeWMSH(t, "Wall", mesh)

	// header + name + counts + 24 vertices + 36 indices
	wantSize := 8 + 4 + 32 + 24*32 + 36*4
	if len(data) != wantSize {
		t.Errorf("encoded size = %d, want %d", len(data), wantSize)
	}

	asset, err := ParseWMSH(data)
	if err != nil {
		t.Fatalf("ParseWMSH failed: %v", err)
	}
	if asset.Version != WMSHVersion {
		t.Errorf("expected version %s, got %s", WMSHVersion, asset.Version)
	}
	if asset.Name != "Wall" {
		t.Errorf("expected name 'Wall', got %q", asset.Name)
	}
	if asset.Mesh.VertexCount() != 24 || asset.Mesh.TriangleCount() != 12 {
		t.Errorf("expected 24 vertices and 12 triangles, got %d and %d",
			asset.Mesh.VertexCount(), asset.Mesh.TriangleCount())
	}
	if asset.Mesh.Bounds != mesh.Bounds {
		t.Errorf("bounds = %+v, want %+v", asset.Mesh.Bounds, mesh.Bounds)
	}
	for i := range mesh.Positions {
		if asset.Mesh.Positions[i] != mesh.Positions[i] ||
			asset.Mesh.Normals[i] != mesh.Normals[i] ||
			asset.Mesh.UVs[i] != mesh.UVs[i] {
			t.Fatalf("vertex %d differs after parse", i)
		}
	}
}

func TestParseWMSH_Empty(t *testing.T) {
	asset, err := ParseWMSH(encodeWMSH(t, "", buildTestMesh(t)))
	if err != nil {
		t.Fatalf("ParseWMSH failed: %v", err)
	}
	if !asset.Mesh.Empty() || len(asset.Mesh.Indices) != 0 {
		t.Errorf("expected empty mesh, got %d vertices", asset.Mesh.VertexCount())
	}
}

func TestParseWMSH_Errors(t *testing.T) {
	valid := encodeWMSH(t, "Wall", buildTestMesh(t, wallmesh.Front))

	badMagic := append([]byte("XXXX"), valid[4:]...)

	badVersion := append([]byte(nil), valid...)
	badVersion[5] = 9

	badIndex := append([]byte(nil), valid...)
	// last index of the final triangle
	binary.LittleEndian.PutUint32(badIndex[len(badIndex)-4:], 4)

	badCount := append([]byte(nil), valid...)
	// index count field follows magic, version, name length, name and vertex count
	binary.LittleEndian.PutUint32(badCount[8+4+4:], 5)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty data", []byte{}, ErrTruncatedWMSHData},
		{"short header", []byte("WMS"), ErrTruncatedWMSHData},
		{"invalid magic", badMagic, ErrInvalidWMSHMagic},
		{"unsupported version", badVersion, ErrUnsupportedWMSHVersion},
		{"truncated geometry", valid[:len(valid)-10], ErrTruncatedWMSHData},
		{"index out of range", badIndex, ErrInvalidWMSHIndex},
		{"index count not triangles", badCount, ErrInvalidWMSHIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWMSH(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWriteWMSH_MismatchedAttributes(t *testing.T) {
	mesh := buildTestMesh(t, wallmesh.Front)
	mesh.Normals = mesh.Normals[:2]
	if err := WriteWMSH(&bytes.Buffer{}, "Wall", mesh); err == nil {
		t.Error("expected error for mismatched attribute lengths")
	}
}

func TestParseWMSHFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.wmsh")
	if err := os.WriteFile(path, encodeWMSH(t, "Wall", buildTestMesh(t, wallmesh.Top)), 0644); err != nil {
		t.Fatalf("failed to write test asset: %v", err)
	}
	asset, err := ParseWMSHFile(path)
	if err != nil {
		t.Fatalf("ParseWMSHFile failed: %v", err)
	}
	if asset.Mesh.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", asset.Mesh.VertexCount())
	}

	if _, err := ParseWMSHFile(filepath.Join(t.TempDir(), "missing.wmsh")); err == nil {
		t.Error("expected error for missing file")
	}
}
