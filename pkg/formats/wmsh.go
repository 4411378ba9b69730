package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/wallmesh/pkg/math"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// WMSH format errors.
var (
	ErrInvalidWMSHMagic       = errors.New("invalid WMSH magic: expected 'WMSH'")
	ErrUnsupportedWMSHVersion = errors.New("unsupported WMSH version")
	ErrTruncatedWMSHData      = errors.New("truncated WMSH data")
	ErrInvalidWMSHIndex       = errors.New("invalid WMSH index")
)

// WMSHVersion is the version written by WriteWMSH.
var WMSHVersion = Version{Major: 1, Minor: 0}

const (
	wmshMagic      = "WMSH"
	wmshHeaderSize = 4 + 2 + 2 // magic, version, name length
	maxWMSHName    = 1 << 10
)

// WMSH is a stored mesh asset.
type WMSH struct {
	Version Version
	Name    string
	Mesh    *wallmesh.Mesh
}

// wmshVertex is the on-disk vertex record (32 bytes).
type wmshVertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

type wmshCounts struct {
	Vertices uint32
	Indices  uint32
	Min      [3]float32
	Max      [3]float32
}

// WriteWMSH encodes a mesh asset. Layout (little-endian):
// magic, version [minor, major], name length u16 + name, vertex count u32,
// index count u32, bounds min/max, vertex records, u32 indices.
func WriteWMSH(w io.Writer, name string, mesh *wallmesh.Mesh) error {
	if len(name) > maxWMSHName {
		return fmt.Errorf("WMSH name too long: %d bytes", len(name))
	}
	if len(mesh.Normals) != len(mesh.Positions) || len(mesh.UVs) != len(mesh.Positions) {
		return fmt.Errorf("mesh attribute lengths differ: %d positions, %d normals, %d uvs",
			len(mesh.Positions), len(mesh.Normals), len(mesh.UVs))
	}

	buf := new(bytes.Buffer)
	buf.WriteString(wmshMagic)
	buf.WriteByte(WMSHVersion.Minor)
	buf.WriteByte(WMSHVersion.Major)
	binary.Write(buf, binary.LittleEndian, uint16(len(name)))
	buf.WriteString(name)

	binary.Write(buf, binary.LittleEndian, wmshCounts{
		Vertices: uint32(len(mesh.Positions)),
		Indices:  uint32(len(mesh.Indices)),
		Min:      mesh.Bounds.Min.Array(),
		Max:      mesh.Bounds.Max.Array(),
	})

	verts := make([]wmshVertex, len(mesh.Positions))
	for i := range verts {
		verts[i] = wmshVertex{
			Position: mesh.Positions[i].Array(),
			Normal:   mesh.Normals[i].Array(),
			UV:       mesh.UVs[i].Array(),
		}
	}
	binary.Write(buf, binary.LittleEndian, verts)
	binary.Write(buf, binary.LittleEndian, mesh.Indices)

	_, err := w.Write(buf.Bytes())
	return err
}

// ParseWMSH parses a mesh asset from raw bytes.
func ParseWMSH(data []byte) (*WMSH, error) {
	if len(data) < wmshHeaderSize {
		return nil, ErrTruncatedWMSHData
	}
	if string(data[0:4]) != wmshMagic {
		return nil, ErrInvalidWMSHMagic
	}

	version := Version{Major: data[5], Minor: data[4]}
	if version.Major != WMSHVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWMSHVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, fmt.Errorf("%w: reading name length", ErrTruncatedWMSHData)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("%w: reading name", ErrTruncatedWMSHData)
	}

	var counts wmshCounts
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, fmt.Errorf("%w: reading counts", ErrTruncatedWMSHData)
	}
	if counts.Indices%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidWMSHIndex, counts.Indices)
	}

	// Check sizes before allocating so corrupt counts cannot force huge buffers.
	need := int64(counts.Vertices)*int64(binary.Size(wmshVertex{})) + int64(counts.Indices)*4
	if int64(r.Len()) < need {
		return nil, fmt.Errorf("%w: need %d bytes of geometry, have %d", ErrTruncatedWMSHData, need, r.Len())
	}

	verts := make([]wmshVertex, counts.Vertices)
	if err := binary.Read(r, binary.LittleEndian, verts); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedWMSHData)
	}
	indices := make([]uint32, counts.Indices)
	if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedWMSHData)
	}
	for i, idx := range indices {
		if idx >= counts.Vertices {
			return nil, fmt.Errorf("%w: index %d = %d, vertex count %d", ErrInvalidWMSHIndex, i, idx, counts.Vertices)
		}
	}

	mesh := &wallmesh.Mesh{
		Positions: make([]math.Vec3, len(verts)),
		Normals:   make([]math.Vec3, len(verts)),
		UVs:       make([]math.Vec2, len(verts)),
		Indices:   indices,
		Bounds: math.Bounds{
			Min: vec3(counts.Min),
			Max: vec3(counts.Max),
		},
	}
	for i, v := range verts {
		mesh.Positions[i] = vec3(v.Position)
		mesh.Normals[i] = vec3(v.Normal)
		mesh.UVs[i] = math.Vec2{X: v.UV[0], Y: v.UV[1]}
	}

	return &WMSH{Version: version, Name: string(name), Mesh: mesh}, nil
}

// ParseWMSHFile parses a mesh asset from disk.
func ParseWMSHFile(path string) (*WMSH, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading WMSH file: %w", err)
	}
	return ParseWMSH(data)
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
