package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// WriteOBJ exports a mesh as a Wavefront OBJ object. Every vertex has a
// matching vt and vn entry, so faces use the same 1-based index three times.
func WriteOBJ(w io.Writer, name string, mesh *wallmesh.Mesh) error {
	if len(mesh.Normals) != len(mesh.Positions) || len(mesh.UVs) != len(mesh.Positions) {
		return fmt.Errorf("mesh attribute lengths differ: %d positions, %d normals, %d uvs",
			len(mesh.Positions), len(mesh.Normals), len(mesh.UVs))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# wallmesh: %d vertices, %d triangles\n", mesh.VertexCount(), mesh.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", ff(p.X), ff(p.Y), ff(p.Z))
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", ff(uv.X), ff(uv.Y))
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ff(n.X), ff(n.Y), ff(n.Z))
	}
	for t := 0; t < mesh.TriangleCount(); t++ {
		a, b, c := mesh.Indices[3*t]+1, mesh.Indices[3*t+1]+1, mesh.Indices[3*t+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

func ff(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
