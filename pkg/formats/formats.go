// Package formats reads and writes wallmesh asset files.
//
// WMSH is the native binary asset written on every build (wmsh.go).
// OBJ is a Wavefront export for use in other tools (obj.go).
package formats

import "fmt"

// Version is a two-part file format version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
