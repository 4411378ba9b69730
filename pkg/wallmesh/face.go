package wallmesh

import (
	"fmt"
	"strings"
)

// Face identifies one side of the box.
type Face int

// Faces in assembly order. The order fixes vertex and index numbering.
const (
	Front  Face = iota // +Z
	Back               // -Z
	Right              // +X
	Left               // -X
	Top                // +Y
	Bottom             // -Y
)

// FaceCount is the number of box faces.
const FaceCount = 6

var faceNames = [FaceCount]string{"front", "back", "right", "left", "top", "bottom"}

// AllFaces lists every face in assembly order.
var AllFaces = [FaceCount]Face{Front, Back, Right, Left, Top, Bottom}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Valid reports whether f names one of the six faces.
func (f Face) Valid() bool {
	return f >= 0 && int(f) < FaceCount
}

// ParseFace converts a face name (case-insensitive) to a Face.
func ParseFace(name string) (Face, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, fn := range faceNames {
		if fn == n {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFace, name)
}

// MarshalText implements encoding.TextMarshaler so faces can key YAML maps,
// as the settings faces mapping does.
func (f Face) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFace, int(f))
	}
	return []byte(faceNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Face) UnmarshalText(text []byte) error {
	parsed, err := ParseFace(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// corners holds the sign of each axis for a face's four corners in
// bottom-left, bottom-right, top-left, top-right order. Each row is chosen
// so the emitted quad winds counter-clockwise when seen from outside.
var corners = [FaceCount][4][3]float32{
	Front:  {{+1, -1, +1}, {-1, -1, +1}, {+1, +1, +1}, {-1, +1, +1}},
	Back:   {{-1, -1, -1}, {+1, -1, -1}, {-1, +1, -1}, {+1, +1, -1}},
	Right:  {{+1, -1, -1}, {+1, -1, +1}, {+1, +1, -1}, {+1, +1, +1}},
	Left:   {{-1, -1, +1}, {-1, -1, -1}, {-1, +1, +1}, {-1, +1, -1}},
	Top:    {{-1, +1, -1}, {+1, +1, -1}, {-1, +1, +1}, {+1, +1, +1}},
	Bottom: {{+1, -1, -1}, {-1, -1, -1}, {+1, -1, +1}, {-1, -1, +1}},
}
