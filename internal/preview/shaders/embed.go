// Package shaders provides embedded GLSL shader sources for the preview.
package shaders

import _ "embed"

// MeshVertexShader transforms wall mesh vertices.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades faces with a UV checker and a directional light.
//
//go:embed mesh.frag
var MeshFragmentShader string

// LineVertexShader is the vertex shader for wireframe and bounds lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for wireframe and bounds lines.
//
//go:embed line.frag
var LineFragmentShader string
