package preview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wallmesh/internal/logger"
	"github.com/Faultbox/wallmesh/internal/preview/debug"
	"github.com/Faultbox/wallmesh/internal/preview/scene"
	"github.com/Faultbox/wallmesh/internal/preview/shaders"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// Overlay colors
var (
	wireframeColor = [4]float32{0.1, 0.1, 0.1, 1.0}
	boundsColor    = [4]float32{0.2, 0.9, 0.3, 1.0}
)

// Renderer draws one wall mesh plus optional overlays.
type Renderer struct {
	width, height int

	Wireframe  bool
	ShowBounds bool

	meshProgram     uint32
	locMeshViewProj int32
	locLightDir     int32
	locChecker      int32

	lineProgram     uint32
	locLineViewProj int32
	locLineColor    int32

	meshVAO    uint32
	meshVBO    uint32
	meshEBO    uint32
	indexCount int32

	boundsVAO uint32
	boundsVBO uint32
}

// NewRenderer initializes OpenGL and creates GPU resources.
// Must be called after the OpenGL context exists.
func NewRenderer(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{ShowBounds: true}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.MULTISAMPLE)
	// Counter-clockwise triangles face the viewer; an inverted face disappears.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.12, 0.13, 0.16, 1.0)

	var err error
	r.meshProgram, err = compileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.locMeshViewProj = uniform(r.meshProgram, "uViewProj")
	r.locLightDir = uniform(r.meshProgram, "uLightDir")
	r.locChecker = uniform(r.meshProgram, "uCheckerScale")

	r.lineProgram, err = compileProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		gl.DeleteProgram(r.meshProgram)
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.locLineViewProj = uniform(r.lineProgram, "uViewProj")
	r.locLineColor = uniform(r.lineProgram, "uColor")

	r.createMeshBuffers()
	r.createBoundsBuffers()
	r.Resize(width, height)

	return r, nil
}

func (r *Renderer) createMeshBuffers() {
	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)

	stride := int32(scene.VertexStride * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &r.meshEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)

	gl.BindVertexArray(0)
}

func (r *Renderer) createBoundsBuffers() {
	gl.GenVertexArrays(1, &r.boundsVAO)
	gl.BindVertexArray(r.boundsVAO)

	gl.GenBuffers(1, &r.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BoundsVertexCount*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// SetMesh replaces the displayed mesh.
func (r *Renderer) SetMesh(m *wallmesh.Mesh) {
	r.indexCount = 0
	if !m.Empty() && len(m.Indices) > 0 {
		vertices := scene.VertexData(m)

		gl.BindVertexArray(r.meshVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		gl.BindVertexArray(0)

		r.indexCount = int32(len(m.Indices))
	}

	lines := debug.BoundsWireframe(m.Bounds, 0.01)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*4, gl.Ptr(lines))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Debug("mesh uploaded",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Draw renders one frame.
func (r *Renderer) Draw(viewProj mgl32.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.indexCount > 0 {
		light := mgl32.Vec3{-0.4, -1.0, -0.6}.Normalize()

		gl.UseProgram(r.meshProgram)
		gl.UniformMatrix4fv(r.locMeshViewProj, 1, false, &viewProj[0])
		gl.Uniform3f(r.locLightDir, light.X(), light.Y(), light.Z())
		gl.Uniform1f(r.locChecker, 8)

		gl.BindVertexArray(r.meshVAO)
		gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)

		if r.Wireframe {
			gl.UseProgram(r.lineProgram)
			gl.UniformMatrix4fv(r.locLineViewProj, 1, false, &viewProj[0])
			gl.Uniform4fv(r.locLineColor, 1, &wireframeColor[0])
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
			gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
		gl.BindVertexArray(0)
	}

	if r.ShowBounds {
		gl.UseProgram(r.lineProgram)
		gl.UniformMatrix4fv(r.locLineViewProj, 1, false, &viewProj[0])
		gl.Uniform4fv(r.locLineColor, 1, &boundsColor[0])
		gl.BindVertexArray(r.boundsVAO)
		gl.DrawArrays(gl.LINES, 0, debug.BoundsVertexCount)
		gl.BindVertexArray(0)
	}
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	gl.DeleteVertexArrays(1, &r.meshVAO)
	gl.DeleteBuffers(1, &r.meshVBO)
	gl.DeleteBuffers(1, &r.meshEBO)
	gl.DeleteVertexArrays(1, &r.boundsVAO)
	gl.DeleteBuffers(1, &r.boundsVBO)
	gl.DeleteProgram(r.meshProgram)
	gl.DeleteProgram(r.lineProgram)
}
