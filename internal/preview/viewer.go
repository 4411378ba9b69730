// Package preview shows a wall mesh in an SDL2/OpenGL window and reloads it
// when its source file changes.
package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wallmesh/internal/config"
	"github.com/Faultbox/wallmesh/internal/logger"
	"github.com/Faultbox/wallmesh/internal/preview/camera"
	"github.com/Faultbox/wallmesh/internal/preview/scene"
	"github.com/Faultbox/wallmesh/internal/watch"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// Options configures a preview session.
type Options struct {
	// Path is a settings file or a stored .wmsh asset.
	Path     string
	Viewer   config.ViewerConfig
	Debounce time.Duration
}

// Run opens the preview window and blocks until it is closed or ctx is done.
// It must be called from the main goroutine.
func Run(ctx context.Context, opts Options) error {
	mesh, err := scene.Load(opts.Path)
	if err != nil {
		return err
	}

	win, err := NewWindow(WindowConfig{
		Title:  title(opts.Path, mesh),
		Width:  opts.Viewer.Width,
		Height: opts.Viewer.Height,
		VSync:  opts.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := NewRenderer(win.DrawableSize())
	if err != nil {
		return err
	}
	defer r.Close()
	r.Wireframe = opts.Viewer.Wireframe
	r.ShowBounds = opts.Viewer.ShowBounds
	r.SetMesh(mesh)

	cam := camera.NewOrbitCamera()
	cam.FitToBounds(mesh.Bounds)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reload := make(chan struct{}, 1)
	go func() {
		err := watch.Run(ctx, opts.Path, opts.Debounce, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		if err != nil {
			logger.Warn("live reload disabled", zap.String("path", opts.Path), zap.Error(err))
		}
	}()

	in := NewInput()
	for ctx.Err() == nil {
		if in.Update() {
			return nil
		}

		for _, e := range in.Events() {
			switch e.Type {
			case EventResize:
				r.Resize(win.DrawableSize())
			case EventDrag:
				cam.HandleDrag(e.DeltaX, e.DeltaY)
			case EventWheel:
				cam.HandleZoom(e.DeltaY)
			case EventKeyDown:
				switch e.Key {
				case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
					return nil
				case sdl.SCANCODE_W:
					r.Wireframe = !r.Wireframe
				case sdl.SCANCODE_B:
					r.ShowBounds = !r.ShowBounds
				case sdl.SCANCODE_F:
					cam.FitToBounds(mesh.Bounds)
				case sdl.SCANCODE_R:
					mesh = reloadMesh(win, r, opts.Path, mesh)
				}
			}
		}

		select {
		case <-reload:
			mesh = reloadMesh(win, r, opts.Path, mesh)
		default:
		}

		r.Draw(cam.ViewProjection(r.Aspect()))
		win.SwapBuffers()

		if !opts.Viewer.VSync {
			sdl.Delay(1)
		}
	}

	return nil
}

// reloadMesh replaces the shown mesh. On failure the previous mesh stays up.
func reloadMesh(win *Window, r *Renderer, path string, current *wallmesh.Mesh) *wallmesh.Mesh {
	mesh, err := scene.Load(path)
	if err != nil {
		logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
		return current
	}
	r.SetMesh(mesh)
	win.SetTitle(title(path, mesh))
	logger.Info("mesh reloaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return mesh
}

func title(path string, m *wallmesh.Mesh) string {
	return fmt.Sprintf("wallview - %s (%d vertices, %d triangles)",
		filepath.Base(path), m.VertexCount(), m.TriangleCount())
}
