// Package assets persists built meshes and tracks their output handles.
package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wallmesh/internal/logger"
	"github.com/Faultbox/wallmesh/pkg/formats"
	"github.com/Faultbox/wallmesh/pkg/wallmesh"
)

// Asset file extensions.
const (
	ExtWMSH = ".wmsh"
	ExtOBJ  = ".obj"
)

// Handle is a persisted mesh asset. The first Put for a path allocates it;
// later Puts overwrite its contents in place and bump Revision.
type Handle struct {
	Path      string
	Name      string
	Mesh      *wallmesh.Mesh
	Revision  int
	UpdatedAt time.Time
}

// Stats counts store activity.
type Stats struct {
	Created     int
	Overwritten int
}

// Store writes mesh assets to disk and keeps a registry of their handles.
type Store struct {
	handles map[string]*Handle
	stats   Stats
	mu      sync.RWMutex

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		handles: make(map[string]*Handle),
		now:     time.Now,
	}
}

// Put writes mesh to path and registers or updates its handle. The file
// format follows the extension. It reports whether a new handle was created.
func (s *Store) Put(path, name string, mesh *wallmesh.Mesh) (*Handle, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(abs)); ext {
	case ExtWMSH:
		err = formats.WriteWMSH(&buf, name, mesh)
	case ExtOBJ:
		err = formats.WriteOBJ(&buf, name, mesh)
	default:
		err = fmt.Errorf("unsupported asset extension %q", ext)
	}
	if err != nil {
		return nil, false, fmt.Errorf("encoding %s: %w", abs, err)
	}

	if err := writeFileAtomic(abs, buf.Bytes()); err != nil {
		return nil, false, fmt.Errorf("writing %s: %w", abs, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handles[abs]
	if !ok {
		h = &Handle{Path: abs}
		s.handles[abs] = h
		s.stats.Created++
	} else {
		s.stats.Overwritten++
	}
	h.Name = name
	h.Mesh = mesh
	h.Revision++
	h.UpdatedAt = s.now()

	logger.Debug("asset stored",
		zap.String("path", abs),
		zap.Int("revision", h.Revision),
		zap.Int("bytes", buf.Len()),
	)

	cp := *h
	return &cp, !ok, nil
}

// Get returns a copy of the handle registered for path.
func (s *Store) Get(path string) (Handle, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Handle{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.handles[abs]
	if !ok {
		return Handle{}, false
	}
	return *h, true
}

// Handles returns copies of all handles sorted by path.
func (s *Store) Handles() []Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Handle, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Stats returns store counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// writeFileAtomic writes data next to path and renames it into place so
// readers never observe a partial asset.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
