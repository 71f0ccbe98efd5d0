package scene

import (
	"errors"
	"sync"
)

var ErrNotMounted = errors.New("surface not mounted")

// Surface holds the current frame. Only the render pass that owns the
// surface writes to it; snapshots may be taken from any goroutine.
type Surface struct {
	mu      sync.RWMutex
	mounted bool
	frame   *Frame
	key     string
	passes  int
}

// NewSurface returns an unmounted surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Mount marks the surface drawable. Callers mount only once a rasterizer
// with its fonts is available.
func (s *Surface) Mount() {
	s.mu.Lock()
	s.mounted = true
	s.mu.Unlock()
}

func (s *Surface) Mounted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mounted
}

// Replace swaps in a new frame. Groups that existed in the previous frame
// under the same name keep their transform, like reconciled nodes do.
func (s *Surface) Replace(f *Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(f)
}

// ApplyTransforms runs the post-layout pass: every group named in
// transforms gets its transform set. The pass is skipped when key matches
// the previous pass and no group is new since then. It reports whether the
// pass ran.
func (s *Surface) ApplyTransforms(key string, transforms map[string]Transform) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(key, transforms)
}

// Update is Replace followed by ApplyTransforms as one step, so a snapshot
// never observes a frame whose transform pass has not run yet.
func (s *Surface) Update(f *Frame, key string, transforms map[string]Transform) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.replace(f); err != nil {
		return false, err
	}
	return s.apply(key, transforms), nil
}

func (s *Surface) replace(f *Frame) error {
	if !s.mounted {
		return ErrNotMounted
	}
	if s.frame != nil && f != nil {
		for _, g := range f.Groups {
			if old, ok := s.frame.Group(g.Name); ok && old.applied {
				g.Transform = old.Transform
				g.applied = true
			}
		}
	}
	s.frame = f
	return nil
}

func (s *Surface) apply(key string, transforms map[string]Transform) bool {
	if s.frame == nil {
		return false
	}
	fresh := false
	for _, g := range s.frame.Groups {
		if !g.applied {
			fresh = true
			break
		}
	}
	if key == s.key && !fresh && s.passes > 0 {
		return false
	}
	for _, g := range s.frame.Groups {
		if t, ok := transforms[g.Name]; ok {
			g.Transform = t
		}
		g.applied = true
	}
	s.key = key
	s.passes++
	return true
}

// Passes counts how often the transform pass ran.
func (s *Surface) Passes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passes
}

// Snapshot returns a copy of the current frame. It fails when the surface
// is unmounted or nothing has been drawn yet.
func (s *Surface) Snapshot() (*Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.mounted || s.frame == nil {
		return nil, ErrNotMounted
	}
	return s.frame.Clone(), nil
}
