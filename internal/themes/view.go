package themes

import (
	"log/slog"
	"sync"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/export"
	"github.com/youruser/vignette/internal/scene"
)

// View is a mounted renderer: one theme drawing into the surface it owns.
type View struct {
	theme    ThemeConfig
	surface  *scene.Surface
	exporter *export.Exporter

	mu    sync.Mutex
	state cards.CardState
}

// NewView mounts theme's renderer. Without a rasterizer there is nothing to
// draw with, so the surface stays unmounted and exports report absence.
func NewView(theme ThemeConfig, raster export.Rasterizer, log *slog.Logger) *View {
	v := &View{
		theme:    theme,
		surface:  scene.NewSurface(),
		exporter: export.New(raster, log),
	}
	if raster != nil {
		v.surface.Mount()
	}
	return v
}

func (v *View) Theme() ThemeConfig { return v.theme }

// Render redraws the surface for state: the frame is rebuilt from scratch
// and the transform pass reruns when its inputs changed.
func (v *View) Render(state cards.CardState) error {
	state = state.Clone()
	w, h := cards.Resolve(state.Style.AspectRatio)
	r := v.theme.Renderer

	v.mu.Lock()
	defer v.mu.Unlock()
	frame := r.Compose(state, w, h)
	key, tr := r.Layout(state, w, h)
	if _, err := v.surface.Update(frame, key, tr); err != nil {
		return err
	}
	v.state = state
	return nil
}

// State is the state of the last successful render.
func (v *View) State() cards.CardState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Clone()
}

// Frame returns a copy of what the surface currently shows.
func (v *View) Frame() (*scene.Frame, error) {
	return v.surface.Snapshot()
}

// Handle returns the export capability bound to this view's surface.
func (v *View) Handle() Handle {
	s, e := v.surface, v.exporter
	return Handle{
		exportImage: func() (string, bool) { return e.DataURI(s) },
		exportPNG:   func() ([]byte, bool) { return e.Snapshot(s) },
	}
}

// Handle lets a caller export a view without being able to draw on it.
// The zero Handle is valid and never has an image.
type Handle struct {
	exportImage func() (string, bool)
	exportPNG   func() ([]byte, bool)
}

// ExportImage returns the current drawing as a PNG data URI at
// export.Oversample. ok is false when nothing can be exported yet.
func (h Handle) ExportImage() (string, bool) {
	if h.exportImage == nil {
		return "", false
	}
	return h.exportImage()
}

// ExportPNG is ExportImage without the data URI encoding.
func (h Handle) ExportPNG() ([]byte, bool) {
	if h.exportPNG == nil {
		return nil, false
	}
	return h.exportPNG()
}
