package themes

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/youruser/vignette/internal/cards"
)

// Options feed the registry at startup.
type Options struct {
	// Backgrounds replaces a theme's solid background with an image.
	Backgrounds map[string]image.Image
	// ExtraPresets are appended to a theme's built-in presets.
	ExtraPresets map[string][]cards.CardPreset
	Logger       *slog.Logger
}

// Registry holds the supported themes. It is built once and read-only
// afterwards.
type Registry struct {
	themesMap  map[string]ThemeConfig
	themesList []string
}

// NewRegistry builds every supported theme in display order.
func NewRegistry(opts Options) (*Registry, error) {
	r := &Registry{themesMap: make(map[string]ThemeConfig)}
	builders := []func(image.Image) ThemeConfig{evangelionTheme, twinPeaksTheme}
	for _, build := range builders {
		t := build(nil)
		if bg, ok := opts.Backgrounds[t.ID]; ok {
			t = build(bg)
		}
		if extra := opts.ExtraPresets[t.ID]; len(extra) > 0 {
			for _, p := range extra {
				if _, dup := t.Preset(p.ID); dup {
					return nil, fmt.Errorf("theme %s: duplicate preset %q", t.ID, p.ID)
				}
			}
			t.Presets = append(t.Presets, extra...)
		}
		if _, dup := r.themesMap[t.ID]; dup {
			return nil, fmt.Errorf("duplicate theme %q", t.ID)
		}
		r.themesMap[t.ID] = t
		r.themesList = append(r.themesList, t.ID)
	}

	if opts.Logger != nil {
		for _, id := range r.themesList {
			t := r.themesMap[id]
			opts.Logger.Info("loaded theme", "id", id, "presets", len(t.Presets), "background", t.Background != nil)
		}
	}
	return r, nil
}

// GetTheme returns the theme with the given id.
func (r *Registry) GetTheme(id string) (ThemeConfig, bool) {
	t, ok := r.themesMap[id]
	return t, ok
}

// GetAllThemes lists every theme in display order.
func (r *Registry) GetAllThemes() []ThemeConfig {
	out := make([]ThemeConfig, 0, len(r.themesList))
	for _, id := range r.themesList {
		out = append(out, r.themesMap[id])
	}
	return out
}

// GetThemeIDs lists theme ids in display order.
func (r *Registry) GetThemeIDs() []string {
	return append([]string(nil), r.themesList...)
}
