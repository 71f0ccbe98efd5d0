package imagepkg

import (
	"fmt"

	"codeberg.org/go-fonts/liberation/liberationsansbold"
	"codeberg.org/go-fonts/liberation/liberationsansregular"
	"codeberg.org/go-fonts/liberation/liberationserifbold"
	"codeberg.org/go-fonts/liberation/liberationserifitalic"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/youruser/vignette/internal/scene"
)

// Liberation fonts are metric-compatible with Times New Roman and Arial,
// which the themes are designed around.
var embeddedFonts = map[string][]byte{
	scene.FontSerifBold:   liberationserifbold.TTF,
	scene.FontSerifItalic: liberationserifitalic.TTF,
	scene.FontSansBold:    liberationsansbold.TTF,
	scene.FontSansRegular: liberationsansregular.TTF,
}

type faceKey struct {
	font string
	size float64
}

// RegisterFont parses a TrueType font and makes it available under key,
// replacing an embedded font of the same key.
func (r *Rasterizer) RegisterFont(key string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", key, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[key] = f
	for k := range r.faces {
		if k.font == key {
			delete(r.faces, k)
		}
	}
	return nil
}

// face must be called with r.mu held.
func (r *Rasterizer) face(key string, size float64) (font.Face, error) {
	k := faceKey{font: key, size: size}
	if f, ok := r.faces[k]; ok {
		return f, nil
	}
	tt, ok := r.fonts[key]
	if !ok {
		return nil, fmt.Errorf("unknown font %q", key)
	}
	f := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	r.faces[k] = f
	return f, nil
}
