package themes

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/export"
	imagepkg "github.com/youruser/vignette/internal/image"
	"github.com/youruser/vignette/internal/scene"
)

type solidRasterizer struct{ calls int }

func (r *solidRasterizer) Rasterize(f *scene.Frame, scale float64) (image.Image, error) {
	r.calls++
	return image.NewNRGBA(image.Rect(0, 0, int(float64(f.Width)*scale), int(float64(f.Height)*scale))), nil
}

func TestViewUnmounted(t *testing.T) {
	th, _ := testRegistry(t).GetTheme("evangelion")
	v := NewView(th, nil, nil)
	test.That(t, v.Render(scenarioA()) != nil)

	uri, ok := v.Handle().ExportImage()
	test.That(t, !ok)
	test.String(t, uri, "")

	var zero Handle
	_, ok = zero.ExportPNG()
	test.That(t, !ok)
}

func TestViewExportBeforeRender(t *testing.T) {
	th, _ := testRegistry(t).GetTheme("evangelion")
	r := &solidRasterizer{}
	v := NewView(th, r, nil)
	_, ok := v.Handle().ExportImage()
	test.That(t, !ok)
	test.T(t, r.calls, 0)
}

func TestViewRenderAndExport(t *testing.T) {
	th, _ := testRegistry(t).GetTheme("evangelion")
	v := NewView(th, &solidRasterizer{}, nil)
	h := v.Handle()

	test.Error(t, v.Render(scenarioA()))
	f, err := v.Frame()
	test.Error(t, err)
	test.T(t, len(f.Texts()), 5)

	uri, ok := h.ExportImage()
	test.That(t, ok)
	test.That(t, strings.HasPrefix(uri, export.DataURIPrefix))

	b, err := export.DecodeDataURI(uri)
	test.Error(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	test.Error(t, err)
	test.T(t, cfg.Width, 1800)
	test.T(t, cfg.Height, 1350)

	// the handle follows the surface, so a later render is what gets exported
	wide := scenarioA()
	wide.Style.AspectRatio = cards.AspectWide
	test.Error(t, v.Render(wide))
	b, ok = h.ExportPNG()
	test.That(t, ok)
	cfg, _ = png.DecodeConfig(bytes.NewReader(b))
	test.T(t, cfg.Width, 2560)
	test.T(t, cfg.Height, 1440)
	test.T(t, v.State().Style.AspectRatio, cards.AspectWide)
}

func TestViewLastWriteWins(t *testing.T) {
	th, _ := testRegistry(t).GetTheme("evangelion")
	v := NewView(th, &solidRasterizer{}, nil)
	for _, title := range []string{"one", "two\nlines", "three"} {
		s := scenarioA()
		s.Title = title
		test.Error(t, v.Render(s))
	}
	f, _ := v.Frame()
	g, _ := f.Group("title")
	test.T(t, len(g.Texts), 1)
	test.String(t, g.Texts[0].Content, "three")
	test.T(t, len(f.Texts()), 5)
}

func TestExportIsIdempotent(t *testing.T) {
	raster, err := imagepkg.NewRasterizer()
	test.Error(t, err)
	for _, th := range testRegistry(t).GetAllThemes() {
		t.Run(th.ID, func(t *testing.T) {
			state := th.NewState()
			state.Effects = state.Effects.Toggle()
			v := NewView(th, raster, nil)
			test.Error(t, v.Render(state))

			a, ok := v.Handle().ExportImage()
			test.That(t, ok)
			b, ok := v.Handle().ExportImage()
			test.That(t, ok)
			test.That(t, a == b, "exports differ")
			test.That(t, len(a) > len(export.DataURIPrefix))
		})
	}
}
