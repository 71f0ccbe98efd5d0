package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/youruser/vignette/internal/scene"
)

// Rasterizer draws scene frames into images. Font faces are cached and are
// not safe for concurrent use, so Rasterize calls are serialised.
type Rasterizer struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

// NewRasterizer parses the embedded fonts.
func NewRasterizer() (*Rasterizer, error) {
	r := &Rasterizer{
		fonts: make(map[string]*truetype.Font, len(embeddedFonts)),
		faces: make(map[faceKey]font.Face),
	}
	for key, ttf := range embeddedFonts {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", key, err)
		}
		r.fonts[key] = f
	}
	return r, nil
}

// Rasterize draws f at scale times its logical size: background first, then
// the blurred glow layers, then the text itself.
func (r *Rasterizer) Rasterize(f *scene.Frame, scale float64) (image.Image, error) {
	if f == nil {
		return nil, scene.ErrNotMounted
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}
	w := int(float64(f.Width) * scale)
	h := int(float64(f.Height) * scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", f.Width, f.Height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(w, h)
	drawBackground(dc, f.Background, scale)

	for _, blur := range shadowBlurs(f) {
		layer := gg.NewContext(w, h)
		for _, g := range f.Groups {
			for _, t := range g.Texts {
				if t.Shadow == nil || t.Shadow.Blur != blur {
					continue
				}
				c := withAlpha(t.Shadow.Color, t.Shadow.Opacity*opacity(t))
				if err := r.drawText(layer, g, t, scale, c, false); err != nil {
					return nil, err
				}
			}
		}
		dc.DrawImage(imaging.Blur(layer.Image(), blur*scale/2), 0, 0)
	}

	for _, g := range f.Groups {
		for _, t := range g.Texts {
			if err := r.drawText(dc, g, t, scale, withAlpha(t.Fill, opacity(t)), true); err != nil {
				return nil, err
			}
		}
	}
	return dc.Image(), nil
}

func drawBackground(dc *gg.Context, bg scene.Rect, scale float64) {
	x, y := bg.X*scale, bg.Y*scale
	w, h := bg.Width*scale, bg.Height*scale
	dc.SetColor(bg.Fill)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	if bg.Image != nil && int(w) > 0 && int(h) > 0 {
		cover := imaging.Fill(bg.Image, int(w), int(h), imaging.Center, imaging.Lanczos)
		dc.DrawImage(cover, int(x), int(y))
	}
}

// shadowBlurs lists the distinct blur radii in draw order; each gets its own
// glow layer.
func shadowBlurs(f *scene.Frame) []float64 {
	var out []float64
	seen := map[float64]bool{}
	for _, t := range f.Texts() {
		if t.Shadow == nil || seen[t.Shadow.Blur] {
			continue
		}
		seen[t.Shadow.Blur] = true
		out = append(out, t.Shadow.Blur)
	}
	return out
}

func opacity(t *scene.Text) float64 {
	if t.Opacity <= 0 || t.Opacity > 1 {
		return 1
	}
	return t.Opacity
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

func (r *Rasterizer) drawText(dc *gg.Context, g *scene.Group, t *scene.Text, scale float64, c color.NRGBA, stroke bool) error {
	if t.Content == "" || t.Size <= 0 {
		return nil
	}
	face, err := r.face(t.Font, t.Size*scale)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	ascent := float64(face.Metrics().Ascent) / 64

	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.Translate(g.Transform.X*scale, g.Transform.Y*scale)
	dc.Scale(g.Transform.ScaleX, g.Transform.ScaleY)

	spacing := t.LetterSpacing * scale
	for _, l := range layoutLines(dc, t, scale, ascent) {
		if stroke && t.StrokeWidth > 0 {
			sw := t.StrokeWidth * scale
			dc.SetColor(withAlpha(t.StrokeColor, opacity(t)))
			for _, d := range [][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
				drawLine(dc, l.text, l.x+d[0]*sw, l.y+d[1]*sw, spacing)
			}
		}
		dc.SetColor(c)
		drawLine(dc, l.text, l.x, l.y, spacing)
	}
	return nil
}

// placedLine is one drawn line; x, y is its baseline origin in scaled
// group-local units.
type placedLine struct {
	text string
	x, y float64
}

// layoutLines breaks t into lines and positions them. Explicit and wrapped
// lines share the same pitch of Size*LineHeight. The text's face must be
// set on dc.
func layoutLines(dc *gg.Context, t *scene.Text, scale, ascent float64) []placedLine {
	spacing := t.LetterSpacing * scale
	lh := t.LineHeight
	if lh <= 0 {
		lh = 1
	}
	var out []placedLine
	for i, line := range wrap(dc, t.Content, t.Width*scale, spacing) {
		x := t.X * scale
		switch t.Align {
		case scene.AlignCenter:
			x -= measure(dc, line, spacing) / 2
		case scene.AlignRight:
			x -= measure(dc, line, spacing)
		}
		out = append(out, placedLine{
			text: line,
			x:    x,
			y:    t.Y*scale + float64(i)*t.Size*scale*lh + ascent,
		})
	}
	return out
}

func measure(dc *gg.Context, s string, spacing float64) float64 {
	if spacing == 0 {
		w, _ := dc.MeasureString(s)
		return w
	}
	var w float64
	n := 0
	for _, ch := range s {
		cw, _ := dc.MeasureString(string(ch))
		w += cw
		n++
	}
	if n > 1 {
		w += spacing * float64(n-1)
	}
	return w
}

func drawLine(dc *gg.Context, s string, x, y, spacing float64) {
	if spacing == 0 {
		dc.DrawString(s, x, y)
		return
	}
	for _, ch := range s {
		cs := string(ch)
		dc.DrawString(cs, x, y)
		cw, _ := dc.MeasureString(cs)
		x += cw + spacing
	}
}

// wrap splits s on explicit line breaks and then greedily on spaces so no
// line exceeds width. A width of 0 only splits on line breaks.
func wrap(dc *gg.Context, s string, width, spacing float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if width <= 0 {
			out = append(out, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			next := line + " " + word
			if measure(dc, next, spacing) > width {
				out = append(out, line)
				line = word
				continue
			}
			line = next
		}
		out = append(out, line)
	}
	return out
}
