// Package scene is the retained drawing model a theme renderer populates:
// a full-bleed background followed by named groups of text nodes. Groups
// carry a post-layout transform that is applied separately from the
// declarative construction of the frame.
package scene

import (
	"image"
	"image/color"
)

// Font keys understood by the rasterizer.
const (
	FontSerifBold   = "serif-bold"
	FontSerifItalic = "serif-italic"
	FontSansBold    = "sans-bold"
	FontSansRegular = "sans-regular"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Shadow is the glow decoration of a text node.
type Shadow struct {
	Color   color.NRGBA
	Blur    float64
	Opacity float64
}

// Text is one text region. X is the anchor: the left edge, the center or the
// right edge of every line depending on Align. Y is the top of the first line.
type Text struct {
	Content       string
	X, Y          float64
	Size          float64
	Font          string
	Fill          color.NRGBA
	Align         Align
	Width         float64 // wrap width in local units, 0 disables wrapping
	LineHeight    float64 // multiple of Size between lines, explicit or wrapped; 0 means 1
	LetterSpacing float64
	Opacity       float64 // 0 means opaque
	StrokeColor   color.NRGBA
	StrokeWidth   float64
	Shadow        *Shadow
}

// Transform maps group-local coordinates to surface coordinates: scale
// first, then translate.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
}

// Identity is the transform of a freshly constructed group.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Apply maps a local point to the surface.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.X + x*t.ScaleX, t.Y + y*t.ScaleY
}

type Group struct {
	Name      string
	Transform Transform
	Texts     []*Text

	applied bool
}

// NewGroup returns an untransformed group.
func NewGroup(name string, texts ...*Text) *Group {
	return &Group{Name: name, Transform: Identity(), Texts: texts}
}

type Rect struct {
	X, Y, Width, Height float64
	Fill                color.NRGBA
	Image               image.Image // drawn over Fill, scaled to cover the rect
}

// Frame is everything drawn for one render pass.
type Frame struct {
	Width, Height int
	Background    Rect
	Groups        []*Group
}

// NewFrame returns a frame with a full-bleed background.
func NewFrame(width, height int, fill color.NRGBA, bg image.Image) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Background: Rect{
			Width:  float64(width),
			Height: float64(height),
			Fill:   fill,
			Image:  bg,
		},
	}
}

// Add appends a group unless it holds no text.
func (f *Frame) Add(g *Group) {
	if g == nil || len(g.Texts) == 0 {
		return
	}
	f.Groups = append(f.Groups, g)
}

// Group returns the group with the given name.
func (f *Frame) Group(name string) (*Group, bool) {
	for _, g := range f.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// Texts lists every text node in draw order.
func (f *Frame) Texts() []*Text {
	var out []*Text
	for _, g := range f.Groups {
		out = append(out, g.Texts...)
	}
	return out
}

// Clone deep-copies the frame. The background image is shared; images are
// never written to.
func (f *Frame) Clone() *Frame {
	out := &Frame{Width: f.Width, Height: f.Height, Background: f.Background}
	out.Groups = make([]*Group, 0, len(f.Groups))
	for _, g := range f.Groups {
		cg := &Group{Name: g.Name, Transform: g.Transform, applied: g.applied}
		cg.Texts = make([]*Text, 0, len(g.Texts))
		for _, t := range g.Texts {
			ct := *t
			if t.Shadow != nil {
				sh := *t.Shadow
				ct.Shadow = &sh
			}
			cg.Texts = append(cg.Texts, &ct)
		}
		out.Groups = append(out.Groups, cg)
	}
	return out
}
