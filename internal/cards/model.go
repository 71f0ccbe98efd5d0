package cards

import (
	"errors"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxHeaderLines bounds HeaderLines for every theme.
const MaxHeaderLines = 6

type FontSet string

const (
	FontSerif FontSet = "serif"
	FontSans  FontSet = "sans"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type AspectRatio string

const (
	AspectStandard AspectRatio = "standard"
	AspectWide     AspectRatio = "wide"
)

var (
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio")
	ErrInvalidTextAlign   = errors.New("invalid text align")
	ErrInvalidGlow        = errors.New("invalid glow effect")
	ErrTooManyHeaderLines = errors.New("too many header lines")
)

type CardStyle struct {
	FontSet     FontSet     `json:"fontSet"`
	TextAlign   TextAlign   `json:"textAlign"`
	AspectRatio AspectRatio `json:"aspectRatio"`
}

// TextEffects keeps the glow parameters even while the glow is disabled so
// re-enabling it restores the previous look.
type TextEffects struct {
	GlowEnabled bool    `json:"glowEnabled"`
	GlowColor   string  `json:"glowColor"`
	GlowBlur    float64 `json:"glowBlur"`
	GlowOpacity float64 `json:"glowOpacity"`
}

// DefaultEffects is the effect set a fresh editor session starts with.
func DefaultEffects() TextEffects {
	return TextEffects{
		GlowEnabled: false,
		GlowColor:   "#ffffff",
		GlowBlur:    20,
		GlowOpacity: 0.8,
	}
}

// Toggle flips GlowEnabled and leaves the numeric fields alone.
func (e TextEffects) Toggle() TextEffects {
	e.GlowEnabled = !e.GlowEnabled
	return e
}

// CardState is one card as edited. Renderers receive it by value and never
// write back to it.
type CardState struct {
	HeaderLines []string    `json:"headerLines"`
	Label       string      `json:"label"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Style       CardStyle   `json:"style"`
	Effects     TextEffects `json:"effects"`
}

// Clone returns a copy that shares no slices with s.
func (s CardState) Clone() CardState {
	out := s
	if s.HeaderLines != nil {
		out.HeaderLines = append([]string(nil), s.HeaderLines...)
	}
	return out
}

// Validate checks the fields a renderer relies on.
func (s CardState) Validate() error {
	switch s.Style.AspectRatio {
	case AspectStandard, AspectWide:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s.Style.AspectRatio)
	}
	switch s.Style.TextAlign {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTextAlign, s.Style.TextAlign)
	}
	if len(s.HeaderLines) > MaxHeaderLines {
		return fmt.Errorf("%w: %d > %d", ErrTooManyHeaderLines, len(s.HeaderLines), MaxHeaderLines)
	}
	e := s.Effects
	if e.GlowBlur < 0 {
		return fmt.Errorf("%w: blur %v", ErrInvalidGlow, e.GlowBlur)
	}
	if e.GlowOpacity < 0 || e.GlowOpacity > 1 {
		return fmt.Errorf("%w: opacity %v", ErrInvalidGlow, e.GlowOpacity)
	}
	if e.GlowColor != "" {
		if _, err := ParseColor(e.GlowColor); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGlow, err)
		}
	}
	return nil
}

// ParseColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParseColor is ParseColor for compile-time palette constants.
func MustParseColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
