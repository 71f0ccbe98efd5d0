// Package themes holds the per-theme renderers and the registry they are
// looked up from.
package themes

import (
	"image"
	"strings"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/scene"
)

// Renderer draws a card for one theme in two phases: Compose builds the
// frame from the state, Layout returns the post-layout group transforms and
// the key of the inputs they depend on.
type Renderer interface {
	Compose(state cards.CardState, width, height int) *scene.Frame
	Layout(state cards.CardState, width, height int) (key string, transforms map[string]scene.Transform)
}

type Palette struct {
	Background    string `json:"background"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary,omitempty"`
	Outline       string `json:"outline,omitempty"`
	Accent        string `json:"accent"`
	Glow          string `json:"glow,omitempty"`
}

// FontTable names the scene font used per text role.
type FontTable struct {
	Header   string `json:"header"`
	Label    string `json:"label"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type ThemeConfig struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Year         int                `json:"year,omitempty"`
	Creator      string             `json:"creator,omitempty"`
	Colors       Palette            `json:"colors"`
	Fonts        FontTable          `json:"fonts"`
	Presets      []cards.CardPreset `json:"presets"`
	DefaultState cards.CardState    `json:"defaultState"`
	Renderer     Renderer           `json:"-"`
	Background   image.Image        `json:"-"`
}

// NewState returns a fresh copy of the theme's default state.
func (t ThemeConfig) NewState() cards.CardState {
	return t.DefaultState.Clone()
}

// Preset looks up one of the theme's presets.
func (t ThemeConfig) Preset(id string) (cards.CardPreset, bool) {
	return cards.FindPreset(t.Presets, id)
}

// glow returns the shadow every text node carries, or nil when the glow is
// disabled.
func glow(e cards.TextEffects) *scene.Shadow {
	if !e.GlowEnabled {
		return nil
	}
	c, err := cards.ParseColor(e.GlowColor)
	if err != nil {
		c = cards.MustParseColor("#ffffff")
	}
	return &scene.Shadow{Color: c, Blur: e.GlowBlur, Opacity: e.GlowOpacity}
}

// anchor resolves where a squashed line is anchored in group-local units so
// that after the group's horizontal scale the line starts at margin, is
// centered between margin and boundary, or ends at boundary.
func anchor(a cards.TextAlign, margin, boundary, squash float64) (float64, scene.Align) {
	switch a {
	case cards.AlignRight:
		return boundary / squash, scene.AlignRight
	case cards.AlignCenter:
		return (margin + boundary) / 2 / squash, scene.AlignCenter
	default:
		return margin / squash, scene.AlignLeft
	}
}

// titleText normalises line breaks in a title. ok is false when no line
// has any text, so nothing would be drawn.
func titleText(title string) (string, bool) {
	title = strings.ReplaceAll(title, "\r\n", "\n")
	if strings.TrimSpace(title) == "" {
		return "", false
	}
	return title, true
}

// TitleLineHeight is the pitch between title lines, explicit or wrapped, as
// a multiple of the title size.
const TitleLineHeight = 1.1
