package themes

import (
	"fmt"
	"image"
	"strings"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/scene"
)

const (
	tpHeaderSize   = 0.12
	tpLabelSize    = 0.05
	tpTitleSize    = 0.08
	tpSubtitleSize = 0.045

	tpHeaderY   = 0.15
	tpLabelY    = 0.45
	tpTitleY    = 0.55
	tpSubtitleY = 0.70

	tpMargin   = 0.1
	tpBoundary = 0.9

	// Condensed squash emulates the narrow grotesque of the opening credits.
	tpCondensed = 0.82

	tpHeaderLeading = 1.1
	tpHeaderSpacing = 8
	tpLabelSpacing  = 4
	tpSubtitleAlpha = 0.8
)

type twinPeaks struct {
	bg      image.Image
	palette Palette
}

func newTwinPeaks(bg image.Image, p Palette) *twinPeaks {
	return &twinPeaks{bg: bg, palette: p}
}

func (t *twinPeaks) squash(group string) float64 {
	switch group {
	case "headers", "label":
		return tpCondensed
	}
	return 1
}

func (t *twinPeaks) Compose(state cards.CardState, width, height int) *scene.Frame {
	w, h := float64(width), float64(height)
	margin, boundary := w*tpMargin, w*tpBoundary
	fill := cards.MustParseColor(t.palette.Text)
	shadow := glow(state.Effects)
	align := state.Style.TextAlign

	f := scene.NewFrame(width, height, cards.MustParseColor(t.palette.Background), t.bg)

	s := t.squash("headers")
	x, a := anchor(align, margin, boundary, s)
	headers := scene.NewGroup("headers")
	size := h * tpHeaderSize
	for i, line := range state.HeaderLines {
		if i >= cards.MaxHeaderLines {
			break
		}
		if line == "" {
			continue
		}
		headers.Texts = append(headers.Texts, &scene.Text{
			Content:       strings.ToUpper(line),
			X:             x,
			Y:             float64(i) * size * tpHeaderLeading,
			Size:          size,
			Font:          scene.FontSansBold,
			Fill:          fill,
			Align:         a,
			LetterSpacing: tpHeaderSpacing,
			StrokeColor:   cards.MustParseColor(t.palette.Outline),
			StrokeWidth:   1,
			Shadow:        shadow,
		})
	}
	f.Add(headers)

	if state.Label != "" {
		s := t.squash("label")
		x, a := anchor(align, margin, boundary, s)
		f.Add(scene.NewGroup("label", &scene.Text{
			Content:       strings.ToUpper(state.Label),
			X:             x,
			Size:          h * tpLabelSize,
			Font:          scene.FontSansBold,
			Fill:          fill,
			Align:         a,
			LetterSpacing: tpLabelSpacing,
			Shadow:        shadow,
		}))
	}

	if title, ok := titleText(state.Title); ok {
		s := t.squash("title")
		x, a := anchor(align, margin, boundary, s)
		font := scene.FontSerifItalic
		if state.Style.FontSet == cards.FontSans {
			font = scene.FontSansRegular
		}
		f.Add(scene.NewGroup("title", &scene.Text{
			Content:    title,
			X:          x,
			Size:       h * tpTitleSize,
			Font:       font,
			Fill:       fill,
			Align:      a,
			Width:      (boundary - margin) / s,
			LineHeight: TitleLineHeight,
			Shadow:     shadow,
		}))
	}

	if state.Subtitle != "" {
		s := t.squash("subtitle")
		x, a := anchor(align, margin, boundary, s)
		f.Add(scene.NewGroup("subtitle", &scene.Text{
			Content:    state.Subtitle,
			X:          x,
			Size:       h * tpSubtitleSize,
			Font:       scene.FontSansRegular,
			Fill:       fill,
			Align:      a,
			Width:      (boundary - margin) / s,
			LineHeight: TitleLineHeight,
			Opacity:    tpSubtitleAlpha,
			Shadow:     shadow,
		}))
	}
	return f
}

func (t *twinPeaks) Layout(state cards.CardState, width, height int) (string, map[string]scene.Transform) {
	h := float64(height)
	y := map[string]float64{
		"headers":  tpHeaderY,
		"label":    tpLabelY,
		"title":    tpTitleY,
		"subtitle": tpSubtitleY,
	}
	tr := make(map[string]scene.Transform, len(y))
	for name, frac := range y {
		tr[name] = scene.Transform{Y: h * frac, ScaleX: t.squash(name), ScaleY: 1}
	}
	return fmt.Sprintf("%g|%g", h, tpCondensed), tr
}

func twinPeaksTheme(bg image.Image) ThemeConfig {
	p := Palette{
		Background: "#1a3d1a",
		Text:       "#c4b896",
		Outline:    "#39FF14",
		Accent:     "#ff6b35",
	}
	return ThemeConfig{
		ID:          "twin-peaks",
		Name:        "Twin Peaks",
		Description: "The mysterious world of David Lynch and Mark Frost",
		Year:        1990,
		Creator:     "David Lynch & Mark Frost",
		Colors:      p,
		Fonts: FontTable{
			Header:   scene.FontSansBold,
			Label:    scene.FontSansBold,
			Title:    scene.FontSerifItalic,
			Subtitle: scene.FontSansRegular,
		},
		Presets:      twinPeaksPresets(),
		DefaultState: defaultTwinPeaksState(),
		Renderer:     newTwinPeaks(bg, p),
		Background:   bg,
	}
}

func twinPeaksPresets() []cards.CardPreset {
	return []cards.CardPreset{
		{
			ID:          "pilot",
			Name:        "Pilot",
			HeaderLines: []string{"Twin", "Peaks"},
			Label:       "Pilot",
			Title:       "Northwest Passage",
			Subtitle:    "Written by Mark Frost & David Lynch",
			Style:       cards.PresetStyle{FontSet: cards.FontSerif, TextAlign: cards.AlignCenter},
		},
		{
			ID:          "ep8",
			Name:        "Episode 8",
			HeaderLines: []string{"Twin", "Peaks"},
			Label:       "Episode 8",
			Title:       "May the Giant\nBe with You",
			Style:       cards.PresetStyle{FontSet: cards.FontSerif, TextAlign: cards.AlignCenter, AspectRatio: cards.AspectStandard},
		},
		{
			ID:          "fwwm",
			Name:        "Fire Walk with Me",
			HeaderLines: []string{"Fire", "Walk", "With Me"},
			Label:       "1992",
			Title:       "The last seven days of Laura Palmer",
			Style:       cards.PresetStyle{TextAlign: cards.AlignCenter, AspectRatio: cards.AspectWide},
		},
		{
			ID:          "part8",
			Name:        "The Return, Part 8",
			HeaderLines: []string{"Twin Peaks"},
			Label:       "Part 8",
			Title:       "Gotta light?",
			Subtitle:    "The Return",
			Style:       cards.PresetStyle{FontSet: cards.FontSans, TextAlign: cards.AlignCenter, AspectRatio: cards.AspectWide},
		},
	}
}

func defaultTwinPeaksState() cards.CardState {
	return cards.CardState{
		HeaderLines: []string{"Twin", "Peaks"},
		Label:       "Episode 1",
		Title:       "Northwest Passage",
		Style: cards.CardStyle{
			FontSet:     cards.FontSerif,
			TextAlign:   cards.AlignCenter,
			AspectRatio: cards.AspectStandard,
		},
		Effects: cards.DefaultEffects(),
	}
}
