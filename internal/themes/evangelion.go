package themes

import (
	"fmt"
	"image"
	"strings"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/scene"
)

// Evangelion title-card geometry. Sizes and offsets are fractions of the
// surface height; margins are fractions of the width per aspect ratio.
const (
	evaSmallHeader = 0.184
	evaLargeHeader = 0.308
	evaLabelSize   = 0.095
	evaTitleSize   = 0.095

	evaTopSquash   = 0.62
	evaMidSquash   = 0.62
	evaBotSquash   = 0.57
	evaLabelSquash = 0.76
	evaSerifSquash = 0.76
	evaSansSquash  = 0.8
	evaHeaderLimit = 3
)

var evaGroupY = map[string]float64{
	"header-0": 0.074,
	"header-1": 0.222,
	"header-2": 0.354,
	"label":    0.637,
	"title":    0.785,
}

type evaMargins struct{ left, right float64 }

var evaMarginsByAspect = map[cards.AspectRatio]evaMargins{
	cards.AspectStandard: {left: 75.0 / 900, right: 815.0 / 900},
	cards.AspectWide:     {left: 115.0 / 1280, right: 1150.0 / 1280},
}

type evangelion struct {
	bg      image.Image
	bgColor string
	text    string
}

func newEvangelion(bg image.Image) *evangelion {
	return &evangelion{bg: bg, bgColor: "#000000", text: "#FFFFFF"}
}

// geometry is the dependency set of the transform pass.
type evaGeometry struct {
	height      float64
	margin      float64
	boundary    float64
	squash      [3]float64
	labelSquash float64
	titleSquash float64
}

func (e *evangelion) geometry(state cards.CardState, width, height int) evaGeometry {
	m, ok := evaMarginsByAspect[state.Style.AspectRatio]
	if !ok {
		m = evaMarginsByAspect[cards.AspectStandard]
	}
	ts := evaSerifSquash
	if state.Style.FontSet == cards.FontSans {
		ts = evaSansSquash
	}
	return evaGeometry{
		height:      float64(height),
		margin:      float64(width) * m.left,
		boundary:    float64(width) * m.right,
		squash:      [3]float64{evaTopSquash, evaMidSquash, evaBotSquash},
		labelSquash: evaLabelSquash,
		titleSquash: ts,
	}
}

func (e *evangelion) Compose(state cards.CardState, width, height int) *scene.Frame {
	geo := e.geometry(state, width, height)
	h := geo.height
	fill := cards.MustParseColor(e.text)
	shadow := glow(state.Effects)

	f := scene.NewFrame(width, height, cards.MustParseColor(e.bgColor), e.bg)

	for i, line := range state.HeaderLines {
		if i >= evaHeaderLimit {
			break
		}
		if line == "" {
			continue
		}
		// The large third line only appears on a full three-line header.
		if i == 2 && len(state.HeaderLines) < evaHeaderLimit {
			continue
		}
		size := h * evaSmallHeader
		if i == 2 {
			size = h * evaLargeHeader
		}
		f.Add(scene.NewGroup(fmt.Sprintf("header-%d", i), &scene.Text{
			Content: strings.ToUpper(line),
			Size:    size,
			Font:    scene.FontSerifBold,
			Fill:    fill,
			Shadow:  shadow,
		}))
	}

	if state.Label != "" {
		f.Add(scene.NewGroup("label", &scene.Text{
			Content: strings.ToUpper(state.Label),
			Size:    h * evaLabelSize,
			Font:    scene.FontSansBold,
			Fill:    fill,
			Shadow:  shadow,
		}))
	}

	if title, ok := titleText(state.Title); ok {
		font := scene.FontSerifBold
		if state.Style.FontSet == cards.FontSans {
			font = scene.FontSansBold
		}
		x, align := anchor(state.Style.TextAlign, geo.margin, geo.boundary, geo.titleSquash)
		var wrap float64
		if align == scene.AlignLeft {
			wrap = (geo.boundary - geo.margin) / geo.titleSquash
		}
		f.Add(scene.NewGroup("title", &scene.Text{
			Content:    title,
			X:          x,
			Size:       h * evaTitleSize,
			Font:       font,
			Fill:       fill,
			Align:      align,
			Width:      wrap,
			LineHeight: TitleLineHeight,
			Shadow:     shadow,
		}))
	}
	return f
}

func (e *evangelion) Layout(state cards.CardState, width, height int) (string, map[string]scene.Transform) {
	geo := e.geometry(state, width, height)
	key := fmt.Sprintf("%g|%g|%g|%v|%g|%g", geo.height, geo.margin, geo.boundary, geo.squash, geo.labelSquash, geo.titleSquash)

	squash := map[string]float64{
		"header-0": geo.squash[0],
		"header-1": geo.squash[1],
		"header-2": geo.squash[2],
		"label":    geo.labelSquash,
		"title":    geo.titleSquash,
	}
	tr := make(map[string]scene.Transform, len(squash))
	for name, s := range squash {
		x := geo.margin
		if name == "title" {
			// Title lines carry their own pre-divided anchor.
			x = 0
		}
		tr[name] = scene.Transform{X: x, Y: geo.height * evaGroupY[name], ScaleX: s, ScaleY: 1}
	}
	return key, tr
}

func evangelionTheme(bg image.Image) ThemeConfig {
	return ThemeConfig{
		ID:          "evangelion",
		Name:        "Neon Genesis Evangelion",
		Description: "The seminal 1995 anime series directed by Hideaki Anno",
		Year:        1995,
		Creator:     "Hideaki Anno / Gainax",
		Colors: Palette{
			Background: "#000000",
			Text:       "#FFFFFF",
			Accent:     "#FF2A2A",
		},
		Fonts: FontTable{
			Header: scene.FontSerifBold,
			Label:  scene.FontSansBold,
			Title:  scene.FontSerifBold,
		},
		Presets:      evangelionPresets(),
		DefaultState: defaultEvangelionState(),
		Renderer:     newEvangelion(bg),
		Background:   bg,
	}
}

func evaPreset(id, ep, title string, font cards.FontSet, align cards.TextAlign, aspect cards.AspectRatio, header ...string) cards.CardPreset {
	return cards.CardPreset{
		ID:          id,
		Name:        strings.TrimSpace(ep + " " + title),
		HeaderLines: header,
		Label:       ep,
		Title:       title,
		Style:       cards.PresetStyle{FontSet: font, TextAlign: align, AspectRatio: aspect},
	}
}

func evangelionPresets() []cards.CardPreset {
	nge := []string{"NEON", "GENESIS", "EVANGELION"}
	return []cards.CardPreset{
		evaPreset("ep01", "EPISODE:01", "Angel Attack", cards.FontSerif, cards.AlignLeft, cards.AspectStandard, nge...),
		evaPreset("ep02", "EPISODE:02", "The Beast", cards.FontSerif, cards.AlignLeft, cards.AspectStandard, nge...),
		evaPreset("ep12", "EPISODE:12", "She said, \"Don't make others suffer\nfor your personal hatred.\"", cards.FontSerif, cards.AlignLeft, cards.AspectStandard, nge...),
		evaPreset("ep26", "EPISODE:26", "Take care of yourself.", cards.FontSerif, cards.AlignLeft, cards.AspectStandard, nge...),
		evaPreset("eoe", "", "One More Final: I need you.", cards.FontSans, cards.AlignCenter, cards.AspectWide, "", "", "THE END OF EVANGELION"),
	}
}

func defaultEvangelionState() cards.CardState {
	return cards.CardState{
		HeaderLines: []string{"NEON", "GENESIS", "EVANGELION"},
		Label:       "EPISODE:26",
		Title:       "Take care of yourself.",
		Style: cards.CardStyle{
			FontSet:     cards.FontSerif,
			TextAlign:   cards.AlignLeft,
			AspectRatio: cards.AspectStandard,
		},
		Effects: cards.DefaultEffects(),
	}
}
