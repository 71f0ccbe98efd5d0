package cards

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestPresetApply(t *testing.T) {
	s := validState()
	s.Effects.GlowEnabled = true
	s.Subtitle = "old"

	p := CardPreset{
		ID:          "eoe",
		HeaderLines: []string{"", "", "THE END OF EVANGELION"},
		Title:       "One More Final: I need you.",
		Style:       PresetStyle{TextAlign: AlignCenter, AspectRatio: AspectWide},
	}
	out := p.Apply(s)

	test.T(t, out.HeaderLines, []string{"", "", "THE END OF EVANGELION"})
	test.String(t, out.Label, "")
	test.String(t, out.Subtitle, "")
	test.String(t, out.Title, "One More Final: I need you.")
	test.T(t, out.Style, CardStyle{FontSet: FontSerif, TextAlign: AlignCenter, AspectRatio: AspectWide})
	test.T(t, out.Effects, s.Effects)

	// the input state is untouched
	test.String(t, s.Label, "EPISODE:26")
	test.T(t, s.Style.AspectRatio, AspectStandard)

	out.HeaderLines[2] = "x"
	test.String(t, p.HeaderLines[2], "THE END OF EVANGELION")
}

func TestFindPreset(t *testing.T) {
	ps := []CardPreset{{ID: "a"}, {ID: "b", Label: "B"}}
	p, ok := FindPreset(ps, "b")
	test.That(t, ok)
	test.String(t, p.Label, "B")
	_, ok = FindPreset(ps, "c")
	test.That(t, !ok)
}

const presetsCSV = `id,name,header,label,title,subtitle,font_set,text_align,aspect_ratio
ep03,Episode 3,NEON / GENESIS / EVANGELION,EPISODE:03,A Transfer\nStudent,,serif,left,standard
ep04,Episode 4,NEON／GENESIS,EPISODE:04,Hedgehog's Dilemma,,sans,,wide
eoe2,End,- / - / THE END OF EVANGELION,,I need you.,,sans,center,wide
`

func TestReadPresetsCSV(t *testing.T) {
	ps, err := ReadPresetsCSV(strings.NewReader(presetsCSV))
	test.Error(t, err)
	test.T(t, len(ps), 3)

	test.String(t, ps[0].ID, "ep03")
	test.T(t, ps[0].HeaderLines, []string{"NEON", "GENESIS", "EVANGELION"})
	test.String(t, ps[0].Title, "A Transfer\nStudent")
	test.T(t, ps[0].Style, PresetStyle{FontSet: FontSerif, TextAlign: AlignLeft, AspectRatio: AspectStandard})

	test.T(t, ps[1].HeaderLines, []string{"NEON", "GENESIS"})
	test.T(t, ps[1].Style.TextAlign, TextAlign(""))
	test.T(t, ps[1].Style.AspectRatio, AspectWide)

	// empty slots keep the large third header line in place
	test.T(t, ps[2].HeaderLines, []string{"", "", "THE END OF EVANGELION"})
}

func TestParseHeaderCell(t *testing.T) {
	var tts = []struct {
		in  string
		out []string
	}{
		{"", []string{}},
		{"NEON", []string{"NEON"}},
		{" NEON / GENESIS ", []string{"NEON", "GENESIS"}},
		{"-/-/THE END", []string{"", "", "THE END"}},
		{"/ /THE END", []string{"", "", "THE END"}},
		{"NEON / - / ", []string{"NEON"}},
		{"A／-／C", []string{"A", "", "C"}},
	}
	for _, tt := range tts {
		t.Run(tt.in, func(t *testing.T) {
			test.T(t, parseHeaderCell(tt.in), tt.out)
		})
	}
}

func TestReadPresetsCSVErrors(t *testing.T) {
	var tts = []struct {
		name string
		csv  string
		err  error
	}{
		{"empty", "", nil},
		{"no id column", "name,title\nx,y\n", nil},
		{"empty id", "id,title\n,y\n", nil},
		{"aspect", "id,aspect_ratio\na,square\n", ErrInvalidAspectRatio},
		{"align", "id,text_align\na,justify\n", ErrInvalidTextAlign},
		{"headers", "id,header\na,1/2/3/4/5/6/7\n", ErrTooManyHeaderLines},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPresetsCSV(strings.NewReader(tt.csv))
			if err == nil {
				test.Fail(t, "must give error")
			}
			if tt.err != nil {
				test.That(t, errors.Is(err, tt.err), err)
			}
		})
	}
}

func TestLoadPresetsFromDataDir(t *testing.T) {
	dir := t.TempDir()

	ps, err := LoadPresetsFromDataDir(dir, "evangelion")
	test.Error(t, err)
	test.T(t, len(ps), 0)

	path := PresetFile(dir, "evangelion")
	test.Error(t, os.MkdirAll(filepath.Dir(path), 0o755))
	test.Error(t, os.WriteFile(path, []byte(presetsCSV), 0o644))

	ps, err = LoadPresetsFromDataDir(dir, "evangelion")
	test.Error(t, err)
	test.T(t, len(ps), 3)

	test.Error(t, os.WriteFile(path, []byte("id,aspect_ratio\na,square\n"), 0o644))
	_, err = LoadPresetsFromDataDir(dir, "evangelion")
	test.That(t, errors.Is(err, ErrInvalidAspectRatio))
	test.That(t, strings.Contains(err.Error(), path))
}

func TestFilterPresets(t *testing.T) {
	ps := []CardPreset{
		{ID: "ep01", Label: "EPISODE:01", Title: "Angel Attack", Style: PresetStyle{FontSet: FontSerif, TextAlign: AlignLeft, AspectRatio: AspectStandard}},
		{ID: "ep26", Label: "EPISODE:26", Title: "Take care of yourself.", Style: PresetStyle{FontSet: FontSerif, TextAlign: AlignLeft, AspectRatio: AspectStandard}},
		{ID: "eoe", Title: "One More Final: I need you.", Style: PresetStyle{FontSet: FontSans, TextAlign: AlignCenter, AspectRatio: AspectWide}},
	}
	ids := func(ps []CardPreset) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	var tts = []struct {
		name string
		opt  FilterOptions
		ids  []string
	}{
		{"all", FilterOptions{}, []string{"ep01", "ep26", "eoe"}},
		{"font", FilterOptions{FontSets: []FontSet{FontSans}}, []string{"eoe"}},
		{"aspect", FilterOptions{AspectRatios: []AspectRatio{AspectStandard}}, []string{"ep01", "ep26"}},
		{"align", FilterOptions{TextAligns: []TextAlign{AlignCenter, AlignRight}}, []string{"eoe"}},
		{"words", FilterOptions{FreeWords: "episode ATTACK"}, []string{"ep01"}},
		{"words and font", FilterOptions{FreeWords: "you", FontSets: []FontSet{FontSerif}}, []string{"ep26"}},
		{"none", FilterOptions{FreeWords: "lilith"}, []string{}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			test.T(t, ids(FilterPresets(ps, tt.opt)), tt.ids)
		})
	}
}
