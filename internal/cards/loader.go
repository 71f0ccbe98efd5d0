package cards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// parseHeaderCell splits a "/" separated header cell. Header lines are
// positional, so empty or "-" slots stay as "" and only trailing empty
// slots are dropped.
func parseHeaderCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	out := []string{}
	for _, p := range strings.Split(s, "/") {
		t := strings.TrimSpace(p)
		if t == "-" {
			t = ""
		}
		out = append(out, t)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// PresetFile is where extra presets for a theme live inside the data dir.
func PresetFile(dataDir, themeID string) string {
	return filepath.Join(dataDir, "presets", themeID+".csv")
}

// LoadPresetsFromDataDir loads the extra presets for themeID (best-effort).
// A missing file is not an error and yields no presets.
func LoadPresetsFromDataDir(dataDir, themeID string) ([]CardPreset, error) {
	path := PresetFile(dataDir, themeID)
	fp, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer fp.Close()

	ps, err := ReadPresetsCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ps, nil
}

// ReadPresetsCSV parses presets from CSV with a header row. Known columns:
// id, name, header, label, title, subtitle, font_set, text_align,
// aspect_ratio. Header lines are separated by "/" ("-" keeps a slot empty)
// and a literal `\n` in the title becomes a line break.
func ReadPresetsCSV(r io.Reader) ([]CardPreset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.New("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, errors.New("csv has no id column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []CardPreset{}
	for n, row := range rows[1:] {
		p := CardPreset{
			ID:          get(row, "id"),
			Name:        get(row, "name"),
			HeaderLines: parseHeaderCell(get(row, "header")),
			Label:       get(row, "label"),
			Title:       strings.ReplaceAll(get(row, "title"), `\n`, "\n"),
			Subtitle:    get(row, "subtitle"),
			Style: PresetStyle{
				FontSet:     FontSet(get(row, "font_set")),
				TextAlign:   TextAlign(get(row, "text_align")),
				AspectRatio: AspectRatio(get(row, "aspect_ratio")),
			},
		}
		if p.ID == "" {
			return nil, fmt.Errorf("row %d: empty id", n+2)
		}
		if len(p.HeaderLines) > MaxHeaderLines {
			return nil, fmt.Errorf("row %d: %w", n+2, ErrTooManyHeaderLines)
		}
		switch p.Style.AspectRatio {
		case "", AspectStandard, AspectWide:
		default:
			return nil, fmt.Errorf("row %d: %w: %q", n+2, ErrInvalidAspectRatio, p.Style.AspectRatio)
		}
		switch p.Style.TextAlign {
		case "", AlignLeft, AlignCenter, AlignRight:
		default:
			return nil, fmt.Errorf("row %d: %w: %q", n+2, ErrInvalidTextAlign, p.Style.TextAlign)
		}
		out = append(out, p)
	}
	return out, nil
}
