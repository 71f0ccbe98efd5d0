package cards

import "strings"

type FilterOptions struct {
	FreeWords    string        `json:"freeWords"`
	FontSets     []FontSet     `json:"fontSets"`
	AspectRatios []AspectRatio `json:"aspectRatios"`
	TextAligns   []TextAlign   `json:"textAligns"`
}

func containsAny[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// FilterPresets keeps the presets matching every non-empty option. Free
// words must all appear (case-insensitively) in the preset's text.
func FilterPresets(presets []CardPreset, opt FilterOptions) []CardPreset {
	out := []CardPreset{}
	for _, p := range presets {
		if len(opt.FontSets) > 0 && !containsAny(opt.FontSets, p.Style.FontSet) {
			continue
		}
		if len(opt.AspectRatios) > 0 && !containsAny(opt.AspectRatios, p.Style.AspectRatio) {
			continue
		}
		if len(opt.TextAligns) > 0 && !containsAny(opt.TextAligns, p.Style.TextAlign) {
			continue
		}
		if opt.FreeWords != "" {
			hay := strings.ToLower(strings.Join([]string{
				p.ID,
				p.Name,
				strings.Join(p.HeaderLines, " "),
				p.Label,
				p.Title,
				p.Subtitle,
			}, " "))
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				if !strings.Contains(hay, strings.ToLower(k)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
