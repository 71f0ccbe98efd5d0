package cards

// PresetStyle is the subset of CardStyle a preset may pin. Empty fields are
// left as they are on the live state.
type PresetStyle struct {
	FontSet     FontSet     `json:"fontSet,omitempty"`
	TextAlign   TextAlign   `json:"textAlign,omitempty"`
	AspectRatio AspectRatio `json:"aspectRatio,omitempty"`
}

// CardPreset is a named partial CardState. It never carries effects.
type CardPreset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	HeaderLines []string    `json:"headerLines"`
	Label       string      `json:"label"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Style       PresetStyle `json:"style,omitempty"`
}

// Apply overwrites the content fields of s with the preset's and the style
// fields the preset defines. Effects are untouched.
func (p CardPreset) Apply(s CardState) CardState {
	out := s.Clone()
	out.HeaderLines = append([]string{}, p.HeaderLines...)
	out.Label = p.Label
	out.Title = p.Title
	out.Subtitle = p.Subtitle
	if p.Style.FontSet != "" {
		out.Style.FontSet = p.Style.FontSet
	}
	if p.Style.TextAlign != "" {
		out.Style.TextAlign = p.Style.TextAlign
	}
	if p.Style.AspectRatio != "" {
		out.Style.AspectRatio = p.Style.AspectRatio
	}
	return out
}

// FindPreset returns the preset with the given id.
func FindPreset(presets []CardPreset, id string) (CardPreset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return CardPreset{}, false
}
