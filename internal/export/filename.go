package export

import (
	"strings"
	"time"
)

// Slug lower-cases s and turns every whitespace run into one hyphen.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Filename builds "{prefix}-{slug}-{YYYY-MM-DD}.png". fallback is used when
// primary has no printable text.
func Filename(prefix, primary, fallback string, at time.Time) string {
	slug := Slug(primary)
	if slug == "" {
		slug = Slug(fallback)
	}
	parts := []string{}
	for _, p := range []string{prefix, slug, at.Format("2006-01-02")} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-") + ".png"
}
