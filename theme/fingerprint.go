// Package theme probes the host theme for design tokens and for the content
// primitives it can render.
package theme

import (
	"strconv"
	"strings"

	"github.com/fwojciec/blockwright"
)

// Fingerprinter extracts a DesignProfile from the host's structured theme
// configuration.
type Fingerprinter struct {
	Theme blockwright.ThemeIdentity

	// Config is the host theme configuration. Nil yields a profile made of
	// defaults with zero confidence.
	Config blockwright.ThemeConfig
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(theme blockwright.ThemeIdentity, config blockwright.ThemeConfig) *Fingerprinter {
	return &Fingerprinter{Theme: theme, Config: config}
}

// lookup resolves a candidate concrete value from the config.
type lookup func(cfg blockwright.ThemeConfig) (string, bool)

type slot struct {
	category  blockwright.TokenCategory
	name      string
	sources   []lookup
	family    []string
	reference string
	fallback  string
}

var slots = []slot{
	{
		category:  blockwright.CategoryColor,
		name:      "primary",
		sources:   []lookup{palette("primary"), path("styles", "elements", "button", "color", "background")},
		family:    []string{"settings", "color", "palette"},
		reference: "var(--wp--preset--color--primary)",
		fallback:  "#1e73be",
	},
	{
		category:  blockwright.CategoryColor,
		name:      "secondary",
		sources:   []lookup{palette("secondary")},
		family:    []string{"settings", "color", "palette"},
		reference: "var(--wp--preset--color--secondary)",
		fallback:  "#333333",
	},
	{
		category:  blockwright.CategoryColor,
		name:      "background",
		sources:   []lookup{path("styles", "color", "background"), palette("base")},
		family:    []string{"settings", "color", "palette"},
		reference: "var(--wp--preset--color--base)",
		fallback:  "#ffffff",
	},
	{
		category:  blockwright.CategoryColor,
		name:      "text",
		sources:   []lookup{path("styles", "color", "text"), palette("contrast")},
		family:    []string{"settings", "color", "palette"},
		reference: "var(--wp--preset--color--contrast)",
		fallback:  "#1a1a1a",
	},
	{
		category:  blockwright.CategoryTypography,
		name:      "body-font",
		sources:   []lookup{path("styles", "typography", "fontFamily"), fontFamily("body")},
		family:    []string{"settings", "typography", "fontFamilies"},
		reference: "var(--wp--preset--font-family--body)",
		fallback:  "system-ui, sans-serif",
	},
	{
		category:  blockwright.CategoryTypography,
		name:      "heading-font",
		sources:   []lookup{path("styles", "elements", "heading", "typography", "fontFamily"), fontFamily("heading")},
		family:    []string{"settings", "typography", "fontFamilies"},
		reference: "var(--wp--preset--font-family--heading)",
		fallback:  "inherit",
	},
	{
		category:  blockwright.CategoryTypography,
		name:      "base-size",
		sources:   []lookup{path("styles", "typography", "fontSize")},
		family:    []string{"settings", "typography", "fontSizes"},
		reference: "var(--wp--preset--font-size--medium)",
		fallback:  "1rem",
	},
	{
		category:  blockwright.CategorySpacing,
		name:      "block-gap",
		sources:   []lookup{path("styles", "spacing", "blockGap")},
		family:    []string{"settings", "spacing", "blockGap"},
		reference: "var(--wp--style--block-gap)",
		fallback:  "1.5rem",
	},
	{
		category:  blockwright.CategoryLayout,
		name:      "content-size",
		sources:   []lookup{path("settings", "layout", "contentSize")},
		reference: "var(--wp--style--global--content-size)",
		fallback:  "720px",
	},
	{
		category:  blockwright.CategoryLayout,
		name:      "wide-size",
		sources:   []lookup{path("settings", "layout", "wideSize")},
		reference: "var(--wp--style--global--wide-size)",
		fallback:  "1200px",
	},
}

// Fingerprint resolves every token slot. A concrete config value wins; a
// preset reference or a declared preset family yields a variable
// reference; anything else falls back to a default. Confidence is the mean
// of the per-slot source weights.
func (f *Fingerprinter) Fingerprint() *blockwright.DesignProfile {
	profile := &blockwright.DesignProfile{
		Theme:  f.Theme,
		Tokens: make([]blockwright.Token, 0, len(slots)),
	}

	var sum float64
	for _, s := range slots {
		tok := f.resolve(s)
		sum += tok.Source.Weight()
		profile.Tokens = append(profile.Tokens, tok)
	}
	profile.Confidence = blockwright.RoundConfidence(sum / float64(len(slots)))
	return profile
}

func (f *Fingerprinter) resolve(s slot) blockwright.Token {
	tok := blockwright.Token{Category: s.category, Name: s.name, Value: s.fallback, Source: blockwright.SourceDefault}
	if f.Config == nil {
		return tok
	}

	for _, src := range s.sources {
		v, ok := src(f.Config)
		if !ok {
			continue
		}
		if ref, ok := presetReference(v); ok {
			tok.Value, tok.Source = ref, blockwright.SourceReference
			return tok
		}
		tok.Value, tok.Source = v, blockwright.SourceConcrete
		return tok
	}

	if s.family != nil {
		if v, ok := f.Config.Lookup(s.family...); ok && declared(v) {
			tok.Value, tok.Source = s.reference, blockwright.SourceReference
		}
	}
	return tok
}

// presetReference converts a preset shorthand ("var:preset|color|primary")
// to its CSS variable and reports whether v is a variable reference at all.
func presetReference(v string) (string, bool) {
	if strings.HasPrefix(v, "var(--") {
		return v, true
	}
	if rest, ok := strings.CutPrefix(v, "var:"); ok {
		return "var(--wp--" + strings.ReplaceAll(rest, "|", "--") + ")", true
	}
	return "", false
}

func path(keys ...string) lookup {
	return func(cfg blockwright.ThemeConfig) (string, bool) {
		v, ok := cfg.Lookup(keys...)
		if !ok {
			return "", false
		}
		return scalar(v)
	}
}

// palette looks up a color by slug in settings.color.palette.
func palette(slug string) lookup {
	return preset([]string{"settings", "color", "palette"}, slug, "color")
}

// fontFamily looks up a font stack by slug in settings.typography.fontFamilies.
func fontFamily(slug string) lookup {
	return preset([]string{"settings", "typography", "fontFamilies"}, slug, "fontFamily")
}

func preset(family []string, slug, field string) lookup {
	return func(cfg blockwright.ThemeConfig) (string, bool) {
		v, ok := cfg.Lookup(family...)
		if !ok {
			return "", false
		}
		for _, entry := range presetEntries(v) {
			if entry["slug"] != slug {
				continue
			}
			if s, ok := scalar(entry[field]); ok {
				return s, true
			}
		}
		return "", false
	}
}

// presetEntries flattens a preset list. Lists may also be keyed by origin
// ("theme", "default", "custom").
func presetEntries(v any) []map[string]any {
	var out []map[string]any
	switch v := v.(type) {
	case []any:
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
	case map[string]any:
		for _, origin := range []string{"custom", "theme", "default"} {
			out = append(out, presetEntries(v[origin])...)
		}
	}
	return out
}

func declared(v any) bool {
	switch v := v.(type) {
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(presetEntries(v)) > 0
	case bool:
		return v
	case string:
		return v != ""
	}
	return v != nil
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
