package theme_test

import (
	"testing"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/mock"
	"github.com/fwojciec/blockwright/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// config serves lookups from a nested map.
func config(tree map[string]any) *mock.ThemeConfig {
	return &mock.ThemeConfig{
		LookupFn: func(path ...string) (any, bool) {
			var cur any = tree
			for _, key := range path {
				m, ok := cur.(map[string]any)
				if !ok {
					return nil, false
				}
				if cur, ok = m[key]; !ok {
					return nil, false
				}
			}
			return cur, true
		},
	}
}

func token(t *testing.T, p *blockwright.DesignProfile, category blockwright.TokenCategory, name string) blockwright.Token {
	t.Helper()
	tok, ok := p.Token(category, name)
	require.True(t, ok, "token %s/%s missing", category, name)
	return tok
}

func TestFingerprinter_Fingerprint(t *testing.T) {
	t.Parallel()

	t.Run("uses defaults with zero confidence without config", func(t *testing.T) {
		t.Parallel()

		p := theme.NewFingerprinter(blockwright.ThemeIdentity{Name: "astra", Version: "4.6.0"}, nil).Fingerprint()

		assert.Equal(t, "astra@4.6.0", p.Theme.String())
		assert.Len(t, p.Tokens, 10)
		for _, tok := range p.Tokens {
			assert.Equal(t, blockwright.SourceDefault, tok.Source, tok.Name)
		}
		assert.Equal(t, "#1e73be", token(t, p, blockwright.CategoryColor, "primary").Value)
		assert.Equal(t, "720px", token(t, p, blockwright.CategoryLayout, "content-size").Value)
		assert.Zero(t, p.Confidence)
	})

	t.Run("weights concrete values, references and defaults", func(t *testing.T) {
		t.Parallel()

		cfg := config(map[string]any{
			"settings": map[string]any{
				"color": map[string]any{
					"palette": []any{
						map[string]any{"slug": "primary", "color": "#0a7f5a", "name": "Primary"},
						map[string]any{"slug": "base", "color": "#fafafa", "name": "Base"},
					},
				},
				"layout": map[string]any{"contentSize": "650px"},
			},
			"styles": map[string]any{
				"color": map[string]any{"text": "var:preset|color|contrast"},
			},
		})

		p := theme.NewFingerprinter(blockwright.ThemeIdentity{Name: "twentytwentyfour"}, cfg).Fingerprint()

		primary := token(t, p, blockwright.CategoryColor, "primary")
		assert.Equal(t, "#0a7f5a", primary.Value)
		assert.Equal(t, blockwright.SourceConcrete, primary.Source)

		secondary := token(t, p, blockwright.CategoryColor, "secondary")
		assert.Equal(t, "var(--wp--preset--color--secondary)", secondary.Value)
		assert.Equal(t, blockwright.SourceReference, secondary.Source)

		assert.Equal(t, "#fafafa", token(t, p, blockwright.CategoryColor, "background").Value)

		text := token(t, p, blockwright.CategoryColor, "text")
		assert.Equal(t, "var(--wp--preset--color--contrast)", text.Value)
		assert.Equal(t, blockwright.SourceReference, text.Source)

		assert.Equal(t, blockwright.SourceDefault, token(t, p, blockwright.CategoryTypography, "body-font").Source)
		assert.Equal(t, "650px", token(t, p, blockwright.CategoryLayout, "content-size").Value)

		// 3 concrete + 2 references over 10 slots.
		assert.InDelta(t, 0.40, p.Confidence, 1e-9)
	})

	t.Run("reaches full confidence when every slot is concrete", func(t *testing.T) {
		t.Parallel()

		cfg := config(map[string]any{
			"settings": map[string]any{
				"color": map[string]any{
					"palette": map[string]any{
						"theme": []any{
							map[string]any{"slug": "primary", "color": "#111111"},
							map[string]any{"slug": "secondary", "color": "#222222"},
						},
					},
				},
				"typography": map[string]any{
					"fontFamilies": []any{
						map[string]any{"slug": "heading", "fontFamily": "Georgia, serif"},
					},
				},
				"layout": map[string]any{"contentSize": "700px", "wideSize": "1100px"},
			},
			"styles": map[string]any{
				"color":      map[string]any{"background": "#ffffff", "text": "#000000"},
				"typography": map[string]any{"fontFamily": "Inter, sans-serif", "fontSize": "18px"},
				"spacing":    map[string]any{"blockGap": "2rem"},
			},
		})

		p := theme.NewFingerprinter(blockwright.ThemeIdentity{}, cfg).Fingerprint()

		assert.Equal(t, "Georgia, serif", token(t, p, blockwright.CategoryTypography, "heading-font").Value)
		assert.Equal(t, "#222222", token(t, p, blockwright.CategoryColor, "secondary").Value)
		assert.Equal(t, 1.0, p.Confidence)
	})
}

func TestComponentMapper_Discover(t *testing.T) {
	t.Parallel()

	t.Run("falls back to core blocks without a registry", func(t *testing.T) {
		t.Parallel()

		m := theme.NewComponentMapper(nil).Discover()

		faq := m.Capabilities[blockwright.PrimitiveFAQ]
		assert.True(t, faq.Supported)
		assert.Equal(t, "core/details", faq.Block)
		assert.Empty(t, faq.Alternate)
		assert.Equal(t, 0.30, faq.Confidence)

		assert.Equal(t, blockwright.Recommendation{Block: "core/details", Confidence: 0.30}, m.Recommend("faq"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/quote", Confidence: 0.50}, m.Recommend("testimonial"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/buttons", Confidence: 0.60}, m.Recommend("button"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/columns", Confidence: 0.70}, m.Recommend("grid"))
	})

	t.Run("marks core primitives as supported", func(t *testing.T) {
		t.Parallel()

		m := theme.NewComponentMapper(nil).Discover()

		assert.Equal(t, blockwright.Recommendation{Block: "core/heading", Confidence: 0.99}, m.Recommend("heading"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/list", Confidence: 0.99}, m.Recommend("steps"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/separator", Confidence: 0.99}, m.Recommend("separator"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/gallery", Confidence: 0.95}, m.Recommend("gallery"))
		assert.Equal(t, blockwright.DefaultRecommendation, m.Recommend("carousel"))
	})

	t.Run("prefers the first registered enhanced block", func(t *testing.T) {
		t.Parallel()

		registered := map[string]bool{"kadence/accordion": true, "rank-math/faq-block": true, "stackable/testimonial": true}
		m := theme.NewComponentMapper(&mock.PrimitiveRegistry{
			IsPrimitiveRegisteredFn: func(name string) bool { return registered[name] },
		}).Discover()

		faq := m.Capabilities[blockwright.PrimitiveFAQ]
		assert.Equal(t, "core/details", faq.Block)
		assert.Equal(t, "rank-math/faq-block", faq.Alternate)
		assert.Equal(t, 0.30, faq.BlockConfidence)
		assert.Equal(t, blockwright.Recommendation{Block: "core/details", Confidence: 0.30}, m.Constructible("faq"))
		assert.Equal(t, blockwright.Recommendation{Block: "rank-math/faq-block", Confidence: 0.90}, m.Recommend("faq"))
		assert.Equal(t, blockwright.Recommendation{Block: "stackable/testimonial", Confidence: 0.85}, m.Recommend("testimonial"))
		assert.Equal(t, blockwright.Recommendation{Block: "core/buttons", Confidence: 0.60}, m.Recommend("cta"))
	})
}
