package theme

import "github.com/fwojciec/blockwright"

// Confidence of blocks the host is known to render.
const (
	CoreConfidence    = 0.99
	GalleryConfidence = 0.95
)

var corePrimitives = []blockwright.Primitive{
	blockwright.PrimitiveParagraph,
	blockwright.PrimitiveHeading,
	blockwright.PrimitiveList,
	blockwright.PrimitiveImage,
	blockwright.PrimitiveTable,
	blockwright.PrimitiveColumns,
	blockwright.PrimitiveGroup,
	blockwright.PrimitiveSeparator,
}

// probe lists known enhanced blocks for an optional primitive, in order of
// preference, and the core block that can always stand in for them.
type probe struct {
	primitive          blockwright.Primitive
	known              []string
	enhancedConfidence float64
	fallback           string
	fallbackConfidence float64
}

var probes = []probe{
	{
		primitive:          blockwright.PrimitiveFAQ,
		known:              []string{"yoast/faq-block", "rank-math/faq-block", "kadence/accordion", "generateblocks/accordion"},
		enhancedConfidence: 0.90,
		fallback:           "core/details",
		fallbackConfidence: 0.30,
	},
	{
		primitive:          blockwright.PrimitiveTestimonial,
		known:              []string{"kadence/testimonials", "stackable/testimonial", "getwid/testimonial"},
		enhancedConfidence: 0.85,
		fallback:           "core/quote",
		fallbackConfidence: 0.50,
	},
	{
		primitive:          blockwright.PrimitiveCTA,
		known:              []string{"kadence/advancedbtn", "stackable/call-to-action", "generateblocks/button"},
		enhancedConfidence: 0.85,
		fallback:           "core/buttons",
		fallbackConfidence: 0.60,
	},
	{
		primitive:          blockwright.PrimitiveGrid,
		known:              []string{"kadence/rowlayout", "generateblocks/grid", "stackable/columns"},
		enhancedConfidence: 0.85,
		fallback:           "core/columns",
		fallbackConfidence: 0.70,
	},
}

// ComponentMapper discovers which content primitives the host renders.
type ComponentMapper struct {
	// Registry reports registered blocks. Nil means only core blocks are
	// available.
	Registry blockwright.PrimitiveRegistry
}

// NewComponentMapper creates a new ComponentMapper.
func NewComponentMapper(registry blockwright.PrimitiveRegistry) *ComponentMapper {
	return &ComponentMapper{Registry: registry}
}

// Discover builds the capability map. Optional primitives with no enhanced
// block registered keep their core fallback at a low confidence rather than
// being marked unsupported.
func (m *ComponentMapper) Discover() *blockwright.CapabilityMap {
	caps := make(map[blockwright.Primitive]blockwright.Capability, len(corePrimitives)+len(probes)+1)
	for _, p := range corePrimitives {
		caps[p] = blockwright.Capability{
			Primitive:  p,
			Block:      "core/" + string(p),
			Supported:  true,
			Confidence: CoreConfidence,
		}
	}
	caps[blockwright.PrimitiveGallery] = blockwright.Capability{
		Primitive:  blockwright.PrimitiveGallery,
		Block:      "core/gallery",
		Supported:  true,
		Confidence: GalleryConfidence,
	}

	for _, p := range probes {
		c := blockwright.Capability{
			Primitive:  p.primitive,
			Block:      p.fallback,
			Supported:  true,
			Confidence: p.fallbackConfidence,
		}
		if alt := m.firstRegistered(p.known); alt != "" {
			c.Alternate = alt
			c.Confidence = p.enhancedConfidence
			c.BlockConfidence = p.fallbackConfidence
		}
		caps[p.primitive] = c
	}

	return &blockwright.CapabilityMap{Capabilities: caps}
}

func (m *ComponentMapper) firstRegistered(names []string) string {
	if m.Registry == nil {
		return ""
	}
	for _, name := range names {
		if m.Registry.IsPrimitiveRegistered(name) {
			return name
		}
	}
	return ""
}
