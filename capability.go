package blockwright

// Primitive is an abstract content primitive.
type Primitive string

// Core primitives are always available.
const (
	PrimitiveParagraph Primitive = "paragraph"
	PrimitiveHeading   Primitive = "heading"
	PrimitiveList      Primitive = "list"
	PrimitiveImage     Primitive = "image"
	PrimitiveTable     Primitive = "table"
	PrimitiveColumns   Primitive = "columns"
	PrimitiveGroup     Primitive = "group"
	PrimitiveSeparator Primitive = "separator"
	PrimitiveGallery   Primitive = "gallery"
)

// Optional primitives are probed against the host registry.
const (
	PrimitiveFAQ         Primitive = "faq"
	PrimitiveTestimonial Primitive = "testimonial"
	PrimitiveCTA         Primitive = "cta"
	PrimitiveGrid        Primitive = "grid"
)

// Capability describes how well the host renders one primitive.
type Capability struct {
	Primitive Primitive `json:"primitive"`

	// Block is the core block that can always be constructed for this
	// primitive.
	Block     string `json:"block"`
	Supported bool   `json:"supported"`

	// Confidence describes Alternate when it is set, and Block otherwise.
	Confidence float64 `json:"confidence"`

	// Alternate is the enhanced block discovered on the host, if any.
	Alternate string `json:"alternate,omitempty"`

	// BlockConfidence describes Block when Alternate is set.
	BlockConfidence float64 `json:"blockConfidence,omitempty"`
}

// CapabilityMap is the per-primitive capability table of the host.
type CapabilityMap struct {
	Capabilities map[Primitive]Capability `json:"capabilities"`
}

// Recommendation is the block to use for a content type.
type Recommendation struct {
	Block      string  `json:"block"`
	Confidence float64 `json:"confidence"`
}

// contentTypes maps caller-facing content type names to primitives.
var contentTypes = map[string]Primitive{
	"paragraph":   PrimitiveParagraph,
	"text":        PrimitiveParagraph,
	"heading":     PrimitiveHeading,
	"list":        PrimitiveList,
	"steps":       PrimitiveList,
	"image":       PrimitiveImage,
	"table":       PrimitiveTable,
	"columns":     PrimitiveColumns,
	"group":       PrimitiveGroup,
	"separator":   PrimitiveSeparator,
	"gallery":     PrimitiveGallery,
	"faq":         PrimitiveFAQ,
	"testimonial": PrimitiveTestimonial,
	"cta":         PrimitiveCTA,
	"button":      PrimitiveCTA,
	"grid":        PrimitiveGrid,
}

// DefaultRecommendation is returned for content types with no capability.
var DefaultRecommendation = Recommendation{Block: "core/paragraph", Confidence: 0.5}

// Recommend returns the block to use for contentType, preferring an enhanced
// primitive discovered on the host over the core fallback.
func (m *CapabilityMap) Recommend(contentType string) Recommendation {
	if m == nil {
		return DefaultRecommendation
	}
	p, ok := contentTypes[contentType]
	if !ok {
		return DefaultRecommendation
	}
	c, ok := m.Capabilities[p]
	if !ok || !c.Supported {
		return DefaultRecommendation
	}
	block := c.Block
	if c.Alternate != "" {
		block = c.Alternate
	}
	return Recommendation{Block: block, Confidence: c.Confidence}
}

// Constructible returns the core block used for contentType and its
// confidence, ignoring any enhanced alternate. Renderers only emit core
// blocks, so this is what injected content is scored against.
func (m *CapabilityMap) Constructible(contentType string) Recommendation {
	if m == nil {
		return DefaultRecommendation
	}
	p, ok := contentTypes[contentType]
	if !ok {
		return DefaultRecommendation
	}
	c, ok := m.Capabilities[p]
	if !ok || !c.Supported {
		return DefaultRecommendation
	}
	if c.Alternate != "" {
		return Recommendation{Block: c.Block, Confidence: c.BlockConfidence}
	}
	return Recommendation{Block: c.Block, Confidence: c.Confidence}
}
