package blockwright

// ThemeIdentity identifies the active host theme.
type ThemeIdentity struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Parent  string `json:"parent,omitempty" yaml:"parent"`
}

// String returns the theme name, qualified with its version when known.
func (t ThemeIdentity) String() string {
	if t.Name == "" {
		return "unknown"
	}
	if t.Version == "" {
		return t.Name
	}
	return t.Name + "@" + t.Version
}

// TokenCategory groups design tokens.
type TokenCategory string

// Token categories.
const (
	CategoryColor      TokenCategory = "color"
	CategoryTypography TokenCategory = "typography"
	CategorySpacing    TokenCategory = "spacing"
	CategoryLayout     TokenCategory = "layout"
)

// TokenSource records how a token value was resolved.
type TokenSource string

// Token sources, from most to least trustworthy.
const (
	SourceConcrete  TokenSource = "concrete"
	SourceReference TokenSource = "reference"
	SourceDefault   TokenSource = "default"
)

// Weight returns the contribution of the source to extraction confidence.
func (s TokenSource) Weight() float64 {
	switch s {
	case SourceConcrete:
		return 1.0
	case SourceReference:
		return 0.5
	default:
		return 0.0
	}
}

// Token is a single resolved design value.
type Token struct {
	Category TokenCategory `json:"category"`
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Source   TokenSource   `json:"source"`
}

// DesignProfile is the set of design tokens extracted from the host theme.
type DesignProfile struct {
	Theme      ThemeIdentity `json:"theme"`
	Tokens     []Token       `json:"tokens"`
	Confidence float64       `json:"confidence"`
}

// Token returns the token with the given category and name.
func (p *DesignProfile) Token(category TokenCategory, name string) (Token, bool) {
	for _, t := range p.Tokens {
		if t.Category == category && t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}

// ThemeConfig is the host's read-only structured theme configuration.
type ThemeConfig interface {
	// Lookup returns the value at the nested key path. Values are strings,
	// numbers, booleans, []any or map[string]any.
	Lookup(path ...string) (any, bool)
}

// PrimitiveRegistry reports which content primitives the host can render.
type PrimitiveRegistry interface {
	IsPrimitiveRegistered(name string) bool
}
