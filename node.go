package blockwright

// NodeType identifies the abstract kind of a ContentNode, independent of the
// format it was parsed from or will be serialized to.
type NodeType string

// Node types shared by every serialization format.
const (
	NodeDocument  NodeType = "document"
	NodeHeading   NodeType = "heading"
	NodeParagraph NodeType = "paragraph"
	NodeList      NodeType = "list"
	NodeListItem  NodeType = "listItem"
	NodeButton    NodeType = "button"
	NodeFAQItem   NodeType = "faqItem"
	NodeGallery   NodeType = "gallery"
	NodeGroup     NodeType = "group"
	NodeImage     NodeType = "image"
	NodeQuote     NodeType = "quote"

	// NodeRaw holds content the parser did not recognize. It is kept
	// verbatim so that serialization does not lose it.
	NodeRaw NodeType = "raw"
)

// ContentNode is a generic structured unit of content.
//
// Parsers fill Name, RawAttrs and Markup so that an untouched tree serializes
// back to the exact bytes it was parsed from. Markup holds literal fragments
// interleaved with Children: Markup[0], Children[0], Markup[1], ...,
// Children[n-1], Markup[n]. Builders constructing new content leave Markup
// empty and let the renderer generate it.
type ContentNode struct {
	Type     NodeType       `json:"type"`
	Name     string         `json:"name,omitempty"`
	Text     string         `json:"text,omitempty"`
	Level    int            `json:"level,omitempty"`
	Ordered  bool           `json:"ordered,omitempty"`
	URL      string         `json:"url,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	RawAttrs string         `json:"-"`
	Markup   []string       `json:"-"`
	Children []*ContentNode `json:"children,omitempty"`
}

// Clone returns a shallow copy of n with its own Attrs, Markup and Children
// slices. Child nodes themselves are shared.
func (n *ContentNode) Clone() *ContentNode {
	if n == nil {
		return nil
	}
	other := *n
	if n.Attrs != nil {
		other.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			other.Attrs[k] = v
		}
	}
	if n.Markup != nil {
		other.Markup = append([]string(nil), n.Markup...)
	}
	if n.Children != nil {
		other.Children = append([]*ContentNode(nil), n.Children...)
	}
	return &other
}

// Visitor inspects a node during traversal. When it returns matched=true the
// returned node replaces the visited one and traversal stops.
type Visitor func(n *ContentNode) (replacement *ContentNode, matched bool)

// Traverse walks the tree rooted at n depth-first in document order and
// returns a rebuilt tree in which the first node accepted by visit has been
// replaced. Nodes on the path to the match are copied; everything else is
// shared with the input, which is never modified. When nothing matches the
// original root is returned with matched=false.
func Traverse(n *ContentNode, visit Visitor) (*ContentNode, bool) {
	if n == nil {
		return nil, false
	}
	if repl, ok := visit(n); ok {
		return repl, true
	}

	for i, child := range n.Children {
		rebuilt, ok := Traverse(child, visit)
		if !ok {
			continue
		}
		parent := n.Clone()
		parent.Children[i] = rebuilt
		return parent, true
	}
	return n, false
}

// Walk calls fn for every node in depth-first document order until fn
// returns false.
func Walk(n *ContentNode, fn func(*ContentNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// NewHeading returns a heading node. Levels outside 1-6 default to 2.
func NewHeading(level int, text string) *ContentNode {
	if level < 1 || level > 6 {
		level = 2
	}
	return &ContentNode{Type: NodeHeading, Level: level, Text: text}
}

// NewParagraph returns a paragraph node.
func NewParagraph(text string) *ContentNode {
	return &ContentNode{Type: NodeParagraph, Text: text}
}

// NewList returns a list node with one listItem child per item.
func NewList(ordered bool, items ...string) *ContentNode {
	list := &ContentNode{Type: NodeList, Ordered: ordered}
	for _, item := range items {
		list.Children = append(list.Children, &ContentNode{Type: NodeListItem, Text: item})
	}
	return list
}

// NewFAQItem returns a question/answer node. The question is stored as Text
// and the answer as a single paragraph child.
func NewFAQItem(question, answer string) *ContentNode {
	return &ContentNode{
		Type:     NodeFAQItem,
		Text:     question,
		Children: []*ContentNode{NewParagraph(answer)},
	}
}

// NewButton returns a button node linking to url.
func NewButton(text, url string) *ContentNode {
	return &ContentNode{Type: NodeButton, Text: text, URL: url}
}

// NewGallery returns a gallery node with one image child per image.
func NewGallery(images ...Image) *ContentNode {
	gallery := &ContentNode{Type: NodeGallery}
	for _, img := range images {
		gallery.Children = append(gallery.Children, &ContentNode{Type: NodeImage, URL: img.URL, Text: img.Alt})
	}
	return gallery
}

// NewQuote returns a quote node with an optional citation stored in Attrs.
func NewQuote(text, cite string) *ContentNode {
	n := &ContentNode{Type: NodeQuote, Text: text}
	if cite != "" {
		n.Attrs = map[string]any{"citation": cite}
	}
	return n
}

// NewGroup returns a group node wrapping children.
func NewGroup(children ...*ContentNode) *ContentNode {
	return &ContentNode{Type: NodeGroup, Children: children}
}

// Image is a gallery image reference.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}
