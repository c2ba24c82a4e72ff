package elementor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Ensure Renderer implements blockwright.Renderer at compile time.
var _ blockwright.Renderer = (*Renderer)(nil)

// element is one node of the widget tree.
type element struct {
	ID         string          `json:"id"`
	ElType     string          `json:"elType"`
	WidgetType string          `json:"widgetType,omitempty"`
	Settings   map[string]any  `json:"settings"`
	Elements   json.RawMessage `json:"elements"`
	IsInner    bool            `json:"isInner"`
}

// Renderer serializes content nodes as widget tree elements.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Target returns the render target this renderer produces.
func (r *Renderer) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetWidgets
}

// Render serializes nodes as comma-separated JSON elements, ready to be
// placed inside an elements array.
func (r *Renderer) Render(nodes []*blockwright.ContentNode) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		el, err := renderNode(n)
		if err != nil {
			return "", err
		}
		data, err := marshal(el)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, ","), nil
}

// Wrap places rendered elements in a container whose custom attributes carry
// the claim tag.
func (r *Renderer) Wrap(rendered string, tag blockwright.ClaimTag) string {
	return container("blockwright-claim", [][2]string{
		{"data-claim-id", tag.ClaimID},
		{"data-governance-version", tag.GovernanceVersion},
		{"data-template", string(tag.Template)},
		{"data-theme", tag.Theme},
	}, rendered)
}

// Receipt returns an empty container carrying the claim id.
func (r *Renderer) Receipt(tag blockwright.ClaimTag) string {
	return container("blockwright-receipt", [][2]string{
		{"data-claim-id", tag.ClaimID},
		{"data-claim-state", "frozen"},
	}, "")
}

// Compose joins wrapped containers into the widget tree stored in the side
// channel.
func (r *Renderer) Compose(blocks []string) blockwright.DocumentUpdate {
	return blockwright.DocumentUpdate{SideChannel: []byte("[" + strings.Join(blocks, ",") + "]")}
}

// container builds a container element. Attributes use the "key|value" line
// format of the custom attributes setting.
func container(class string, attrs [][2]string, rendered string) string {
	lines := make([]string, 0, len(attrs))
	for _, kv := range attrs {
		lines = append(lines, kv[0]+"|"+kv[1])
	}
	el := element{
		ID:     newID(),
		ElType: "container",
		Settings: map[string]any{
			"css_classes": class,
			"_attributes": strings.Join(lines, "\n"),
		},
		Elements: json.RawMessage("[" + rendered + "]"),
	}
	data, err := marshal(el)
	if err != nil {
		// Only reachable when rendered is not valid JSON.
		return "{}"
	}
	return string(data)
}

func renderNode(n *blockwright.ContentNode) (element, error) {
	switch n.Type {
	case blockwright.NodeHeading:
		level := n.Level
		if level < 1 || level > 6 {
			level = 2
		}
		return widget("heading", map[string]any{
			"title":       html.EscapeString(n.Text),
			"header_size": fmt.Sprintf("h%d", level),
		}), nil

	case blockwright.NodeParagraph:
		return widget("text-editor", map[string]any{"editor": "<p>" + html.EscapeString(n.Text) + "</p>"}), nil

	case blockwright.NodeList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		var b strings.Builder
		b.WriteString("<" + tag + ">")
		for _, item := range n.Children {
			b.WriteString("<li>" + html.EscapeString(item.Text) + "</li>")
		}
		b.WriteString("</" + tag + ">")
		return widget("text-editor", map[string]any{"editor": b.String()}), nil

	case blockwright.NodeFAQItem:
		var answer string
		for _, child := range n.Children {
			answer += "<p>" + html.EscapeString(child.Text) + "</p>"
		}
		return widget("accordion", map[string]any{
			"tabs": []map[string]any{{
				"_id":         newID(),
				"tab_title":   html.EscapeString(n.Text),
				"tab_content": answer,
			}},
		}), nil

	case blockwright.NodeButton:
		return widget("button", map[string]any{
			"text": html.EscapeString(n.Text),
			"link": map[string]any{"url": n.URL, "is_external": "", "nofollow": ""},
		}), nil

	case blockwright.NodeImage:
		return widget("image", map[string]any{
			"image": map[string]any{"url": n.URL, "alt": n.Text},
		}), nil

	case blockwright.NodeGallery:
		images := make([]map[string]any, 0, len(n.Children))
		for _, img := range n.Children {
			images = append(images, map[string]any{"url": img.URL, "alt": img.Text})
		}
		return widget("image-gallery", map[string]any{"wp_gallery": images}), nil

	case blockwright.NodeQuote:
		cite, _ := n.Attrs["citation"].(string)
		return widget("testimonial", map[string]any{
			"testimonial_content": html.EscapeString(n.Text),
			"testimonial_name":    html.EscapeString(cite),
		}), nil

	case blockwright.NodeGroup:
		children := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			el, err := renderNode(child)
			if err != nil {
				return element{}, err
			}
			data, err := marshal(el)
			if err != nil {
				return element{}, err
			}
			children = append(children, string(data))
		}
		return element{
			ID:       newID(),
			ElType:   "container",
			Settings: map[string]any{},
			Elements: json.RawMessage("[" + strings.Join(children, ",") + "]"),
			IsInner:  true,
		}, nil
	}
	return element{}, blockwright.Errorf(blockwright.EINVALID, "cannot render %s node as a widget", n.Type)
}

func widget(widgetType string, settings map[string]any) element {
	return element{
		ID:         newID(),
		ElType:     "widget",
		WidgetType: widgetType,
		Settings:   settings,
		Elements:   json.RawMessage("[]"),
	}
}

// marshal encodes v without escaping HTML characters, which the host stores
// as-is.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// newID returns a random element id in the host's short hexadecimal form.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
