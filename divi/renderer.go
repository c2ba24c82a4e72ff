package divi

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blockwright"
	"golang.org/x/net/html"
)

// Ensure Renderer implements blockwright.Renderer at compile time.
var _ blockwright.Renderer = (*Renderer)(nil)

// Renderer serializes content nodes as shortcode modules.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Target returns the render target this renderer produces.
func (r *Renderer) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetShortcode
}

// Render serializes nodes as modules meant to sit inside a column.
func (r *Renderer) Render(nodes []*blockwright.ContentNode) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := renderNode(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Wrap places modules in a section whose attributes carry the claim tag.
func (r *Renderer) Wrap(rendered string, tag blockwright.ClaimTag) string {
	return openSection([][2]string{
		{"module_class", "blockwright-claim"},
		{"bw_claim_id", tag.ClaimID},
		{"bw_governance_version", tag.GovernanceVersion},
		{"bw_template", string(tag.Template)},
		{"bw_theme", tag.Theme},
	}) + rendered + closeSection
}

// Receipt returns an empty section carrying the claim id.
func (r *Renderer) Receipt(tag blockwright.ClaimTag) string {
	return fmt.Sprintf(`[et_pb_section module_class="blockwright-receipt" bw_claim_id="%s" bw_claim_state="frozen"][/et_pb_section]`, attr(tag.ClaimID))
}

// Compose concatenates sections into the document body.
func (r *Renderer) Compose(blocks []string) blockwright.DocumentUpdate {
	body := strings.Join(blocks, "")
	return blockwright.DocumentUpdate{Body: &body}
}

func renderNode(b *strings.Builder, n *blockwright.ContentNode) error {
	switch n.Type {
	case blockwright.NodeHeading:
		level := n.Level
		if level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(b, "[et_pb_text]<h%d>%s</h%d>[/et_pb_text]", level, html.EscapeString(n.Text), level)

	case blockwright.NodeParagraph:
		fmt.Fprintf(b, "[et_pb_text]<p>%s</p>[/et_pb_text]", html.EscapeString(n.Text))

	case blockwright.NodeList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		b.WriteString("[et_pb_text]<" + tag + ">")
		for _, item := range n.Children {
			b.WriteString("<li>" + html.EscapeString(item.Text) + "</li>")
		}
		b.WriteString("</" + tag + ">[/et_pb_text]")

	case blockwright.NodeFAQItem:
		fmt.Fprintf(b, `[et_pb_toggle title="%s"]`, attr(n.Text))
		for _, child := range n.Children {
			b.WriteString("<p>" + html.EscapeString(child.Text) + "</p>")
		}
		b.WriteString("[/et_pb_toggle]")

	case blockwright.NodeButton:
		fmt.Fprintf(b, `[et_pb_button button_url="%s" button_text="%s"][/et_pb_button]`, attr(n.URL), attr(n.Text))

	case blockwright.NodeImage:
		fmt.Fprintf(b, `[et_pb_image src="%s" alt="%s"][/et_pb_image]`, attr(n.URL), attr(n.Text))

	case blockwright.NodeGallery:
		b.WriteString("[et_pb_text]")
		for _, img := range n.Children {
			fmt.Fprintf(b, `<figure><img src="%s" alt="%s"/></figure>`, html.EscapeString(img.URL), html.EscapeString(img.Text))
		}
		b.WriteString("[/et_pb_text]")

	case blockwright.NodeQuote:
		cite, _ := n.Attrs["citation"].(string)
		fmt.Fprintf(b, `[et_pb_testimonial author="%s"]<p>%s</p>[/et_pb_testimonial]`, attr(cite), html.EscapeString(n.Text))

	case blockwright.NodeGroup:
		for _, child := range n.Children {
			if err := renderNode(b, child); err != nil {
				return err
			}
		}

	default:
		return blockwright.Errorf(blockwright.EINVALID, "cannot render %s node as a module", n.Type)
	}
	return nil
}
