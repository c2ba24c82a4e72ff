// Package classic renders content nodes as plain markup for documents that
// have no structured editor format. There is no mutation adapter for plain
// markup; edits to such documents are left to a human.
package classic

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blockwright"
	"golang.org/x/net/html"
)

// Ensure Renderer implements blockwright.Renderer at compile time.
var _ blockwright.Renderer = (*Renderer)(nil)

// Renderer serializes content nodes as plain HTML elements.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Target returns the render target this renderer produces.
func (r *Renderer) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetHTML
}

// Render serializes nodes one element per line.
func (r *Renderer) Render(nodes []*blockwright.ContentNode) (string, error) {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err := renderNode(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Wrap embeds rendered markup in a section carrying the claim tag as data
// attributes.
func (r *Renderer) Wrap(rendered string, tag blockwright.ClaimTag) string {
	return fmt.Sprintf("<section class=\"blockwright-claim\" data-claim-id=\"%s\" data-governance-version=\"%s\" data-template=\"%s\" data-theme=\"%s\">\n%s\n</section>",
		esc(tag.ClaimID), esc(tag.GovernanceVersion), esc(string(tag.Template)), esc(tag.Theme), rendered)
}

// Receipt returns an empty hidden element carrying the claim id.
func (r *Renderer) Receipt(tag blockwright.ClaimTag) string {
	return fmt.Sprintf("<div hidden class=\"blockwright-receipt\" data-claim-id=\"%s\" data-claim-state=\"frozen\"></div>", esc(tag.ClaimID))
}

// Compose joins sections into the document body.
func (r *Renderer) Compose(blocks []string) blockwright.DocumentUpdate {
	body := strings.Join(blocks, "\n")
	return blockwright.DocumentUpdate{Body: &body}
}

func renderNode(b *strings.Builder, n *blockwright.ContentNode) error {
	switch n.Type {
	case blockwright.NodeHeading:
		level := n.Level
		if level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(b, "<h%d>%s</h%d>", level, esc(n.Text), level)

	case blockwright.NodeParagraph:
		b.WriteString("<p>" + esc(n.Text) + "</p>")

	case blockwright.NodeList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">")
		for _, item := range n.Children {
			b.WriteString("<li>" + esc(item.Text) + "</li>")
		}
		b.WriteString("</" + tag + ">")

	case blockwright.NodeFAQItem:
		b.WriteString("<details><summary>" + esc(n.Text) + "</summary>")
		for _, child := range n.Children {
			b.WriteString("<p>" + esc(child.Text) + "</p>")
		}
		b.WriteString("</details>")

	case blockwright.NodeButton:
		fmt.Fprintf(b, "<p><a class=\"button\" href=\"%s\">%s</a></p>", esc(n.URL), esc(n.Text))

	case blockwright.NodeImage:
		fmt.Fprintf(b, "<figure><img src=\"%s\" alt=\"%s\"/></figure>", esc(n.URL), esc(n.Text))

	case blockwright.NodeGallery:
		b.WriteString("<div class=\"gallery\">")
		for _, img := range n.Children {
			fmt.Fprintf(b, "<figure><img src=\"%s\" alt=\"%s\"/></figure>", esc(img.URL), esc(img.Text))
		}
		b.WriteString("</div>")

	case blockwright.NodeQuote:
		b.WriteString("<blockquote><p>" + esc(n.Text) + "</p>")
		if cite, _ := n.Attrs["citation"].(string); cite != "" {
			b.WriteString("<cite>" + esc(cite) + "</cite>")
		}
		b.WriteString("</blockquote>")

	case blockwright.NodeGroup:
		b.WriteString("<div>")
		for _, child := range n.Children {
			if err := renderNode(b, child); err != nil {
				return err
			}
		}
		b.WriteString("</div>")

	default:
		return blockwright.Errorf(blockwright.EINVALID, "cannot render %s node as markup", n.Type)
	}
	return nil
}

func esc(s string) string {
	return html.EscapeString(s)
}
