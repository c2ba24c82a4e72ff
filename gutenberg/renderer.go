package gutenberg

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blockwright"
	"golang.org/x/net/html"
)

// Ensure Renderer implements blockwright.Renderer at compile time.
var _ blockwright.Renderer = (*Renderer)(nil)

// Renderer serializes content nodes as comment-delimited blocks.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Target returns the render target this renderer produces.
func (r *Renderer) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetBlocks
}

// Render serializes nodes as blocks separated by blank lines.
func (r *Renderer) Render(nodes []*blockwright.ContentNode) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := renderNode(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

// Wrap embeds rendered blocks in a group block carrying the claim tag as
// data attributes.
func (r *Renderer) Wrap(rendered string, tag blockwright.ClaimTag) string {
	return fmt.Sprintf("<!-- wp:group {\"className\":\"blockwright-claim\"} -->\n"+
		"<div class=\"wp-block-group blockwright-claim\" data-claim-id=\"%s\" data-governance-version=\"%s\" data-template=\"%s\" data-theme=\"%s\">\n%s\n</div>\n"+
		"<!-- /wp:group -->",
		attr(tag.ClaimID), attr(tag.GovernanceVersion), attr(string(tag.Template)), attr(tag.Theme), rendered)
}

// Receipt returns an empty hidden element carrying the claim id.
func (r *Renderer) Receipt(tag blockwright.ClaimTag) string {
	return fmt.Sprintf("<!-- wp:html -->\n<div hidden class=\"blockwright-receipt\" data-claim-id=\"%s\" data-claim-state=\"frozen\"></div>\n<!-- /wp:html -->",
		attr(tag.ClaimID))
}

// Compose joins blocks into the document body.
func (r *Renderer) Compose(blocks []string) blockwright.DocumentUpdate {
	body := strings.Join(blocks, "\n\n")
	return blockwright.DocumentUpdate{Body: &body}
}

func renderNode(n *blockwright.ContentNode) (string, error) {
	switch n.Type {
	case blockwright.NodeHeading:
		level := n.Level
		if level < 1 || level > 6 {
			level = 2
		}
		opener := "<!-- wp:heading -->"
		if level != 2 {
			opener = fmt.Sprintf("<!-- wp:heading {\"level\":%d} -->", level)
		}
		return fmt.Sprintf("%s\n<h%d class=\"wp-block-heading\">%s</h%d>\n<!-- /wp:heading -->", opener, level, html.EscapeString(n.Text), level), nil

	case blockwright.NodeParagraph:
		return paragraph(n.Text), nil

	case blockwright.NodeList:
		tag, opener := "ul", "<!-- wp:list -->"
		if n.Ordered {
			tag, opener = "ol", "<!-- wp:list {\"ordered\":true} -->"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s\n<%s class=\"wp-block-list\">", opener, tag)
		for _, item := range n.Children {
			fmt.Fprintf(&b, "<!-- wp:list-item -->\n<li>%s</li>\n<!-- /wp:list-item -->", html.EscapeString(item.Text))
		}
		fmt.Fprintf(&b, "</%s>\n<!-- /wp:list -->", tag)
		return b.String(), nil

	case blockwright.NodeFAQItem:
		return faqItem(n), nil

	case blockwright.NodeButton:
		return fmt.Sprintf("<!-- wp:buttons -->\n<div class=\"wp-block-buttons\"><!-- wp:button -->\n"+
			"<div class=\"wp-block-button\"><a class=\"wp-block-button__link wp-element-button\" href=\"%s\">%s</a></div>\n"+
			"<!-- /wp:button --></div>\n<!-- /wp:buttons -->", attr(n.URL), html.EscapeString(n.Text)), nil

	case blockwright.NodeGallery:
		var b strings.Builder
		b.WriteString("<!-- wp:gallery {\"linkTo\":\"none\"} -->\n<figure class=\"wp-block-gallery has-nested-images columns-default is-cropped\">")
		for _, img := range n.Children {
			b.WriteString(image(img))
		}
		b.WriteString("</figure>\n<!-- /wp:gallery -->")
		return b.String(), nil

	case blockwright.NodeImage:
		return image(n), nil

	case blockwright.NodeQuote:
		cite, _ := n.Attrs["citation"].(string)
		var citation string
		if cite != "" {
			citation = "<cite>" + html.EscapeString(cite) + "</cite>"
		}
		return fmt.Sprintf("<!-- wp:quote -->\n<blockquote class=\"wp-block-quote\">%s%s</blockquote>\n<!-- /wp:quote -->", paragraph(n.Text), citation), nil

	case blockwright.NodeGroup:
		var b strings.Builder
		b.WriteString("<!-- wp:group {\"layout\":{\"type\":\"constrained\"}} -->\n<div class=\"wp-block-group\">")
		for _, child := range n.Children {
			s, err := renderNode(child)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteString("</div>\n<!-- /wp:group -->")
		return b.String(), nil
	}
	return "", blockwright.Errorf(blockwright.EINVALID, "cannot render %s node as a block", n.Type)
}

func paragraph(text string) string {
	return "<!-- wp:paragraph -->\n<p>" + html.EscapeString(text) + "</p>\n<!-- /wp:paragraph -->"
}

func image(n *blockwright.ContentNode) string {
	return fmt.Sprintf("<!-- wp:image -->\n<figure class=\"wp-block-image\"><img src=\"%s\" alt=\"%s\"/></figure>\n<!-- /wp:image -->",
		attr(n.URL), attr(n.Text))
}

// faqItem renders a question and answer as a disclosure-triangle details
// block.
func faqItem(n *blockwright.ContentNode) string {
	var answer string
	for _, child := range n.Children {
		answer += paragraph(child.Text)
	}
	return fmt.Sprintf("<!-- wp:details -->\n<details class=\"wp-block-details\"><summary>%s</summary>%s</details>\n<!-- /wp:details -->",
		html.EscapeString(n.Text), answer)
}

func attr(s string) string {
	return html.EscapeString(s)
}
