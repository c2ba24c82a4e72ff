// Package gutenberg parses, mutates and renders documents serialized as
// comment-delimited block trees.
package gutenberg

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
)

// delimiterRe matches block delimiters:
//
//	<!-- wp:name {"attr":1} -->   opener
//	<!-- /wp:name -->             closer
//	<!-- wp:name {"attr":1} /-->  void block
//
// Serialized attributes never contain "--", so the lazy attribute group
// cannot run past the end of the comment.
var delimiterRe = regexp.MustCompile(`(?s)<!--\s+(/?)wp:([a-z][a-z0-9_-]*(?:/[a-z][a-z0-9_-]*)?)\s+(\{.*?\}\s+)?(/?)-->`)

// blockTypes maps block names to abstract node types.
var blockTypes = map[string]blockwright.NodeType{
	"core/heading":        blockwright.NodeHeading,
	"core/paragraph":      blockwright.NodeParagraph,
	"core/list":           blockwright.NodeList,
	"core/list-item":      blockwright.NodeListItem,
	"core/buttons":        blockwright.NodeGroup,
	"core/button":         blockwright.NodeButton,
	"core/details":        blockwright.NodeFAQItem,
	"yoast/faq-block":     blockwright.NodeFAQItem,
	"rank-math/faq-block": blockwright.NodeFAQItem,
	"core/gallery":        blockwright.NodeGallery,
	"core/image":          blockwright.NodeImage,
	"core/quote":          blockwright.NodeQuote,
	"core/group":          blockwright.NodeGroup,
	"core/columns":        blockwright.NodeGroup,
	"core/column":         blockwright.NodeGroup,
	"core/cover":          blockwright.NodeGroup,
}

// Parse parses a serialized block document into a ContentNode tree rooted at
// a NodeDocument node. Markup outside of blocks is kept in the Markup
// fragments of the enclosing node so that Serialize reproduces the input.
func Parse(src string) (*blockwright.ContentNode, error) {
	root := &blockwright.ContentNode{Type: blockwright.NodeDocument, Markup: []string{""}}
	stack := []*blockwright.ContentNode{root}
	pos := 0

	for _, m := range delimiterRe.FindAllStringSubmatchIndex(src, -1) {
		top := stack[len(stack)-1]
		appendMarkup(top, src[pos:m[0]])
		pos = m[1]

		closer := m[3] > m[2]
		name := normalizeName(src[m[4]:m[5]])
		var rawAttrs string
		if m[6] >= 0 {
			rawAttrs = strings.TrimSpace(src[m[6]:m[7]])
		}
		void := m[9] > m[8]

		if closer {
			if len(stack) == 1 || top.Name != name {
				return nil, blockwright.Errorf(blockwright.EINVALID, "unexpected closing delimiter for %s", name)
			}
			finish(top)
			stack = stack[:len(stack)-1]
			continue
		}

		node, err := newBlock(name, rawAttrs)
		if err != nil {
			return nil, err
		}
		appendChild(top, node)
		if void {
			finish(node)
			continue
		}
		node.Markup = []string{""}
		stack = append(stack, node)
	}

	if len(stack) > 1 {
		return nil, blockwright.Errorf(blockwright.EINVALID, "unclosed block %s", stack[len(stack)-1].Name)
	}
	appendMarkup(root, src[pos:])
	return root, nil
}

// Serialize writes a tree produced by Parse back to its serialized form.
// Nodes with nil Markup are written as void blocks.
func Serialize(root *blockwright.ContentNode) string {
	var b strings.Builder
	writeInner(&b, root)
	return b.String()
}

func writeInner(b *strings.Builder, n *blockwright.ContentNode) {
	for i, child := range n.Children {
		if i < len(n.Markup) {
			b.WriteString(n.Markup[i])
		}
		writeBlock(b, child)
	}
	if len(n.Markup) > len(n.Children) {
		b.WriteString(n.Markup[len(n.Children)])
	}
}

func writeBlock(b *strings.Builder, n *blockwright.ContentNode) {
	name := shortName(n.Name)
	b.WriteString("<!-- wp:")
	b.WriteString(name)
	b.WriteString(" ")
	if n.RawAttrs != "" {
		b.WriteString(n.RawAttrs)
		b.WriteString(" ")
	}
	if n.Markup == nil {
		b.WriteString("/-->")
		return
	}
	b.WriteString("-->")
	writeInner(b, n)
	b.WriteString("<!-- /wp:")
	b.WriteString(name)
	b.WriteString(" -->")
}

func newBlock(name, rawAttrs string) (*blockwright.ContentNode, error) {
	node := &blockwright.ContentNode{Type: blockwright.NodeRaw, Name: name, RawAttrs: rawAttrs}
	if t, ok := blockTypes[name]; ok {
		node.Type = t
	}
	if rawAttrs != "" {
		if err := json.Unmarshal([]byte(rawAttrs), &node.Attrs); err != nil {
			return nil, blockwright.Errorf(blockwright.EINVALID, "invalid attributes for %s: %v", name, err)
		}
	}
	return node, nil
}

// finish derives Text and Level once a block's markup is complete.
func finish(n *blockwright.ContentNode) {
	switch n.Type {
	case blockwright.NodeHeading:
		n.Level = 2
		if lvl, ok := n.Attrs["level"].(float64); ok && lvl >= 1 && lvl <= 6 {
			n.Level = int(lvl)
		}
		n.Text = bluemonday.Text(strings.Join(n.Markup, " "))
	case blockwright.NodeList:
		n.Ordered, _ = n.Attrs["ordered"].(bool)
	case blockwright.NodeParagraph, blockwright.NodeListItem, blockwright.NodeButton, blockwright.NodeQuote:
		n.Text = bluemonday.Text(strings.Join(n.Markup, " "))
	case blockwright.NodeFAQItem:
		if m := summaryRe.FindStringSubmatch(strings.Join(n.Markup, "")); m != nil {
			n.Text = bluemonday.Text(m[1])
		}
	}
}

var summaryRe = regexp.MustCompile(`(?s)<summary[^>]*>(.*?)</summary>`)

func appendMarkup(n *blockwright.ContentNode, s string) {
	n.Markup[len(n.Markup)-1] += s
}

func appendChild(parent, child *blockwright.ContentNode) {
	parent.Children = append(parent.Children, child)
	parent.Markup = append(parent.Markup, "")
}

// normalizeName qualifies core block names: "heading" becomes "core/heading".
func normalizeName(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return "core/" + name
}

// shortName is the inverse of normalizeName, as core block names are
// serialized without their namespace.
func shortName(name string) string {
	return strings.TrimPrefix(name, "core/")
}

// encodeAttrs serializes block attributes. Double hyphens are escaped so the
// attributes cannot terminate the surrounding comment.
func encodeAttrs(attrs map[string]any) (string, error) {
	if len(attrs) == 0 {
		return "", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "--", `\u002d\u002d`), nil
}
