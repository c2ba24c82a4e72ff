// Package elementor parses, mutates and renders documents whose content is a
// JSON widget tree stored in the document side channel.
package elementor

import (
	"strconv"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"github.com/tidwall/gjson"
)

// Element types that hold other elements.
var structural = map[string]bool{
	"section":   true,
	"container": true,
	"column":    true,
}

// widgetTypes maps widget types to abstract node types.
var widgetTypes = map[string]blockwright.NodeType{
	"heading":       blockwright.NodeHeading,
	"text-editor":   blockwright.NodeParagraph,
	"button":        blockwright.NodeButton,
	"icon-list":     blockwright.NodeList,
	"image":         blockwright.NodeImage,
	"image-gallery": blockwright.NodeGallery,
	"gallery":       blockwright.NodeGallery,
	"accordion":     blockwright.NodeFAQItem,
	"toggle":        blockwright.NodeFAQItem,
	"testimonial":   blockwright.NodeQuote,
}

// Parse reads a widget tree into a ContentNode tree rooted at a NodeDocument
// node. Every element node records its JSON path in Attrs["path"] so edits
// can be applied to the original bytes. Text-editor nodes keep their raw
// editor HTML in Markup[0].
func Parse(data []byte) (*blockwright.ContentNode, error) {
	root := &blockwright.ContentNode{Type: blockwright.NodeDocument}
	if len(strings.TrimSpace(string(data))) == 0 {
		return root, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, blockwright.Errorf(blockwright.EINVALID, "widget tree is not valid JSON")
	}
	res := gjson.ParseBytes(data)
	if !res.IsArray() {
		return nil, blockwright.Errorf(blockwright.EINVALID, "widget tree must be a JSON array")
	}
	root.Children = parseElements(res, "")
	return root, nil
}

func parseElements(arr gjson.Result, prefix string) []*blockwright.ContentNode {
	var nodes []*blockwright.ContentNode
	i := 0
	arr.ForEach(func(_, el gjson.Result) bool {
		nodes = append(nodes, parseElement(el, prefix+strconv.Itoa(i)))
		i++
		return true
	})
	return nodes
}

func parseElement(el gjson.Result, path string) *blockwright.ContentNode {
	elType := el.Get("elType").String()
	widgetType := el.Get("widgetType").String()
	settings := el.Get("settings")

	node := &blockwright.ContentNode{
		Type: blockwright.NodeRaw,
		Name: elType,
		Attrs: map[string]any{
			"path": path,
			"id":   el.Get("id").String(),
		},
	}

	if structural[elType] {
		node.Type = blockwright.NodeGroup
	} else if elType == "widget" {
		node.Name = widgetType
		if t, ok := widgetTypes[widgetType]; ok {
			node.Type = t
		}
	}

	switch node.Type {
	case blockwright.NodeHeading:
		node.Text = bluemonday.Text(settings.Get("title").String())
		node.Level = parseHeaderSize(settings.Get("header_size").String())
	case blockwright.NodeParagraph:
		editor := settings.Get("editor").String()
		node.Markup = []string{editor}
		node.Text = bluemonday.Text(editor)
	case blockwright.NodeButton:
		node.Text = bluemonday.Text(settings.Get("text").String())
		node.URL = settings.Get("link.url").String()
	}

	if elements := el.Get("elements"); elements.IsArray() {
		node.Children = parseElements(elements, path+".elements.")
	}
	return node
}

// parseHeaderSize converts "h1".."h6" to a level. Elementor defaults to h2.
func parseHeaderSize(s string) int {
	if len(s) == 2 && s[0] == 'h' && s[1] >= '1' && s[1] <= '6' {
		return int(s[1] - '0')
	}
	return 2
}

func nodePath(n *blockwright.ContentNode) string {
	path, _ := n.Attrs["path"].(string)
	return path
}
