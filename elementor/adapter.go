package elementor

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/net/html"
)

// Ensure Adapter implements blockwright.ContentAdapter at compile time.
var _ blockwright.ContentAdapter = (*Adapter)(nil)

// Adapter mutates widget trees stored in the document side channel. Edits are
// applied by JSON path, so bytes outside the edited values are preserved.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Target returns the render target this adapter handles.
func (a *Adapter) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetWidgets
}

// InvalidatesCache reports true: the host caches rendered widget CSS and
// markup per document.
func (a *Adapter) InvalidatesCache() bool {
	return true
}

// ChangeHeading rewrites the first element, in document order, that is
// either a heading widget whose title equals OldText or a text-editor widget
// whose HTML contains OldText.
func (a *Adapter) ChangeHeading(doc *blockwright.Document, change blockwright.HeadingChange) (*blockwright.DocumentUpdate, error) {
	root, err := Parse(doc.SideChannel)
	if err != nil {
		return nil, err
	}

	want := bluemonday.Text(change.OldText)
	newText := html.EscapeString(change.NewText)
	var edits map[string]string

	_, matched := blockwright.Traverse(root, func(n *blockwright.ContentNode) (*blockwright.ContentNode, bool) {
		switch n.Type {
		case blockwright.NodeHeading:
			if n.Text != want {
				return nil, false
			}
			// Re-escaping identical visible text would change bytes only.
			if bluemonday.Text(change.NewText) == n.Text && (change.Level == 0 || change.Level == n.Level) {
				return n, true
			}
			edits = map[string]string{nodePath(n) + ".settings.title": newText}
			if change.Level != 0 {
				edits[nodePath(n)+".settings.header_size"] = fmt.Sprintf("h%d", change.Level)
			}
			return n, true

		case blockwright.NodeParagraph:
			editor := n.Markup[0]
			old, ok := findInEditor(editor, change.OldText)
			if !ok {
				return nil, false
			}
			// A replacement that contains the old text would match again.
			if strings.Contains(newText, old) && strings.Contains(editor, newText) {
				return nil, false
			}
			edits = map[string]string{nodePath(n) + ".settings.editor": strings.Replace(editor, old, newText, 1)}
			return n, true
		}
		return nil, false
	})
	if !matched {
		return nil, blockwright.Errorf(blockwright.ENOTFOUND, "heading %q not found", change.OldText)
	}

	data := doc.SideChannel
	for _, path := range sortedKeys(edits) {
		if data, err = sjson.SetBytes(data, path, edits[path]); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return &blockwright.DocumentUpdate{SideChannel: data}, nil
}

// AppendContent adds a widget to the last structural container in document
// order, or prepends it to the first one for PositionStart. A tree without
// containers is left untouched and reported as ENOTFOUND.
func (a *Adapter) AppendContent(doc *blockwright.Document, block blockwright.ContentBlock) (*blockwright.DocumentUpdate, error) {
	root, err := Parse(doc.SideChannel)
	if err != nil {
		return nil, err
	}

	var containers []*blockwright.ContentNode
	blockwright.Walk(root, func(n *blockwright.ContentNode) bool {
		if n.Type == blockwright.NodeGroup {
			containers = append(containers, n)
		}
		return true
	})
	if len(containers) == 0 {
		return nil, blockwright.Errorf(blockwright.ENOTFOUND, "widget tree has no container to append to")
	}

	widget, err := marshal(newContentWidget(block.WidgetType, block.HTML))
	if err != nil {
		return nil, err
	}

	var data []byte
	if block.Position == blockwright.PositionStart {
		path := nodePath(containers[0]) + ".elements"
		raws := []string{string(widget)}
		for _, el := range gjson.GetBytes(doc.SideChannel, path).Array() {
			raws = append(raws, el.Raw)
		}
		data, err = sjson.SetRawBytes(doc.SideChannel, path, []byte("["+strings.Join(raws, ",")+"]"))
	} else {
		path := nodePath(containers[len(containers)-1]) + ".elements"
		if gjson.GetBytes(doc.SideChannel, path).IsArray() {
			data, err = sjson.SetRawBytes(doc.SideChannel, path+".-1", widget)
		} else {
			data, err = sjson.SetRawBytes(doc.SideChannel, path, []byte("["+string(widget)+"]"))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert widget: %w", err)
	}
	return &blockwright.DocumentUpdate{SideChannel: data}, nil
}

// findInEditor returns the form of text present in editor: as given, or
// entity-escaped the way the editor stores it.
func findInEditor(editor, text string) (string, bool) {
	if strings.Contains(editor, text) {
		return text, true
	}
	if escaped := html.EscapeString(text); escaped != text && strings.Contains(editor, escaped) {
		return escaped, true
	}
	return "", false
}

// newContentWidget builds the widget that carries appended HTML.
func newContentWidget(widgetType, content string) element {
	if widgetType == "" {
		widgetType = "text-editor"
	}
	key := "editor"
	switch widgetType {
	case "html":
		key = "html"
	case "heading":
		key = "title"
	}
	return element{
		ID:         newID(),
		ElType:     "widget",
		WidgetType: widgetType,
		Settings:   map[string]any{key: content},
		Elements:   []byte("[]"),
	}
}
