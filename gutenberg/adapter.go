package gutenberg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"golang.org/x/net/html"
)

// Ensure Adapter implements blockwright.ContentAdapter at compile time.
var _ blockwright.ContentAdapter = (*Adapter)(nil)

var headingTagRe = regexp.MustCompile(`(?s)<h([1-6])([^>]*)>(.*?)</h[1-6]>`)

// Adapter mutates comment-delimited block documents stored in the body.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Target returns the render target this adapter handles.
func (a *Adapter) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetBlocks
}

// InvalidatesCache reports false: block documents are rendered on request.
func (a *Adapter) InvalidatesCache() bool {
	return false
}

// ChangeHeading rewrites the first heading block, in document order, whose
// visible text equals the visible text of change.OldText.
func (a *Adapter) ChangeHeading(doc *blockwright.Document, change blockwright.HeadingChange) (*blockwright.DocumentUpdate, error) {
	root, err := Parse(doc.Body)
	if err != nil {
		return nil, err
	}

	want := bluemonday.Text(change.OldText)
	var rewriteErr error
	rebuilt, matched := blockwright.Traverse(root, func(n *blockwright.ContentNode) (*blockwright.ContentNode, bool) {
		if n.Type != blockwright.NodeHeading || n.Text != want {
			return nil, false
		}
		repl, err := rewriteHeading(n, change.NewText, change.Level)
		if err != nil {
			rewriteErr = err
			return n, true
		}
		return repl, true
	})
	if rewriteErr != nil {
		return nil, rewriteErr
	}
	if !matched {
		return nil, blockwright.Errorf(blockwright.ENOTFOUND, "heading %q not found", change.OldText)
	}

	body := Serialize(rebuilt)
	return &blockwright.DocumentUpdate{Body: &body}, nil
}

// AppendContent adds the block's HTML as a custom HTML block at the start or
// end of the document.
func (a *Adapter) AppendContent(doc *blockwright.Document, block blockwright.ContentBlock) (*blockwright.DocumentUpdate, error) {
	b := "<!-- wp:html -->\n" + block.HTML + "\n<!-- /wp:html -->"
	body := joinBlocks(doc.Body, b, block.Position)
	return &blockwright.DocumentUpdate{Body: &body}, nil
}

func rewriteHeading(n *blockwright.ContentNode, text string, level int) (*blockwright.ContentNode, error) {
	if level == 0 {
		level = n.Level
	}
	repl := n.Clone()
	repl.Text = bluemonday.Text(text)
	repl.Level = level

	replaced := false
	for i, frag := range repl.Markup {
		loc := headingTagRe.FindStringSubmatchIndex(frag)
		if loc == nil {
			continue
		}
		tag := fmt.Sprintf("<h%d%s>%s</h%d>", level, frag[loc[4]:loc[5]], html.EscapeString(text), level)
		repl.Markup[i] = frag[:loc[0]] + tag + frag[loc[1]:]
		replaced = true
		break
	}
	if !replaced {
		repl.Markup = []string{fmt.Sprintf("\n<h%d class=\"wp-block-heading\">%s</h%d>\n", level, html.EscapeString(text), level)}
		repl.Children = nil
	}

	if level != n.Level {
		if repl.Attrs == nil {
			repl.Attrs = map[string]any{}
		}
		// Level 2 is the block default and is not serialized.
		if level == 2 {
			delete(repl.Attrs, "level")
		} else {
			repl.Attrs["level"] = level
		}
		raw, err := encodeAttrs(repl.Attrs)
		if err != nil {
			return nil, err
		}
		repl.RawAttrs = raw
	}
	return repl, nil
}

func joinBlocks(body, block string, pos blockwright.Position) string {
	if strings.TrimSpace(body) == "" {
		return block
	}
	if pos == blockwright.PositionStart {
		return block + "\n\n" + body
	}
	return body + "\n\n" + block
}
