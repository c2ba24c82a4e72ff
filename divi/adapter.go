// Package divi mutates and renders documents whose body is a string of
// nested shortcodes wrapping markup.
package divi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"golang.org/x/net/html"
)

// Ensure Adapter implements blockwright.ContentAdapter at compile time.
var _ blockwright.ContentAdapter = (*Adapter)(nil)

var (
	// headingRe matches a markup heading. RE2 has no backreferences, so the
	// closing tag level is not tied to the opening one.
	headingRe = regexp.MustCompile(`(?s)<h([1-6])([^>]*)>(.*?)</h[1-6]>`)

	// leafRe matches the content of a shortcode that contains no other
	// shortcode: the text between a "]" and the next "[/".
	leafRe = regexp.MustCompile(`\]([^\[\]]*)\[/`)
)

// Adapter mutates shortcode documents stored in the body.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Target returns the render target this adapter handles.
func (a *Adapter) Target() blockwright.RenderTarget {
	return blockwright.RenderTargetShortcode
}

// InvalidatesCache reports false: shortcodes are expanded on request.
func (a *Adapter) InvalidatesCache() bool {
	return false
}

// ChangeHeading rewrites the first heading whose visible text equals the
// visible text of OldText. Headings inside shortcode content are searched
// first; when none matches the whole body is searched as plain markup.
func (a *Adapter) ChangeHeading(doc *blockwright.Document, change blockwright.HeadingChange) (*blockwright.DocumentUpdate, error) {
	body := doc.Body
	want := bluemonday.Text(change.OldText)

	var m *headingMatch
	for _, span := range leafRe.FindAllStringSubmatchIndex(body, -1) {
		if m = findHeading(body[span[2]:span[3]], want); m != nil {
			m.shift(span[2])
			break
		}
	}
	if m == nil {
		m = findHeading(body, want)
	}
	if m == nil {
		return nil, blockwright.Errorf(blockwright.ENOTFOUND, "heading %q not found", change.OldText)
	}

	level := change.Level
	if level == 0 {
		level = m.level
	}
	tag := fmt.Sprintf("<h%d%s>%s</h%d>", level, body[m.attrStart:m.attrEnd], html.EscapeString(change.NewText), level)
	out := body[:m.start] + tag + body[m.end:]
	return &blockwright.DocumentUpdate{Body: &out}, nil
}

// AppendContent wraps the block's HTML in a full-width section and adds it
// to the start or end of the body.
func (a *Adapter) AppendContent(doc *blockwright.Document, block blockwright.ContentBlock) (*blockwright.DocumentUpdate, error) {
	module := "et_pb_text"
	switch block.WidgetType {
	case "code", "html":
		module = "et_pb_code"
	}
	section := openSection(nil) + "[" + module + "]" + block.HTML + "[/" + module + "]" + closeSection

	body := doc.Body + section
	if block.Position == blockwright.PositionStart {
		body = section + doc.Body
	}
	return &blockwright.DocumentUpdate{Body: &body}, nil
}

type headingMatch struct {
	start, end         int
	attrStart, attrEnd int
	level              int
}

func (m *headingMatch) shift(offset int) {
	m.start += offset
	m.end += offset
	m.attrStart += offset
	m.attrEnd += offset
}

func findHeading(s, want string) *headingMatch {
	for _, loc := range headingRe.FindAllStringSubmatchIndex(s, -1) {
		if bluemonday.Text(s[loc[6]:loc[7]]) != want {
			continue
		}
		level, _ := strconv.Atoi(s[loc[2]:loc[3]])
		return &headingMatch{
			start:     loc[0],
			end:       loc[1],
			attrStart: loc[4],
			attrEnd:   loc[5],
			level:     level,
		}
	}
	return nil
}

const closeSection = "[/et_pb_column][/et_pb_row][/et_pb_section]"

// openSection opens a section, row and full-width column. attrs are added to
// the section shortcode in order.
func openSection(attrs [][2]string) string {
	var b strings.Builder
	b.WriteString(`[et_pb_section fb_built="1"`)
	for _, kv := range attrs {
		fmt.Fprintf(&b, ` %s="%s"`, kv[0], attr(kv[1]))
	}
	b.WriteString(`][et_pb_row][et_pb_column type="4_4"]`)
	return b.String()
}

// attr escapes a shortcode attribute value. Brackets would end the
// shortcode and quotes would end the value.
func attr(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "[", "&#91;")
	return strings.ReplaceAll(s, "]", "&#93;")
}
