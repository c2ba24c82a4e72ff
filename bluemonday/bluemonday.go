// Package bluemonday strips and sanitizes markup fragments.
package bluemonday

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are safe for concurrent use once built.
var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text returns the visible text of a markup fragment: tags and comments are
// removed, entities decoded, whitespace runs collapsed and the result trimmed.
func Text(fragment string) string {
	if fragment == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(fragment))), " ")
}

// Sanitize removes scripts, event handlers and other unsafe markup from
// user-generated content while keeping formatting, links, images, lists and
// tables.
func Sanitize(fragment string) string {
	return ugc.Sanitize(fragment)
}
