// Package htmlsanitize cleans user-authored HTML before it is stored or
// rendered. Task descriptions and comments may carry rich-text markup from
// the editor; everything else (names, tags, departments) should be plain
// text.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// richPolicy allows the markup the task editor can produce: formatting,
// links, lists, and tables. Scripts, event handlers, and javascript: URLs
// are stripped.
var richPolicy = buildRichPolicy()

// strictPolicy strips all markup, leaving text content only.
var strictPolicy = bluemonday.StrictPolicy()

func buildRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// Sanitize cleans rich-text HTML, preserving safe formatting markup.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return richPolicy.Sanitize(html)
}

// PlainText strips every tag and returns trimmed text content. Use for
// fields that must never carry markup, like task names and tags.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
