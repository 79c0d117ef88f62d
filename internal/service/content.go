package service

import (
	"bytes"
	"html/template"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ContentRenderer turns author-written Markdown into HTML that is safe to
// embed in a page.
type ContentRenderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewContentRenderer creates a renderer with GitHub flavoured Markdown and
// the bluemonday user generated content policy.
func NewContentRenderer() *ContentRenderer {
	return &ContentRenderer{
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts Markdown to sanitized HTML. If conversion fails the source
// is escaped and returned as a single paragraph.
func (c *ContentRenderer) Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := c.markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(source) + "</p>")
	}
	return template.HTML(c.sanitizer.SanitizeBytes(buf.Bytes()))
}

// Slugify derives a URL-safe identifier: diacritics folded, lower case ASCII
// letters and digits, runs of anything else collapsed to a single dash.
func Slugify(s string) string {
	// transform.Chain keeps state, so it is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevDash = false
			continue
		}
		if !prevDash && b.Len() > 0 {
			b.WriteRune('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
