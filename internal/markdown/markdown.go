// Package markdown renders post bodies and comments to sanitized HTML.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/inkwell-dev/inkwell/internal/logger"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	// UGC policy allows basic formatting, links and images but strips
	// scripts, event handlers and embedded objects.
	policy := bluemonday.UGCPolicy()
	policy.AllowRelativeURLs(true)

	return &Renderer{md: md, policy: policy}
}

// Render converts markdown text to HTML safe for direct template
// inclusion. On a markdown failure the raw text is escaped and returned
// as-is rather than dropping the content.
func (r *Renderer) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Error("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}

	safe := r.policy.Sanitize(buf.String())
	return template.HTML(strings.TrimSpace(safe))
}
