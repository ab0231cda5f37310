// Package markdown renders park descriptions and review text to HTML for
// detail responses.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// Render converts markdown text to HTML. Raw HTML in the input is not passed
// through; on a conversion failure the text is returned escaped rather than
// dropped.
func Render(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	var out bytes.Buffer
	if err := engine.Convert([]byte(trimmed), &out); err != nil {
		return template.HTMLEscapeString(trimmed)
	}
	return out.String()
}
