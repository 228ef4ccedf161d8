package ui

import (
	"html/template"
	"os"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"vitrine/internal"
)

// loadNotes renders the optional analyst notes file to HTML for the notes
// panel. A missing or unreadable file just disables the panel.
func loadNotes(path string, logger *internal.Logger) template.HTML {
	if path == "" {
		return ""
	}
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("notes file %s not readable: %v", path, err)
		return ""
	}
	return renderMarkdown(src)
}

func renderMarkdown(src []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML(src, p, renderer))
}
