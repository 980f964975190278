package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// ErrCoverRender indicates cover template rendering failed.
var ErrCoverRender = errors.New("cover template rendering failed")

// Document holds the pieces of an assembled HTML document.
// Cover and TOC must already be safe HTML; Body is the rendered fragment.
type Document struct {
	Title      string // <title> content ("Unknown" when empty)
	Stylesheet string // Inline CSS for the head
	Cover      string // Rendered cover page (empty = none)
	TOC        string // Rendered table of contents (empty = none)
	Body       string // Rendered document body
}

// BuildDocument assembles a standalone HTML page from the parts.
func BuildDocument(d Document) string {
	title := d.Title
	if title == "" {
		title = "Unknown"
	}

	var b strings.Builder
	b.Grow(len(d.Stylesheet) + len(d.Cover) + len(d.TOC) + len(d.Body) + 256)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n")

	if d.Stylesheet != "" {
		b.WriteString("<style><!--\n")
		b.WriteString(sanitizeCSS(d.Stylesheet))
		b.WriteString("\n--></style>\n")
	}

	b.WriteString("</head>\n<body>\n")
	b.WriteString(d.Cover)
	b.WriteString(d.TOC)
	b.WriteString(d.Body)
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// CoverData holds title page content for template rendering.
// Empty fields are omitted by the template.
type CoverData struct {
	Title     string
	Subtitle  string
	Author    string
	Copyright string
	Version   string
	Date      string
	Image     string // Path or URL
}

// CoverTemplate renders a title page from a parsed template.
type CoverTemplate struct {
	tmpl *template.Template
}

// NewCoverTemplate parses template content into a CoverTemplate.
func NewCoverTemplate(content string) (*CoverTemplate, error) {
	tmpl, err := template.New("cover").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing cover template: %w", err)
	}
	return &CoverTemplate{tmpl: tmpl}, nil
}

// Render executes the template. A nil data renders nothing.
func (c *CoverTemplate) Render(data *CoverData) (string, error) {
	if data == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}
	return buf.String(), nil
}
