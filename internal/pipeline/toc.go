package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Heading is one table-of-contents entry extracted from rendered HTML.
type Heading struct {
	Level int    // 1-6
	ID    string // anchor id
	Text  string // heading text with markup stripped
}

// TOCOptions configures table of contents generation.
type TOCOptions struct {
	Title    string // Heading above the listing (empty = none)
	MaxDepth int    // Deepest heading level included, 1-6
}

// headingPattern matches h1-h6 tags carrying an id attribute.
// Captures: 1=level, 2=id, 3=inner HTML.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// tagPattern matches HTML tags for stripping from heading text.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ExtractHeadings returns the document's headings up to maxDepth, in order.
// Headings without an id are skipped since they cannot be linked.
func ExtractHeadings(htmlContent string, maxDepth int) []Heading {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []Heading
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level > maxDepth {
			continue
		}
		headings = append(headings, Heading{
			Level: level,
			ID:    m[2],
			Text:  stripTags(m[3]),
		})
	}
	return headings
}

// stripTags removes markup from heading text and decodes entities so the
// text is not double-encoded when escaped again for the TOC.
func stripTags(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// BuildTOC extracts headings and renders a numbered table of contents.
// Returns "" when no heading is in range.
func BuildTOC(htmlContent string, opts TOCOptions) string {
	headings := ExtractHeadings(htmlContent, opts.MaxDepth)
	if len(headings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc">`)

	if opts.Title != "" {
		b.WriteString(`<h2 class="toc-title">`)
		b.WriteString(html.EscapeString(opts.Title))
		b.WriteString(`</h2>`)
	}

	b.WriteString(`<div class="toc-list">`)

	var numbering tocNumbering
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		b.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			b.WriteString(fmt.Sprintf(` style="padding-left:%.1fem"`, float64(depth-1)*1.5))
		}
		b.WriteString(`><a href="#`)
		b.WriteString(html.EscapeString(h.ID))
		b.WriteString(`">`)
		b.WriteString(num)
		b.WriteString(` `)
		b.WriteString(html.EscapeString(h.Text))
		b.WriteString(`</a></div>`)
	}

	b.WriteString(`</div></nav>`)
	return b.String()
}

// tocNumbering assigns hierarchical numbers like "1.2.3." to headings.
// The first heading's level becomes depth 1 regardless of its tag, and a
// level jump deeper than one step is clamped to a direct child.
type tocNumbering struct {
	counters [6]int
	base     int // level rendered as depth 1 (0 = unset)
	last     int // previous effective depth
}

// next returns the number string and effective depth for a heading level.
func (t *tocNumbering) next(level int) (string, int) {
	if t.base == 0 {
		t.base = level
	}

	depth := level - t.base + 1
	if depth < 1 {
		depth = 1
	}
	if t.last > 0 && depth > t.last+1 {
		depth = t.last + 1
	}

	for i := depth; i < len(t.counters); i++ {
		t.counters[i] = 0
	}
	t.counters[depth-1]++
	t.last = depth

	var parts []string
	for i := 0; i < depth; i++ {
		parts = append(parts, strconv.Itoa(t.counters[i]))
	}
	return strings.Join(parts, ".") + ".", depth
}
