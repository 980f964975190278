package mmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// defaultStylesheet is the CSS embedded in full-page output when no
// custom stylesheet is configured.
const defaultStylesheet = `body {
  font-family: sans-serif;
  font-size: 18px;
  line-height: 150%;
}
a {
  font: inherit;
}
pre, li code, p code {
  font-family: monospace;
}
pre {
  background: #f8f8f8;
  border: solid thin #666;
  line-height: 120%;
  padding: 10px;
}
li code, p code {
  padding: 2px 5px;
}
table {
  border: solid thin #999;
  border-collapse: collapse;
  border-spacing: 0;
}
td {
  border: solid thin #ccc;
  padding-top: 5px;
}
td.left {
  text-align: left;
}
td.center {
  text-align: center;
}
td.right {
  text-align: right;
}
th {
  background: #ccc;
  border: none;
  border-bottom: solid thin #999;
  padding: 1px 5px;
  text-align: center;
}
`

// RenderOption adjusts HTML output.
type RenderOption func(*Renderer)

// WithOnlyBody omits the surrounding html, head and body elements so the
// output can be embedded in a larger page.
func WithOnlyBody() RenderOption {
	return func(r *Renderer) { r.onlyBody = true }
}

// WithTitle sets the page title, overriding the document's metadata.
func WithTitle(title string) RenderOption {
	return func(r *Renderer) { r.title = title }
}

// WithStylesheet replaces the built-in CSS with css.
func WithStylesheet(css string) RenderOption {
	return func(r *Renderer) { r.stylesheet = css }
}

// WithHighlighting turns on syntax highlighting of code blocks using the
// named chroma style, for example "github" or "monokai". The language is
// guessed from the code itself.
func WithHighlighting(style string) RenderOption {
	return func(r *Renderer) { r.highlight = style }
}

// Renderer writes document trees as HTML.
type Renderer struct {
	onlyBody   bool
	title      string
	stylesheet string
	highlight  string
}

// NewRenderer returns a renderer configured by opts.
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes doc to w as a standalone HTML page, or as a fragment when
// the renderer was built with WithOnlyBody.
func (r *Renderer) Render(w io.Writer, doc *Node) error {
	if w == nil {
		return ErrNilWriter
	}
	if doc == nil {
		return ErrNilNode
	}

	bw := bufio.NewWriter(w)
	if !r.onlyBody {
		title := r.title
		if title == "" {
			if t, ok := Metadata(doc, "title"); ok {
				title = t
			} else {
				title = "Unknown"
			}
		}
		bw.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<title>")
		writeEscaped(bw, title)
		bw.WriteString("</title>\n<style><!--\n")
		if r.stylesheet != "" {
			bw.WriteString(r.stylesheet)
		} else {
			bw.WriteString(defaultStylesheet)
		}
		bw.WriteString("--></style>\n</head>\n<body>\n")
	}

	r.writeBlock(bw, doc)

	if !r.onlyBody {
		bw.WriteString("</body>\n</html>\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// writeBlock writes one block node and recurses over its children.
func (r *Renderer) writeBlock(w *bufio.Writer, parent *Node) {
	var element, class string

	typ := parent.Type()
	switch typ {
	case TypeBlockQuote:
		element = "blockquote"
	case TypeOrderedList:
		element = "ol"
	case TypeUnorderedList:
		element = "ul"
	case TypeListItem:
		element = "li"
	case TypeHeading1, TypeHeading2, TypeHeading3, TypeHeading4, TypeHeading5, TypeHeading6:
		element = "h" + strconv.Itoa(typ.HeadingLevel())
	case TypeParagraph:
		element = "p"
	case TypeCodeBlock:
		r.writeCode(w, parent)
		return
	case TypeThematicBreak:
		w.WriteString("<hr>\n")
		return
	case TypeTable:
		element = "table"
	case TypeTableHeader:
		element = "thead"
	case TypeTableBody:
		element = "tbody"
	case TypeTableRow:
		element = "tr"
	case TypeTableHeaderCell:
		element = "th"
	case TypeTableBodyCellLeft:
		element = "td"
	case TypeTableBodyCellCenter:
		element = "td"
		class = "center"
	case TypeTableBodyCellRight:
		element = "td"
		class = "right"
	}

	if typ.HeadingLevel() > 0 {
		// Headings carry an anchor built from their text.
		w.WriteString("<" + element + ` id="`)
		for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
			if node.Whitespace() {
				w.WriteByte('-')
			}
			w.WriteString(anchor(node.Text()))
		}
		w.WriteString(`">`)
	} else if element != "" {
		w.WriteString("<" + element)
		if class != "" {
			w.WriteString(" class=" + class)
		}
		w.WriteByte('>')
		if typ <= TypeUnorderedList {
			w.WriteByte('\n')
		}
	}

	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		if node.IsBlock() {
			r.writeBlock(w, node)
		} else {
			r.writeLeaf(w, node)
		}
	}

	if element != "" {
		w.WriteString("</" + element + ">\n")
	}
}

// writeCode writes a code block, highlighted when a style is configured.
func (r *Renderer) writeCode(w *bufio.Writer, parent *Node) {
	if r.highlight != "" {
		var code strings.Builder
		for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
			code.WriteString(node.Text())
		}
		if html, err := highlight(code.String(), r.highlight); err == nil {
			w.WriteString(html)
			return
		}
	}
	w.WriteString("<pre><code>")
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		writeEscaped(w, node.Text())
	}
	w.WriteString("</code></pre>\n")
}

// highlight renders code through chroma, guessing the language from the
// content since fenced blocks do not carry one.
func highlight(code, styleName string) (string, error) {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	formatter := chtml.New(chtml.WithClasses(false))
	if err := formatter.Format(&sb, styles.Get(styleName), it); err != nil {
		return "", err
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

// writeLeaf writes one inline node.
func (r *Renderer) writeLeaf(w *bufio.Writer, node *Node) {
	if node.Whitespace() {
		w.WriteByte(' ')
	}

	text := node.Text()
	url := node.URL()

	var element string
	switch node.Type() {
	case TypeEmphasizedText:
		element = "em"
	case TypeStrongText:
		element = "strong"
	case TypeStruckText:
		element = "del"
	case TypeCodeText:
		element = "code"
	case TypeImage:
		w.WriteString(`<img src="`)
		writeEscaped(w, url)
		w.WriteString(`" alt="`)
		writeEscaped(w, text)
		w.WriteString(`" />`)
		return
	case TypeHardBreak:
		w.WriteString("<br>\n")
		return
	case TypeSoftBreak:
		w.WriteString("<wbr>\n")
		return
	case TypeMetadataText:
		return
	}

	if url != "" {
		if url == "@" {
			// Intra-document link to the heading with this text.
			w.WriteString(`<a href="#` + anchor(text) + `">`)
		} else {
			w.WriteString(`<a href="`)
			writeEscaped(w, url)
			w.WriteString(`">`)
		}
	}
	if element != "" {
		w.WriteString("<" + element + ">")
	}
	writeEscaped(w, text)
	if element != "" {
		w.WriteString("</" + element + ">")
	}
	if url != "" {
		w.WriteString("</a>")
	}
}

// writeEscaped writes text with the HTML special characters escaped.
func writeEscaped(w *bufio.Writer, text string) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '"':
			w.WriteString("&quot;")
		default:
			w.WriteByte(text[i])
		}
	}
}

// anchor reduces heading text to an identifier: letters and digits are
// lowered, spaces become hyphens, everything else is dropped.
func anchor(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'z', ch == '.', ch == '-':
			sb.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			sb.WriteByte(ch - 'A' + 'a')
		case ch == ' ':
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
