package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// entitySymbols maps standalone tokens to their typographic symbols.
var entitySymbols = map[string]string{
	"(c)":  "©", // copyright
	"(r)":  "®", // registered
	"(tm)": "™", // trademark
}

// ReplaceEntities substitutes standalone (c), (r), and (tm) tokens in HTML
// text with the corresponding symbols. A token counts as standalone when
// bounded by whitespace or the text edges, so "call(c)" stays untouched.
// Text inside pre, code, script, and style elements is never rewritten.
func ReplaceEntities(htmlContent string) (string, error) {
	if !strings.Contains(htmlContent, "(") {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	replaceEntityNodes(doc, false)

	return renderHTML(doc, isFragment)
}

// replaceEntityNodes walks the DOM rewriting text nodes outside verbatim
// elements.
func replaceEntityNodes(n *html.Node, verbatim bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "pre", "code", "script", "style":
			verbatim = true
		}
	}

	if n.Type == html.TextNode && !verbatim {
		n.Data = replaceEntityTokens(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		replaceEntityNodes(c, verbatim)
	}
}

// replaceEntityTokens rewrites whitespace-delimited tokens in a text run.
func replaceEntityTokens(s string) string {
	if !strings.Contains(s, "(") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] == '(' && atTokenStart(s, i) {
			if symbol, n := matchEntityToken(s[i:]); n > 0 && atTokenEnd(s, i+n) {
				b.WriteString(symbol)
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}

	return b.String()
}

func matchEntityToken(s string) (string, int) {
	for token, symbol := range entitySymbols {
		if strings.HasPrefix(s, token) {
			return symbol, len(token)
		}
	}
	return "", 0
}

func atTokenStart(s string, i int) bool {
	return i == 0 || isSpaceByte(s[i-1])
}

func atTokenEnd(s string, i int) bool {
	return i == len(s) || isSpaceByte(s[i])
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
