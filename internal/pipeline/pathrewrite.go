package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteAttrs names the attribute carrying a path, per element.
// Media elements are skipped: PDFs cannot play them anyway.
var rewriteAttrs = map[string]string{
	"img": "src",
	"a":   "href",
}

// RewriteRelativePaths converts relative image and link paths to absolute
// file:// URLs so a document assembled from chapters in other directories
// still resolves its images. Absolute paths, URLs, and #anchors are left
// alone, as is anything that would escape sourceDir.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewritePaths(doc, absDir)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Fragments are parsed in body context and wrapped in a container node for
// uniform traversal.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	bodyContext := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyContext)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragment children render
// directly so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewritePaths walks the DOM rewriting relative paths under sourceDir.
func rewritePaths(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		if attrName, ok := rewriteAttrs[n.Data]; ok {
			rewritePathAttr(n, attrName, sourceDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewritePaths(c, sourceDir)
	}
}

// rewritePathAttr rewrites one attribute when it holds a relative path.
func rewritePathAttr(n *html.Node, attrName, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		absPath := filepath.Join(sourceDir, attr.Val)

		// Joined path must stay under sourceDir
		if !pathInsideDir(absPath, sourceDir) {
			continue
		}

		n.Attr[i].Val = fileURL(absPath)
	}
}

// isRelativePath reports whether the value is a rewritable relative path.
// URLs, data URIs, anchors, and absolute paths are not.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") {
		return false
	}

	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return !filepath.IsAbs(path)
}

// pathInsideDir reports whether absPath stays within dir.
func pathInsideDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// fileURL converts an absolute path to a file:// URL, normalizing Windows
// separators.
func fileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
