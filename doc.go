// Package mmd parses Markdown documents into navigable node trees.
//
// # Quick Start
//
// Parse a document and walk the tree:
//
//	doc, err := mmd.ParseFile("README.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Free()
//
//	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
//	    fmt.Println(node.Type(), node.CollectText())
//	}
//
// The parser understands the common Markdown constructs: ATX and setext
// headings, paragraphs, block quotes, ordered and unordered lists, fenced
// and indented code blocks, thematic breaks, tables, emphasis, strong and
// struck text, inline code, links, images, reference definitions, and a
// leading YAML-style metadata block.
//
// # Document Trees
//
// Parsing produces a tree of Node values rooted at a TypeDocument node.
// Block nodes (headings, paragraphs, lists, tables) structure the document;
// inline nodes (text runs, links, code spans) carry the content as leaves.
// Node.IsBlock distinguishes the two. Text leaves record whether whitespace
// preceded them, so Node.CollectText can reassemble readable text from any
// subtree.
//
// # Metadata
//
// A document that begins with a "---" line carries a metadata block. Use
// Metadata to look up a single keyword, or DecodeMetadata to unmarshal the
// whole block into a struct via YAML:
//
//	var fm struct {
//	    Title string `yaml:"title"`
//	    Date  string `yaml:"date"`
//	}
//	if err := mmd.DecodeMetadata(doc, &fm); err == nil {
//	    fmt.Println(fm.Title)
//	}
//
// # Rendering
//
// Renderer writes a parsed tree as HTML, with optional syntax highlighting
// of code blocks via chroma:
//
//	r := mmd.NewRenderer(mmd.WithTitle("My Page"), mmd.WithHighlighting("github"))
//	err := r.Render(os.Stdout, doc)
//
// Service bundles parsing and rendering behind one call and is the unit
// managed by ServicePool for concurrent batch work.
//
// # PDF Output
//
// Exporter renders HTML through headless Chrome to produce PDF bytes. The
// go-rod library downloads a managed Chromium on first use; set
// ROD_BROWSER_BIN to use a specific binary, and ROD_NO_SANDBOX=1 in
// containers that cannot run the Chrome sandbox.
package mmd
