// Package pipeline assembles rendered Markdown fragments into standalone
// HTML documents.
//
// The stages operate on HTML strings:
//   - entity substitution for standalone (c), (r), (tm) tokens
//   - relative path rewriting for images and links
//   - table of contents generation from heading anchors
//   - cover page rendering from a template
//   - final document assembly (head, stylesheet, cover, TOC, body)
//
// Markdown parsing and HTML rendering live in the root mmd package, which
// feeds its output through these stages. PDF generation also lives there,
// driven by headless Chrome (go-rod).
package pipeline
