package mmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/brvtalcake/mmd/internal/assets"
	"github.com/brvtalcake/mmd/internal/fileutil"
	"github.com/brvtalcake/mmd/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ assets.Loader = (*assets.EmbeddedLoader)(nil)
	_ assets.Loader = (*assets.Resolver)(nil)
	_ pdfExporter   = (*chromeExporter)(nil)
)

// defaultTimeout bounds PDF generation per document.
const defaultTimeout = 2 * time.Minute

// DefaultTOCDepth is the deepest heading level included in a generated
// table of contents when TOC.MaxDepth is zero.
const DefaultTOCDepth = 3

// Input describes a document conversion. Single documents set Markdown;
// books set Chapters instead and the pieces are rendered concurrently and
// concatenated in order.
type Input struct {
	Markdown  string    // Markdown source (required unless Chapters is set)
	Chapters  []Chapter // Book chapters, in reading order (overrides Markdown)
	Title     string    // Overrides the metadata title
	CSS       string    // Extra CSS appended after the resolved style
	SourceDir string    // Base directory for resolving relative image and link paths
	Cover     *Cover    // Title page (nil = none)
	TOC       *TOC      // Table of contents (nil = none)
	Footer    *Footer   // PDF page footer (nil = none)
	HTMLOnly  bool      // Skip PDF generation
}

// Chapter is one Markdown source in a multi-file book. SourceDir resolves
// the chapter's relative image and link paths, so chapters may live in
// different directories.
type Chapter struct {
	Markdown  string
	SourceDir string
}

// Cover holds title page content. Empty fields fall back to the document
// front matter (title, subtitle, author, copyright, version, date); fields
// empty in both places are omitted from the page.
type Cover struct {
	Title     string
	Subtitle  string
	Author    string
	Copyright string
	Version   string
	Date      string
	Image     string // Path or URL
}

// TOC configures the generated table of contents.
type TOC struct {
	Title    string // Heading above the listing (empty = none)
	MaxDepth int    // Deepest heading level included, 1-6 (0 = DefaultTOCDepth)
}

// Validate checks the depth range.
func (t *TOC) Validate() error {
	if t == nil || t.MaxDepth == 0 {
		return nil
	}
	if t.MaxDepth < 1 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: %d (must be 1-6)", ErrInvalidTOCDepth, t.MaxDepth)
	}
	return nil
}

// Footer configures the PDF page footer drawn by Chrome.
type Footer struct {
	Text        string
	Position    string // "left", "center", "right" (default: "right")
	PageNumbers bool
}

// Validate checks the position value.
func (f *Footer) Validate() error {
	if f == nil || f.Position == "" {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "left", "center", "right":
		return nil
	}
	return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
}

// ConvertResult holds the conversion outputs. PDF is nil in HTMLOnly mode.
type ConvertResult struct {
	HTML []byte
	PDF  []byte
}

// serviceConfig holds Service settings applied through options.
type serviceConfig struct {
	timeout       time.Duration
	assetPath     string
	styleInput    string
	resolvedStyle string
	highlight     string
	parseOpts     []Option
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithTimeout sets the PDF generation timeout.
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) { s.cfg.timeout = d }
}

// WithAssetPath overrides the asset directory. Styles and templates are
// looked up there first, falling back to the embedded defaults.
func WithAssetPath(path string) ServiceOption {
	return func(s *Service) { s.cfg.assetPath = path }
}

// WithStyle sets the document stylesheet. Accepts a style name from the
// asset directory, a CSS file path, or raw CSS content.
func WithStyle(nameOrPath string) ServiceOption {
	return func(s *Service) { s.cfg.styleInput = nameOrPath }
}

// WithHighlightStyle enables syntax highlighting of code blocks using the
// named chroma style.
func WithHighlightStyle(name string) ServiceOption {
	return func(s *Service) { s.cfg.highlight = name }
}

// WithParseOptions forwards parser options to every conversion.
func WithParseOptions(opts ...Option) ServiceOption {
	return func(s *Service) { s.cfg.parseOpts = opts }
}

// Service converts Markdown documents into standalone HTML and PDF.
// Create with NewService, convert with Convert, release the browser with
// Close.
type Service struct {
	cfg      serviceConfig
	assets   assets.Loader
	cover    *pipeline.CoverTemplate
	exporter pdfExporter
}

// NewService creates a Service with default configuration.
// Returns an error if asset loading or template parsing fails.
func NewService(opts ...ServiceOption) (*Service, error) {
	s := &Service{cfg: serviceConfig{timeout: defaultTimeout}}

	for _, opt := range opts {
		opt(s)
	}

	s.assets = assets.NewEmbeddedLoader()
	if s.cfg.assetPath != "" {
		resolver, err := assets.NewResolver(s.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		s.assets = resolver
	}

	if err := s.resolveStyle(); err != nil {
		return nil, err
	}

	// Cover templates parse once here, not per conversion.
	if s.cover == nil {
		content, err := s.assets.LoadTemplate(assets.DefaultCoverName)
		if err != nil {
			return nil, fmt.Errorf("loading cover template: %w", convertAssetError(err))
		}
		s.cover, err = pipeline.NewCoverTemplate(content)
		if err != nil {
			return nil, fmt.Errorf("parsing cover template: %w", err)
		}
	}

	// Exporter is replaceable by tests.
	if s.exporter == nil {
		s.exporter = newChromeExporter(s.cfg.timeout)
	}

	return s, nil
}

// Convert parses the Markdown input, renders it, and assembles a standalone
// HTML document plus (unless HTMLOnly) a PDF. The context is honored for
// cancellation and bounds the browser work.
func (s *Service) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	chapters := input.Chapters
	if len(chapters) == 0 {
		chapters = []Chapter{{Markdown: input.Markdown, SourceDir: input.SourceDir}}
	}

	bodies, front, err := s.renderChapters(ctx, chapters)
	if err != nil {
		return nil, err
	}

	// Chapter fragments are newline-terminated, so plain concatenation
	// keeps the output readable.
	body, err := pipeline.ReplaceEntities(strings.Join(bodies, ""))
	if err != nil {
		return nil, fmt.Errorf("replacing entities: %w", err)
	}

	title := input.Title
	if title == "" {
		title = front.Title
	}

	// Resolved style first, user CSS last so it can override.
	css := s.cfg.resolvedStyle
	if input.CSS != "" {
		css += "\n" + input.CSS
	}

	var coverHTML string
	if input.Cover != nil {
		coverHTML, err = s.cover.Render(toCoverData(fillCover(input.Cover, front)))
		if err != nil {
			return nil, fmt.Errorf("rendering cover: %w", err)
		}
	}

	var tocHTML string
	if input.TOC != nil {
		tocHTML = pipeline.BuildTOC(body, toTOCOptions(input.TOC))
	}

	html := pipeline.BuildDocument(pipeline.Document{
		Title:      title,
		Stylesheet: css,
		Cover:      coverHTML,
		TOC:        tocHTML,
		Body:       body,
	})

	res := &ConvertResult{HTML: []byte(html)}
	if input.HTMLOnly {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf, err := s.exporter.Export(ctx, html, &exportOptions{Footer: input.Footer})
	if err != nil {
		return nil, fmt.Errorf("exporting PDF: %w", err)
	}
	res.PDF = pdf

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.exporter != nil {
		return s.exporter.Close()
	}
	return nil
}

// renderBody renders the document tree to an HTML fragment.
func (s *Service) renderBody(doc *Node) (string, error) {
	opts := []RenderOption{WithOnlyBody()}
	if s.cfg.highlight != "" {
		opts = append(opts, WithHighlighting(s.cfg.highlight))
	}

	var buf bytes.Buffer
	if err := NewRenderer(opts...).Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// chapterMeta holds the front matter fields used for the document title
// and cover page. Missing keys stay empty.
type chapterMeta struct {
	Title     string
	Subtitle  string
	Author    string
	Copyright string
	Version   string
	Date      string
}

// readFrontMatter pulls cover-related metadata from a parsed document.
func readFrontMatter(doc *Node) chapterMeta {
	var m chapterMeta
	m.Title, _ = Metadata(doc, "title")
	m.Subtitle, _ = Metadata(doc, "subtitle")
	m.Author, _ = Metadata(doc, "author")
	m.Copyright, _ = Metadata(doc, "copyright")
	m.Version, _ = Metadata(doc, "version")
	m.Date, _ = Metadata(doc, "date")
	return m
}

// renderChapters parses and renders every chapter concurrently and returns
// the HTML fragments in chapter order. Front matter comes from the first
// chapter only. On failure the error of the earliest failing chapter wins.
func (s *Service) renderChapters(ctx context.Context, chapters []Chapter) ([]string, chapterMeta, error) {
	bodies := make([]string, len(chapters))
	errs := make([]error, len(chapters))
	var front chapterMeta

	workers := runtime.GOMAXPROCS(0)
	if workers > len(chapters) {
		workers = len(chapters)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					continue
				}
				rendered, err := s.renderChapter(chapters[idx])
				if err != nil {
					if len(chapters) > 1 {
						err = fmt.Errorf("chapter %d: %w", idx+1, err)
					}
					errs[idx] = err
					continue
				}
				bodies[idx] = rendered.html
				if idx == 0 {
					front = rendered.meta
				}
			}
		}()
	}

	for i := range chapters {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, chapterMeta{}, err
		}
	}
	return bodies, front, nil
}

// renderedChapter is one chapter's output: the HTML fragment plus the
// front matter read from its metadata block.
type renderedChapter struct {
	html string
	meta chapterMeta
}

// renderChapter parses one chapter and renders it to an HTML fragment,
// rewriting relative paths against the chapter's own source directory.
func (s *Service) renderChapter(ch Chapter) (renderedChapter, error) {
	doc, err := ParseString(ch.Markdown, s.cfg.parseOpts...)
	if err != nil {
		return renderedChapter{}, fmt.Errorf("parsing markdown: %w", err)
	}
	defer doc.Free()

	meta := readFrontMatter(doc)

	html, err := s.renderBody(doc)
	if err != nil {
		return renderedChapter{}, fmt.Errorf("rendering HTML: %w", err)
	}

	if ch.SourceDir != "" {
		html, err = pipeline.RewriteRelativePaths(html, ch.SourceDir)
		if err != nil {
			return renderedChapter{}, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	return renderedChapter{html: html, meta: meta}, nil
}

// fillCover returns a copy of c with empty fields filled from the front
// matter. Caller-provided values always win.
func fillCover(c *Cover, front chapterMeta) *Cover {
	filled := *c
	if filled.Title == "" {
		filled.Title = front.Title
	}
	if filled.Subtitle == "" {
		filled.Subtitle = front.Subtitle
	}
	if filled.Author == "" {
		filled.Author = front.Author
	}
	if filled.Copyright == "" {
		filled.Copyright = front.Copyright
	}
	if filled.Version == "" {
		filled.Version = front.Version
	}
	if filled.Date == "" {
		filled.Date = front.Date
	}
	return &filled
}

// resolveStyle turns the style input (name, path, or CSS content) into CSS.
// Called from NewService after options are applied.
func (s *Service) resolveStyle() error {
	input := s.cfg.styleInput
	if input == "" {
		css, err := s.assets.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return fmt.Errorf("loading default style: %w", convertAssetError(err))
		}
		s.cfg.resolvedStyle = css
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		s.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		s.cfg.resolvedStyle = input
		return nil
	}

	css, err := s.assets.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	s.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
// Library callers who build Input by hand converge here with CLI callers
// whose input was validated at config load time.
func validateInput(input Input) error {
	if len(input.Chapters) == 0 && input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	for i, ch := range input.Chapters {
		if ch.Markdown == "" {
			return fmt.Errorf("%w: chapter %d", ErrEmptyMarkdown, i+1)
		}
	}
	if err := input.TOC.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	return nil
}

// toCoverData converts the public Cover type to pipeline.CoverData.
func toCoverData(c *Cover) *pipeline.CoverData {
	if c == nil {
		return nil
	}
	return &pipeline.CoverData{
		Title:     c.Title,
		Subtitle:  c.Subtitle,
		Author:    c.Author,
		Copyright: c.Copyright,
		Version:   c.Version,
		Date:      c.Date,
		Image:     c.Image,
	}
}

// toTOCOptions converts the public TOC type to pipeline.TOCOptions.
func toTOCOptions(t *TOC) pipeline.TOCOptions {
	depth := t.MaxDepth
	if depth == 0 {
		depth = DefaultTOCDepth
	}
	return pipeline.TOCOptions{
		Title:    t.Title,
		MaxDepth: depth,
	}
}
