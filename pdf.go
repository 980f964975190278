package mmd

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/brvtalcake/mmd/internal/fileutil"
	"github.com/brvtalcake/mmd/internal/process"
)

// pdfExporter abstracts HTML to PDF conversion so tests can run without a
// browser.
type pdfExporter interface {
	Export(ctx context.Context, htmlContent string, opts *exportOptions) ([]byte, error)
	Close() error
}

// exportOptions holds per-document PDF settings.
type exportOptions struct {
	Footer *Footer
}

// PDF page dimensions in inches (US Letter).
const (
	paperWidthInches       = 8.5
	paperHeightInches      = 11
	marginInches           = 0.5
	marginBottomWithFooter = 0.75 // Extra space for the footer
)

// footerFontFamily is the font stack for Chrome's native footer.
const footerFontFamily = "sans-serif"

// chromeExporter renders HTML to PDF through headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type chromeExporter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newChromeExporter creates a chromeExporter with the given timeout.
func newChromeExporter(timeout time.Duration) *chromeExporter {
	return &chromeExporter{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (e *chromeExporter) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	e.launcher = l

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		e.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (e *chromeExporter) Close() error {
	var err error
	if e.browser != nil {
		err = e.browser.Close()
		e.browser = nil
	}
	e.killLauncher()
	return err
}

// killLauncher terminates the launched browser process. Chrome spawns helper
// processes that survive a plain kill, so the whole process group goes too.
func (e *chromeExporter) killLauncher() {
	if e.launcher == nil {
		return
	}
	pid := e.launcher.PID()
	e.launcher.Kill()
	if pid > 0 {
		process.KillProcessGroup(pid)
	}
	e.launcher = nil
}

// Export writes the HTML to a temp file, loads it in headless Chrome, and
// prints it to PDF. US Letter with 0.5 inch margins.
func (e *chromeExporter) Export(ctx context.Context, htmlContent string, opts *exportOptions) ([]byte, error) {
	if htmlContent == "" {
		return nil, ErrEmptyHTML
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderFile(ctx, tmpPath, opts)
}

// renderFile opens a local HTML file in the browser and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (e *chromeExporter) renderFile(ctx context.Context, filePath string, opts *exportOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Context deadline wins over the configured timeout
	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(e.printOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// printOptions constructs proto.PagePrintToPDF with an optional footer.
func (e *chromeExporter) printOptions(opts *exportOptions) *proto.PagePrintToPDF {
	marginBottom := marginInches
	hasFooter := opts != nil && opts.Footer != nil

	if hasFooter {
		marginBottom = marginBottomWithFooter
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}

	if hasFooter {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(opts.Footer)
	}

	return pdfOpts
}

// buildFooterTemplate generates the HTML template for Chrome's native footer.
// Page numbers use Chrome's pageNumber/totalPages CSS classes.
func buildFooterTemplate(f *Footer) string {
	if f == nil {
		return "<span></span>"
	}

	var parts []string

	if f.PageNumbers {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if f.Text != "" {
		parts = append(parts, html.EscapeString(f.Text))
	}

	if len(parts) == 0 {
		return "<span></span>"
	}

	content := strings.Join(parts, " - ")

	textAlign := "right"
	switch strings.ToLower(f.Position) {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`, footerFontFamily, textAlign, content)
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
