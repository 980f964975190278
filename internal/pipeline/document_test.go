package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildDocument - Document Assembly
// ---------------------------------------------------------------------------

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	t.Run("full shell structure", func(t *testing.T) {
		t.Parallel()

		got := BuildDocument(Document{
			Title:      "My Book",
			Stylesheet: "body { color: black; }",
			Body:       "<p>content</p>",
		})

		for _, want := range []string{
			"<!DOCTYPE html>",
			"<meta charset=\"utf-8\">",
			"<title>My Book</title>",
			"<style><!--",
			"body { color: black; }",
			"--></style>",
			"<p>content</p>",
			"</body>\n</html>\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("BuildDocument() missing %q in:\n%s", want, got)
			}
		}
	})

	t.Run("title falls back to Unknown", func(t *testing.T) {
		t.Parallel()

		got := BuildDocument(Document{Body: "<p>x</p>"})
		if !strings.Contains(got, "<title>Unknown</title>") {
			t.Errorf("BuildDocument() = %q, want Unknown title", got)
		}
	})

	t.Run("title is escaped", func(t *testing.T) {
		t.Parallel()

		got := BuildDocument(Document{Title: `Tom & "Jerry" <3`})
		if !strings.Contains(got, "<title>Tom &amp; &#34;Jerry&#34; &lt;3</title>") {
			t.Errorf("BuildDocument() = %q, want escaped title", got)
		}
	})

	t.Run("style block omitted without stylesheet", func(t *testing.T) {
		t.Parallel()

		got := BuildDocument(Document{Title: "x", Body: "<p>x</p>"})
		if strings.Contains(got, "<style>") {
			t.Errorf("BuildDocument() = %q, should have no style block", got)
		}
	})

	t.Run("closing tags in CSS are defanged", func(t *testing.T) {
		t.Parallel()

		got := BuildDocument(Document{
			Stylesheet: `p::before { content: "</style><script>alert(1)</script>"; }`,
		})
		if strings.Contains(got, "</style><script>") {
			t.Error("CSS broke out of the style block")
		}
		if !strings.Contains(got, `<\/style>`) {
			t.Errorf("BuildDocument() = %q, want sanitized closing tag", got)
		}
	})

	t.Run("cover and toc precede body", func(t *testing.T) {
		t.Parallel()

		got := BuildDocument(Document{
			Cover: `<section class="cover">C</section>`,
			TOC:   `<nav class="toc">T</nav>`,
			Body:  "<p>B</p>",
		})

		coverAt := strings.Index(got, `class="cover"`)
		tocAt := strings.Index(got, `class="toc"`)
		bodyAt := strings.Index(got, "<p>B</p>")
		if coverAt == -1 || tocAt == -1 || bodyAt == -1 {
			t.Fatalf("BuildDocument() missing parts: %q", got)
		}
		if !(coverAt < tocAt && tocAt < bodyAt) {
			t.Errorf("order wrong: cover=%d toc=%d body=%d", coverAt, tocAt, bodyAt)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCoverTemplate - Title Page Rendering
// ---------------------------------------------------------------------------

func TestNewCoverTemplate(t *testing.T) {
	t.Parallel()

	t.Run("valid template parses", func(t *testing.T) {
		t.Parallel()

		if _, err := NewCoverTemplate(`<h1>{{.Title}}</h1>`); err != nil {
			t.Fatalf("NewCoverTemplate() error = %v", err)
		}
	})

	t.Run("malformed template returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewCoverTemplate(`{{.Title`)
		if err == nil {
			t.Fatal("expected parse error, got nil")
		}
		if !strings.Contains(err.Error(), "parsing cover template") {
			t.Errorf("error = %v, want parsing context", err)
		}
	})
}

func TestCoverTemplate_Render(t *testing.T) {
	t.Parallel()

	tmpl, err := NewCoverTemplate(
		`<section class="cover"><h1>{{.Title}}</h1>{{if .Author}}<p>{{.Author}}</p>{{end}}{{if .Date}}<p>{{.Date}}</p>{{end}}</section>`)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("nil data renders nothing", func(t *testing.T) {
		t.Parallel()

		got, err := tmpl.Render(nil)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "" {
			t.Errorf("Render(nil) = %q, want empty", got)
		}
	})

	t.Run("fields substituted", func(t *testing.T) {
		t.Parallel()

		got, err := tmpl.Render(&CoverData{Title: "Field Guide", Author: "Jane Doe", Date: "2026-08-22"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for _, want := range []string{"<h1>Field Guide</h1>", "<p>Jane Doe</p>", "<p>2026-08-22</p>"} {
			if !strings.Contains(got, want) {
				t.Errorf("Render() = %q, want to contain %q", got, want)
			}
		}
	})

	t.Run("empty optional fields omitted", func(t *testing.T) {
		t.Parallel()

		got, err := tmpl.Render(&CoverData{Title: "Solo"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(got, "<p>") {
			t.Errorf("Render() = %q, want no optional paragraphs", got)
		}
	})

	t.Run("metadata is escaped", func(t *testing.T) {
		t.Parallel()

		got, err := tmpl.Render(&CoverData{Title: `<script>alert(1)</script>`})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(got, "<script>") {
			t.Error("title injected markup into the cover")
		}
	})
}

func TestCoverTemplate_RenderError(t *testing.T) {
	t.Parallel()

	// Calling a missing method fails at execution time, not parse time
	tmpl, err := NewCoverTemplate(`{{.Missing.Deep}}`)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err = tmpl.Render(&CoverData{Title: "x"})
	if !errors.Is(err, ErrCoverRender) {
		t.Errorf("error = %v, want ErrCoverRender", err)
	}
}
