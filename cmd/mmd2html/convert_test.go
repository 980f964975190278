package main

// Notes:
// - run: we test the full flag-to-output path with injected stdin/stdout,
//   not the process-level wiring in main().
// - Highlighted output is asserted loosely (spans present, plain <pre><code>
//   absent) since the exact markup belongs to the highlighting library.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mmd "github.com/brvtalcake/mmd"
	"github.com/brvtalcake/mmd/internal/assets"
)

// makeDeps returns Dependencies wired to buffers for testing.
func makeDeps(stdin string) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	deps := &Dependencies{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return deps, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRun - Conversion through injected dependencies
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		stdin        string
		flags        cliFlags
		wantContains []string
		wantExcludes []string
	}{
		{
			name:  "stdin to stdout full page",
			stdin: "# Test\n\nHello world.\n",
			wantContains: []string{
				"<!DOCTYPE html>",
				"<title>Unknown</title>",
				`<h1 id="test">Test</h1>`,
				"<p>Hello world.</p>",
				"</html>",
			},
		},
		{
			name:  "only body omits page shell",
			stdin: "# Test\n",
			flags: cliFlags{render: renderFlags{onlyBody: true}},
			wantContains: []string{
				`<h1 id="test">Test</h1>`,
			},
			wantExcludes: []string{
				"<!DOCTYPE html>",
				"<body>",
				"<title>",
			},
		},
		{
			name:  "title flag overrides",
			stdin: "# Test\n",
			flags: cliFlags{render: renderFlags{title: "My Title"}},
			wantContains: []string{
				"<title>My Title</title>",
			},
		},
		{
			name:  "metadata title used when no flag",
			stdin: "---\ntitle: Build Notes\n---\n\n# Intro\n",
			wantContains: []string{
				"<title>Build Notes</title>",
				`<h1 id="intro">Intro</h1>`,
			},
			wantExcludes: []string{
				"title: Build Notes</p>",
			},
		},
		{
			name:  "no-metadata treats block as content",
			stdin: "---\ntitle: Build Notes\n---\n\n# Intro\n",
			flags: cliFlags{parser: parserFlags{noMetadata: true}},
			wantContains: []string{
				"<title>Unknown</title>",
				"<hr>",
				"title: Build Notes",
			},
		},
		{
			name:  "tables parsed by default",
			stdin: "| A | B |\n| --- | --- |\n| 1 | 2 |\n",
			wantContains: []string{
				"<table>",
				"<th>A</th>",
			},
		},
		{
			name:  "no-tables leaves pipes as text",
			stdin: "| A | B |\n| --- | --- |\n| 1 | 2 |\n",
			flags: cliFlags{parser: parserFlags{noTables: true}},
			wantContains: []string{
				"| A | B |",
			},
			wantExcludes: []string{
				"<table>",
			},
		},
		{
			name:  "raw css flag replaces default stylesheet",
			stdin: "# Test\n",
			flags: cliFlags{render: renderFlags{css: "body { color: teal }"}},
			wantContains: []string{
				"body { color: teal }",
			},
			wantExcludes: []string{
				"font-size: 18px",
			},
		},
		{
			name:  "style name loads embedded css",
			stdin: "# Test\n",
			flags: cliFlags{render: renderFlags{css: "default"}},
			wantContains: []string{
				"font-family",
			},
		},
		{
			name:  "highlight replaces plain code blocks",
			stdin: "```\npackage main\n\nfunc main() {}\n```\n",
			flags: cliFlags{render: renderFlags{highlight: "github"}},
			wantContains: []string{
				"<pre",
				"<span",
			},
			wantExcludes: []string{
				"<pre><code>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, stdout, _ := makeDeps(tt.stdin)
			if err := run(&tt.flags, nil, deps); err != nil {
				t.Fatalf("run() error = %v", err)
			}

			output := stdout.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantExcludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("output should not contain %q", unwanted)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Files - File input and output
// ---------------------------------------------------------------------------

func TestRun_InputFile(t *testing.T) {
	t.Parallel()

	inputPath := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(inputPath, []byte("# From File\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	deps, stdout, _ := makeDeps("")
	if err := run(&cliFlags{}, []string{inputPath}, deps); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(stdout.String(), `<h1 id="from-file">From File</h1>`) {
		t.Errorf("output missing heading, got:\n%s", stdout.String())
	}
}

func TestRun_InputFileMissing(t *testing.T) {
	t.Parallel()

	deps, _, _ := makeDeps("")
	err := run(&cliFlags{}, []string{"/nonexistent/doc.md"}, deps)
	if !errors.Is(err, mmd.ErrFileOpen) {
		t.Errorf("run() error = %v, want ErrFileOpen", err)
	}
}

func TestRun_TooManyArgs(t *testing.T) {
	t.Parallel()

	deps, _, _ := makeDeps("")
	err := run(&cliFlags{}, []string{"a.md", "b.md"}, deps)
	if !errors.Is(err, ErrTooManyInputs) {
		t.Errorf("run() error = %v, want ErrTooManyInputs", err)
	}
}

func TestRun_OutputFile(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), "out.html")
	deps, stdout, stderr := makeDeps("# Test\n")

	flags := &cliFlags{output: outputPath, verbose: true}
	if err := run(flags, nil, deps); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(content), `<h1 id="test">Test</h1>`) {
		t.Error("output file missing heading")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty with -o, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Created "+outputPath) {
		t.Errorf("verbose stderr should report created file, got %q", stderr.String())
	}
}

func TestRun_OutputFileUnwritable(t *testing.T) {
	t.Parallel()

	deps, _, _ := makeDeps("# Test\n")
	flags := &cliFlags{output: "/nonexistent/dir/out.html"}
	err := run(flags, nil, deps)
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("run() error = %v, want ErrWriteOutput", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveCSS - Stylesheet resolution
// ---------------------------------------------------------------------------

func TestResolveCSS(t *testing.T) {
	t.Parallel()

	cssPath := filepath.Join(t.TempDir(), "style.css")
	if err := os.WriteFile(cssPath, []byte("/* marker */ h1 {}"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty passes through", value: "", want: ""},
		{name: "file path reads content", value: cssPath, want: "/* marker */ h1 {}"},
		{name: "raw css used directly", value: "body { margin: 0 }", want: "body { margin: 0 }"},
		{name: "missing file", value: "/nonexistent/style.css", wantErr: ErrReadCSS},
		{name: "unknown style name", value: "nope", wantErr: assets.ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveCSS(tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveCSS(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveCSS(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("resolveCSS(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}

	t.Run("embedded style name", func(t *testing.T) {
		t.Parallel()

		got, err := resolveCSS("default")
		if err != nil {
			t.Fatalf("resolveCSS(default) error = %v", err)
		}
		if !strings.Contains(got, "font-family") {
			t.Errorf("resolveCSS(default) = %q, want embedded CSS", got)
		}
	})
}
