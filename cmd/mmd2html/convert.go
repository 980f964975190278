package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	mmd "github.com/brvtalcake/mmd"
	"github.com/brvtalcake/mmd/internal/assets"
	"github.com/brvtalcake/mmd/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrTooManyInputs = errors.New("too many arguments")
	ErrReadCSS       = errors.New("failed to read CSS file")
	ErrWriteOutput   = errors.New("failed to write output")
)

// filePermissions for generated HTML files (rw-r--r--).
const filePermissions = 0o644

// run converts one Markdown document to HTML.
func run(flags *cliFlags, args []string, deps *Dependencies) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: want one input file, got %d", ErrTooManyInputs, len(args))
	}

	css, err := resolveCSS(flags.render.css)
	if err != nil {
		return err
	}

	doc, err := loadDocument(flags.parser, args, deps)
	if err != nil {
		return err
	}
	defer doc.Free()

	var buf bytes.Buffer
	if err := mmd.NewRenderer(renderOptions(flags, css)...).Render(&buf, doc); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	return writeOutput(flags.output, buf.Bytes(), flags.verbose, deps)
}

// loadDocument parses the positional input file, or stdin when none is given.
func loadDocument(pf parserFlags, args []string, deps *Dependencies) (*mmd.Node, error) {
	var opts []mmd.Option
	if pf.noMetadata {
		opts = append(opts, mmd.WithoutMetadata())
	}
	if pf.noTables {
		opts = append(opts, mmd.WithoutTables())
	}

	if len(args) == 1 {
		return mmd.ParseFile(args[0], opts...)
	}
	return mmd.Parse(deps.Stdin, opts...)
}

// resolveCSS turns the --css value (name, path, or CSS content) into CSS.
func resolveCSS(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	if fileutil.IsFilePath(value) {
		content, err := os.ReadFile(value) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(content), nil
	}

	if fileutil.IsCSS(value) {
		return value, nil
	}

	return assets.NewEmbeddedLoader().LoadStyle(value)
}

// renderOptions maps CLI flags onto renderer options.
func renderOptions(flags *cliFlags, css string) []mmd.RenderOption {
	var opts []mmd.RenderOption
	if flags.render.onlyBody {
		opts = append(opts, mmd.WithOnlyBody())
	}
	if flags.render.title != "" {
		opts = append(opts, mmd.WithTitle(flags.render.title))
	}
	if css != "" {
		opts = append(opts, mmd.WithStylesheet(css))
	}
	if flags.render.highlight != "" {
		opts = append(opts, mmd.WithHighlighting(flags.render.highlight))
	}
	return opts
}

// writeOutput writes the rendered HTML to the -o file, or stdout by default.
// Progress goes to stderr so it never mixes with piped output.
func writeOutput(path string, html []byte, verbose bool, deps *Dependencies) error {
	if path == "" {
		if _, err := deps.Stdout.Write(html); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	// #nosec G306 -- generated HTML is meant to be readable
	if err := os.WriteFile(path, html, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if verbose {
		fmt.Fprintf(deps.Stderr, "Created %s\n", path)
	}
	return nil
}
