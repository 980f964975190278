package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mmd "github.com/brvtalcake/mmd"
	"github.com/brvtalcake/mmd/internal/config"
	"github.com/brvtalcake/mmd/internal/dateutil"
	"github.com/brvtalcake/mmd/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrTooManyInputs   = errors.New("too many arguments")
	ErrNoChapters      = errors.New("config lists no chapters")
	ErrChapterNotFound = errors.New("chapter file not found")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrWriteOutput     = errors.New("failed to write output")
)

// defaultConfigName is searched when no config is given.
const defaultConfigName = "book"

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// run builds one book from its config file.
func run(ctx context.Context, flags *cliFlags, args []string, deps *Dependencies) error {
	name, err := resolveConfigName(flags.book.config, args)
	if err != nil {
		return err
	}

	// Resolve the path first: chapter paths and the default output name
	// derive from the config file location.
	configPath, err := config.ResolvePath(name)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return err
	}

	mergeFlags(flags, cfg)

	if len(cfg.Chapters) == 0 {
		return fmt.Errorf("%w: %s", ErrNoChapters, configPath)
	}

	// Resolve "auto" dates once against the injected clock.
	cfg.Date, err = dateutil.ResolveDate(cfg.Date, deps.Now())
	if err != nil {
		return err
	}

	input, err := buildInput(cfg, filepath.Dir(configPath))
	if err != nil {
		return err
	}
	input.HTMLOnly = !flags.book.pdf

	opts, err := serviceOptions(cfg, flags)
	if err != nil {
		return err
	}

	svc, err := mmd.NewService(opts...)
	if err != nil {
		return err
	}
	defer svc.Close()

	start := deps.Now()
	result, err := svc.Convert(ctx, *input)
	if err != nil {
		return err
	}

	return writeBook(result, flags, configPath, deps, start)
}

// resolveConfigName picks the config name or path from the flag and the
// positional arguments. The flag wins; giving both is an error.
func resolveConfigName(configFlag string, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one config, got %d", ErrTooManyInputs, len(args))
	}
	if configFlag != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("%w: both --config and a positional config given", ErrTooManyInputs)
		}
		return configFlag, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return defaultConfigName, nil
}

// mergeFlags applies CLI overrides onto the loaded config. CLI wins.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.style.style != "" {
		cfg.Style = flags.style.style
	}
	if flags.style.highlight != "" {
		cfg.Highlight = flags.style.highlight
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.build.noCover {
		cfg.Cover.Enabled = false
	}
	if flags.build.noTOC {
		cfg.TOC.Enabled = false
	}
	if flags.build.noFooter {
		cfg.Footer.Enabled = false
	}
}

// buildInput assembles the conversion input from the config. Chapter paths
// resolve relative to the config file's directory, and each chapter keeps
// its own directory for relative image and link resolution.
func buildInput(cfg *config.Config, configDir string) (*mmd.Input, error) {
	chapters := make([]mmd.Chapter, 0, len(cfg.Chapters))
	for _, rel := range cfg.Chapters {
		path := resolveChapterPath(rel, configDir)
		if !fileutil.FileExists(path) {
			return nil, fmt.Errorf("%w: %s", ErrChapterNotFound, path)
		}
		content, err := os.ReadFile(path) // #nosec G304 -- config-provided path
		if err != nil {
			return nil, fmt.Errorf("reading chapter %s: %w", path, err)
		}
		chapters = append(chapters, mmd.Chapter{
			Markdown:  string(content),
			SourceDir: filepath.Dir(path),
		})
	}

	input := &mmd.Input{
		Chapters: chapters,
		Title:    cfg.Title,
	}

	if cfg.Cover.Enabled {
		input.Cover = &mmd.Cover{
			Title:     cfg.Title,
			Subtitle:  cfg.Subtitle,
			Author:    cfg.Author,
			Copyright: cfg.Copyright,
			Version:   cfg.Version,
			Date:      cfg.Date,
			Image:     coverImagePath(cfg.Cover.Image, configDir),
		}
	}

	if cfg.TOC.Enabled {
		input.TOC = &mmd.TOC{Title: cfg.TOC.Title, MaxDepth: cfg.TOC.MaxDepth}
	}

	if cfg.Footer.Enabled {
		input.Footer = &mmd.Footer{
			Text:        cfg.Footer.Text,
			Position:    cfg.Footer.Position,
			PageNumbers: cfg.Footer.ShowPageNumber,
		}
	}

	return input, nil
}

// resolveChapterPath resolves a chapter entry against the config directory.
func resolveChapterPath(chapter, configDir string) string {
	if filepath.IsAbs(chapter) {
		return chapter
	}
	return filepath.Join(configDir, chapter)
}

// coverImagePath absolutizes a local cover image against the config
// directory so it resolves from wherever the output page is loaded.
// URLs pass through untouched. The path stays scheme-less: the cover
// template escapes file:// URLs, and browsers resolve a bare absolute
// path against the page's own file:// base.
func coverImagePath(image, configDir string) string {
	if image == "" || fileutil.IsURL(image) {
		return image
	}
	path := image
	if !filepath.IsAbs(path) {
		path = filepath.Join(configDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return image
	}
	return abs
}

// serviceOptions maps config appearance settings onto service options.
func serviceOptions(cfg *config.Config, flags *cliFlags) ([]mmd.ServiceOption, error) {
	var opts []mmd.ServiceOption
	if cfg.Style != "" {
		opts = append(opts, mmd.WithStyle(cfg.Style))
	}
	if cfg.Highlight != "" {
		opts = append(opts, mmd.WithHighlightStyle(cfg.Highlight))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mmd.WithAssetPath(cfg.Assets.BasePath))
	}
	if flags.build.timeout != "" {
		d, err := time.ParseDuration(flags.build.timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		opts = append(opts, mmd.WithTimeout(d))
	}
	return opts, nil
}

// outputPath derives the output file for the given extension. Empty output
// names the file after the config in the current directory; an output with
// an extension is used as-is; anything else is treated as a directory.
func outputPath(output, configPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath)) + ext
	if output == "" {
		return base
	}
	if filepath.Ext(output) != "" {
		return output
	}
	return filepath.Join(output, base)
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}

// writeBook writes the conversion outputs and reports them.
func writeBook(result *mmd.ConvertResult, flags *cliFlags, configPath string, deps *Dependencies, start time.Time) error {
	ext := ".html"
	if flags.book.pdf {
		ext = ".pdf"
	}
	outPath := outputPath(flags.book.output, configPath, ext)

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if flags.book.pdf {
		if flags.book.html {
			htmlPath := htmlOutputPath(outPath)
			if err := writeFile(htmlPath, result.HTML); err != nil {
				return err
			}
			report(htmlPath, flags, configPath, deps, start)
		}
		if err := writeFile(outPath, result.PDF); err != nil {
			return err
		}
	} else {
		if err := writeFile(outPath, result.HTML); err != nil {
			return err
		}
	}
	report(outPath, flags, configPath, deps, start)

	return nil
}

// writeFile writes one output artifact.
func writeFile(path string, data []byte) error {
	// #nosec G306 -- rendered books are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// report prints one created output. Progress goes to stdout, quiet mode
// suppresses it, verbose mode adds source and timing.
func report(path string, flags *cliFlags, configPath string, deps *Dependencies, start time.Time) {
	if flags.quiet {
		return
	}
	if flags.verbose {
		elapsed := deps.Now().Sub(start).Round(time.Millisecond)
		fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", configPath, path, elapsed)
		return
	}
	fmt.Fprintf(deps.Stdout, "Created %s\n", path)
}
