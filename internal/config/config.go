// Package config loads and validates book configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brvtalcake/mmd/internal/fileutil"
	"github.com/brvtalcake/mmd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrEmptyChapter    = errors.New("chapter path cannot be empty")
)

// Field length limits for multi-tenant safety.
const (
	MaxTitleLength     = 200  // Book title
	MaxSubtitleLength  = 200  // Book subtitle
	MaxAuthorLength    = 100  // Author name
	MaxCopyrightLength = 200  // Copyright notice
	MaxVersionLength   = 50   // Version string
	MaxDateLength      = 60   // Literal date or "auto:FORMAT"
	MaxTextLength      = 500  // Footer free-form text
	MaxURLLength       = 2048 // Browser limit
	MaxTOCTitleLength  = 100  // TOC title
	MaxPositionLength  = 10   // "left", "center", "right"
)

// Config holds all configuration for building a book.
// Top-level metadata doubles as the cover page content.
type Config struct {
	Title     string       `yaml:"title"`
	Subtitle  string       `yaml:"subtitle"`
	Author    string       `yaml:"author"`
	Copyright string       `yaml:"copyright"`
	Version   string       `yaml:"version"`
	Date      string       `yaml:"date"`      // Literal, "auto", or "auto:FORMAT"
	Style     string       `yaml:"style"`     // Style name, CSS file path, or raw CSS
	Highlight string       `yaml:"highlight"` // Syntax highlighting style for code blocks
	Cover     CoverConfig  `yaml:"cover"`
	Assets    AssetsConfig `yaml:"assets"`
	TOC       TOCConfig    `yaml:"toc"`
	Footer    FooterConfig `yaml:"footer"`
	Chapters  []string     `yaml:"chapters"` // Markdown files, relative to the config file
}

// CoverConfig defines cover page options.
type CoverConfig struct {
	Enabled bool   `yaml:"enabled"`
	Image   string `yaml:"image"` // Optional, path or URL
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // Empty = no title above TOC
	MaxDepth int    `yaml:"maxDepth"` // 1-6, 0 = default
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "right")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Text           string `yaml:"text"` // Optional free-form text
}

// Validate checks field lengths and enum values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("title", c.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("subtitle", c.Subtitle, MaxSubtitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("author", c.Author, MaxAuthorLength); err != nil {
		return err
	}
	if err := validateFieldLength("copyright", c.Copyright, MaxCopyrightLength); err != nil {
		return err
	}
	if err := validateFieldLength("version", c.Version, MaxVersionLength); err != nil {
		return err
	}
	if err := validateFieldLength("date", c.Date, MaxDateLength); err != nil {
		return err
	}

	if err := validateFieldLength("cover.image", c.Cover.Image, MaxURLLength); err != nil {
		return err
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if c.TOC.Enabled && c.TOC.MaxDepth != 0 {
		if c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6 {
			return fmt.Errorf("toc.maxDepth: must be between 1 and 6, got %d", c.TOC.MaxDepth)
		}
	}

	if err := validateFieldLength("footer.text", c.Footer.Text, MaxTextLength); err != nil {
		return err
	}
	if err := validateFieldLength("footer.position", c.Footer.Position, MaxPositionLength); err != nil {
		return err
	}
	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
			// valid
		default:
			return fmt.Errorf("footer.position: invalid value %q (must be left, center, or right)", c.Footer.Position)
		}
	}

	for i, ch := range c.Chapters {
		if strings.TrimSpace(ch) == "" {
			return fmt.Errorf("%w: chapters[%d]", ErrEmptyChapter, i)
		}
		if err := validateFieldLength(fmt.Sprintf("chapters[%d]", i), ch, MaxURLLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration for a plain book: cover and TOC
// on, footer off, embedded assets.
func DefaultConfig() *Config {
	return &Config{
		Date:   "auto",
		Cover:  CoverConfig{Enabled: true},
		TOC:    TOCConfig{Enabled: true, Title: "Table of Contents", MaxDepth: 3},
		Footer: FooterConfig{Enabled: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	configPath, err := ResolvePath(nameOrPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolvePath returns the config file path LoadConfig would read for
// nameOrPath: paths pass through untouched, names search the standard
// locations. Callers that resolve other files relative to the config
// use this to learn its directory.
func ResolvePath(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if fileutil.IsFilePath(nameOrPath) {
		return nameOrPath, nil
	}
	return resolveConfigPath(nameOrPath)
}

// SearchPaths returns the candidate paths LoadConfig would try for a config
// name, in resolution order. Useful for error hints.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "mmd", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mmd/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)

	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
