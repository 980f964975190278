package mmd

import "errors"

// Sentinel errors for library operations.
var (
	// Parsing errors.
	ErrNilReader   = errors.New("nil reader")
	ErrFileOpen    = errors.New("cannot open file")
	ErrRead        = errors.New("cannot read input")
	ErrLineTooLong = errors.New("input line exceeds buffer limit")

	// Metadata errors.
	ErrNoMetadata     = errors.New("document has no metadata block")
	ErrMetadataDecode = errors.New("metadata decoding failed")

	// Rendering errors.
	ErrNilWriter = errors.New("nil writer")
	ErrNilNode   = errors.New("nil node")
	ErrRender    = errors.New("HTML rendering failed")

	// PDF export errors.
	ErrEmptyHTML      = errors.New("HTML content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Service errors.
	ErrEmptyMarkdown         = errors.New("markdown content cannot be empty")
	ErrServiceClosed         = errors.New("service is closed")
	ErrInvalidTOCDepth       = errors.New("invalid TOC depth")
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
