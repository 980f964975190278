// Package assets provides the CSS styles and HTML templates used when
// assembling documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in style and cover template embedded at
// compile time. FilesystemLoader lets users supply their own assets from a
// directory, with path traversal protection and symlink resolution.
// Resolver tries the FilesystemLoader first and falls back to the embedded
// assets when a name is not found, so users can override one asset while
// keeping the defaults for the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # CSS styles
//	└── templates/
//	    └── {name}.html      # HTML templates (cover page)
//
// # Security
//
// Asset names are validated to reject path separators and traversal.
// FilesystemLoader additionally resolves symlinks and verifies that every
// path stays within basePath.
package assets
