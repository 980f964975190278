package assets

import "errors"

// Resolver combines a custom filesystem loader with the embedded loader.
// Lookups try the custom location first and fall back to embedded assets
// when the name is not found there.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath yields embedded
// assets only; otherwise custom assets take precedence with fallback.
// Returns an error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadStyle loads a CSS style, trying the custom loader first.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.load(func(l Loader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate loads an HTML template, trying the custom loader first.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.load(func(l Loader) (string, error) { return l.LoadTemplate(name) })
}

// load implements the custom-first, fallback-to-embedded logic.
// Only not-found errors fall back; validation and I/O errors surface.
func (r *Resolver) load(loadFn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	if !isNotFound(err) {
		return "", err
	}

	return loadFn(r.embedded)
}

// HasCustomLoader reports whether a custom asset location is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
