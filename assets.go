package mmd

import (
	"errors"

	"github.com/brvtalcake/mmd/internal/assets"
)

// DefaultStyle is the name of the built-in CSS style. Pass it to WithStyle
// to restore the default after experimenting with custom styles.
const DefaultStyle = "default"

// convertAssetError maps internal asset errors to public sentinels so
// callers can classify failures without importing internal packages.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapAssetError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapAssetError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapAssetError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapAssetError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapAssetError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapAssetError creates a new error that wraps the original with a public
// sentinel. The result preserves the original message via Error() and
// supports errors.Is() matching against the sentinel via Unwrap().
func wrapAssetError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they live in internal packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
