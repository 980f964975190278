package main

import (
	"errors"
	"os"

	mmd "github.com/brvtalcake/mmd"
	"github.com/brvtalcake/mmd/internal/config"
	"github.com/brvtalcake/mmd/internal/dateutil"
)

// Exit codes for mmdbook.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Book built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mmd.ErrBrowserConnect) ||
		errors.Is(err, mmd.ErrPageCreate) ||
		errors.Is(err, mmd.ErrPageLoad) ||
		errors.Is(err, mmd.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrChapterNotFound) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrNoChapters) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrEmptyChapter) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, mmd.ErrEmptyMarkdown) ||
		errors.Is(err, mmd.ErrLineTooLong) ||
		errors.Is(err, mmd.ErrInvalidTOCDepth) ||
		errors.Is(err, mmd.ErrInvalidFooterPosition) ||
		errors.Is(err, mmd.ErrStyleNotFound) ||
		errors.Is(err, mmd.ErrTemplateNotFound) ||
		errors.Is(err, mmd.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
