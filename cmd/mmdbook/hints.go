package main

import (
	"context"
	"errors"

	mmd "github.com/brvtalcake/mmd"
	"github.com/brvtalcake/mmd/internal/assets"
	"github.com/brvtalcake/mmd/internal/config"
	"github.com/brvtalcake/mmd/internal/fileutil"
	"github.com/brvtalcake/mmd/internal/hints"
)

// hintFor returns an actionable hint for err, or "". The config name feeds
// the search-path suggestion when the config was not found.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if configName == "" || fileutil.IsFilePath(configName) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, ErrChapterNotFound):
		return hints.ForChapterNotFound()
	case errors.Is(err, mmd.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{assets.DefaultStyleName})
	case errors.Is(err, mmd.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
