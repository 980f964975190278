package main

// Notes:
// - hintFor: we test error-to-hint dispatch against the hints package
//   output. Hint wording itself is covered by the hints package tests.

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mmd "github.com/brvtalcake/mmd"
	"github.com/brvtalcake/mmd/internal/assets"
	"github.com/brvtalcake/mmd/internal/config"
	"github.com/brvtalcake/mmd/internal/hints"
)

// ---------------------------------------------------------------------------
// TestHintFor - Error to hint dispatch
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		configName string
		want       string
	}{
		{
			name:       "config not found by name suggests search paths",
			err:        config.ErrConfigNotFound,
			configName: "book",
			want:       hints.ForConfigNotFound(config.SearchPaths("book")),
		},
		{
			name:       "config not found by path skips search paths",
			err:        config.ErrConfigNotFound,
			configName: "./conf/book.yaml",
			want:       hints.ForConfigNotFound(nil),
		},
		{
			name: "chapter not found",
			err:  fmt.Errorf("%w: intro.md", ErrChapterNotFound),
			want: hints.ForChapterNotFound(),
		},
		{
			name: "style not found lists available styles",
			err:  mmd.ErrStyleNotFound,
			want: hints.ForStyleNotFound([]string{assets.DefaultStyleName}),
		},
		{
			name: "browser connect",
			err:  mmd.ErrBrowserConnect,
			want: hints.ForBrowserConnect(),
		},
		{
			name: "timeout",
			err:  fmt.Errorf("rendering: %w", context.DeadlineExceeded),
			want: hints.ForTimeout(),
		},
		{
			name: "write output",
			err:  ErrWriteOutput,
			want: hints.ForOutputDirectory(),
		},
		{
			name: "unknown error has no hint",
			err:  errors.New("something else"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err, tt.configName)
			if got != tt.want {
				t.Errorf("hintFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
