// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vk/memscope/internal/ctxlog"
)

// Context returns a context carrying a discard logger, satisfying ctxlog
// without polluting test output.
func Context(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// TempImage writes a throwaway file standing in for a memory image and
// returns its path.
func TempImage(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.raw")
	if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
		t.Fatalf("writing temp image: %v", err)
	}
	return path
}
