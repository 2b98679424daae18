// Package testutil provides testing utilities for the hobbytrack project.
package testutil

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/devserver"
	"github.com/pablasso/hobbytrack/internal/hobby"
)

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}

// NewBackend starts an in-memory dev backend seeded with seed and returns
// its base URL. A nil seed uses devserver.DefaultSeed.
func NewBackend(t *testing.T, seed []hobby.Hobby) string {
	t.Helper()

	if seed == nil {
		seed = devserver.DefaultSeed()
	}
	srv, err := devserver.New(devserver.Options{Seed: seed, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("failed to start dev backend: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}
