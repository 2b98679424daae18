package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/backend"
	"github.com/pablasso/hobbytrack/internal/config"
	"github.com/pablasso/hobbytrack/internal/store"
	"github.com/pablasso/hobbytrack/internal/version"
)

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, context.Background(), "version")

	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
	assert.True(t, strings.HasPrefix(out, "hobbytrack "))
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commit_mode: fax\n"), 0644))

	_, err := executeCmd(t, context.Background(), "hobbies", "--config", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid commit mode")
}

func TestNewCommitter(t *testing.T) {
	client := backend.NewClient("http://localhost:8080", time.Second)
	logger := zap.NewNop()

	_, isHTTP := newCommitter(config.CommitHTTP, client, logger).(*backend.HTTPCommitter)
	assert.True(t, isHTTP)

	_, isLog := newCommitter(config.CommitLog, client, logger).(backend.LogCommitter)
	assert.True(t, isLog)
}

func TestNewController_UsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout())

	ctrl := newController(cfg, client, zap.NewNop())
	defer ctrl.Close()

	assert.Empty(t, ctrl.Snapshot().Hobbies)
}

func TestServeCmd_LockHeld(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "catalog.json")
	lock := store.NewLock(dataFile)
	require.NoError(t, lock.Acquire())
	t.Cleanup(func() { _ = lock.Release() })

	_, err := executeCmd(t, context.Background(), "serve", "--addr", "127.0.0.1:0", "--data", dataFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "in use")
}

func TestServeCmd_StopsWhenContextDone(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "catalog.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeCmd(t, ctx, "serve", "--addr", "127.0.0.1:0", "--data", dataFile)

	require.NoError(t, err)
	assert.Contains(t, out, "Serving hobby API on 127.0.0.1:0")
	assert.Contains(t, out, dataFile)

	locked, err := store.NewLock(dataFile).IsLocked()
	require.NoError(t, err)
	assert.False(t, locked, "lock must be released on shutdown")
}
