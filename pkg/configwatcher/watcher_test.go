package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: test\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, dir, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 就绪后再写入
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: debug\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "debug", cfg.Server.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing"), func(*config.Config) {})
	assert.Error(t, err)
}

func TestApplyLogLevel(t *testing.T) {
	defer logger.SetLevel("release")

	ApplyLogLevel(&config.Config{Server: config.ServerConfig{Mode: "debug"}})
	assert.Equal(t, zap.DebugLevel, logger.Level())

	ApplyLogLevel(&config.Config{Server: config.ServerConfig{Mode: "release"}})
	assert.Equal(t, zap.InfoLevel, logger.Level())
}
