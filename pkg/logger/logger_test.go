package logger

import (
	"path/filepath"
	"testing"

	"habit_tracker_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("release") })

	SetLevel("debug")
	assert.Equal(t, zap.DebugLevel, Level())

	SetLevel("release")
	assert.Equal(t, zap.InfoLevel, Level())
}

func TestInitLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Log.Path = filepath.Join(t.TempDir(), "app.log")

	InitLogger(cfg)
	assert.NotNil(t, Log)
	assert.True(t, Log.Core().Enabled(zap.DebugLevel))

	// 热更新后，已经创建的 logger 跟随新的级别
	SetLevel("release")
	assert.False(t, Log.Core().Enabled(zap.DebugLevel))
}
