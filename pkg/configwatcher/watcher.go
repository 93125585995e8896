package configwatcher

import (
	"context"
	"path/filepath"
	"time"

	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigReloader 配置文件变化并成功重新加载后调用
type ConfigReloader func(cfg *config.Config)

const debounce = time.Second

// WatchConfig 监听配置目录中的 config.yaml，阻塞直到 ctx 结束。
// 编辑器常以“写临时文件再重命名”的方式保存，所以监听目录而不是文件本身。
func WatchConfig(ctx context.Context, configDir string, reloader ConfigReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return err
	}
	if err := watcher.Add(absDir); err != nil {
		return err
	}
	target := filepath.Join(absDir, "config.yaml")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// 防抖处理
				timer.Reset(debounce)
			}
		case <-timer.C:
			newCfg, err := config.LoadConfig(configDir)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("path", target))
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

// ApplyLogLevel 只有日志级别支持热更新，其余配置需要重启生效
func ApplyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.Server.Mode)
}
