// @title Habit Tracker 后端 API
// @version 1.0
// @description 习惯打卡、连续天数统计与21天挑战的后端服务。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"

	"habit_tracker_backend/internal/app"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/pkg/configwatcher"
	"habit_tracker_backend/pkg/database"
	"habit_tracker_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	// 迁移完成后直接退出
	if cfg.MigrateOnly {
		logger.InitLogger(cfg)
		defer logger.Log.Sync()
		if _, err := database.InitDB(&cfg.Database, cfg.Server.Mode); err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer logger.Log.Sync()

	// 配置热更新：目前只有日志级别
	application.RegisterConfigCallback(configwatcher.ApplyLogLevel)
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, *configDir, application.ApplyConfig); err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}()

	if err := application.Run(); err != nil {
		logger.Log.Fatal("Server stopped with error", zap.Error(err))
	}
}
