package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/controller"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/pkg/database"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/security"
	"habit_tracker_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Clock           *analytics.Clock
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	habit     *repository.HabitRepository
	habitLog  *repository.HabitLogRepository
	challenge *repository.ChallengeRepository
}

type services struct {
	habit       *service.HabitService
	analytics   *service.AnalyticsService
	challenge   *service.ChallengeService
	maintenance *service.MaintenanceService
}

type controllers struct {
	habit     *controller.HabitController
	analytics *controller.AnalyticsController
	challenge *controller.ChallengeController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新时依次调用已注册的回调
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		habit:     repository.NewHabitRepository(db),
		habitLog:  repository.NewHabitLogRepository(db),
		challenge: repository.NewChallengeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.analytics = service.NewAnalyticsService(repos.habit, repos.habitLog, rdb, a.Clock, cfg.Analytics.CacheTTL())
	s.habit = service.NewHabitService(repos.habit, repos.habitLog, s.analytics, a.Clock, db)
	s.challenge = service.NewChallengeService(repos.challenge, a.Clock)
	s.maintenance = service.NewMaintenanceService(repos.habit, repos.habitLog, s.habit, a.Clock)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		habit:     controller.NewHabitController(s.habit),
		analytics: controller.NewAnalyticsController(s.analytics),
		challenge: controller.NewChallengeController(s.challenge),
		health:    controller.NewHealthController(db, rdb),
	}
}

// Maintenance 数据修复服务，供运维命令使用
func (a *App) Maintenance() *service.MaintenanceService {
	return a.services.maintenance
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已经建立的连接组装应用，不做任何外部初始化。clock 为 nil 时按配置的时区偏移创建
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, clock *analytics.Clock) *App {
	if clock == nil {
		clock = analytics.NewClock(cfg.Analytics.TimezoneOffsetMinutes)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Clock:  clock,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}

// NewApp 初始化日志、数据库、Redis 与追踪后组装应用
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Error("Failed to initialize redis", zap.Error(err))
		return nil, err
	}

	tp, err := tracing.InitTracer(&cfg.Tracing)
	if err != nil {
		logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		return nil, err
	}

	app := New(cfg, db, rdb, nil)
	app.tracer = tp
	return app, nil
}

// Run 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 等待进行中的请求结束（最多5秒）
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放追踪、Redis 与数据库连接
func (a *App) Close(ctx context.Context) {
	if err := tracing.Shutdown(ctx, a.tracer); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
