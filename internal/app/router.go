package app

import (
	"habit_tracker_backend/docs"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/middleware"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共与授权接口共用一个限流器
	limiter := security.RateLimiter(cfg.RateLimit)

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	public.Use(limiter)
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(&cfg.JWT), limiter)
	{
		a.registerHabitRoutes(authGroup, c)
		a.registerAnalyticsRoutes(authGroup, c)
		a.registerChallengeRoutes(authGroup, c)
	}
}

func (a *App) registerHabitRoutes(rg *gin.RouterGroup, c *controllers) {
	habits := rg.Group("/habits")
	{
		habits.POST("", c.habit.CreateHabit)
		habits.GET("", c.habit.ListHabits)
		habits.GET("/:id", c.habit.GetHabit)
		habits.PATCH("/:id", c.habit.UpdateHabit)
		habits.DELETE("/:id", c.habit.DeleteHabit)
		habits.GET("/:id/logs", c.habit.GetHabitLogs)
		habits.POST("/:id/log", c.habit.LogHabit)
		habits.GET("/:id/stats", c.habit.GetHabitStats)
	}
}

func (a *App) registerAnalyticsRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/analytics", c.analytics.GetSummary)
}

func (a *App) registerChallengeRoutes(rg *gin.RouterGroup, c *controllers) {
	challenge := rg.Group("/challenge")
	{
		challenge.POST("/start", c.challenge.Start)
		challenge.GET("/current", c.challenge.Current)
		challenge.PUT("/update/:id", c.challenge.Update)
		challenge.POST("/done/:id/:index", c.challenge.MarkDone)
		challenge.GET("/heatmap", c.challenge.Heatmap)
	}
}
