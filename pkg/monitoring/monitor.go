package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// HabitLogCounter 按状态统计打卡次数
	HabitLogCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_logs_total",
			Help: "Total number of habit log upserts",
		},
		[]string{"status"},
	)

	// AnalyticsDuration 汇总分析计算耗时（不含缓存命中）
	AnalyticsDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Duration of analytics summary computation",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// AnalyticsCacheResults 缓存命中情况：hit / miss / error
	AnalyticsCacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_requests_total",
			Help: "Analytics cache lookups by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(HabitLogCounter)
		prometheus.MustRegister(AnalyticsDuration)
		prometheus.MustRegister(AnalyticsCacheResults)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
