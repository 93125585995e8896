package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/tracing"

	"cloud.google.com/go/civil"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	HabitRepo *repository.HabitRepository
	LogRepo   *repository.HabitLogRepository
	Redis     *redis.Client
	Clock     *analytics.Clock
	CacheTTL  time.Duration
}

func NewAnalyticsService(
	habitRepo *repository.HabitRepository,
	logRepo *repository.HabitLogRepository,
	rdb *redis.Client,
	clock *analytics.Clock,
	cacheTTL time.Duration,
) *AnalyticsService {
	return &AnalyticsService{
		HabitRepo: habitRepo,
		LogRepo:   logRepo,
		Redis:     rdb,
		Clock:     clock,
		CacheTTL:  cacheTTL,
	}
}

func cacheKey(userID uint, today civil.Date, month string) string {
	return fmt.Sprintf("habit:analytics:%d:%s:%s", userID, today, month)
}

func (s *AnalyticsService) cacheEnabled() bool {
	return s != nil && s.Redis != nil && s.CacheTTL > 0
}

// GetSummary 用户维度的全部分析指标。month 为 "YYYY-MM"，空串表示本月，只影响日历完成度的范围。
// 所有指标使用同一个 today。
func (s *AnalyticsService) GetSummary(ctx context.Context, userID uint, month string) (*analytics.Summary, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.GetSummary")
	defer span.End()

	today := s.Clock.Today()
	if month == "" {
		month = fmt.Sprintf("%04d-%02d", today.Year, int(today.Month))
	}
	from, to, err := analytics.MonthRange(month)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("analytics.month", month))

	key := cacheKey(userID, today, month)
	if cached, ok := s.readCache(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	habits, err := s.HabitRepo.WithContext(ctx).FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.LogRepo.WithContext(ctx).FindByUser(userID, civil.Date{}, today)
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(habitInfos(habits, s.Clock), toEngineLogs(logs), from, to, today)
	monitoring.AnalyticsDuration.Observe(time.Since(start).Seconds())

	s.writeCache(ctx, key, &summary)
	return &summary, nil
}

func (s *AnalyticsService) readCache(ctx context.Context, key string) (*analytics.Summary, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	raw, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			monitoring.AnalyticsCacheResults.WithLabelValues("error").Inc()
			logger.Log.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		} else {
			monitoring.AnalyticsCacheResults.WithLabelValues("miss").Inc()
		}
		return nil, false
	}

	var summary analytics.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		monitoring.AnalyticsCacheResults.WithLabelValues("error").Inc()
		return nil, false
	}
	monitoring.AnalyticsCacheResults.WithLabelValues("hit").Inc()
	return &summary, true
}

func (s *AnalyticsService) writeCache(ctx context.Context, key string, summary *analytics.Summary) {
	if !s.cacheEnabled() {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, raw, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 删除用户的全部分析缓存，缓存未启用时什么都不做
func (s *AnalyticsService) Invalidate(ctx context.Context, userID uint) {
	if !s.cacheEnabled() {
		return
	}
	pattern := fmt.Sprintf("habit:analytics:%d:*", userID)
	iter := s.Redis.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("analytics cache scan failed", zap.Uint("userId", userID), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("analytics cache invalidate failed", zap.Uint("userId", userID), zap.Error(err))
	}
}
