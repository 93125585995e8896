package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/tracing"

	"cloud.google.com/go/civil"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HabitService struct {
	HabitRepo *repository.HabitRepository
	LogRepo   *repository.HabitLogRepository
	Analytics *AnalyticsService
	Clock     *analytics.Clock
	DB        *gorm.DB
}

func NewHabitService(
	habitRepo *repository.HabitRepository,
	logRepo *repository.HabitLogRepository,
	analyticsService *AnalyticsService,
	clock *analytics.Clock,
	db *gorm.DB,
) *HabitService {
	return &HabitService{
		HabitRepo: habitRepo,
		LogRepo:   logRepo,
		Analytics: analyticsService,
		Clock:     clock,
		DB:        db,
	}
}

type CreateHabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	StartDate   string `json:"startDate"`
}

// UpdateHabitRequest 为 nil 的字段保持不变
type UpdateHabitRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Frequency   *string `json:"frequency"`
	StartDate   *string `json:"startDate"`
}

type LogHabitRequest struct {
	Status string `json:"status" binding:"required"`
	// 可选，"YYYY-MM-DD" 或 RFC3339，默认今天
	Date string `json:"date"`
}

type HabitWithLogs struct {
	Habit *model.Habit     `json:"habit"`
	Logs  []model.HabitLog `json:"logs"`
}

type LogHabitResult struct {
	Log   *model.HabitLog `json:"log"`
	Habit *model.Habit    `json:"habit"`
}

type HabitStatsResult struct {
	Habit *model.Habit        `json:"habit"`
	Stats analytics.HabitStat `json:"stats"`
}

func parseFrequency(s string) (model.Frequency, error) {
	if s == "" {
		return model.FrequencyDaily, nil
	}
	f := model.Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", ErrInvalidFrequency
	}
	return f, nil
}

// parseStartDate 空串取今天；开始日期不能晚于今天
func (s *HabitService) parseStartDate(raw string, today civil.Date) (civil.Date, error) {
	if raw == "" {
		return today, nil
	}
	d, err := s.Clock.ParseDate(raw)
	if err != nil {
		return civil.Date{}, err
	}
	if d.After(today) {
		return civil.Date{}, fmt.Errorf("%w: start date %s is after today", ErrDateOutOfRange, d)
	}
	return d, nil
}

func (s *HabitService) findOwned(ctx context.Context, userID uint, habitID string) (*model.Habit, error) {
	habit, err := s.HabitRepo.WithContext(ctx).FindByIDAndUserID(habitID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	expireStreak(habit, s.Clock.Today())
	return habit, nil
}

// expireStreak 库中的 current_streak 只在打卡时刷新；最近一次记录不是今天的 done 时当前连续已经中断
func expireStreak(habit *model.Habit, today civil.Date) {
	if habit.LastLoggedDate == nil || habit.LastLoggedDate.Date != today || habit.LastStatus != model.LogDone {
		habit.CurrentStreak = 0
	}
}

func (s *HabitService) CreateHabit(ctx context.Context, userID uint, req CreateHabitRequest) (*model.Habit, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	frequency, err := parseFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	startDate, err := s.parseStartDate(req.StartDate, s.Clock.Today())
	if err != nil {
		return nil, err
	}

	habit := &model.Habit{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Frequency:   frequency,
		StartDate:   model.DatePtr(startDate),
	}
	if err := s.HabitRepo.WithContext(ctx).Create(habit); err != nil {
		return nil, err
	}

	s.Analytics.Invalidate(ctx, userID)
	logger.Log.Info("habit created", zap.Uint("userId", userID), zap.String("habitId", habit.ID))
	return habit, nil
}

func (s *HabitService) ListHabits(ctx context.Context, userID uint) ([]model.Habit, error) {
	habits, err := s.HabitRepo.WithContext(ctx).FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	today := s.Clock.Today()
	for i := range habits {
		expireStreak(&habits[i], today)
	}
	return habits, nil
}

func (s *HabitService) GetHabit(ctx context.Context, userID uint, habitID string) (*model.Habit, error) {
	return s.findOwned(ctx, userID, habitID)
}

func (s *HabitService) UpdateHabit(ctx context.Context, userID uint, habitID string, req UpdateHabitRequest) (*model.Habit, error) {
	habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		habit.Title = title
	}
	if req.Description != nil {
		habit.Description = strings.TrimSpace(*req.Description)
	}
	if req.Frequency != nil {
		f, err := parseFrequency(*req.Frequency)
		if err != nil {
			return nil, err
		}
		habit.Frequency = f
	}
	if req.StartDate != nil {
		d, err := s.parseStartDate(*req.StartDate, s.Clock.Today())
		if err != nil {
			return nil, err
		}
		habit.StartDate = model.DatePtr(d)
	}

	if err := s.HabitRepo.WithContext(ctx).Update(habit); err != nil {
		return nil, err
	}
	s.Analytics.Invalidate(ctx, userID)
	return habit, nil
}

func (s *HabitService) DeleteHabit(ctx context.Context, userID uint, habitID string) error {
	if err := s.HabitRepo.WithContext(ctx).DeleteWithLogs(habitID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHabitNotFound
		}
		return err
	}
	s.Analytics.Invalidate(ctx, userID)
	logger.Log.Info("habit deleted", zap.Uint("userId", userID), zap.String("habitId", habitID))
	return nil
}

// GetHabitLogs 返回习惯及其全部记录（最新在前）
func (s *HabitService) GetHabitLogs(ctx context.Context, userID uint, habitID string) (*HabitWithLogs, error) {
	habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	logs, err := s.LogRepo.WithContext(ctx).FindByHabit(habitID, true)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.HabitLog{}
	}
	return &HabitWithLogs{Habit: habit, Logs: logs}, nil
}

// LogHabit 记录某天的完成情况并同步刷新连续天数。
// 状态校验在任何写入之前；日期不能晚于今天，也不能早于习惯开始日期。
func (s *HabitService) LogHabit(ctx context.Context, userID uint, habitID string, req LogHabitRequest) (*LogHabitResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "HabitService.LogHabit")
	defer span.End()
	span.SetAttributes(attribute.String("habit.id", habitID))

	status := model.LogStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	today := s.Clock.Today()
	date := today
	if req.Date != "" {
		date, err = s.Clock.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
	}
	if date.After(today) {
		return nil, fmt.Errorf("%w: %s is after today", ErrDateOutOfRange, date)
	}
	if habit.StartDate != nil && date.Before(habit.StartDate.Date) {
		return nil, fmt.Errorf("%w: %s is before start date %s", ErrDateOutOfRange, date, habit.StartDate)
	}

	var saved *model.HabitLog
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		saved, err = s.LogRepo.WithTx(tx).Upsert(habitID, date, status)
		if err != nil {
			return err
		}
		_, err = s.recalculate(tx, habitID, today)
		return err
	})
	if err != nil {
		logger.Log.Error("log habit failed", zap.String("habitId", habitID), zap.Error(err))
		return nil, err
	}

	monitoring.HabitLogCounter.WithLabelValues(string(status)).Inc()
	s.Analytics.Invalidate(ctx, userID)

	updated, err := s.HabitRepo.WithContext(ctx).FindByID(habitID)
	if err != nil {
		return nil, err
	}
	expireStreak(updated, today)
	logger.Log.Debug("habit logged",
		zap.String("habitId", habitID),
		zap.String("date", date.String()),
		zap.String("status", string(status)),
		zap.Int("currentStreak", updated.CurrentStreak),
	)
	return &LogHabitResult{Log: saved, Habit: updated}, nil
}

// recalculate 在给定连接（可以是事务）上重新计算并写回派生字段
func (s *HabitService) recalculate(db *gorm.DB, habitID string, today civil.Date) (analytics.Streaks, error) {
	logs, err := s.LogRepo.WithTx(db).FindByHabit(habitID, false)
	if err != nil {
		return analytics.Streaks{}, err
	}
	engineLogs := toEngineLogs(logs)
	streaks := analytics.CalculateStreaks(engineLogs, today)

	fields := repository.DerivedFields{
		CurrentStreak: streaks.CurrentStreak,
		LongestStreak: streaks.LongestStreak,
	}
	if last, status, ok := analytics.LastEntry(engineLogs); ok {
		fields.LastLoggedDate = model.DatePtr(last)
		fields.LastStatus = status
	}
	if err := s.HabitRepo.WithTx(db).UpdateDerivedFields(habitID, fields); err != nil {
		return analytics.Streaks{}, err
	}
	return streaks, nil
}

// Recalculate 按今天重新计算单个习惯的派生字段
func (s *HabitService) Recalculate(ctx context.Context, habitID string) (analytics.Streaks, error) {
	var streaks analytics.Streaks
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		streaks, err = s.recalculate(tx, habitID, s.Clock.Today())
		return err
	})
	return streaks, err
}

// GetHabitStats 单个习惯的连续天数、完成率与最近一次记录
func (s *HabitService) GetHabitStats(ctx context.Context, userID uint, habitID string) (*HabitStatsResult, error) {
	habit, err := s.findOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	logs, err := s.LogRepo.WithContext(ctx).FindByHabit(habitID, false)
	if err != nil {
		return nil, err
	}

	stat := analytics.HabitStats(habitInfo(*habit, s.Clock), toEngineLogs(logs), s.Clock.Today())
	return &HabitStatsResult{Habit: habit, Stats: stat}, nil
}
