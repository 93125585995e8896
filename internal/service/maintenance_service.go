package service

import (
	"context"

	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/pkg/logger"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"
)

// MaintenanceService 数据修复与批量重算，供运维脚本使用
type MaintenanceService struct {
	HabitRepo *repository.HabitRepository
	LogRepo   *repository.HabitLogRepository
	Habits    *HabitService
	Clock     *analytics.Clock
}

func NewMaintenanceService(
	habitRepo *repository.HabitRepository,
	logRepo *repository.HabitLogRepository,
	habits *HabitService,
	clock *analytics.Clock,
) *MaintenanceService {
	return &MaintenanceService{
		HabitRepo: habitRepo,
		LogRepo:   logRepo,
		Habits:    habits,
		Clock:     clock,
	}
}

type FixedHabit struct {
	ID        string          `json:"id"`
	Frequency model.Frequency `json:"frequency"`
	StartDate civil.Date      `json:"startDate"`
	// first_log / created_at / existing
	StartDateSource string `json:"startDateSource"`
}

type FixMetadataReport struct {
	Scanned int          `json:"scanned"`
	Fixed   []FixedHabit `json:"fixed"`
}

func validRaw(s *string) (civil.Date, bool) {
	if s == nil || *s == "" {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(*s)
	if err != nil {
		return civil.Date{}, false
	}
	return d, true
}

// FixMetadata 补齐缺失的 frequency（按每日）与 startDate（第一条记录的日期，没有记录时取创建日期）
func (s *MaintenanceService) FixMetadata(ctx context.Context) (*FixMetadataReport, error) {
	habitRepo := s.HabitRepo.WithContext(ctx)
	rows, err := habitRepo.FindMissingMetadata()
	if err != nil {
		return nil, err
	}

	report := &FixMetadataReport{Scanned: len(rows), Fixed: []FixedHabit{}}
	for _, row := range rows {
		fixed := FixedHabit{ID: row.ID, Frequency: model.FrequencyDaily}
		if row.Frequency != nil && model.Frequency(*row.Frequency).Valid() {
			fixed.Frequency = model.Frequency(*row.Frequency)
		}

		if d, ok := validRaw(row.StartDate); ok {
			fixed.StartDate, fixed.StartDateSource = d, "existing"
		} else {
			raw, found, err := s.LogRepo.WithContext(ctx).FirstRawDate(row.ID)
			if err != nil {
				return nil, err
			}
			if d, ok := validRaw(&raw); found && ok {
				fixed.StartDate, fixed.StartDateSource = d, "first_log"
			} else {
				fixed.StartDate, fixed.StartDateSource = s.Clock.Normalize(row.CreatedAt), "created_at"
			}
		}

		if err := habitRepo.UpdateMetadata(row.ID, fixed.Frequency, model.NewDate(fixed.StartDate)); err != nil {
			return nil, err
		}
		report.Fixed = append(report.Fixed, fixed)
		logger.Log.Info("habit metadata fixed",
			zap.String("habitId", row.ID),
			zap.String("startDate", fixed.StartDate.String()),
			zap.String("source", fixed.StartDateSource),
		)
	}
	return report, nil
}

type HabitRecalcResult struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	CompletionRate int    `json:"completionRate"`
	Error          string `json:"error,omitempty"`
}

type RecalculateReport struct {
	Updated int                 `json:"updated"`
	Failed  int                 `json:"failed"`
	Habits  []HabitRecalcResult `json:"habits"`
}

// RecalculateAll 逐个习惯重算派生字段，单个失败不影响其他习惯
func (s *MaintenanceService) RecalculateAll(ctx context.Context) (*RecalculateReport, error) {
	habits, err := s.HabitRepo.WithContext(ctx).FindAll()
	if err != nil {
		return nil, err
	}

	today := s.Clock.Today()
	report := &RecalculateReport{Habits: make([]HabitRecalcResult, 0, len(habits))}
	for _, h := range habits {
		result := HabitRecalcResult{ID: h.ID, Title: h.Title}

		streaks, err := s.Habits.Recalculate(ctx, h.ID)
		if err != nil {
			report.Failed++
			result.Error = err.Error()
			report.Habits = append(report.Habits, result)
			logger.Log.Error("recalculate habit failed", zap.String("habitId", h.ID), zap.Error(err))
			continue
		}

		logs, err := s.LogRepo.WithContext(ctx).FindByHabit(h.ID, false)
		if err != nil {
			return nil, err
		}
		stat := analytics.HabitStats(habitInfo(h, s.Clock), toEngineLogs(logs), today)

		result.CurrentStreak = streaks.CurrentStreak
		result.LongestStreak = streaks.LongestStreak
		result.CompletionRate = stat.CompletionRate
		report.Updated++
		report.Habits = append(report.Habits, result)
	}
	return report, nil
}

type DateIssue struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	ID     string `json:"id"`
	Value  string `json:"value"`
	Error  string `json:"error"`
}

// VerifyDates 检查库中所有日期文本是否为严格的 YYYY-MM-DD
func (s *MaintenanceService) VerifyDates(ctx context.Context) ([]DateIssue, error) {
	habitDates, err := s.HabitRepo.WithContext(ctx).RawDates()
	if err != nil {
		return nil, err
	}
	logDates, err := s.LogRepo.WithContext(ctx).RawDates()
	if err != nil {
		return nil, err
	}

	issues := []DateIssue{}
	for _, raw := range append(habitDates, logDates...) {
		value := ""
		if raw.Value != nil {
			value = *raw.Value
		}
		if _, err := civil.ParseDate(value); err != nil {
			issues = append(issues, DateIssue{
				Table:  raw.Table,
				Column: raw.Column,
				ID:     raw.ID,
				Value:  value,
				Error:  err.Error(),
			})
		}
	}
	return issues, nil
}
