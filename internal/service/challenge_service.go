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

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MinChallengeHabits 开始挑战至少需要的习惯数
const MinChallengeHabits = 6

type ChallengeService struct {
	Repo  *repository.ChallengeRepository
	Clock *analytics.Clock
}

func NewChallengeService(repo *repository.ChallengeRepository, clock *analytics.Clock) *ChallengeService {
	return &ChallengeService{Repo: repo, Clock: clock}
}

type ChallengeHabitInput struct {
	Title string `json:"title"`
	// "HH:MM" 或 "hh:MM AM/PM"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ChallengeHabitsRequest struct {
	Habits []ChallengeHabitInput `json:"habits"`
}

type CurrentChallenge struct {
	Active    bool                     `json:"active"`
	Challenge *model.Challenge         `json:"challenge,omitempty"`
	Days      []analytics.ChallengeDay `json:"days,omitempty"`
}

type ChallengeHeatmap struct {
	Heatmap   []analytics.HeatmapDay  `json:"heatmap"`
	Stats     *analytics.HeatmapStats `json:"stats"`
	Challenge *model.Challenge        `json:"challenge,omitempty"`
}

// normalizeHabits 校验数量与时间窗，时间统一转成 24 小时制
func normalizeHabits(inputs []ChallengeHabitInput) ([]model.ChallengeHabit, error) {
	if len(inputs) < MinChallengeHabits {
		return nil, ErrTooFewHabits
	}

	habits := make([]model.ChallengeHabit, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			return nil, fmt.Errorf("habit %d: %w", i, ErrTitleRequired)
		}
		start, err := analytics.ParseClock(in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("habit %d start: %w", i, err)
		}
		end, err := analytics.ParseClock(in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("habit %d end: %w", i, err)
		}
		if end < start {
			return nil, fmt.Errorf("habit %d: %w: end %s before start %s", i, ErrInvalidTime, in.EndTime, in.StartTime)
		}
		habits = append(habits, model.ChallengeHabit{
			Position:  i,
			Title:     title,
			StartTime: analytics.FormatClock(start),
			EndTime:   analytics.FormatClock(end),
		})
	}
	return habits, nil
}

func windows(habits []model.ChallengeHabit) ([]analytics.Window, error) {
	out := make([]analytics.Window, 0, len(habits))
	for _, h := range habits {
		start, err := analytics.ParseClock(h.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := analytics.ParseClock(h.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, analytics.Window{Start: start, End: end})
	}
	return out, nil
}

func doneSet(logs []model.ChallengeLog) analytics.DoneSet {
	set := analytics.DoneSet{}
	for _, l := range logs {
		if l.Status == model.LogDone {
			set.Add(l.Date.Date, l.HabitIndex)
		}
	}
	return set
}

func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// Start 从今天开始一个新的 21 天挑战，之前进行中的挑战自动结束
func (s *ChallengeService) Start(ctx context.Context, userID uint, req ChallengeHabitsRequest) (*model.Challenge, error) {
	habits, err := normalizeHabits(req.Habits)
	if err != nil {
		return nil, err
	}

	today := s.Clock.Today()
	challenge := &model.Challenge{
		UserID:    userID,
		StartDate: model.NewDate(today),
		EndDate:   model.NewDate(today.AddDays(analytics.ChallengeDays - 1)),
		IsActive:  true,
		Habits:    habits,
	}
	if err := s.Repo.WithContext(ctx).Create(challenge); err != nil {
		return nil, err
	}
	logger.Log.Info("challenge started", zap.Uint("userId", userID), zap.String("challengeId", challenge.ID))
	return challenge, nil
}

// Update 替换挑战中的习惯列表
func (s *ChallengeService) Update(ctx context.Context, userID uint, challengeID string, req ChallengeHabitsRequest) (*model.Challenge, error) {
	habits, err := normalizeHabits(req.Habits)
	if err != nil {
		return nil, err
	}

	repo := s.Repo.WithContext(ctx)
	if _, err := repo.FindByIDAndUserID(challengeID, userID); err != nil {
		return nil, notFoundAs(err, ErrChallengeNotFound)
	}
	if err := repo.ReplaceHabits(challengeID, habits); err != nil {
		return nil, err
	}
	return repo.FindByIDAndUserID(challengeID, userID)
}

// Current 进行中的挑战及 21 天 × 习惯的状态表
func (s *ChallengeService) Current(ctx context.Context, userID uint) (*CurrentChallenge, error) {
	repo := s.Repo.WithContext(ctx)
	challenge, err := repo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CurrentChallenge{Active: false}, nil
		}
		return nil, err
	}

	logs, err := repo.FindLogs(challenge.ID)
	if err != nil {
		return nil, err
	}
	ws, err := windows(challenge.Habits)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	days := analytics.BuildChallengeDays(challenge.StartDate.Date, ws, doneSet(logs), s.Clock.Normalize(now), analytics.MinuteOf(now))
	return &CurrentChallenge{Active: true, Challenge: challenge, Days: days}, nil
}

// MarkDone 在时间窗内把今天的某个习惯标记为完成
func (s *ChallengeService) MarkDone(ctx context.Context, userID uint, challengeID string, index int) error {
	repo := s.Repo.WithContext(ctx)
	challenge, err := repo.FindByIDAndUserID(challengeID, userID)
	if err != nil {
		return notFoundAs(err, ErrChallengeNotFound)
	}
	if index < 0 || index >= len(challenge.Habits) {
		return ErrInvalidHabitIndex
	}

	now := s.Clock.Now()
	today := s.Clock.Normalize(now)
	if today.Before(challenge.StartDate.Date) || today.After(challenge.EndDate.Date) {
		return ErrChallengeNotRunning
	}

	ws, err := windows(challenge.Habits[index : index+1])
	if err != nil {
		return err
	}
	if err := analytics.CheckWindow(ws[0], analytics.MinuteOf(now)); err != nil {
		return err
	}

	return repo.UpsertLog(challengeID, index, today)
}

// Heatmap 进行中挑战的热力图与统计，没有进行中的挑战时返回空热力图
func (s *ChallengeService) Heatmap(ctx context.Context, userID uint) (*ChallengeHeatmap, error) {
	repo := s.Repo.WithContext(ctx)
	challenge, err := repo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ChallengeHeatmap{Heatmap: []analytics.HeatmapDay{}}, nil
		}
		return nil, err
	}

	logs, err := repo.FindLogs(challenge.ID)
	if err != nil {
		return nil, err
	}

	heatmap, stats := analytics.BuildHeatmap(challenge.StartDate.Date, len(challenge.Habits), doneSet(logs), s.Clock.Today())
	return &ChallengeHeatmap{Heatmap: heatmap, Stats: &stats, Challenge: challenge}, nil
}
