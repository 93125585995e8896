package analytics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

// ChallengeDays 挑战总天数
const ChallengeDays = 21

var (
	ErrInvalidClock  = errors.New("invalid time of day")
	ErrTooEarly      = errors.New("too early to mark done")
	ErrWindowExpired = errors.New("time window expired")
)

type HabitState string

const (
	StateDone    HabitState = "done"
	StateExpired HabitState = "expired"
	StatePending HabitState = "pending"
	StateOngoing HabitState = "ongoing"
	StateFuture  HabitState = "future"
)

// Window 一天中允许打卡的时间窗，单位为分钟，两端均包含
type Window struct {
	Start int
	End   int
}

// DoneKey 挑战完成记录的键
type DoneKey struct {
	Date  civil.Date
	Index int
}

type DoneSet map[DoneKey]struct{}

func (s DoneSet) Add(date civil.Date, index int) {
	s[DoneKey{Date: date, Index: index}] = struct{}{}
}

func (s DoneSet) Has(date civil.Date, index int) bool {
	_, ok := s[DoneKey{Date: date, Index: index}]
	return ok
}

// ChallengeDay 挑战日历中的一天
type ChallengeDay struct {
	Date     civil.Date   `json:"date"`
	Statuses []HabitState `json:"statuses"`
}

// HeatmapDay 热力图中的一天，Level: -1 未来，0 无完成，1 <40%，2 <70%，3 <100%，4 全部完成
type HeatmapDay struct {
	Date       civil.Date `json:"date"`
	Level      int        `json:"level"`
	Count      int        `json:"count"`
	Total      int        `json:"total"`
	Percentage int        `json:"percentage"`
}

type HeatmapStats struct {
	CompletedDays       int `json:"completedDays"`
	ActiveDays          int `json:"activeDays"`
	CurrentStreak       int `json:"currentStreak"`
	LongestStreak       int `json:"longestStreak"`
	OverallCompletion   int `json:"overallCompletion"`
	TotalCompleted      int `json:"totalCompleted"`
	TotalPossibleHabits int `json:"totalPossibleHabits"`
}

// ParseClock 解析 "HH:MM" 或 "hh:MM AM/PM"，返回当天的分钟数
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Fields(s)
	if len(parts) == 0 || len(parts) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	if len(parts) == 2 {
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		switch strings.ToUpper(parts[1]) {
		case "AM":
			if hour == 12 {
				hour = 0
			}
		case "PM":
			if hour != 12 {
				hour += 12
			}
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}

	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

// FormatClock 分钟数转 24 小时制 "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CheckWindow 判断当前分钟是否落在时间窗内
func CheckWindow(w Window, minute int) error {
	if minute < w.Start {
		return ErrTooEarly
	}
	if minute > w.End {
		return ErrWindowExpired
	}
	return nil
}

func todayState(w Window, minute int) HabitState {
	switch {
	case minute < w.Start:
		return StatePending
	case minute <= w.End:
		return StateOngoing
	default:
		return StateExpired
	}
}

// BuildChallengeDays 生成挑战 21 天中每个习惯的状态
func BuildChallengeDays(start civil.Date, windows []Window, done DoneSet, today civil.Date, minute int) []ChallengeDay {
	days := make([]ChallengeDay, 0, ChallengeDays)
	for i := 0; i < ChallengeDays; i++ {
		date := start.AddDays(i)
		statuses := make([]HabitState, len(windows))
		for idx, w := range windows {
			switch {
			case date.After(today):
				statuses[idx] = StateFuture
			case done.Has(date, idx):
				statuses[idx] = StateDone
			case date.Before(today):
				statuses[idx] = StateExpired
			default:
				statuses[idx] = todayState(w, minute)
			}
		}
		days = append(days, ChallengeDay{Date: date, Statuses: statuses})
	}
	return days
}

func heatLevel(rate float64) int {
	switch {
	case rate == 0:
		return 0
	case rate < 40:
		return 1
	case rate < 70:
		return 2
	case rate < 100:
		return 3
	default:
		return 4
	}
}

// BuildHeatmap 生成挑战热力图与整体统计。
// 当前连续以今天结尾，今天未全部完成时为 0。
func BuildHeatmap(start civil.Date, habitCount int, done DoneSet, today civil.Date) ([]HeatmapDay, HeatmapStats) {
	heatmap := make([]HeatmapDay, 0, ChallengeDays)
	var stats HeatmapStats
	run := 0
	elapsed := 0

	for i := 0; i < ChallengeDays; i++ {
		date := start.AddDays(i)
		count := 0
		for idx := 0; idx < habitCount; idx++ {
			if done.Has(date, idx) {
				count++
			}
		}

		rate := 0.0
		if habitCount > 0 {
			rate = float64(count) * 100 / float64(habitCount)
		}
		day := HeatmapDay{
			Date:       date,
			Count:      count,
			Total:      habitCount,
			Percentage: roundHalfUp(rate),
		}

		if date.After(today) {
			day.Level = -1
			heatmap = append(heatmap, day)
			continue
		}

		elapsed++
		stats.TotalCompleted += count
		day.Level = heatLevel(rate)
		if day.Level > 0 {
			stats.ActiveDays++
		}
		if day.Level == 4 {
			stats.CompletedDays++
			run++
			if run > stats.LongestStreak {
				stats.LongestStreak = run
			}
		} else {
			run = 0
		}
		heatmap = append(heatmap, day)
	}

	// 挑战尚未开始或已经结束时，today 不在 21 天内，当前连续为 0
	if !today.Before(start) && today.Before(start.AddDays(ChallengeDays)) {
		stats.CurrentStreak = run
	}
	stats.TotalPossibleHabits = elapsed * habitCount
	stats.OverallCompletion = percent(stats.TotalCompleted, stats.TotalPossibleHabits)
	return heatmap, stats
}
