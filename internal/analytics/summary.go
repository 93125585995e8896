package analytics

import (
	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
)

// HabitStat 单个习惯的统计
type HabitStat struct {
	Streaks
	CompletionRate int             `json:"completionRate"`
	DoneCount      int             `json:"doneCount"`
	TotalLogs      int             `json:"totalLogs"`
	ExpectedDays   int             `json:"expectedDays"`
	LastLoggedDate *civil.Date     `json:"lastLoggedDate,omitempty"`
	LastStatus     model.LogStatus `json:"lastStatus,omitempty"`
}

// Summary 用户全部习惯的汇总分析
type Summary struct {
	TotalHabits      int                `json:"totalHabits"`
	Weekly           []DayCount         `json:"weekly"`
	DayCount         []WeekdayCount     `json:"dayCount"`
	BestDay          string             `json:"bestDay"`
	WeekChange       int                `json:"weekChange"`
	DailyCompletion  []DayCompletion    `json:"dailyCompletion"`
	ConsistencyScore int                `json:"consistencyScore"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
}

// HabitStats 汇总单个习惯：连续天数、完成率与最近一次记录
func HabitStats(habit HabitInfo, logs []Log, today civil.Date) HabitStat {
	entry := leaderboardEntry(habit, logs, today)
	stat := HabitStat{
		Streaks:        CalculateStreaks(logs, today),
		CompletionRate: entry.CompletionRate,
		DoneCount:      entry.DoneCount,
		TotalLogs:      entry.TotalLogs,
		ExpectedDays:   entry.ExpectedDays,
	}
	if date, status, ok := LastEntry(logs); ok {
		stat.LastLoggedDate = &date
		stat.LastStatus = status
	}
	return stat
}

// Summarize 计算用户维度的全部分析指标。所有指标共用同一个 today。
// 日历完成度只覆盖 [from, to]。
func Summarize(habits []HabitInfo, logs []Log, from, to, today civil.Date) Summary {
	// 只保留属于给定习惯的记录
	known := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		known[h.ID] = struct{}{}
	}
	owned := make([]Log, 0, len(logs))
	for _, l := range logs {
		if _, ok := known[l.HabitID]; ok {
			owned = append(owned, l)
		}
	}

	dayCount := DayCounts(owned, today)
	return Summary{
		TotalHabits:      len(habits),
		Weekly:           WeeklyTrend(owned, today),
		DayCount:         dayCount,
		BestDay:          BestDay(dayCount),
		WeekChange:       WeekChange(owned, today),
		DailyCompletion:  DailyCompletion(owned, from, to, today),
		ConsistencyScore: ConsistencyScore(owned, today),
		Leaderboard:      Leaderboard(habits, owned, today),
	}
}
