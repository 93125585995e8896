package analytics

import (
	"sort"

	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
)

// HabitInfo 引擎需要的习惯信息
type HabitInfo struct {
	ID        string
	Title     string
	Frequency model.Frequency
	StartDate civil.Date
}

// LeaderboardEntry 习惯完成率排行中的一项
type LeaderboardEntry struct {
	HabitID        string `json:"habitId"`
	Habit          string `json:"habit"`
	CompletionRate int    `json:"completionRate"`
	DoneCount      int    `json:"doneCount"`
	TotalLogs      int    `json:"totalLogs"`
	ExpectedDays   int    `json:"expectedDays"`
}

// ExpectedDays 从 startDate 到 today 应打卡的次数：每日习惯按天，每周习惯按周向上取整
func ExpectedDays(frequency model.Frequency, startDate, today civil.Date) int {
	days := DaysInclusive(startDate, today)
	if frequency == model.FrequencyWeekly {
		return (days + weekDays - 1) / weekDays
	}
	return days
}

// CompletionRate 完成率，封顶 100，期望次数为 0 时为 0
func CompletionRate(doneCount, expectedDays int) int {
	rate := percent(doneCount, expectedDays)
	if rate > 100 {
		return 100
	}
	return rate
}

func groupByHabit(logs []Log) map[string][]Log {
	grouped := make(map[string][]Log)
	for _, l := range logs {
		grouped[l.HabitID] = append(grouped[l.HabitID], l)
	}
	return grouped
}

// doneDaysBetween [from, to] 内完成的天数（同日多条只算一次）
func doneDaysBetween(logs []Log, from, to civil.Date) int {
	count := 0
	for _, d := range collapseDays(logs) {
		if d.done && !d.date.Before(from) && !d.date.After(to) {
			count++
		}
	}
	return count
}

func leaderboardEntry(h HabitInfo, logs []Log, today civil.Date) LeaderboardEntry {
	expected := ExpectedDays(h.Frequency, h.StartDate, today)
	done := doneDaysBetween(logs, h.StartDate, today)
	return LeaderboardEntry{
		HabitID:        h.ID,
		Habit:          h.Title,
		CompletionRate: CompletionRate(done, expected),
		DoneCount:      done,
		TotalLogs:      len(logs),
		ExpectedDays:   expected,
	}
}

// Leaderboard 按完成率降序排列所有习惯，完成率相同按完成次数降序。
// 没有记录的习惯同样出现在榜单中，完成率为 0。
func Leaderboard(habits []HabitInfo, logs []Log, today civil.Date) []LeaderboardEntry {
	grouped := groupByHabit(logs)

	entries := make([]LeaderboardEntry, 0, len(habits))
	for _, h := range habits {
		entries = append(entries, leaderboardEntry(h, grouped[h.ID], today))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CompletionRate != entries[j].CompletionRate {
			return entries[i].CompletionRate > entries[j].CompletionRate
		}
		return entries[i].DoneCount > entries[j].DoneCount
	})
	return entries
}
