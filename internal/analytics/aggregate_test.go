package analytics

import (
	"testing"

	"habit_tracker_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyCompletion(t *testing.T) {
	logs := append(
		logsFor(t, "a", "2024-01-01:done", "2024-01-02:done", "2024-01-05:done"),
		logsFor(t, "b", "2024-01-01:missed", "2024-01-02:done")...,
	)
	logs = append(logs, logsFor(t, "c", "2024-01-01:done")...)

	got := DailyCompletion(logs, day(t, "2024-01-01"), day(t, "2024-01-05"), day(t, "2024-01-03"))
	require.Len(t, got, 5)

	assert.Equal(t, DayScored, got[0].State)
	require.NotNil(t, got[0].Percent)
	assert.Equal(t, 67, *got[0].Percent)

	assert.Equal(t, 100, *got[1].Percent)

	assert.Equal(t, DayEmpty, got[2].State)
	assert.Nil(t, got[2].Percent)

	assert.Equal(t, DayFuture, got[3].State)
	// 未来日期即便有（错误的）记录也不计算
	assert.Equal(t, DayFuture, got[4].State)
	assert.Nil(t, got[4].Percent)
}

func TestDailyCompletionEmptyRange(t *testing.T) {
	got := DailyCompletion(nil, day(t, "2024-01-05"), day(t, "2024-01-01"), day(t, "2024-01-05"))
	assert.Empty(t, got)
}

func TestWeeklyTrend(t *testing.T) {
	logs := append(
		logsFor(t, "a", "2024-01-01:done", "2024-01-07:done", "2024-01-06:missed"),
		logsFor(t, "b", "2024-01-07:done", "2023-12-31:done")...,
	)

	got := WeeklyTrend(logs, day(t, "2024-01-07"))
	require.Len(t, got, 7)
	assert.Equal(t, "2024-01-01", got[0].Date.String())
	assert.Equal(t, 1, got[0].Done)
	assert.Equal(t, 0, got[5].Done)
	assert.Equal(t, "2024-01-07", got[6].Date.String())
	assert.Equal(t, 2, got[6].Done)
}

func TestWeekChange(t *testing.T) {
	today := day(t, "2024-01-14")

	// 本周 4 天有完成（57%），上周 2 天（29%）
	logs := logsFor(t, "a",
		"2024-01-14:done", "2024-01-12:done", "2024-01-10:done", "2024-01-08:done",
		"2024-01-07:done", "2024-01-03:done",
		"2024-01-09:missed",
	)
	assert.Equal(t, 28, WeekChange(logs, today))

	// 上周为 0，本周有完成
	logs = logsFor(t, "a", "2024-01-14:done")
	assert.Equal(t, 100, WeekChange(logs, today))

	// 两周都没有完成
	assert.Equal(t, 0, WeekChange(nil, today))

	// 本周为 0，上周全勤
	var entries []string
	for d := day(t, "2024-01-01"); !d.After(day(t, "2024-01-07")); d = d.AddDays(1) {
		entries = append(entries, d.String()+":done")
	}
	assert.Equal(t, -100, WeekChange(logsFor(t, "a", entries...), today))
}

func TestDayCountsAndBestDay(t *testing.T) {
	// 2024-01-01 是周一
	logs := append(
		logsFor(t, "a", "2024-01-01:done", "2024-01-08:done", "2024-01-02:done", "2024-01-03:missed"),
		logsFor(t, "b", "2024-01-02:done", "2024-01-15:done")...,
	)

	counts := DayCounts(logs, day(t, "2024-01-10"))
	require.Len(t, counts, 7)
	assert.Equal(t, "Sunday", counts[0].Weekday)
	assert.Equal(t, 2, counts[1].Done, "Monday")
	assert.Equal(t, 2, counts[2].Done, "Tuesday")
	assert.Equal(t, 0, counts[3].Done, "missed is not counted")

	// 并列时取更靠前的星期
	assert.Equal(t, "Monday", BestDay(counts))
	assert.Equal(t, "", BestDay(DayCounts(nil, day(t, "2024-01-10"))))
}

func TestConsistencyScore(t *testing.T) {
	today := day(t, "2024-01-30")

	logs := append(
		logsFor(t, "a", "2024-01-30:done", "2024-01-29:missed", "2024-01-10:missed", "2023-12-01:done"),
		logsFor(t, "b", "2024-01-29:missed", "2024-01-10:done", "2024-01-05:done")...,
	)
	// 有记录的天：30(完成)、29(未完成)、10(完成)、05(完成) → 3/4
	assert.Equal(t, 75, ConsistencyScore(logs, today))

	assert.Equal(t, 0, ConsistencyScore(nil, today))
}

func TestConsistencyScoreIgnoresEmptyDaysAndHabits(t *testing.T) {
	today := day(t, "2024-01-30")
	logs := logsFor(t, "a", "2024-01-30:done", "2024-01-20:missed")
	base := ConsistencyScore(logs, today)

	// 增加没有记录的习惯、区间外的记录，分数不变
	withNoise := append(append([]Log(nil), logs...), logsFor(t, "b", "2023-11-01:done")...)
	assert.Equal(t, base, ConsistencyScore(withNoise, today))
	assert.Equal(t, 50, base)
}

func TestLeaderboard(t *testing.T) {
	today := day(t, "2024-01-10")
	habits := []HabitInfo{
		{ID: "empty", Title: "Read", Frequency: model.FrequencyDaily, StartDate: day(t, "2024-01-01")},
		{ID: "daily", Title: "Run", Frequency: model.FrequencyDaily, StartDate: day(t, "2024-01-01")},
		{ID: "weekly", Title: "Call mom", Frequency: model.FrequencyWeekly, StartDate: day(t, "2024-01-01")},
	}
	logs := append(
		logsFor(t, "daily",
			"2024-01-01:done", "2024-01-03:done", "2024-01-05:done", "2024-01-07:done", "2024-01-09:done",
			"2024-01-10:missed"),
		logsFor(t, "weekly", "2024-01-02:done", "2024-01-09:done")...,
	)

	got := Leaderboard(habits, logs, today)
	require.Len(t, got, 3)

	assert.Equal(t, "weekly", got[0].HabitID)
	assert.Equal(t, 2, got[0].ExpectedDays)
	assert.Equal(t, 100, got[0].CompletionRate)

	assert.Equal(t, "daily", got[1].HabitID)
	assert.Equal(t, 10, got[1].ExpectedDays)
	assert.Equal(t, 5, got[1].DoneCount)
	assert.Equal(t, 6, got[1].TotalLogs)
	assert.Equal(t, 50, got[1].CompletionRate)

	assert.Equal(t, "empty", got[2].HabitID)
	assert.Equal(t, 0, got[2].CompletionRate)
	assert.Equal(t, 0, got[2].DoneCount)
}

func TestLeaderboardCapsAndTies(t *testing.T) {
	today := day(t, "2024-01-10")
	habits := []HabitInfo{
		{ID: "few", Title: "A", Frequency: model.FrequencyDaily, StartDate: day(t, "2024-01-09")},
		{ID: "many", Title: "B", Frequency: model.FrequencyWeekly, StartDate: day(t, "2024-01-08")},
		{ID: "later", Title: "C", Frequency: model.FrequencyDaily, StartDate: day(t, "2024-02-01")},
	}
	logs := append(
		logsFor(t, "few", "2024-01-09:done", "2024-01-10:done"),
		logsFor(t, "many", "2024-01-08:done", "2024-01-09:done", "2024-01-10:done")...,
	)
	logs = append(logs, logsFor(t, "later", "2024-01-10:done")...)

	got := Leaderboard(habits, logs, today)
	require.Len(t, got, 3)

	// 两者都是 100%，完成次数多的在前；每周习惯超过期望次数时封顶 100
	assert.Equal(t, "many", got[0].HabitID)
	assert.Equal(t, 100, got[0].CompletionRate)
	assert.Equal(t, "few", got[1].HabitID)

	// 开始日期在未来：期望 0 次，完成率 0，不会除零
	assert.Equal(t, "later", got[2].HabitID)
	assert.Equal(t, 0, got[2].ExpectedDays)
	assert.Equal(t, 0, got[2].CompletionRate)
}

func TestHabitStats(t *testing.T) {
	habit := HabitInfo{ID: "h", Title: "Walk", Frequency: model.FrequencyDaily, StartDate: day(t, "2024-01-01")}
	logs := logsFor(t, "h", "2024-01-01:done", "2024-01-03:done", "2024-01-06:done", "2024-01-08:done", "2024-01-10:done")

	stat := HabitStats(habit, logs, day(t, "2024-01-10"))
	assert.Equal(t, 10, stat.ExpectedDays)
	assert.Equal(t, 50, stat.CompletionRate)
	assert.Equal(t, 1, stat.CurrentStreak)
	assert.Equal(t, 1, stat.LongestStreak)
	require.NotNil(t, stat.LastLoggedDate)
	assert.Equal(t, "2024-01-10", stat.LastLoggedDate.String())
	assert.Equal(t, model.LogDone, stat.LastStatus)

	empty := HabitStats(habit, nil, day(t, "2024-01-10"))
	assert.Equal(t, Streaks{}, empty.Streaks)
	assert.Equal(t, 0, empty.CompletionRate)
	assert.Nil(t, empty.LastLoggedDate)
}

func TestSummarizeNoHabits(t *testing.T) {
	today := day(t, "2024-01-10")
	got := Summarize(nil, nil, day(t, "2024-01-01"), day(t, "2024-01-31"), today)

	assert.Equal(t, 0, got.TotalHabits)
	assert.Equal(t, 0, got.WeekChange)
	assert.Equal(t, 0, got.ConsistencyScore)
	assert.Equal(t, "", got.BestDay)
	assert.Empty(t, got.Leaderboard)
	assert.Len(t, got.Weekly, 7)
	assert.Len(t, got.DailyCompletion, 31)
}

func TestSummarizeDropsForeignLogs(t *testing.T) {
	today := day(t, "2024-01-10")
	habits := []HabitInfo{{ID: "mine", Title: "Mine", Frequency: model.FrequencyDaily, StartDate: day(t, "2024-01-10")}}
	logs := append(
		logsFor(t, "mine", "2024-01-10:done"),
		logsFor(t, "someone-else", "2024-01-10:missed", "2024-01-09:missed")...,
	)

	got := Summarize(habits, logs, today, today, today)
	require.Len(t, got.DailyCompletion, 1)
	assert.Equal(t, 100, *got.DailyCompletion[0].Percent)
	assert.Equal(t, 100, got.ConsistencyScore)
	assert.Equal(t, 1, got.Weekly[6].Done)
}
