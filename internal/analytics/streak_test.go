package analytics

import (
	"testing"

	"habit_tracker_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func logsFor(t *testing.T, habitID string, entries ...string) []Log {
	t.Helper()
	// entries: "2024-01-01:done"
	logs := make([]Log, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, Log{
			HabitID: habitID,
			Date:    day(t, e[:10]),
			Status:  model.LogStatus(e[11:]),
		})
	}
	return logs
}

func TestCalculateStreaksEmpty(t *testing.T) {
	assert.Equal(t, Streaks{}, CalculateStreaks(nil, day(t, "2024-01-04")))
}

func TestCalculateStreaksMissedSplitsRun(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-01-01:done",
		"2024-01-02:done",
		"2024-01-03:missed",
		"2024-01-04:done",
	)

	got := CalculateStreaks(logs, day(t, "2024-01-04"))
	assert.Equal(t, Streaks{CurrentStreak: 1, LongestStreak: 2}, got)
}

func TestCalculateStreaksSingleDoneNotToday(t *testing.T) {
	logs := logsFor(t, "h1", "2024-01-02:done")
	got := CalculateStreaks(logs, day(t, "2024-01-04"))
	assert.Equal(t, Streaks{CurrentStreak: 0, LongestStreak: 1}, got)
}

func TestCalculateStreaksConsecutiveRun(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-02-27:done",
		"2024-02-28:done",
		"2024-02-29:done",
		"2024-03-01:done",
		"2024-03-02:done",
	)

	// 最后一天是今天：当前连续等于记录数
	got := CalculateStreaks(logs, day(t, "2024-03-02"))
	assert.Equal(t, 5, got.LongestStreak)
	assert.Equal(t, 5, got.CurrentStreak)

	// 最后一天不是今天：当前连续为 0，最长不变
	got = CalculateStreaks(logs, day(t, "2024-03-03"))
	assert.Equal(t, 5, got.LongestStreak)
	assert.Equal(t, 0, got.CurrentStreak)
}

func TestCalculateStreaksTodayMissed(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-01-01:done",
		"2024-01-02:done",
		"2024-01-03:done",
		"2024-01-04:missed",
	)
	got := CalculateStreaks(logs, day(t, "2024-01-04"))
	assert.Equal(t, Streaks{CurrentStreak: 0, LongestStreak: 3}, got)
}

func TestCalculateStreaksGapResetsRun(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-01-01:done",
		"2024-01-02:done",
		"2024-01-03:done",
		"2024-01-06:done",
		"2024-01-07:done",
	)
	got := CalculateStreaks(logs, day(t, "2024-01-07"))
	assert.Equal(t, Streaks{CurrentStreak: 2, LongestStreak: 3}, got)
}

func TestCalculateStreaksUnsortedInput(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-01-04:done",
		"2024-01-02:done",
		"2024-01-03:missed",
		"2024-01-01:done",
	)
	got := CalculateStreaks(logs, day(t, "2024-01-04"))
	assert.Equal(t, Streaks{CurrentStreak: 1, LongestStreak: 2}, got)
}

func TestCalculateStreaksDuplicateDatesCoalesce(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-01-01:done",
		"2024-01-02:missed",
		"2024-01-02:done",
		"2024-01-03:done",
	)
	got := CalculateStreaks(logs, day(t, "2024-01-03"))
	assert.Equal(t, Streaks{CurrentStreak: 3, LongestStreak: 3}, got)
}

func TestCalculateStreaksPureAndIdempotent(t *testing.T) {
	logs := logsFor(t, "h1",
		"2024-01-03:done",
		"2024-01-01:done",
		"2024-01-02:done",
	)
	snapshot := append([]Log(nil), logs...)
	today := day(t, "2024-01-03")

	first := CalculateStreaks(logs, today)
	second := CalculateStreaks(logs, today)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, logs, "input must not be reordered")
}

func TestCalculateStreaksIgnoresRunBeforeMissed(t *testing.T) {
	// 过去很长的连续不会让今天 missed 的当前连续变成非零
	var entries []string
	for d := day(t, "2024-01-01"); d.Before(day(t, "2024-01-20")); d = d.AddDays(1) {
		entries = append(entries, d.String()+":done")
	}
	entries = append(entries, "2024-01-20:missed")

	got := CalculateStreaks(logsFor(t, "h1", entries...), day(t, "2024-01-20"))
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 19, got.LongestStreak)
}

func TestLastEntry(t *testing.T) {
	_, _, ok := LastEntry(nil)
	assert.False(t, ok)

	logs := logsFor(t, "h1", "2024-01-05:missed", "2024-01-03:done")
	date, status, ok := LastEntry(logs)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05", date.String())
	assert.Equal(t, model.LogMissed, status)
}
