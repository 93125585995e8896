package analytics

import (
	"sort"

	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
)

// Log 引擎使用的打卡记录
type Log struct {
	HabitID string
	Date    civil.Date
	Status  model.LogStatus
}

// Streaks 当前连续天数与历史最长连续天数
type Streaks struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// dayStatus 按日期合并后的单日状态
type dayStatus struct {
	date civil.Date
	done bool
}

// collapseDays 升序排列并合并同一天的多条记录：任意一条为 done 即视为当天完成。
// 不修改入参。
func collapseDays(logs []Log) []dayStatus {
	byDate := make(map[civil.Date]bool, len(logs))
	for _, l := range logs {
		byDate[l.Date] = byDate[l.Date] || l.Status == model.LogDone
	}

	days := make([]dayStatus, 0, len(byDate))
	for d, done := range byDate {
		days = append(days, dayStatus{date: d, done: done})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].date.Before(days[j].date)
	})
	return days
}

// CalculateStreaks 计算单个习惯的当前连续与最长连续天数。
//
// 最长连续：按日期顺序扫描，missed 归零；与上一个完成日恰好相邻的 done 累加，其余 done 重新从 1 开始。
// 当前连续：必须包含 today。今天没有记录或为 missed 时为 0，否则从今天按天向前数连续的 done。
func CalculateStreaks(logs []Log, today civil.Date) Streaks {
	days := collapseDays(logs)
	if len(days) == 0 {
		return Streaks{}
	}

	longest, run := 0, 0
	var prevDone civil.Date
	for _, d := range days {
		if !d.done {
			run = 0
			continue
		}
		if run > 0 && AreConsecutive(prevDone, d.date) {
			run++
		} else {
			run = 1
		}
		prevDone = d.date
		if run > longest {
			longest = run
		}
	}

	done := make(map[civil.Date]bool, len(days))
	for _, d := range days {
		done[d.date] = d.done
	}

	current := 0
	for day := today; done[day]; day = day.AddDays(-1) {
		current++
	}

	return Streaks{CurrentStreak: current, LongestStreak: longest}
}

// LastEntry 返回日期最新的一条记录（同日以 done 优先）
func LastEntry(logs []Log) (civil.Date, model.LogStatus, bool) {
	days := collapseDays(logs)
	if len(days) == 0 {
		return civil.Date{}, "", false
	}
	last := days[len(days)-1]
	if last.done {
		return last.date, model.LogDone, true
	}
	return last.date, model.LogMissed, true
}
