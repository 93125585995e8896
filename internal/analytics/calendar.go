package analytics

import (
	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
)

type DayState string

const (
	DayEmpty  DayState = "empty"
	DayFuture DayState = "future"
	DayScored DayState = "scored"
)

// DayCompletion 日历视图中某一天的完成度
type DayCompletion struct {
	Date    civil.Date `json:"date"`
	State   DayState   `json:"state"`
	Percent *int       `json:"percent,omitempty"`
}

// habitsByDay 按日期汇总有记录的习惯与已完成的习惯（均按习惯去重）
func habitsByDay(logs []Log) (logged, done map[civil.Date]map[string]struct{}) {
	logged = make(map[civil.Date]map[string]struct{})
	done = make(map[civil.Date]map[string]struct{})
	for _, l := range logs {
		if logged[l.Date] == nil {
			logged[l.Date] = make(map[string]struct{})
		}
		logged[l.Date][l.HabitID] = struct{}{}

		if l.Status == model.LogDone {
			if done[l.Date] == nil {
				done[l.Date] = make(map[string]struct{})
			}
			done[l.Date][l.HabitID] = struct{}{}
		}
	}
	return logged, done
}

// DailyCompletion 计算 [from, to] 区间内每天的完成百分比：
// 当天完成的习惯数 / 当天有记录的习惯数。没有记录的日期为 empty，晚于 today 的日期为 future。
func DailyCompletion(logs []Log, from, to, today civil.Date) []DayCompletion {
	n := DaysInclusive(from, to)
	if n == 0 {
		return []DayCompletion{}
	}

	logged, done := habitsByDay(logs)
	result := make([]DayCompletion, 0, n)
	for d := from; !d.After(to); d = d.AddDays(1) {
		switch {
		case d.After(today):
			result = append(result, DayCompletion{Date: d, State: DayFuture})
		case len(logged[d]) == 0:
			result = append(result, DayCompletion{Date: d, State: DayEmpty})
		default:
			p := percent(len(done[d]), len(logged[d]))
			result = append(result, DayCompletion{Date: d, State: DayScored, Percent: &p})
		}
	}
	return result
}
