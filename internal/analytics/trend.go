package analytics

import (
	"time"

	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
)

const weekDays = 7

// DayCount 某一天完成的习惯数
type DayCount struct {
	Date civil.Date `json:"date"`
	Done int        `json:"done"`
}

// WeekdayCount 某个星期几累计完成次数
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Done    int    `json:"done"`
}

// WeeklyTrend 以 today 结尾的 7 天（升序），每天完成的不同习惯数
func WeeklyTrend(logs []Log, today civil.Date) []DayCount {
	_, done := habitsByDay(logs)

	trend := make([]DayCount, 0, weekDays)
	for i := weekDays - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		trend = append(trend, DayCount{Date: d, Done: len(done[d])})
	}
	return trend
}

// activeDaysIn 统计 [start, start+n) 内至少完成一个习惯的天数
func activeDaysIn(done map[civil.Date]map[string]struct{}, start civil.Date, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if len(done[start.AddDays(i)]) > 0 {
			count++
		}
	}
	return count
}

// WeekChange 本周（含今天的最近 7 天）与上一个 7 天的完成率差值，单位为百分点。
// 上周为 0 而本周有完成时固定返回 100。不做平滑。
func WeekChange(logs []Log, today civil.Date) int {
	_, done := habitsByDay(logs)

	thisWeekDone := activeDaysIn(done, today.AddDays(-(weekDays - 1)), weekDays)
	lastWeekDone := activeDaysIn(done, today.AddDays(-(2*weekDays - 1)), weekDays)

	if lastWeekDone == 0 && thisWeekDone > 0 {
		return 100
	}
	return percent(thisWeekDone, weekDays) - percent(lastWeekDone, weekDays)
}

// DayCounts 按星期几（周日到周六）统计截至 today 的 done 记录数
func DayCounts(logs []Log, today civil.Date) []WeekdayCount {
	var totals [7]int
	for _, l := range logs {
		if l.Status != model.LogDone || l.Date.After(today) {
			continue
		}
		totals[l.Date.In(time.UTC).Weekday()]++
	}

	counts := make([]WeekdayCount, 0, len(totals))
	for wd, n := range totals {
		counts = append(counts, WeekdayCount{Weekday: time.Weekday(wd).String(), Done: n})
	}
	return counts
}

// BestDay 完成次数最多的星期几；并列取更靠前的一天，没有任何完成时返回空串
func BestDay(counts []WeekdayCount) string {
	best, top := "", 0
	for _, c := range counts {
		if c.Done > top {
			best, top = c.Weekday, c.Done
		}
	}
	return best
}
