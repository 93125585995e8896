package analytics

import "cloud.google.com/go/civil"

const consistencyWindow = 30

// ConsistencyScore 最近 30 天（含今天）中，有记录的日子里至少完成一个习惯的比例。
// 没有任何记录的日子不计入分母。
func ConsistencyScore(logs []Log, today civil.Date) int {
	logged, done := habitsByDay(logs)

	totalDays, completedDays := 0, 0
	start := today.AddDays(-(consistencyWindow - 1))
	for i := 0; i < consistencyWindow; i++ {
		d := start.AddDays(i)
		if len(logged[d]) == 0 {
			continue
		}
		totalDays++
		if len(done[d]) > 0 {
			completedDays++
		}
	}
	return percent(completedDays, totalDays)
}
