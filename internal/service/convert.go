package service

import (
	"habit_tracker_backend/internal/analytics"
	"habit_tracker_backend/internal/model"
)

func toEngineLogs(logs []model.HabitLog) []analytics.Log {
	out := make([]analytics.Log, 0, len(logs))
	for _, l := range logs {
		out = append(out, analytics.Log{
			HabitID: l.HabitID,
			Date:    l.Date.Date,
			Status:  l.Status,
		})
	}
	return out
}

// habitInfo 缺失 startDate 的旧数据以创建日期代替，缺失频率按每日处理
func habitInfo(h model.Habit, clock *analytics.Clock) analytics.HabitInfo {
	info := analytics.HabitInfo{
		ID:        h.ID,
		Title:     h.Title,
		Frequency: h.Frequency,
	}
	if !info.Frequency.Valid() {
		info.Frequency = model.FrequencyDaily
	}
	if h.StartDate != nil {
		info.StartDate = h.StartDate.Date
	} else {
		info.StartDate = clock.Normalize(h.CreatedAt)
	}
	return info
}

func habitInfos(habits []model.Habit, clock *analytics.Clock) []analytics.HabitInfo {
	out := make([]analytics.HabitInfo, 0, len(habits))
	for _, h := range habits {
		out = append(out, habitInfo(h, clock))
	}
	return out
}
