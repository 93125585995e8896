package model

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type LogStatus string

const (
	LogDone   LogStatus = "done"
	LogMissed LogStatus = "missed"
)

func (s LogStatus) Valid() bool {
	return s == LogDone || s == LogMissed
}

// Habit 用户的一个习惯
// swagger:model Habit
type Habit struct {
	UUIDBase
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Frequency   Frequency `gorm:"size:16;default:'daily'" json:"frequency"`
	StartDate   *Date     `gorm:"type:varchar(10)" json:"startDate"`

	// 以下字段由打卡后重新计算，不允许直接编辑
	CurrentStreak  int       `gorm:"default:0" json:"currentStreak"`
	LongestStreak  int       `gorm:"default:0" json:"longestStreak"`
	LastLoggedDate *Date     `gorm:"type:varchar(10)" json:"lastLoggedDate,omitempty"`
	LastStatus     LogStatus `gorm:"size:10" json:"lastStatus,omitempty"`
}

func (Habit) TableName() string {
	return "habits"
}

// HabitLog 某个习惯在某一天的打卡，(habit_id, date) 唯一
// swagger:model HabitLog
type HabitLog struct {
	RecordBase
	HabitID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_habit_log_day,priority:1" json:"habitId"`
	Date    Date      `gorm:"type:varchar(10);not null;uniqueIndex:idx_habit_log_day,priority:2" json:"date"`
	Status  LogStatus `gorm:"size:10;not null" json:"status"`
}

func (HabitLog) TableName() string {
	return "habit_logs"
}
