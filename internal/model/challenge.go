package model

// Challenge 21 天挑战，每个用户同一时间只有一个进行中的挑战
// swagger:model Challenge
type Challenge struct {
	UUIDBase
	UserID    uint             `gorm:"index;not null" json:"userId"`
	StartDate Date             `gorm:"type:varchar(10);not null" json:"startDate"`
	EndDate   Date             `gorm:"type:varchar(10);not null" json:"endDate"`
	IsActive  bool             `gorm:"default:true;index" json:"isActive"`
	Habits    []ChallengeHabit `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"habits"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeHabit 挑战中的单个习惯及其每日可打卡时间窗（24 小时制 HH:MM）
type ChallengeHabit struct {
	RecordBase
	ChallengeID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Position    int    `gorm:"not null" json:"index"`
	Title       string `gorm:"size:255;not null" json:"title"`
	StartTime   string `gorm:"size:5;not null" json:"startTime"`
	EndTime     string `gorm:"size:5;not null" json:"endTime"`
}

func (ChallengeHabit) TableName() string {
	return "challenge_habits"
}

// ChallengeLog 挑战习惯的完成记录，只记录 done
type ChallengeLog struct {
	RecordBase
	ChallengeID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_challenge_log_day,priority:1" json:"challengeId"`
	HabitIndex  int       `gorm:"not null;uniqueIndex:idx_challenge_log_day,priority:2" json:"habitIndex"`
	Date        Date      `gorm:"type:varchar(10);not null;uniqueIndex:idx_challenge_log_day,priority:3" json:"date"`
	Status      LogStatus `gorm:"size:10;not null;default:'done'" json:"status"`
}

func (ChallengeLog) TableName() string {
	return "challenge_logs"
}
