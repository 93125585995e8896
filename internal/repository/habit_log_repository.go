package repository

import (
	"context"

	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitLogRepository struct {
	DB *gorm.DB
}

func NewHabitLogRepository(db *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{DB: db}
}

func (r *HabitLogRepository) WithTx(tx *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{DB: tx}
}

func (r *HabitLogRepository) WithContext(ctx context.Context) *HabitLogRepository {
	return &HabitLogRepository{DB: r.DB.WithContext(ctx)}
}

// Upsert 同一习惯同一天只保留一条记录，重复上报覆盖状态
func (r *HabitLogRepository) Upsert(habitID string, date civil.Date, status model.LogStatus) (*model.HabitLog, error) {
	entry := &model.HabitLog{
		HabitID: habitID,
		Date:    model.NewDate(date),
		Status:  status,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, err
	}

	// 冲突时 entry.ID 不是库中的行 ID，重新读取
	var saved model.HabitLog
	if err := r.DB.Where("habit_id = ? AND date = ?", habitID, model.NewDate(date)).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByHabit 按日期排序返回习惯的全部记录
func (r *HabitLogRepository) FindByHabit(habitID string, newestFirst bool) ([]model.HabitLog, error) {
	order := "date ASC"
	if newestFirst {
		order = "date DESC"
	}
	var logs []model.HabitLog
	err := r.DB.Where("habit_id = ?", habitID).Order(order).Find(&logs).Error
	return logs, err
}

// FindByUser 返回用户所有未删除习惯在 [from, to] 内的记录，from 为零值时不设下限
func (r *HabitLogRepository) FindByUser(userID uint, from, to civil.Date) ([]model.HabitLog, error) {
	db := r.DB.Model(&model.HabitLog{}).
		Select("habit_logs.*").
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habits.deleted_at IS NULL", userID).
		Where("habit_logs.date <= ?", model.NewDate(to))
	if !from.IsZero() {
		db = db.Where("habit_logs.date >= ?", model.NewDate(from))
	}

	var logs []model.HabitLog
	err := db.Order("habit_logs.date ASC").Find(&logs).Error
	return logs, err
}

// FirstRawDate 最早一条记录的原始日期文本，不经过解析
func (r *HabitLogRepository) FirstRawDate(habitID string) (string, bool, error) {
	var values []string
	err := r.DB.Table("habit_logs").
		Where("habit_id = ?", habitID).
		Order("date ASC").
		Limit(1).
		Pluck("date", &values).Error
	if err != nil || len(values) == 0 {
		return "", false, err
	}
	return values[0], true, nil
}

// RawDates 读取所有记录的原始日期文本
func (r *HabitLogRepository) RawDates() ([]RawDate, error) {
	var rows []RawDate
	err := r.DB.Table("habit_logs").Select("id, date AS value").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Table = "habit_logs"
		rows[i].Column = "date"
	}
	return rows, nil
}
