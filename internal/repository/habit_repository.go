package repository

import (
	"context"
	"time"

	"habit_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

// NewHabitRepository 创建习惯仓库实例
func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库
func (r *HabitRepository) WithTx(tx *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: tx}
}

func (r *HabitRepository) WithContext(ctx context.Context) *HabitRepository {
	return &HabitRepository{DB: r.DB.WithContext(ctx)}
}

func (r *HabitRepository) Create(habit *model.Habit) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) FindByID(id string) (*model.Habit, error) {
	var habit model.Habit
	if err := r.DB.Where("id = ?", id).First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// FindByIDAndUserID 只返回属于该用户的习惯
func (r *HabitRepository) FindByIDAndUserID(id string, userID uint) (*model.Habit, error) {
	var habit model.Habit
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) FindByUserID(userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&habits).Error
	return habits, err
}

func (r *HabitRepository) FindAll() ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Order("created_at ASC").Find(&habits).Error
	return habits, err
}

// Update 只更新用户可编辑的字段
func (r *HabitRepository) Update(habit *model.Habit) error {
	return r.DB.Model(habit).
		Select("title", "description", "frequency", "start_date").
		Updates(habit).Error
}

// DerivedFields 打卡后重新计算的字段
type DerivedFields struct {
	CurrentStreak  int
	LongestStreak  int
	LastLoggedDate *model.Date
	LastStatus     model.LogStatus
}

// UpdateDerivedFields 覆盖派生字段，LastLoggedDate 为 nil 时写入 NULL
func (r *HabitRepository) UpdateDerivedFields(habitID string, f DerivedFields) error {
	var lastLogged interface{} = gorm.Expr("NULL")
	if f.LastLoggedDate != nil {
		lastLogged = *f.LastLoggedDate
	}
	return r.DB.Model(&model.Habit{}).Where("id = ?", habitID).Updates(map[string]interface{}{
		"current_streak":   f.CurrentStreak,
		"longest_streak":   f.LongestStreak,
		"last_logged_date": lastLogged,
		"last_status":      string(f.LastStatus),
	}).Error
}

// DeleteWithLogs 删除习惯及其全部打卡记录
func (r *HabitRepository) DeleteWithLogs(id string, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Habit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("habit_id = ?", id).Delete(&model.HabitLog{}).Error
	})
}

// RawHabitMeta 未经解析的习惯元数据，用于修复脏数据
type RawHabitMeta struct {
	ID        string
	Frequency *string
	StartDate *string
	CreatedAt time.Time
}

// FindMissingMetadata 查找 frequency 或 start_date 缺失的习惯
func (r *HabitRepository) FindMissingMetadata() ([]RawHabitMeta, error) {
	var rows []RawHabitMeta
	err := r.DB.Table("habits").
		Select("id, frequency, start_date, created_at").
		Where("deleted_at IS NULL").
		Where("frequency IS NULL OR frequency = '' OR start_date IS NULL OR start_date = ''").
		Order("created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// UpdateMetadata 直接写入修复后的 frequency / start_date
func (r *HabitRepository) UpdateMetadata(id string, frequency model.Frequency, startDate model.Date) error {
	return r.DB.Model(&model.Habit{}).Where("id = ?", id).Updates(map[string]interface{}{
		"frequency":  string(frequency),
		"start_date": startDate,
	}).Error
}

// RawDate 数据库中原样保存的日期值
type RawDate struct {
	Table  string `gorm:"-"`
	Column string `gorm:"-"`
	ID     string
	Value  *string
}

// RawDates 读取习惯表中所有日期列的原始文本
func (r *HabitRepository) RawDates() ([]RawDate, error) {
	var out []RawDate
	for _, column := range []string{"start_date", "last_logged_date"} {
		var rows []RawDate
		err := r.DB.Table("habits").
			Select("id, "+column+" AS value").
			Where("deleted_at IS NULL AND "+column+" IS NOT NULL").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].Table = "habits"
			rows[i].Column = column
		}
		out = append(out, rows...)
	}
	return out, nil
}
