package repository

import (
	"context"

	"habit_tracker_backend/internal/model"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) WithContext(ctx context.Context) *ChallengeRepository {
	return &ChallengeRepository{DB: r.DB.WithContext(ctx)}
}

func orderedHabits(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create 新建挑战，同时结束该用户之前所有进行中的挑战
func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Challenge{}).
			Where("user_id = ? AND is_active = ?", challenge.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(challenge).Error
	})
}

func (r *ChallengeRepository) FindActiveByUser(userID uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.Preload("Habits", orderedHabits).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) FindByIDAndUserID(id string, userID uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.Preload("Habits", orderedHabits).
		Where("id = ? AND user_id = ?", id, userID).
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ReplaceHabits 整体替换挑战中的习惯，超出新数量的完成记录一并删除
func (r *ChallengeRepository) ReplaceHabits(challengeID string, habits []model.ChallengeHabit) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", challengeID).Delete(&model.ChallengeHabit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("challenge_id = ? AND habit_index >= ?", challengeID, len(habits)).
			Delete(&model.ChallengeLog{}).Error; err != nil {
			return err
		}
		for i := range habits {
			habits[i].ChallengeID = challengeID
			habits[i].Position = i
		}
		if len(habits) == 0 {
			return nil
		}
		return tx.Create(&habits).Error
	})
}

// UpsertLog 记录某天某个习惯完成，重复提交不会产生新行
func (r *ChallengeRepository) UpsertLog(challengeID string, habitIndex int, date civil.Date) error {
	entry := &model.ChallengeLog{
		ChallengeID: challengeID,
		HabitIndex:  habitIndex,
		Date:        model.NewDate(date),
		Status:      model.LogDone,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "challenge_id"}, {Name: "habit_index"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(entry).Error
}

func (r *ChallengeRepository) FindLogs(challengeID string) ([]model.ChallengeLog, error) {
	var logs []model.ChallengeLog
	err := r.DB.Where("challenge_id = ?", challengeID).Order("date ASC, habit_index ASC").Find(&logs).Error
	return logs, err
}
