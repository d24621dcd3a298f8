package repository

import (
	"family_learn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// FindAll returns the full static catalog.
func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id ASC").Find(&achievements).Error
	return achievements, err
}

// Grant records (userID, achievementID) as an upsert-or-ignore keyed on the
// unique pair. A duplicate grant affects zero rows instead of erroring, which
// makes concurrent achievement checks race-free without app-level locking.
// The returned bool is true when a new grant was actually inserted.
func (r *AchievementRepository) Grant(userID uint, achievementID uint) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
		})
	return res.RowsAffected > 0, res.Error
}

// FindGrantedByUser lists catalog entries the user holds.
func (r *AchievementRepository) FindGrantedByUser(userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Order("user_achievements.created_at ASC").
		Find(&achievements).Error
	return achievements, err
}
