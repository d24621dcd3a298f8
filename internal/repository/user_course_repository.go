package repository

import (
	"family_learn_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserCourseRepository struct {
	DB *gorm.DB
}

func NewUserCourseRepository(db *gorm.DB) *UserCourseRepository {
	return &UserCourseRepository{DB: db}
}

func (r *UserCourseRepository) Find(userID uint, courseID string) (*model.UserCourse, error) {
	var uc model.UserCourse
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&uc).Error
	return &uc, err
}

// FindActiveByUser pages through enrollments the user has started working on.
func (r *UserCourseRepository) FindActiveByUser(userID uint, page, limit int) ([]model.UserCourse, int64, error) {
	var items []model.UserCourse
	var total int64

	query := r.DB.Model(&model.UserCourse{}).
		Where("user_id = ? AND completed_sections > 0", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Course").
		Order("completed_sections ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *UserCourseRepository) FindByCourse(courseID string) ([]model.UserCourse, error) {
	var items []model.UserCourse
	err := r.DB.Where("course_id = ?", courseID).Find(&items).Error
	return items, err
}

func (r *UserCourseRepository) Create(uc *model.UserCourse) error {
	return r.DB.Create(uc).Error
}

func (r *UserCourseRepository) Delete(userID uint, courseID string) error {
	return r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.UserCourse{}).Error
}

// IncrementCompletedSections bumps the monotone section counter with an
// atomic add. Returns the number of affected rows so callers can detect a
// missing enrollment without a prior read.
func (r *UserCourseRepository) IncrementCompletedSections(userID uint, courseID string) (int64, error) {
	res := r.DB.Model(&model.UserCourse{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("completed_sections", gorm.Expr("completed_sections + ?", 1))
	return res.RowsAffected, res.Error
}

func (r *UserCourseRepository) TouchLastAccessed(userID uint, courseID string) error {
	return r.DB.Model(&model.UserCourse{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("last_accessed", time.Now()).Error
}

// CountCompletedCourses counts the user's enrollments with at least
// minSections completed, across every course the user is enrolled in.
func (r *UserCourseRepository) CountCompletedCourses(userID uint, minSections int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserCourse{}).
		Where("user_id = ? AND completed_sections >= ?", userID, minSections).
		Count(&count).Error
	return count, err
}
