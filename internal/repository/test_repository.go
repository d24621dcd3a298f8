package repository

import (
	"encoding/json"
	"family_learn_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(testID string) (*model.Test, error) {
	var test model.Test
	err := r.DB.Where("id = ?", testID).First(&test).Error
	return &test, err
}

// FindCompletedByUser lists a user's graded tests, newest first. Pending
// tests are in-flight attempts and are not part of the history.
func (r *TestRepository) FindCompletedByUser(userID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Where("user_id = ? AND status <> ?", userID, model.TestPending).
		Omit("questions").
		Order("updated_at DESC").
		Find(&tests).Error
	return tests, err
}

// HasPassedTest reports whether any PASSED test exists for the user in the
// course. Existence is all that matters here, no ordering semantics.
func (r *TestRepository) HasPassedTest(userID uint, courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Test{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.TestPassed).
		Count(&count).Error
	return count > 0, err
}

// SaveResult writes the terminal status, score and grading records of a test
// in one UPDATE, guarded on PENDING so a lost race cannot overwrite a result
// that another submission already persisted.
func (r *TestRepository) SaveResult(testID string, userID uint, status model.TestStatus, score int, results json.RawMessage) error {
	return r.DB.Model(&model.Test{}).
		Where("id = ? AND user_id = ? AND status = ?", testID, userID, model.TestPending).
		Updates(map[string]interface{}{
			"status":  status,
			"score":   score,
			"results": results,
		}).Error
}
