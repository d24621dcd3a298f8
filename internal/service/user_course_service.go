package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

// UserCourseService manages enrollments and the per-course completion
// counter (the progress updater of the scoring pipeline).
type UserCourseService struct {
	UserCourseRepo *repository.UserCourseRepository
	CourseRepo     *repository.CourseRepository
}

func NewUserCourseService(userCourseRepo *repository.UserCourseRepository, courseRepo *repository.CourseRepository) *UserCourseService {
	return &UserCourseService{UserCourseRepo: userCourseRepo, CourseRepo: courseRepo}
}

func (s *UserCourseService) Get(userID uint, courseID string) (*model.UserCourse, error) {
	uc, err := s.UserCourseRepo.Find(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return uc, nil
}

func (s *UserCourseService) GetAll(userID uint, page, limit int) (*util.PageResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	items, total, err := s.UserCourseRepo.FindActiveByUser(userID, page, limit)
	if err != nil {
		return nil, err
	}

	return &util.PageResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// UpdateProgress adds one completed section to the enrollment. The counter
// never decreases; the add happens in a single UPDATE so concurrent passing
// submissions each land their increment.
func (s *UserCourseService) UpdateProgress(userID uint, courseID string) error {
	affected, err := s.UserCourseRepo.IncrementCompletedSections(userID, courseID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrCourseNotFound
	}
	return nil
}

func (s *UserCourseService) Enroll(userID uint, courseID string) error {
	return s.UserCourseRepo.Create(&model.UserCourse{
		UserID:       userID,
		CourseID:     courseID,
		LastAccessed: time.Now(),
	})
}

func (s *UserCourseService) Unenroll(userID uint, courseID string) error {
	return s.UserCourseRepo.Delete(userID, courseID)
}

func (s *UserCourseService) TouchLastAccessed(userID uint, courseID string) error {
	return s.UserCourseRepo.TouchLastAccessed(userID, courseID)
}
