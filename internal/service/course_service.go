package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"
	"family_learn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	SectionRepo    *repository.SectionRepository
	UserCourseRepo *repository.UserCourseRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	sectionRepo *repository.SectionRepository,
	userCourseRepo *repository.UserCourseRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		SectionRepo:    sectionRepo,
		UserCourseRepo: userCourseRepo,
	}
}

// CourseWithProgress is the child-facing course view: the catalog data plus
// the enrollment's progress fields.
type CourseWithProgress struct {
	model.Course
	CompletedSections int    `json:"completedSections"`
	LastAccessed      string `json:"lastAccessed,omitempty"`
}

// GetAll is role-aware: parents browse the whole catalog, children see only
// the courses assigned to them.
func (s *CourseService) GetAll(userID uint, role model.UserRole) ([]model.Course, error) {
	if role == model.Parent {
		return s.CourseRepo.FindAllWithSections()
	}

	enrollments, _, err := s.UserCourseRepo.FindActiveByUser(userID, 1, 100)
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(enrollments))
	for _, uc := range enrollments {
		course, err := s.CourseRepo.FindByIDWithSections(uc.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

func (s *CourseService) GetByID(courseID string, userID uint, role model.UserRole) (*CourseWithProgress, error) {
	course, err := s.CourseRepo.FindByIDWithSections(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	view := &CourseWithProgress{Course: *course}

	if role == model.Child {
		uc, err := s.UserCourseRepo.Find(userID, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCourseNotFound
			}
			return nil, err
		}
		view.CompletedSections = uc.CompletedSections
		if !uc.LastAccessed.IsZero() {
			view.LastAccessed = uc.LastAccessed.Format(util.TimeFormat)
		}
		// Opening a course is what "last accessed" tracks.
		if err := s.UserCourseRepo.TouchLastAccessed(userID, courseID); err != nil {
			logger.Log.Warn("failed to touch last accessed",
				zap.Uint("userId", userID),
				zap.String("courseId", courseID),
				zap.Error(err))
		}
	}

	return view, nil
}

func (s *CourseService) Get(courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// GetSection returns a section with its templates and instances, the
// authoring view parents use.
func (s *CourseService) GetSection(sectionID string) (*model.Section, error) {
	section, err := s.SectionRepo.FindWithTemplates(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}
