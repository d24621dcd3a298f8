package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"

	"gorm.io/gorm"
)

// FamilyCourseService lets parents manage their children's course
// assignments. Assigning a course creates the UserCourse enrollment every
// test submission later depends on.
type FamilyCourseService struct {
	FamilyRepo    *repository.FamilyRepository
	CourseRepo    *repository.CourseRepository
	FamilySvc     *FamilyService
	UserCourseSvc *UserCourseService
}

func NewFamilyCourseService(
	familyRepo *repository.FamilyRepository,
	courseRepo *repository.CourseRepository,
	familySvc *FamilyService,
	userCourseSvc *UserCourseService,
) *FamilyCourseService {
	return &FamilyCourseService{
		FamilyRepo:    familyRepo,
		CourseRepo:    courseRepo,
		FamilySvc:     familySvc,
		UserCourseSvc: userCourseSvc,
	}
}

// GetChildCourses returns a child's course progress to a parent in the same
// family.
func (s *FamilyCourseService) GetChildCourses(parentFamilyID string, childID uint, page, limit int) (*util.PageResponse, error) {
	inFamily, err := s.FamilySvc.IsUserInFamily(parentFamilyID, childID)
	if err != nil {
		return nil, err
	}
	if !inFamily {
		return nil, util.ErrChildNotFound
	}

	return s.UserCourseSvc.GetAll(childID, page, limit)
}

// GetAvailableChildren lists family children not yet enrolled in the course.
func (s *FamilyCourseService) GetAvailableChildren(familyID string, courseID string) ([]model.User, error) {
	family, err := s.FamilySvc.GetByID(familyID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.UserCourseSvc.UserCourseRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	enrolledIDs := make(map[uint]bool, len(enrolled))
	for _, uc := range enrolled {
		enrolledIDs[uc.UserID] = true
	}

	var available []model.User
	for _, member := range family.Members {
		if member.User == nil || member.User.Role == model.Parent {
			continue
		}
		if !enrolledIDs[member.UserID] {
			available = append(available, *member.User)
		}
	}
	return available, nil
}

// Assign enrolls a child of the parent's family into a course. Assigning an
// already-assigned course is reported, not retried.
func (s *FamilyCourseService) Assign(parentID uint, childID uint, courseID string) error {
	if err := s.requireChildInParentFamily(parentID, childID); err != nil {
		return err
	}

	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if _, err := s.UserCourseSvc.UserCourseRepo.Find(childID, courseID); err == nil {
		return nil // already assigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.UserCourseSvc.Enroll(childID, courseID)
}

func (s *FamilyCourseService) Remove(parentID uint, childID uint, courseID string) error {
	if err := s.requireChildInParentFamily(parentID, childID); err != nil {
		return err
	}

	if _, err := s.UserCourseSvc.UserCourseRepo.Find(childID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to remove
		}
		return err
	}

	return s.UserCourseSvc.Unenroll(childID, courseID)
}

func (s *FamilyCourseService) requireChildInParentFamily(parentID uint, childID uint) error {
	parentMember, err := s.FamilyRepo.FindMemberByUser(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPermissionDenied
		}
		return err
	}
	if parentMember.User == nil || parentMember.User.Role != model.Parent {
		return util.ErrPermissionDenied
	}

	childMember, err := s.FamilyRepo.FindMember(parentMember.FamilyID, childID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChildNotFound
		}
		return err
	}
	if childMember.User != nil && childMember.User.Role == model.Parent {
		return util.ErrChildNotFound
	}

	return nil
}
