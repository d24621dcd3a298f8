package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"

	"gorm.io/gorm"
)

// AchievementCheckService evaluates achievement conditions after a passing
// submission. Checks run on every passing submission over a user's lifetime,
// so each one must tolerate re-evaluation; the grants underneath are
// idempotent and the checks never short-circuit each other.
type AchievementCheckService struct {
	TestRepo       *repository.TestRepository
	UserCourseRepo *repository.UserCourseRepository
	AchievementSvc *AchievementService
}

func NewAchievementCheckService(
	testRepo *repository.TestRepository,
	userCourseRepo *repository.UserCourseRepository,
	achievementSvc *AchievementService,
) *AchievementCheckService {
	return &AchievementCheckService{
		TestRepo:       testRepo,
		UserCourseRepo: userCourseRepo,
		AchievementSvc: achievementSvc,
	}
}

// CheckTestAchievements grants PERFECT_SCORE when the stored test score is
// exactly 100. A missing test is not an error: the check runs in a window
// where the test may not be visible yet.
func (s *AchievementCheckService) CheckTestAchievements(userID uint, testID string) error {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if test.Score == 100 {
		return s.AchievementSvc.Grant(userID, model.PerfectScore)
	}

	return nil
}

// CheckCourseAchievements evaluates FIRST_STEP, READY_FOR_NEXT_LEVEL and
// MARATHON_KNOWLEDGE. The completed-course count is global across all of the
// user's enrollments, not scoped to the course that triggered the check.
func (s *AchievementCheckService) CheckCourseAchievements(userID uint, courseID string) error {
	if _, err := s.UserCourseRepo.Find(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	passed, err := s.TestRepo.HasPassedTest(userID, courseID)
	if err != nil {
		return err
	}
	if passed {
		if err := s.AchievementSvc.Grant(userID, model.FirstStep); err != nil {
			return err
		}
	}

	completedCourses, err := s.UserCourseRepo.CountCompletedCourses(userID, util.CompletedCourseSections)
	if err != nil {
		return err
	}

	if completedCourses >= util.ReadyForNextLevelCourses {
		if err := s.AchievementSvc.Grant(userID, model.ReadyForNextLevel); err != nil {
			return err
		}
	}

	if completedCourses >= util.MarathonKnowledgeCourses {
		if err := s.AchievementSvc.Grant(userID, model.MarathonKnowledge); err != nil {
			return err
		}
	}

	return nil
}
