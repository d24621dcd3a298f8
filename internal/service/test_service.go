package service

import (
	"encoding/json"
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"
	"family_learn_backend/pkg/logger"
	"family_learn_backend/pkg/monitoring"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TestService owns the test lifecycle: PENDING on generation, then exactly
// one transition to PASSED or FAILED at submission.
type TestService struct {
	TestRepo       *repository.TestRepository
	SectionRepo    *repository.SectionRepository
	UserCourseRepo *repository.UserCourseRepository
	Generator      *QuestionGenerator
	UserSvc        *UserService
	UserCourseSvc  *UserCourseService
	CheckSvc       *AchievementCheckService
}

func NewTestService(
	testRepo *repository.TestRepository,
	sectionRepo *repository.SectionRepository,
	userCourseRepo *repository.UserCourseRepository,
	generator *QuestionGenerator,
	userSvc *UserService,
	userCourseSvc *UserCourseService,
	checkSvc *AchievementCheckService,
) *TestService {
	return &TestService{
		TestRepo:       testRepo,
		SectionRepo:    sectionRepo,
		UserCourseRepo: userCourseRepo,
		Generator:      generator,
		UserSvc:        userSvc,
		UserCourseSvc:  userCourseSvc,
		CheckSvc:       checkSvc,
	}
}

// SubmitResult is what a graded submission returns to the client.
type SubmitResult struct {
	Status  model.TestStatus       `json:"status"`
	Score   int                    `json:"score"`
	Results []model.QuestionResult `json:"results"`
}

// Generate builds a PENDING test for the section. Enrollment into the
// section's course is a precondition: the progress update on a later passing
// submission requires the UserCourse row to exist. A section without
// templates is a content-authoring bug and is rejected here rather than
// allowed to produce a test that can never be scored.
func (s *TestService) Generate(sectionID string, userID uint) (*model.Test, error) {
	section, err := s.SectionRepo.FindWithTemplates(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}

	if len(section.QuestionTemplates) == 0 {
		return nil, util.ErrSectionNoQuestions
	}

	if _, err := s.UserCourseRepo.Find(userID, section.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	questions, err := s.Generator.Generate(section.QuestionTemplates)
	if err != nil {
		return nil, err
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		UserID:    userID,
		CourseID:  section.CourseID,
		SectionID: section.ID,
		Status:    model.TestPending,
		Score:     0,
		Questions: questionsJSON,
	}

	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}

	return test, nil
}

func (s *TestService) Get(testID string) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *TestService) GetAll(userID uint) ([]model.Test, error) {
	return s.TestRepo.FindCompletedByUser(userID)
}

// Submit grades the answers against the test's embedded question sequence
// and persists the terminal state. On a passing score the course progress
// counter, reward points and achievement checks run, in that order, before
// the result write. Every one of those side effects is an atomic increment
// or an idempotent upsert, so a submission interrupted part-way can be
// retried without double-counting or duplicate grants.
func (s *TestService) Submit(testID string, userID uint, answers []model.TestAnswer) (*SubmitResult, error) {
	test, err := s.Get(testID)
	if err != nil {
		return nil, err
	}

	// Only the owner may submit; anyone else sees the test as absent.
	if test.UserID != userID {
		return nil, util.ErrTestNotFound
	}

	if test.Status != model.TestPending {
		return nil, util.ErrTestAlreadySubmitted
	}

	questions, err := test.GeneratedQuestions()
	if err != nil {
		return nil, err
	}

	results, score, status := calculateResults(questions, answers)

	if status == model.TestPassed {
		if err := s.UserCourseSvc.UpdateProgress(userID, test.CourseID); err != nil {
			return nil, err
		}
		points := int(math.Round(float64(score) / float64(util.PointsPerScoreDivisor)))
		if err := s.UserSvc.UpdatePoints(userID, points); err != nil {
			return nil, err
		}
		if err := s.CheckSvc.CheckCourseAchievements(userID, test.CourseID); err != nil {
			return nil, err
		}
		if err := s.CheckSvc.CheckTestAchievements(userID, testID); err != nil {
			return nil, err
		}
	}

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	if err := s.TestRepo.SaveResult(testID, userID, status, score, resultsJSON); err != nil {
		return nil, err
	}

	monitoring.TestSubmissions.WithLabelValues(string(status)).Inc()
	logger.Log.Info("test submitted",
		zap.String("testId", testID),
		zap.Uint("userId", userID),
		zap.String("status", string(status)),
		zap.Int("score", score))

	return &SubmitResult{Status: status, Score: score, Results: results}, nil
}

// calculateResults matches answers to questions by instance id, preserving
// question order. A question without a matching answer counts as wrong and
// its recorded user answer stays null. Answers that match no question are
// ignored.
func calculateResults(questions []model.GeneratedQuestion, answers []model.TestAnswer) ([]model.QuestionResult, int, model.TestStatus) {
	// First answer wins when a client sends duplicates for one instance.
	answerByInstance := make(map[string]string, len(answers))
	for _, answer := range answers {
		if _, ok := answerByInstance[answer.InstanceID]; !ok {
			answerByInstance[answer.InstanceID] = answer.UserAnswer
		}
	}

	correctCount := 0
	results := make([]model.QuestionResult, len(questions))

	for i, question := range questions {
		var userAnswer *string
		if value, ok := answerByInstance[question.InstanceID]; ok {
			userAnswer = &value
			if value == question.CorrectAnswer {
				correctCount++
			}
		}

		results[i] = model.QuestionResult{
			Text:          question.Text,
			CorrectAnswer: question.CorrectAnswer,
			UserAnswer:    userAnswer,
		}
	}

	score := int(math.Round(float64(correctCount) / float64(len(questions)) * 100))

	status := model.TestFailed
	if score >= util.PassScoreThreshold {
		status = model.TestPassed
	}

	return results, score, status
}
