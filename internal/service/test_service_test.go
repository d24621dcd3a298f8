package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/util"
	"fmt"
	"testing"
)

// answerAll builds answers for the first correct questions correctly and the
// remainder wrongly.
func answerAll(questions []model.GeneratedQuestion, correct int) []model.TestAnswer {
	answers := make([]model.TestAnswer, 0, len(questions))
	for i, q := range questions {
		answer := q.CorrectAnswer
		if i >= correct {
			answer = "definitely not"
		}
		answers = append(answers, model.TestAnswer{InstanceID: q.InstanceID, UserAnswer: answer})
	}
	return answers
}

func (e *testEnv) generateTest(t *testing.T, questionCount int) (*model.User, *model.Test) {
	t.Helper()

	user := e.seedUser(t, model.Child)
	course := e.seedCourse(t)
	section := e.seedSection(t, course.ID, questionCount)
	e.seedEnrollment(t, user.ID, course.ID)

	test, err := e.testSvc.Generate(section.ID, user.ID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return user, test
}

func TestGenerateCreatesPendingTest(t *testing.T) {
	env := newTestEnv(t)
	_, test := env.generateTest(t, 2)

	if test.Status != model.TestPending {
		t.Errorf("status = %s, want PENDING", test.Status)
	}
	if test.Score != 0 {
		t.Errorf("score = %d, want 0", test.Score)
	}

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	for _, q := range questions {
		if q.Text == "" || q.CorrectAnswer == "" {
			t.Errorf("question missing content: %+v", q)
		}
	}

	stored, err := env.testSvc.Get(test.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Status != model.TestPending {
		t.Errorf("stored status = %s, want PENDING", stored.Status)
	}
}

func TestGenerateRejectsSectionWithoutQuestions(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)
	section := env.seedSection(t, course.ID, 0)
	env.seedEnrollment(t, user.ID, course.ID)

	_, err := env.testSvc.Generate(section.ID, user.ID)
	if !errors.Is(err, util.ErrSectionNoQuestions) {
		t.Fatalf("err = %v, want ErrSectionNoQuestions", err)
	}
}

func TestGenerateRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)
	section := env.seedSection(t, course.ID, 1)

	_, err := env.testSvc.Generate(section.ID, user.ID)
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestGenerateUnknownSection(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)

	_, err := env.testSvc.Generate("no-such-section", user.ID)
	if !errors.Is(err, util.ErrSectionNotFound) {
		t.Fatalf("err = %v, want ErrSectionNotFound", err)
	}
}

func TestSubmitScoring(t *testing.T) {
	cases := []struct {
		total      int
		correct    int
		wantScore  int
		wantStatus model.TestStatus
	}{
		{total: 3, correct: 3, wantScore: 100, wantStatus: model.TestPassed},
		{total: 20, correct: 17, wantScore: 85, wantStatus: model.TestPassed},
		{total: 20, correct: 16, wantScore: 80, wantStatus: model.TestFailed},
		{total: 7, correct: 6, wantScore: 86, wantStatus: model.TestPassed},
		{total: 7, correct: 5, wantScore: 71, wantStatus: model.TestFailed},
		{total: 2, correct: 0, wantScore: 0, wantStatus: model.TestFailed},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", c.correct, c.total), func(t *testing.T) {
			env := newTestEnv(t)
			user, test := env.generateTest(t, c.total)

			questions, err := test.GeneratedQuestions()
			if err != nil {
				t.Fatalf("GeneratedQuestions: %v", err)
			}

			result, err := env.testSvc.Submit(test.ID, user.ID, answerAll(questions, c.correct))
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if result.Score != c.wantScore {
				t.Errorf("score = %d, want %d", result.Score, c.wantScore)
			}
			if result.Status != c.wantStatus {
				t.Errorf("status = %s, want %s", result.Status, c.wantStatus)
			}
			if len(result.Results) != c.total {
				t.Errorf("got %d results, want %d", len(result.Results), c.total)
			}
		})
	}
}

func TestSubmitMissingAnswerCountsWrong(t *testing.T) {
	env := newTestEnv(t)
	user, test := env.generateTest(t, 2)

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}

	answers := []model.TestAnswer{
		{InstanceID: questions[0].InstanceID, UserAnswer: questions[0].CorrectAnswer},
	}

	result, err := env.testSvc.Submit(test.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("score = %d, want 50", result.Score)
	}
	if result.Results[1].UserAnswer != nil {
		t.Errorf("unanswered question recorded answer %q, want null", *result.Results[1].UserAnswer)
	}
}

func TestSubmitIgnoresUnknownInstance(t *testing.T) {
	env := newTestEnv(t)
	user, test := env.generateTest(t, 1)

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}

	answers := []model.TestAnswer{
		{InstanceID: "not-in-this-test", UserAnswer: "whatever"},
		{InstanceID: questions[0].InstanceID, UserAnswer: questions[0].CorrectAnswer},
	}

	result, err := env.testSvc.Submit(test.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
}

func TestSubmitTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	user, test := env.generateTest(t, 2)

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}

	first, err := env.testSvc.Submit(test.ID, user.ID, answerAll(questions, 2))
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	_, err = env.testSvc.Submit(test.ID, user.ID, answerAll(questions, 0))
	if !errors.Is(err, util.ErrTestAlreadySubmitted) {
		t.Fatalf("second Submit err = %v, want ErrTestAlreadySubmitted", err)
	}

	stored, err := env.testSvc.Get(test.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Score != first.Score || stored.Status != first.Status {
		t.Errorf("stored result changed by rejected resubmission: score=%d status=%s", stored.Score, stored.Status)
	}
}

func TestSubmitByAnotherUserRejected(t *testing.T) {
	env := newTestEnv(t)
	owner, test := env.generateTest(t, 2)

	intruder := env.seedUser(t, model.Child)
	env.seedEnrollment(t, intruder.ID, test.CourseID)

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}

	_, err = env.testSvc.Submit(test.ID, intruder.ID, answerAll(questions, 2))
	if !errors.Is(err, util.ErrTestNotFound) {
		t.Fatalf("err = %v, want ErrTestNotFound", err)
	}

	stored, err := env.testSvc.Get(test.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Status != model.TestPending {
		t.Errorf("owner's test status = %s, want PENDING", stored.Status)
	}

	reloaded, err := env.userSvc.GetByID(intruder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Points != 0 {
		t.Errorf("intruder points = %d, want 0", reloaded.Points)
	}

	// The owner can still submit normally afterwards.
	result, err := env.testSvc.Submit(test.ID, owner.ID, answerAll(questions, 2))
	if err != nil {
		t.Fatalf("owner Submit: %v", err)
	}
	if result.Status != model.TestPassed {
		t.Errorf("owner status = %s, want PASSED", result.Status)
	}
}

func TestSubmitUnknownTest(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)

	_, err := env.testSvc.Submit("no-such-test", user.ID, nil)
	if !errors.Is(err, util.ErrTestNotFound) {
		t.Fatalf("err = %v, want ErrTestNotFound", err)
	}
}

func TestSubmitPassAwardsPointsAndProgress(t *testing.T) {
	env := newTestEnv(t)
	user, test := env.generateTest(t, 2)

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}

	if _, err := env.testSvc.Submit(test.ID, user.ID, answerAll(questions, 2)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reloaded, err := env.userSvc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Points != 10 {
		t.Errorf("points = %d, want 10", reloaded.Points)
	}

	enrollment, err := env.userCourseRepo.Find(user.ID, test.CourseID)
	if err != nil {
		t.Fatalf("Find enrollment: %v", err)
	}
	if enrollment.CompletedSections != 1 {
		t.Errorf("completedSections = %d, want 1", enrollment.CompletedSections)
	}
}

func TestSubmitFailLeavesProgressAlone(t *testing.T) {
	env := newTestEnv(t)
	user, test := env.generateTest(t, 2)

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}

	if _, err := env.testSvc.Submit(test.ID, user.ID, answerAll(questions, 0)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reloaded, err := env.userSvc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Points != 0 {
		t.Errorf("points = %d, want 0", reloaded.Points)
	}

	enrollment, err := env.userCourseRepo.Find(user.ID, test.CourseID)
	if err != nil {
		t.Fatalf("Find enrollment: %v", err)
	}
	if enrollment.CompletedSections != 0 {
		t.Errorf("completedSections = %d, want 0", enrollment.CompletedSections)
	}
}

func TestGetAllReturnsCompletedOnly(t *testing.T) {
	env := newTestEnv(t)
	user, test := env.generateTest(t, 1)

	tests, err := env.testSvc.GetAll(user.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tests) != 0 {
		t.Fatalf("pending test listed in history: %d entries", len(tests))
	}

	questions, err := test.GeneratedQuestions()
	if err != nil {
		t.Fatalf("GeneratedQuestions: %v", err)
	}
	if _, err := env.testSvc.Submit(test.ID, user.ID, answerAll(questions, 1)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	tests, err = env.testSvc.GetAll(user.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("got %d completed tests, want 1", len(tests))
	}
	if tests[0].Status != model.TestPassed {
		t.Errorf("status = %s, want PASSED", tests[0].Status)
	}
}
