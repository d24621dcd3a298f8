package service

import (
	"encoding/json"
	"family_learn_backend/internal/model"
	"fmt"
	"testing"
)

func (e *testEnv) seedFinishedTest(t *testing.T, userID uint, courseID string, status model.TestStatus, score int) *model.Test {
	t.Helper()
	test := &model.Test{
		UserID:    userID,
		CourseID:  courseID,
		SectionID: "section",
		Status:    status,
		Score:     score,
		Questions: json.RawMessage(`[]`),
	}
	if err := e.db.Create(test).Error; err != nil {
		t.Fatalf("seed test: %v", err)
	}
	return test
}

func (e *testEnv) seedCompletedCourses(t *testing.T, userID uint, count, sections int) {
	t.Helper()
	for i := 0; i < count; i++ {
		course := e.seedCourse(t)
		row := &model.UserCourse{UserID: userID, CourseID: course.ID, CompletedSections: sections}
		if err := e.db.Create(row).Error; err != nil {
			t.Fatalf("seed user course: %v", err)
		}
	}
}

func TestCheckTestAchievementsPerfectScore(t *testing.T) {
	cases := []struct {
		score int
		want  bool
	}{
		{score: 100, want: true},
		{score: 99, want: false},
		{score: 86, want: false},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("score_%d", c.score), func(t *testing.T) {
			env := newTestEnv(t)
			user := env.seedUser(t, model.Child)
			course := env.seedCourse(t)
			test := env.seedFinishedTest(t, user.ID, course.ID, model.TestPassed, c.score)

			if err := env.checkSvc.CheckTestAchievements(user.ID, test.ID); err != nil {
				t.Fatalf("CheckTestAchievements: %v", err)
			}

			if got := env.hasAchievement(t, user.ID, model.PerfectScore); got != c.want {
				t.Errorf("PERFECT_SCORE granted = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCheckTestAchievementsMissingTest(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)

	if err := env.checkSvc.CheckTestAchievements(user.ID, "no-such-test"); err != nil {
		t.Fatalf("CheckTestAchievements: %v", err)
	}
	if n := env.countUserAchievements(t, user.ID); n != 0 {
		t.Errorf("granted %d achievements for a missing test, want 0", n)
	}
}

func TestCheckCourseAchievementsFirstStep(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)
	env.seedEnrollment(t, user.ID, course.ID)
	env.seedFinishedTest(t, user.ID, course.ID, model.TestPassed, 90)

	if err := env.checkSvc.CheckCourseAchievements(user.ID, course.ID); err != nil {
		t.Fatalf("CheckCourseAchievements: %v", err)
	}

	if !env.hasAchievement(t, user.ID, model.FirstStep) {
		t.Error("FIRST_STEP not granted")
	}
	if n := env.countUserAchievements(t, user.ID); n != 1 {
		t.Errorf("granted %d achievements, want only FIRST_STEP", n)
	}
}

func TestCheckCourseAchievementsFailedTestDoesNotCount(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)
	env.seedEnrollment(t, user.ID, course.ID)
	env.seedFinishedTest(t, user.ID, course.ID, model.TestFailed, 40)

	if err := env.checkSvc.CheckCourseAchievements(user.ID, course.ID); err != nil {
		t.Fatalf("CheckCourseAchievements: %v", err)
	}

	if env.hasAchievement(t, user.ID, model.FirstStep) {
		t.Error("FIRST_STEP granted without a passed test")
	}
}

func TestCheckCourseAchievementsMissingEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)
	env.seedFinishedTest(t, user.ID, course.ID, model.TestPassed, 100)

	if err := env.checkSvc.CheckCourseAchievements(user.ID, course.ID); err != nil {
		t.Fatalf("CheckCourseAchievements: %v", err)
	}
	if n := env.countUserAchievements(t, user.ID); n != 0 {
		t.Errorf("granted %d achievements without an enrollment, want 0", n)
	}
}

func TestCheckCourseAchievementsCompletionThresholds(t *testing.T) {
	cases := []struct {
		completedCourses int
		wantReady        bool
		wantMarathon     bool
	}{
		{completedCourses: 2, wantReady: false, wantMarathon: false},
		{completedCourses: 3, wantReady: true, wantMarathon: false},
		{completedCourses: 5, wantReady: true, wantMarathon: true},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_courses", c.completedCourses), func(t *testing.T) {
			env := newTestEnv(t)
			user := env.seedUser(t, model.Child)
			env.seedCompletedCourses(t, user.ID, c.completedCourses, 3)

			// The triggering course is one of the completed ones.
			var anyCourse model.UserCourse
			if err := env.db.Where("user_id = ?", user.ID).First(&anyCourse).Error; err != nil {
				t.Fatalf("load enrollment: %v", err)
			}

			if err := env.checkSvc.CheckCourseAchievements(user.ID, anyCourse.CourseID); err != nil {
				t.Fatalf("CheckCourseAchievements: %v", err)
			}

			if got := env.hasAchievement(t, user.ID, model.ReadyForNextLevel); got != c.wantReady {
				t.Errorf("READY_FOR_NEXT_LEVEL granted = %v, want %v", got, c.wantReady)
			}
			if got := env.hasAchievement(t, user.ID, model.MarathonKnowledge); got != c.wantMarathon {
				t.Errorf("MARATHON_KNOWLEDGE granted = %v, want %v", got, c.wantMarathon)
			}
		})
	}
}

func TestCheckCourseAchievementsCountsCoursesNotSections(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	// One course with many sections done must not satisfy the course-count
	// thresholds on its own.
	env.seedCompletedCourses(t, user.ID, 1, 9)

	var enrollment model.UserCourse
	if err := env.db.Where("user_id = ?", user.ID).First(&enrollment).Error; err != nil {
		t.Fatalf("load enrollment: %v", err)
	}

	if err := env.checkSvc.CheckCourseAchievements(user.ID, enrollment.CourseID); err != nil {
		t.Fatalf("CheckCourseAchievements: %v", err)
	}

	if env.hasAchievement(t, user.ID, model.ReadyForNextLevel) {
		t.Error("READY_FOR_NEXT_LEVEL granted for a single course")
	}
}

func TestGrantIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)

	for i := 0; i < 3; i++ {
		if err := env.achievementSvc.Grant(user.ID, model.PerfectScore); err != nil {
			t.Fatalf("Grant #%d: %v", i+1, err)
		}
	}

	if n := env.countUserAchievements(t, user.ID); n != 1 {
		t.Errorf("repeated grant left %d rows, want 1", n)
	}
}

func TestGrantUnknownCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)

	if err := env.achievementSvc.Grant(user.ID, model.AchievementCode("NO_SUCH_CODE")); err == nil {
		t.Fatal("Grant accepted an unknown achievement code")
	}
}

func TestCatalogLoadsAllAchievements(t *testing.T) {
	env := newTestEnv(t)

	catalog := env.achievementSvc.Catalog()
	if len(catalog) != 4 {
		t.Fatalf("catalog has %d entries, want 4", len(catalog))
	}

	seen := map[model.AchievementCode]bool{}
	for _, a := range catalog {
		seen[a.Code] = true
	}
	for _, code := range []model.AchievementCode{model.FirstStep, model.PerfectScore, model.ReadyForNextLevel, model.MarathonKnowledge} {
		if !seen[code] {
			t.Errorf("catalog missing %s", code)
		}
	}
}
