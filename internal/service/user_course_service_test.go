package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/util"
	"testing"
)

func TestUpdateProgressIncrements(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)
	env.seedEnrollment(t, user.ID, course.ID)

	for want := 1; want <= 3; want++ {
		if err := env.userCourseSvc.UpdateProgress(user.ID, course.ID); err != nil {
			t.Fatalf("UpdateProgress: %v", err)
		}
		enrollment, err := env.userCourseRepo.Find(user.ID, course.ID)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if enrollment.CompletedSections != want {
			t.Fatalf("completedSections = %d, want %d", enrollment.CompletedSections, want)
		}
	}
}

func TestUpdateProgressMissingEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)
	course := env.seedCourse(t)

	err := env.userCourseSvc.UpdateProgress(user.ID, course.ID)
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestUpdatePointsAccumulates(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, model.Child)

	if err := env.userSvc.UpdatePoints(user.ID, 9); err != nil {
		t.Fatalf("UpdatePoints: %v", err)
	}
	if err := env.userSvc.UpdatePoints(user.ID, 10); err != nil {
		t.Fatalf("UpdatePoints: %v", err)
	}

	reloaded, err := env.userSvc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Points != 19 {
		t.Errorf("points = %d, want 19", reloaded.Points)
	}
}
