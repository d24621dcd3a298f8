package service

import (
	"encoding/json"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/pkg/database"
	"family_learn_backend/pkg/logger"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fixedSource always yields zero, so Intn picks the first instance. Tests
// that need a known instance choice use it instead of a seeded source.
type fixedSource struct{}

func (fixedSource) Int63() int64 { return 0 }
func (fixedSource) Seed(int64)   {}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// A fresh connection would see an empty in-memory database, so the
	// pool must stay at a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

type testEnv struct {
	db             *gorm.DB
	userRepo       *repository.UserRepository
	testRepo       *repository.TestRepository
	userCourseRepo *repository.UserCourseRepository
	userSvc        *UserService
	userCourseSvc  *UserCourseService
	achievementSvc *AchievementService
	checkSvc       *AchievementCheckService
	testSvc        *TestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	testRepo := repository.NewTestRepository(db)
	userCourseRepo := repository.NewUserCourseRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	userSvc := NewUserService(userRepo, nil)
	userCourseSvc := NewUserCourseService(userCourseRepo, courseRepo)

	achievementSvc, err := NewAchievementService(achievementRepo, userRepo, nil)
	if err != nil {
		t.Fatalf("load achievement catalog: %v", err)
	}

	checkSvc := NewAchievementCheckService(testRepo, userCourseRepo, achievementSvc)

	testSvc := NewTestService(
		testRepo,
		sectionRepo,
		userCourseRepo,
		NewQuestionGeneratorWithSource(fixedSource{}),
		userSvc,
		userCourseSvc,
		checkSvc,
	)

	return &testEnv{
		db:             db,
		userRepo:       userRepo,
		testRepo:       testRepo,
		userCourseRepo: userCourseRepo,
		userSvc:        userSvc,
		userCourseSvc:  userCourseSvc,
		achievementSvc: achievementSvc,
		checkSvc:       checkSvc,
		testSvc:        testSvc,
	}
}

func (e *testEnv) seedUser(t *testing.T, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username: "tester",
		Email:    model.GenerateUUID() + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedCourse(t *testing.T) *model.Course {
	t.Helper()
	course := &model.Course{Title: "Fractions"}
	if err := e.db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

// seedSection creates a section with questionCount templates, each holding a
// single instance whose correct answer is "ok".
func (e *testEnv) seedSection(t *testing.T, courseID string, questionCount int) *model.Section {
	t.Helper()
	section := &model.Section{CourseID: courseID, Title: "Basics"}
	if err := e.db.Create(section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}

	for i := 0; i < questionCount; i++ {
		template := &model.QuestionTemplate{
			SectionID: section.ID,
			Text:      "What is {a} + {b}?",
			Order:     i,
		}
		if err := e.db.Create(template).Error; err != nil {
			t.Fatalf("seed template: %v", err)
		}

		instance := &model.QuestionInstance{
			TemplateID:    template.ID,
			Variables:     json.RawMessage(`{"a": 1, "b": 2}`),
			AnswerOptions: json.RawMessage(`["3", "4", "ok"]`),
			CorrectAnswer: "ok",
		}
		if err := e.db.Create(instance).Error; err != nil {
			t.Fatalf("seed instance: %v", err)
		}
	}

	return section
}

func (e *testEnv) seedEnrollment(t *testing.T, userID uint, courseID string) {
	t.Helper()
	if err := e.db.Create(&model.UserCourse{UserID: userID, CourseID: courseID}).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}

func (e *testEnv) countUserAchievements(t *testing.T, userID uint) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.UserAchievement{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count user achievements: %v", err)
	}
	return count
}

func (e *testEnv) hasAchievement(t *testing.T, userID uint, code model.AchievementCode) bool {
	t.Helper()
	granted, err := e.achievementSvc.ListGranted(userID)
	if err != nil {
		t.Fatalf("list granted: %v", err)
	}
	for _, a := range granted {
		if a.Code == code {
			return true
		}
	}
	return false
}
