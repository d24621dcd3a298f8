package app

import (
	"context"
	"family_learn_backend/internal/config"
	"family_learn_backend/internal/controller"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/service"
	"family_learn_backend/pkg/database"
	"family_learn_backend/pkg/logger"
	"family_learn_backend/pkg/monitoring"
	"family_learn_backend/pkg/security"
	"family_learn_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	section     *repository.SectionRepository
	test        *repository.TestRepository
	userCourse  *repository.UserCourseRepository
	achievement *repository.AchievementRepository
	family      *repository.FamilyRepository
}

type services struct {
	auth         *service.AuthService
	mail         *service.MailService
	storage      *service.StorageService
	user         *service.UserService
	course       *service.CourseService
	userCourse   *service.UserCourseService
	test         *service.TestService
	achievement  *service.AchievementService
	check        *service.AchievementCheckService
	family       *service.FamilyService
	familyCourse *service.FamilyCourseService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	test        *controller.TestController
	achievement *controller.AchievementController
	family      *controller.FamilyController
	health      *controller.HealthController
}

// RegisterConfigCallback subscribes to hot-reloaded config changes.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig pushes a freshly loaded config to every subscriber.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		section:     repository.NewSectionRepository(db),
		test:        repository.NewTestRepository(db),
		userCourse:  repository.NewUserCourseRepository(db),
		achievement: repository.NewAchievementRepository(db),
		family:      repository.NewFamilyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	s.mail = service.NewMailService(&cfg.Mail)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.mail, cfg)
	s.user = service.NewUserService(repos.user, rdb)
	s.userCourse = service.NewUserCourseService(repos.userCourse, repos.course)
	s.course = service.NewCourseService(repos.course, repos.section, repos.userCourse)

	achievement, err := service.NewAchievementService(repos.achievement, repos.user, s.mail)
	if err != nil {
		return nil, err
	}
	s.achievement = achievement
	s.check = service.NewAchievementCheckService(repos.test, repos.userCourse, s.achievement)

	s.test = service.NewTestService(
		repos.test,
		repos.section,
		repos.userCourse,
		service.NewQuestionGenerator(),
		s.user,
		s.userCourse,
		s.check,
	)

	s.family = service.NewFamilyService(repos.family, repos.user)
	s.familyCourse = service.NewFamilyCourseService(repos.family, repos.course, s.family, s.userCourse)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.storage),
		course:      controller.NewCourseController(s.course),
		test:        controller.NewTestController(s.test),
		achievement: controller.NewAchievementController(s.achievement),
		family:      controller.NewFamilyController(s.family, s.familyCourse),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("family-learn-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
