package app

import (
	"family_learn_backend/docs"
	"family_learn_backend/internal/config"
	"family_learn_backend/internal/middleware"
	"family_learn_backend/internal/model"
	"family_learn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerLearningRoutes(authGroup, c)
		a.registerParentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.GET("/verify", c.auth.Verify)
		}
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)

	users := rg.Group("/users")
	{
		users.GET("", c.user.GetUsers)
		users.GET("/profile", c.user.GetProfile)
		users.PUT("/profile", c.user.UpdateProfile)
		users.POST("/avatar", c.user.UploadAvatar)
		users.GET("/leaderboard", c.user.GetLeaderboard)
	}
}

func (a *App) registerLearningRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/courses", c.course.GetCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.GET("/sections/:id", c.course.GetSection)

	tests := rg.Group("/tests")
	{
		tests.GET("", c.test.GetTests)
		tests.POST("/generate/:sectionId", c.test.GenerateTest)
		tests.GET("/:id", c.test.GetTest)
		tests.POST("/:id/submit", c.test.SubmitTest)
	}

	achievements := rg.Group("/achievements")
	{
		achievements.GET("", c.achievement.GetCatalog)
		achievements.GET("/mine", c.achievement.GetMine)
	}
}

// registerParentRoutes groups everything behind the PARENT role: family
// management and course assignment for children.
func (a *App) registerParentRoutes(rg *gin.RouterGroup, c *controllers) {
	family := rg.Group("/family")

	family.GET("", c.family.GetFamily)

	parentOnly := family.Group("")
	parentOnly.Use(middleware.RoleMiddleware(model.Parent))
	{
		parentOnly.POST("", c.family.CreateFamily)
		parentOnly.POST("/members", c.family.AddMember)
		parentOnly.DELETE("/members/:userId", c.family.RemoveMember)
		parentOnly.GET("/children/:childId/courses", c.family.GetChildCourses)
		parentOnly.POST("/children/:childId/courses/:courseId", c.family.AssignCourse)
		parentOnly.DELETE("/children/:childId/courses/:courseId", c.family.RemoveCourse)
		parentOnly.GET("/courses/:courseId/available-children", c.family.GetAvailableChildren)
	}
}
