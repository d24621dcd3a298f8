package controller

import (
	"errors"
	"family_learn_backend/internal/service"
	"family_learn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController serves the course catalog and section content.
type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// GetCourses godoc
// @Summary List courses
// @Description Parents see the full catalog; children see their enrolled courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.GetAll(claims.UserID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Course detail
// @Description Course with its sections; includes progress for children
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course id"
// @Success 200 {object} util.Response{data=service.CourseWithProgress}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.GetByID(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetSection godoc
// @Summary Section detail
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Section id"
// @Success 200 {object} util.Response{data=model.Section}
// @Failure 404 {object} util.Response
// @Router /api/sections/{id} [get]
func (c *CourseController) GetSection(ctx *gin.Context) {
	section, err := c.CourseService.GetSection(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSectionNotFound) {
			util.NotFound(ctx, "Section not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, section)
}
