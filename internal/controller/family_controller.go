package controller

import (
	"errors"
	"family_learn_backend/internal/service"
	"family_learn_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// FamilyController covers family membership and the parent-side course
// assignments for children.
type FamilyController struct {
	FamilyService       *service.FamilyService
	FamilyCourseService *service.FamilyCourseService
}

func NewFamilyController(familyService *service.FamilyService, familyCourseService *service.FamilyCourseService) *FamilyController {
	return &FamilyController{
		FamilyService:       familyService,
		FamilyCourseService: familyCourseService,
	}
}

type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func familyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrFamilyNotFound):
		util.NotFound(ctx, "Family not found")
	case errors.Is(err, util.ErrChildNotFound):
		util.NotFound(ctx, "Child not found in your family")
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateFamily godoc
// @Summary Create a family
// @Tags family
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateFamilyRequest true "Family name"
// @Success 201 {object} util.Response{data=model.Family}
// @Failure 403 {object} util.Response
// @Router /api/family [post]
func (c *FamilyController) CreateFamily(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateFamilyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	family, err := c.FamilyService.Create(claims.UserID, req.Name)
	if err != nil {
		familyError(ctx, err)
		return
	}
	util.Created(ctx, family)
}

// GetFamily godoc
// @Summary Get own family
// @Tags family
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Family}
// @Failure 404 {object} util.Response
// @Router /api/family [get]
func (c *FamilyController) GetFamily(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	family, err := c.FamilyService.GetForUser(claims.UserID)
	if err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, family)
}

// AddMember godoc
// @Summary Add a member by email
// @Tags family
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AddMemberRequest true "Member email"
// @Success 200 {object} util.Response{data=model.Family}
// @Failure 404 {object} util.Response
// @Router /api/family/members [post]
func (c *FamilyController) AddMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	family, err := c.FamilyService.AddMember(claims.UserID, req.Email)
	if err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, family)
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags family
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "Member user id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/family/members/{userId} [delete]
func (c *FamilyController) RemoveMember(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	memberID := util.MustParseUint(ctx.Param("userId"))
	if memberID == 0 {
		util.BadRequest(ctx, "Invalid user id")
		return
	}

	if err := c.FamilyService.RemoveMember(claims.UserID, memberID); err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": true})
}

// GetChildCourses godoc
// @Summary A child's course progress
// @Tags family
// @Produce json
// @Security ApiKeyAuth
// @Param childId path int true "Child user id"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 404 {object} util.Response
// @Router /api/family/children/{childId}/courses [get]
func (c *FamilyController) GetChildCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	childID := util.MustParseUint(ctx.Param("childId"))
	if childID == 0 {
		util.BadRequest(ctx, "Invalid child id")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	family, err := c.FamilyService.GetForUser(claims.UserID)
	if err != nil {
		familyError(ctx, err)
		return
	}

	courses, err := c.FamilyCourseService.GetChildCourses(family.ID, childID, page, limit)
	if err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetAvailableChildren godoc
// @Summary Children not yet enrolled in a course
// @Tags family
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course id"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 404 {object} util.Response
// @Router /api/family/courses/{courseId}/available-children [get]
func (c *FamilyController) GetAvailableChildren(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	family, err := c.FamilyService.GetForUser(claims.UserID)
	if err != nil {
		familyError(ctx, err)
		return
	}

	children, err := c.FamilyCourseService.GetAvailableChildren(family.ID, ctx.Param("courseId"))
	if err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, children)
}

// AssignCourse godoc
// @Summary Assign a course to a child
// @Description Creates the child's course enrollment; assigning twice is a no-op
// @Tags family
// @Produce json
// @Security ApiKeyAuth
// @Param childId path int true "Child user id"
// @Param courseId path string true "Course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/family/children/{childId}/courses/{courseId} [post]
func (c *FamilyController) AssignCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	childID := util.MustParseUint(ctx.Param("childId"))
	if childID == 0 {
		util.BadRequest(ctx, "Invalid child id")
		return
	}

	if err := c.FamilyCourseService.Assign(claims.UserID, childID, ctx.Param("courseId")); err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assigned": true})
}

// RemoveCourse godoc
// @Summary Remove a course assignment from a child
// @Tags family
// @Produce json
// @Security ApiKeyAuth
// @Param childId path int true "Child user id"
// @Param courseId path string true "Course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/family/children/{childId}/courses/{courseId} [delete]
func (c *FamilyController) RemoveCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	childID := util.MustParseUint(ctx.Param("childId"))
	if childID == 0 {
		util.BadRequest(ctx, "Invalid child id")
		return
	}

	if err := c.FamilyCourseService.Remove(claims.UserID, childID, ctx.Param("courseId")); err != nil {
		familyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": true})
}
