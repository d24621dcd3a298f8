package controller

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/service"
	"family_learn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TestController exposes the test lifecycle: generate, inspect, submit.
type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

type SubmitTestRequest struct {
	Answers []model.TestAnswer `json:"answers" binding:"required"`
}

// GenerateTest godoc
// @Summary Generate a test for a section
// @Description Materializes one randomized question per template and stores a PENDING test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param sectionId path string true "Section id"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response
// @Router /api/tests/generate/{sectionId} [post]
func (c *TestController) GenerateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.TestService.Generate(ctx.Param("sectionId"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSectionNotFound):
			util.NotFound(ctx, "Section not found")
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course enrollment not found")
		case errors.Is(err, util.ErrSectionNoQuestions), errors.Is(err, util.ErrTemplateNoInstances):
			util.LogInternalError(ctx, err)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, test)
}

// GetTest godoc
// @Summary Get a test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test id"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	test, err := c.TestService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx, "Test not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// GetTests godoc
// @Summary List completed tests
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Test}
// @Router /api/tests [get]
func (c *TestController) GetTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tests, err := c.TestService.GetAll(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// SubmitTest godoc
// @Summary Submit answers for a test
// @Description Grades the submission; a test can be submitted exactly once
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test id"
// @Param request body SubmitTestRequest true "Answers"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{id}/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TestService.Submit(ctx.Param("id"), claims.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx, "Test not found")
		case errors.Is(err, util.ErrTestAlreadySubmitted):
			util.BadRequest(ctx, "Test has already been submitted")
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course enrollment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
