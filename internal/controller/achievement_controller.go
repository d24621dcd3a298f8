package controller

import (
	"family_learn_backend/internal/service"
	"family_learn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AchievementController serves the static catalog and per-user grants.
type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// GetCatalog godoc
// @Summary Achievement catalog
// @Tags achievements
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /api/achievements [get]
func (c *AchievementController) GetCatalog(ctx *gin.Context) {
	util.Success(ctx, c.AchievementService.Catalog())
}

// GetMine godoc
// @Summary Achievements granted to the current user
// @Tags achievements
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /api/achievements/mine [get]
func (c *AchievementController) GetMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.AchievementService.ListGranted(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}
