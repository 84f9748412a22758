package controller

import (
	"errors"

	"block_sensei_backend/internal/service"
	"block_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MissionController struct {
	MissionService     *service.MissionService
	LeaderboardService *service.LeaderboardService
}

func NewMissionController(missionService *service.MissionService, leaderboardService *service.LeaderboardService) *MissionController {
	return &MissionController{
		MissionService:     missionService,
		LeaderboardService: leaderboardService,
	}
}

// @Summary Create a mission with nested rounds
// @Tags missions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param mission body service.MissionCreateRequest true "mission draft"
// @Success 201 {object} util.Response
// @Router /api/v1/missions [post]
func (c *MissionController) CreateMission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MissionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mission, err := c.MissionService.CreateMission(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrClanNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, mission)
}

// @Summary List missions
// @Tags missions
// @Produce json
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/missions [get]
func (c *MissionController) ListMissions(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	missions, total, err := c.MissionService.ListMissions(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"data": missions,
		"meta": util.NewPageMeta(total, page, limit),
	})
}

// @Summary List missions of a clan
// @Tags missions
// @Produce json
// @Param clanId path string true "clan id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/missions/clan/{clanId} [get]
func (c *MissionController) ListMissionsByClan(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	missions, total, err := c.MissionService.ListMissionsByClan(ctx.Param("clanId"), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrClanNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"data": missions,
		"meta": util.NewPageMeta(total, page, limit),
	})
}

// @Summary Get a mission with full nesting
// @Tags missions
// @Produce json
// @Param id path string true "mission id"
// @Success 200 {object} util.Response
// @Router /api/v1/missions/{id} [get]
func (c *MissionController) GetMission(ctx *gin.Context) {
	mission, err := c.MissionService.GetMission(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrMissionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, mission)
}

// @Summary Update a mission, including per-round create/update/delete actions
// @Tags missions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "mission id"
// @Param mission body service.MissionUpdateRequest true "mission patch"
// @Success 200 {object} util.Response
// @Router /api/v1/missions/{id} [patch]
func (c *MissionController) UpdateMission(ctx *gin.Context) {
	var req service.MissionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mission, err := c.MissionService.UpdateMission(ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissionNotFound), errors.Is(err, util.ErrClanNotFound),
			errors.Is(err, util.ErrRoundNotFound), errors.Is(err, util.ErrQuestNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidRoundAction):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, mission)
}

// @Summary Delete a mission and everything under it
// @Tags missions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "mission id"
// @Success 200 {object} util.Response
// @Router /api/v1/missions/{id} [delete]
func (c *MissionController) DeleteMission(ctx *gin.Context) {
	if err := c.MissionService.DeleteMission(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrMissionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true, "message": "mission deleted"})
}

// @Summary Mission leaderboard, earliest finisher first
// @Tags missions
// @Produce json
// @Param id path string true "mission id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/missions/{id}/leaderboard [get]
func (c *MissionController) GetMissionLeaderboard(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	board, err := c.LeaderboardService.GetMissionLeaderboard(ctx.Param("id"), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrMissionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, board)
}
