package controller

import (
	"errors"
	"io"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/service"
	"block_sensei_backend/internal/util"
	"block_sensei_backend/pkg/logger"
	"block_sensei_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProgressionController struct {
	ProgressionService *service.ProgressionService
	AuthService        *service.AuthService
	SuiService         *service.SuiService
}

func NewProgressionController(progressionService *service.ProgressionService, authService *service.AuthService, suiService *service.SuiService) *ProgressionController {
	return &ProgressionController{
		ProgressionService: progressionService,
		AuthService:        authService,
		SuiService:         suiService,
	}
}

// @Summary Start a mission for the current user
// @Tags progression
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "mission id"
// @Success 201 {object} util.Response
// @Router /api/v1/missions/{id}/start [post]
func (c *ProgressionController) StartMission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	participation, err := c.ProgressionService.StartMission(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissionNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrMissionAlreadyStarted):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, participation)
}

// @Summary Start a round the current user has not yet begun
// @Tags progression
// @Produce json
// @Security ApiKeyAuth
// @Param roundId path string true "mission round id"
// @Success 200 {object} util.Response
// @Router /api/v1/missions/rounds/{roundId}/start [post]
func (c *ProgressionController) StartRound(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressionService.StartRound(user.UserID, ctx.Param("roundId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoundProgressNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrRoundAlreadyStarted):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// @Summary Complete a round, grading quiz answers when the quest is a quiz
// @Tags progression
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param roundId path string true "mission round id"
// @Param completion body service.CompleteRoundRequest true "round completion"
// @Success 200 {object} util.Response
// @Router /api/v1/missions/rounds/{roundId}/complete [post]
func (c *ProgressionController) CompleteRound(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	// Quest-less rounds are completed with an empty body.
	var req service.CompleteRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.MissionRoundID = ctx.Param("roundId")

	result, err := c.ProgressionService.CompleteRound(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoundProgressNotFound), errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrRoundNotInProgress), errors.Is(err, util.ErrNoQuizAnswers):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if result.MissionCompleted {
		if round := result.RoundProgress.Round; round != nil {
			monitoring.MissionCompletions.WithLabelValues(round.MissionID).Inc()
		}
		go c.mintCompletionReward(user.UserID, req.MissionRoundID)
	}

	util.Success(ctx, result)
}

// mintCompletionReward runs outside the request; failures are logged and never
// affect the completion response.
func (c *ProgressionController) mintCompletionReward(userID, roundID string) {
	reward, err := c.ProgressionService.RewardForRound(roundID)
	if err != nil {
		logger.Log.Warn("reward lookup failed after mission completion",
			zap.String("round_id", roundID),
			zap.Error(err))
		return
	}
	if reward == nil {
		return
	}

	profile, err := c.AuthService.GetProfile(userID)
	if err != nil {
		logger.Log.Warn("user lookup failed after mission completion",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}

	c.SuiService.MintReward(profile.WalletAddress, reward.Amount, reward.Token)
}

// @Summary Current user's progress inside one mission
// @Tags progression
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "mission id"
// @Success 200 {object} util.Response
// @Router /api/v1/missions/{id}/progress [get]
func (c *ProgressionController) GetMissionProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	participation, err := c.ProgressionService.GetUserMissionProgress(user.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrParticipationNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, participation)
}

// @Summary Every mission the current user has joined
// @Tags progression
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/missions/users/missions [get]
func (c *ProgressionController) ListUserMissions(ctx *gin.Context) {
	c.listParticipations(ctx, c.ProgressionService.ListUserMissions)
}

// @Summary Missions the current user has finished
// @Tags progression
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/missions/users/completed [get]
func (c *ProgressionController) ListUserCompleted(ctx *gin.Context) {
	c.listParticipations(ctx, c.ProgressionService.ListUserCompleted)
}

// @Summary Missions the current user has started but not finished
// @Tags progression
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/missions/users/participated [get]
func (c *ProgressionController) ListUserParticipated(ctx *gin.Context) {
	c.listParticipations(ctx, c.ProgressionService.ListUserParticipated)
}

func (c *ProgressionController) listParticipations(ctx *gin.Context, list func(string, int, int) ([]model.MissionParticipation, int64, error)) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := parsePagination(ctx)
	participations, total, err := list(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"data": participations,
		"meta": util.NewPageMeta(total, page, limit),
	})
}
