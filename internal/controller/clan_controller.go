package controller

import (
	"errors"

	"block_sensei_backend/internal/service"
	"block_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClanController struct {
	ClanService *service.ClanService
}

func NewClanController(clanService *service.ClanService) *ClanController {
	return &ClanController{ClanService: clanService}
}

// @Summary Create a clan
// @Tags clans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param clan body service.ClanCreateRequest true "clan"
// @Success 201 {object} util.Response
// @Router /api/v1/clans [post]
func (c *ClanController) CreateClan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ClanCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	clan, err := c.ClanService.CreateClan(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrClanNameTaken) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, clan)
}

// @Summary List clans
// @Tags clans
// @Produce json
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response
// @Router /api/v1/clans [get]
func (c *ClanController) ListClans(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	clans, total, err := c.ClanService.ListClans(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"data": clans,
		"meta": util.NewPageMeta(total, page, limit),
	})
}

// @Summary Get a clan
// @Tags clans
// @Produce json
// @Param id path string true "clan id"
// @Success 200 {object} util.Response
// @Router /api/v1/clans/{id} [get]
func (c *ClanController) GetClan(ctx *gin.Context) {
	clan, err := c.ClanService.GetClan(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrClanNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	members, err := c.ClanService.MemberCount(clan.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	resp := gin.H{"clan": clan, "member_count": members}

	// Guests get the public view; logged-in users also see their membership.
	if user := util.GetUserFromContext(ctx); user != nil {
		isMember, err := c.ClanService.IsMember(user.UserID, clan.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		resp["is_member"] = isMember
	}

	util.Success(ctx, resp)
}

// @Summary Update a clan
// @Tags clans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "clan id"
// @Param clan body service.ClanUpdateRequest true "clan patch"
// @Success 200 {object} util.Response
// @Router /api/v1/clans/{id} [patch]
func (c *ClanController) UpdateClan(ctx *gin.Context) {
	var req service.ClanUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	clan, err := c.ClanService.UpdateClan(ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClanNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrClanNameTaken):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, clan)
}

// @Summary Delete a clan
// @Tags clans
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "clan id"
// @Success 200 {object} util.Response
// @Router /api/v1/clans/{id} [delete]
func (c *ClanController) DeleteClan(ctx *gin.Context) {
	if err := c.ClanService.DeleteClan(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrClanNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true, "message": "clan deleted"})
}

// @Summary Join a clan
// @Tags clans
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "clan id"
// @Success 200 {object} util.Response
// @Router /api/v1/clans/{id}/join [post]
func (c *ClanController) JoinClan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ClanService.JoinClan(user.UserID, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrClanNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyMember):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"success": true, "message": "joined clan"})
}

// @Summary Leave a clan
// @Tags clans
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "clan id"
// @Success 200 {object} util.Response
// @Router /api/v1/clans/{id}/leave [post]
func (c *ClanController) LeaveClan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ClanService.LeaveClan(user.UserID, ctx.Param("id")); err != nil {
		switch {
		case errors.Is(err, util.ErrClanNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNotClanMember):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"success": true, "message": "left clan"})
}
