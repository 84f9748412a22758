package app

import (
	"block_sensei_backend/docs"
	"block_sensei_backend/internal/config"
	"block_sensei_backend/internal/middleware"
	"block_sensei_backend/internal/model"
	"block_sensei_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	api := router.Group("/api/v1")

	// Public surface: registration, login, and read-only catalog browsing.
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)

	api.GET("/clans", c.clan.ListClans)
	api.GET("/clans/:id", middleware.TryAuthMiddleware(cfg), c.clan.GetClan)

	api.GET("/missions", c.mission.ListMissions)
	api.GET("/missions/clan/:clanId", c.mission.ListMissionsByClan)
	api.GET("/missions/:id", c.mission.GetMission)
	api.GET("/missions/:id/leaderboard", c.mission.GetMissionLeaderboard)

	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/auth/profile", c.auth.Profile)

		authorized.POST("/clans", c.clan.CreateClan)
		authorized.POST("/clans/:id/join", c.clan.JoinClan)
		authorized.POST("/clans/:id/leave", c.clan.LeaveClan)

		authorized.POST("/missions/:id/start", c.progression.StartMission)
		authorized.POST("/missions/rounds/:roundId/start", c.progression.StartRound)
		authorized.POST("/missions/rounds/:roundId/complete", c.progression.CompleteRound)
		authorized.GET("/missions/:id/progress", c.progression.GetMissionProgress)

		authorized.GET("/missions/users/missions", c.progression.ListUserMissions)
		authorized.GET("/missions/users/completed", c.progression.ListUserCompleted)
		authorized.GET("/missions/users/participated", c.progression.ListUserParticipated)
	}

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/missions", c.mission.CreateMission)
		admin.PATCH("/missions/:id", c.mission.UpdateMission)
		admin.DELETE("/missions/:id", c.mission.DeleteMission)

		admin.PATCH("/clans/:id", c.clan.UpdateClan)
		admin.DELETE("/clans/:id", c.clan.DeleteClan)
	}
}
