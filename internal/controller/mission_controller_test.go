package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/repository"
	"block_sensei_backend/internal/service"
	"block_sensei_backend/internal/util"
	"block_sensei_backend/pkg/database"
	"block_sensei_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	user   *model.User
	clan   *model.Clan
}

// asUser stands in for the JWT middleware and injects the claims the
// controllers read from the context.
func asUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: user.ID, Role: user.Role, Email: user.Email})
		c.Next()
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := &model.User{Username: "admin", Email: "admin@example.com", Password: "x", Role: "admin"}
	require.NoError(t, db.Create(user).Error)
	clan := &model.Clan{Name: "testers", CreatedBy: user.ID}
	require.NoError(t, db.Create(clan).Error)

	missionRepo := repository.NewMissionRepository(db)
	clanRepo := repository.NewClanRepository(db)
	participationRepo := repository.NewParticipationRepository(db)

	missionSvc := service.NewMissionService(missionRepo, clanRepo, db)
	progressionSvc := service.NewProgressionService(participationRepo, missionRepo, db)
	leaderboardSvc := service.NewLeaderboardService(participationRepo, missionRepo, nil)

	missionCtrl := NewMissionController(missionSvc, leaderboardSvc)
	progressionCtrl := NewProgressionController(progressionSvc, nil, nil)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/missions", missionCtrl.ListMissions)
	api.GET("/missions/:id", missionCtrl.GetMission)
	api.GET("/missions/:id/leaderboard", missionCtrl.GetMissionLeaderboard)

	authed := api.Group("", asUser(user))
	authed.POST("/missions", missionCtrl.CreateMission)
	authed.PATCH("/missions/:id", missionCtrl.UpdateMission)
	authed.DELETE("/missions/:id", missionCtrl.DeleteMission)
	authed.POST("/missions/:id/start", progressionCtrl.StartMission)

	return &fixture{db: db, router: router, user: user, clan: clan}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var envelope util.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func createMissionPayload(clanID string) map[string]interface{} {
	return map[string]interface{}{
		"title":   "HTTP mission",
		"brief":   "created over the wire",
		"clan_id": clanID,
		"mission_rounds": []map[string]interface{}{
			{
				"title": "only round",
				"quest": map[string]interface{}{
					"type":   "QUIZ",
					"reward": map[string]interface{}{"amount": 10, "token": "SENSEI"},
					"quiz": []map[string]interface{}{
						{"question": "q", "options": []string{"yes", "no"}, "answer": "yes"},
					},
				},
			},
		},
	}
}

func TestCreateMissionEndpoint(t *testing.T) {
	f := newFixture(t)

	rec, envelope := f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload(f.clan.ID))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusCreated, envelope.Code)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "HTTP mission", data["title"])
	rounds, ok := data["mission_rounds"].([]interface{})
	require.True(t, ok)
	require.Len(t, rounds, 1)

	// The stored quiz answer never leaves the API.
	raw := rec.Body.String()
	assert.NotContains(t, raw, `"answer"`)
}

func TestCreateMissionEndpointValidation(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/api/v1/missions", map[string]interface{}{"title": "no brief"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload("no-such-clan"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMissionEndpoint(t *testing.T) {
	f := newFixture(t)

	_, created := f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload(f.clan.ID))
	missionID := created.Data.(map[string]interface{})["id"].(string)

	rec, envelope := f.do(t, http.MethodGet, "/api/v1/missions/"+missionID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, missionID, envelope.Data.(map[string]interface{})["id"])

	rec, _ = f.do(t, http.MethodGet, "/api/v1/missions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMissionsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload(f.clan.ID))

	rec, envelope := f.do(t, http.MethodGet, "/api/v1/missions?page=1&limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := envelope.Data.(map[string]interface{})
	meta := data["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["total"])
	assert.EqualValues(t, 5, meta["limit"])
	assert.EqualValues(t, 1, meta["totalPages"])
}

func TestDeleteMissionEndpoint(t *testing.T) {
	f := newFixture(t)

	_, created := f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload(f.clan.ID))
	missionID := created.Data.(map[string]interface{})["id"].(string)

	rec, _ := f.do(t, http.MethodDelete, "/api/v1/missions/"+missionID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/missions/"+missionID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartMissionEndpoint(t *testing.T) {
	f := newFixture(t)

	_, created := f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload(f.clan.ID))
	missionID := created.Data.(map[string]interface{})["id"].(string)

	rec, envelope := f.do(t, http.MethodPost, "/api/v1/missions/"+missionID+"/start", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, string(model.ParticipationStarted), envelope.Data.(map[string]interface{})["status"])

	// Starting twice is rejected.
	rec, _ = f.do(t, http.MethodPost, "/api/v1/missions/"+missionID+"/start", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardEndpointEmpty(t *testing.T) {
	f := newFixture(t)

	_, created := f.do(t, http.MethodPost, "/api/v1/missions", createMissionPayload(f.clan.ID))
	missionID := created.Data.(map[string]interface{})["id"].(string)

	rec, envelope := f.do(t, http.MethodGet, "/api/v1/missions/"+missionID+"/leaderboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := envelope.Data.(map[string]interface{})
	assert.Empty(t, data["leaderboard"])
}
