package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"block_sensei_backend/internal/config"
	"block_sensei_backend/internal/middleware"
	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/repository"
	"block_sensei_backend/internal/service"
	"block_sensei_backend/internal/util"
	"block_sensei_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The clan detail route tolerates guests: without a token it serves the
// public view, with one it adds the caller's membership.
func TestGetClanEndpointOptionalAuth(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour

	user := &model.User{Username: "member", Email: "member@example.com", Password: "x", Role: model.RoleUser}
	require.NoError(t, db.Create(user).Error)

	clanRepo := repository.NewClanRepository(db)
	clanSvc := service.NewClanService(clanRepo)
	clanCtrl := NewClanController(clanSvc)

	clan, err := clanSvc.CreateClan(user.ID, service.ClanCreateRequest{Name: "openclan"})
	require.NoError(t, err)
	require.NoError(t, clanSvc.JoinClan(user.ID, clan.ID))

	router := gin.New()
	router.GET("/api/v1/clans/:id", middleware.TryAuthMiddleware(cfg), clanCtrl.GetClan)

	get := func(token string) (int, map[string]interface{}) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/clans/"+clan.ID, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var envelope util.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		data, _ := envelope.Data.(map[string]interface{})
		return rec.Code, data
	}

	// Guest: public fields only.
	code, data := get("")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, data["member_count"])
	_, hasMembership := data["is_member"]
	assert.False(t, hasMembership)

	// Authenticated member: membership included.
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)

	code, data = get(token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["is_member"])

	// A garbage token degrades to the guest view instead of failing.
	code, data = get("not-a-jwt")
	assert.Equal(t, http.StatusOK, code)
	_, hasMembership = data["is_member"]
	assert.False(t, hasMembership)
}
