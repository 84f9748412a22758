package service

import (
	"fmt"
	"testing"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/repository"
	"block_sensei_backend/pkg/database"
	"block_sensei_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens a per-test in-memory database. The shared cache keeps the
// schema alive across the connections gorm pools.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db          *gorm.DB
	mission     *MissionService
	progression *ProgressionService
	leaderboard *LeaderboardService
	clanSvc     *ClanService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	missionRepo := repository.NewMissionRepository(db)
	clanRepo := repository.NewClanRepository(db)
	participationRepo := repository.NewParticipationRepository(db)

	return &testEnv{
		db:          db,
		mission:     NewMissionService(missionRepo, clanRepo, db),
		progression: NewProgressionService(participationRepo, missionRepo, db),
		leaderboard: NewLeaderboardService(participationRepo, missionRepo, nil),
		clanSvc:     NewClanService(clanRepo),
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:      username,
		Email:         username + "@example.com",
		Password:      "not-a-real-hash",
		Role:          "user",
		WalletAddress: "0x" + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClan(t *testing.T, db *gorm.DB, creatorID string) *model.Clan {
	t.Helper()

	clan := &model.Clan{
		Name:      "clan-" + model.GenerateUUID()[:8],
		CreatedBy: creatorID,
	}
	require.NoError(t, db.Create(clan).Error)
	return clan
}

// seedQuizMission creates a two-round mission: round one carries a quiz quest
// with two questions answered "A" and "B", round two has no quest.
func seedQuizMission(t *testing.T, env *testEnv, creatorID, clanID string) *model.Mission {
	t.Helper()

	mission, err := env.mission.CreateMission(creatorID, MissionCreateRequest{
		Title:  "Intro to Sui",
		Brief:  "Learn the basics",
		ClanID: clanID,
		MissionRounds: []RoundDraft{
			{
				Title:          "Round 1",
				WelcomeMessage: "welcome",
				Quest: &QuestDraft{
					Type:        model.QuestQuizType,
					Description: "warmup quiz",
					Reward:      RewardDraft{Amount: 100, Token: "SENSEI"},
					Quiz: []QuizDraft{
						{Question: "q1", Options: []string{"A", "B"}, Answer: "A"},
						{Question: "q2", Options: []string{"A", "B"}, Answer: "B"},
					},
				},
			},
			{
				Title: "Round 2",
			},
		},
	})
	require.NoError(t, err)
	return mission
}
