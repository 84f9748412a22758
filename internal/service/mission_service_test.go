package service

import (
	"errors"
	"testing"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateMissionNested(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)

	mission := seedQuizMission(t, env, user.ID, clan.ID)

	assert.Equal(t, model.MissionActive, mission.Status, "status defaults to ACTIVE")
	assert.Equal(t, clan.ID, mission.ClanID)
	require.Len(t, mission.Rounds, 2)

	r1, r2 := mission.Rounds[0], mission.Rounds[1]
	assert.Equal(t, 1, r1.OrderIndex)
	assert.Equal(t, 2, r2.OrderIndex)

	require.NotNil(t, r1.Quest)
	assert.Equal(t, model.QuestQuizType, r1.Quest.Type)
	require.NotNil(t, r1.Quest.Reward)
	assert.Equal(t, uint64(100), r1.Quest.Reward.Amount)
	assert.Equal(t, "SENSEI", r1.Quest.Reward.Token)
	require.Len(t, r1.Quest.Quizzes, 2)
	assert.JSONEq(t, `["A","B"]`, r1.Quest.Quizzes[0].Options)

	assert.Nil(t, r2.Quest)
	assert.Nil(t, r2.QuestID)
}

func TestCreateMissionUnknownClan(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")

	_, err := env.mission.CreateMission(user.ID, MissionCreateRequest{
		Title:  "orphan",
		Brief:  "no clan",
		ClanID: "missing",
	})
	assert.ErrorIs(t, err, util.ErrClanNotFound)
}

// A failure while inserting nested rows must leave no trace of the mission:
// not the mission itself, nor any round, quest, reward or quiz created before
// the failing insert.
func TestCreateMissionRollsBackOnNestedFailure(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)

	// Reject the second quiz insert, after the mission, round one's quest,
	// reward and first quiz have already been written inside the transaction.
	require.NoError(t, env.db.Callback().Create().Before("gorm:create").
		Register("reject_marked_quiz", func(tx *gorm.DB) {
			if quiz, ok := tx.Statement.Dest.(*model.QuestQuiz); ok && quiz.Question == "q2" {
				tx.AddError(errors.New("quiz insert rejected"))
			}
		}))

	_, err := env.mission.CreateMission(user.ID, MissionCreateRequest{
		Title:  "Doomed mission",
		Brief:  "never lands",
		ClanID: clan.ID,
		MissionRounds: []RoundDraft{
			{
				Title: "Round 1",
				Quest: &QuestDraft{
					Type:   model.QuestQuizType,
					Reward: RewardDraft{Amount: 100, Token: "SENSEI"},
					Quiz: []QuizDraft{
						{Question: "q1", Options: []string{"A", "B"}, Answer: "A"},
						{Question: "q2", Options: []string{"A", "B"}, Answer: "B"},
					},
				},
			},
		},
	})
	require.Error(t, err)

	for _, entity := range []interface{}{
		&model.Mission{},
		&model.MissionRound{},
		&model.Quest{},
		&model.Reward{},
		&model.QuestQuiz{},
	} {
		var count int64
		require.NoError(t, env.db.Model(entity).Unscoped().Count(&count).Error)
		assert.Zero(t, count, "%T rows must not survive the rollback", entity)
	}
}

func TestUpdateMissionScalars(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	title := "Renamed"
	status := model.MissionArchived
	updated, err := env.mission.UpdateMission(mission.ID, MissionUpdateRequest{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, model.MissionArchived, updated.Status)
	assert.Equal(t, mission.Brief, updated.Brief, "untouched fields survive")
}

func TestUpdateMissionRoundActions(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	newTitle := "Round 3"
	renamed := "Round 1 renamed"
	updated, err := env.mission.UpdateMission(mission.ID, MissionUpdateRequest{
		MissionRounds: []RoundPatch{
			{Action: RoundActionUpdate, ID: mission.Rounds[0].ID, Title: &renamed},
			{Action: RoundActionDelete, ID: mission.Rounds[1].ID},
			{Action: RoundActionCreate, Title: &newTitle},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Rounds, 2)

	assert.Equal(t, "Round 1 renamed", updated.Rounds[0].Title)
	assert.Equal(t, 1, updated.Rounds[0].OrderIndex)
	assert.Equal(t, "Round 3", updated.Rounds[1].Title)
	assert.Equal(t, 3, updated.Rounds[1].OrderIndex, "new rounds get the next order slot, deletes never renumber")
}

func TestUpdateMissionDeleteRoundCascades(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	questID := *mission.Rounds[0].QuestID
	_, err := env.mission.UpdateMission(mission.ID, MissionUpdateRequest{
		MissionRounds: []RoundPatch{
			{Action: RoundActionDelete, ID: mission.Rounds[0].ID},
		},
	})
	require.NoError(t, err)

	var quizCount, rewardCount int64
	require.NoError(t, env.db.Model(&model.QuestQuiz{}).Where("quest_id = ?", questID).Count(&quizCount).Error)
	require.NoError(t, env.db.Model(&model.Reward{}).Where("quest_id = ?", questID).Count(&rewardCount).Error)
	assert.Zero(t, quizCount)
	assert.Zero(t, rewardCount)
}

// Patching a quest onto a round that never had one is an addressing error,
// not a silent no-op.
func TestUpdateMissionQuestPatchOnQuestlessRound(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	desc := "late quest"
	_, err := env.mission.UpdateMission(mission.ID, MissionUpdateRequest{
		MissionRounds: []RoundPatch{
			{
				Action: RoundActionUpdate,
				ID:     mission.Rounds[1].ID, // round two has no quest
				Quest:  &QuestPatch{Description: &desc},
			},
		},
	})
	assert.ErrorIs(t, err, util.ErrQuestNotFound)
}

func TestUpdateMissionInvalidAction(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	_, err := env.mission.UpdateMission(mission.ID, MissionUpdateRequest{
		MissionRounds: []RoundPatch{{Action: "replace", ID: mission.Rounds[0].ID}},
	})
	assert.ErrorIs(t, err, util.ErrInvalidRoundAction)
}

func TestUpdateMissionRollsBackOnRoundFailure(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	title := "should not stick"
	_, err := env.mission.UpdateMission(mission.ID, MissionUpdateRequest{
		Title: &title,
		MissionRounds: []RoundPatch{
			{Action: RoundActionDelete, ID: "no-such-round"},
		},
	})
	assert.ErrorIs(t, err, util.ErrRoundNotFound)

	reread, err := env.mission.GetMission(mission.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro to Sui", reread.Title, "scalar change rolled back with the failed round action")
}

func TestDeleteMission(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, user.ID)
	mission := seedQuizMission(t, env, user.ID, clan.ID)

	require.NoError(t, env.mission.DeleteMission(mission.ID))

	_, err := env.mission.GetMission(mission.ID)
	assert.ErrorIs(t, err, util.ErrMissionNotFound)

	var roundCount int64
	require.NoError(t, env.db.Model(&model.MissionRound{}).Where("mission_id = ?", mission.ID).Count(&roundCount).Error)
	assert.Zero(t, roundCount)
}

func TestListMissionsByClan(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env.db, "author")
	clanA := seedClan(t, env.db, user.ID)
	clanB := seedClan(t, env.db, user.ID)
	seedQuizMission(t, env, user.ID, clanA.ID)
	seedQuizMission(t, env, user.ID, clanB.ID)

	missions, total, err := env.mission.ListMissionsByClan(clanA.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, missions, 1)
	assert.Equal(t, clanA.ID, missions[0].ClanID)

	_, _, err = env.mission.ListMissionsByClan("missing", 1, 10)
	assert.ErrorIs(t, err, util.ErrClanNotFound)
}
