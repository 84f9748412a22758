package service

import (
	"testing"
	"time"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissionLeaderboardRanking(t *testing.T) {
	env := newTestEnv(t)
	author := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, author.ID)
	mission := seedQuizMission(t, env, author.ID, clan.ID)

	p1 := seedUser(t, env.db, "p1")
	p2 := seedUser(t, env.db, "p2")
	p3 := seedUser(t, env.db, "p3")

	base := time.Now().Add(-time.Hour)
	for i, player := range []*model.User{p1, p2, p3} {
		_, err := env.progression.StartMission(player.ID, mission.ID)
		require.NoError(t, err)
		completeMission(t, env, player.ID, mission)
		setCompletedAt(t, env, player.ID, mission.ID, base.Add(time.Duration(i)*time.Minute))
	}

	// p3 finished long before the others in wall-clock terms.
	setCompletedAt(t, env, p3.ID, mission.ID, base.Add(-time.Hour))

	// Break p1's perfect score: one of two answers was wrong.
	flipOneAnswer(t, env, p1.ID, mission.ID)

	board, err := env.leaderboard.GetMissionLeaderboard(mission.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 3)

	assert.Equal(t, []string{"p3", "p1", "p2"}, []string{
		board.Leaderboard[0].Username,
		board.Leaderboard[1].Username,
		board.Leaderboard[2].Username,
	}, "earliest completion wins regardless of start order")

	for i, entry := range board.Leaderboard {
		assert.Equal(t, i+1, entry.Rank)
	}

	assert.InDelta(t, 100.0, board.Leaderboard[0].Score, 0.001)
	assert.InDelta(t, 50.0, board.Leaderboard[1].Score, 0.001)
	assert.EqualValues(t, 2, board.Leaderboard[1].TotalQuestions)
	assert.EqualValues(t, 1, board.Leaderboard[1].CorrectAnswers)

	assert.EqualValues(t, 3, board.Meta.Total)
	assert.Equal(t, 1, board.Meta.TotalPages)
}

func TestMissionLeaderboardPagination(t *testing.T) {
	env := newTestEnv(t)
	author := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, author.ID)
	mission := seedQuizMission(t, env, author.ID, clan.ID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		player := seedUser(t, env.db, "runner"+string(rune('a'+i)))
		_, err := env.progression.StartMission(player.ID, mission.ID)
		require.NoError(t, err)
		completeMission(t, env, player.ID, mission)
		setCompletedAt(t, env, player.ID, mission.ID, base.Add(time.Duration(i)*time.Minute))
	}

	board, err := env.leaderboard.GetMissionLeaderboard(mission.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, 3, board.Leaderboard[0].Rank, "rank carries across pages")
	assert.Equal(t, 2, board.Meta.TotalPages)
}

func TestMissionLeaderboardExcludesUnfinished(t *testing.T) {
	env := newTestEnv(t)
	author := seedUser(t, env.db, "author")
	clan := seedClan(t, env.db, author.ID)
	mission := seedQuizMission(t, env, author.ID, clan.ID)

	straggler := seedUser(t, env.db, "straggler")
	_, err := env.progression.StartMission(straggler.ID, mission.ID)
	require.NoError(t, err)

	board, err := env.leaderboard.GetMissionLeaderboard(mission.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, board.Leaderboard)
	assert.EqualValues(t, 0, board.Meta.Total)

	_, err = env.leaderboard.GetMissionLeaderboard("missing", 1, 10)
	assert.ErrorIs(t, err, util.ErrMissionNotFound)
}

func setCompletedAt(t *testing.T, env *testEnv, userID, missionID string, at time.Time) {
	t.Helper()
	require.NoError(t, env.db.Model(&model.MissionParticipation{}).
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		Update("completed_at", at).Error)
}

// flipOneAnswer marks a single stored quiz answer of the user's participation
// as wrong, without touching round or participation state.
func flipOneAnswer(t *testing.T, env *testEnv, userID, missionID string) {
	t.Helper()

	var participation model.MissionParticipation
	require.NoError(t, env.db.
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		First(&participation).Error)

	var answer model.QuestAnswer
	require.NoError(t, env.db.
		Joins("JOIN round_progresses ON round_progresses.id = quest_answers.round_progress_id").
		Where("round_progresses.participation_id = ?", participation.ID).
		First(&answer).Error)

	require.NoError(t, env.db.Model(&model.QuestAnswer{}).
		Where("id = ?", answer.ID).
		Update("is_correct", false).Error)
}
