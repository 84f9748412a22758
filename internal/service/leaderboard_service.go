package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"block_sensei_backend/internal/repository"
	"block_sensei_backend/internal/util"
	"block_sensei_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheTTL = 30 * time.Second

// LeaderboardService ranks completed participations per mission. Results are
// cached in redis briefly; a nil client disables the cache.
type LeaderboardService struct {
	ParticipationRepo *repository.ParticipationRepository
	MissionRepo       *repository.MissionRepository
	Redis             *redis.Client
}

func NewLeaderboardService(participationRepo *repository.ParticipationRepository, missionRepo *repository.MissionRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		ParticipationRepo: participationRepo,
		MissionRepo:       missionRepo,
		Redis:             rdb,
	}
}

type LeaderboardEntry struct {
	Rank           int        `json:"rank"`
	UserID         string     `json:"user_id"`
	Username       string     `json:"username"`
	CompletedAt    *time.Time `json:"completed_at"`
	TotalQuestions int64      `json:"total_questions"`
	CorrectAnswers int64      `json:"correct_answers"`
	Score          float64    `json:"score"`
}

type LeaderboardPage struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Meta        util.PageMeta      `json:"meta"`
}

// GetMissionLeaderboard orders finishers by completion time ascending. Rank
// is position-based: page offset + index + 1. Score is the percentage of
// correct answers across every round of the participation, 0 when the user
// answered nothing.
func (s *LeaderboardService) GetMissionLeaderboard(missionID string, page, limit int) (*LeaderboardPage, error) {
	exists, err := s.MissionRepo.Exists(missionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrMissionNotFound
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d:%d", missionID, page, limit)
	if cached := s.fromCache(cacheKey); cached != nil {
		return cached, nil
	}

	participations, total, err := s.ParticipationRepo.ListCompletedByMission(missionID, page, limit)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	entries := make([]LeaderboardEntry, 0, len(participations))
	for i, p := range participations {
		totalQuestions, correct, err := s.ParticipationRepo.AnswerCounts(p.ID)
		if err != nil {
			return nil, err
		}

		score := 0.0
		if totalQuestions > 0 {
			score = float64(correct) / float64(totalQuestions) * 100
		}

		entry := LeaderboardEntry{
			Rank:           offset + i + 1,
			UserID:         p.UserID,
			CompletedAt:    p.CompletedAt,
			TotalQuestions: totalQuestions,
			CorrectAnswers: correct,
			Score:          score,
		}
		if p.User != nil {
			entry.Username = p.User.Username
		}
		entries = append(entries, entry)
	}

	result := &LeaderboardPage{
		Leaderboard: entries,
		Meta:        util.NewPageMeta(total, page, limit),
	}
	s.toCache(cacheKey, result)
	return result, nil
}

func (s *LeaderboardService) fromCache(key string) *LeaderboardPage {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil
	}
	var page LeaderboardPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil
	}
	return &page
}

func (s *LeaderboardService) toCache(key string, page *LeaderboardPage) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), key, data, leaderboardCacheTTL).Err(); err != nil {
		logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
	}
}
