package repository

import (
	"block_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type ParticipationRepository struct {
	DB *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) *ParticipationRepository {
	return &ParticipationRepository{DB: db}
}

// FindByUserAndMissionFull loads the participation with the full mission
// definition and every progress row's round, quizzes and submitted answers.
func (r *ParticipationRepository) FindByUserAndMissionFull(userID, missionID string) (*model.MissionParticipation, error) {
	var p model.MissionParticipation
	err := r.DB.
		Preload("Mission").
		Preload("Mission.Clan").
		Preload("RoundProgress", func(db *gorm.DB) *gorm.DB {
			return db.Order("round_progresses.created_at asc")
		}).
		Preload("RoundProgress.Round").
		Preload("RoundProgress.Round.Quest").
		Preload("RoundProgress.Round.Quest.Reward").
		Preload("RoundProgress.Round.Quest.Quizzes").
		Preload("RoundProgress.Answers").
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		First(&p).Error
	return &p, err
}

func (r *ParticipationRepository) Exists(userID, missionID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.MissionParticipation{}).
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		Count(&count).Error
	return count > 0, err
}

// FindRoundProgressByUserAndRound resolves the progress row for a user on a
// round through the owning participation.
func (r *ParticipationRepository) FindRoundProgressByUserAndRound(userID, roundID string) (*model.RoundProgress, error) {
	var rp model.RoundProgress
	err := r.DB.
		Joins("JOIN mission_participations ON mission_participations.id = round_progresses.participation_id").
		Where("mission_participations.user_id = ? AND round_progresses.mission_round_id = ?", userID, roundID).
		First(&rp).Error
	return &rp, err
}

// FindRoundProgressFull loads a progress row with its round, quest, reward
// and quiz questions.
func (r *ParticipationRepository) FindRoundProgressFull(id string) (*model.RoundProgress, error) {
	var rp model.RoundProgress
	err := r.DB.
		Preload("Round").
		Preload("Round.Quest").
		Preload("Round.Quest.Reward").
		Preload("Round.Quest.Quizzes").
		First(&rp, "id = ?", id).Error
	return &rp, err
}

// ListByUser returns a user's participations, optionally filtered by status,
// newest first.
func (r *ParticipationRepository) ListByUser(userID string, statuses []model.ParticipationStatus, page, limit int) ([]model.MissionParticipation, int64, error) {
	query := r.DB.Model(&model.MissionParticipation{}).Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.MissionParticipation
	offset := (page - 1) * limit
	err := query.
		Preload("Mission").
		Preload("Mission.Clan").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// ListCompletedByMission returns COMPLETED participations ordered by finish
// time ascending, the earliest finisher first.
func (r *ParticipationRepository) ListCompletedByMission(missionID string, page, limit int) ([]model.MissionParticipation, int64, error) {
	query := r.DB.Model(&model.MissionParticipation{}).
		Where("mission_id = ? AND status = ?", missionID, model.ParticipationCompleted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.MissionParticipation
	offset := (page - 1) * limit
	err := query.
		Preload("User").
		Order("completed_at asc").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// AnswerCounts sums a participation's submitted quiz answers and how many of
// them were correct, across all of its round progress rows.
func (r *ParticipationRepository) AnswerCounts(participationID string) (total int64, correct int64, err error) {
	err = r.DB.Model(&model.QuestAnswer{}).
		Joins("JOIN round_progresses ON round_progresses.id = quest_answers.round_progress_id").
		Where("round_progresses.participation_id = ?", participationID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&model.QuestAnswer{}).
		Joins("JOIN round_progresses ON round_progresses.id = quest_answers.round_progress_id").
		Where("round_progresses.participation_id = ? AND quest_answers.is_correct = ?", participationID, true).
		Count(&correct).Error
	return total, correct, err
}
