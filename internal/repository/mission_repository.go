package repository

import (
	"block_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type MissionRepository struct {
	DB *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{DB: db}
}

func (r *MissionRepository) FindByID(id string) (*model.Mission, error) {
	var mission model.Mission
	err := r.DB.First(&mission, "id = ?", id).Error
	return &mission, err
}

// FindByIDFull loads a mission with clan, creator and every round's quest,
// reward and quiz questions, rounds in authoring order.
func (r *MissionRepository) FindByIDFull(id string) (*model.Mission, error) {
	var mission model.Mission
	err := r.DB.
		Preload("Clan").
		Preload("Creator").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("mission_rounds.order_index asc")
		}).
		Preload("Rounds.Quest").
		Preload("Rounds.Quest.Reward").
		Preload("Rounds.Quest.Quizzes").
		First(&mission, "id = ?", id).Error
	return &mission, err
}

func (r *MissionRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Mission{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *MissionRepository) List(page, limit int) ([]model.Mission, int64, error) {
	return r.list(r.DB.Model(&model.Mission{}), page, limit)
}

func (r *MissionRepository) ListByClan(clanID string, page, limit int) ([]model.Mission, int64, error) {
	return r.list(r.DB.Model(&model.Mission{}).Where("clan_id = ?", clanID), page, limit)
}

func (r *MissionRepository) list(query *gorm.DB, page, limit int) ([]model.Mission, int64, error) {
	var missions []model.Mission
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.
		Preload("Clan").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("mission_rounds.order_index asc")
		}).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&missions).Error
	return missions, total, err
}

// FindRoundWithQuest loads a round with its quest, reward and quizzes.
func (r *MissionRepository) FindRoundWithQuest(id string) (*model.MissionRound, error) {
	var round model.MissionRound
	err := r.DB.
		Preload("Quest").
		Preload("Quest.Reward").
		Preload("Quest.Quizzes").
		First(&round, "id = ?", id).Error
	return &round, err
}

func (r *MissionRepository) RoundsByMission(missionID string) ([]model.MissionRound, error) {
	var rounds []model.MissionRound
	err := r.DB.Where("mission_id = ?", missionID).Order("order_index asc").Find(&rounds).Error
	return rounds, err
}

func (r *MissionRepository) MaxRoundOrder(missionID string) (int, error) {
	var max *int
	err := r.DB.Model(&model.MissionRound{}).
		Where("mission_id = ?", missionID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}
