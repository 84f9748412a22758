package service

import (
	"encoding/json"
	"errors"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/repository"
	"block_sensei_backend/internal/util"

	"gorm.io/gorm"
)

const (
	RoundActionCreate = "create"
	RoundActionUpdate = "update"
	RoundActionDelete = "delete"
)

type MissionService struct {
	MissionRepo *repository.MissionRepository
	ClanRepo    *repository.ClanRepository
	DB          *gorm.DB
}

func NewMissionService(missionRepo *repository.MissionRepository, clanRepo *repository.ClanRepository, db *gorm.DB) *MissionService {
	return &MissionService{
		MissionRepo: missionRepo,
		ClanRepo:    clanRepo,
		DB:          db,
	}
}

type RewardDraft struct {
	Amount uint64 `json:"amount" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

type QuizDraft struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
	Answer   string   `json:"answer" binding:"required"`
}

type QuestDraft struct {
	Type        model.QuestType `json:"type" binding:"required"`
	Description string          `json:"description"`
	Reward      RewardDraft     `json:"reward" binding:"required"`
	Quiz        []QuizDraft     `json:"quiz"`
}

type RoundDraft struct {
	Title          string      `json:"title" binding:"required"`
	Content        string      `json:"content"`
	WelcomeMessage string      `json:"welcome_message"`
	Introduction   string      `json:"introduction"`
	Quest          *QuestDraft `json:"quest"`
}

type MissionCreateRequest struct {
	Title         string              `json:"title" binding:"required"`
	Brief         string              `json:"brief" binding:"required"`
	Description   string              `json:"description"`
	Status        model.MissionStatus `json:"status"`
	ClanID        string              `json:"clan_id" binding:"required"`
	MissionRounds []RoundDraft        `json:"mission_rounds"`
}

// CreateMission creates a mission with its rounds, quests, rewards and quiz
// questions in one transaction. Nothing is visible if any nested create fails.
func (s *MissionService) CreateMission(userID string, req MissionCreateRequest) (*model.Mission, error) {
	exists, err := s.ClanRepo.Exists(req.ClanID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrClanNotFound
	}

	status := req.Status
	if status == "" {
		status = model.MissionActive
	}

	var missionID string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		mission := &model.Mission{
			Title:       req.Title,
			Brief:       req.Brief,
			Description: req.Description,
			Status:      status,
			ClanID:      req.ClanID,
			CreatedBy:   userID,
		}
		if err := tx.Create(mission).Error; err != nil {
			return err
		}

		for idx, draft := range req.MissionRounds {
			if _, err := createRound(tx, mission.ID, idx+1, draft); err != nil {
				return err
			}
		}

		missionID = mission.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.MissionRepo.FindByIDFull(missionID)
}

// createRound builds quest, reward and quiz rows for a round draft, then the
// round itself. Quiz options are serialized to a JSON string.
func createRound(tx *gorm.DB, missionID string, orderIndex int, draft RoundDraft) (*model.MissionRound, error) {
	var questID *string
	if draft.Quest != nil {
		quest := &model.Quest{
			Type:        draft.Quest.Type,
			Description: draft.Quest.Description,
		}
		if err := tx.Create(quest).Error; err != nil {
			return nil, err
		}

		reward := &model.Reward{
			QuestID: quest.ID,
			Amount:  draft.Quest.Reward.Amount,
			Token:   draft.Quest.Reward.Token,
		}
		if err := tx.Create(reward).Error; err != nil {
			return nil, err
		}

		for _, q := range draft.Quest.Quiz {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return nil, err
			}
			quiz := &model.QuestQuiz{
				QuestID:  quest.ID,
				Question: q.Question,
				Options:  string(optionsJSON),
				Answer:   q.Answer,
			}
			if err := tx.Create(quiz).Error; err != nil {
				return nil, err
			}
		}

		questID = &quest.ID
	}

	round := &model.MissionRound{
		MissionID:      missionID,
		Title:          draft.Title,
		Content:        draft.Content,
		WelcomeMessage: draft.WelcomeMessage,
		Introduction:   draft.Introduction,
		OrderIndex:     orderIndex,
		QuestID:        questID,
	}
	if err := tx.Create(round).Error; err != nil {
		return nil, err
	}
	return round, nil
}

type RewardPatch struct {
	Amount *uint64 `json:"amount"`
	Token  *string `json:"token"`
}

type QuestPatch struct {
	Type        *model.QuestType `json:"type"`
	Description *string          `json:"description"`
	Reward      *RewardPatch     `json:"reward"`
	Quiz        []QuizDraft      `json:"quiz"`
}

// RoundPatch carries an explicit action discriminator. "create" uses the
// draft fields, "update" and "delete" address an existing round by id.
type RoundPatch struct {
	Action         string      `json:"_action" binding:"required"`
	ID             string      `json:"id"`
	Title          *string     `json:"title"`
	Content        *string     `json:"content"`
	WelcomeMessage *string     `json:"welcome_message"`
	Introduction   *string     `json:"introduction"`
	Quest          *QuestPatch `json:"quest"`
}

type MissionUpdateRequest struct {
	Title         *string              `json:"title"`
	Brief         *string              `json:"brief"`
	Description   *string              `json:"description"`
	Status        *model.MissionStatus `json:"status"`
	ClanID        *string              `json:"clan_id"`
	MissionRounds []RoundPatch         `json:"mission_rounds"`
}

func validateRoundPatches(patches []RoundPatch) error {
	for _, p := range patches {
		switch p.Action {
		case RoundActionCreate:
			if p.Title == nil || *p.Title == "" {
				return errors.New("round title is required for create action")
			}
		case RoundActionUpdate, RoundActionDelete:
			if p.ID == "" {
				return errors.New("round id is required for update and delete actions")
			}
		default:
			return util.ErrInvalidRoundAction
		}
	}
	return nil
}

// UpdateMission applies scalar changes and the per-round create/update/delete
// actions in one transaction. All patches are validated before any write.
func (s *MissionService) UpdateMission(id string, req MissionUpdateRequest) (*model.Mission, error) {
	mission, err := s.MissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMissionNotFound
		}
		return nil, err
	}

	if err := validateRoundPatches(req.MissionRounds); err != nil {
		return nil, err
	}

	if req.ClanID != nil && *req.ClanID != mission.ClanID {
		exists, err := s.ClanRepo.Exists(*req.ClanID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.ErrClanNotFound
		}
	}

	nextOrder, err := s.MissionRepo.MaxRoundOrder(mission.ID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if req.Title != nil {
			mission.Title = *req.Title
		}
		if req.Brief != nil {
			mission.Brief = *req.Brief
		}
		if req.Description != nil {
			mission.Description = *req.Description
		}
		if req.Status != nil {
			mission.Status = *req.Status
		}
		if req.ClanID != nil {
			mission.ClanID = *req.ClanID
		}
		if err := tx.Save(mission).Error; err != nil {
			return err
		}

		for _, patch := range req.MissionRounds {
			switch patch.Action {
			case RoundActionCreate:
				nextOrder++
				draft := RoundDraft{
					Title: *patch.Title,
				}
				if patch.Content != nil {
					draft.Content = *patch.Content
				}
				if patch.WelcomeMessage != nil {
					draft.WelcomeMessage = *patch.WelcomeMessage
				}
				if patch.Introduction != nil {
					draft.Introduction = *patch.Introduction
				}
				if patch.Quest != nil {
					questDraft, err := questDraftFromPatch(patch.Quest)
					if err != nil {
						return err
					}
					draft.Quest = questDraft
				}
				if _, err := createRound(tx, mission.ID, nextOrder, draft); err != nil {
					return err
				}

			case RoundActionUpdate:
				if err := updateRound(tx, mission.ID, patch); err != nil {
					return err
				}

			case RoundActionDelete:
				if err := deleteRound(tx, mission.ID, patch.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.MissionRepo.FindByIDFull(mission.ID)
}

func questDraftFromPatch(patch *QuestPatch) (*QuestDraft, error) {
	if patch.Type == nil {
		return nil, errors.New("quest type is required when creating a round with a quest")
	}
	if patch.Reward == nil || patch.Reward.Amount == nil || patch.Reward.Token == nil {
		return nil, errors.New("quest reward is required when creating a round with a quest")
	}
	draft := &QuestDraft{
		Type: *patch.Type,
		Reward: RewardDraft{
			Amount: *patch.Reward.Amount,
			Token:  *patch.Reward.Token,
		},
		Quiz: patch.Quiz,
	}
	if patch.Description != nil {
		draft.Description = *patch.Description
	}
	return draft, nil
}

func findMissionRound(tx *gorm.DB, missionID, roundID string) (*model.MissionRound, error) {
	var round model.MissionRound
	err := tx.Where("id = ? AND mission_id = ?", roundID, missionID).First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

// updateRound mutates round scalars in place. A nested quest patch requires
// the round to already have a quest; supplied quiz data replaces all quiz
// rows rather than diffing them.
func updateRound(tx *gorm.DB, missionID string, patch RoundPatch) error {
	round, err := findMissionRound(tx, missionID, patch.ID)
	if err != nil {
		return err
	}

	if patch.Title != nil {
		round.Title = *patch.Title
	}
	if patch.Content != nil {
		round.Content = *patch.Content
	}
	if patch.WelcomeMessage != nil {
		round.WelcomeMessage = *patch.WelcomeMessage
	}
	if patch.Introduction != nil {
		round.Introduction = *patch.Introduction
	}
	if err := tx.Save(round).Error; err != nil {
		return err
	}

	if patch.Quest == nil {
		return nil
	}
	if round.QuestID == nil {
		return util.ErrQuestNotFound
	}

	var quest model.Quest
	if err := tx.First(&quest, "id = ?", *round.QuestID).Error; err != nil {
		return err
	}
	if patch.Quest.Type != nil {
		quest.Type = *patch.Quest.Type
	}
	if patch.Quest.Description != nil {
		quest.Description = *patch.Quest.Description
	}
	if err := tx.Save(&quest).Error; err != nil {
		return err
	}

	if patch.Quest.Reward != nil {
		var reward model.Reward
		if err := tx.Where("quest_id = ?", quest.ID).First(&reward).Error; err != nil {
			return err
		}
		if patch.Quest.Reward.Amount != nil {
			reward.Amount = *patch.Quest.Reward.Amount
		}
		if patch.Quest.Reward.Token != nil {
			reward.Token = *patch.Quest.Reward.Token
		}
		if err := tx.Save(&reward).Error; err != nil {
			return err
		}
	}

	if len(patch.Quest.Quiz) > 0 {
		if err := tx.Where("quest_id = ?", quest.ID).Delete(&model.QuestQuiz{}).Error; err != nil {
			return err
		}
		for _, q := range patch.Quest.Quiz {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			quiz := &model.QuestQuiz{
				QuestID:  quest.ID,
				Question: q.Question,
				Options:  string(optionsJSON),
				Answer:   q.Answer,
			}
			if err := tx.Create(quiz).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteRound cascades quiz rows, quest and reward before the round itself.
func deleteRound(tx *gorm.DB, missionID, roundID string) error {
	round, err := findMissionRound(tx, missionID, roundID)
	if err != nil {
		return err
	}

	if round.QuestID != nil {
		if err := tx.Where("quest_id = ?", *round.QuestID).Delete(&model.QuestQuiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quest_id = ?", *round.QuestID).Delete(&model.Reward{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Quest{}, "id = ?", *round.QuestID).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&model.MissionRound{}, "id = ?", round.ID).Error
}

// DeleteMission removes the mission and everything hanging off it in one
// transaction.
func (s *MissionService) DeleteMission(id string) error {
	exists, err := s.MissionRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrMissionNotFound
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var rounds []model.MissionRound
		if err := tx.Where("mission_id = ?", id).Find(&rounds).Error; err != nil {
			return err
		}
		for _, round := range rounds {
			if err := deleteRound(tx, id, round.ID); err != nil {
				return err
			}
		}
		return tx.Delete(&model.Mission{}, "id = ?", id).Error
	})
}

func (s *MissionService) GetMission(id string) (*model.Mission, error) {
	mission, err := s.MissionRepo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMissionNotFound
		}
		return nil, err
	}
	return mission, nil
}

func (s *MissionService) ListMissions(page, limit int) ([]model.Mission, int64, error) {
	return s.MissionRepo.List(page, limit)
}

func (s *MissionService) ListMissionsByClan(clanID string, page, limit int) ([]model.Mission, int64, error) {
	exists, err := s.ClanRepo.Exists(clanID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, util.ErrClanNotFound
	}
	return s.MissionRepo.ListByClan(clanID, page, limit)
}
