package service

import (
	"errors"
	"sort"
	"time"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/repository"
	"block_sensei_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressionService drives a user through a mission: start the mission,
// start each round, submit answers, derive the overall mission state.
// Stateless; every multi-step write runs in one transaction.
type ProgressionService struct {
	ParticipationRepo *repository.ParticipationRepository
	MissionRepo       *repository.MissionRepository
	DB                *gorm.DB
}

func NewProgressionService(participationRepo *repository.ParticipationRepository, missionRepo *repository.MissionRepository, db *gorm.DB) *ProgressionService {
	return &ProgressionService{
		ParticipationRepo: participationRepo,
		MissionRepo:       missionRepo,
		DB:                db,
	}
}

// StartMission creates the participation plus one NOT_STARTED progress row
// per round currently on the mission. Rounds added later never get a row.
// There is no restart path.
func (s *ProgressionService) StartMission(userID, missionID string) (*model.MissionParticipation, error) {
	exists, err := s.MissionRepo.Exists(missionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrMissionNotFound
	}

	started, err := s.ParticipationRepo.Exists(userID, missionID)
	if err != nil {
		return nil, err
	}
	if started {
		return nil, util.ErrMissionAlreadyStarted
	}

	rounds, err := s.MissionRepo.RoundsByMission(missionID)
	if err != nil {
		return nil, err
	}

	participation := &model.MissionParticipation{
		UserID:    userID,
		MissionID: missionID,
		Status:    model.ParticipationStarted,
		StartedAt: time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(participation).Error; err != nil {
			return err
		}
		for _, round := range rounds {
			progress := &model.RoundProgress{
				ParticipationID: participation.ID,
				MissionRoundID:  round.ID,
				Status:          model.RoundNotStarted,
			}
			if err := tx.Create(progress).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ParticipationRepo.FindByUserAndMissionFull(userID, missionID)
}

// StartRound moves a NOT_STARTED progress row to IN_PROGRESS and bumps the
// parent participation to IN_PROGRESS (idempotent re-set).
func (s *ProgressionService) StartRound(userID, roundID string) (*model.RoundProgress, error) {
	progress, err := s.ParticipationRepo.FindRoundProgressByUserAndRound(userID, roundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoundProgressNotFound
		}
		return nil, err
	}

	if progress.Status != model.RoundNotStarted {
		return nil, util.ErrRoundAlreadyStarted
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progress.Status = model.RoundInProgress
		progress.StartedAt = &now
		if err := tx.Save(progress).Error; err != nil {
			return err
		}
		return tx.Model(&model.MissionParticipation{}).
			Where("id = ?", progress.ParticipationID).
			Update("status", model.ParticipationInProgress).Error
	})
	if err != nil {
		return nil, err
	}

	return s.ParticipationRepo.FindRoundProgressFull(progress.ID)
}

type QuizAnswerSubmission struct {
	QuestQuizID string `json:"quest_quiz_id" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
}

type CompleteRoundRequest struct {
	MissionRoundID string                 `json:"mission_round_id"`
	QuizAnswers    []QuizAnswerSubmission `json:"quiz_answers"`
}

type CompletionResult struct {
	RoundProgress    *model.RoundProgress      `json:"round_progress"`
	QuestType        model.QuestType           `json:"quest_type"`
	CompletionStatus model.RoundProgressStatus `json:"completion_status"`
	MissionCompleted bool                      `json:"mission_completed"`
	QuestAnswers     []model.QuestAnswer       `json:"quest_answers"`
}

// CompleteRound grades the submission and moves the round to COMPLETED or
// FAILED. Quiz rounds require every submitted answer to match the stored one
// exactly; quiz questions absent from the submission are ignored. Other quest
// types, and rounds with no quest at all, complete automatically.
//
// TODO: verification for VISIT_SITE, WATCH_VIDEO, SOCIAL_ACTION,
// BLOCKCHAIN_ACTION, USER_CONTENT, REFERRALS and TRACKER quests.
func (s *ProgressionService) CompleteRound(userID string, req CompleteRoundRequest) (*CompletionResult, error) {
	progress, err := s.ParticipationRepo.FindRoundProgressByUserAndRound(userID, req.MissionRoundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoundProgressNotFound
		}
		return nil, err
	}

	if progress.Status != model.RoundInProgress {
		return nil, util.ErrRoundNotInProgress
	}

	round, err := s.MissionRepo.FindRoundWithQuest(req.MissionRoundID)
	if err != nil {
		return nil, err
	}

	questType := model.QuestType("")
	outcome := model.RoundCompleted
	var answers []model.QuestAnswer

	if round.Quest != nil {
		questType = round.Quest.Type
	}

	if questType == model.QuestQuizType {
		if len(round.Quest.Quizzes) == 0 || len(req.QuizAnswers) == 0 {
			return nil, util.ErrNoQuizAnswers
		}

		quizByID := make(map[string]model.QuestQuiz, len(round.Quest.Quizzes))
		for _, quiz := range round.Quest.Quizzes {
			quizByID[quiz.ID] = quiz
		}

		for _, submission := range req.QuizAnswers {
			quiz, ok := quizByID[submission.QuestQuizID]
			if !ok {
				return nil, util.ErrQuizNotFound
			}
			correct := submission.Answer == quiz.Answer
			if !correct {
				outcome = model.RoundFailed
			}
			answers = append(answers, model.QuestAnswer{
				RoundProgressID: progress.ID,
				QuestQuizID:     quiz.ID,
				Answer:          submission.Answer,
				IsCorrect:       correct,
			})
		}
	}

	now := time.Now()
	missionCompleted := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}

		progress.Status = outcome
		progress.CompletedAt = &now
		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		// The check iterates the progress rows that exist, so rounds added
		// to the mission after this user started never block completion.
		var rows []model.RoundProgress
		if err := tx.Where("participation_id = ?", progress.ParticipationID).Find(&rows).Error; err != nil {
			return err
		}
		allCompleted := true
		for _, row := range rows {
			if row.Status != model.RoundCompleted {
				allCompleted = false
				break
			}
		}
		if allCompleted {
			missionCompleted = true
			return tx.Model(&model.MissionParticipation{}).
				Where("id = ?", progress.ParticipationID).
				Updates(map[string]interface{}{
					"status":       model.ParticipationCompleted,
					"completed_at": now,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.ParticipationRepo.FindRoundProgressFull(progress.ID)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		RoundProgress:    full,
		QuestType:        questType,
		CompletionStatus: outcome,
		MissionCompleted: missionCompleted,
		QuestAnswers:     answers,
	}, nil
}

// GetUserMissionProgress returns the participation with the full mission
// definition and every progress row, in round order.
func (s *ProgressionService) GetUserMissionProgress(userID, missionID string) (*model.MissionParticipation, error) {
	participation, err := s.ParticipationRepo.FindByUserAndMissionFull(userID, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrParticipationNotFound
		}
		return nil, err
	}

	sort.SliceStable(participation.RoundProgress, func(i, j int) bool {
		ri, rj := participation.RoundProgress[i].Round, participation.RoundProgress[j].Round
		if ri == nil || rj == nil {
			return false
		}
		return ri.OrderIndex < rj.OrderIndex
	})

	return participation, nil
}

func (s *ProgressionService) ListUserMissions(userID string, page, limit int) ([]model.MissionParticipation, int64, error) {
	return s.ParticipationRepo.ListByUser(userID, nil, page, limit)
}

func (s *ProgressionService) ListUserCompleted(userID string, page, limit int) ([]model.MissionParticipation, int64, error) {
	return s.ParticipationRepo.ListByUser(userID, []model.ParticipationStatus{model.ParticipationCompleted}, page, limit)
}

func (s *ProgressionService) ListUserParticipated(userID string, page, limit int) ([]model.MissionParticipation, int64, error) {
	return s.ParticipationRepo.ListByUser(userID, []model.ParticipationStatus{
		model.ParticipationStarted,
		model.ParticipationInProgress,
	}, page, limit)
}

// RewardForRound exposes the reward attached to a round's quest, used by the
// controller to trigger minting after a completed mission.
func (s *ProgressionService) RewardForRound(roundID string) (*model.Reward, error) {
	round, err := s.MissionRepo.FindRoundWithQuest(roundID)
	if err != nil {
		return nil, err
	}
	if round.Quest == nil || round.Quest.Reward == nil {
		return nil, nil
	}
	return round.Quest.Reward, nil
}
