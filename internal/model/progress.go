package model

import "time"

type ParticipationStatus string

const (
	ParticipationStarted    ParticipationStatus = "STARTED"
	ParticipationInProgress ParticipationStatus = "IN_PROGRESS"
	ParticipationCompleted  ParticipationStatus = "COMPLETED"
)

type RoundProgressStatus string

const (
	RoundNotStarted RoundProgressStatus = "NOT_STARTED"
	RoundInProgress RoundProgressStatus = "IN_PROGRESS"
	RoundCompleted  RoundProgressStatus = "COMPLETED"
	RoundFailed     RoundProgressStatus = "FAILED"
)

// MissionParticipation is the per-user mission state. The (user, mission)
// pair is unique; there is no restart path.
type MissionParticipation struct {
	UUIDBase
	UserID      string              `gorm:"type:varchar(36);uniqueIndex:idx_user_mission;not null" json:"user_id"`
	MissionID   string              `gorm:"type:varchar(36);uniqueIndex:idx_user_mission;not null" json:"mission_id"`
	Status      ParticipationStatus `gorm:"size:20;default:'STARTED'" json:"status"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`

	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Mission       *Mission        `gorm:"foreignKey:MissionID" json:"mission,omitempty"`
	RoundProgress []RoundProgress `gorm:"foreignKey:ParticipationID" json:"round_progress,omitempty"`
}

func (MissionParticipation) TableName() string {
	return "mission_participations"
}

// RoundProgress rows are created in bulk when the mission is started, one per
// round existing on the mission at that moment. Transitions are forward-only:
// NOT_STARTED -> IN_PROGRESS -> COMPLETED | FAILED.
type RoundProgress struct {
	UUIDBase
	ParticipationID string              `gorm:"type:varchar(36);uniqueIndex:idx_participation_round;not null" json:"participation_id"`
	MissionRoundID  string              `gorm:"type:varchar(36);uniqueIndex:idx_participation_round;not null" json:"mission_round_id"`
	Status          RoundProgressStatus `gorm:"size:20;default:'NOT_STARTED'" json:"status"`
	StartedAt       *time.Time          `json:"started_at,omitempty"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`

	Round   *MissionRound `gorm:"foreignKey:MissionRoundID" json:"round,omitempty"`
	Answers []QuestAnswer `gorm:"foreignKey:RoundProgressID" json:"quest_answers,omitempty"`
}

func (RoundProgress) TableName() string {
	return "round_progresses"
}

// QuestAnswer records one submitted quiz answer. Append-only.
type QuestAnswer struct {
	UUIDBase
	RoundProgressID string `gorm:"index;type:varchar(36);not null" json:"round_progress_id"`
	QuestQuizID     string `gorm:"index;type:varchar(36);not null" json:"quest_quiz_id"`
	Answer          string `gorm:"size:500;not null" json:"answer"`
	IsCorrect       bool   `gorm:"not null" json:"is_correct"`
}

func (QuestAnswer) TableName() string {
	return "quest_answers"
}
