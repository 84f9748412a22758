package model

type QuestType string

const (
	QuestQuizType         QuestType = "QUIZ"
	QuestVisitSite        QuestType = "VISIT_SITE"
	QuestWatchVideo       QuestType = "WATCH_VIDEO"
	QuestSocialAction     QuestType = "SOCIAL_ACTION"
	QuestBlockchainAction QuestType = "BLOCKCHAIN_ACTION"
	QuestUserContent      QuestType = "USER_CONTENT"
	QuestReferrals        QuestType = "REFERRALS"
	QuestTracker          QuestType = "TRACKER"
)

// swagger:model Quest
type Quest struct {
	UUIDBase
	Type        QuestType `gorm:"size:30;not null" json:"type"`
	Description string    `gorm:"type:text" json:"description"`

	Reward  *Reward     `gorm:"foreignKey:QuestID" json:"reward,omitempty"`
	Quizzes []QuestQuiz `gorm:"foreignKey:QuestID" json:"quiz,omitempty"`
}

func (Quest) TableName() string {
	return "quests"
}

// QuestQuiz holds one question. Options is a JSON-serialized array of option
// strings; readers must parse it themselves. The stored answer never leaves
// the API surface.
type QuestQuiz struct {
	UUIDBase
	QuestID  string `gorm:"index;type:varchar(36);not null" json:"quest_id"`
	Question string `gorm:"type:text;not null" json:"question"`
	Options  string `gorm:"type:text" json:"options"`
	Answer   string `gorm:"size:500;not null" json:"-"`
}

func (QuestQuiz) TableName() string {
	return "quest_quizzes"
}

// swagger:model Reward
type Reward struct {
	UUIDBase
	QuestID string `gorm:"index;type:varchar(36);not null" json:"quest_id"`
	Amount  uint64 `gorm:"not null" json:"amount"`
	Token   string `gorm:"size:20;not null" json:"token"`
}

func (Reward) TableName() string {
	return "rewards"
}
