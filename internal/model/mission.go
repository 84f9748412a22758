package model

type MissionStatus string

const (
	MissionDraft    MissionStatus = "DRAFT"
	MissionActive   MissionStatus = "ACTIVE"
	MissionArchived MissionStatus = "ARCHIVED"
)

// swagger:model Mission
type Mission struct {
	UUIDBase
	Title       string        `gorm:"size:255;not null" json:"title"`
	Brief       string        `gorm:"size:500;not null" json:"brief"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Status      MissionStatus `gorm:"size:20;default:'ACTIVE'" json:"status"`
	ClanID      string        `gorm:"index;type:varchar(36);not null" json:"clan_id"`
	CreatedBy   string        `gorm:"index;type:varchar(36)" json:"created_by"`

	Clan    *Clan          `gorm:"foreignKey:ClanID" json:"clan,omitempty"`
	Creator *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Rounds  []MissionRound `gorm:"foreignKey:MissionID" json:"mission_rounds,omitempty"`
}

func (Mission) TableName() string {
	return "missions"
}

// MissionRound is one ordered step of a mission. A round without a quest
// auto-completes when submitted.
type MissionRound struct {
	UUIDBase
	MissionID      string  `gorm:"index;type:varchar(36);not null" json:"mission_id"`
	Title          string  `gorm:"size:255;not null" json:"title"`
	Content        string  `gorm:"type:text" json:"content"`
	WelcomeMessage string  `gorm:"size:500" json:"welcome_message"`
	Introduction   string  `gorm:"type:text" json:"introduction"`
	OrderIndex     int     `gorm:"default:0" json:"order_index"`
	QuestID        *string `gorm:"type:varchar(36)" json:"quest_id,omitempty"`

	Quest *Quest `gorm:"foreignKey:QuestID" json:"quest,omitempty"`
}

func (MissionRound) TableName() string {
	return "mission_rounds"
}
