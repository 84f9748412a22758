package model

// swagger:model Clan
type Clan struct {
	UUIDBase
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:255" json:"logo_url,omitempty"`
	CreatedBy   string `gorm:"index;type:varchar(36)" json:"created_by"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Clan) TableName() string {
	return "clans"
}
