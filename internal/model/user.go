package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Username      string   `gorm:"size:100;not null" json:"username"`
	Email         string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password      string   `gorm:"size:100;not null" json:"-"`
	Role          UserRole `gorm:"size:20;default:'user'" json:"role"`
	WalletAddress string   `gorm:"size:100" json:"wallet_address,omitempty"`
	AvatarURL     string   `gorm:"size:255" json:"avatar_url,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserClan links a user to a clan they joined. One row per membership.
type UserClan struct {
	UUIDBase
	UserID string `gorm:"index;type:varchar(36);uniqueIndex:idx_user_clan" json:"user_id"`
	ClanID string `gorm:"index;type:varchar(36);uniqueIndex:idx_user_clan" json:"clan_id"`
}

func (UserClan) TableName() string {
	return "user_clans"
}
