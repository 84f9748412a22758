package repository

import (
	"block_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type ClanRepository struct {
	DB *gorm.DB
}

func NewClanRepository(db *gorm.DB) *ClanRepository {
	return &ClanRepository{DB: db}
}

func (r *ClanRepository) Create(clan *model.Clan) error {
	return r.DB.Create(clan).Error
}

func (r *ClanRepository) FindByID(id string) (*model.Clan, error) {
	var clan model.Clan
	err := r.DB.Preload("Creator").First(&clan, "id = ?", id).Error
	return &clan, err
}

func (r *ClanRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Clan{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ClanRepository) NameExists(name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Clan{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *ClanRepository) List(page, limit int) ([]model.Clan, int64, error) {
	var clans []model.Clan
	var total int64
	if err := r.DB.Model(&model.Clan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&clans).Error
	return clans, total, err
}

func (r *ClanRepository) Update(clan *model.Clan) error {
	return r.DB.Save(clan).Error
}

func (r *ClanRepository) Delete(id string) error {
	return r.DB.Delete(&model.Clan{}, "id = ?", id).Error
}

func (r *ClanRepository) AddMember(userID, clanID string) error {
	return r.DB.Create(&model.UserClan{UserID: userID, ClanID: clanID}).Error
}

func (r *ClanRepository) RemoveMember(userID, clanID string) error {
	return r.DB.Where("user_id = ? AND clan_id = ?", userID, clanID).Delete(&model.UserClan{}).Error
}

func (r *ClanRepository) IsMember(userID, clanID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserClan{}).Where("user_id = ? AND clan_id = ?", userID, clanID).Count(&count).Error
	return count > 0, err
}

func (r *ClanRepository) CountMembers(clanID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserClan{}).Where("clan_id = ?", clanID).Count(&count).Error
	return count, err
}
