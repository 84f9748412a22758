package service

import (
	"errors"

	"block_sensei_backend/internal/model"
	"block_sensei_backend/internal/repository"
	"block_sensei_backend/internal/util"

	"gorm.io/gorm"
)

type ClanService struct {
	ClanRepo *repository.ClanRepository
}

func NewClanService(clanRepo *repository.ClanRepository) *ClanService {
	return &ClanService{ClanRepo: clanRepo}
}

type ClanCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

type ClanUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

func (s *ClanService) CreateClan(userID string, req ClanCreateRequest) (*model.Clan, error) {
	taken, err := s.ClanRepo.NameExists(req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrClanNameTaken
	}

	clan := &model.Clan{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		CreatedBy:   userID,
	}
	if err := s.ClanRepo.Create(clan); err != nil {
		return nil, err
	}
	return clan, nil
}

func (s *ClanService) GetClan(id string) (*model.Clan, error) {
	clan, err := s.ClanRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClanNotFound
		}
		return nil, err
	}
	return clan, nil
}

func (s *ClanService) ListClans(page, limit int) ([]model.Clan, int64, error) {
	return s.ClanRepo.List(page, limit)
}

func (s *ClanService) UpdateClan(id string, req ClanUpdateRequest) (*model.Clan, error) {
	clan, err := s.GetClan(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != clan.Name {
		taken, err := s.ClanRepo.NameExists(*req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrClanNameTaken
		}
		clan.Name = *req.Name
	}
	if req.Description != nil {
		clan.Description = *req.Description
	}
	if req.LogoURL != nil {
		clan.LogoURL = *req.LogoURL
	}

	if err := s.ClanRepo.Update(clan); err != nil {
		return nil, err
	}
	return clan, nil
}

// MemberCount returns how many users have joined the clan.
func (s *ClanService) MemberCount(clanID string) (int64, error) {
	return s.ClanRepo.CountMembers(clanID)
}

func (s *ClanService) IsMember(userID, clanID string) (bool, error) {
	return s.ClanRepo.IsMember(userID, clanID)
}

func (s *ClanService) DeleteClan(id string) error {
	if _, err := s.GetClan(id); err != nil {
		return err
	}
	return s.ClanRepo.Delete(id)
}

func (s *ClanService) JoinClan(userID, clanID string) error {
	if _, err := s.GetClan(clanID); err != nil {
		return err
	}
	member, err := s.ClanRepo.IsMember(userID, clanID)
	if err != nil {
		return err
	}
	if member {
		return util.ErrAlreadyMember
	}
	return s.ClanRepo.AddMember(userID, clanID)
}

func (s *ClanService) LeaveClan(userID, clanID string) error {
	member, err := s.ClanRepo.IsMember(userID, clanID)
	if err != nil {
		return err
	}
	if !member {
		return util.ErrNotClanMember
	}
	return s.ClanRepo.RemoveMember(userID, clanID)
}
