package service

import (
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/repository"
	"family_learn_backend/internal/util"

	"gorm.io/gorm"
)

type FamilyService struct {
	FamilyRepo *repository.FamilyRepository
	UserRepo   *repository.UserRepository
}

func NewFamilyService(familyRepo *repository.FamilyRepository, userRepo *repository.UserRepository) *FamilyService {
	return &FamilyService{FamilyRepo: familyRepo, UserRepo: userRepo}
}

// Create sets up a family with the creating parent as its first member.
func (s *FamilyService) Create(parentID uint, name string) (*model.Family, error) {
	parent, err := s.UserRepo.FindByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if parent.Role != model.Parent {
		return nil, util.ErrPermissionDenied
	}

	family := &model.Family{Name: name}
	if err := s.FamilyRepo.Create(family); err != nil {
		return nil, err
	}

	member := &model.FamilyMember{FamilyID: family.ID, UserID: parentID}
	if err := s.FamilyRepo.AddMember(member); err != nil {
		return nil, err
	}

	return s.FamilyRepo.FindByID(family.ID)
}

func (s *FamilyService) GetByID(familyID string) (*model.Family, error) {
	family, err := s.FamilyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFamilyNotFound
		}
		return nil, err
	}
	return family, nil
}

// GetForUser returns the family the user belongs to.
func (s *FamilyService) GetForUser(userID uint) (*model.Family, error) {
	member, err := s.FamilyRepo.FindMemberByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFamilyNotFound
		}
		return nil, err
	}
	return s.GetByID(member.FamilyID)
}

func (s *FamilyService) IsUserInFamily(familyID string, userID uint) (bool, error) {
	return s.FamilyRepo.IsUserInFamily(familyID, userID)
}

// AddMember joins a user to the parent's family. Only a parent member may
// grow the family.
func (s *FamilyService) AddMember(parentID uint, email string) (*model.Family, error) {
	parentMember, err := s.requireParentMember(parentID)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	member := &model.FamilyMember{FamilyID: parentMember.FamilyID, UserID: user.ID}
	if err := s.FamilyRepo.AddMember(member); err != nil {
		return nil, err
	}

	return s.GetByID(parentMember.FamilyID)
}

func (s *FamilyService) RemoveMember(parentID uint, userID uint) error {
	parentMember, err := s.requireParentMember(parentID)
	if err != nil {
		return err
	}

	if parentID == userID {
		return util.ErrPermissionDenied
	}

	return s.FamilyRepo.RemoveMember(parentMember.FamilyID, userID)
}

func (s *FamilyService) requireParentMember(userID uint) (*model.FamilyMember, error) {
	member, err := s.FamilyRepo.FindMemberByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFamilyNotFound
		}
		return nil, err
	}
	if member.User == nil || member.User.Role != model.Parent {
		return nil, util.ErrPermissionDenied
	}
	return member, nil
}
