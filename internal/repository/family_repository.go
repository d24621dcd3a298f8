package repository

import (
	"family_learn_backend/internal/model"

	"gorm.io/gorm"
)

type FamilyRepository struct {
	DB *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

func (r *FamilyRepository) Create(family *model.Family) error {
	return r.DB.Create(family).Error
}

func (r *FamilyRepository) FindByID(familyID string) (*model.Family, error) {
	var family model.Family
	err := r.DB.Preload("Members.User").Where("id = ?", familyID).First(&family).Error
	return &family, err
}

// FindMemberByUser resolves the membership row for a user. Users belong to at
// most one family.
func (r *FamilyRepository) FindMemberByUser(userID uint) (*model.FamilyMember, error) {
	var member model.FamilyMember
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&member).Error
	return &member, err
}

func (r *FamilyRepository) FindMember(familyID string, userID uint) (*model.FamilyMember, error) {
	var member model.FamilyMember
	err := r.DB.Preload("User").
		Where("family_id = ? AND user_id = ?", familyID, userID).
		First(&member).Error
	return &member, err
}

func (r *FamilyRepository) IsUserInFamily(familyID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *FamilyRepository) AddMember(member *model.FamilyMember) error {
	return r.DB.Create(member).Error
}

func (r *FamilyRepository) RemoveMember(familyID string, userID uint) error {
	return r.DB.Where("family_id = ? AND user_id = ?", familyID, userID).
		Delete(&model.FamilyMember{}).Error
}
