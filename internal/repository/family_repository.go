package repository

import (
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
)

// GormFamilyRepository is a GORM implementation of FamilyRepository
type GormFamilyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a new FamilyRepository
func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &GormFamilyRepository{db: db}
}

// Create creates a new family
func (r *GormFamilyRepository) Create(family *models.Family) error {
	return r.db.Create(family).Error
}

// FindByID finds a family by ID
func (r *GormFamilyRepository) FindByID(id uint64) (*models.Family, error) {
	var family models.Family
	if err := r.db.First(&family, id).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// FindByInviteCode finds a family by invite code
func (r *GormFamilyRepository) FindByInviteCode(code string) (*models.Family, error) {
	var family models.Family
	if err := r.db.Where("invite_code = ?", code).First(&family).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// Update updates a family
func (r *GormFamilyRepository) Update(family *models.Family) error {
	return r.db.Save(family).Error
}

// Delete deletes a family and all scoped data in a transaction
func (r *GormFamilyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var choreIDs []uint64
		if err := tx.Model(&models.Chore{}).
			Where("family_id = ?", id).
			Pluck("id", &choreIDs).Error; err != nil {
			return err
		}
		if len(choreIDs) > 0 {
			if err := tx.Where("chore_id IN ?", choreIDs).
				Delete(&models.ChoreRotationMember{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("family_id = ?", id).Delete(&models.Chore{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.FamilyInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.FamilyMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Family{}, id).Error
	})
}

// AddMember adds a member to a family
func (r *GormFamilyRepository) AddMember(member *models.FamilyMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a family
func (r *GormFamilyRepository) RemoveMember(familyID, userID uint64) error {
	return r.db.Where("family_id = ? AND user_id = ?", familyID, userID).
		Delete(&models.FamilyMember{}).Error
}

// FindMember finds a specific family member
func (r *GormFamilyRepository) FindMember(familyID, userID uint64) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.Where("family_id = ? AND user_id = ?", familyID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists all families a user belongs to
func (r *GormFamilyRepository) ListMembershipsByUserID(userID uint64) ([]models.FamilyMember, error) {
	var memberships []models.FamilyMember
	if err := r.db.Preload("Family").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of a family with users preloaded
func (r *GormFamilyRepository) ListMembers(familyID uint64) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := r.db.Preload("User").
		Where("family_id = ?", familyID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreateInvitation creates a new family invitation
func (r *GormFamilyRepository) CreateInvitation(invitation *models.FamilyInvitation) error {
	return r.db.Create(invitation).Error
}

// FindInvitationByID finds an invitation by ID
func (r *GormFamilyRepository) FindInvitationByID(id uint64) (*models.FamilyInvitation, error) {
	var invitation models.FamilyInvitation
	if err := r.db.First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindInvitationByToken finds an invitation by its token
func (r *GormFamilyRepository) FindInvitationByToken(token string) (*models.FamilyInvitation, error) {
	var invitation models.FamilyInvitation
	if err := r.db.Where("token = ?", token).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// DeleteInvitation deletes an invitation
func (r *GormFamilyRepository) DeleteInvitation(id uint64) error {
	return r.db.Delete(&models.FamilyInvitation{}, id).Error
}
