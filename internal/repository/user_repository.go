package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateFamily is returned when creating a family fails inside the signup transaction.
	ErrCreateFamily = errors.New("user repository: create family failed")
	// ErrCreateFamilyMember is returned when creating a family member fails inside the signup transaction.
	ErrCreateFamilyMember = errors.New("user repository: create family member failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithPersonalFamily creates a user, a personal family, and the membership atomically.
func (r *GormUserRepository) CreateWithPersonalFamily(user *models.User, family *models.Family, member *models.FamilyMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		family.CreatorID = user.ID
		if err := tx.Create(family).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateFamily, err)
		}

		member.FamilyID = family.ID
		member.UserID = user.ID

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateFamilyMember, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
