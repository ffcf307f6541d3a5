package repository

import (
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/database"
	"github.com/hearthhq/hearth-api/internal/models"
	"github.com/hearthhq/hearth-api/internal/utils"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// CreateTurn persists one (message, response) pair
func (r *GormChatRepository) CreateTurn(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// ListByFamily returns the most recent turns, oldest first
func (r *GormChatRepository) ListByFamily(familyID uint64, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := r.db.
		Preload("User").
		Where("family_id = ?", familyID).
		Order("created_at DESC, id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order for replay.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// ListPageByFamily returns one page of turns, newest first, with the
// total turn count for the family. Used for scrollback past the
// replay window.
func (r *GormChatRepository) ListPageByFamily(familyID uint64, params utils.PaginationParams) ([]models.ChatMessage, int64, error) {
	query := r.db.Model(&models.ChatMessage{}).Where("family_id = ?", familyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.ChatMessage
	err := r.db.
		Preload("User").
		Where("family_id = ?", familyID).
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
