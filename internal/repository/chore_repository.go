package repository

import (
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
)

// GormChoreRepository is a GORM implementation of ChoreRepository
type GormChoreRepository struct {
	db *gorm.DB
}

// NewChoreRepository creates a new ChoreRepository
func NewChoreRepository(db *gorm.DB) ChoreRepository {
	return &GormChoreRepository{db: db}
}

// Create creates a new chore together with its rotation roster
func (r *GormChoreRepository) Create(chore *models.Chore, rotationUserIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chore).Error; err != nil {
			return err
		}
		return createRoster(tx, chore.ID, rotationUserIDs)
	})
}

// FindByID finds a chore by ID with its rotation roster in position order
func (r *GormChoreRepository) FindByID(id uint64, preload ...string) (*models.Chore, error) {
	var chore models.Chore
	query := r.db.Preload("RotationMembers", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&chore, id).Error; err != nil {
		return nil, err
	}

	return &chore, nil
}

// ListByFamily retrieves all chores of a family with rosters preloaded
func (r *GormChoreRepository) ListByFamily(familyID uint64) ([]models.Chore, error) {
	var chores []models.Chore
	err := r.db.
		Preload("RotationMembers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("AssignedTo").
		Preload("Creator").
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&chores).Error
	if err != nil {
		return nil, err
	}
	return chores, nil
}

// Update updates a chore's editable fields and replaces its roster
func (r *GormChoreRepository) Update(chore *models.Chore, rotationUserIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(chore).Error; err != nil {
			return err
		}
		if err := tx.Where("chore_id = ?", chore.ID).
			Delete(&models.ChoreRotationMember{}).Error; err != nil {
			return err
		}
		return createRoster(tx, chore.ID, rotationUserIDs)
	})
}

// Delete soft deletes a chore and drops its rotation roster
func (r *GormChoreRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chore_id = ?", id).
			Delete(&models.ChoreRotationMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chore{}, id).Error
	})
}

// ApplyCompletion persists a completion transition as one single-row
// update. The storage engine's row atomicity is the only concurrency
// guarantee: two near-simultaneous completions are last-writer-wins,
// matching the product's semantics.
func (r *GormChoreRepository) ApplyCompletion(choreID uint64, completion ChoreCompletion) error {
	return r.db.Model(&models.Chore{}).
		Where("id = ?", choreID).
		Updates(map[string]interface{}{
			"last_completed":         completion.LastCompleted,
			"next_due":               completion.NextDue,
			"assigned_to_id":         completion.AssignedToID,
			"current_assignee_index": completion.CurrentAssigneeIndex,
		}).Error
}

// RemoveRotationUser drops a user from every rotation roster in a
// family. Rosters are rewritten with compacted positions; any chore
// whose stored index no longer points at a valid position has the
// index and assignee cleared so the next completion restarts at the
// head of the roster.
func (r *GormChoreRepository) RemoveRotationUser(familyID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var chores []models.Chore
		if err := tx.
			Preload("RotationMembers", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Where("family_id = ? AND rotation = ?", familyID, true).
			Find(&chores).Error; err != nil {
			return err
		}

		for _, chore := range chores {
			remaining := make([]uint64, 0, len(chore.RotationMembers))
			for _, m := range chore.RotationMembers {
				if m.UserID != userID {
					remaining = append(remaining, m.UserID)
				}
			}
			if len(remaining) == len(chore.RotationMembers) {
				continue
			}

			if err := tx.Where("chore_id = ?", chore.ID).
				Delete(&models.ChoreRotationMember{}).Error; err != nil {
				return err
			}
			if err := createRoster(tx, chore.ID, remaining); err != nil {
				return err
			}

			// Realign the assignee with the compacted roster so it
			// stays derived from roster[index].
			updates := map[string]interface{}{}
			if chore.CurrentAssigneeIndex != nil {
				if idx := *chore.CurrentAssigneeIndex; idx < len(remaining) {
					updates["assigned_to_id"] = remaining[idx]
				} else {
					updates["current_assignee_index"] = nil
					updates["assigned_to_id"] = nil
				}
			} else if chore.AssignedToID != nil && *chore.AssignedToID == userID {
				updates["assigned_to_id"] = nil
			}
			if len(updates) > 0 {
				if err := tx.Model(&models.Chore{}).
					Where("id = ?", chore.ID).
					Updates(updates).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func createRoster(tx *gorm.DB, choreID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	roster := make([]models.ChoreRotationMember, len(userIDs))
	for i, uid := range userIDs {
		roster[i] = models.ChoreRotationMember{
			ChoreID:  choreID,
			Position: i,
			UserID:   uid,
		}
	}
	return tx.Create(&roster).Error
}
