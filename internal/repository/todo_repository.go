package repository

import (
	"gorm.io/gorm"

	"github.com/hearthhq/hearth-api/internal/models"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new to-do
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a to-do by ID with optional preloading
func (r *GormTodoRepository) FindByID(id uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// ListByFamily retrieves all to-dos of a family, optionally filtered by status
func (r *GormTodoRepository) ListByFamily(familyID uint64, status *models.TodoStatus) ([]models.Todo, error) {
	var todos []models.Todo
	query := r.db.
		Preload("Creator").
		Preload("AssignedTo").
		Where("family_id = ?", familyID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC").
		Find(&todos).Error; err != nil {
		return nil, err
	}

	return todos, nil
}

// Update updates a to-do
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete soft deletes a to-do
func (r *GormTodoRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Todo{}, id).Error
}
